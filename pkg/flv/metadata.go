// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package flv

import (
	"bytes"

	"github.com/sunlulu427/MixedStream/pkg/base"
)

// spec-video_file_format_spec_v10.pdf
// onMetaData
// - width           DOUBLE
// - height          DOUBLE
// - framerate       DOUBLE
// - videocodecid    DOUBLE  H264 7, H265 12
// - audiosamplerate DOUBLE
// - audiosamplesize DOUBLE
// - stereo          BOOL
// - audiocodecid    DOUBLE  AAC 10

// BuildMetadata onMetaData的SCRIPTDATA payload
//
// 要求视频的宽高帧率均已配置，音频字段直接取当前配置（可能为零值）
//
// 注意，ECMA array的元素个数字段写的是7而实际属性有8个，
// 这是历史实现的线上行为，为保持产物字节一致而保留
//
// @return 内存块为新申请的独立内存块
func BuildMetadata(videoConfig base.VideoConfig, audioConfig base.AudioConfig) ([]byte, error) {
	if videoConfig.Width == 0 || videoConfig.Height == 0 || videoConfig.Fps == 0 {
		return nil, base.ErrFlvMetadataNotReady
	}

	buf := &bytes.Buffer{}
	if err := Amf0.WriteString(buf, "onMetaData"); err != nil {
		return nil, err
	}
	if err := Amf0.WriteEcmaArrayHeader(buf, 7); err != nil {
		return nil, err
	}

	videocodecid := float64(base.RtmpCodecIdAvc)
	if videoConfig.IsHevc() {
		videocodecid = float64(base.RtmpCodecIdHevc)
	}

	_ = Amf0.WriteNumberProperty(buf, "width", float64(videoConfig.Width))
	_ = Amf0.WriteNumberProperty(buf, "height", float64(videoConfig.Height))
	_ = Amf0.WriteNumberProperty(buf, "framerate", float64(videoConfig.Fps))
	_ = Amf0.WriteNumberProperty(buf, "videocodecid", videocodecid)
	_ = Amf0.WriteNumberProperty(buf, "audiosamplerate", float64(audioConfig.SampleRate))
	_ = Amf0.WriteNumberProperty(buf, "audiosamplesize", float64(audioConfig.SampleSizeBits))
	_ = Amf0.WriteBooleanProperty(buf, "stereo", audioConfig.Channels > 1)
	_ = Amf0.WriteNumberProperty(buf, "audiocodecid", float64(base.RtmpSoundFormatAac))

	if err := Amf0.WriteObjectEnd(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

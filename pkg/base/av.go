// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package base

// VideoConfig
//
// CodecId 取FLV中的值，见 RtmpCodecIdAvc 和 RtmpCodecIdHevc
type VideoConfig struct {
	CodecId uint8
	Width   uint32
	Height  uint32
	Fps     uint32
}

// AudioConfig
//
// Asc 即AudioSpecificConfig，来自AAC编码器首次输出的format change事件
// 注意，asc为空时音频不可推送，见 flv.Muxer
type AudioConfig struct {
	SampleRate     uint32
	Channels       uint32
	SampleSizeBits uint32
	Asc            []byte
}

func (c VideoConfig) IsHevc() bool {
	return c.CodecId == RtmpCodecIdHevc
}

// ParsedVideoFrame 一帧编码视频数据经过nal切分、参数集提取之后的结果
//
// Payload 格式为(4字节大端长度 + nal)的若干次重复
// Payload 为空表示输入中没有真正的slice数据（比如只有参数集），不应产生媒体tag
type ParsedVideoFrame struct {
	Payload    []byte
	IsKeyFrame bool
}

func (f ParsedVideoFrame) HasData() bool {
	return len(f.Payload) > 0
}

// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package aac

import "github.com/sunlulu427/MixedStream/pkg/base"

// <spec-video_file_format_spec_v10.pdf>, <Audio tags, AUDIODATA>, <page 10/48>
// ----------------------------------------------------------------------------
// soundFormat    [4b] 10=AAC
// soundRate      [2b] 3=44kHz. AAC always 3
// soundSize      [1b] 0=snd8Bit, 1=snd16Bit
// soundType      [1b] 0=sndMono, 1=sndStereo. AAC always 1
// aacPackageType [8b] 0=seq header, 1=AAC raw
//
// 注意，前4项在AAC下是固定值0xAF，真实参数在asc中

// MakeAudioDataSeqHeaderWithAsc 音频sequence header tag body，即 AF 00 + asc
//
// @param asc: 函数调用结束后，内部不持有该内存块
//
// @return out: 内存块为新申请的独立内存块
func MakeAudioDataSeqHeaderWithAsc(asc []byte) (out []byte, err error) {
	if len(asc) < minAscLength {
		return nil, base.ErrAac
	}

	out = make([]byte, 2+len(asc))
	out[0] = base.RtmpAacAudioDataHeader
	out[1] = base.RtmpAacPacketTypeSeqHeader
	copy(out[2:], asc)
	return
}

// MakeAudioDataWithRaw 音频媒体tag body，即 AF 01 + 裸AAC帧
//
// @param frame: 不含adts header的一帧AAC数据，由调用方保证；
//
//	函数调用结束后，内部不持有该内存块
//
// @return out: 内存块为新申请的独立内存块
func MakeAudioDataWithRaw(frame []byte) (out []byte, err error) {
	if len(frame) == 0 {
		return nil, base.ErrAac
	}

	out = make([]byte, 2+len(frame))
	out[0] = base.RtmpAacAudioDataHeader
	out[1] = base.RtmpAacPacketTypeRaw
	copy(out[2:], frame)
	return
}

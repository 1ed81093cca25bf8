// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package base

const (
	// RtmpTypeIdAudio spec-rtmp_specification_1.0.pdf
	// 7.1. Types of Messages
	RtmpTypeIdAudio    uint8 = 8
	RtmpTypeIdVideo    uint8 = 9
	RtmpTypeIdMetadata uint8 = 18 // RtmpTypeIdDataMessageAmf0

	// RtmpFrameTypeKey spec-video_file_format_spec_v10.pdf
	// Video tags
	//   VIDEODATA
	//     FrameType UB[4]
	//     CodecId   UB[4]
	//   AVCVIDEOPACKET
	//     AVCPacketType   UI8
	//     CompositionTime SI24
	//     Data            UI8[n]
	RtmpFrameTypeKey   uint8 = 1
	RtmpFrameTypeInter uint8 = 2

	RtmpCodecIdAvc  uint8 = 7
	RtmpCodecIdHevc uint8 = 12

	RtmpAvcPacketTypeSeqHeader uint8 = 0
	RtmpAvcPacketTypeNalu      uint8 = 1

	RtmpAvcKeyFrame    = RtmpFrameTypeKey<<4 | RtmpCodecIdAvc
	RtmpHevcKeyFrame   = RtmpFrameTypeKey<<4 | RtmpCodecIdHevc
	RtmpAvcInterFrame  = RtmpFrameTypeInter<<4 | RtmpCodecIdAvc
	RtmpHevcInterFrame = RtmpFrameTypeInter<<4 | RtmpCodecIdHevc

	// RtmpSoundFormatAac spec-video_file_format_spec_v10.pdf
	// Audio tags
	//   AUDIODATA
	//     SoundFormat UB[4]
	//     SoundRate   UB[2]
	//     SoundSize   UB[1]
	//     SoundType   UB[1]
	//   AACAUDIODATA
	//     AACPacketType UI8
	//     Data          UI8[n]
	//
	// 注意，SoundRate/SoundSize/SoundType在AAC下是固定值，真实的声道数、
	// 采样率等信息在asc中
	RtmpSoundFormatAac         uint8 = 10
	RtmpSoundRate44k           uint8 = 3
	RtmpSoundSize16Bit         uint8 = 1
	RtmpSoundTypeStereo        uint8 = 1
	RtmpAacPacketTypeSeqHeader uint8 = 0
	RtmpAacPacketTypeRaw       uint8 = 1

	// RtmpAacAudioDataHeader AUDIODATA的第1字节，AAC下为固定值0xAF
	RtmpAacAudioDataHeader uint8 = RtmpSoundFormatAac<<4 | RtmpSoundRate44k<<2 | RtmpSoundSize16Bit<<1 | RtmpSoundTypeStereo
)

const (
	// CsidAmf CsidVideo CsidAudio
	//
	// 推流侧固定的chunk stream id分配：信令3，视频4，音频5
	CsidAmf   = 0x03
	CsidVideo = 0x04
	CsidAudio = 0x05
)

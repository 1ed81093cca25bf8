// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package aac

import (
	"github.com/q191201771/naza/pkg/nazabits"
	"github.com/q191201771/naza/pkg/nazalog"
	"github.com/sunlulu427/MixedStream/pkg/base"
)

// AudioSpecificConfig(asc)
// keywords: Seq Header
// e.g. rtmp, flv
//
// ADTS(Audio Data Transport Stream)
// e.g. es, ts

const (
	AdtsHeaderLength = 7

	minAscLength = 2
)

// ascSamplingFrequencyMapping samplingFrequencyIndex -> 采样率
var ascSamplingFrequencyMapping = map[uint8]int{
	0:  96000,
	1:  88200,
	2:  64000,
	3:  48000,
	4:  44100,
	5:  32000,
	6:  24000,
	7:  22050,
	8:  16000,
	9:  12000,
	10: 11025,
	11: 8000,
	12: 7350,
}

// <ISO_IEC_14496-3.pdf>
// <1.6.2.1 AudioSpecificConfig>, <page 33/110>
// <1.5.1.1 Audio Object type definition>, <page 23/110>
// <1.6.3.3 samplingFrequencyIndex>, <page 35/110>
// <1.6.3.4 channelConfiguration>
// --------------------------------------------------------
// audio object type      [5b] 1=AAC MAIN  2=AAC LC
// samplingFrequencyIndex [4b] 3=48000  4=44100
// channelConfiguration   [4b] 1=center front speaker  2=left, right front speakers
type AscContext struct {
	AudioObjectType        uint8 // [5b]
	SamplingFrequencyIndex uint8 // [4b]
	ChannelConfiguration   uint8 // [4b]
}

func NewAscContext(asc []byte) (*AscContext, error) {
	var ascCtx AscContext
	if err := ascCtx.Unpack(asc); err != nil {
		return nil, err
	}
	return &ascCtx, nil
}

// Unpack
//
// @param asc: 2字节的AAC Audio Specific Config
//
//	函数调用结束后，内部不持有该内存块
func (ascCtx *AscContext) Unpack(asc []byte) error {
	if len(asc) < minAscLength {
		nazalog.Warnf("asc length invalid. len=%d", len(asc))
		return base.ErrAac
	}

	br := nazabits.NewBitReader(asc)
	ascCtx.AudioObjectType, _ = br.ReadBits8(5)
	ascCtx.SamplingFrequencyIndex, _ = br.ReadBits8(4)
	ascCtx.ChannelConfiguration, _ = br.ReadBits8(4)
	return nil
}

// Pack
//
// @return asc: 内存块为新申请的独立内存块
func (ascCtx *AscContext) Pack() (asc []byte) {
	asc = make([]byte, minAscLength)
	bw := nazabits.NewBitWriter(asc)
	bw.WriteBits8(5, ascCtx.AudioObjectType)
	bw.WriteBits8(4, ascCtx.SamplingFrequencyIndex)
	bw.WriteBits8(4, ascCtx.ChannelConfiguration)
	return
}

func (ascCtx *AscContext) GetSamplingFrequency() (int, error) {
	rate, ok := ascSamplingFrequencyMapping[ascCtx.SamplingFrequencyIndex]
	if !ok {
		nazalog.Errorf("GetSamplingFrequency failed. ascCtx=%+v", ascCtx)
		return -1, base.ErrAac
	}
	return rate, nil
}

type AdtsHeaderContext struct {
	AscCtx AscContext

	AdtsLength uint16 // 字段中的值，包含了adts header + adts frame
}

func NewAdtsHeaderContext(adtsHeader []byte) (*AdtsHeaderContext, error) {
	var ctx AdtsHeaderContext
	if err := ctx.Unpack(adtsHeader); err != nil {
		return nil, err
	}
	return &ctx, nil
}

// Unpack
//
// <ISO_IEC_14496-3.pdf>
// <1.A.2.2.1 Fixed Header of ADTS>, <page 75/110>
// <1.A.2.2.2 Variable Header of ADTS>, <page 76/110>
//
// @param adtsHeader: 函数调用结束后，内部不持有该内存块
func (ctx *AdtsHeaderContext) Unpack(adtsHeader []byte) error {
	if len(adtsHeader) < AdtsHeaderLength {
		return base.ErrAac
	}

	br := nazabits.NewBitReader(adtsHeader)
	// syncword, id, layer, protection_absent
	_ = br.SkipBits(16)
	v, _ := br.ReadBits8(2)
	ctx.AscCtx.AudioObjectType = v + 1
	ctx.AscCtx.SamplingFrequencyIndex, _ = br.ReadBits8(4)
	// private_bit
	_ = br.SkipBits(1)
	ctx.AscCtx.ChannelConfiguration, _ = br.ReadBits8(3)
	_ = br.SkipBits(4)
	ctx.AdtsLength, _ = br.ReadBits16(13)
	return nil
}

// MakeAscWithAdtsHeader 由adts header计算出asc
//
// 编码器（或TS流）首帧到来时，用这个函数喂给muxer音频配置
//
// @return asc: 内存块为新申请的独立内存块
func MakeAscWithAdtsHeader(adtsHeader []byte) (asc []byte, err error) {
	var ctx *AdtsHeaderContext
	if ctx, err = NewAdtsHeaderContext(adtsHeader); err != nil {
		return nil, err
	}
	return ctx.AscCtx.Pack(), nil
}

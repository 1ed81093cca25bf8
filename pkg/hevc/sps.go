// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package hevc

import (
	"github.com/q191201771/naza/pkg/nazabits"
	"github.com/sunlulu427/MixedStream/pkg/base"
)

// SpsContext 从sps中解出的、构造HEVCDecoderConfigurationRecord所需的字段
//
// ISO_IEC_23008-2_2013.pdf
// 7.3.2.2 Sequence parameter set RBSP syntax
// 7.3.3 Profile, tier and level syntax
type SpsContext struct {
	MaxSubLayersMinus1 uint32
	TemporalIdNested   uint8

	GeneralProfileSpace              uint32
	GeneralTierFlag                  uint32
	GeneralProfileIdc                uint32
	GeneralProfileCompatibilityFlags uint32
	GeneralConstraintIndicatorFlags  uint64
	GeneralLevelIdc                  uint32

	ChromaFormatIdc      uint32
	BitDepthLumaMinus8   uint32
	BitDepthChromaMinus8 uint32
}

// ParseSps 解析sps nal（含2字节nal header），填充<ctx>
//
// 只解析到bit_depth_chroma_minus8为止，后面的字段用不到
func ParseSps(sps []byte, ctx *SpsContext) error {
	rbsp := nal2Rbsp(sps)
	if len(rbsp) == 0 {
		return base.ErrHevc
	}
	br := nazabits.NewBitReader(rbsp)

	// sps_video_parameter_set_id
	_, _ = br.ReadBits8(4)
	maxSubLayersMinus1, _ := br.ReadBits8(3)
	ctx.MaxSubLayersMinus1 = uint32(maxSubLayersMinus1)
	ctx.TemporalIdNested, _ = br.ReadBits8(1)

	// profile_tier_level

	profileSpace, _ := br.ReadBits8(2)
	ctx.GeneralProfileSpace = uint32(profileSpace)
	tierFlag, _ := br.ReadBits8(1)
	ctx.GeneralTierFlag = uint32(tierFlag)
	profileIdc, _ := br.ReadBits8(5)
	ctx.GeneralProfileIdc = uint32(profileIdc)

	ctx.GeneralProfileCompatibilityFlags, _ = br.ReadBits32(32)

	hi, _ := br.ReadBits32(32)
	lo, _ := br.ReadBits16(16)
	ctx.GeneralConstraintIndicatorFlags = uint64(hi)<<16 | uint64(lo)

	levelIdc, _ := br.ReadBits8(8)
	ctx.GeneralLevelIdc = uint32(levelIdc)

	subLayerProfilePresent := make([]uint8, ctx.MaxSubLayersMinus1)
	subLayerLevelPresent := make([]uint8, ctx.MaxSubLayersMinus1)
	for i := uint32(0); i < ctx.MaxSubLayersMinus1; i++ {
		subLayerProfilePresent[i], _ = br.ReadBits8(1)
		subLayerLevelPresent[i], _ = br.ReadBits8(1)
	}
	if ctx.MaxSubLayersMinus1 > 0 {
		for i := ctx.MaxSubLayersMinus1; i < 8; i++ {
			_, _ = br.ReadBits8(2)
		}
	}
	for i := uint32(0); i < ctx.MaxSubLayersMinus1; i++ {
		if subLayerProfilePresent[i] == 1 {
			_, _ = br.ReadBits8(2)
			_, _ = br.ReadBits8(1)
			_, _ = br.ReadBits8(5)
			_, _ = br.ReadBits32(32)
			_, _ = br.ReadBits32(32)
			_, _ = br.ReadBits16(16)
		}
		if subLayerLevelPresent[i] == 1 {
			_, _ = br.ReadBits8(8)
		}
	}

	// sps_seq_parameter_set_id
	_ = readUe(&br)
	ctx.ChromaFormatIdc = readUe(&br)
	if ctx.ChromaFormatIdc == 3 {
		// separate_colour_plane_flag
		_, _ = br.ReadBits8(1)
	}

	// pic_width_in_luma_samples, pic_height_in_luma_samples
	_ = readUe(&br)
	_ = readUe(&br)

	if flag, _ := br.ReadBits8(1); flag == 1 {
		// conformance window offsets
		_ = readUe(&br)
		_ = readUe(&br)
		_ = readUe(&br)
		_ = readUe(&br)
	}

	ctx.BitDepthLumaMinus8 = readUe(&br)
	ctx.BitDepthChromaMinus8 = readUe(&br)
	return nil
}

// readUe 指数哥伦布解码
//
// 注意，保留了历史实现的两个特殊点：前导零达到32个时返回0；首bit即为1时返回1。
// hvcC的字节布局依赖这两个行为，不要按标准ue(v)修正
func readUe(br *nazabits.BitReader) uint32 {
	var leadingZeroBits uint32
	for {
		bit, _ := br.ReadBits8(1)
		if bit != 0 {
			break
		}
		if leadingZeroBits == 32 {
			break
		}
		leadingZeroBits++
	}
	if leadingZeroBits == 32 {
		return 0
	}
	if leadingZeroBits == 0 {
		return 1
	}
	suffix, _ := br.ReadBits32(uint(leadingZeroBits))
	return (1 << leadingZeroBits) - 1 + suffix
}

// nal2Rbsp 跳过2字节nal header，去除防竞争字节（两个0x00之后的0x03）
func nal2Rbsp(nal []byte) []byte {
	if len(nal) <= 2 {
		return nil
	}
	rbsp := make([]byte, 0, len(nal)-2)
	zeroCount := 0
	for _, b := range nal[2:] {
		if zeroCount >= 2 && b == 0x03 {
			zeroCount = 0
			continue
		}
		rbsp = append(rbsp, b)
		if b == 0x00 {
			zeroCount++
		} else {
			zeroCount = 0
		}
	}
	return rbsp
}

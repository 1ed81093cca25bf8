// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package hevc

import (
	"github.com/q191201771/naza/pkg/bele"
	"github.com/sunlulu427/MixedStream/pkg/base"
)

// BuildSeqHeaderFromVpsSpsPps 根据vps、sps、pps构造完整的视频sequence header tag body
//
// 布局为5字节tag头（0x1C 0x00 + 3字节cts）加HEVCDecoderConfigurationRecord，
// record中的profile/tier/level、chroma、位深等字段来自sps解析
//
// @return 内存块为新申请的独立内存块
func BuildSeqHeaderFromVpsSpsPps(vps, sps, pps []byte) ([]byte, error) {
	if len(vps) == 0 || len(sps) == 0 || len(pps) == 0 {
		return nil, base.ErrHevc
	}

	var ctx SpsContext
	if err := ParseSps(sps, &ctx); err != nil {
		return nil, err
	}

	ret := make([]byte, 0, 43+len(vps)+len(sps)+len(pps))
	ret = append(ret,
		base.RtmpHevcKeyFrame,
		base.RtmpAvcPacketTypeSeqHeader,
		0x00, 0x00, 0x00,
	)

	// configurationVersion
	ret = append(ret, 0x01)
	ret = append(ret, uint8(ctx.GeneralProfileSpace<<6|ctx.GeneralTierFlag<<5|ctx.GeneralProfileIdc&0x1F))

	var compat [4]byte
	bele.BePutUint32(compat[:], ctx.GeneralProfileCompatibilityFlags)
	ret = append(ret, compat[:]...)

	for shift := 40; shift >= 0; shift -= 8 {
		ret = append(ret, uint8(ctx.GeneralConstraintIndicatorFlags>>uint(shift)))
	}
	ret = append(ret, uint8(ctx.GeneralLevelIdc))

	// min_spatial_segmentation_idc，前4位reserved全1
	minSpatialSegmentation := uint16(0x0FFF)
	ret = append(ret, uint8(0xF0|(minSpatialSegmentation>>8)&0x0F), uint8(minSpatialSegmentation))

	// parallelismType=0
	ret = append(ret, 0xFC)
	ret = append(ret, uint8(0xFC|ctx.ChromaFormatIdc&0x03))
	ret = append(ret, uint8(0xF8|ctx.BitDepthLumaMinus8&0x07))
	ret = append(ret, uint8(0xF8|ctx.BitDepthChromaMinus8&0x07))

	// avgFrameRate
	ret = append(ret, 0x00, 0x00)

	temporalLayers := ctx.MaxSubLayersMinus1 + 1
	if temporalLayers > 8 {
		temporalLayers = 8
	}
	temporalLayers--
	flags := uint8(temporalLayers<<3) | 0x03 // constantFrameRate=0, lengthSizeMinusOne=3
	if ctx.TemporalIdNested == 1 {
		flags |= 1 << 2
	}
	ret = append(ret, flags)

	// numOfArrays
	ret = append(ret, 0x03)
	ret = appendNalArray(ret, NaluTypeVps, vps)
	ret = appendNalArray(ret, NaluTypeSps, sps)
	ret = appendNalArray(ret, NaluTypePps, pps)
	return ret, nil
}

func appendNalArray(ret []byte, naluType uint8, nal []byte) []byte {
	ret = append(ret, 1<<7|naluType&0x3F)
	// numNalus固定为1
	ret = append(ret, 0x00, 0x01)
	ret = append(ret, uint8(len(nal)>>8), uint8(len(nal)))
	return append(ret, nal...)
}

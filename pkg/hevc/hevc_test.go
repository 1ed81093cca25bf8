// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package hevc_test

import (
	"testing"

	"github.com/q191201771/naza/pkg/assert"
	"github.com/sunlulu427/MixedStream/pkg/hevc"
)

// Main profile, level 3.1, 4:2:0
var goldenSps = []byte{
	0x42, 0x01,
	0x01,
	0x01,
	0x60, 0x00, 0x00, 0x00,
	0x90, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x5D,
	0xAC, 0x90,
}

var goldenVps = []byte{0x40, 0x01, 0x0C, 0x01, 0xFF, 0xFF}
var goldenPps = []byte{0x44, 0x01, 0xC0, 0x73, 0xC0, 0x4C, 0x90}

func TestParseNaluType(t *testing.T) {
	assert.Equal(t, hevc.NaluTypeVps, hevc.ParseNaluType(0x40))
	assert.Equal(t, hevc.NaluTypeSps, hevc.ParseNaluType(0x42))
	assert.Equal(t, hevc.NaluTypePps, hevc.ParseNaluType(0x44))
	assert.Equal(t, hevc.NaluTypeSliceIdr, hevc.ParseNaluType(0x26))
	assert.Equal(t, hevc.NaluTypeAud, hevc.ParseNaluType(0x46))
}

func TestIsKeyFrameNalu(t *testing.T) {
	assert.Equal(t, true, hevc.IsKeyFrameNalu(hevc.NaluTypeSliceIdr))
	assert.Equal(t, true, hevc.IsKeyFrameNalu(hevc.NaluTypeSliceIdrNlp))
	assert.Equal(t, true, hevc.IsKeyFrameNalu(hevc.NaluTypeSliceCranut))
	assert.Equal(t, false, hevc.IsKeyFrameNalu(hevc.NaluTypeSliceTrailR))
}

func TestParseSps(t *testing.T) {
	var ctx hevc.SpsContext
	err := hevc.ParseSps(goldenSps, &ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint32(0), ctx.MaxSubLayersMinus1)
	assert.Equal(t, uint8(1), ctx.TemporalIdNested)
	assert.Equal(t, uint32(0), ctx.GeneralProfileSpace)
	assert.Equal(t, uint32(0), ctx.GeneralTierFlag)
	assert.Equal(t, uint32(1), ctx.GeneralProfileIdc)
	assert.Equal(t, uint32(0x60000000), ctx.GeneralProfileCompatibilityFlags)
	assert.Equal(t, uint64(0x900000000000), ctx.GeneralConstraintIndicatorFlags)
	assert.Equal(t, uint32(93), ctx.GeneralLevelIdc)
	assert.Equal(t, uint32(1), ctx.ChromaFormatIdc)
	assert.Equal(t, uint32(1), ctx.BitDepthLumaMinus8)
	assert.Equal(t, uint32(1), ctx.BitDepthChromaMinus8)
}

func TestParseSpsTooShort(t *testing.T) {
	var ctx hevc.SpsContext
	err := hevc.ParseSps([]byte{0x42}, &ctx)
	assert.IsNotNil(t, err)
}

// 防竞争字节（00 00 03）应在解析前被去除
func TestNal2RbspViaParse(t *testing.T) {
	withEpb := []byte{
		0x42, 0x01,
		0x01,
		0x01,
		0x60, 0x00, 0x00, 0x03, 0x00,
		0x90, 0x00, 0x00, 0x03, 0x00, 0x00, 0x03, 0x00,
		0x5D,
		0xAC, 0x90,
	}
	var ctx hevc.SpsContext
	err := hevc.ParseSps(withEpb, &ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint32(0x60000000), ctx.GeneralProfileCompatibilityFlags)
	assert.Equal(t, uint64(0x900000000000), ctx.GeneralConstraintIndicatorFlags)
	assert.Equal(t, uint32(93), ctx.GeneralLevelIdc)
	assert.Equal(t, uint32(1), ctx.ChromaFormatIdc)
}

func TestBuildSeqHeaderFromVpsSpsPps(t *testing.T) {
	body, err := hevc.BuildSeqHeaderFromVpsSpsPps(goldenVps, goldenSps, goldenPps)
	assert.Equal(t, nil, err)

	assert.Equal(t, []byte{0x1C, 0x00, 0x00, 0x00, 0x00}, body[:5])

	record := body[5:]
	assert.Equal(t, uint8(0x01), record[0])
	// profile_space<<6 | tier<<5 | profile_idc
	assert.Equal(t, uint8(0x01), record[1])
	assert.Equal(t, []byte{0x60, 0x00, 0x00, 0x00}, record[2:6])
	assert.Equal(t, []byte{0x90, 0x00, 0x00, 0x00, 0x00, 0x00}, record[6:12])

	// general_level_idc再解析，和sps一致
	var ctx hevc.SpsContext
	err = hevc.ParseSps(goldenSps, &ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint8(ctx.GeneralLevelIdc), record[12])

	// reserved+min_spatial_segmentation_idc, parallelismType
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFC}, record[13:16])
	assert.Equal(t, uint8(0xFC|uint8(ctx.ChromaFormatIdc)), record[16])
	assert.Equal(t, uint8(0xF8|uint8(ctx.BitDepthLumaMinus8)), record[17])
	assert.Equal(t, uint8(0xF8|uint8(ctx.BitDepthChromaMinus8)), record[18])

	// avgFrameRate, flags(numTemporalLayers=0, temporalIdNested=1, lengthSizeMinusOne=3), numOfArrays
	assert.Equal(t, []byte{0x00, 0x00, 0x07, 0x03}, record[19:23])

	// vps array
	assert.Equal(t, uint8(1<<7|hevc.NaluTypeVps), record[23])
	assert.Equal(t, []byte{0x00, 0x01, 0x00, uint8(len(goldenVps))}, record[24:28])
	assert.Equal(t, goldenVps, record[28:28+len(goldenVps)])

	// sps array
	pos := 28 + len(goldenVps)
	assert.Equal(t, uint8(1<<7|hevc.NaluTypeSps), record[pos])
	assert.Equal(t, []byte{0x00, 0x01, 0x00, uint8(len(goldenSps))}, record[pos+1:pos+5])
	assert.Equal(t, goldenSps, record[pos+5:pos+5+len(goldenSps)])

	// pps array
	pos += 5 + len(goldenSps)
	assert.Equal(t, uint8(1<<7|hevc.NaluTypePps), record[pos])
	assert.Equal(t, []byte{0x00, 0x01, 0x00, uint8(len(goldenPps))}, record[pos+1:pos+5])
	assert.Equal(t, goldenPps, record[pos+5:])
}

func TestBuildSeqHeaderMissingParamSet(t *testing.T) {
	_, err := hevc.BuildSeqHeaderFromVpsSpsPps(nil, goldenSps, goldenPps)
	assert.IsNotNil(t, err)
	_, err = hevc.BuildSeqHeaderFromVpsSpsPps(goldenVps, nil, goldenPps)
	assert.IsNotNil(t, err)
	_, err = hevc.BuildSeqHeaderFromVpsSpsPps(goldenVps, goldenSps, nil)
	assert.IsNotNil(t, err)
}

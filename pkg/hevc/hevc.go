// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package hevc

var NaluTypeMapping = map[uint8]string{
	NaluTypeSliceTrailR: "SLICE",
	NaluTypeSliceIdr:    "IDR",
	NaluTypeSliceIdrNlp: "IDR",
	NaluTypeSliceCranut: "CRA",
	NaluTypeVps:         "VPS",
	NaluTypeSps:         "SPS",
	NaluTypePps:         "PPS",
	NaluTypeAud:         "AUD",
	NaluTypeSei:         "SEI",
	NaluTypeSeiSuffix:   "SEI",
}

// ISO_IEC_23008-2_2013.pdf
// Table 7-1 – NAL unit type codes and NAL unit type classes
const (
	NaluTypeSliceTrailR uint8 = 1  // 0x01
	NaluTypeSliceIdr    uint8 = 19 // 0x13
	NaluTypeSliceIdrNlp uint8 = 20 // 0x14
	NaluTypeSliceCranut uint8 = 21 // 0x15
	NaluTypeVps         uint8 = 32 // 0x20
	NaluTypeSps         uint8 = 33 // 0x21
	NaluTypePps         uint8 = 34 // 0x22
	NaluTypeAud         uint8 = 35 // 0x23
	NaluTypeSei         uint8 = 39 // 0x27
	NaluTypeSeiSuffix   uint8 = 40 // 0x28
)

// ParseNaluType hevc的nal类型取第1字节的中间6位
//
// 0*** ***0
func ParseNaluType(v uint8) uint8 {
	return (v >> 1) & 0x3F
}

func ParseNaluTypeReadable(v uint8) string {
	b, ok := NaluTypeMapping[ParseNaluType(v)]
	if !ok {
		return "unknown"
	}
	return b
}

// IsKeyFrameNalu 视为关键帧起点的slice类型
func IsKeyFrameNalu(typ uint8) bool {
	return typ == NaluTypeSliceIdr || typ == NaluTypeSliceIdrNlp || typ == NaluTypeSliceCranut
}

// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package avc

import (
	"github.com/q191201771/naza/pkg/bele"
	"github.com/sunlulu427/MixedStream/pkg/base"
)

var NaluStartCode4 = []byte{0x0, 0x0, 0x0, 0x1}

var NaluTypeMapping = map[uint8]string{
	NaluTypeSlice:    "SLICE",
	NaluTypeIdrSlice: "IDR",
	NaluTypeSei:      "SEI",
	NaluTypeSps:      "SPS",
	NaluTypePps:      "PPS",
	NaluTypeAud:      "AUD",
}

const (
	NaluTypeSlice    uint8 = 1
	NaluTypeIdrSlice uint8 = 5
	NaluTypeSei      uint8 = 6
	NaluTypeSps      uint8 = 7
	NaluTypePps      uint8 = 8
	NaluTypeAud      uint8 = 9 // Access Unit Delimiter
)

func ParseNaluType(v uint8) uint8 {
	return v & 0x1f
}

func ParseNaluTypeReadable(v uint8) string {
	b, ok := NaluTypeMapping[ParseNaluType(v)]
	if !ok {
		return "unknown"
	}
	return b
}

// IterateNaluStartCode 从<start>处开始查找3字节或4字节的起始码
//
// @return pos, length: 起始码的位置和长度，未找到时返回-1, -1
//
// 注意，起始码之后至少还需要1字节的数据，紧贴buffer末尾的起始码不认
func IterateNaluStartCode(nalu []byte, start int) (pos, length int) {
	if start < 0 {
		return -1, -1
	}
	for i := start; i+3 < len(nalu); i++ {
		if nalu[i] == 0x00 && nalu[i+1] == 0x00 {
			if nalu[i+2] == 0x01 {
				return i, 3
			}
			if i+4 < len(nalu) && nalu[i+2] == 0x00 && nalu[i+3] == 0x01 {
				return i, 4
			}
		}
	}
	return -1, -1
}

// SplitNaluAnnexb 切分Annexb格式的nalu流
//
// 相邻两个起始码之间的内容为一个nal，最后一个nal到buffer末尾为止
// 未找到任何起始码时返回 base.ErrAvc，调用方可回退尝试Avcc格式
func SplitNaluAnnexb(nals []byte) ([][]byte, error) {
	var ret [][]byte
	pos, length := IterateNaluStartCode(nals, 0)
	if pos == -1 {
		return nil, base.ErrAvc
	}

	start := pos + length
	for {
		next, nextLen := IterateNaluStartCode(nals, start)
		end := len(nals)
		if next != -1 {
			end = next
		}
		if end > start {
			ret = append(ret, nals[start:end])
		}
		if next == -1 {
			break
		}
		start = next + nextLen
	}
	return ret, nil
}

// SplitNaluAvcc 切分Avcc格式（4字节大端长度前缀）的nalu流
//
// 长度为0或超出剩余buffer时停止，剩余部分静默丢弃
func SplitNaluAvcc(nals []byte) ([][]byte, error) {
	var ret [][]byte
	err := IterateNaluAvcc(nals, func(nal []byte) {
		ret = append(ret, nal)
	})
	return ret, err
}

// IterateNaluAvcc 遍历Avcc格式的nalu流
func IterateNaluAvcc(nals []byte, handler func(nal []byte)) error {
	if len(nals) < 4 {
		return base.ErrAvc
	}
	pos := 0
	for pos+4 <= len(nals) {
		length := int(bele.BeUint32(nals[pos:]))
		pos += 4
		if length == 0 || pos+length > len(nals) {
			break
		}
		handler(nals[pos : pos+length])
		pos += length
	}
	return nil
}

// JoinNaluAvcc 将若干nal拼成Avcc格式的流
//
// @return 内存块为新申请的独立内存块
func JoinNaluAvcc(naluList ...[]byte) []byte {
	n := len(naluList)
	if n == 0 {
		return nil
	}
	n *= 4
	for _, item := range naluList {
		n += len(item)
	}
	ret := make([]byte, n)

	pos := 0
	for _, item := range naluList {
		bele.BePutUint32(ret[pos:], uint32(len(item)))
		pos += 4
		copy(ret[pos:], item)
		pos += len(item)
	}
	return ret
}

// BuildSeqHeaderFromSpsPps 根据sps、pps构造完整的视频sequence header tag body
//
// H.264-AVC-ISO_IEC_14496-15.pdf
// 5.2.4 Decoder configuration information
//
// 布局：
//
//	0x17 0x00 0x00 0x00 0x00
//	configurationVersion  =1
//	AVCProfileIndication  =sps[1]
//	profile_compatibility =sps[2]
//	AVCLevelIndication    =sps[3]
//	0xFF  (lengthSizeMinusOne=3)
//	0xE1  (1个sps)
//	u16 sps长度 + sps
//	0x01  (1个pps)
//	u16 pps长度 + pps
//
// @return 内存块为新申请的独立内存块
func BuildSeqHeaderFromSpsPps(sps, pps []byte) ([]byte, error) {
	if len(sps) < 4 || len(pps) < 1 {
		return nil, base.ErrAvc
	}

	ret := make([]byte, 0, 16+len(sps)+len(pps))
	ret = append(ret,
		base.RtmpAvcKeyFrame,
		base.RtmpAvcPacketTypeSeqHeader,
		0x00, 0x00, 0x00,
	)

	ret = append(ret, 0x01, sps[1], sps[2], sps[3], 0xFF)

	ret = append(ret, 0xE1, uint8(len(sps)>>8), uint8(len(sps)))
	ret = append(ret, sps...)

	ret = append(ret, 0x01, uint8(len(pps)>>8), uint8(len(pps)))
	ret = append(ret, pps...)
	return ret, nil
}

// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package avc_test

import (
	"bytes"
	"testing"

	"github.com/q191201771/naza/pkg/assert"
	"github.com/sunlulu427/MixedStream/pkg/avc"
)

func TestParseNaluType(t *testing.T) {
	assert.Equal(t, avc.NaluTypeSps, avc.ParseNaluType(0x67))
	assert.Equal(t, avc.NaluTypePps, avc.ParseNaluType(0x68))
	assert.Equal(t, avc.NaluTypeIdrSlice, avc.ParseNaluType(0x65))
	assert.Equal(t, avc.NaluTypeAud, avc.ParseNaluType(0x09))
}

func TestSplitNaluAnnexb(t *testing.T) {
	in := []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0xAA, 0xBB, 0x00, 0x00, 0x00, 0x01, 0x68, 0xCC}
	nals, err := avc.SplitNaluAnnexb(in)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(nals))
	assert.Equal(t, []byte{0x67, 0xAA, 0xBB}, nals[0])
	assert.Equal(t, []byte{0x68, 0xCC}, nals[1])

	// 3字节起始码混用
	in = []byte{0x00, 0x00, 0x01, 0x41, 0x01, 0x00, 0x00, 0x00, 0x01, 0x41, 0x02}
	nals, err = avc.SplitNaluAnnexb(in)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(nals))
	assert.Equal(t, []byte{0x41, 0x01}, nals[0])
	assert.Equal(t, []byte{0x41, 0x02}, nals[1])

	// 没有起始码
	_, err = avc.SplitNaluAnnexb([]byte{0x41, 0x02, 0x03})
	assert.IsNotNil(t, err)
}

func TestSplitNaluAvcc(t *testing.T) {
	in := []byte{
		0x00, 0x00, 0x00, 0x02, 0x41, 0x01,
		0x00, 0x00, 0x00, 0x01, 0x42,
	}
	nals, err := avc.SplitNaluAvcc(in)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(nals))
	assert.Equal(t, []byte{0x41, 0x01}, nals[0])
	assert.Equal(t, []byte{0x42}, nals[1])

	// 长度超出剩余buffer，静默截断
	in = []byte{0x00, 0x00, 0x00, 0x02, 0x41, 0x01, 0x00, 0x00, 0x00, 0x09, 0x42}
	nals, err = avc.SplitNaluAvcc(in)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(nals))
}

// annexb切分后以4字节长度前缀重组，再按avcc切分，得到相同的nal集合
func TestSplitJoinRoundTrip(t *testing.T) {
	in := []byte{
		0x00, 0x00, 0x00, 0x01, 0x67, 0xAA, 0xBB,
		0x00, 0x00, 0x01, 0x68, 0xCC,
		0x00, 0x00, 0x00, 0x01, 0x65, 0x01, 0x02, 0x03, 0x04,
	}
	nals, err := avc.SplitNaluAnnexb(in)
	assert.Equal(t, nil, err)

	joined := avc.JoinNaluAvcc(nals...)
	nals2, err := avc.SplitNaluAvcc(joined)
	assert.Equal(t, nil, err)
	assert.Equal(t, len(nals), len(nals2))
	for i := range nals {
		assert.Equal(t, true, bytes.Equal(nals[i], nals2[i]))
	}
}

func TestBuildSeqHeaderFromSpsPps(t *testing.T) {
	sps := []byte{
		0x67, 0x42, 0x00, 0x1F, 0xE9, 0x02, 0xC1, 0x2C, 0x80, 0x00,
		0x00, 0x03, 0x00, 0x80, 0x00, 0x00, 0x19, 0x07, 0x8C, 0x19,
	}
	pps := []byte{0x68, 0xCE, 0x06, 0xE2}

	body, err := avc.BuildSeqHeaderFromSpsPps(sps, pps)
	assert.Equal(t, nil, err)
	assert.Equal(t, 40, len(body))

	assert.Equal(t, []byte{0x17, 0x00, 0x00, 0x00, 0x00}, body[:5])
	assert.Equal(t, []byte{0x01, 0x42, 0x00, 0x1F, 0xFF, 0xE1, 0x00, 0x14}, body[5:13])
	assert.Equal(t, sps, body[13:33])
	assert.Equal(t, []byte{0x01, 0x00, 0x04}, body[33:36])
	assert.Equal(t, pps, body[36:])

	_, err = avc.BuildSeqHeaderFromSpsPps([]byte{0x67, 0x42}, pps)
	assert.IsNotNil(t, err)
}

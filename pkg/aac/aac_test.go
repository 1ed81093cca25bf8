// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package aac_test

import (
	"testing"

	"github.com/q191201771/naza/pkg/assert"
	"github.com/sunlulu427/MixedStream/pkg/aac"
)

func TestAscContext(t *testing.T) {
	// AAC LC, 44100, stereo
	asc := []byte{0x12, 0x10}
	ctx, err := aac.NewAscContext(asc)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint8(2), ctx.AudioObjectType)
	assert.Equal(t, uint8(4), ctx.SamplingFrequencyIndex)
	assert.Equal(t, uint8(2), ctx.ChannelConfiguration)

	rate, err := ctx.GetSamplingFrequency()
	assert.Equal(t, nil, err)
	assert.Equal(t, 44100, rate)

	assert.Equal(t, asc, ctx.Pack())

	_, err = aac.NewAscContext([]byte{0x12})
	assert.IsNotNil(t, err)
}

func TestAdtsHeaderContext(t *testing.T) {
	// AAC LC, 44100, stereo, aac_frame_length=371
	adtsHeader := []byte{0xFF, 0xF1, 0x50, 0x80, 0x2E, 0x7F, 0xFC}
	ctx, err := aac.NewAdtsHeaderContext(adtsHeader)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint8(2), ctx.AscCtx.AudioObjectType)
	assert.Equal(t, uint8(4), ctx.AscCtx.SamplingFrequencyIndex)
	assert.Equal(t, uint8(2), ctx.AscCtx.ChannelConfiguration)
	assert.Equal(t, uint16(371), ctx.AdtsLength)

	asc, err := aac.MakeAscWithAdtsHeader(adtsHeader)
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte{0x12, 0x10}, asc)
}

func TestMakeAudioDataSeqHeaderWithAsc(t *testing.T) {
	out, err := aac.MakeAudioDataSeqHeaderWithAsc([]byte{0x12, 0x10})
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte{0xAF, 0x00, 0x12, 0x10}, out)

	_, err = aac.MakeAudioDataSeqHeaderWithAsc(nil)
	assert.IsNotNil(t, err)
}

func TestMakeAudioDataWithRaw(t *testing.T) {
	out, err := aac.MakeAudioDataWithRaw([]byte{0x21, 0x22, 0x23})
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte{0xAF, 0x01, 0x21, 0x22, 0x23}, out)

	_, err = aac.MakeAudioDataWithRaw(nil)
	assert.IsNotNil(t, err)
}

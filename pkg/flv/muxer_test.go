// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package flv_test

import (
	"testing"

	"github.com/q191201771/naza/pkg/assert"
	"github.com/sunlulu427/MixedStream/pkg/base"
	"github.com/sunlulu427/MixedStream/pkg/flv"
)

var testSps = []byte{
	0x67, 0x42, 0x00, 0x1F, 0xE9, 0x02, 0xC1, 0x2C, 0x80, 0x00,
	0x00, 0x03, 0x00, 0x80, 0x00, 0x00, 0x19, 0x07, 0x8C, 0x19,
}
var testPps = []byte{0x68, 0xCE, 0x06, 0xE2}

func newAvcMuxer() *flv.Muxer {
	m := flv.NewMuxer()
	m.SetVideoConfig(base.VideoConfig{CodecId: base.RtmpCodecIdAvc, Width: 1280, Height: 720, Fps: 30})
	return m
}

func TestParseVideoFrameHarvestsParameterSets(t *testing.T) {
	m := newAvcMuxer()

	// 只有参数集的输入不产生媒体数据
	in := append([]byte{0x00, 0x00, 0x00, 0x01}, testSps...)
	in = append(in, 0x00, 0x00, 0x00, 0x01)
	in = append(in, testPps...)
	frame := m.ParseVideoFrame(in)
	assert.Equal(t, false, frame.HasData())
	assert.Equal(t, true, m.VideoSequenceReady())
}

func TestParseVideoFrameKeyFrame(t *testing.T) {
	m := newAvcMuxer()

	// aud + sps + pps + idr，aud丢弃，参数集剥离，idr进payload
	var in []byte
	appendNal := func(nal ...byte) {
		in = append(in, 0x00, 0x00, 0x00, 0x01)
		in = append(in, nal...)
	}
	appendNal(0x09, 0xF0)
	in = append(in, 0x00, 0x00, 0x00, 0x01)
	in = append(in, testSps...)
	in = append(in, 0x00, 0x00, 0x00, 0x01)
	in = append(in, testPps...)
	appendNal(0x65, 0x88, 0x84, 0x00)

	frame := m.ParseVideoFrame(in)
	assert.Equal(t, true, frame.IsKeyFrame)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x04, 0x65, 0x88, 0x84, 0x00}, frame.Payload)

	tag := m.BuildVideoTag(frame)
	assert.Equal(t, []byte{0x17, 0x01, 0x00, 0x00, 0x00}, tag[:5])
	assert.Equal(t, frame.Payload, tag[5:])
}

func TestParseVideoFrameInterFrameAvcc(t *testing.T) {
	m := newAvcMuxer()

	// avcc长度前缀输入
	in := []byte{0x00, 0x00, 0x00, 0x03, 0x41, 0x9A, 0x02}
	frame := m.ParseVideoFrame(in)
	assert.Equal(t, false, frame.IsKeyFrame)
	assert.Equal(t, in, frame.Payload)

	tag := m.BuildVideoTag(frame)
	assert.Equal(t, []byte{0x27, 0x01, 0x00, 0x00, 0x00}, tag[:5])
}

func TestParseVideoFrameHevc(t *testing.T) {
	m := flv.NewMuxer()
	m.SetVideoConfig(base.VideoConfig{CodecId: base.RtmpCodecIdHevc, Width: 1280, Height: 720, Fps: 30})

	vps := []byte{0x40, 0x01, 0x0C}
	sps := []byte{0x42, 0x01, 0x01, 0x01, 0x60, 0x00, 0x00, 0x00, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00, 0x5D, 0xAC, 0x90}
	pps := []byte{0x44, 0x01, 0xC0}
	idr := []byte{0x26, 0x01, 0xAF, 0x0C}

	var in []byte
	for _, nal := range [][]byte{vps, sps, pps, idr} {
		in = append(in, 0x00, 0x00, 0x00, 0x01)
		in = append(in, nal...)
	}
	frame := m.ParseVideoFrame(in)
	assert.Equal(t, true, frame.IsKeyFrame)
	assert.Equal(t, true, m.VideoSequenceReady())
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x04, 0x26, 0x01, 0xAF, 0x0C}, frame.Payload)

	tag := m.BuildVideoTag(frame)
	assert.Equal(t, uint8(0x1C), tag[0])

	body, err := m.BuildVideoSequenceHeader()
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte{0x1C, 0x00, 0x00, 0x00, 0x00}, body[:5])
	assert.Equal(t, true, m.HasSentVideoSequence())
}

func TestBuildVideoSequenceHeader(t *testing.T) {
	m := newAvcMuxer()

	_, err := m.BuildVideoSequenceHeader()
	assert.IsNotNil(t, err)
	assert.Equal(t, false, m.HasSentVideoSequence())

	in := append([]byte{0x00, 0x00, 0x00, 0x01}, testSps...)
	in = append(in, 0x00, 0x00, 0x00, 0x01)
	in = append(in, testPps...)
	m.ParseVideoFrame(in)

	body, err := m.BuildVideoSequenceHeader()
	assert.Equal(t, nil, err)
	assert.Equal(t, 40, len(body))
	assert.Equal(t, []byte{0x17, 0x00, 0x00, 0x00, 0x00, 0x01, 0x42, 0x00, 0x1F, 0xFF, 0xE1, 0x00, 0x14}, body[:13])
	assert.Equal(t, true, m.HasSentVideoSequence())
}

func TestBuildAudioSequenceHeader(t *testing.T) {
	m := flv.NewMuxer()

	// asc未就绪时音频不可推送
	_, err := m.BuildAudioSequenceHeader()
	assert.IsNotNil(t, err)
	assert.Equal(t, false, m.AudioSequenceReady())

	m.SetAudioConfig(base.AudioConfig{SampleRate: 44100, Channels: 2, SampleSizeBits: 16, Asc: []byte{0x12, 0x10}})
	assert.Equal(t, true, m.AudioSequenceReady())

	body, err := m.BuildAudioSequenceHeader()
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte{0xAF, 0x00, 0x12, 0x10}, body)

	tag := m.BuildAudioTag([]byte{0x21, 0x22})
	assert.Equal(t, []byte{0xAF, 0x01, 0x21, 0x22}, tag)
}

func TestMuxerReset(t *testing.T) {
	m := newAvcMuxer()
	m.SetAudioConfig(base.AudioConfig{SampleRate: 44100, Channels: 2, SampleSizeBits: 16, Asc: []byte{0x12, 0x10}})

	in := append([]byte{0x00, 0x00, 0x00, 0x01}, testSps...)
	in = append(in, 0x00, 0x00, 0x00, 0x01)
	in = append(in, testPps...)
	m.ParseVideoFrame(in)

	_, err := m.BuildVideoSequenceHeader()
	assert.Equal(t, nil, err)
	m.MarkMetadataSent()
	m.MarkAudioSequenceSent()

	m.Reset()
	assert.Equal(t, false, m.HasSentMetadata())
	assert.Equal(t, false, m.HasSentVideoSequence())
	assert.Equal(t, false, m.HasSentAudioSequence())
	assert.Equal(t, false, m.VideoSequenceReady())

	// 配置保留，asc仍在，音频仍可就绪
	assert.Equal(t, true, m.AudioSequenceReady())
}

func TestSetVideoConfigClearsFlags(t *testing.T) {
	m := newAvcMuxer()
	in := append([]byte{0x00, 0x00, 0x00, 0x01}, testSps...)
	in = append(in, 0x00, 0x00, 0x00, 0x01)
	in = append(in, testPps...)
	m.ParseVideoFrame(in)
	_, err := m.BuildVideoSequenceHeader()
	assert.Equal(t, nil, err)
	m.MarkMetadataSent()

	m.SetVideoConfig(base.VideoConfig{CodecId: base.RtmpCodecIdAvc, Width: 1920, Height: 1080, Fps: 25})
	assert.Equal(t, false, m.HasSentMetadata())
	assert.Equal(t, false, m.HasSentVideoSequence())
	// 参数集不清空
	assert.Equal(t, true, m.VideoSequenceReady())
}

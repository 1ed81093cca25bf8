// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package main

import (
	"bufio"
	"context"
	"errors"

	ts "github.com/asticode/go-astits"
	"github.com/haivision/srtgo"
	"github.com/q191201771/naza/pkg/nazalog"
	"github.com/sunlulu427/MixedStream/pkg/aac"
	"github.com/sunlulu427/MixedStream/pkg/base"
	"github.com/sunlulu427/MixedStream/pkg/logic"
)

// Publisher 从SRT socket解复用TS流并喂给session
type Publisher struct {
	ctx        context.Context
	streamName string
	socket     *srtgo.SrtSocket
	session    *logic.StreamSession
	demuxer    *ts.Demuxer

	streamTypes     map[uint16]ts.StreamType
	videoConfig     base.VideoConfig
	audioConfigured bool
}

func NewPublisher(ctx context.Context, streamName string, socket *srtgo.SrtSocket, session *logic.StreamSession, videoConfig base.VideoConfig) *Publisher {
	return &Publisher{
		ctx:         ctx,
		streamName:  streamName,
		socket:      socket,
		session:     session,
		demuxer:     ts.NewDemuxer(ctx, bufio.NewReader(socket)),
		streamTypes: make(map[uint16]ts.StreamType),
		videoConfig: videoConfig,
	}
}

func (p *Publisher) Run() {
	defer p.socket.Close()
	for {
		d, err := p.demuxer.NextData()
		if err != nil {
			if errors.Is(err, ts.ErrNoMorePackets) {
				nazalog.Infof("stream end. stream=%s", p.streamName)
				return
			}
			if errors.Is(err, srtgo.EConnLost) {
				nazalog.Infof("stream disconnected. stream=%s", p.streamName)
				return
			}
			nazalog.Errorf("demux failed. stream=%s, err=%+v", p.streamName, err)
			return
		}

		if d.PMT != nil {
			for _, es := range d.PMT.ElementaryStreams {
				p.streamTypes[es.ElementaryPID] = es.StreamType
				if es.StreamType == ts.StreamTypeH265Video && !p.videoConfig.IsHevc() {
					// PMT声明了hevc，修正默认的h264配置
					p.videoConfig.CodecId = base.RtmpCodecIdHevc
					p.session.ConfigureVideo(p.videoConfig)
				}
			}
			continue
		}

		if d.PES == nil {
			continue
		}
		streamType, ok := p.streamTypes[d.FirstPacket.Header.PID]
		if !ok {
			nazalog.Warnf("got payload for unknown pid. pid=%d", d.FirstPacket.Header.PID)
			continue
		}

		var pts int64
		if d.PES.Header.OptionalHeader != nil && d.PES.Header.OptionalHeader.PTS != nil {
			pts = d.PES.Header.OptionalHeader.PTS.Base / 90
		}

		switch streamType {
		case ts.StreamTypeH264Video, ts.StreamTypeH265Video:
			p.session.PushVideoFrame(d.PES.Data, pts)
		case ts.StreamTypeAACAudio:
			p.feedAdtsFrames(d.PES.Data, pts)
		}
	}
}

func (p *Publisher) feedAdtsFrames(data []byte, pts int64) {
	for len(data) >= aac.AdtsHeaderLength {
		ctx, err := aac.NewAdtsHeaderContext(data)
		if err != nil || int(ctx.AdtsLength) > len(data) || ctx.AdtsLength <= aac.AdtsHeaderLength {
			nazalog.Warnf("broken adts frame, drop remaining. len=%d", len(data))
			return
		}

		if !p.audioConfigured {
			sampleRate, err := ctx.AscCtx.GetSamplingFrequency()
			if err != nil {
				sampleRate = 44100
			}
			p.session.ConfigureAudio(base.AudioConfig{
				SampleRate:     uint32(sampleRate),
				Channels:       uint32(ctx.AscCtx.ChannelConfiguration),
				SampleSizeBits: 16,
				Asc:            ctx.AscCtx.Pack(),
			})
			p.audioConfigured = true
		}

		p.session.PushAudioFrame(data[aac.AdtsHeaderLength:ctx.AdtsLength], pts)
		data = data[ctx.AdtsLength:]
	}
}

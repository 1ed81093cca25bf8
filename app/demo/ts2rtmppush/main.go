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
	"flag"
	"fmt"
	"os"
	"time"

	ts "github.com/asticode/go-astits"
	"github.com/q191201771/naza/pkg/bininfo"
	"github.com/q191201771/naza/pkg/bitrate"
	"github.com/q191201771/naza/pkg/nazalog"
	"github.com/sunlulu427/MixedStream/pkg/aac"
	"github.com/sunlulu427/MixedStream/pkg/base"
	"github.com/sunlulu427/MixedStream/pkg/logic"
	"github.com/sunlulu427/MixedStream/pkg/rtmp"
)

// 读取本地TS文件，解出H264/H265 es流和AAC adts帧，经由 logic.StreamSession 推送
//
// 当前绑定的是 rtmp.DummyTransportFactory，即干跑整条muxing与推流链路但不出网，
// 用于校验文件内容与链路行为。接入真实RTMP底层库时实现 rtmp.ITransportFactory 并替换。
//
// Usage:
// ./bin/ts2rtmppush -i testdata/test.ts -o rtmp://127.0.0.1:1935/live/test

type demoObserver struct{}

func (o *demoObserver) OnConnecting(ctx base.ThreadContext) {
	nazalog.Infof("event connecting. ctx=%d", ctx)
}

func (o *demoObserver) OnConnected() {
	nazalog.Info("event connected.")
}

func (o *demoObserver) OnError(code base.PushErrorCode) {
	nazalog.Errorf("event error. code=%d", code)
	os.Exit(1)
}

func (o *demoObserver) OnClosed(ctx base.ThreadContext) {
	nazalog.Infof("event closed. ctx=%d", ctx)
}

func (o *demoObserver) OnStats(bitrateKbps int, fps int) {
	nazalog.Debugf("stats. bitrate=%dkbps, fps=%d", bitrateKbps, fps)
}

var br bitrate.Bitrate

func main() {
	filename, url, width, height, fps := parseFlag()

	session := logic.NewStreamSession(rtmp.NewDummyTransportFactory())
	if err := session.Init(url, &demoObserver{}); err != nil {
		nazalog.Fatalf("init session failed. err=%+v", err)
	}
	if err := session.Start(); err != nil {
		nazalog.Fatalf("start session failed. err=%+v", err)
	}

	br = bitrate.New()
	go func() {
		for {
			time.Sleep(1 * time.Second)
			nazalog.Debugf("bitrate=%.3fkbit/s", br.Rate())
		}
	}()

	if err := feedTsFile(session, filename, width, height, fps); err != nil {
		nazalog.Errorf("feed ts file failed. err=%+v", err)
	}

	session.Stop()
	nazalog.Info("bye.")
}

// feedTsFile 用astits解复用TS文件，将es数据喂给session
func feedTsFile(session *logic.StreamSession, filename string, width, height, fps uint32) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	demuxer := ts.NewDemuxer(context.Background(), bufio.NewReader(file))

	// ElementaryPID -> stream type
	streamTypes := make(map[uint16]ts.StreamType)
	videoConfigured := false
	audioConfigured := false

	for {
		d, err := demuxer.NextData()
		if err != nil {
			if errors.Is(err, ts.ErrNoMorePackets) {
				return nil
			}
			return err
		}

		if d.PMT != nil {
			for _, es := range d.PMT.ElementaryStreams {
				streamTypes[es.ElementaryPID] = es.StreamType
			}
			continue
		}

		if d.PES == nil {
			continue
		}
		streamType, ok := streamTypes[d.FirstPacket.Header.PID]
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
			if !videoConfigured {
				codecId := base.RtmpCodecIdAvc
				if streamType == ts.StreamTypeH265Video {
					codecId = base.RtmpCodecIdHevc
				}
				session.ConfigureVideo(base.VideoConfig{
					CodecId: codecId,
					Width:   width,
					Height:  height,
					Fps:     fps,
				})
				videoConfigured = true
			}
			br.Add(len(d.PES.Data))
			session.PushVideoFrame(d.PES.Data, pts)
		case ts.StreamTypeAACAudio:
			audioConfigured = feedAdtsFrames(session, d.PES.Data, pts, audioConfigured)
		}
	}
}

// feedAdtsFrames PES里可能带多个adts帧，逐帧剥头后喂给session
//
// 首帧的adts header同时用于配置音频参数
func feedAdtsFrames(session *logic.StreamSession, data []byte, pts int64, configured bool) bool {
	for len(data) >= aac.AdtsHeaderLength {
		ctx, err := aac.NewAdtsHeaderContext(data)
		if err != nil || int(ctx.AdtsLength) > len(data) || ctx.AdtsLength <= aac.AdtsHeaderLength {
			nazalog.Warnf("broken adts frame, drop remaining. len=%d", len(data))
			break
		}

		if !configured {
			sampleRate, err := ctx.AscCtx.GetSamplingFrequency()
			if err != nil {
				sampleRate = 44100
			}
			session.ConfigureAudio(base.AudioConfig{
				SampleRate:     uint32(sampleRate),
				Channels:       uint32(ctx.AscCtx.ChannelConfiguration),
				SampleSizeBits: 16,
				Asc:            ctx.AscCtx.Pack(),
			})
			configured = true
		}

		br.Add(int(ctx.AdtsLength))
		session.PushAudioFrame(data[aac.AdtsHeaderLength:ctx.AdtsLength], pts)
		data = data[ctx.AdtsLength:]
	}
	return configured
}

func parseFlag() (filename, url string, width, height, fps uint32) {
	binInfoFlag := flag.Bool("v", false, "show bin info")
	i := flag.String("i", "", "specify ts file")
	o := flag.String("o", "rtmp://127.0.0.1:1935/live/test", "specify rtmp push url")
	w := flag.Uint("width", 1280, "video width written into metadata")
	h := flag.Uint("height", 720, "video height written into metadata")
	f := flag.Uint("fps", 30, "video fps written into metadata")
	flag.Parse()

	if *binInfoFlag {
		_, _ = fmt.Fprint(os.Stderr, bininfo.StringifyMultiLine())
		_, _ = fmt.Fprintln(os.Stderr, base.MixedStreamFullInfo)
		os.Exit(0)
	}
	if *i == "" {
		flag.Usage()
		os.Exit(1)
	}
	return *i, *o, uint32(*w), uint32(*h), uint32(*f)
}

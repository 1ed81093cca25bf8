// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package main

// #cgo LDFLAGS: -lsrt
// #include <srt/srt.h>
import "C"
import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/haivision/srtgo"
	"github.com/q191201771/naza/pkg/nazalog"
	"github.com/sunlulu427/MixedStream/pkg/base"
	"github.com/sunlulu427/MixedStream/pkg/logic"
	"github.com/sunlulu427/MixedStream/pkg/rtmp"
)

type Server struct {
	addr string
	port uint

	url    string
	width  uint32
	height uint32
	fps    uint32
}

func NewServer(addr string, port uint, url string, width, height, fps uint32) *Server {
	return &Server{
		addr:   addr,
		port:   port,
		url:    url,
		width:  width,
		height: height,
		fps:    fps,
	}
}

func (s *Server) Run(ctx context.Context) error {
	options := make(map[string]string)
	options["transtype"] = "live"

	sck := srtgo.NewSrtSocket(s.addr, uint16(s.port), options)
	defer sck.Close()

	sck.SetListenCallback(s.listenCallback)
	if err := sck.Listen(1); err != nil {
		return err
	}
	nazalog.Infof("srt listen. addr=%s, port=%d", s.addr, s.port)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		socket, addr, err := sck.Accept()
		if err != nil {
			nazalog.Errorf("accept failed. err=%+v", err)
			continue
		}
		go s.handle(ctx, socket, addr)
	}
}

func (s *Server) handle(ctx context.Context, socket *srtgo.SrtSocket, addr *net.UDPAddr) {
	idString, err := socket.GetSockOptString(C.SRTO_STREAMID)
	if err != nil {
		nazalog.Errorf("get streamid failed. err=%+v", err)
		socket.Close()
		return
	}
	streamId, err := parseStreamId(idString)
	if err != nil {
		nazalog.Errorf("parse streamid failed. streamid=%s, err=%+v", idString, err)
		socket.Close()
		return
	}

	switch strings.ToLower(streamId.Mode) {
	case "publish":
		nazalog.Infof("srt publisher connected. host=%s, remote=%s", streamId.Host, addr.String())

		videoConfig := base.VideoConfig{
			CodecId: base.RtmpCodecIdAvc,
			Width:   s.width,
			Height:  s.height,
			Fps:     s.fps,
		}
		session := logic.NewStreamSession(rtmp.NewDummyTransportFactory())
		session.ConfigureVideo(videoConfig)
		if err = session.Init(s.url, &pushObserver{}); err != nil {
			nazalog.Errorf("init session failed. err=%+v", err)
			socket.Close()
			return
		}
		if err = session.Start(); err != nil {
			nazalog.Errorf("start session failed. err=%+v", err)
			socket.Close()
			return
		}

		publisher := NewPublisher(ctx, streamId.Host, socket, session, videoConfig)
		publisher.Run()

		session.Stop()
	default:
		nazalog.Warnf("unsupported streamid mode. mode=%s", streamId.Mode)
		socket.Close()
	}
}

func (s *Server) listenCallback(socket *srtgo.SrtSocket, version int, addr *net.UDPAddr, streamid string) bool {
	nazalog.Infof("socket will connect. hsVersion=%d, streamid=%s", version, streamid)

	id, err := parseStreamId(streamid)
	if err != nil || id.Host == "" || id.Mode == "" {
		socket.SetRejectReason(srtgo.RejectionReasonBadRequest)
		return false
	}
	return true
}

type streamId struct {
	Host string
	Mode string
}

func parseStreamId(v string) (*streamId, error) {
	if !strings.Contains(v, "#!::") {
		return nil, errors.New("invalid streamid")
	}
	id := &streamId{}
	for _, item := range strings.Split(strings.TrimPrefix(v, "#!::"), ",") {
		kv := strings.SplitN(item, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "h":
			id.Host = kv[1]
		case "m":
			id.Mode = kv[1]
		}
	}
	return id, nil
}

type pushObserver struct{}

func (o *pushObserver) OnConnecting(ctx base.ThreadContext) {
	nazalog.Infof("event connecting. ctx=%d", ctx)
}

func (o *pushObserver) OnConnected() {
	nazalog.Info("event connected.")
}

func (o *pushObserver) OnError(code base.PushErrorCode) {
	nazalog.Errorf("event error. code=%d", code)
}

func (o *pushObserver) OnClosed(ctx base.ThreadContext) {
	nazalog.Infof("event closed. ctx=%d", ctx)
}

func (o *pushObserver) OnStats(bitrateKbps int, fps int) {
	nazalog.Debugf("stats. bitrate=%dkbps, fps=%d", bitrateKbps, fps)
}

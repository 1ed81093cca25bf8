// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/q191201771/naza/pkg/bininfo"
	"github.com/q191201771/naza/pkg/nazalog"
	"github.com/sunlulu427/MixedStream/pkg/base"
)

// 接收一路SRT caller投递的MPEG-TS流，解出es后经由 logic.StreamSession 推送
//
// streamid约定和lal的srt demo一致：#!::h=<host>,m=publish
//
// 当前绑定的是 rtmp.DummyTransportFactory，即干跑整条muxing与推流链路但不出网。
// 接入真实RTMP底层库时实现 rtmp.ITransportFactory 并替换。
//
// Usage:
// ./bin/srt2rtmppush -port 6001 -o rtmp://127.0.0.1:1935/live/test
// ffmpeg -re -i in.mp4 -c copy -f mpegts "srt://127.0.0.1:6001?streamid=#!::h=test,m=publish"

func main() {
	addr, port, url, width, height, fps := parseFlag()

	server := NewServer(addr, port, url, width, height, fps)
	if err := server.Run(context.Background()); err != nil {
		nazalog.Fatalf("run server failed. err=%+v", err)
	}
}

func parseFlag() (addr string, port uint, url string, width, height, fps uint32) {
	binInfoFlag := flag.Bool("v", false, "show bin info")
	a := flag.String("addr", "0.0.0.0", "srt listen addr")
	p := flag.Uint("port", 6001, "srt listen port")
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
	return *a, *p, *o, uint32(*w), uint32(*h), uint32(*f)
}

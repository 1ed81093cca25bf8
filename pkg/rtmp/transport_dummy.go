// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package rtmp

import (
	"time"

	"github.com/q191201771/naza/pkg/nazaatomic"
	"github.com/sunlulu427/MixedStream/pkg/base"
)

// DummyTransportFactory 不出网的transport实现
//
// 用于干跑（验证muxing与推流链路），demo程序使用它，
// 每个packet打一行debug日志后直接当作发送成功
type DummyTransportFactory struct {
	epoch time.Time

	SentPacketCount nazaatomic.Uint32
}

func NewDummyTransportFactory() *DummyTransportFactory {
	return &DummyTransportFactory{
		epoch: time.Now(),
	}
}

func (f *DummyTransportFactory) Alloc() (ITransportConn, error) {
	return &dummyTransportConn{factory: f}, nil
}

func (f *DummyTransportFactory) NowMs() uint32 {
	return uint32(time.Since(f.epoch) / time.Millisecond)
}

type dummyTransportConn struct {
	factory *DummyTransportFactory
	url     string
}

func (c *dummyTransportConn) Init()                     {}
func (c *dummyTransportConn) SetTimeout(seconds int)    {}
func (c *dummyTransportConn) EnableWrite()              {}
func (c *dummyTransportConn) Connect() error            { return nil }
func (c *dummyTransportConn) ConnectStream(_ int) error { return nil }

func (c *dummyTransportConn) SetupUrl(url string) error {
	c.url = url
	return nil
}

func (c *dummyTransportConn) SendPacket(pkt *base.RtmpPacket, queued bool) error {
	c.factory.SentPacketCount.Increment()
	Log.Debugf("dummy send. type=%d, csid=%d, ts=%d, len=%d",
		pkt.PacketType, pkt.Csid, pkt.TimestampMs, len(pkt.Body))
	return nil
}

func (c *dummyTransportConn) StreamId() uint32 {
	return 1
}

func (c *dummyTransportConn) Close() {}
func (c *dummyTransportConn) Free()  {}

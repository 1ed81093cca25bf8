// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package rtmp

import "github.com/sunlulu427/MixedStream/pkg/base"

// 对RTMP底层库（握手、chunk切分、信令）的抽象。
// 核心只构造packet的body，不关心线上字节如何组织。
// 宿主将自己的RTMP库绑定到这两个接口上

// ITransportFactory 分配连接句柄，并提供单调毫秒时钟
type ITransportFactory interface {
	// Alloc 对应RTMP_Alloc，失败时返回error
	Alloc() (ITransportConn, error)

	// NowMs 单调毫秒时钟，起点任意，溢出通过u32减法处理
	NowMs() uint32
}

// ITransportConn 一条RTMP连接
//
// 调用顺序固定：Init -> SetupUrl -> SetTimeout -> EnableWrite -> Connect ->
// ConnectStream -> SendPacket若干 -> Close -> Free
type ITransportConn interface {
	Init()
	SetupUrl(url string) error
	SetTimeout(seconds int)
	EnableWrite()
	Connect() error
	ConnectStream(index int) error

	// SendPacket 可能阻塞在socket IO上，时长受SetTimeout约束
	// 单个packet发送失败不影响连接，由调用方决定是否继续
	SendPacket(pkt *base.RtmpPacket, queued bool) error

	StreamId() uint32
	Close()
	Free()
}

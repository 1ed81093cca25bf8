// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package base

// ThreadContext 回调发生在哪类执行上下文，方便上层决定是否需要切换线程
type ThreadContext int

const (
	ThreadContextMain ThreadContext = iota
	ThreadContextWorker
)

// PushErrorCode 负数错误码，和历史实现保持兼容
type PushErrorCode int32

const (
	PushErrorCodeInitFailure     PushErrorCode = -9  // transport句柄分配失败
	PushErrorCodeUrlSetupFailure PushErrorCode = -10 // url非法或被transport拒绝
	PushErrorCodeConnectFailure  PushErrorCode = -11 // tcp连接、握手或createStream失败
	PushErrorCodeClosed          PushErrorCode = -12 // 预留给上层重连监督者，核心内部当前不抛出
)

// IPushObserver 推流状态回调，由宿主实现
//
// 注意，不要在回调中调用session的Stop，会自己join自己
type IPushObserver interface {
	OnConnecting(ctx ThreadContext)
	OnConnected()
	OnError(code PushErrorCode)
	OnClosed(ctx ThreadContext)
}

// IStatsObserver 可选的码率帧率回调
//
// observer同时实现该接口时，façade在统计窗口闭合时调用
type IStatsObserver interface {
	OnStats(bitrateKbps int, fps int)
}

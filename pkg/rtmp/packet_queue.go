// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package rtmp

import (
	"sync"

	"github.com/sunlulu427/MixedStream/pkg/base"
)

// PacketQueue 阻塞式FIFO，生产者是推帧线程，消费者是writer
//
// 无上限。真实吞吐由硬件编码器约束，不会无限增长。
// 严格先进先出，不按类型或时间戳重排，
// sequence header先于媒体包的顺序由生产者保证
type PacketQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	packets  []*base.RtmpPacket
	shutdown bool
}

func NewPacketQueue() *PacketQueue {
	q := &PacketQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push 入队，packet所有权随之转移给队列
func (q *PacketQueue) Push(pkt *base.RtmpPacket) {
	if pkt == nil {
		return
	}
	q.mu.Lock()
	q.packets = append(q.packets, pkt)
	q.cond.Signal()
	q.mu.Unlock()
}

// PopBlocking 队列为空时阻塞等待
//
// 返回nil表示队列为空且 NotifyAll 已被调用（关闭流程）
func (q *PacketQueue) PopBlocking() *base.RtmpPacket {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.packets) == 0 && !q.shutdown {
		q.cond.Wait()
	}
	if len(q.packets) == 0 {
		return nil
	}
	pkt := q.packets[0]
	q.packets[0] = nil
	q.packets = q.packets[1:]
	return pkt
}

// NotifyAll 唤醒所有等待者，此后空队列上的 PopBlocking 立即返回nil
func (q *PacketQueue) NotifyAll() {
	q.mu.Lock()
	q.shutdown = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

// Clear 丢弃所有未发送的packet
func (q *PacketQueue) Clear() {
	q.mu.Lock()
	for i := range q.packets {
		q.packets[i] = nil
	}
	q.packets = nil
	q.mu.Unlock()
}

func (q *PacketQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.packets)
}

// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package base

const (
	// RtmpHeaderTypeLarge chunk basic header中的fmt 0，即完整消息头
	RtmpHeaderTypeLarge uint8 = 0
)

// RtmpPacket 待发送的一条RTMP消息
//
// 由publisher构造后enqueue进队列，所有权随之转移给队列，
// writer取出并发送（无论成败）后释放，见 rtmp.PacketQueue
type RtmpPacket struct {
	Body        []byte
	PacketType  uint8 // RtmpTypeIdAudio RtmpTypeIdVideo RtmpTypeIdMetadata
	TimestampMs uint32
	Csid        int
	StreamId    uint32 // 发送前由writer填充为transport的stream id

	HasAbsTimestamp bool  // 恒为false
	HeaderType      uint8 // 恒为 RtmpHeaderTypeLarge
}

func NewRtmpPacket(body []byte, packetType uint8, timestampMs uint32, csid int) *RtmpPacket {
	return &RtmpPacket{
		Body:            body,
		PacketType:      packetType,
		TimestampMs:     timestampMs,
		Csid:            csid,
		HasAbsTimestamp: false,
		HeaderType:      RtmpHeaderTypeLarge,
	}
}

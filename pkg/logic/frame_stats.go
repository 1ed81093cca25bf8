// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package logic

import "math"

const statsWindowMs = 1000

// FrameStats 1秒滑动窗口的码率帧率估算
//
// 视频编码器每吐出一帧调用一次 OnSample，窗口满1秒时输出一次结果并
// 以当前时间戳重开窗口，窗口首尾相接不留空洞。
// 非线程安全，由调用方串行
type FrameStats struct {
	windowBytes   uint64
	windowFrames  uint32
	windowStartMs int64
	started       bool
}

type FrameStatsResult struct {
	BitrateKbps int
	Fps         int
}

// OnSample 累积一帧的字节数
//
// @param nowMs: 宿主时钟毫秒，允许回跳（回跳期间不产出结果）
//
// @return ok: true时result有效，同时窗口已重开
func (s *FrameStats) OnSample(bytes int, nowMs int64) (result FrameStatsResult, ok bool) {
	if !s.started {
		s.windowStartMs = nowMs
		s.started = true
	}
	s.windowBytes += uint64(bytes)
	s.windowFrames++

	elapsed := nowMs - s.windowStartMs
	if elapsed < statsWindowMs {
		return
	}

	bitrate := int(math.Round(float64(s.windowBytes) * 8 * 1000 / float64(elapsed) / 1000))
	fps := int(math.Round(float64(s.windowFrames) * 1000 / float64(elapsed)))
	if bitrate < 0 {
		bitrate = 0
	}
	if fps < 0 {
		fps = 0
	}
	result.BitrateKbps = bitrate
	result.Fps = fps
	ok = true

	s.Reset(nowMs)
	return
}

func (s *FrameStats) Reset(nowMs int64) {
	s.windowBytes = 0
	s.windowFrames = 0
	s.windowStartMs = nowMs
	s.started = true
}

// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package logic

import (
	"sync"

	"github.com/sunlulu427/MixedStream/pkg/base"
	"github.com/sunlulu427/MixedStream/pkg/rtmp"
)

// StreamSession 编码器与推流器之间的门面，由宿主持有
//
// 历史实现是进程级单例，这里改为显式的会话句柄；
// 行为上保持同一时刻至多一路活动推流。
//
// 配置可以早于 Init 到达，会被缓存并在 Init 时应用到新建的publisher上。
// 推帧热路径只在取publisher快照时持锁，之后在锁外调用muxer与队列
type StreamSession struct {
	uniqueKey string
	factory   rtmp.ITransportFactory

	mu                 sync.Mutex
	pub                *rtmp.PushSession
	observer           base.IPushObserver
	pendingVideoConfig *base.VideoConfig
	pendingAudioConfig *base.AudioConfig
	videoStats         FrameStats

	modPushSessionOptions []rtmp.ModPushSessionOption
}

// NewStreamSession
//
// @param factory: RTMP底层库的绑定，见 rtmp.ITransportFactory
// @param modOptions: 透传给内部 rtmp.PushSession
func NewStreamSession(factory rtmp.ITransportFactory, modOptions ...rtmp.ModPushSessionOption) *StreamSession {
	s := &StreamSession{
		uniqueKey:             base.GenUkStreamSession(),
		factory:               factory,
		modPushSessionOptions: modOptions,
	}
	Log.Infof("[%s] lifecycle new stream session.", s.uniqueKey)
	return s
}

// ConfigureVideo 配置视频参数
//
// publisher存在时立即转发，否则缓存到 Init 时应用。
// 注意，connect成功后变更配置不会重发metadata，应在 Start 前配置好
func (s *StreamSession) ConfigureVideo(config base.VideoConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := config
	s.pendingVideoConfig = &c
	Log.Infof("[%s] configure video. %dx%d@%d, codec=%d",
		s.uniqueKey, config.Width, config.Height, config.Fps, config.CodecId)
	if s.pub != nil {
		s.pub.ConfigureVideo(config)
	}
}

func (s *StreamSession) ConfigureAudio(config base.AudioConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := config
	s.pendingAudioConfig = &c
	Log.Infof("[%s] configure audio. sampleRate=%d, channels=%d, sampleBits=%d, ascLen=%d",
		s.uniqueKey, config.SampleRate, config.Channels, config.SampleSizeBits, len(config.Asc))
	if s.pub != nil {
		s.pub.ConfigureAudio(config)
	}
}

// Init 绑定推流地址与状态回调，替换掉之前的publisher
func (s *StreamSession) Init(url string, observer base.IPushObserver) error {
	if s.factory == nil {
		return base.ErrTransportRequired
	}

	s.mu.Lock()
	old := s.pub
	s.pub = nil
	s.mu.Unlock()
	if old != nil {
		Log.Infof("[%s] releasing existing publisher. %s", s.uniqueKey, old.UniqueKey())
		old.Stop()
	}

	Log.Infof("[%s] init. url=%s", s.uniqueKey, base.MaskUrl(url))
	pub := rtmp.NewPushSession(s.factory, url, observer, s.modPushSessionOptions...)

	s.mu.Lock()
	s.observer = observer
	if s.pendingVideoConfig != nil {
		pub.ConfigureVideo(*s.pendingVideoConfig)
	}
	if s.pendingAudioConfig != nil {
		pub.ConfigureAudio(*s.pendingAudioConfig)
	}
	s.pub = pub
	s.videoStats = FrameStats{}
	s.mu.Unlock()
	return nil
}

func (s *StreamSession) Start() error {
	s.mu.Lock()
	pub := s.pub
	s.mu.Unlock()
	if pub == nil {
		return base.ErrSessionNotInited
	}
	Log.Infof("[%s] start. %s", s.uniqueKey, pub.UniqueKey())
	return pub.Start()
}

// Stop 停止推流并释放回调
//
// 对observer补一个 OnClosed(Main)，之后session需要重新 Init 才能使用
func (s *StreamSession) Stop() {
	s.mu.Lock()
	pub := s.pub
	observer := s.observer
	s.pub = nil
	s.observer = nil
	s.mu.Unlock()

	if pub == nil {
		return
	}
	Log.Infof("[%s] stop. %s", s.uniqueKey, pub.UniqueKey())
	pub.Stop()
	if observer != nil {
		observer.OnClosed(base.ThreadContextMain)
	}
}

// PushVideoFrame 编码器输出线程调用
//
// pts仅作参考，线上时间戳为自publish成功起的墙上毫秒，见 rtmp.PushSession
func (s *StreamSession) PushVideoFrame(b []byte, pts int64) {
	if s.factory == nil {
		return
	}
	s.mu.Lock()
	pub := s.pub
	observer := s.observer
	result, ok := s.videoStats.OnSample(len(b), int64(s.factory.NowMs()))
	s.mu.Unlock()

	if pub == nil {
		Log.Warnf("[%s] drop video frame, publisher missing. len=%d, pts=%d", s.uniqueKey, len(b), pts)
		return
	}
	pub.PushVideoFrame(b, pts)

	if ok {
		if statsObserver, has := observer.(base.IStatsObserver); has {
			statsObserver.OnStats(result.BitrateKbps, result.Fps)
		}
	}
}

func (s *StreamSession) PushAudioFrame(b []byte, pts int64) {
	s.mu.Lock()
	pub := s.pub
	s.mu.Unlock()

	if pub == nil {
		Log.Warnf("[%s] drop audio frame, publisher missing. len=%d, pts=%d", s.uniqueKey, len(b), pts)
		return
	}
	pub.PushAudioFrame(b, pts)
}

func (s *StreamSession) UniqueKey() string {
	return s.uniqueKey
}

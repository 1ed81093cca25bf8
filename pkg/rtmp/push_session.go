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

	"github.com/q191201771/naza/pkg/nazaatomic"
	"github.com/sunlulu427/MixedStream/pkg/base"
	"github.com/sunlulu427/MixedStream/pkg/flv"
)

// PushSession 推流会话
//
// 状态机：
//
//	Idle --Start()--> Connecting --连接成功--> Publishing --Stop()--> Closing --> Idle
//	             |                    |
//	             |                    +-- transport错误 --> Failed --> Idle
//	             +-- transport错误 --> Failed --> Idle
//
// Start 启动一个writer goroutine，依次完成connect流程并进入发送循环；
// 推帧接口由编码器输出线程调用，帧经muxer组装后入队，由writer串行发送。
//
// 时间戳为自publish成功时刻起的墙上毫秒数，不使用编码器pts
// （历史实现如此，两者可能漂移，这里保持原行为）。
//
// 注意，不要在 base.IPushObserver 的回调里调用 Stop，会自己join自己
type PushSession struct {
	uniqueKey string
	option    PushSessionOption

	factory  ITransportFactory
	url      string
	observer base.IPushObserver

	// mu保护muxer、队列指针、时间戳与header门控，
	// writer自身不取该锁，只消费队列
	mu          sync.Mutex
	muxer       *flv.Muxer
	queue       *PacketQueue
	headersDone bool
	lastVideoTs uint32
	lastAudioTs uint32
	writerDone  chan struct{}

	state            nazaatomic.Uint32
	closeFlag        nazaatomic.Uint32
	publishStartedMs nazaatomic.Uint32
}

const (
	StateIdle uint32 = iota
	StateConnecting
	StatePublishing
	StateClosing
	StateFailed
)

type PushSessionOption struct {
	// ConnectTimeoutSec 链路超时秒数，透传给transport
	ConnectTimeoutSec int
}

var defaultPushSessionOption = PushSessionOption{
	ConnectTimeoutSec: 10,
}

type ModPushSessionOption func(option *PushSessionOption)

func NewPushSession(factory ITransportFactory, url string, observer base.IPushObserver, modOptions ...ModPushSessionOption) *PushSession {
	option := defaultPushSessionOption
	for _, fn := range modOptions {
		fn(&option)
	}

	s := &PushSession{
		uniqueKey: base.GenUkRtmpPushSession(),
		option:    option,
		factory:   factory,
		url:       url,
		observer:  observer,
		muxer:     flv.NewMuxer(),
		queue:     NewPacketQueue(),
	}
	Log.Infof("[%s] lifecycle new push session. url=%s", s.uniqueKey, base.MaskUrl(url))
	return s
}

func (s *PushSession) UniqueKey() string {
	return s.uniqueKey
}

func (s *PushSession) State() uint32 {
	return s.state.Load()
}

// ConfigureVideo 替换视频配置，下一帧媒体数据入队前会重新补发header
//
// 注意，connect成功后metadata不会重发，视频配置应在Start前设置好
func (s *PushSession) ConfigureVideo(config base.VideoConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	metadataSent := s.muxer.HasSentMetadata()
	s.muxer.SetVideoConfig(config)
	if metadataSent {
		s.muxer.MarkMetadataSent()
	}
	s.headersDone = false
}

func (s *PushSession) ConfigureAudio(config base.AudioConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	metadataSent := s.muxer.HasSentMetadata()
	s.muxer.SetAudioConfig(config)
	if metadataSent {
		s.muxer.MarkMetadataSent()
	}
	s.headersDone = false
}

// Start 启动writer。已启动未停止时再次调用返回错误
func (s *PushSession) Start() error {
	if s.factory == nil {
		return base.ErrTransportRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writerDone != nil {
		return base.ErrSessionAlreadyStarted
	}
	if s.queue == nil {
		s.queue = NewPacketQueue()
	}
	s.closeFlag.Store(0)
	s.state.Store(StateConnecting)
	s.writerDone = make(chan struct{})
	go s.runWriter(s.writerDone, s.queue)
	return nil
}

// Stop 停止writer并清理会话内状态，可重复调用
//
// 置关闭标志唤醒队列，join writer（最多等待一个在途的SendPacket），
// 然后清空队列、复位muxer与时间戳
func (s *PushSession) Stop() {
	s.mu.Lock()
	done := s.writerDone
	queue := s.queue
	s.writerDone = nil
	s.mu.Unlock()

	if done == nil && queue == nil {
		return
	}

	s.state.Store(StateClosing)
	s.closeFlag.Store(1)
	if queue != nil {
		queue.NotifyAll()
	}
	if done != nil {
		<-done
	}

	s.mu.Lock()
	if queue != nil {
		queue.Clear()
	}
	s.queue = nil
	s.muxer.Reset()
	s.headersDone = false
	s.lastVideoTs = 0
	s.lastAudioTs = 0
	s.publishStartedMs.Store(0)
	s.state.Store(StateIdle)
	s.mu.Unlock()
	Log.Infof("[%s] lifecycle stop push session.", s.uniqueKey)
}

// PushVideoFrame 输入一帧编码视频数据，Annexb或Avcc格式
//
// 只有参数集没有slice数据的输入是合法的no-op。
// pts仅作参考，线上时间戳见类型注释
func (s *PushSession) PushVideoFrame(b []byte, pts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := s.queue
	if queue == nil {
		return
	}

	frame := s.muxer.ParseVideoFrame(b)
	if !frame.HasData() {
		return
	}

	s.ensureHeaders(queue)

	payload := s.muxer.BuildVideoTag(frame)
	if len(payload) == 0 {
		return
	}

	var timestamp uint32
	if startMs := s.publishStartedMs.Load(); startMs > 0 {
		timestamp = s.factory.NowMs() - startMs
		s.lastVideoTs = timestamp
	} else if s.lastVideoTs != 0 {
		timestamp = s.lastVideoTs
	}

	queue.Push(base.NewRtmpPacket(payload, base.RtmpTypeIdVideo, timestamp, base.CsidVideo))
}

// PushAudioFrame 输入一帧裸AAC数据（不含adts header）
//
// asc未就绪时直接丢弃，直到编码器给出asc为止
func (s *PushSession) PushAudioFrame(b []byte, pts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := s.queue
	if queue == nil {
		return
	}

	if !s.muxer.AudioSequenceReady() {
		return
	}

	s.ensureHeaders(queue)

	payload := s.muxer.BuildAudioTag(b)
	if len(payload) == 0 {
		return
	}

	var timestamp uint32
	if startMs := s.publishStartedMs.Load(); startMs > 0 {
		timestamp = s.factory.NowMs() - startMs
		s.lastAudioTs = timestamp
	} else if s.lastAudioTs != 0 {
		timestamp = s.lastAudioTs
	}

	queue.Push(base.NewRtmpPacket(payload, base.RtmpTypeIdAudio, timestamp, base.CsidAudio))
}

// ensureHeaders 首个媒体tag入队前补发metadata与sequence header
//
// 与媒体tag的入队处于同一段锁内，保证header先于媒体包的队列顺序。
// metadata整个会话内至多发出一次，且先于两个sequence header
func (s *PushSession) ensureHeaders(queue *PacketQueue) {
	if s.headersDone {
		return
	}

	if !s.muxer.HasSentMetadata() {
		if b, err := s.muxer.BuildMetadataTag(); err == nil {
			queue.Push(base.NewRtmpPacket(b, base.RtmpTypeIdMetadata, 0, base.CsidAmf))
			s.muxer.MarkMetadataSent()
		}
	}
	if !s.muxer.HasSentVideoSequence() {
		// 成功时muxer内部置位
		if b, err := s.muxer.BuildVideoSequenceHeader(); err == nil {
			queue.Push(base.NewRtmpPacket(b, base.RtmpTypeIdVideo, 0, base.CsidVideo))
		}
	}
	if !s.muxer.HasSentAudioSequence() {
		if b, err := s.muxer.BuildAudioSequenceHeader(); err == nil {
			queue.Push(base.NewRtmpPacket(b, base.RtmpTypeIdAudio, 0, base.CsidAudio))
			s.muxer.MarkAudioSequenceSent()
		}
	}

	s.headersDone = s.muxer.HasSentMetadata() && s.muxer.HasSentVideoSequence() && s.muxer.HasSentAudioSequence()
}

// runWriter connect流程与发送循环，独占一个goroutine
func (s *PushSession) runWriter(done chan struct{}, queue *PacketQueue) {
	defer close(done)

	s.notifyConnecting()

	conn, err := s.factory.Alloc()
	if err != nil || conn == nil {
		Log.Errorf("[%s] alloc transport failed. err=%+v", s.uniqueKey, err)
		s.state.Store(StateFailed)
		s.notifyError(base.PushErrorCodeInitFailure)
		return
	}

	conn.Init()
	if err = conn.SetupUrl(s.url); err != nil {
		Log.Errorf("[%s] setup url failed. url=%s, err=%+v", s.uniqueKey, base.MaskUrl(s.url), err)
		s.state.Store(StateFailed)
		s.notifyError(base.PushErrorCodeUrlSetupFailure)
		s.release(conn)
		return
	}

	conn.SetTimeout(s.option.ConnectTimeoutSec)
	conn.EnableWrite()
	if err = conn.Connect(); err != nil {
		Log.Errorf("[%s] connect failed. err=%+v", s.uniqueKey, err)
		s.state.Store(StateFailed)
		s.notifyError(base.PushErrorCodeConnectFailure)
		s.release(conn)
		return
	}
	if err = conn.ConnectStream(0); err != nil {
		Log.Errorf("[%s] connect stream failed. err=%+v", s.uniqueKey, err)
		s.state.Store(StateFailed)
		s.notifyError(base.PushErrorCodeConnectFailure)
		s.release(conn)
		return
	}

	s.publishStartedMs.Store(s.factory.NowMs())
	s.state.Store(StatePublishing)
	s.notifyConnected()
	Log.Infof("[%s] publish started. url=%s", s.uniqueKey, base.MaskUrl(s.url))

	for {
		if s.closeFlag.Load() == 1 {
			break
		}
		pkt := queue.PopBlocking()
		if pkt == nil {
			// 被关闭流程唤醒，回到循环头检查标志
			continue
		}
		pkt.StreamId = conn.StreamId()
		if err = conn.SendPacket(pkt, true); err != nil {
			// 单个包发送失败不中断推流
			Log.Errorf("[%s] send packet failed. type=%d, len=%d, err=%+v",
				s.uniqueKey, pkt.PacketType, len(pkt.Body), err)
		}
	}

	s.release(conn)
	Log.Infof("[%s] rtmp connection closed.", s.uniqueKey)
}

func (s *PushSession) release(conn ITransportConn) {
	if conn == nil {
		return
	}
	conn.Close()
	conn.Free()
}

func (s *PushSession) notifyConnecting() {
	if s.observer != nil {
		s.observer.OnConnecting(base.ThreadContextWorker)
	}
}

func (s *PushSession) notifyConnected() {
	if s.observer != nil {
		s.observer.OnConnected()
	}
}

func (s *PushSession) notifyError(code base.PushErrorCode) {
	if s.observer != nil {
		s.observer.OnError(code)
	}
}

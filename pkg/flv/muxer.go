// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package flv

import (
	"github.com/q191201771/naza/pkg/bele"
	"github.com/sunlulu427/MixedStream/pkg/aac"
	"github.com/sunlulu427/MixedStream/pkg/avc"
	"github.com/sunlulu427/MixedStream/pkg/base"
	"github.com/sunlulu427/MixedStream/pkg/hevc"
)

// Muxer 将编码器输出的数据组装成FLV tag的payload部分
//
// 持有音视频配置、参数集（sps/pps/vps）和三个一次性标志
// （metadata、视频sequence header、音频sequence header是否已发出）。
//
// 并发规则：所有方法都需要在外部串行调用，muxer自身不加锁。
// 实际使用中muxer内嵌在 rtmp.PushSession 中，由session的锁保护
type Muxer struct {
	videoConfig base.VideoConfig
	audioConfig base.AudioConfig

	sps []byte
	pps []byte
	vps []byte

	metadataSent bool
	videoSeqSent bool
	audioSeqSent bool
}

func NewMuxer() *Muxer {
	return &Muxer{}
}

// Reset 清空标志和参数集，配置保留
//
// 在一次推流会话结束时调用
func (m *Muxer) Reset() {
	m.metadataSent = false
	m.videoSeqSent = false
	m.audioSeqSent = false
	m.sps = m.sps[0:0]
	m.pps = m.pps[0:0]
	m.vps = m.vps[0:0]
}

// SetVideoConfig 替换视频配置，使metadata和视频sequence header需要重发
//
// 注意，参数集不清空，同一codec下仍然有效，下一组参数集nal到来时会被覆盖
func (m *Muxer) SetVideoConfig(config base.VideoConfig) {
	m.videoConfig = config
	m.metadataSent = false
	m.videoSeqSent = false
}

func (m *Muxer) SetAudioConfig(config base.AudioConfig) {
	m.audioConfig = config
	m.metadataSent = false
	m.audioSeqSent = false
}

func (m *Muxer) VideoConfig() base.VideoConfig {
	return m.videoConfig
}

func (m *Muxer) AudioConfig() base.AudioConfig {
	return m.audioConfig
}

func (m *Muxer) VideoSequenceReady() bool {
	if m.videoConfig.IsHevc() {
		return len(m.vps) > 0 && len(m.sps) > 0 && len(m.pps) > 0
	}
	return len(m.sps) > 0 && len(m.pps) > 0
}

func (m *Muxer) AudioSequenceReady() bool {
	return len(m.audioConfig.Asc) > 0
}

func (m *Muxer) HasSentMetadata() bool      { return m.metadataSent }
func (m *Muxer) HasSentVideoSequence() bool { return m.videoSeqSent }
func (m *Muxer) HasSentAudioSequence() bool { return m.audioSeqSent }

func (m *Muxer) MarkMetadataSent()      { m.metadataSent = true }
func (m *Muxer) MarkAudioSequenceSent() { m.audioSeqSent = true }

// BuildMetadataTag 见 BuildMetadata
func (m *Muxer) BuildMetadataTag() ([]byte, error) {
	return BuildMetadata(m.videoConfig, m.audioConfig)
}

// BuildVideoSequenceHeader 参数集凑齐后构造视频sequence header
//
// 成功时置位videoSeqSent
func (m *Muxer) BuildVideoSequenceHeader() ([]byte, error) {
	if !m.VideoSequenceReady() {
		return nil, base.ErrFlvSeqHeaderNotReady
	}

	var body []byte
	var err error
	if m.videoConfig.IsHevc() {
		body, err = hevc.BuildSeqHeaderFromVpsSpsPps(m.vps, m.sps, m.pps)
	} else {
		body, err = avc.BuildSeqHeaderFromSpsPps(m.sps, m.pps)
	}
	if err != nil {
		return nil, err
	}
	m.videoSeqSent = true
	return body, nil
}

// BuildAudioSequenceHeader asc就绪后构造音频sequence header
func (m *Muxer) BuildAudioSequenceHeader() ([]byte, error) {
	if !m.AudioSequenceReady() {
		return nil, base.ErrFlvSeqHeaderNotReady
	}
	return aac.MakeAudioDataSeqHeaderWithAsc(m.audioConfig.Asc)
}

// ParseVideoFrame 切分一帧编码数据中的nal，提取参数集，组装成带长度前缀的payload
//
// 优先按Annexb切分，切不出来再按Avcc；
// AUD丢弃；vps/sps/pps收入muxer内部存储并从payload中剔除；
// 含IDR（hevc还包括CRA）时标记为关键帧
func (m *Muxer) ParseVideoFrame(b []byte) (frame base.ParsedVideoFrame) {
	if len(b) == 0 {
		return
	}

	nals, err := avc.SplitNaluAnnexb(b)
	if err != nil || len(nals) == 0 {
		nals, err = avc.SplitNaluAvcc(b)
	}
	if err != nil || len(nals) == 0 {
		Log.Warnf("split video frame failed, drop. len=%d", len(b))
		return
	}

	payload := make([]byte, 0, len(b)+4)
	isHevc := m.videoConfig.IsHevc()

	for _, nal := range nals {
		if len(nal) == 0 {
			continue
		}

		if isHevc {
			t := hevc.ParseNaluType(nal[0])
			if t == hevc.NaluTypeAud {
				continue
			}
			if t == hevc.NaluTypeVps {
				m.vps = append(m.vps[0:0], nal...)
				continue
			}
			if t == hevc.NaluTypeSps {
				m.sps = append(m.sps[0:0], nal...)
				continue
			}
			if t == hevc.NaluTypePps {
				m.pps = append(m.pps[0:0], nal...)
				continue
			}
			if hevc.IsKeyFrameNalu(t) {
				frame.IsKeyFrame = true
			}
		} else {
			t := avc.ParseNaluType(nal[0])
			if t == avc.NaluTypeAud {
				continue
			}
			if t == avc.NaluTypeSps {
				m.sps = append(m.sps[0:0], nal...)
				continue
			}
			if t == avc.NaluTypePps {
				m.pps = append(m.pps[0:0], nal...)
				continue
			}
			if t == avc.NaluTypeIdrSlice {
				frame.IsKeyFrame = true
			}
		}

		var length [4]byte
		bele.BePutUint32(length[:], uint32(len(nal)))
		payload = append(payload, length[:]...)
		payload = append(payload, nal...)
	}

	frame.Payload = payload
	return
}

// BuildVideoTag 视频媒体tag body
//
// 1字节VIDEODATA头 + 1字节AVCPacketType(1) + 3字节cts(0) + 长度前缀payload
func (m *Muxer) BuildVideoTag(frame base.ParsedVideoFrame) []byte {
	if !frame.HasData() {
		return nil
	}

	var header uint8
	if m.videoConfig.IsHevc() {
		header = base.RtmpHevcInterFrame
		if frame.IsKeyFrame {
			header = base.RtmpHevcKeyFrame
		}
	} else {
		header = base.RtmpAvcInterFrame
		if frame.IsKeyFrame {
			header = base.RtmpAvcKeyFrame
		}
	}

	out := make([]byte, 0, 5+len(frame.Payload))
	out = append(out, header, base.RtmpAvcPacketTypeNalu, 0x00, 0x00, 0x00)
	return append(out, frame.Payload...)
}

// BuildAudioTag 音频媒体tag body，adts header需已在上游剥除
func (m *Muxer) BuildAudioTag(b []byte) []byte {
	out, err := aac.MakeAudioDataWithRaw(b)
	if err != nil {
		Log.Warnf("build audio tag failed, drop. len=%d", len(b))
		return nil
	}
	return out
}

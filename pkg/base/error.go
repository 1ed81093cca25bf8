// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package base

import "errors"

// ----- pkg/avc -------------------------------------------------------------------------------------------------------

var ErrAvc = errors.New("mixedstream.avc: fxxk")

// ----- pkg/hevc ------------------------------------------------------------------------------------------------------

var ErrHevc = errors.New("mixedstream.hevc: fxxk")

// ----- pkg/aac -------------------------------------------------------------------------------------------------------

var ErrAac = errors.New("mixedstream.aac: fxxk")

// ----- pkg/flv -------------------------------------------------------------------------------------------------------

var (
	ErrFlvMetadataNotReady  = errors.New("mixedstream.flv: video config incomplete, can not build metadata")
	ErrFlvSeqHeaderNotReady = errors.New("mixedstream.flv: parameter sets incomplete, can not build seq header")
)

// ----- pkg/rtmp ------------------------------------------------------------------------------------------------------

var (
	ErrSessionAlreadyStarted = errors.New("mixedstream.rtmp: session already started")
	ErrTransportRequired     = errors.New("mixedstream.rtmp: transport factory required")
)

// ----- pkg/logic -----------------------------------------------------------------------------------------------------

var ErrSessionNotInited = errors.New("mixedstream.logic: session has not been inited yet")

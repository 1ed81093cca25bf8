// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package base

import "github.com/q191201771/naza/pkg/unique"

const (
	UkPreRtmpPushSession = "RTMPPUSH"
	UkPreStreamSession   = "STREAM"
)

func GenUkRtmpPushSession() string {
	return siUkRtmpPushSession.GenUniqueKey()
}

func GenUkStreamSession() string {
	return siUkStreamSession.GenUniqueKey()
}

var (
	siUkRtmpPushSession *unique.SingleGenerator
	siUkStreamSession   *unique.SingleGenerator
)

func init() {
	siUkRtmpPushSession = unique.NewSingleGenerator(UkPreRtmpPushSession)
	siUkStreamSession = unique.NewSingleGenerator(UkPreStreamSession)
}

// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package flv

import "github.com/q191201771/naza/pkg/nazalog"

var Log = nazalog.GetGlobalLogger()

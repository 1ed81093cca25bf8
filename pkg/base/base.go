// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package base

// package base 放置被其他 package 依赖的基础内容：
// 音视频配置、RTMP包、FLV常量、状态回调接口、错误码等

// 版本，该变量由外部脚本修改维护
const MixedStreamVersion = "v0.3.0"

var (
	MixedStreamLibraryName = "mixedstream"
	MixedStreamGithubRepo  = "github.com/sunlulu427/MixedStream"

	// e.g. mixedstream v0.3.0 (github.com/sunlulu427/MixedStream)
	MixedStreamFullInfo = MixedStreamLibraryName + " " + MixedStreamVersion + " (" + MixedStreamGithubRepo + ")"
)

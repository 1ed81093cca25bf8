// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package base

import "strings"

// MaskUrl 推流url带有stream key，日志打印前将最后一级路径脱敏
//
// 最后一级长度大于4时保留首尾各2个字符，中间以***代替；更短则全部以*代替
func MaskUrl(url string) string {
	sep := strings.LastIndex(url, "/")
	if sep == -1 || sep == len(url)-1 {
		return url
	}
	suffix := url[sep+1:]
	var masked string
	if len(suffix) > 4 {
		masked = suffix[:2] + "***" + suffix[len(suffix)-2:]
	} else {
		masked = strings.Repeat("*", len(suffix))
	}
	return url[:sep+1] + masked
}

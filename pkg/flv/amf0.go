// Copyright 2025, sunlulu427.  All rights reserved.
// https://github.com/sunlulu427/MixedStream
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: sunlulu427

package flv

// amf0.go
// @pure
// SCRIPTDATA所需的amf0编码操作，只有写没有读

import (
	"io"
	"math"

	"github.com/q191201771/naza/pkg/bele"
)

const (
	Amf0TypeMarkerNumber    = uint8(0x00)
	Amf0TypeMarkerBoolean   = uint8(0x01)
	Amf0TypeMarkerString    = uint8(0x02)
	Amf0TypeMarkerEcmaArray = uint8(0x08)
	Amf0TypeMarkerObjectEnd = uint8(0x09)
)

var Amf0TypeMarkerObjectEndBytes = []byte{0, 0, Amf0TypeMarkerObjectEnd}

type amf0 struct{}

var Amf0 amf0

func (amf0) WriteNumber(writer io.Writer, val float64) error {
	var b [9]byte
	b[0] = Amf0TypeMarkerNumber
	bele.BePutUint64(b[1:], math.Float64bits(val))
	_, err := writer.Write(b[:])
	return err
}

func (amf0) WriteString(writer io.Writer, val string) error {
	var b [3]byte
	b[0] = Amf0TypeMarkerString
	bele.BePutUint16(b[1:], uint16(len(val)))
	if _, err := writer.Write(b[:]); err != nil {
		return err
	}
	_, err := writer.Write([]byte(val))
	return err
}

func (amf0) WriteBoolean(writer io.Writer, val bool) error {
	b := [2]byte{Amf0TypeMarkerBoolean, 0x00}
	if val {
		b[1] = 0x01
	}
	_, err := writer.Write(b[:])
	return err
}

func (amf0) WriteEcmaArrayHeader(writer io.Writer, count uint32) error {
	var b [5]byte
	b[0] = Amf0TypeMarkerEcmaArray
	bele.BePutUint32(b[1:], count)
	_, err := writer.Write(b[:])
	return err
}

// writeKey ECMA array内部的属性名，u16长度加内容，不带类型marker
func (amf0) writeKey(writer io.Writer, key string) error {
	var b [2]byte
	bele.BePutUint16(b[:], uint16(len(key)))
	if _, err := writer.Write(b[:]); err != nil {
		return err
	}
	_, err := writer.Write([]byte(key))
	return err
}

func (a amf0) WriteNumberProperty(writer io.Writer, key string, val float64) error {
	if err := a.writeKey(writer, key); err != nil {
		return err
	}
	return a.WriteNumber(writer, val)
}

func (a amf0) WriteBooleanProperty(writer io.Writer, key string, val bool) error {
	if err := a.writeKey(writer, key); err != nil {
		return err
	}
	return a.WriteBoolean(writer, val)
}

func (amf0) WriteObjectEnd(writer io.Writer) error {
	_, err := writer.Write(Amf0TypeMarkerObjectEndBytes)
	return err
}

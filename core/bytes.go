// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"encoding/binary"
	"math"
)

func putUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func getUint32(b []byte) uint32    { return binary.LittleEndian.Uint32(b) }
func putUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func getUint64(b []byte) uint64    { return binary.LittleEndian.Uint64(b) }

// Float32Bytes encodes float32 values as the little-endian payload a
// float uniform write expects.
func Float32Bytes(v ...float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return b
}

// Uint16Bytes encodes uint16 values as little-endian bytes, the layout
// index buffers expect.
func Uint16Bytes(v ...uint16) []byte {
	b := make([]byte, 2*len(v))
	for i, n := range v {
		binary.LittleEndian.PutUint16(b[i*2:], n)
	}
	return b
}

// Int32Bytes encodes int32 values as the little-endian payload an
// integer uniform write expects.
func Int32Bytes(v ...int32) []byte {
	b := make([]byte, 4*len(v))
	for i, n := range v {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(n))
	}
	return b
}

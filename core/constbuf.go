// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"

	"github.com/gogpu/forge/types"
)

// uniformEndTag terminates the constant stream. Distinct from every
// types.UniformType value.
const uniformEndTag = 0xFF

// constantBuffer carries per-draw uniform writes: each entry is
// (type tag, uniform handle, byte size, payload), terminated by
// uniformEndTag. Same cursor discipline as commandBuffer.
type constantBuffer struct {
	buf []byte
	pos int
}

// newConstantBuffer creates a constant buffer of the given byte capacity,
// committed so the stream is well-formed before anything is recorded.
func newConstantBuffer(size int) *constantBuffer {
	b := &constantBuffer{buf: make([]byte, size)}
	b.commit()
	return b
}

func (b *constantBuffer) grab(n int) []byte {
	if b.pos+n > len(b.buf) {
		panic(fmt.Sprintf("core: constant buffer overflow (%d + %d > %d)",
			b.pos, n, len(b.buf)))
	}
	w := b.buf[b.pos : b.pos+n]
	b.pos += n
	return w
}

// writeUniform appends one uniform write of count elements of typ.
// len(data) must be exactly count elements worth of bytes.
func (b *constantBuffer) writeUniform(id UniformID, typ types.UniformType, data []byte, count uint8) {
	size := typ.SizeBytes() * uint32(count)
	if uint32(len(data)) != size {
		panic(fmt.Sprintf("core: uniform payload is %d bytes, want %d (%v x%d)",
			len(data), size, typ, count))
	}

	b.grab(1)[0] = byte(typ)
	putUint64(b.grab(8), uint64(id.Raw()))
	putUint32(b.grab(4), size)
	copy(b.grab(int(size)), data)
}

// readUniform returns the next entry, or ok == false at the end tag.
// The payload aliases the stream and is valid until the buffer is cleared.
func (b *constantBuffer) readUniform() (id UniformID, typ types.UniformType, data []byte, ok bool) {
	tag := b.grab(1)[0]
	if tag == uniformEndTag {
		return UniformID{}, 0, nil, false
	}

	typ = types.UniformType(tag)
	id = FromRaw[uniformMarker](RawID(getUint64(b.grab(8))))
	size := getUint32(b.grab(4))
	data = b.grab(int(size))
	return id, typ, data, true
}

// commit terminates the stream and rewinds the cursor to 0.
func (b *constantBuffer) commit() {
	b.grab(1)[0] = uniformEndTag
	b.pos = 0
}

// clear rewinds the cursor without writing anything.
func (b *constantBuffer) clear() {
	b.pos = 0
}

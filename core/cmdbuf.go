// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"encoding/binary"
	"fmt"
)

// commandType tags an entry in the command buffer. The payload layout is
// determined by the tag.
type commandType uint8

const (
	cmdInit commandType = iota
	cmdShutdown

	cmdCreateVertexBuffer
	cmdCreateDynamicVertexBuffer
	cmdUpdateVertexBuffer
	cmdDestroyVertexBuffer

	cmdCreateIndexBuffer
	cmdCreateDynamicIndexBuffer
	cmdUpdateIndexBuffer
	cmdDestroyIndexBuffer

	cmdCreateTexture
	cmdUpdateTexture
	cmdDestroyTexture

	cmdCreateShader
	cmdDestroyShader

	cmdCreateProgram
	cmdDestroyProgram

	cmdCreateUniform
	cmdDestroyUniform

	cmdCreateRenderTarget
	cmdDestroyRenderTarget

	cmdEnd
)

// String returns a human-readable representation of the tag.
func (c commandType) String() string {
	names := [...]string{
		"Init", "Shutdown",
		"CreateVertexBuffer", "CreateDynamicVertexBuffer",
		"UpdateVertexBuffer", "DestroyVertexBuffer",
		"CreateIndexBuffer", "CreateDynamicIndexBuffer",
		"UpdateIndexBuffer", "DestroyIndexBuffer",
		"CreateTexture", "UpdateTexture", "DestroyTexture",
		"CreateShader", "DestroyShader",
		"CreateProgram", "DestroyProgram",
		"CreateUniform", "DestroyUniform",
		"CreateRenderTarget", "DestroyRenderTarget",
		"End",
	}
	if int(c) < len(names) {
		return names[c]
	}
	return fmt.Sprintf("Unknown(%d)", uint8(c))
}

// commandBuffer is an append-only, fixed-capacity typed byte stream.
//
// Writes copy little-endian payloads at the cursor and advance it; reads
// mirror writes exactly. Overflow is a fatal programming error. commit
// writes the terminal tag and resets the cursor so that subsequent reads
// start at the beginning.
type commandBuffer struct {
	buf []byte
	pos int
}

// newCommandBuffer creates a command buffer of the given byte capacity.
// A terminal tag is committed immediately so the stream is well-formed
// even before the first frame records anything.
func newCommandBuffer(size int) *commandBuffer {
	b := &commandBuffer{buf: make([]byte, size)}
	b.commit()
	return b
}

// grab checks capacity and returns the payload window at the cursor.
func (b *commandBuffer) grab(n int) []byte {
	if b.pos+n > len(b.buf) {
		panic(fmt.Sprintf("core: command buffer overflow (%d + %d > %d)",
			b.pos, n, len(b.buf)))
	}
	w := b.buf[b.pos : b.pos+n]
	b.pos += n
	return w
}

func (b *commandBuffer) writeTag(c commandType) {
	b.grab(1)[0] = byte(c)
}

func (b *commandBuffer) readTag() commandType {
	return commandType(b.grab(1)[0])
}

func (b *commandBuffer) writeUint8(v uint8) {
	b.grab(1)[0] = v
}

func (b *commandBuffer) readUint8() uint8 {
	return b.grab(1)[0]
}

func (b *commandBuffer) writeUint16(v uint16) {
	binary.LittleEndian.PutUint16(b.grab(2), v)
}

func (b *commandBuffer) readUint16() uint16 {
	return binary.LittleEndian.Uint16(b.grab(2))
}

func (b *commandBuffer) writeUint32(v uint32) {
	binary.LittleEndian.PutUint32(b.grab(4), v)
}

func (b *commandBuffer) readUint32() uint32 {
	return binary.LittleEndian.Uint32(b.grab(4))
}

func (b *commandBuffer) writeUint64(v uint64) {
	binary.LittleEndian.PutUint64(b.grab(8), v)
}

func (b *commandBuffer) readUint64() uint64 {
	return binary.LittleEndian.Uint64(b.grab(8))
}

// writeBytes writes a length-prefixed byte payload. The bytes are copied
// into the stream: commands are self-contained and carry no pointers
// across the thread boundary.
func (b *commandBuffer) writeBytes(data []byte) {
	b.writeUint32(uint32(len(data)))
	copy(b.grab(len(data)), data)
}

// readBytes returns the next length-prefixed payload. The returned slice
// aliases the stream and is valid until the buffer is cleared.
func (b *commandBuffer) readBytes() []byte {
	n := int(b.readUint32())
	return b.grab(n)
}

func (b *commandBuffer) writeString(s string) {
	b.writeUint32(uint32(len(s)))
	copy(b.grab(len(s)), s)
}

func (b *commandBuffer) readString() string {
	n := int(b.readUint32())
	return string(b.grab(n))
}

// commit terminates the stream and rewinds the cursor to 0.
func (b *commandBuffer) commit() {
	b.writeTag(cmdEnd)
	b.pos = 0
}

// clear rewinds the cursor without writing anything.
func (b *commandBuffer) clear() {
	b.pos = 0
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import "github.com/gogpu/forge/types"

// TransientVertexBuffer is a carve-out of the shared dynamic vertex
// buffer, valid for exactly one frame. Fill it with UpdateVertexBuffer at
// Offset, then bind it with SetTransientVertexBuffer.
type TransientVertexBuffer struct {
	// Buffer is the underlying shared dynamic vertex buffer.
	Buffer VertexBufferID

	// Format is the vertex format the reservation was made for.
	Format types.VertexFormat

	// StartVertex is the first vertex of the reservation inside Buffer.
	StartVertex uint32

	// Offset is the byte offset of the reservation inside Buffer.
	Offset uint32

	// Size is the byte size of the reservation.
	Size uint32
}

// TransientIndexBuffer is a carve-out of the shared dynamic index buffer,
// valid for exactly one frame.
type TransientIndexBuffer struct {
	// Buffer is the underlying shared dynamic index buffer.
	Buffer IndexBufferID

	// StartIndex is the first index of the reservation inside Buffer.
	StartIndex uint32

	// Offset is the byte offset of the reservation inside Buffer.
	Offset uint32

	// Size is the byte size of the reservation.
	Size uint32
}

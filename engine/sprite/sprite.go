// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package sprite batches textured quads into per-frame transient buffer
// reservations. A batch accumulates quads during a frame and flushes them
// as a single alpha-blended draw.
package sprite

import (
	"github.com/gogpu/forge/core"
	"github.com/gogpu/forge/types"
)

const (
	verticesPerSprite = 4
	indicesPerSprite  = 6
	// P3T2: x y z u v
	floatsPerVertex = 5
)

// Batch accumulates textured quads for one texture.
type Batch struct {
	texture core.TextureID
	sampler core.UniformID

	verts   []float32
	indices []uint16
	count   int
}

// NewBatch creates a batch drawing with the given texture. samplerName is
// the sampler uniform the program samples the texture through.
func NewBatch(r *core.Renderer, texture core.TextureID, samplerName string) (*Batch, error) {
	sampler, err := r.CreateUniform(samplerName, types.UniformInteger1, 1)
	if err != nil {
		return nil, err
	}
	return &Batch{texture: texture, sampler: sampler}, nil
}

// Add queues one quad at (x, y) of size (w, h) on the z=0 plane, mapping
// the texture region (u0, v0)..(u1, v1).
func (b *Batch) Add(x, y, w, h, u0, v0, u1, v1 float32) {
	base := uint16(b.count * verticesPerSprite)

	b.verts = append(b.verts,
		x, y, 0, u0, v1,
		x+w, y, 0, u1, v1,
		x+w, y+h, 0, u1, v0,
		x, y+h, 0, u0, v0,
	)
	b.indices = append(b.indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
	b.count++
}

// Count returns the number of quads queued since the last flush.
func (b *Batch) Count() int { return b.count }

// Flush reserves transient buffers for the queued quads, uploads them and
// commits one alpha-blended draw on the given layer. The batch is empty
// afterwards.
func (b *Batch) Flush(r *core.Renderer, layer uint8, program core.ProgramID) {
	if b.count == 0 {
		return
	}

	var tvb core.TransientVertexBuffer
	var tib core.TransientIndexBuffer
	r.ReserveTransientVertexBuffer(&tvb, uint32(b.count*verticesPerSprite), types.VertexP3T2)
	r.ReserveTransientIndexBuffer(&tib, uint32(b.count*indicesPerSprite))

	r.UpdateVertexBuffer(tvb.Buffer, tvb.Offset, core.Float32Bytes(b.verts...))
	r.UpdateIndexBuffer(tib.Buffer, tib.Offset, core.Uint16Bytes(b.indices...))

	r.SetState(types.StateColorWrite | types.StateAlphaWrite |
		types.StateBlendEquationAdd |
		types.StateBlendFunc(types.BlendSrcAlpha, types.BlendOneMinusSrcAlpha))
	r.SetProgram(program)
	r.SetTransientVertexBuffer(&tvb, uint32(b.count*verticesPerSprite))
	r.SetTransientIndexBuffer(&tib, uint32(b.count*indicesPerSprite))
	r.SetTexture(0, b.sampler, b.texture,
		types.TextureFilterLinear|types.TextureWrapUClampEdge|types.TextureWrapVClampEdge)
	r.Commit(layer)

	b.verts = b.verts[:0]
	b.indices = b.indices[:0]
	b.count = 0
}

// Destroy releases the batch's sampler uniform. The texture stays with
// its owner.
func (b *Batch) Destroy(r *core.Renderer) {
	r.DestroyUniform(b.sampler)
}

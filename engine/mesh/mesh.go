// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package mesh is a thin producer that owns a static vertex/index buffer
// pair and records one draw per submit.
package mesh

import (
	"fmt"

	"github.com/gogpu/forge/core"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

// Mesh is a static, indexed piece of geometry.
type Mesh struct {
	vb     core.VertexBufferID
	ib     core.IndexBufferID
	format types.VertexFormat

	numVertices uint32
	numIndices  uint32
}

// New uploads interleaved float32 vertex data in the given format plus
// uint16 indices, and returns the mesh wrapping the resulting buffers.
func New(r *core.Renderer, format types.VertexFormat, vertices []float32, indices []uint16) (*Mesh, error) {
	components := format.Stride() / 4
	if len(vertices)%components != 0 {
		return nil, fmt.Errorf("mesh: %d floats is not a whole number of %s vertices",
			len(vertices), format)
	}

	vb, err := r.CreateVertexBuffer(core.Float32Bytes(vertices...), format)
	if err != nil {
		return nil, err
	}
	ib, err := r.CreateIndexBuffer(core.Uint16Bytes(indices...))
	if err != nil {
		r.DestroyVertexBuffer(vb)
		return nil, err
	}

	return &Mesh{
		vb:          vb,
		ib:          ib,
		format:      format,
		numVertices: uint32(len(vertices) / components),
		numIndices:  uint32(len(indices)),
	}, nil
}

// Format returns the mesh's vertex format.
func (m *Mesh) Format() types.VertexFormat { return m.format }

// Submit records one indexed draw of the whole mesh on the given layer.
func (m *Mesh) Submit(r *core.Renderer, layer uint8, program core.ProgramID, pose linear.Mat4, state types.StateFlags) {
	r.SetState(state)
	r.SetPose(pose)
	r.SetProgram(program)
	r.SetVertexBuffer(m.vb, m.format, m.numVertices)
	r.SetIndexBuffer(m.ib, 0, m.numIndices)
	r.Commit(layer)
}

// SubmitTextured records one indexed draw with a texture bound to unit 0.
func (m *Mesh) SubmitTextured(r *core.Renderer, layer uint8, program core.ProgramID, pose linear.Mat4,
	state types.StateFlags, sampler core.UniformID, tex core.TextureID, samplerFlags types.SamplerFlags) {
	r.SetState(state)
	r.SetPose(pose)
	r.SetProgram(program)
	r.SetVertexBuffer(m.vb, m.format, m.numVertices)
	r.SetIndexBuffer(m.ib, 0, m.numIndices)
	r.SetTexture(0, sampler, tex, samplerFlags)
	r.Commit(layer)
}

// Destroy releases the mesh's buffers.
func (m *Mesh) Destroy(r *core.Renderer) {
	r.DestroyIndexBuffer(m.ib)
	r.DestroyVertexBuffer(m.vb)
}

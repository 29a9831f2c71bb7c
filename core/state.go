// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

// WholeBuffer is the vertex/index count sentinel meaning "everything the
// bound buffer holds".
const WholeBuffer = ^uint32(0)

// MaxLayers is the number of render layers. Layer indices are 0..MaxLayers-1.
const MaxLayers = 8

// sampler is one per-unit texture binding of a draw.
type sampler struct {
	raw            RawID // texture or render-target handle
	isRenderTarget bool
	flags          types.SamplerFlags
}

// drawState is the snapshot captured when a producer commits a draw.
type drawState struct {
	flags types.StateFlags
	pose  linear.Mat4

	program ProgramID

	vb          VertexBufferID
	startVertex uint32
	numVertices uint32

	ib         IndexBufferID
	startIndex uint32
	numIndices uint32

	format types.VertexFormat

	samplers [types.StateMaxTextures]sampler
}

// reset returns the draw state to its defaults: state word zero, identity
// pose, invalid handles, whole-buffer counts, unbound samplers.
func (s *drawState) reset() {
	s.flags = types.StateNone
	s.pose = linear.Identity()
	s.program = ProgramID{}
	s.vb = VertexBufferID{}
	s.startVertex = 0
	s.numVertices = WholeBuffer
	s.ib = IndexBufferID{}
	s.startIndex = 0
	s.numIndices = WholeBuffer
	s.format = types.VertexFormatCount

	for i := range s.samplers {
		s.samplers[i] = sampler{flags: types.SamplerTexture}
	}
}

// layerState is the persistent per-layer configuration. It survives
// commits and frames until overwritten.
type layerState struct {
	target     RenderTargetID // zero = default framebuffer
	clear      hal.Clear
	view       linear.Mat4
	projection linear.Mat4
	viewport   hal.Rect
	scissor    hal.Rect

	// touched is set by any layer setter; touched layers get their
	// setup issued ahead of their draws every frame.
	touched bool
}

// reset returns the layer to its startup defaults.
func (l *layerState) reset() {
	l.target = RenderTargetID{}
	l.clear = hal.Clear{Color: linear.Gray, Depth: 1}
	l.view = linear.Identity()
	l.projection = linear.Identity()
	l.viewport = hal.Rect{}
	l.scissor = hal.Rect{}
	l.touched = false
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package debugline draws colored line segments through a per-frame
// transient vertex reservation. Segments accumulate during a frame and go
// out as one LINES draw.
package debugline

import (
	"github.com/gogpu/forge/core"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

// P3C4: x y z r g b a
const floatsPerVertex = 7

// Drawer accumulates line segments.
type Drawer struct {
	verts []float32
	count int // segments
}

// New creates an empty drawer.
func New() *Drawer { return &Drawer{} }

// Add queues one segment from a to b in the given color.
func (d *Drawer) Add(a, b linear.Vec3, color linear.Color4) {
	d.verts = append(d.verts,
		a.X, a.Y, a.Z, color.R, color.G, color.B, color.A,
		b.X, b.Y, b.Z, color.R, color.G, color.B, color.A,
	)
	d.count++
}

// AddAxes queues a red/green/blue axis cross of the given half-extent at
// origin.
func (d *Drawer) AddAxes(origin linear.Vec3, extent float32) {
	d.Add(origin, origin.Add(linear.Vec3{X: extent}), linear.Color4{R: 1, A: 1})
	d.Add(origin, origin.Add(linear.Vec3{Y: extent}), linear.Color4{G: 1, A: 1})
	d.Add(origin, origin.Add(linear.Vec3{Z: extent}), linear.Color4{B: 1, A: 1})
}

// Count returns the number of segments queued since the last submit.
func (d *Drawer) Count() int { return d.count }

// Submit reserves a transient vertex buffer for the queued segments,
// uploads them and commits one LINES draw on the given layer. The drawer
// is empty afterwards.
//
// Lines are drawn without depth write so they overlay geometry committed
// earlier on the same layer.
func (d *Drawer) Submit(r *core.Renderer, layer uint8, program core.ProgramID) {
	if d.count == 0 {
		return
	}

	numVertices := uint32(d.count * 2)

	var tvb core.TransientVertexBuffer
	r.ReserveTransientVertexBuffer(&tvb, numVertices, types.VertexP3C4)
	r.UpdateVertexBuffer(tvb.Buffer, tvb.Offset, core.Float32Bytes(d.verts...))

	r.SetState(types.StateColorWrite | types.StateAlphaWrite |
		types.StatePrimitiveLines |
		types.StateBlendEquationAdd |
		types.StateBlendFunc(types.BlendSrcAlpha, types.BlendOneMinusSrcAlpha))
	r.SetProgram(program)
	r.SetTransientVertexBuffer(&tvb, numVertices)
	r.Commit(layer)

	d.verts = d.verts[:0]
	d.count = 0
}

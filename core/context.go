// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sort"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

// renderContext holds one side of the double buffer: the command and
// constant streams, the committed draw snapshots with their sort keys, the
// per-layer state, and the transient ring cursors.
//
// Two contexts exist per Renderer. The one currently owned by the main
// thread records; the one owned by the render thread is replayed. The swap
// at the frame boundary transfers ownership, so neither is ever read and
// written concurrently.
type renderContext struct {
	state drawState

	numStates int
	states    []drawState
	keys      []SortKey

	// sort scratch, reused across frames
	order        []int
	scratchState []drawState
	scratchKeys  []SortKey

	layers [MaxLayers]layerState

	commands  *commandBuffer
	constants *constantBuffer

	tvbOffset uint32
	tibOffset uint32

	// shared per-frame transient buffers, owned by this context
	transientVB *TransientVertexBuffer
	transientIB *TransientIndexBuffer
}

func newRenderContext(commandSize, constantSize, maxDraws int) *renderContext {
	c := &renderContext{
		states:       make([]drawState, maxDraws),
		keys:         make([]SortKey, maxDraws),
		order:        make([]int, 0, maxDraws),
		scratchState: make([]drawState, maxDraws),
		scratchKeys:  make([]SortKey, maxDraws),
		commands:     newCommandBuffer(commandSize),
		constants:    newConstantBuffer(constantSize),
	}
	c.state.reset()
	for i := range c.layers {
		c.layers[i].reset()
	}
	return c
}

// reserveTransientVertices advances the vertex ring cursor by num vertices
// of format and returns the byte offset of the reservation. Running out of
// ring space is fatal.
func (c *renderContext) reserveTransientVertices(num uint32, format types.VertexFormat) uint32 {
	offset := c.tvbOffset
	size := num * uint32(format.Stride())
	if c.transientVB == nil || offset+size > c.transientVB.Size {
		panic(fmt.Sprintf("core: transient vertex ring exhausted (%d + %d bytes)", offset, size))
	}
	c.tvbOffset = offset + size
	return offset
}

// reserveTransientIndices advances the index ring cursor by num indices
// and returns the byte offset of the reservation.
func (c *renderContext) reserveTransientIndices(num uint32) uint32 {
	offset := c.tibOffset
	size := num * types.IndexStride
	if c.transientIB == nil || offset+size > c.transientIB.Size {
		panic(fmt.Sprintf("core: transient index ring exhausted (%d + %d bytes)", offset, size))
	}
	c.tibOffset = offset + size
	return offset
}

func (c *renderContext) setState(flags types.StateFlags) {
	c.state.flags = flags
}

func (c *renderContext) setPose(pose linear.Mat4) {
	c.state.pose = pose
}

func (c *renderContext) setProgram(program ProgramID) {
	c.state.program = program
}

func (c *renderContext) setVertexBuffer(vb VertexBufferID, format types.VertexFormat, numVertices uint32) {
	c.state.vb = vb
	c.state.startVertex = 0
	c.state.numVertices = numVertices
	c.state.format = format
}

func (c *renderContext) setTransientVertexBuffer(tvb *TransientVertexBuffer, numVertices uint32) {
	c.state.vb = tvb.Buffer
	c.state.startVertex = tvb.StartVertex
	c.state.numVertices = min(tvb.Size/uint32(tvb.Format.Stride()), numVertices)
	c.state.format = tvb.Format
}

func (c *renderContext) setIndexBuffer(ib IndexBufferID, startIndex, numIndices uint32) {
	c.state.ib = ib
	c.state.startIndex = startIndex
	c.state.numIndices = numIndices
}

func (c *renderContext) setTransientIndexBuffer(tib *TransientIndexBuffer, numIndices uint32) {
	c.state.ib = tib.Buffer
	c.state.startIndex = tib.StartIndex
	c.state.numIndices = min(tib.Size/types.IndexStride, numIndices)
}

func (c *renderContext) setUniform(id UniformID, typ types.UniformType, data []byte, count uint8) {
	c.constants.writeUniform(id, typ, data, count)
}

// setTexture binds a texture or render-target attachment to a sampler
// unit and enables the unit in the draw's state word. The unit number is
// also written to the sampler uniform so the shader's sampler resolves to
// the right unit.
func (c *renderContext) setTexture(unit int, samplerUniform UniformID, raw RawID, isRenderTarget bool, flags types.SamplerFlags) {
	c.state.flags |= types.StateTexture0 << uint(unit)

	s := &c.state.samplers[unit]
	s.raw = raw
	s.isRenderTarget = isRenderTarget
	s.flags |= types.SamplerTexture | flags

	c.setUniform(samplerUniform, types.UniformInteger1, Int32Bytes(int32(unit)), 1)
}

func (c *renderContext) layer(layer uint8) *layerState {
	if layer >= MaxLayers {
		panic(fmt.Sprintf("core: layer %d out of range [0, %d)", layer, MaxLayers))
	}
	return &c.layers[layer]
}

func (c *renderContext) setLayerRenderTarget(layer uint8, target RenderTargetID) {
	l := c.layer(layer)
	l.target = target
	l.touched = true
}

func (c *renderContext) setLayerClear(layer uint8, flags types.ClearFlags, color linear.Color4, depth float32) {
	l := c.layer(layer)
	l.clear = hal.Clear{Flags: flags, Color: color, Depth: depth}
	l.touched = true
}

func (c *renderContext) setLayerView(layer uint8, view linear.Mat4) {
	l := c.layer(layer)
	l.view = view
	l.touched = true
}

func (c *renderContext) setLayerProjection(layer uint8, projection linear.Mat4) {
	l := c.layer(layer)
	l.projection = projection
	l.touched = true
}

func (c *renderContext) setLayerViewport(layer uint8, x, y, width, height uint16) {
	l := c.layer(layer)
	l.viewport = hal.Rect{X: x, Y: y, W: width, H: height}
	l.touched = true
}

func (c *renderContext) setLayerScissor(layer uint8, x, y, width, height uint16) {
	l := c.layer(layer)
	l.scissor = hal.Rect{X: x, Y: y, W: width, H: height}
	l.touched = true
}

// commit snapshots the current draw state under the given layer and
// resets the current draw state (but not layer state) for the next draw.
func (c *renderContext) commit(layer uint8) {
	if layer >= MaxLayers {
		panic(fmt.Sprintf("core: commit to layer %d out of range [0, %d)", layer, MaxLayers))
	}
	if c.numStates >= len(c.states) {
		panic(fmt.Sprintf("core: draw capacity exhausted (%d draws)", len(c.states)))
	}

	c.states[c.numStates] = c.state
	c.keys[c.numStates] = encodeKey(layer, c.state.program)
	c.numStates++

	c.state.reset()
}

// clear readies the context for the next recording pass: draw count and
// transient cursors return to 0. Layer state persists.
func (c *renderContext) clear() {
	c.numStates = 0
	c.state.reset()
	c.commands.clear()
	c.constants.clear()
	c.tvbOffset = 0
	c.tibOffset = 0
}

// push terminates the command and constant streams so the render thread
// sees well-formed input. Called at the frame boundary, before the swap.
func (c *renderContext) push() {
	c.commands.commit()
	c.constants.commit()
}

// sortDraws stable-sorts the parallel (keys, states) arrays ascending by
// key. Draws with equal keys keep their commit order.
func (c *renderContext) sortDraws() {
	n := c.numStates
	c.order = c.order[:0]
	for i := 0; i < n; i++ {
		c.order = append(c.order, i)
	}

	sort.SliceStable(c.order, func(i, j int) bool {
		return c.keys[c.order[i]] < c.keys[c.order[j]]
	})

	for i, from := range c.order {
		c.scratchKeys[i] = c.keys[from]
		c.scratchState[i] = c.states[from]
	}
	copy(c.keys[:n], c.scratchKeys[:n])
	copy(c.states[:n], c.scratchState[:n])
}

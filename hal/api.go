// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hal defines the narrow trait a concrete graphics backend
// implements for the submission core. Every method is invoked on the render
// thread only; implementations may assume single-threaded access.
//
// Resources are addressed by the dense index component of the core's
// handles. The core guarantees an index is created before it is used and
// not reused before it is destroyed; backends key their resources by it.
package hal

import (
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

// NoTarget is the render-target index meaning "default framebuffer".
const NoTarget = ^uint32(0)

// Rect is a viewport or scissor rectangle in pixels.
type Rect struct {
	X, Y, W, H uint16
}

// Clear describes how a layer clears its attachments before drawing.
type Clear struct {
	Flags types.ClearFlags
	Color linear.Color4
	Depth float32
}

// Device is the set of operations a concrete graphics backend implements.
//
// Create and update calls mirror the resource-lifecycle commands of the
// submission core one to one; the Set/Apply/Draw calls are issued by the
// sorted draw dispatch. Creation failures are reported to the caller and
// logged; they are not recovered by the core.
type Device interface {
	// Variant returns the backend type identifier.
	Variant() types.BackendVariant

	// Init prepares the device for rendering. First call on the render
	// thread.
	Init() error

	// Shutdown releases everything the device owns. Last call.
	Shutdown()

	// BeginFrame starts a frame. timeSinceStart is the seconds elapsed
	// since renderer init, the source of the time stock uniform.
	BeginFrame(timeSinceStart float32)

	// EndFrame finishes a frame.
	EndFrame()

	CreateVertexBuffer(idx uint32, data []byte, format types.VertexFormat) error
	CreateDynamicVertexBuffer(idx uint32, size uint32) error
	UpdateVertexBuffer(idx uint32, offset uint32, data []byte)
	DestroyVertexBuffer(idx uint32)

	CreateIndexBuffer(idx uint32, data []byte) error
	CreateDynamicIndexBuffer(idx uint32, size uint32) error
	UpdateIndexBuffer(idx uint32, offset uint32, data []byte)
	DestroyIndexBuffer(idx uint32)

	CreateTexture(idx uint32, width, height uint32, format types.PixelFormat, data []byte) error
	UpdateTexture(idx uint32, x, y, width, height uint32, data []byte)
	DestroyTexture(idx uint32)

	CreateShader(idx uint32, stage types.ShaderStage, source string) error
	DestroyShader(idx uint32)

	CreateProgram(idx uint32, vertex, fragment uint32) error
	DestroyProgram(idx uint32)

	CreateUniform(idx uint32, name string, typ types.UniformType, count uint8)
	UpdateUniform(idx uint32, data []byte)
	DestroyUniform(idx uint32)

	CreateRenderTarget(idx uint32, width, height uint16, format types.PixelFormat) error
	DestroyRenderTarget(idx uint32)

	// SetLayer binds the layer's render target (NoTarget for the default
	// framebuffer), applies its clear, and sets viewport and scissor.
	// Called before the first draw of each layer.
	SetLayer(target uint32, clear Clear, viewport, scissor Rect)

	// SetView and SetProjection provide the matrices stock uniforms are
	// resolved from. Set once per layer, before its draws.
	SetView(m linear.Mat4)
	SetProjection(m linear.Mat4)

	// SetPose provides the model matrix of the next draw.
	SetPose(m linear.Mat4)

	SetProgram(idx uint32)
	SetVertexBuffer(idx uint32, format types.VertexFormat)
	SetIndexBuffer(idx uint32)

	// SetTexture binds a texture or render-target attachment to a sampler
	// unit with the given sampler state.
	SetTexture(unit int, idx uint32, flags types.SamplerFlags, isRenderTarget bool)

	// ApplyState applies the fixed-function portion of the state word:
	// blend, depth, cull, write masks.
	ApplyState(flags types.StateFlags)

	// Draw issues a draw call. With indexed false, firstIndex and
	// indexCount are ignored. A count of ^uint32(0) means "the whole
	// currently bound buffer".
	Draw(firstVertex, vertexCount, firstIndex, indexCount uint32, indexed bool)
}

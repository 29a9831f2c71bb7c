// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shadow configures a depth-only render layer for shadow mapping:
// geometry submitted to the map's layer renders into a depth target that
// later layers sample.
package shadow

import (
	"github.com/gogpu/forge/core"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

// Map is a shadow map: a square depth render target bound to a layer.
type Map struct {
	target core.RenderTargetID
	layer  uint8
	size   uint16
}

// New creates a size x size depth target and configures layer to render
// into it: depth clear to 1, viewport covering the target.
func New(r *core.Renderer, layer uint8, size uint16) (*Map, error) {
	target, err := r.CreateRenderTarget(size, size, types.PixelD24)
	if err != nil {
		return nil, err
	}

	r.SetLayerRenderTarget(layer, target)
	r.SetLayerClear(layer, types.ClearDepth, linear.Black, 1)
	r.SetLayerViewport(layer, 0, 0, size, size)

	return &Map{target: target, layer: layer, size: size}, nil
}

// Layer returns the layer shadow casters are committed to.
func (m *Map) Layer() uint8 { return m.layer }

// Size returns the edge length of the depth target in pixels.
func (m *Map) Size() uint16 { return m.size }

// SetLight sets the layer's view and projection to the light's.
func (m *Map) SetLight(r *core.Renderer, view, projection linear.Mat4) {
	r.SetLayerView(m.layer, view)
	r.SetLayerProjection(m.layer, projection)
}

// Bind attaches the shadow depth map to a sampler unit of the next draw,
// so a lit pass can compare against it.
func (m *Map) Bind(r *core.Renderer, unit int, sampler core.UniformID) {
	r.SetRenderTargetTexture(unit, sampler, m.target,
		types.TextureFilterNearest|types.TextureWrapUClampEdge|types.TextureWrapVClampEdge)
}

// Destroy releases the depth target.
func (m *Map) Destroy(r *core.Renderer) {
	r.DestroyRenderTarget(m.target)
}

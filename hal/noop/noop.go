// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package noop provides a backend that discards all work. It is used by
// tests and headless runs: every operation succeeds and does nothing.
package noop

import (
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

// Device implements hal.Device as a no-op.
type Device struct{}

// New creates a noop device.
func New() *Device { return &Device{} }

func init() {
	hal.Register(types.BackendNoop, func() hal.Device { return New() })
}

// Variant returns the backend type identifier.
func (*Device) Variant() types.BackendVariant { return types.BackendNoop }

// Init always succeeds.
func (*Device) Init() error { return nil }

// Shutdown is a no-op.
func (*Device) Shutdown() {}

// BeginFrame is a no-op.
func (*Device) BeginFrame(float32) {}

// EndFrame is a no-op.
func (*Device) EndFrame() {}

func (*Device) CreateVertexBuffer(uint32, []byte, types.VertexFormat) error { return nil }
func (*Device) CreateDynamicVertexBuffer(uint32, uint32) error              { return nil }
func (*Device) UpdateVertexBuffer(uint32, uint32, []byte)                   {}
func (*Device) DestroyVertexBuffer(uint32)                                  {}

func (*Device) CreateIndexBuffer(uint32, []byte) error         { return nil }
func (*Device) CreateDynamicIndexBuffer(uint32, uint32) error  { return nil }
func (*Device) UpdateIndexBuffer(uint32, uint32, []byte)       {}
func (*Device) DestroyIndexBuffer(uint32)                      {}

func (*Device) CreateTexture(uint32, uint32, uint32, types.PixelFormat, []byte) error { return nil }
func (*Device) UpdateTexture(uint32, uint32, uint32, uint32, uint32, []byte)          {}
func (*Device) DestroyTexture(uint32)                                                 {}

func (*Device) CreateShader(uint32, types.ShaderStage, string) error { return nil }
func (*Device) DestroyShader(uint32)                                 {}

func (*Device) CreateProgram(uint32, uint32, uint32) error { return nil }
func (*Device) DestroyProgram(uint32)                      {}

func (*Device) CreateUniform(uint32, string, types.UniformType, uint8) {}
func (*Device) UpdateUniform(uint32, []byte)                           {}
func (*Device) DestroyUniform(uint32)                                  {}

func (*Device) CreateRenderTarget(uint32, uint16, uint16, types.PixelFormat) error { return nil }
func (*Device) DestroyRenderTarget(uint32)                                         {}

func (*Device) SetLayer(uint32, hal.Clear, hal.Rect, hal.Rect) {}
func (*Device) SetView(linear.Mat4)                            {}
func (*Device) SetProjection(linear.Mat4)                      {}
func (*Device) SetPose(linear.Mat4)                            {}
func (*Device) SetProgram(uint32)                              {}
func (*Device) SetVertexBuffer(uint32, types.VertexFormat)     {}
func (*Device) SetIndexBuffer(uint32)                          {}

func (*Device) SetTexture(int, uint32, types.SamplerFlags, bool) {}
func (*Device) ApplyState(types.StateFlags)                      {}

func (*Device) Draw(uint32, uint32, uint32, uint32, bool) {}

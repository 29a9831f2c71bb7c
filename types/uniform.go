// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import "fmt"

// UniformType identifies the element type of a uniform.
type UniformType uint8

// Uniform types. The element sizes are fixed by the wire format.
const (
	UniformInteger1 UniformType = iota
	UniformInteger2
	UniformInteger3
	UniformInteger4
	UniformFloat1
	UniformFloat2
	UniformFloat3
	UniformFloat4
	UniformFloat3x3
	UniformFloat4x4

	uniformTypeCount
)

// uniformSizes holds the byte size of one element of each uniform type.
var uniformSizes = [uniformTypeCount]uint32{
	4 * 1,  // UniformInteger1
	4 * 2,  // UniformInteger2
	4 * 3,  // UniformInteger3
	4 * 4,  // UniformInteger4
	4 * 1,  // UniformFloat1
	4 * 2,  // UniformFloat2
	4 * 3,  // UniformFloat3
	4 * 4,  // UniformFloat4
	4 * 9,  // UniformFloat3x3
	4 * 16, // UniformFloat4x4
}

// SizeBytes returns the byte size of a single element of type t.
func (t UniformType) SizeBytes() uint32 {
	if t >= uniformTypeCount {
		panic(fmt.Sprintf("types: unknown uniform type %d", t))
	}
	return uniformSizes[t]
}

// String returns a human-readable representation of the uniform type.
func (t UniformType) String() string {
	switch t {
	case UniformInteger1:
		return "Integer1"
	case UniformInteger2:
		return "Integer2"
	case UniformInteger3:
		return "Integer3"
	case UniformInteger4:
		return "Integer4"
	case UniformFloat1:
		return "Float1"
	case UniformFloat2:
		return "Float2"
	case UniformFloat3:
		return "Float3"
	case UniformFloat4:
		return "Float4"
	case UniformFloat3x3:
		return "Float3x3"
	case UniformFloat4x4:
		return "Float4x4"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// MaxUniformNameLen is the longest uniform name a producer may register.
const MaxUniformNameLen = 64

// StockUniform identifies a uniform the core recognizes by name and binds
// automatically from layer and draw state.
type StockUniform uint8

// Stock uniforms.
const (
	StockView StockUniform = iota
	StockModel
	StockModelView
	StockModelViewProjection
	StockTimeSinceStart

	StockUniformCount
)

// stockUniformNames maps shader-visible names to stock uniforms.
var stockUniformNames = map[string]StockUniform{
	"u_view":                  StockView,
	"u_model":                 StockModel,
	"u_model_view":            StockModelView,
	"u_model_view_projection": StockModelViewProjection,
	"u_time_since_start":      StockTimeSinceStart,
}

// StockUniformByName returns the stock uniform bound to name, if any.
func StockUniformByName(name string) (StockUniform, bool) {
	u, ok := stockUniformNames[name]
	return u, ok
}

// Name returns the shader-visible name of the stock uniform.
func (u StockUniform) Name() string {
	switch u {
	case StockView:
		return "u_view"
	case StockModel:
		return "u_model"
	case StockModelView:
		return "u_model_view"
	case StockModelViewProjection:
		return "u_model_view_projection"
	case StockTimeSinceStart:
		return "u_time_since_start"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(u))
	}
}

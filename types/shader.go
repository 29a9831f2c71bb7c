// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import "fmt"

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint8

// Shader stages.
const (
	StageVertex ShaderStage = iota
	StageFragment
)

// String returns a human-readable representation of the stage.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "Vertex"
	case StageFragment:
		return "Fragment"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(s))
	}
}

// BackendVariant identifies a registered graphics backend.
type BackendVariant uint8

// Backend variants.
const (
	// BackendNoop discards all work. Used by tests and headless runs.
	BackendNoop BackendVariant = iota

	// BackendGL is the OpenGL 4.6 core backend.
	BackendGL
)

// String returns a human-readable representation of the variant.
func (v BackendVariant) String() string {
	switch v {
	case BackendNoop:
		return "Noop"
	case BackendGL:
		return "GL"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(v))
	}
}

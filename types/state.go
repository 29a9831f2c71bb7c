// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

// StateFlags is the 64-bit render-state word captured with every draw.
//
// Layout:
//
//	bits  0..3   write masks (depth, color, alpha)
//	bits  4..7   cull mode
//	bits  8..11  per-unit texture-enable flags
//	bits 12..15  primitive topology
//	bits 16..23  blend functions (destination in 16..19, source in 20..23)
//	bits 24..27  blend equation
//	bits 28..31  depth test function
//	bits 32..63  reserved, zero
type StateFlags uint64

// StateNone is the default state: everything off.
const StateNone StateFlags = 0

// Write masks.
const (
	StateDepthWrite StateFlags = 0x0000000000000001
	StateColorWrite StateFlags = 0x0000000000000002
	StateAlphaWrite StateFlags = 0x0000000000000004
)

// Cull mode.
const (
	StateCullCW   StateFlags = 0x0000000000000010
	StateCullCCW  StateFlags = 0x0000000000000020
	StateCullMask StateFlags = 0x00000000000000F0
)

// Per-unit texture enables.
const (
	StateTexture0    StateFlags = 0x0000000000000100
	StateTexture1    StateFlags = 0x0000000000000200
	StateTexture2    StateFlags = 0x0000000000000400
	StateTexture3    StateFlags = 0x0000000000000800
	StateTextureMask StateFlags = 0x0000000000000F00

	// StateMaxTextures is the number of sampler units a draw can bind.
	StateMaxTextures = 4
)

// Primitive topology.
const (
	StatePrimitiveTriangles StateFlags = 0x0000000000000000
	StatePrimitivePoints    StateFlags = 0x0000000000001000
	StatePrimitiveLines     StateFlags = 0x0000000000002000
	StatePrimitiveMask      StateFlags = 0x000000000000F000
	StatePrimitiveShift                = 12
)

// BlendFactor is one component of a blend function. The zero value means
// blending is disabled.
type BlendFactor uint8

// Blend factors.
const (
	BlendZero BlendFactor = iota + 1
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

// Blend function field.
const (
	StateBlendFuncMask StateFlags = 0x0000000000FF0000
	StateBlendDstShift            = 16
	StateBlendSrcShift            = 20
)

// StateBlendFunc packs a source and destination blend factor into the
// state word.
func StateBlendFunc(src, dst BlendFactor) StateFlags {
	return StateFlags(src)<<StateBlendSrcShift | StateFlags(dst)<<StateBlendDstShift
}

// Blend equation.
const (
	StateBlendEquationAdd             StateFlags = 0x0000000001000000
	StateBlendEquationSubtract        StateFlags = 0x0000000002000000
	StateBlendEquationReverseSubtract StateFlags = 0x0000000003000000
	StateBlendEquationMask            StateFlags = 0x000000000F000000
	StateBlendEquationShift                      = 24
)

// Depth test function. Zero means the depth test is disabled.
const (
	StateDepthTestNever    StateFlags = 0x0000000010000000
	StateDepthTestLess     StateFlags = 0x0000000020000000
	StateDepthTestEqual    StateFlags = 0x0000000030000000
	StateDepthTestLEqual   StateFlags = 0x0000000040000000
	StateDepthTestGreater  StateFlags = 0x0000000050000000
	StateDepthTestNotEqual StateFlags = 0x0000000060000000
	StateDepthTestGEqual   StateFlags = 0x0000000070000000
	StateDepthTestAlways   StateFlags = 0x0000000080000000
	StateDepthTestMask     StateFlags = 0x00000000F0000000
	StateDepthTestShift               = 28
)

// StateDefault is the state most opaque geometry wants: color and depth
// writes on, depth test less-or-equal, clockwise culling.
const StateDefault = StateColorWrite | StateAlphaWrite | StateDepthWrite |
	StateDepthTestLEqual | StateCullCW

// TextureEnabled reports whether sampler unit is enabled in s.
func (s StateFlags) TextureEnabled(unit int) bool {
	return s&(StateTexture0<<uint(unit)) != 0
}

// BlendFuncs returns the packed source and destination blend factors.
// Both are zero when blending is disabled.
func (s StateFlags) BlendFuncs() (src, dst BlendFactor) {
	src = BlendFactor(s >> StateBlendSrcShift & 0xF)
	dst = BlendFactor(s >> StateBlendDstShift & 0xF)
	return src, dst
}

// SamplerFlags is the 32-bit sampler-state word attached to a texture
// binding: filter in bits 0..3, wrap U in 4..7, wrap V in 8..11, and a slot
// tag in the top nibble marking the slot as a sampler binding.
type SamplerFlags uint32

// Texture filter.
const (
	TextureFilterNearest   SamplerFlags = 0x00000001
	TextureFilterLinear    SamplerFlags = 0x00000002
	TextureFilterBilinear  SamplerFlags = 0x00000003
	TextureFilterTrilinear SamplerFlags = 0x00000004
	TextureFilterMask      SamplerFlags = 0x0000000F
)

// Wrap modes.
const (
	TextureWrapUClampEdge SamplerFlags = 0x00000010
	TextureWrapURepeat    SamplerFlags = 0x00000020
	TextureWrapUMask      SamplerFlags = 0x000000F0

	TextureWrapVClampEdge SamplerFlags = 0x00000100
	TextureWrapVRepeat    SamplerFlags = 0x00000200
	TextureWrapVMask      SamplerFlags = 0x00000F00
)

// Slot tag.
const (
	SamplerTexture SamplerFlags = 0x10000000
	SamplerMask    SamplerFlags = 0xF0000000
)

// ClearFlags selects which layer attachments a clear touches.
type ClearFlags uint8

// Clear bits.
const (
	ClearColor ClearFlags = 0x1
	ClearDepth ClearFlags = 0x2
)

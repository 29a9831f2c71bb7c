// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gl

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/forge/types"
)

// ApplyState maps the fixed-function portion of the state word onto GL:
// write masks, cull, blend, depth test and the primitive used by the next
// draw.
func (d *Device) ApplyState(flags types.StateFlags) {
	color := flags&types.StateColorWrite != 0
	alpha := flags&types.StateAlphaWrite != 0
	gl.ColorMask(color, color, color, alpha)
	gl.DepthMask(flags&types.StateDepthWrite != 0)

	switch flags & types.StateCullMask {
	case types.StateCullCW:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CW)
		gl.CullFace(gl.BACK)
	case types.StateCullCCW:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
	default:
		gl.Disable(gl.CULL_FACE)
	}

	switch flags & types.StatePrimitiveMask {
	case types.StatePrimitivePoints:
		d.primitive = gl.POINTS
	case types.StatePrimitiveLines:
		d.primitive = gl.LINES
	default:
		d.primitive = gl.TRIANGLES
	}

	if src, dst := flags.BlendFuncs(); src != 0 && dst != 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(blendFactorGL(src), blendFactorGL(dst))
		switch flags & types.StateBlendEquationMask {
		case types.StateBlendEquationSubtract:
			gl.BlendEquation(gl.FUNC_SUBTRACT)
		case types.StateBlendEquationReverseSubtract:
			gl.BlendEquation(gl.FUNC_REVERSE_SUBTRACT)
		default:
			gl.BlendEquation(gl.FUNC_ADD)
		}
	} else {
		gl.Disable(gl.BLEND)
	}

	if depth := flags & types.StateDepthTestMask; depth != 0 {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(depthFuncGL(depth))
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func blendFactorGL(f types.BlendFactor) uint32 {
	switch f {
	case types.BlendZero:
		return gl.ZERO
	case types.BlendOne:
		return gl.ONE
	case types.BlendSrcColor:
		return gl.SRC_COLOR
	case types.BlendOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case types.BlendDstColor:
		return gl.DST_COLOR
	case types.BlendOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case types.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case types.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case types.BlendDstAlpha:
		return gl.DST_ALPHA
	case types.BlendOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	default:
		panic(fmt.Sprintf("gl: unknown blend factor %d", f))
	}
}

func depthFuncGL(depth types.StateFlags) uint32 {
	switch depth {
	case types.StateDepthTestNever:
		return gl.NEVER
	case types.StateDepthTestLess:
		return gl.LESS
	case types.StateDepthTestEqual:
		return gl.EQUAL
	case types.StateDepthTestLEqual:
		return gl.LEQUAL
	case types.StateDepthTestGreater:
		return gl.GREATER
	case types.StateDepthTestNotEqual:
		return gl.NOTEQUAL
	case types.StateDepthTestGEqual:
		return gl.GEQUAL
	case types.StateDepthTestAlways:
		return gl.ALWAYS
	default:
		panic(fmt.Sprintf("gl: unknown depth test 0x%x", uint64(depth)))
	}
}

// applySamplerState maps the sampler word onto the bound texture's
// parameters.
func applySamplerState(flags types.SamplerFlags) {
	var minFilter, magFilter int32
	switch flags & types.TextureFilterMask {
	case types.TextureFilterNearest:
		minFilter, magFilter = gl.NEAREST, gl.NEAREST
	case types.TextureFilterBilinear:
		minFilter, magFilter = gl.LINEAR_MIPMAP_NEAREST, gl.LINEAR
	case types.TextureFilterTrilinear:
		minFilter, magFilter = gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
	default:
		minFilter, magFilter = gl.LINEAR, gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	wrapU := int32(gl.REPEAT)
	if flags&types.TextureWrapUMask == types.TextureWrapUClampEdge {
		wrapU = gl.CLAMP_TO_EDGE
	}
	wrapV := int32(gl.REPEAT)
	if flags&types.TextureWrapVMask == types.TextureWrapVClampEdge {
		wrapV = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapU)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapV)
}

// pixelFormatGL maps an uncompressed pixel format to the GL triple
// (internal format, pixel format, component type).
func pixelFormatGL(f types.PixelFormat) (internal int32, pixel, typ uint32) {
	switch f {
	case types.PixelR8G8B8:
		return gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE
	case types.PixelR8G8B8A8:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	case types.PixelD16:
		return gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT
	case types.PixelD24:
		return gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT
	case types.PixelD32:
		return gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT
	case types.PixelD24S8:
		return gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8
	default:
		panic(fmt.Sprintf("gl: no uncompressed mapping for pixel format %s", f))
	}
}

// GL_EXT_texture_compression_s3tc internal formats. The extension is not
// part of the core profile, so the bindings do not carry these enums.
const (
	compressedRGBAS3TCDXT1 = 0x83F1
	compressedRGBAS3TCDXT3 = 0x83F2
	compressedRGBAS3TCDXT5 = 0x83F3
)

// compressedInternalFormat maps a block-compressed pixel format to its GL
// internal format.
func compressedInternalFormat(f types.PixelFormat) uint32 {
	switch f {
	case types.PixelDXT1:
		return compressedRGBAS3TCDXT1
	case types.PixelDXT3:
		return compressedRGBAS3TCDXT3
	case types.PixelDXT5:
		return compressedRGBAS3TCDXT5
	default:
		panic(fmt.Sprintf("gl: no compressed mapping for pixel format %s", f))
	}
}

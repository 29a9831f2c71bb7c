// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import "fmt"

// PixelFormat enumerates texture and render-target pixel formats.
type PixelFormat uint8

// Pixel formats: block-compressed color, uncompressed color, depth.
const (
	PixelDXT1 PixelFormat = iota
	PixelDXT3
	PixelDXT5

	PixelR8G8B8
	PixelR8G8B8A8

	PixelD16
	PixelD24
	PixelD32
	PixelD24S8

	PixelFormatCount
)

// SizeBytes returns the byte size of one pixel, or of one 4x4 block for
// compressed formats.
func (f PixelFormat) SizeBytes() uint32 {
	switch f {
	case PixelDXT1:
		return 8
	case PixelDXT3, PixelDXT5:
		return 16
	case PixelR8G8B8:
		return 3
	case PixelR8G8B8A8:
		return 4
	case PixelD16:
		return 2
	case PixelD24:
		return 3
	case PixelD32:
		return 4
	case PixelD24S8:
		return 4
	default:
		panic(fmt.Sprintf("types: unknown pixel format %d", f))
	}
}

// IsCompressed reports whether f is a block-compressed format.
func (f PixelFormat) IsCompressed() bool {
	return f < PixelR8G8B8
}

// IsColor reports whether f is an uncompressed color format.
func (f PixelFormat) IsColor() bool {
	return f >= PixelR8G8B8 && f < PixelD16
}

// IsDepth reports whether f is a depth format.
func (f PixelFormat) IsDepth() bool {
	return f >= PixelD16 && f < PixelFormatCount
}

// String returns a human-readable representation of the format.
func (f PixelFormat) String() string {
	names := [...]string{
		"DXT1", "DXT3", "DXT5",
		"R8G8B8", "R8G8B8A8",
		"D16", "D24", "D32", "D24S8",
	}
	if int(f) < len(names) {
		return names[f]
	}
	return fmt.Sprintf("Unknown(%d)", uint8(f))
}

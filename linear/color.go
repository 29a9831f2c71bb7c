// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package linear

// Color4 is an RGBA color with float32 components in [0, 1].
type Color4 struct {
	R, G, B, A float32
}

// Common clear colors.
var (
	Black = Color4{0, 0, 0, 1}
	White = Color4{1, 1, 1, 1}
	Gray  = Color4{0.5, 0.5, 0.5, 1}
)

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package texture turns image.Image pixel data into textures the
// submission core can upload.
package texture

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/forge/core"
	"github.com/gogpu/forge/types"
)

// Texels converts img into tightly packed R8G8B8A8 texels.
func Texels(img image.Image) (width, height uint32, pix []byte) {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return uint32(b.Dx()), uint32(b.Dy()), rgba.Pix
}

// ScaledTexels converts img into tightly packed R8G8B8A8 texels of the
// given size, resampling with a bilinear kernel.
func ScaledTexels(img image.Image, width, height int) []byte {
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return rgba.Pix
}

// Upload creates an R8G8B8A8 texture from img.
func Upload(r *core.Renderer, img image.Image) (core.TextureID, error) {
	w, h, pix := Texels(img)
	return r.CreateTexture(w, h, types.PixelR8G8B8A8, pix)
}

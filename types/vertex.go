// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import "fmt"

// VertexAttrib identifies one attribute of a vertex format.
type VertexAttrib uint8

// Vertex attributes, in the order they appear inside a vertex.
const (
	AttribPosition VertexAttrib = iota
	AttribNormal
	AttribColor
	AttribTexCoord0
	AttribTexCoord1
	AttribTexCoord2
	AttribTexCoord3

	AttribCount
)

// VertexFormat names the set of attributes present in a vertex. All
// components are float32.
type VertexFormat uint8

// Vertex formats. P is position (2 or 3 components), N normal, C color,
// T texcoord0.
const (
	VertexP2 VertexFormat = iota
	VertexP2N3
	VertexP2C4
	VertexP2T2
	VertexP2N3C4
	VertexP2N3C4T2

	VertexP3
	VertexP3N3
	VertexP3C4
	VertexP3T2
	VertexP3N3C4
	VertexP3N3T2
	VertexP3N3C4T2

	VertexFormatCount
)

// vertexFormatInfo holds the component count of each attribute, per format.
var vertexFormatInfo = [VertexFormatCount][AttribCount]uint8{
	VertexP2:       {2, 0, 0, 0, 0, 0, 0},
	VertexP2N3:     {2, 3, 0, 0, 0, 0, 0},
	VertexP2C4:     {2, 0, 4, 0, 0, 0, 0},
	VertexP2T2:     {2, 0, 0, 2, 0, 0, 0},
	VertexP2N3C4:   {2, 3, 4, 0, 0, 0, 0},
	VertexP2N3C4T2: {2, 3, 4, 2, 0, 0, 0},

	VertexP3:       {3, 0, 0, 0, 0, 0, 0},
	VertexP3N3:     {3, 3, 0, 0, 0, 0, 0},
	VertexP3C4:     {3, 0, 4, 0, 0, 0, 0},
	VertexP3T2:     {3, 0, 0, 2, 0, 0, 0},
	VertexP3N3C4:   {3, 3, 4, 0, 0, 0, 0},
	VertexP3N3T2:   {3, 3, 0, 2, 0, 0, 0},
	VertexP3N3C4T2: {3, 3, 4, 2, 0, 0, 0},
}

// HasAttrib reports whether the format carries the attribute.
func (f VertexFormat) HasAttrib(a VertexAttrib) bool {
	return vertexFormatInfo[f][a] != 0
}

// Components returns the number of float32 components of attribute a.
func (f VertexFormat) Components(a VertexAttrib) int {
	return int(vertexFormatInfo[f][a])
}

// Stride returns the byte size of one vertex of format f.
func (f VertexFormat) Stride() int {
	n := 0
	for _, c := range vertexFormatInfo[f] {
		n += int(c)
	}
	return n * 4
}

// Offset returns the byte offset of attribute a inside a vertex of
// format f.
func (f VertexFormat) Offset(a VertexAttrib) int {
	n := 0
	for i := VertexAttrib(0); i < a; i++ {
		n += int(vertexFormatInfo[f][i])
	}
	return n * 4
}

// String returns a human-readable representation of the format.
func (f VertexFormat) String() string {
	names := [...]string{
		"P2", "P2N3", "P2C4", "P2T2", "P2N3C4", "P2N3C4T2",
		"P3", "P3N3", "P3C4", "P3T2", "P3N3C4", "P3N3T2", "P3N3C4T2",
	}
	if int(f) < len(names) {
		return names[f]
	}
	return fmt.Sprintf("Unknown(%d)", uint8(f))
}

// IndexStride is the byte size of one index; index buffers hold uint16
// indices.
const IndexStride = 2

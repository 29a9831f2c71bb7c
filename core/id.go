// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import "fmt"

// Index is the index component of a resource handle.
// It identifies the slot in the backend's resource array.
type Index = uint32

// Epoch is the generation component of a resource handle.
// It prevents use-after-destroy by invalidating old handles.
type Epoch = uint32

// RawID is the underlying 64-bit representation of a resource handle.
// Layout: lower 32 bits = index, upper 32 bits = epoch.
type RawID uint64

// Zip combines an index and epoch into a RawID.
func Zip(index Index, epoch Epoch) RawID {
	return RawID(index) | (RawID(epoch) << 32)
}

// Unzip extracts the index and epoch from a RawID.
func (id RawID) Unzip() (Index, Epoch) {
	return Index(id & 0xFFFFFFFF), Epoch(id >> 32)
}

// Index returns the index component of the RawID.
func (id RawID) Index() Index {
	return Index(id & 0xFFFFFFFF)
}

// IsZero returns true if both index and epoch are zero.
func (id RawID) IsZero() bool {
	return id == 0
}

// String returns a string representation of the RawID.
func (id RawID) String() string {
	index, epoch := id.Unzip()
	return fmt.Sprintf("RawID(%d,%d)", index, epoch)
}

// Marker is a constraint for marker types used to distinguish handle
// classes. Marker types are empty structs that provide compile-time type
// safety.
type Marker interface {
	marker() // unexported method prevents external implementation
}

// ID is a type-safe resource handle parameterized by a marker type.
// Each resource class (vertex buffer, texture, program, ...) has its own
// marker type, so a handle minted by one class cannot be passed to another
// class's operations.
//
// The zero ID is always invalid: epochs start at 1.
type ID[T Marker] struct {
	raw RawID
}

// NewID creates an ID from index and epoch components.
func NewID[T Marker](index Index, epoch Epoch) ID[T] {
	return ID[T]{raw: Zip(index, epoch)}
}

// FromRaw creates an ID from a raw representation.
// Use with caution - the caller must ensure class safety.
func FromRaw[T Marker](raw RawID) ID[T] {
	return ID[T]{raw: raw}
}

// Raw returns the underlying RawID.
func (id ID[T]) Raw() RawID {
	return id.raw
}

// Unzip extracts the index and epoch from the ID.
func (id ID[T]) Unzip() (Index, Epoch) {
	return id.raw.Unzip()
}

// Index returns the index component of the ID.
func (id ID[T]) Index() Index {
	return id.raw.Index()
}

// IsZero returns true if the ID is zero (invalid).
func (id ID[T]) IsZero() bool {
	return id.raw.IsZero()
}

// String returns a string representation of the ID.
func (id ID[T]) String() string {
	index, epoch := id.Unzip()
	return fmt.Sprintf("ID(%d,%d)", index, epoch)
}

// Marker types for each resource class.

type vertexBufferMarker struct{}

func (vertexBufferMarker) marker() {}

type indexBufferMarker struct{}

func (indexBufferMarker) marker() {}

type textureMarker struct{}

func (textureMarker) marker() {}

type shaderMarker struct{}

func (shaderMarker) marker() {}

type programMarker struct{}

func (programMarker) marker() {}

type uniformMarker struct{}

func (uniformMarker) marker() {}

type renderTargetMarker struct{}

func (renderTargetMarker) marker() {}

// Type aliases for resource handles.

// VertexBufferID identifies a vertex buffer.
type VertexBufferID = ID[vertexBufferMarker]

// IndexBufferID identifies an index buffer.
type IndexBufferID = ID[indexBufferMarker]

// TextureID identifies a texture.
type TextureID = ID[textureMarker]

// ShaderID identifies a shader.
type ShaderID = ID[shaderMarker]

// ProgramID identifies a GPU program.
type ProgramID = ID[programMarker]

// UniformID identifies a uniform.
type UniformID = ID[uniformMarker]

// RenderTargetID identifies a render target.
type RenderTargetID = ID[renderTargetMarker]

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

func dataPtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

// CreateVertexBuffer creates a static vertex buffer.
func (d *Device) CreateVertexBuffer(idx uint32, data []byte, _ types.VertexFormat) error {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, len(data), dataPtr(data), gl.STATIC_DRAW)
	d.vertexBuffers[idx] = &buffer{id: id, size: uint32(len(data))}
	return nil
}

// CreateDynamicVertexBuffer allocates a dynamic vertex buffer of size
// bytes.
func (d *Device) CreateDynamicVertexBuffer(idx uint32, size uint32) error {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, int(size), nil, gl.DYNAMIC_DRAW)
	d.vertexBuffers[idx] = &buffer{id: id, size: size}
	return nil
}

// UpdateVertexBuffer replaces a byte range of the buffer.
func (d *Device) UpdateVertexBuffer(idx uint32, offset uint32, data []byte) {
	b, ok := d.vertexBuffers[idx]
	if !ok {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferSubData(gl.ARRAY_BUFFER, int(offset), len(data), dataPtr(data))
}

// DestroyVertexBuffer deletes the buffer.
func (d *Device) DestroyVertexBuffer(idx uint32) {
	if b, ok := d.vertexBuffers[idx]; ok {
		gl.DeleteBuffers(1, &b.id)
		delete(d.vertexBuffers, idx)
	}
}

// CreateIndexBuffer creates a static uint16 index buffer.
func (d *Device) CreateIndexBuffer(idx uint32, data []byte) error {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data), dataPtr(data), gl.STATIC_DRAW)
	d.indexBuffers[idx] = &buffer{id: id, size: uint32(len(data))}
	return nil
}

// CreateDynamicIndexBuffer allocates a dynamic index buffer of size bytes.
func (d *Device) CreateDynamicIndexBuffer(idx uint32, size uint32) error {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, int(size), nil, gl.DYNAMIC_DRAW)
	d.indexBuffers[idx] = &buffer{id: id, size: size}
	return nil
}

// UpdateIndexBuffer replaces a byte range of the buffer.
func (d *Device) UpdateIndexBuffer(idx uint32, offset uint32, data []byte) {
	b, ok := d.indexBuffers[idx]
	if !ok {
		return
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, int(offset), len(data), dataPtr(data))
}

// DestroyIndexBuffer deletes the buffer.
func (d *Device) DestroyIndexBuffer(idx uint32) {
	if b, ok := d.indexBuffers[idx]; ok {
		gl.DeleteBuffers(1, &b.id)
		delete(d.indexBuffers, idx)
	}
}

// CreateTexture creates and fills a 2D texture.
func (d *Device) CreateTexture(idx uint32, width, height uint32, format types.PixelFormat, data []byte) error {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	if format.IsCompressed() {
		internal := compressedInternalFormat(format)
		gl.CompressedTexImage2D(gl.TEXTURE_2D, 0, internal,
			int32(width), int32(height), 0, int32(len(data)), dataPtr(data))
	} else {
		internal, pixel, typ := pixelFormatGL(format)
		gl.TexImage2D(gl.TEXTURE_2D, 0, internal,
			int32(width), int32(height), 0, pixel, typ, dataPtr(data))
	}

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	d.textures[idx] = &texture{id: id, format: format}
	return nil
}

// UpdateTexture replaces the pixels of a region.
func (d *Device) UpdateTexture(idx uint32, x, y, width, height uint32, data []byte) {
	t, ok := d.textures[idx]
	if !ok || t.format.IsCompressed() {
		return
	}
	_, pixel, typ := pixelFormatGL(t.format)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y),
		int32(width), int32(height), pixel, typ, dataPtr(data))
}

// DestroyTexture deletes the texture.
func (d *Device) DestroyTexture(idx uint32) {
	if t, ok := d.textures[idx]; ok {
		gl.DeleteTextures(1, &t.id)
		delete(d.textures, idx)
	}
}

// CreateShader compiles the shader source, translating WGSL to GLSL
// first when needed.
func (d *Device) CreateShader(idx uint32, stage types.ShaderStage, source string) error {
	code, err := prepareSource(source, stage)
	if err != nil {
		return err
	}
	id, err := compileShader(code, stage)
	if err != nil {
		return err
	}
	d.shaders[idx] = &shader{id: id, stage: stage}
	return nil
}

// DestroyShader deletes the shader object.
func (d *Device) DestroyShader(idx uint32) {
	if s, ok := d.shaders[idx]; ok {
		gl.DeleteShader(s.id)
		delete(d.shaders, idx)
	}
}

// CreateProgram links a vertex and fragment shader.
func (d *Device) CreateProgram(idx uint32, vertex, fragment uint32) error {
	vs, ok := d.shaders[vertex]
	if !ok {
		return fmt.Errorf("%w: vertex shader %d unknown", hal.ErrProgramLink, vertex)
	}
	fs, ok := d.shaders[fragment]
	if !ok {
		return fmt.Errorf("%w: fragment shader %d unknown", hal.ErrProgramLink, fragment)
	}

	id, stock, err := linkProgram(vs.id, fs.id)
	if err != nil {
		return err
	}
	d.programs[idx] = &program{
		id:        id,
		stock:     stock,
		locations: make(map[uint32]int32),
	}
	return nil
}

// DestroyProgram deletes the program object.
func (d *Device) DestroyProgram(idx uint32) {
	if p, ok := d.programs[idx]; ok {
		gl.DeleteProgram(p.id)
		delete(d.programs, idx)
		if d.current == p {
			d.current = nil
		}
	}
}

// CreateUniform registers a uniform; storage is CPU-side until a program
// binds it.
func (d *Device) CreateUniform(idx uint32, name string, typ types.UniformType, count uint8) {
	d.uniforms[idx] = &uniform{name: name, typ: typ, count: count}
}

// UpdateUniform stores the latest value and, if a program is bound,
// uploads it immediately.
func (d *Device) UpdateUniform(idx uint32, data []byte) {
	u, ok := d.uniforms[idx]
	if !ok {
		return
	}
	u.data = append(u.data[:0], data...)
	if d.current != nil {
		d.uploadUniform(d.current, idx, u)
	}
}

// DestroyUniform forgets the uniform.
func (d *Device) DestroyUniform(idx uint32) {
	delete(d.uniforms, idx)
}

// location resolves and caches u's location in p.
func (d *Device) location(p *program, idx uint32, u *uniform) int32 {
	if loc, ok := p.locations[idx]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(u.name+"\x00"))
	p.locations[idx] = loc
	return loc
}

// uploadUniform pushes the stored value to p.
func (d *Device) uploadUniform(p *program, idx uint32, u *uniform) {
	loc := d.location(p, idx, u)
	if loc < 0 || len(u.data) == 0 {
		return
	}

	count := int32(u.count)
	ptr := unsafe.Pointer(&u.data[0])

	switch u.typ {
	case types.UniformInteger1:
		gl.Uniform1iv(loc, count, (*int32)(ptr))
	case types.UniformInteger2:
		gl.Uniform2iv(loc, count, (*int32)(ptr))
	case types.UniformInteger3:
		gl.Uniform3iv(loc, count, (*int32)(ptr))
	case types.UniformInteger4:
		gl.Uniform4iv(loc, count, (*int32)(ptr))
	case types.UniformFloat1:
		gl.Uniform1fv(loc, count, (*float32)(ptr))
	case types.UniformFloat2:
		gl.Uniform2fv(loc, count, (*float32)(ptr))
	case types.UniformFloat3:
		gl.Uniform3fv(loc, count, (*float32)(ptr))
	case types.UniformFloat4:
		gl.Uniform4fv(loc, count, (*float32)(ptr))
	case types.UniformFloat3x3:
		gl.UniformMatrix3fv(loc, count, false, (*float32)(ptr))
	case types.UniformFloat4x4:
		gl.UniformMatrix4fv(loc, count, false, (*float32)(ptr))
	}
}

// CreateRenderTarget creates an FBO with a texture attachment matching
// the pixel format: color formats get a color attachment plus a depth
// renderbuffer, depth formats a depth-only attachment.
func (d *Device) CreateRenderTarget(idx uint32, width, height uint16, format types.PixelFormat) error {
	var fbo, tex uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	internal, pixel, typ := pixelFormatGL(format)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, pixel, typ, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	if format.IsDepth() {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, tex, 0)
		gl.DrawBuffer(gl.NONE)
		gl.ReadBuffer(gl.NONE)
	} else {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)

		var depth uint32
		gl.GenRenderbuffers(1, &depth)
		gl.BindRenderbuffer(gl.RENDERBUFFER, depth)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, depth)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fbo)
		gl.DeleteTextures(1, &tex)
		return fmt.Errorf("%w: status 0x%x", hal.ErrFramebufferIncomplete, status)
	}

	d.targets[idx] = &renderTarget{fbo: fbo, tex: tex, format: format, w: width, h: height}
	return nil
}

// DestroyRenderTarget deletes the FBO and its attachment.
func (d *Device) DestroyRenderTarget(idx uint32) {
	if rt, ok := d.targets[idx]; ok {
		gl.DeleteFramebuffers(1, &rt.fbo)
		gl.DeleteTextures(1, &rt.tex)
		delete(d.targets, idx)
	}
}

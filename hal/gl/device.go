// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package gl implements the backend trait on OpenGL 4.6 core.
//
// The device assumes a current GL context on the render thread; the caller
// (typically a glfw window) creates the context and makes it current
// before the renderer's first frame runs.
package gl

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

func init() {
	hal.Register(types.BackendGL, func() hal.Device { return New() })
}

var _ hal.Device = (*Device)(nil)

type buffer struct {
	id   uint32
	size uint32
}

type texture struct {
	id     uint32
	format types.PixelFormat
}

type shader struct {
	id    uint32
	stage types.ShaderStage
}

type program struct {
	id    uint32
	stock [types.StockUniformCount]int32
	// uniform locations by registered uniform index, resolved lazily
	locations map[uint32]int32
}

type uniform struct {
	name  string
	typ   types.UniformType
	count uint8
	data  []byte
}

type renderTarget struct {
	fbo    uint32
	tex    uint32
	format types.PixelFormat
	w, h   uint16
}

// Device implements hal.Device on OpenGL.
type Device struct {
	vertexBuffers map[uint32]*buffer
	indexBuffers  map[uint32]*buffer
	textures      map[uint32]*texture
	shaders       map[uint32]*shader
	programs      map[uint32]*program
	uniforms      map[uint32]*uniform
	targets       map[uint32]*renderTarget

	vao uint32

	// dispatch state
	current      *program
	boundVB      *buffer
	boundFormat  types.VertexFormat
	boundIB      *buffer
	primitive   uint32
	view        linear.Mat4
	projection  linear.Mat4
	timeSeconds float32
}

// New creates a GL device.
func New() *Device {
	return &Device{
		vertexBuffers: make(map[uint32]*buffer),
		indexBuffers:  make(map[uint32]*buffer),
		textures:      make(map[uint32]*texture),
		shaders:       make(map[uint32]*shader),
		programs:      make(map[uint32]*program),
		uniforms:      make(map[uint32]*uniform),
		targets:       make(map[uint32]*renderTarget),
		boundFormat:   types.VertexFormatCount,
		primitive:     gl.TRIANGLES,
	}
}

// Variant returns the backend type identifier.
func (*Device) Variant() types.BackendVariant { return types.BackendGL }

// Init loads the GL function pointers and creates the shared vertex array.
func (d *Device) Init() error {
	if err := gl.Init(); err != nil {
		return err
	}

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	hal.Logger().Info("gl backend ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return nil
}

// Shutdown releases every GL object the device still tracks.
func (d *Device) Shutdown() {
	for idx := range d.vertexBuffers {
		d.DestroyVertexBuffer(idx)
	}
	for idx := range d.indexBuffers {
		d.DestroyIndexBuffer(idx)
	}
	for idx := range d.textures {
		d.DestroyTexture(idx)
	}
	for idx := range d.programs {
		d.DestroyProgram(idx)
	}
	for idx := range d.shaders {
		d.DestroyShader(idx)
	}
	for idx := range d.targets {
		d.DestroyRenderTarget(idx)
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

// BeginFrame records the frame time for the time stock uniform.
func (d *Device) BeginFrame(timeSinceStart float32) {
	d.timeSeconds = timeSinceStart
	d.current = nil
	d.boundVB = nil
	d.boundFormat = types.VertexFormatCount
	d.boundIB = nil
}

// EndFrame flushes the pipeline.
func (d *Device) EndFrame() {
	gl.Flush()
}

// SetLayer binds the layer's framebuffer, applies viewport, scissor and
// clear.
func (d *Device) SetLayer(target uint32, clear hal.Clear, viewport, scissor hal.Rect) {
	if target == hal.NoTarget {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	} else if rt, ok := d.targets[target]; ok {
		gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	}

	if viewport.W != 0 || viewport.H != 0 {
		gl.Viewport(int32(viewport.X), int32(viewport.Y), int32(viewport.W), int32(viewport.H))
	}

	if scissor.W != 0 || scissor.H != 0 {
		gl.Enable(gl.SCISSOR_TEST)
		gl.Scissor(int32(scissor.X), int32(scissor.Y), int32(scissor.W), int32(scissor.H))
	} else {
		gl.Disable(gl.SCISSOR_TEST)
	}

	var mask uint32
	if clear.Flags&types.ClearColor != 0 {
		gl.ColorMask(true, true, true, true)
		gl.ClearColor(clear.Color.R, clear.Color.G, clear.Color.B, clear.Color.A)
		mask |= gl.COLOR_BUFFER_BIT
	}
	if clear.Flags&types.ClearDepth != 0 {
		gl.DepthMask(true)
		gl.ClearDepthf(clear.Depth)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
	}
}

// SetView stores the layer's view matrix for stock uniform resolution.
func (d *Device) SetView(m linear.Mat4) { d.view = m }

// SetProjection stores the layer's projection matrix.
func (d *Device) SetProjection(m linear.Mat4) { d.projection = m }

// SetProgram binds the program and re-uploads registered uniform values.
func (d *Device) SetProgram(idx uint32) {
	p, ok := d.programs[idx]
	if !ok {
		hal.Logger().Warn("bind of unknown program", "idx", idx)
		return
	}
	gl.UseProgram(p.id)
	d.current = p

	for uidx, u := range d.uniforms {
		if u.data != nil {
			d.uploadUniform(p, uidx, u)
		}
	}
}

// SetVertexBuffer binds the vertex buffer and configures the attribute
// pointers of the format.
func (d *Device) SetVertexBuffer(idx uint32, format types.VertexFormat) {
	b, ok := d.vertexBuffers[idx]
	if !ok {
		hal.Logger().Warn("bind of unknown vertex buffer", "idx", idx)
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	d.boundVB = b
	d.boundFormat = format

	if format >= types.VertexFormatCount {
		return
	}

	stride := int32(format.Stride())
	for a := types.VertexAttrib(0); a < types.AttribCount; a++ {
		loc := uint32(a)
		if !format.HasAttrib(a) {
			gl.DisableVertexAttribArray(loc)
			continue
		}
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, int32(format.Components(a)),
			gl.FLOAT, false, stride, uintptr(format.Offset(a)))
	}
}

// SetIndexBuffer binds the index buffer.
func (d *Device) SetIndexBuffer(idx uint32) {
	b, ok := d.indexBuffers[idx]
	if !ok {
		hal.Logger().Warn("bind of unknown index buffer", "idx", idx)
		return
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
	d.boundIB = b
}

// SetTexture binds a texture or render-target attachment to a sampler
// unit and applies its sampler state.
func (d *Device) SetTexture(unit int, idx uint32, flags types.SamplerFlags, isRenderTarget bool) {
	var tex uint32
	if isRenderTarget {
		rt, ok := d.targets[idx]
		if !ok {
			return
		}
		tex = rt.tex
	} else {
		t, ok := d.textures[idx]
		if !ok {
			return
		}
		tex = t.id
	}

	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex)
	applySamplerState(flags)
}

// SetPose uploads the draw's model matrix and the stock matrices derived
// from it.
func (d *Device) SetPose(m linear.Mat4) {
	p := d.current
	if p == nil {
		return
	}

	upload := func(u types.StockUniform, mat linear.Mat4) {
		if loc := p.stock[u]; loc >= 0 {
			gl.UniformMatrix4fv(loc, 1, false, &mat[0])
		}
	}

	upload(types.StockModel, m)
	upload(types.StockView, d.view)
	mv := d.view.Mul(m)
	upload(types.StockModelView, mv)
	upload(types.StockModelViewProjection, d.projection.Mul(mv))

	if loc := p.stock[types.StockTimeSinceStart]; loc >= 0 {
		gl.Uniform1f(loc, d.timeSeconds)
	}
}

// Draw issues the draw call recorded by the preceding Set calls.
func (d *Device) Draw(firstVertex, vertexCount, firstIndex, indexCount uint32, indexed bool) {
	if indexed {
		if d.boundIB == nil {
			return
		}
		count := indexCount
		if count == ^uint32(0) {
			count = d.boundIB.size / 2
		}
		gl.DrawElementsWithOffset(d.primitive, int32(count), gl.UNSIGNED_SHORT,
			uintptr(firstIndex*2))
		return
	}

	count := vertexCount
	if count == ^uint32(0) {
		if d.boundVB == nil || d.boundFormat >= types.VertexFormatCount {
			return
		}
		count = d.boundVB.size / uint32(d.boundFormat.Stride())
	}
	gl.DrawArrays(d.primitive, int32(firstVertex), int32(count))
}

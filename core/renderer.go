// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"runtime"
	"time"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

// Config parameterizes a Renderer. The zero value of every field selects
// a sensible default.
type Config struct {
	// Device is the backend to render with. When nil, Variant is resolved
	// through the hal registry.
	Device hal.Device

	// Variant selects a registered backend when Device is nil.
	Variant types.BackendVariant

	// SingleThreaded runs the render pass inline from Frame instead of on
	// a dedicated render thread. For platforms without threads and for
	// debugging; all other semantics are identical.
	SingleThreaded bool

	// Per-class handle capacities.
	MaxVertexBuffers int
	MaxIndexBuffers  int
	MaxTextures      int
	MaxShaders       int
	MaxPrograms      int
	MaxUniforms      int
	MaxRenderTargets int

	// MaxDraws is the per-frame draw snapshot capacity.
	MaxDraws int

	// Byte capacities of the command and constant streams.
	CommandBufferSize  int
	ConstantBufferSize int

	// Byte capacities of the shared per-frame transient buffers.
	TransientVertexBufferSize uint32
	TransientIndexBufferSize  uint32
}

func (c *Config) withDefaults() {
	def := func(v *int, d int) {
		if *v == 0 {
			*v = d
		}
	}
	def(&c.MaxVertexBuffers, 4096)
	def(&c.MaxIndexBuffers, 4096)
	def(&c.MaxTextures, 4096)
	def(&c.MaxShaders, 512)
	def(&c.MaxPrograms, 512)
	def(&c.MaxUniforms, 512)
	def(&c.MaxRenderTargets, 64)
	def(&c.MaxDraws, 1024)
	def(&c.CommandBufferSize, 1<<20)
	def(&c.ConstantBufferSize, 1<<20)
	if c.TransientVertexBufferSize == 0 {
		c.TransientVertexBufferSize = 4 << 20
	}
	if c.TransientIndexBufferSize == 0 {
		c.TransientIndexBufferSize = 2 << 20
	}
}

// Renderer is the submission system: the producer-facing recording API on
// one side, a render loop draining the draw context on the other.
//
// All producer methods must be called from a single goroutine (the submit
// thread). Frame marks the frame boundary.
type Renderer struct {
	device hal.Device

	contexts [2]*renderContext
	submit   *renderContext
	draw     *renderContext

	vertexBuffers *table[vertexBufferMarker]
	indexBuffers  *table[indexBufferMarker]
	textures      *table[textureMarker]
	shaders       *table[shaderMarker]
	programs      *table[programMarker]
	uniforms      *table[uniformMarker]
	renderTargets *table[renderTargetMarker]

	cfg Config

	singleThreaded bool
	frameReady     chan struct{}
	frameDone      chan struct{}
	done           chan struct{}

	// running and initialized belong to the render thread once the loop
	// is started; the shutdown command flips running from within the
	// command stream.
	running     bool
	initialized bool

	start time.Time
}

// New creates a Renderer. The renderer does nothing until Init is called.
func New(cfg Config) (*Renderer, error) {
	cfg.withDefaults()

	device := cfg.Device
	if device == nil {
		var err error
		device, err = hal.New(cfg.Variant)
		if err != nil {
			return nil, err
		}
	}

	r := &Renderer{
		device:         device,
		cfg:            cfg,
		singleThreaded: cfg.SingleThreaded,
		frameReady:     make(chan struct{}, 1),
		frameDone:      make(chan struct{}, 1),
		done:           make(chan struct{}),
		vertexBuffers:  newTable[vertexBufferMarker](cfg.MaxVertexBuffers),
		indexBuffers:   newTable[indexBufferMarker](cfg.MaxIndexBuffers),
		textures:       newTable[textureMarker](cfg.MaxTextures),
		shaders:        newTable[shaderMarker](cfg.MaxShaders),
		programs:       newTable[programMarker](cfg.MaxPrograms),
		uniforms:       newTable[uniformMarker](cfg.MaxUniforms),
		renderTargets:  newTable[renderTargetMarker](cfg.MaxRenderTargets),
	}
	for i := range r.contexts {
		r.contexts[i] = newRenderContext(cfg.CommandBufferSize, cfg.ConstantBufferSize, cfg.MaxDraws)
	}
	r.submit = r.contexts[0]
	r.draw = r.contexts[1]
	return r, nil
}

// Init starts the render loop and initializes the backend. Must be the
// first call to the renderer.
//
// Both contexts get their shared transient buffers here, one frame apart,
// so that reservations work from the very first recorded frame.
func (r *Renderer) Init() {
	r.running = true
	r.start = time.Now()

	if !r.singleThreaded {
		go r.renderLoop()
	}

	r.submit.commands.writeTag(cmdInit)
	r.Frame()

	r.attachTransients()
	r.Frame()
	r.attachTransients()
	r.Frame()
}

// Shutdown flushes outstanding work, tears down the backend and joins the
// render loop. Must be the last call to the renderer.
func (r *Renderer) Shutdown() {
	if !r.running {
		return
	}

	r.detachTransients()
	r.Frame()
	r.detachTransients()
	r.Frame()

	r.submit.commands.writeTag(cmdShutdown)
	r.Frame()

	if !r.singleThreaded {
		<-r.done
	}
}

// Frame marks the frame boundary: everything submitted so far becomes
// visible to the render thread, and nothing submitted afterwards can
// affect the frame being rendered. Blocks until the render thread has
// finished the frame.
func (r *Renderer) Frame() {
	r.submit.push()

	if r.singleThreaded {
		r.renderAll()
		return
	}

	r.frameReady <- struct{}{}
	<-r.frameDone
}

// renderLoop is the body of the dedicated render thread. The goroutine is
// locked to an OS thread: graphics APIs demand their context stays on one
// thread.
func (r *Renderer) renderLoop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		<-r.frameReady
		r.renderAll()
		running := r.running
		r.frameDone <- struct{}{}
		if !running {
			close(r.done)
			return
		}
	}
}

// renderAll swaps the contexts and consumes the draw context: commands,
// uniform updates, then the sorted draw pass.
func (r *Renderer) renderAll() {
	r.submit, r.draw = r.draw, r.submit

	d := r.draw
	r.executeCommands(d.commands)
	r.updateUniforms(d.constants)
	if r.initialized {
		r.render(d)
	}
	d.clear()
}

func (r *Renderer) attachTransients() {
	vb, err := r.CreateTransientVertexBuffer(r.cfg.TransientVertexBufferSize)
	if err != nil {
		panic(err)
	}
	ib, err := r.CreateTransientIndexBuffer(r.cfg.TransientIndexBufferSize)
	if err != nil {
		panic(err)
	}
	r.submit.transientVB = vb
	r.submit.transientIB = ib
}

func (r *Renderer) detachTransients() {
	r.DestroyTransientVertexBuffer(r.submit.transientVB)
	r.DestroyTransientIndexBuffer(r.submit.transientIB)
	r.submit.transientVB = nil
	r.submit.transientIB = nil
}

func assertLive(ok bool, class string, id fmt.Stringer) {
	if !ok {
		panic(fmt.Sprintf("core: %s handle %v is not live", class, id))
	}
}

// CreateVertexBuffer creates a static vertex buffer filled with data in
// the given format.
func (r *Renderer) CreateVertexBuffer(data []byte, format types.VertexFormat) (VertexBufferID, error) {
	id, err := r.vertexBuffers.create()
	if err != nil {
		return id, err
	}

	cb := r.submit.commands
	cb.writeTag(cmdCreateVertexBuffer)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeBytes(data)
	cb.writeUint8(uint8(format))
	return id, nil
}

// CreateDynamicVertexBuffer allocates storage for size bytes of vertex
// data. Use UpdateVertexBuffer to fill it.
func (r *Renderer) CreateDynamicVertexBuffer(size uint32) (VertexBufferID, error) {
	id, err := r.vertexBuffers.create()
	if err != nil {
		return id, err
	}

	cb := r.submit.commands
	cb.writeTag(cmdCreateDynamicVertexBuffer)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeUint32(size)
	return id, nil
}

// UpdateVertexBuffer replaces len(data) bytes of id starting at offset.
func (r *Renderer) UpdateVertexBuffer(id VertexBufferID, offset uint32, data []byte) {
	assertLive(r.vertexBuffers.has(id), "vertex buffer", id)

	cb := r.submit.commands
	cb.writeTag(cmdUpdateVertexBuffer)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeUint32(offset)
	cb.writeBytes(data)
}

// DestroyVertexBuffer destroys the vertex buffer.
func (r *Renderer) DestroyVertexBuffer(id VertexBufferID) {
	assertLive(r.vertexBuffers.has(id), "vertex buffer", id)
	r.vertexBuffers.destroy(id)

	cb := r.submit.commands
	cb.writeTag(cmdDestroyVertexBuffer)
	cb.writeUint64(uint64(id.Raw()))
}

// CreateIndexBuffer creates a static index buffer holding uint16 indices.
func (r *Renderer) CreateIndexBuffer(data []byte) (IndexBufferID, error) {
	id, err := r.indexBuffers.create()
	if err != nil {
		return id, err
	}

	cb := r.submit.commands
	cb.writeTag(cmdCreateIndexBuffer)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeBytes(data)
	return id, nil
}

// CreateDynamicIndexBuffer allocates storage for size bytes of index data.
func (r *Renderer) CreateDynamicIndexBuffer(size uint32) (IndexBufferID, error) {
	id, err := r.indexBuffers.create()
	if err != nil {
		return id, err
	}

	cb := r.submit.commands
	cb.writeTag(cmdCreateDynamicIndexBuffer)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeUint32(size)
	return id, nil
}

// UpdateIndexBuffer replaces len(data) bytes of id starting at offset.
func (r *Renderer) UpdateIndexBuffer(id IndexBufferID, offset uint32, data []byte) {
	assertLive(r.indexBuffers.has(id), "index buffer", id)

	cb := r.submit.commands
	cb.writeTag(cmdUpdateIndexBuffer)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeUint32(offset)
	cb.writeBytes(data)
}

// DestroyIndexBuffer destroys the index buffer.
func (r *Renderer) DestroyIndexBuffer(id IndexBufferID) {
	assertLive(r.indexBuffers.has(id), "index buffer", id)
	r.indexBuffers.destroy(id)

	cb := r.submit.commands
	cb.writeTag(cmdDestroyIndexBuffer)
	cb.writeUint64(uint64(id.Raw()))
}

// CreateTexture creates a width x height texture. data holds the pixels
// in the given format, tightly packed.
func (r *Renderer) CreateTexture(width, height uint32, format types.PixelFormat, data []byte) (TextureID, error) {
	id, err := r.textures.create()
	if err != nil {
		return id, err
	}

	cb := r.submit.commands
	cb.writeTag(cmdCreateTexture)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeUint32(width)
	cb.writeUint32(height)
	cb.writeUint8(uint8(format))
	cb.writeBytes(data)
	return id, nil
}

// UpdateTexture replaces the region (x, y, width, height) of the texture.
// data holds width*height pixels of the format given at creation.
func (r *Renderer) UpdateTexture(id TextureID, x, y, width, height uint32, data []byte) {
	assertLive(r.textures.has(id), "texture", id)

	cb := r.submit.commands
	cb.writeTag(cmdUpdateTexture)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeUint32(x)
	cb.writeUint32(y)
	cb.writeUint32(width)
	cb.writeUint32(height)
	cb.writeBytes(data)
}

// DestroyTexture destroys the texture.
func (r *Renderer) DestroyTexture(id TextureID) {
	assertLive(r.textures.has(id), "texture", id)
	r.textures.destroy(id)

	cb := r.submit.commands
	cb.writeTag(cmdDestroyTexture)
	cb.writeUint64(uint64(id.Raw()))
}

// CreateShader creates a shader of the given stage from source.
func (r *Renderer) CreateShader(stage types.ShaderStage, source string) (ShaderID, error) {
	id, err := r.shaders.create()
	if err != nil {
		return id, err
	}

	cb := r.submit.commands
	cb.writeTag(cmdCreateShader)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeUint8(uint8(stage))
	cb.writeString(source)
	return id, nil
}

// DestroyShader destroys the shader.
func (r *Renderer) DestroyShader(id ShaderID) {
	assertLive(r.shaders.has(id), "shader", id)
	r.shaders.destroy(id)

	cb := r.submit.commands
	cb.writeTag(cmdDestroyShader)
	cb.writeUint64(uint64(id.Raw()))
}

// CreateProgram creates a GPU program from a vertex and a fragment shader.
func (r *Renderer) CreateProgram(vertex, fragment ShaderID) (ProgramID, error) {
	assertLive(r.shaders.has(vertex), "shader", vertex)
	assertLive(r.shaders.has(fragment), "shader", fragment)

	id, err := r.programs.create()
	if err != nil {
		return id, err
	}

	cb := r.submit.commands
	cb.writeTag(cmdCreateProgram)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeUint64(uint64(vertex.Raw()))
	cb.writeUint64(uint64(fragment.Raw()))
	return id, nil
}

// DestroyProgram destroys the program.
func (r *Renderer) DestroyProgram(id ProgramID) {
	assertLive(r.programs.has(id), "program", id)
	r.programs.destroy(id)

	cb := r.submit.commands
	cb.writeTag(cmdDestroyProgram)
	cb.writeUint64(uint64(id.Raw()))
}

// CreateUniform registers a uniform with storage for count elements of
// typ. Names colliding with a stock uniform are rejected with
// ErrStockUniformName; names longer than types.MaxUniformNameLen with
// ErrUniformNameTooLong.
func (r *Renderer) CreateUniform(name string, typ types.UniformType, count uint8) (UniformID, error) {
	if _, ok := types.StockUniformByName(name); ok {
		return UniformID{}, fmt.Errorf("%w: %q", ErrStockUniformName, name)
	}
	if len(name) > types.MaxUniformNameLen {
		return UniformID{}, fmt.Errorf("%w: %q (%d bytes)", ErrUniformNameTooLong, name, len(name))
	}

	id, err := r.uniforms.create()
	if err != nil {
		return id, err
	}

	cb := r.submit.commands
	cb.writeTag(cmdCreateUniform)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeString(name)
	cb.writeUint8(uint8(typ))
	cb.writeUint8(count)
	return id, nil
}

// DestroyUniform destroys the uniform.
func (r *Renderer) DestroyUniform(id UniformID) {
	assertLive(r.uniforms.has(id), "uniform", id)
	r.uniforms.destroy(id)

	cb := r.submit.commands
	cb.writeTag(cmdDestroyUniform)
	cb.writeUint64(uint64(id.Raw()))
}

// CreateRenderTarget creates a width x height render target with the
// given pixel format.
func (r *Renderer) CreateRenderTarget(width, height uint16, format types.PixelFormat) (RenderTargetID, error) {
	id, err := r.renderTargets.create()
	if err != nil {
		return id, err
	}

	cb := r.submit.commands
	cb.writeTag(cmdCreateRenderTarget)
	cb.writeUint64(uint64(id.Raw()))
	cb.writeUint16(width)
	cb.writeUint16(height)
	cb.writeUint8(uint8(format))
	return id, nil
}

// DestroyRenderTarget destroys the render target.
func (r *Renderer) DestroyRenderTarget(id RenderTargetID) {
	assertLive(r.renderTargets.has(id), "render target", id)
	r.renderTargets.destroy(id)

	cb := r.submit.commands
	cb.writeTag(cmdDestroyRenderTarget)
	cb.writeUint64(uint64(id.Raw()))
}

// CreateTransientVertexBuffer creates a transient vertex buffer with
// storage for exactly size bytes. Typically only called internally to
// allocate the shared buffer that ReserveTransientVertexBuffer carves
// smaller one-frame buffers from.
func (r *Renderer) CreateTransientVertexBuffer(size uint32) (*TransientVertexBuffer, error) {
	id, err := r.CreateDynamicVertexBuffer(size)
	if err != nil {
		return nil, err
	}
	return &TransientVertexBuffer{
		Buffer: id,
		Format: types.VertexFormatCount,
		Size:   size,
	}, nil
}

// ReserveTransientVertexBuffer carves num vertices of format out of the
// shared transient vertex buffer into tvb. The reservation is valid for
// the current frame only.
func (r *Renderer) ReserveTransientVertexBuffer(tvb *TransientVertexBuffer, num uint32, format types.VertexFormat) {
	shared := r.submit.transientVB
	offset := r.submit.reserveTransientVertices(num, format)
	stride := uint32(format.Stride())

	tvb.Buffer = shared.Buffer
	tvb.Format = format
	tvb.StartVertex = offset / stride
	tvb.Offset = offset
	tvb.Size = num * stride
}

// DestroyTransientVertexBuffer destroys the underlying buffer of a
// transient vertex buffer created with CreateTransientVertexBuffer.
func (r *Renderer) DestroyTransientVertexBuffer(tvb *TransientVertexBuffer) {
	r.DestroyVertexBuffer(tvb.Buffer)
}

// CreateTransientIndexBuffer creates a transient index buffer with
// storage for exactly size bytes.
func (r *Renderer) CreateTransientIndexBuffer(size uint32) (*TransientIndexBuffer, error) {
	id, err := r.CreateDynamicIndexBuffer(size)
	if err != nil {
		return nil, err
	}
	return &TransientIndexBuffer{Buffer: id, Size: size}, nil
}

// ReserveTransientIndexBuffer carves num uint16 indices out of the shared
// transient index buffer into tib. Valid for the current frame only.
func (r *Renderer) ReserveTransientIndexBuffer(tib *TransientIndexBuffer, num uint32) {
	shared := r.submit.transientIB
	offset := r.submit.reserveTransientIndices(num)

	tib.Buffer = shared.Buffer
	tib.StartIndex = offset / types.IndexStride
	tib.Offset = offset
	tib.Size = num * types.IndexStride
}

// DestroyTransientIndexBuffer destroys the underlying buffer of a
// transient index buffer created with CreateTransientIndexBuffer.
func (r *Renderer) DestroyTransientIndexBuffer(tib *TransientIndexBuffer) {
	r.DestroyIndexBuffer(tib.Buffer)
}

// SetState sets the render-state word of the next draw.
func (r *Renderer) SetState(flags types.StateFlags) {
	r.submit.setState(flags)
}

// SetPose sets the model matrix of the next draw.
func (r *Renderer) SetPose(pose linear.Mat4) {
	r.submit.setPose(pose)
}

// SetProgram sets the program of the next draw.
func (r *Renderer) SetProgram(id ProgramID) {
	assertLive(r.programs.has(id), "program", id)
	r.submit.setProgram(id)
}

// SetVertexBuffer binds numVertices of id in the given format to the next
// draw. Pass WholeBuffer to draw everything the buffer holds.
func (r *Renderer) SetVertexBuffer(id VertexBufferID, format types.VertexFormat, numVertices uint32) {
	assertLive(r.vertexBuffers.has(id), "vertex buffer", id)
	r.submit.setVertexBuffer(id, format, numVertices)
}

// SetTransientVertexBuffer binds a transient reservation to the next draw.
func (r *Renderer) SetTransientVertexBuffer(tvb *TransientVertexBuffer, numVertices uint32) {
	r.submit.setTransientVertexBuffer(tvb, numVertices)
}

// SetIndexBuffer binds numIndices of id starting at startIndex to the
// next draw, making it an indexed draw.
func (r *Renderer) SetIndexBuffer(id IndexBufferID, startIndex, numIndices uint32) {
	assertLive(r.indexBuffers.has(id), "index buffer", id)
	r.submit.setIndexBuffer(id, startIndex, numIndices)
}

// SetTransientIndexBuffer binds a transient reservation to the next draw.
func (r *Renderer) SetTransientIndexBuffer(tib *TransientIndexBuffer, numIndices uint32) {
	r.submit.setTransientIndexBuffer(tib, numIndices)
}

// SetUniform records a uniform write of count elements of typ. data must
// hold exactly count elements worth of bytes (see Float32Bytes).
func (r *Renderer) SetUniform(id UniformID, typ types.UniformType, data []byte, count uint8) {
	assertLive(r.uniforms.has(id), "uniform", id)
	r.submit.setUniform(id, typ, data, count)
}

// SetTexture binds a texture to a sampler unit of the next draw.
// samplerUniform is the Integer1 uniform naming the sampler in the shader.
func (r *Renderer) SetTexture(unit int, samplerUniform UniformID, texture TextureID, flags types.SamplerFlags) {
	assertLive(r.uniforms.has(samplerUniform), "uniform", samplerUniform)
	assertLive(r.textures.has(texture), "texture", texture)
	r.submit.setTexture(unit, samplerUniform, texture.Raw(), false, flags)
}

// SetRenderTargetTexture binds a render target's attachment to a sampler
// unit of the next draw, so a previous layer's output can be sampled.
func (r *Renderer) SetRenderTargetTexture(unit int, samplerUniform UniformID, target RenderTargetID, flags types.SamplerFlags) {
	assertLive(r.uniforms.has(samplerUniform), "uniform", samplerUniform)
	assertLive(r.renderTargets.has(target), "render target", target)
	r.submit.setTexture(unit, samplerUniform, target.Raw(), true, flags)
}

// SetLayerRenderTarget directs a layer's draws into a render target.
func (r *Renderer) SetLayerRenderTarget(layer uint8, target RenderTargetID) {
	assertLive(r.renderTargets.has(target), "render target", target)
	r.submit.setLayerRenderTarget(layer, target)
}

// SetLayerClear configures how a layer clears its attachments.
func (r *Renderer) SetLayerClear(layer uint8, flags types.ClearFlags, color linear.Color4, depth float32) {
	r.submit.setLayerClear(layer, flags, color, depth)
}

// SetLayerView sets a layer's view matrix.
func (r *Renderer) SetLayerView(layer uint8, view linear.Mat4) {
	r.submit.setLayerView(layer, view)
}

// SetLayerProjection sets a layer's projection matrix.
func (r *Renderer) SetLayerProjection(layer uint8, projection linear.Mat4) {
	r.submit.setLayerProjection(layer, projection)
}

// SetLayerViewport sets a layer's viewport rectangle in pixels.
func (r *Renderer) SetLayerViewport(layer uint8, x, y, width, height uint16) {
	r.submit.setLayerViewport(layer, x, y, width, height)
}

// SetLayerScissor sets a layer's scissor rectangle in pixels.
func (r *Renderer) SetLayerScissor(layer uint8, x, y, width, height uint16) {
	r.submit.setLayerScissor(layer, x, y, width, height)
}

// Commit snapshots the current draw state onto the given layer and resets
// the current draw state for the next draw. Layer state is untouched.
func (r *Renderer) Commit(layer uint8) {
	r.submit.commit(layer)
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"time"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// executeCommands drains the draw context's command stream, dispatching
// each command to the backend, until the end-of-frame tag. Unknown tags
// mean a corrupted stream and are fatal.
func (r *Renderer) executeCommands(cmds *commandBuffer) {
	log := hal.Logger()

	for {
		tag := cmds.readTag()
		log.Debug("execute command", "tag", tag)

		switch tag {
		case cmdInit:
			if err := r.device.Init(); err != nil {
				log.Error("backend init failed", "error", err)
				break
			}
			r.initialized = true
			log.Info("backend initialized", "variant", r.device.Variant())

		case cmdShutdown:
			r.device.Shutdown()
			r.initialized = false
			r.running = false
			log.Info("backend shut down")

		case cmdCreateVertexBuffer:
			id := RawID(cmds.readUint64())
			data := cmds.readBytes()
			format := types.VertexFormat(cmds.readUint8())
			if err := r.device.CreateVertexBuffer(id.Index(), data, format); err != nil {
				log.Error("create vertex buffer failed", "id", id, "error", err)
			}

		case cmdCreateDynamicVertexBuffer:
			id := RawID(cmds.readUint64())
			size := cmds.readUint32()
			if err := r.device.CreateDynamicVertexBuffer(id.Index(), size); err != nil {
				log.Error("create dynamic vertex buffer failed", "id", id, "error", err)
			}

		case cmdUpdateVertexBuffer:
			id := RawID(cmds.readUint64())
			offset := cmds.readUint32()
			data := cmds.readBytes()
			r.device.UpdateVertexBuffer(id.Index(), offset, data)

		case cmdDestroyVertexBuffer:
			id := RawID(cmds.readUint64())
			r.device.DestroyVertexBuffer(id.Index())

		case cmdCreateIndexBuffer:
			id := RawID(cmds.readUint64())
			data := cmds.readBytes()
			if err := r.device.CreateIndexBuffer(id.Index(), data); err != nil {
				log.Error("create index buffer failed", "id", id, "error", err)
			}

		case cmdCreateDynamicIndexBuffer:
			id := RawID(cmds.readUint64())
			size := cmds.readUint32()
			if err := r.device.CreateDynamicIndexBuffer(id.Index(), size); err != nil {
				log.Error("create dynamic index buffer failed", "id", id, "error", err)
			}

		case cmdUpdateIndexBuffer:
			id := RawID(cmds.readUint64())
			offset := cmds.readUint32()
			data := cmds.readBytes()
			r.device.UpdateIndexBuffer(id.Index(), offset, data)

		case cmdDestroyIndexBuffer:
			id := RawID(cmds.readUint64())
			r.device.DestroyIndexBuffer(id.Index())

		case cmdCreateTexture:
			id := RawID(cmds.readUint64())
			width := cmds.readUint32()
			height := cmds.readUint32()
			format := types.PixelFormat(cmds.readUint8())
			data := cmds.readBytes()
			if err := r.device.CreateTexture(id.Index(), width, height, format, data); err != nil {
				log.Error("create texture failed", "id", id, "error", err)
			}

		case cmdUpdateTexture:
			id := RawID(cmds.readUint64())
			x := cmds.readUint32()
			y := cmds.readUint32()
			width := cmds.readUint32()
			height := cmds.readUint32()
			data := cmds.readBytes()
			r.device.UpdateTexture(id.Index(), x, y, width, height, data)

		case cmdDestroyTexture:
			id := RawID(cmds.readUint64())
			r.device.DestroyTexture(id.Index())

		case cmdCreateShader:
			id := RawID(cmds.readUint64())
			stage := types.ShaderStage(cmds.readUint8())
			source := cmds.readString()
			if err := r.device.CreateShader(id.Index(), stage, source); err != nil {
				log.Error("create shader failed", "id", id, "stage", stage, "error", err)
			}

		case cmdDestroyShader:
			id := RawID(cmds.readUint64())
			r.device.DestroyShader(id.Index())

		case cmdCreateProgram:
			id := RawID(cmds.readUint64())
			vertex := RawID(cmds.readUint64())
			fragment := RawID(cmds.readUint64())
			if err := r.device.CreateProgram(id.Index(), vertex.Index(), fragment.Index()); err != nil {
				log.Error("create program failed", "id", id, "error", err)
			}

		case cmdDestroyProgram:
			id := RawID(cmds.readUint64())
			r.device.DestroyProgram(id.Index())

		case cmdCreateUniform:
			id := RawID(cmds.readUint64())
			name := cmds.readString()
			typ := types.UniformType(cmds.readUint8())
			count := cmds.readUint8()
			r.device.CreateUniform(id.Index(), name, typ, count)

		case cmdDestroyUniform:
			id := RawID(cmds.readUint64())
			r.device.DestroyUniform(id.Index())

		case cmdCreateRenderTarget:
			id := RawID(cmds.readUint64())
			width := cmds.readUint16()
			height := cmds.readUint16()
			format := types.PixelFormat(cmds.readUint8())
			if err := r.device.CreateRenderTarget(id.Index(), width, height, format); err != nil {
				log.Error("create render target failed", "id", id, "error", err)
			}

		case cmdDestroyRenderTarget:
			id := RawID(cmds.readUint64())
			r.device.DestroyRenderTarget(id.Index())

		case cmdEnd:
			cmds.clear()
			return

		default:
			panic(fmt.Sprintf("core: unknown command tag %d", uint8(tag)))
		}
	}
}

// updateUniforms replays the draw context's constant stream against the
// backend. Called exactly once per frame, after executeCommands and before
// the context is cleared.
func (r *Renderer) updateUniforms(cbuf *constantBuffer) {
	for {
		id, _, data, ok := cbuf.readUniform()
		if !ok {
			break
		}
		r.device.UpdateUniform(id.Index(), data)
	}
	cbuf.clear()
}

// render sorts the frame's draws and issues them, layer by layer. Layer
// setup (target, clear, view, projection, viewport, scissor) precedes the
// layer's first draw. Program, buffer and state binds are elided when
// unchanged since the previous draw.
func (r *Renderer) render(d *renderContext) {
	d.sortDraws()

	r.device.BeginFrame(float32(time.Since(r.start).Seconds()))

	var (
		boundProgram ProgramID
		boundVB      VertexBufferID
		boundFormat  = types.VertexFormatCount
		boundIB      IndexBufferID
		lastFlags    types.StateFlags
		stateApplied bool
	)

	next := 0
	for layer := uint8(0); layer < MaxLayers; layer++ {
		first := next
		for next < d.numStates && d.keys[next].Layer() == layer {
			next++
		}

		l := &d.layers[layer]
		if !l.touched && first == next {
			continue
		}

		target := hal.NoTarget
		if !l.target.IsZero() {
			target = l.target.Index()
		}
		r.device.SetLayer(target, l.clear, l.viewport, l.scissor)
		r.device.SetView(l.view)
		r.device.SetProjection(l.projection)

		for i := first; i < next; i++ {
			st := &d.states[i]

			if st.program.IsZero() {
				hal.Logger().Warn("draw with no program, skipped", "layer", layer)
				continue
			}

			if st.program != boundProgram {
				r.device.SetProgram(st.program.Index())
				boundProgram = st.program
			}
			if st.vb != boundVB || st.format != boundFormat {
				r.device.SetVertexBuffer(st.vb.Index(), st.format)
				boundVB = st.vb
				boundFormat = st.format
			}
			indexed := !st.ib.IsZero()
			if indexed && st.ib != boundIB {
				r.device.SetIndexBuffer(st.ib.Index())
				boundIB = st.ib
			}

			for unit := 0; unit < types.StateMaxTextures; unit++ {
				if !st.flags.TextureEnabled(unit) {
					continue
				}
				s := &st.samplers[unit]
				r.device.SetTexture(unit, s.raw.Index(), s.flags, s.isRenderTarget)
			}

			if !stateApplied || st.flags != lastFlags {
				r.device.ApplyState(st.flags)
				lastFlags = st.flags
				stateApplied = true
			}

			r.device.SetPose(st.pose)
			r.device.Draw(st.startVertex, st.numVertices, st.startIndex, st.numIndices, indexed)
		}
	}

	r.device.EndFrame()
}

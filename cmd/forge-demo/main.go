// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// forge-demo opens a window and renders a spinning triangle plus a debug
// axis cross through the submission core and the GL backend.
//
// The GL context is made current on the main thread, so the renderer runs
// in single-threaded mode: the render pass executes inline from Frame.
package main

import (
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/forge/core"
	"github.com/gogpu/forge/engine/debugline"
	"github.com/gogpu/forge/engine/mesh"
	"github.com/gogpu/forge/hal"
	_ "github.com/gogpu/forge/hal/gl"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

const (
	width  = 960
	height = 540
)

const vertexShader = `#version 430 core
layout(location = 0) in vec3 a_position;
layout(location = 2) in vec4 a_color;

uniform mat4 u_model_view_projection;

out vec4 v_color;

void main() {
    v_color = a_color;
    gl_Position = u_model_view_projection * vec4(a_position, 1.0);
}
`

const fragmentShader = `#version 430 core
in vec4 v_color;
out vec4 frag_color;

void main() {
    frag_color = v_color;
}
`

func init() {
	// glfw event handling must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	hal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(width, height, "forge demo", nil, nil)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	r, err := core.New(core.Config{
		Variant:        types.BackendGL,
		SingleThreaded: true,
	})
	if err != nil {
		log.Fatalf("create renderer: %v", err)
	}

	r.Init()
	defer r.Shutdown()

	vs, err := r.CreateShader(types.StageVertex, vertexShader)
	if err != nil {
		log.Fatalf("create vertex shader: %v", err)
	}
	fs, err := r.CreateShader(types.StageFragment, fragmentShader)
	if err != nil {
		log.Fatalf("create fragment shader: %v", err)
	}
	program, err := r.CreateProgram(vs, fs)
	if err != nil {
		log.Fatalf("create program: %v", err)
	}

	triangle, err := mesh.New(r, types.VertexP3C4,
		[]float32{
			-0.6, -0.5, 0, 1, 0, 0, 1,
			0.6, -0.5, 0, 0, 1, 0, 1,
			0, 0.6, 0, 0, 0, 1, 1,
		},
		[]uint16{0, 1, 2},
	)
	if err != nil {
		log.Fatalf("create mesh: %v", err)
	}

	lines := debugline.New()

	r.SetLayerClear(0, types.ClearColor|types.ClearDepth, linear.Color4{R: 0.1, G: 0.1, B: 0.12, A: 1}, 1)
	r.SetLayerViewport(0, 0, 0, width, height)
	r.SetLayerView(0, linear.LookAt(
		linear.Vec3{Z: 2.5},
		linear.Vec3{},
		linear.Vec3{Y: 1},
	))
	r.SetLayerProjection(0, linear.Perspective(1.0, float32(width)/float32(height), 0.1, 100))

	var angle float32
	for !window.ShouldClose() {
		angle += 0.01

		triangle.Submit(r, 0, program,
			linear.RotateY(angle),
			types.StateColorWrite|types.StateAlphaWrite|types.StateDepthWrite|types.StateDepthTestLEqual)

		lines.AddAxes(linear.Vec3{}, 1)
		lines.Submit(r, 0, program)

		r.Frame()
		window.SwapBuffers()
		glfw.PollEvents()
	}

	triangle.Destroy(r)
	r.DestroyProgram(program)
	r.DestroyShader(fs)
	r.DestroyShader(vs)
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package forge is a double-buffered, thread-decoupled rendering
// submission system: a main thread records resource commands, uniform
// writes and draw state into typed streams, and a dedicated render thread
// replays them against a pluggable graphics backend.
//
// # Quick Start
//
// Import this package and a backend registration package:
//
//	import (
//	    "github.com/gogpu/forge"
//	    "github.com/gogpu/forge/types"
//	    _ "github.com/gogpu/forge/hal/gl"
//	)
//
//	r, err := forge.New(forge.Config{Variant: types.BackendGL})
//	// ...
//	r.Init()
//	for running {
//	    // record draws...
//	    r.Frame()
//	}
//	r.Shutdown()
//
// # Threading
//
// Exactly one goroutine may call the recording API. Frame is the frame
// boundary: it hands the recorded work to the render thread and blocks
// until the render thread has finished that frame. Config.SingleThreaded runs
// the render pass inline instead, for debugging and platforms where the
// graphics context must stay on the main thread.
//
// # Backend Registration
//
// Backends register themselves via blank imports:
//
//	_ "github.com/gogpu/forge/hal/gl"    // OpenGL 4.6
//	_ "github.com/gogpu/forge/hal/noop"  // testing
package forge

import "github.com/gogpu/forge/core"

// Renderer is the submission system. See [core.Renderer].
type Renderer = core.Renderer

// Config parameterizes a Renderer. See [core.Config].
type Config = core.Config

// New creates a Renderer from a Config.
func New(cfg Config) (*Renderer, error) {
	return core.New(cfg)
}

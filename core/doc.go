// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package core implements the double-buffered, thread-decoupled rendering
// submission system.
//
// A Renderer owns two render contexts. The main thread records resource
// commands, uniform writes and per-draw state snapshots into the submit
// context; Frame marks the frame boundary, at which the contexts exchange
// roles and a dedicated render thread replays the draw context against a
// hal.Device: it executes resource commands, updates uniforms, sorts draws
// by their 64-bit key and issues backend calls layer by layer.
//
// Exactly one goroutine — the one calling the producer API — may record.
// Programming errors (stale handles, buffer overflow, out-of-range layers)
// break the command stream and panic; they are not recoverable.
package core

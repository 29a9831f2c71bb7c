// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// Shader entry point names by stage, the usual WGSL convention.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// prepareSource turns a shader source into GLSL. Sources starting with
// "#version" are taken as GLSL verbatim; anything else is treated as WGSL
// and translated. GLSL sources are what the stock-uniform model wants
// (plain uniforms looked up by name); WGSL sources express their uniforms
// as blocks.
func prepareSource(source string, stage types.ShaderStage) (string, error) {
	if strings.HasPrefix(strings.TrimSpace(source), "#version") {
		return source, nil
	}
	return translateWGSL(source, stage)
}

// translateWGSL compiles a WGSL shader source to GLSL for the given stage.
// OpenGL does not understand WGSL, so naga parses it and emits GLSL 4.30
// core; 4.30 is required for layout(binding=N) qualifiers.
func translateWGSL(source string, stage types.ShaderStage) (string, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return "", fmt.Errorf("gl: WGSL parse error: %w", err)
	}

	module, err := naga.Lower(ast)
	if err != nil {
		return "", fmt.Errorf("gl: WGSL lower error: %w", err)
	}

	entry := vertexEntryPoint
	if stage == types.StageFragment {
		entry = fragmentEntryPoint
	}

	code, _, err := glsl.Compile(module, glsl.Options{
		LangVersion:        glsl.Version430,
		EntryPoint:         entry,
		ForceHighPrecision: true,
	})
	if err != nil {
		return "", fmt.Errorf("gl: GLSL compile error for entry point %q: %w", entry, err)
	}

	return code, nil
}

// compileShader compiles GLSL source into a GL shader object.
func compileShader(source string, stage types.ShaderStage) (uint32, error) {
	glType := uint32(gl.VERTEX_SHADER)
	if stage == types.StageFragment {
		glType = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(glType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := strings.Repeat("\x00", int(logLen)+1)
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s: %s", hal.ErrShaderCompile, stage, strings.TrimRight(infoLog, "\x00"))
	}

	return shader, nil
}

// linkProgram links vertex and fragment shader objects into a program and
// resolves the stock uniform locations.
func linkProgram(vertex, fragment uint32) (uint32, [types.StockUniformCount]int32, error) {
	var stock [types.StockUniformCount]int32

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := strings.Repeat("\x00", int(logLen)+1)
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)
		return 0, stock, fmt.Errorf("%w: %s", hal.ErrProgramLink, strings.TrimRight(infoLog, "\x00"))
	}

	for u := types.StockUniform(0); u < types.StockUniformCount; u++ {
		stock[u] = gl.GetUniformLocation(program, gl.Str(u.Name()+"\x00"))
	}

	return program, stock, nil
}

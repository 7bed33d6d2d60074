// Package shader compiles GLSL programs and resolves their uniforms.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/logger"
)

// Program is a linked GL program with cached uniform locations.
type Program struct {
	ID       uint32
	name     string
	uniforms map[string]int32
}

// Compile builds and links a program from vertex and fragment sources. name
// only labels errors and log lines.
func Compile(name, vertexSrc, fragmentSrc string) (*Program, error) {
	vert, err := compileStage(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s vertex shader: %w", name, err)
	}
	defer gl.DeleteShader(vert)

	frag, err := compileStage(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s fragment shader: %w", name, err)
	}
	defer gl.DeleteShader(frag)

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
		msg := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(id, logLen, nil, buf) })
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%s link: %s", name, msg)
	}

	logger.Named("shader").Debug("program linked", zap.String("name", name), zap.Uint32("id", id))
	return &Program{ID: id, name: name, uniforms: make(map[string]int32)}, nil
}

func compileStage(source string, stage uint32) (uint32, error) {
	sh := gl.CreateShader(stage)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		msg := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(sh, logLen, nil, buf) })
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("compile: %s", msg)
	}
	return sh, nil
}

func infoLog(length int32, read func(*uint8)) string {
	if length <= 0 {
		return "(no info log)"
	}
	buf := make([]byte, length)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Uniform returns the location of a uniform, or -1 if the driver optimised
// it away. Missing uniforms are logged once.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	if loc < 0 {
		logger.Named("shader").Debug("uniform not active",
			zap.String("program", p.name), zap.String("uniform", name))
	}
	p.uniforms[name] = loc
	return loc
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

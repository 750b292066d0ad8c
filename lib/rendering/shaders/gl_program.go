package shaders

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/opengl-setup-test/hellogl/lib/metrics"
	"github.com/opengl-setup-test/hellogl/lib/rendering"
)

// CompileError carries the info log of a shader that did not compile
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// BuildProgram compiles both stages of src, links and validates them into
// a program. The intermediate shader objects are deleted in every case.
func BuildProgram(src *Source) (uint32, error) {
	program, err := newProgram(src)
	if err != nil {
		metrics.ShaderBuilds.WithLabelValues("failed").Inc()
		return 0, err
	}
	metrics.ShaderBuilds.WithLabelValues("ok").Inc()
	return program, nil
}

func newProgram(src *Source) (uint32, error) {
	vertexShader, err := compileShader(src.Vertex, Vertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(src.Fragment, Fragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()

	err = rendering.Call("glLinkProgram", func() {
		gl.AttachShader(program, vertexShader)
		gl.AttachShader(program, fragmentShader)
		gl.LinkProgram(program)
	})
	if err != nil {
		gl.DeleteProgram(program)
		return 0, err
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		logmsg := programLog(program)
		gl.DeleteProgram(program)
		return 0, errors.WithDetail(errors.New("failed to link program"), logmsg)
	}

	gl.ValidateProgram(program)
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		logmsg := programLog(program)
		gl.DeleteProgram(program)
		return 0, errors.WithDetail(errors.New("program failed validation"), logmsg)
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)

	return program, nil
}

func compileShader(source string, stage Stage) (uint32, error) {
	var shaderType uint32
	switch stage {
	case Vertex:
		shaderType = gl.VERTEX_SHADER
	case Fragment:
		shaderType = gl.FRAGMENT_SHADER
	default:
		return 0, errors.Newf("cannot compile a %s shader", stage)
	}

	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		clog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))
		gl.DeleteShader(shader)

		return 0, &CompileError{Stage: stage, Log: strings.TrimRight(clog, "\x00\n")}
	}

	return shader, nil
}

func programLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

	logmsg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logmsg))
	return strings.TrimRight(logmsg, "\x00\n")
}

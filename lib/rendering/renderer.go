package rendering

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const colourUniformName = "u_Color\x00"

var deleteProgram = func(program uint32) {
	gl.DeleteProgram(program)
}

// Renderer clears the screen and draws one mesh with one program per frame
type Renderer struct {
	Mesh    *GPUMesh
	Program uint32

	ClearColour mgl32.Vec4
	// Colour is loaded into the u_Color uniform if the program has one
	Colour mgl32.Vec4

	colourUniform int32
	call          Caller
}

func NewRenderer(mesh *GPUMesh, clearColour, colour mgl32.Vec4, call Caller) *Renderer {
	return &Renderer{
		Mesh:          mesh,
		ClearColour:   clearColour,
		Colour:        colour,
		colourUniform: -1,
		call:          call,
	}
}

func (r *Renderer) Start() error {
	c := r.ClearColour
	return r.call("glClearColor", func() {
		gl.ClearColor(c[0], c[1], c[2], c[3])
	})
}

// SetProgram makes program current and deletes the one it replaces. If
// program cannot be made current it is deleted and the current one stays.
func (r *Renderer) SetProgram(program uint32) error {
	old := r.Program
	err := r.call("glUseProgram", func() {
		gl.UseProgram(program)
	})
	if err != nil {
		if program != old {
			deleteProgram(program)
		}
		return err
	}
	r.Program = program
	if old != 0 && old != program {
		deleteProgram(old)
	}

	r.colourUniform = gl.GetUniformLocation(program, gl.Str(colourUniformName))
	if r.colourUniform == -1 {
		return nil
	}
	c := r.Colour
	return r.call("glUniform4f", func() {
		gl.Uniform4f(r.colourUniform, c[0], c[1], c[2], c[3])
	})
}

func (r *Renderer) Frame() error {
	err := r.call("glClear", func() {
		gl.Clear(gl.COLOR_BUFFER_BIT)
	})
	if err != nil {
		return err
	}
	return r.Mesh.Draw()
}

func (r *Renderer) Delete() {
	gl.UseProgram(0)
	if r.Program != 0 {
		deleteProgram(r.Program)
		r.Program = 0
	}
	r.Mesh.Delete()
}

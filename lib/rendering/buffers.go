package rendering

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// GPUMesh is a Mesh uploaded into a vertex array with its buffers
type GPUMesh struct {
	VAO   uint32
	VBO   uint32
	IBO   uint32
	Count int32

	indexed bool
	call    Caller
}

// Upload copies the mesh into GPU memory. Position is bound to attribute 0.
func Upload(mesh *Mesh, call Caller) (*GPUMesh, error) {
	if !mesh.Valid() {
		return nil, fmt.Errorf("mesh with %d positions and %d indices is not a triangle list", len(mesh.Positions), len(mesh.Indices))
	}
	m := &GPUMesh{
		Count:   mesh.VertexCount(),
		indexed: mesh.Indexed(),
		call:    call,
	}

	err := call("glGenVertexArrays", func() {
		gl.GenVertexArrays(1, &m.VAO)
		gl.BindVertexArray(m.VAO)
	})
	if err != nil {
		return nil, err
	}

	positions := mesh.Flatten()
	err = call("glBufferData(GL_ARRAY_BUFFER)", func() {
		gl.GenBuffers(1, &m.VBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(positions)*f32, gl.Ptr(positions), gl.STATIC_DRAW)
	})
	if err != nil {
		m.Delete()
		return nil, err
	}

	err = call("glVertexAttribPointer", func() {
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, mesh.Stride(), 0)
	})
	if err != nil {
		m.Delete()
		return nil, err
	}

	if m.indexed {
		err = call("glBufferData(GL_ELEMENT_ARRAY_BUFFER)", func() {
			gl.GenBuffers(1, &m.IBO)
			gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.IBO)
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
		})
		if err != nil {
			m.Delete()
			return nil, err
		}
	}
	return m, nil
}

// Draw issues the single draw call for the mesh
func (m *GPUMesh) Draw() error {
	if m.indexed {
		return m.call("glDrawElements", func() {
			gl.BindVertexArray(m.VAO)
			gl.DrawElements(gl.TRIANGLES, m.Count, gl.UNSIGNED_INT, nil)
		})
	}
	return m.call("glDrawArrays", func() {
		gl.BindVertexArray(m.VAO)
		gl.DrawArrays(gl.TRIANGLES, 0, m.Count)
	})
}

func (m *GPUMesh) Delete() {
	gl.BindVertexArray(0)
	if m.IBO != 0 {
		gl.DeleteBuffers(1, &m.IBO)
		m.IBO = 0
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
}

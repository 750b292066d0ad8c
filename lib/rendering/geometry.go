package rendering

import "github.com/go-gl/mathgl/mgl32"

const f32 = 4

// Mesh is 2D geometry in normalised device coordinates. Indices are
// optional; without them the positions are drawn as a triangle list.
type Mesh struct {
	Positions []mgl32.Vec2
	Indices   []uint32
}

// Triangle is the hello triangle
func Triangle() *Mesh {
	return &Mesh{
		Positions: []mgl32.Vec2{
			{-0.5, -0.5},
			{0.0, 0.5},
			{0.5, -0.5},
		},
	}
}

// Quad is two triangles sharing the 0-2 diagonal
func Quad() *Mesh {
	return &Mesh{
		Positions: []mgl32.Vec2{
			{-0.5, -0.5},
			{0.5, -0.5},
			{0.5, 0.5},
			{-0.5, 0.5},
		},
		Indices: []uint32{
			0, 1, 2,
			2, 3, 0,
		},
	}
}

func (m *Mesh) Indexed() bool {
	return len(m.Indices) > 0
}

// VertexCount is the number of vertices a draw call processes
func (m *Mesh) VertexCount() int32 {
	if m.Indexed() {
		return int32(len(m.Indices))
	}
	return int32(len(m.Positions))
}

// Stride is the size in bytes of one vertex
func (m *Mesh) Stride() int32 {
	return 2 * f32
}

func (m *Mesh) Flatten() []float32 {
	data := make([]float32, 0, len(m.Positions)*2)
	for _, p := range m.Positions {
		data = append(data, p.X(), p.Y())
	}
	return data
}

// Valid reports whether every index points at a position and the vertex
// count makes whole triangles
func (m *Mesh) Valid() bool {
	if len(m.Positions) == 0 || m.VertexCount()%3 != 0 {
		return false
	}
	for _, i := range m.Indices {
		if int(i) >= len(m.Positions) {
			return false
		}
	}
	return true
}

// Package mesh uploads static position-only geometry to the GPU.
package mesh

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/engine/gpu"
)

// Components per vertex: x, y, z.
const Components = 3

// Geometry is CPU-side mesh data: tightly packed xyz positions and optional
// triangle indices.
type Geometry struct {
	Name      string
	Positions []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices in the geometry.
func (g Geometry) VertexCount() int {
	return len(g.Positions) / Components
}

// Vertex returns the position of vertex i.
func (g Geometry) Vertex(i int) [3]float32 {
	return [3]float32{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]}
}

// GeometryError describes malformed geometry.
type GeometryError struct {
	Name   string
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry %q: %s", e.Name, e.Reason)
}

// Validate checks that positions form whole vertices and that every index
// refers to one of them.
func (g Geometry) Validate() error {
	if len(g.Positions) == 0 {
		return &GeometryError{Name: g.Name, Reason: "no positions"}
	}
	if len(g.Positions)%Components != 0 {
		return &GeometryError{Name: g.Name, Reason: fmt.Sprintf("%d floats is not a multiple of %d", len(g.Positions), Components)}
	}
	n := uint32(g.VertexCount())
	for i, idx := range g.Indices {
		if idx >= n {
			return &GeometryError{Name: g.Name, Reason: fmt.Sprintf("index %d at %d out of range (%d vertices)", idx, i, n)}
		}
	}
	return nil
}

// Mesh holds the GPU handles for uploaded geometry. IBO is zero when the
// geometry has no indices.
type Mesh struct {
	Name        string
	VAO         uint32
	VBO         uint32
	IBO         uint32
	VertexCount int32
	IndexCount  int32
}

// Indexed reports whether the mesh has an index buffer.
func (m *Mesh) Indexed() bool {
	return m.IBO != 0
}

// Upload creates a vertex array with one vertex buffer, attribute 0 holding
// three floats per vertex, and an index buffer when the geometry has indices.
func Upload(dev *gpu.Device, g Geometry) (*Mesh, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	gl := dev.GL
	m := &Mesh{
		Name:        g.Name,
		VertexCount: int32(g.VertexCount()),
		IndexCount:  int32(len(g.Indices)),
	}

	var err error
	var res gpu.Result

	m.VAO, res = gpu.Value(dev, "glGenVertexArrays", gl.GenVertexArray)
	err = multierr.Append(err, res.Err())
	err = multierr.Append(err, dev.Call("glBindVertexArray", func() { gl.BindVertexArray(m.VAO) }).Err())

	m.VBO, res = gpu.Value(dev, "glGenBuffers(vertex)", gl.GenBuffer)
	err = multierr.Append(err, res.Err())
	err = multierr.Append(err, dev.Call("glBindBuffer(GL_ARRAY_BUFFER)", func() { gl.BindBuffer(gpu.ArrayBuffer, m.VBO) }).Err())
	err = multierr.Append(err, dev.Call("glBufferData(GL_ARRAY_BUFFER)", func() {
		gl.BufferFloat32(gpu.ArrayBuffer, g.Positions, gpu.StaticDraw)
	}).Err())

	err = multierr.Append(err, dev.Call("glEnableVertexAttribArray(0)", func() { gl.EnableVertexAttribArray(0) }).Err())
	err = multierr.Append(err, dev.Call("glVertexAttribPointer(0)", func() {
		gl.VertexAttribPointer(0, Components, gpu.Float, false, Components*4, 0)
	}).Err())

	if len(g.Indices) > 0 {
		m.IBO, res = gpu.Value(dev, "glGenBuffers(index)", gl.GenBuffer)
		err = multierr.Append(err, res.Err())
		err = multierr.Append(err, dev.Call("glBindBuffer(GL_ELEMENT_ARRAY_BUFFER)", func() {
			gl.BindBuffer(gpu.ElementArrayBuffer, m.IBO)
		}).Err())
		err = multierr.Append(err, dev.Call("glBufferData(GL_ELEMENT_ARRAY_BUFFER)", func() {
			gl.BufferUint32(gpu.ElementArrayBuffer, g.Indices, gpu.StaticDraw)
		}).Err())
	}

	err = multierr.Append(err, dev.Call("glBindVertexArray(0)", func() { gl.BindVertexArray(0) }).Err())

	if err != nil {
		m.Delete(dev)
		return nil, fmt.Errorf("uploading %s: %w", g.Name, err)
	}

	dev.Logger().Debug("mesh uploaded",
		zap.String("name", m.Name),
		zap.Uint32("vao", m.VAO),
		zap.Uint32("vbo", m.VBO),
		zap.Uint32("ibo", m.IBO),
		zap.Int32("vertices", m.VertexCount),
		zap.Int32("indices", m.IndexCount),
	)
	return m, nil
}

// Delete releases the mesh's GPU handles.
func (m *Mesh) Delete(dev *gpu.Device) {
	gl := dev.GL
	if m.IBO != 0 {
		dev.Call("glDeleteBuffers(index)", func() { gl.DeleteBuffer(m.IBO) })
		m.IBO = 0
	}
	if m.VBO != 0 {
		dev.Call("glDeleteBuffers(vertex)", func() { gl.DeleteBuffer(m.VBO) })
		m.VBO = 0
	}
	if m.VAO != 0 {
		dev.Call("glDeleteVertexArrays", func() { gl.DeleteVertexArray(m.VAO) })
		m.VAO = 0
	}
}

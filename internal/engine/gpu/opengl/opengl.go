// Package opengl implements gpu.API on top of go-gl's OpenGL 4.1 core bindings.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/glscene/internal/engine/gpu"
)

// API forwards gpu.API calls to the current OpenGL context.
type API struct{}

var _ gpu.API = API{}

// Info describes the driver behind the current context.
type Info struct {
	Version  string
	Renderer string
	Vendor   string
	GLSL     string
}

// Init loads the OpenGL function pointers. It must run after a context has
// been made current on the calling thread.
func Init() (API, Info, error) {
	if err := gl.Init(); err != nil {
		return API{}, Info{}, fmt.Errorf("loading OpenGL functions: %w", err)
	}
	info := Info{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	return API{}, info, nil
}

func (API) GetError() uint32 { return gl.GetError() }

func (API) CreateShader(kind uint32) uint32 { return gl.CreateShader(kind) }

func (API) ShaderSource(shader uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

func (API) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (API) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (API) GetShaderInfoLog(shader uint32, length int32) string {
	return gpu.InfoLog(length, func(buf *uint8) {
		gl.GetShaderInfoLog(shader, length, nil, buf)
	})
}

func (API) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (API) CreateProgram() uint32 { return gl.CreateProgram() }

func (API) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (API) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (API) ValidateProgram(program uint32) { gl.ValidateProgram(program) }

func (API) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (API) GetProgramInfoLog(program uint32, length int32) string {
	return gpu.InfoLog(length, func(buf *uint8) {
		gl.GetProgramInfoLog(program, length, nil, buf)
	})
}

func (API) UseProgram(program uint32) { gl.UseProgram(program) }

func (API) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (API) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (API) UniformMatrix4fv(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (API) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (API) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (API) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (API) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (API) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (API) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (API) BufferFloat32(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (API) BufferUint32(target uint32, data []uint32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (API) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (API) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (API) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (API) Enable(capability uint32) { gl.Enable(capability) }

func (API) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (API) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (API) Clear(mask uint32) { gl.Clear(mask) }

func (API) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (API) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}

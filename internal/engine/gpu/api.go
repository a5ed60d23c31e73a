// Package gpu defines the graphics API surface used by the engine and the
// checked call wrapper that reports driver error flags.
package gpu

import "bytes"

// Enum values shared with OpenGL. The opengl backend passes them through
// unchanged.
const (
	NoError                     uint32 = 0
	InvalidEnum                 uint32 = 0x0500
	InvalidValue                uint32 = 0x0501
	InvalidOperation            uint32 = 0x0502
	StackOverflow               uint32 = 0x0503
	StackUnderflow              uint32 = 0x0504
	OutOfMemory                 uint32 = 0x0505
	InvalidFramebufferOperation uint32 = 0x0506

	False int32 = 0
	True  int32 = 1

	VertexShader   uint32 = 0x8B31
	FragmentShader uint32 = 0x8B30

	CompileStatus  uint32 = 0x8B81
	LinkStatus     uint32 = 0x8B82
	ValidateStatus uint32 = 0x8B83
	InfoLogLength  uint32 = 0x8B84

	ArrayBuffer        uint32 = 0x8892
	ElementArrayBuffer uint32 = 0x8893
	StaticDraw         uint32 = 0x88E4

	Float       uint32 = 0x1406
	UnsignedInt uint32 = 0x1405

	Lines     uint32 = 0x0001
	Triangles uint32 = 0x0004

	DepthTest uint32 = 0x0B71

	DepthBufferBit uint32 = 0x00000100
	ColorBufferBit uint32 = 0x00004000
)

// API is the subset of OpenGL the engine calls. Implementations must not
// clear the driver error flag themselves; Device does that around each call.
type API interface {
	GetError() uint32

	CreateShader(kind uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32, length int32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ValidateProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32, length int32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	UniformMatrix4fv(location int32, m [16]float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferFloat32(target uint32, data []float32, usage uint32)
	BufferUint32(target uint32, data []uint32, usage uint32)
	DeleteBuffer(buffer uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	Enable(capability uint32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
}

// ErrorName returns the symbolic name of a GL error code.
func ErrorName(code uint32) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case StackOverflow:
		return "GL_STACK_OVERFLOW"
	case StackUnderflow:
		return "GL_STACK_UNDERFLOW"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return "GL_UNKNOWN_ERROR"
	}
}

// InfoLog reads a driver info log of the given length, terminator included.
// fill receives the first byte of a buffer it may write length bytes into.
func InfoLog(length int32, fill func(buf *uint8)) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	fill(&buf[0])
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}

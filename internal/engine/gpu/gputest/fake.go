// Package gputest provides an in-memory gpu.API for tests.
package gputest

import (
	"fmt"
	"strings"

	"github.com/Faultbox/glscene/internal/engine/gpu"
)

// Uniform locations handed out by the fake for linked programs.
const (
	LocMVP   int32 = 0
	LocColor int32 = 1
)

// Draw records one draw call together with the state it used.
type Draw struct {
	Program uint32
	VAO     uint32
	Mode    uint32
	First   int32
	Count   int32
	Indexed bool
	MVP     [16]float32
	Color   [4]float32
}

// Shader is a fake shader object.
type Shader struct {
	Kind     uint32
	Source   string
	Compiled bool
	Log      string
	Deleted  bool
}

// Program is a fake program object.
type Program struct {
	Attached  []uint32
	Linked    bool
	Validated bool
	Log       string
	Deleted   bool

	mvp   [16]float32
	color [4]float32
}

// Buffer is a fake buffer object.
type Buffer struct {
	Target  uint32
	Floats  []float32
	Uints   []uint32
	Usage   uint32
	Deleted bool
}

// VertexArray is a fake vertex array object.
type VertexArray struct {
	ArrayBuffer   uint32
	ElementBuffer uint32
	Attribs       map[uint32]Attrib
	Deleted       bool
}

// Attrib is a recorded vertex attribute declaration.
type Attrib struct {
	Enabled    bool
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     int
	Buffer     uint32
}

// Fake implements gpu.API in memory. A source compiles when it declares a
// main function; a program links when it has one compiled vertex and one
// compiled fragment stage attached.
type Fake struct {
	Shaders  map[uint32]*Shader
	Programs map[uint32]*Program
	Buffers  map[uint32]*Buffer
	VAOs     map[uint32]*VertexArray

	Calls []string
	Draws []Draw

	Enabled   map[uint32]bool
	Viewports [][4]int32
	ClearRGBA [4]float32
	Clears    []uint32

	// FailOn raises the given error the next time the named call runs.
	FailOn map[string]uint32

	// Unresolved makes linking fail for programs with a stage whose source
	// contains it, like a call to a function no stage defines.
	Unresolved string

	// OutOfHandles makes object creation return 0 without setting an
	// error flag.
	OutOfHandles bool

	pending      []uint32
	next         uint32
	current      uint32
	boundVAO     uint32
	boundArray   uint32
	boundElement uint32
}

var _ gpu.API = (*Fake)(nil)

// New returns an empty fake.
func New() *Fake {
	return &Fake{
		Shaders:  make(map[uint32]*Shader),
		Programs: make(map[uint32]*Program),
		Buffers:  make(map[uint32]*Buffer),
		VAOs:     make(map[uint32]*VertexArray),
		Enabled:  make(map[uint32]bool),
		FailOn:   make(map[string]uint32),
	}
}

// RaiseError queues an error flag as if the driver had set it.
func (f *Fake) RaiseError(code uint32) {
	f.pending = append(f.pending, code)
}

// CallCount returns how many times the named call ran.
func (f *Fake) CallCount(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// Live returns the number of shaders, programs, buffers and vertex arrays
// that have not been deleted.
func (f *Fake) Live() int {
	n := 0
	for _, s := range f.Shaders {
		if !s.Deleted {
			n++
		}
	}
	for _, p := range f.Programs {
		if !p.Deleted {
			n++
		}
	}
	for _, b := range f.Buffers {
		if !b.Deleted {
			n++
		}
	}
	for _, v := range f.VAOs {
		if !v.Deleted {
			n++
		}
	}
	return n
}

func (f *Fake) record(name string) {
	f.Calls = append(f.Calls, name)
	if code, ok := f.FailOn[name]; ok {
		delete(f.FailOn, name)
		f.RaiseError(code)
	}
}

func (f *Fake) id() uint32 {
	f.next++
	return f.next
}

func (f *Fake) GetError() uint32 {
	if len(f.pending) == 0 {
		return gpu.NoError
	}
	code := f.pending[0]
	f.pending = f.pending[1:]
	return code
}

func (f *Fake) CreateShader(kind uint32) uint32 {
	f.record("CreateShader")
	if f.OutOfHandles {
		return 0
	}
	if kind != gpu.VertexShader && kind != gpu.FragmentShader {
		f.RaiseError(gpu.InvalidEnum)
		return 0
	}
	id := f.id()
	f.Shaders[id] = &Shader{Kind: kind}
	return id
}

func (f *Fake) shader(id uint32) *Shader {
	s, ok := f.Shaders[id]
	if !ok || s.Deleted {
		f.RaiseError(gpu.InvalidValue)
		return nil
	}
	return s
}

func (f *Fake) program(id uint32) *Program {
	p, ok := f.Programs[id]
	if !ok || p.Deleted {
		f.RaiseError(gpu.InvalidValue)
		return nil
	}
	return p
}

func (f *Fake) ShaderSource(shader uint32, source string) {
	f.record("ShaderSource")
	if s := f.shader(shader); s != nil {
		s.Source = source
	}
}

func (f *Fake) CompileShader(shader uint32) {
	f.record("CompileShader")
	s := f.shader(shader)
	if s == nil {
		return
	}
	if strings.Contains(s.Source, "void main") {
		s.Compiled = true
		s.Log = ""
		return
	}
	s.Compiled = false
	s.Log = "ERROR: 0:1: 'main' : function not defined"
}

func (f *Fake) GetShaderiv(shader, pname uint32) int32 {
	f.record("GetShaderiv")
	s := f.shader(shader)
	if s == nil {
		return 0
	}
	switch pname {
	case gpu.CompileStatus:
		if s.Compiled {
			return gpu.True
		}
		return gpu.False
	case gpu.InfoLogLength:
		if s.Log == "" {
			return 0
		}
		return int32(len(s.Log) + 1)
	default:
		f.RaiseError(gpu.InvalidEnum)
		return 0
	}
}

func (f *Fake) GetShaderInfoLog(shader uint32, length int32) string {
	f.record("GetShaderInfoLog")
	s := f.shader(shader)
	if s == nil || length <= 0 {
		return ""
	}
	if int(length) < len(s.Log) {
		return s.Log[:length]
	}
	return s.Log
}

func (f *Fake) DeleteShader(shader uint32) {
	f.record("DeleteShader")
	if shader == 0 {
		return
	}
	if s := f.shader(shader); s != nil {
		s.Deleted = true
	}
}

func (f *Fake) CreateProgram() uint32 {
	f.record("CreateProgram")
	if f.OutOfHandles {
		return 0
	}
	id := f.id()
	f.Programs[id] = &Program{}
	return id
}

func (f *Fake) AttachShader(program, shader uint32) {
	f.record("AttachShader")
	p := f.program(program)
	s := f.shader(shader)
	if p == nil || s == nil {
		return
	}
	p.Attached = append(p.Attached, shader)
}

func (f *Fake) LinkProgram(program uint32) {
	f.record("LinkProgram")
	p := f.program(program)
	if p == nil {
		return
	}
	var vertex, fragment, unresolved bool
	for _, id := range p.Attached {
		s := f.Shaders[id]
		if !s.Compiled {
			continue
		}
		if f.Unresolved != "" && strings.Contains(s.Source, f.Unresolved) {
			unresolved = true
		}
		switch s.Kind {
		case gpu.VertexShader:
			vertex = true
		case gpu.FragmentShader:
			fragment = true
		}
	}
	p.Linked = vertex && fragment && !unresolved
	switch {
	case p.Linked:
		p.Log = ""
	case unresolved:
		p.Log = "error: undefined reference to " + f.Unresolved
	case !vertex:
		p.Log = "error: no compiled vertex shader attached"
	default:
		p.Log = "error: no compiled fragment shader attached"
	}
}

func (f *Fake) ValidateProgram(program uint32) {
	f.record("ValidateProgram")
	if p := f.program(program); p != nil {
		p.Validated = p.Linked
	}
}

func (f *Fake) GetProgramiv(program, pname uint32) int32 {
	f.record("GetProgramiv")
	p := f.program(program)
	if p == nil {
		return 0
	}
	switch pname {
	case gpu.LinkStatus:
		if p.Linked {
			return gpu.True
		}
		return gpu.False
	case gpu.ValidateStatus:
		if p.Validated {
			return gpu.True
		}
		return gpu.False
	case gpu.InfoLogLength:
		if p.Log == "" {
			return 0
		}
		return int32(len(p.Log) + 1)
	default:
		f.RaiseError(gpu.InvalidEnum)
		return 0
	}
}

func (f *Fake) GetProgramInfoLog(program uint32, length int32) string {
	f.record("GetProgramInfoLog")
	p := f.program(program)
	if p == nil || length <= 0 {
		return ""
	}
	if int(length) < len(p.Log) {
		return p.Log[:length]
	}
	return p.Log
}

func (f *Fake) UseProgram(program uint32) {
	f.record("UseProgram")
	if program == 0 {
		f.current = 0
		return
	}
	p := f.program(program)
	if p == nil {
		return
	}
	if !p.Linked {
		f.RaiseError(gpu.InvalidOperation)
		return
	}
	f.current = program
}

func (f *Fake) DeleteProgram(program uint32) {
	f.record("DeleteProgram")
	if program == 0 {
		return
	}
	if p := f.program(program); p != nil {
		p.Deleted = true
	}
}

func (f *Fake) GetUniformLocation(program uint32, name string) int32 {
	f.record("GetUniformLocation")
	p := f.program(program)
	if p == nil {
		return -1
	}
	if !p.Linked {
		f.RaiseError(gpu.InvalidOperation)
		return -1
	}
	switch name {
	case "u_MVP":
		return LocMVP
	case "u_Color":
		return LocColor
	default:
		return -1
	}
}

func (f *Fake) UniformMatrix4fv(location int32, m [16]float32) {
	f.record("UniformMatrix4fv")
	if location == -1 {
		return
	}
	p := f.active()
	if p == nil {
		return
	}
	if location != LocMVP {
		f.RaiseError(gpu.InvalidOperation)
		return
	}
	p.mvp = m
}

func (f *Fake) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	f.record("Uniform4f")
	if location == -1 {
		return
	}
	p := f.active()
	if p == nil {
		return
	}
	if location != LocColor {
		f.RaiseError(gpu.InvalidOperation)
		return
	}
	p.color = [4]float32{v0, v1, v2, v3}
}

func (f *Fake) active() *Program {
	if f.current == 0 {
		f.RaiseError(gpu.InvalidOperation)
		return nil
	}
	return f.Programs[f.current]
}

func (f *Fake) GenVertexArray() uint32 {
	f.record("GenVertexArray")
	id := f.id()
	f.VAOs[id] = &VertexArray{Attribs: make(map[uint32]Attrib)}
	return id
}

func (f *Fake) BindVertexArray(vao uint32) {
	f.record("BindVertexArray")
	if vao == 0 {
		f.boundVAO = 0
		return
	}
	v, ok := f.VAOs[vao]
	if !ok || v.Deleted {
		f.RaiseError(gpu.InvalidOperation)
		return
	}
	f.boundVAO = vao
	f.boundElement = v.ElementBuffer
}

func (f *Fake) DeleteVertexArray(vao uint32) {
	f.record("DeleteVertexArray")
	if v, ok := f.VAOs[vao]; ok {
		v.Deleted = true
	}
	if f.boundVAO == vao {
		f.boundVAO = 0
	}
}

func (f *Fake) GenBuffer() uint32 {
	f.record("GenBuffer")
	id := f.id()
	f.Buffers[id] = &Buffer{}
	return id
}

func (f *Fake) BindBuffer(target, buffer uint32) {
	f.record("BindBuffer")
	if buffer != 0 {
		b, ok := f.Buffers[buffer]
		if !ok || b.Deleted {
			f.RaiseError(gpu.InvalidValue)
			return
		}
		b.Target = target
	}
	switch target {
	case gpu.ArrayBuffer:
		f.boundArray = buffer
	case gpu.ElementArrayBuffer:
		if f.boundVAO == 0 {
			f.RaiseError(gpu.InvalidOperation)
			return
		}
		f.boundElement = buffer
		f.VAOs[f.boundVAO].ElementBuffer = buffer
	default:
		f.RaiseError(gpu.InvalidEnum)
	}
}

func (f *Fake) bound(target uint32) *Buffer {
	var id uint32
	switch target {
	case gpu.ArrayBuffer:
		id = f.boundArray
	case gpu.ElementArrayBuffer:
		id = f.boundElement
	}
	if id == 0 {
		f.RaiseError(gpu.InvalidOperation)
		return nil
	}
	return f.Buffers[id]
}

func (f *Fake) BufferFloat32(target uint32, data []float32, usage uint32) {
	f.record("BufferData")
	if b := f.bound(target); b != nil {
		b.Floats = append([]float32(nil), data...)
		b.Usage = usage
	}
}

func (f *Fake) BufferUint32(target uint32, data []uint32, usage uint32) {
	f.record("BufferData")
	if b := f.bound(target); b != nil {
		b.Uints = append([]uint32(nil), data...)
		b.Usage = usage
	}
}

func (f *Fake) DeleteBuffer(buffer uint32) {
	f.record("DeleteBuffer")
	if b, ok := f.Buffers[buffer]; ok {
		b.Deleted = true
	}
}

func (f *Fake) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray")
	v := f.vao()
	if v == nil {
		return
	}
	a := v.Attribs[index]
	a.Enabled = true
	v.Attribs[index] = a
}

func (f *Fake) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	f.record("VertexAttribPointer")
	v := f.vao()
	if v == nil {
		return
	}
	if f.boundArray == 0 {
		f.RaiseError(gpu.InvalidOperation)
		return
	}
	a := v.Attribs[index]
	a.Size, a.Type, a.Normalized, a.Stride, a.Offset = size, xtype, normalized, stride, offset
	a.Buffer = f.boundArray
	v.Attribs[index] = a
	v.ArrayBuffer = f.boundArray
}

func (f *Fake) vao() *VertexArray {
	if f.boundVAO == 0 {
		f.RaiseError(gpu.InvalidOperation)
		return nil
	}
	return f.VAOs[f.boundVAO]
}

func (f *Fake) Enable(capability uint32) {
	f.record("Enable")
	f.Enabled[capability] = true
}

func (f *Fake) Viewport(x, y, width, height int32) {
	f.record("Viewport")
	if width < 0 || height < 0 {
		f.RaiseError(gpu.InvalidValue)
		return
	}
	f.Viewports = append(f.Viewports, [4]int32{x, y, width, height})
}

func (f *Fake) ClearColor(r, g, b, a float32) {
	f.record("ClearColor")
	f.ClearRGBA = [4]float32{r, g, b, a}
}

func (f *Fake) Clear(mask uint32) {
	f.record("Clear")
	f.Clears = append(f.Clears, mask)
}

func (f *Fake) DrawArrays(mode uint32, first, count int32) {
	f.record("DrawArrays")
	f.draw(mode, first, count, false)
}

func (f *Fake) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	f.record("DrawElements")
	if xtype != gpu.UnsignedInt {
		f.RaiseError(gpu.InvalidEnum)
		return
	}
	if f.boundVAO == 0 || f.boundElement == 0 {
		f.RaiseError(gpu.InvalidOperation)
		return
	}
	f.draw(mode, int32(offset/4), count, true)
}

func (f *Fake) draw(mode uint32, first, count int32, indexed bool) {
	if mode != gpu.Lines && mode != gpu.Triangles {
		f.RaiseError(gpu.InvalidEnum)
		return
	}
	if f.current == 0 || f.boundVAO == 0 {
		f.RaiseError(gpu.InvalidOperation)
		return
	}
	p := f.Programs[f.current]
	f.Draws = append(f.Draws, Draw{
		Program: f.current,
		VAO:     f.boundVAO,
		Mode:    mode,
		First:   first,
		Count:   count,
		Indexed: indexed,
		MVP:     p.mvp,
		Color:   p.color,
	})
}

// String summarises the fake for test failure messages.
func (f *Fake) String() string {
	return fmt.Sprintf("gputest.Fake{shaders: %d, programs: %d, buffers: %d, vaos: %d, draws: %d}",
		len(f.Shaders), len(f.Programs), len(f.Buffers), len(f.VAOs), len(f.Draws))
}

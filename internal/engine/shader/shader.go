// Package shader splits two-stage shader files and builds OpenGL programs
// from them.
package shader

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/engine/gpu"
)

// Stage is a shader compilation unit.
type Stage uint32

const (
	StageVertex   = Stage(gpu.VertexShader)
	StageFragment = Stage(gpu.FragmentShader)
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(0x%X)", uint32(s))
	}
}

// CompileError reports a stage that failed to compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link: %s", strings.TrimSpace(e.Log))
}

// CompileStage compiles source as the given stage. On failure the stage object
// is released and the zero handle is returned together with the reason;
// callers must not use a zero handle.
func CompileStage(dev *gpu.Device, stage Stage, source string) (uint32, error) {
	gl := dev.GL

	id, res := gpu.Value(dev, "glCreateShader", func() uint32 { return gl.CreateShader(uint32(stage)) })
	if id == 0 {
		return 0, createError(stage.String()+" shader", res)
	}

	var err error
	err = multierr.Append(err, dev.Call("glShaderSource", func() { gl.ShaderSource(id, source) }).Err())
	err = multierr.Append(err, dev.Call("glCompileShader", func() { gl.CompileShader(id) }).Err())

	status, res := gpu.Value(dev, "glGetShaderiv(GL_COMPILE_STATUS)", func() int32 {
		return gl.GetShaderiv(id, gpu.CompileStatus)
	})
	err = multierr.Append(err, res.Err())

	if status == gpu.False {
		length, _ := gpu.Value(dev, "glGetShaderiv(GL_INFO_LOG_LENGTH)", func() int32 {
			return gl.GetShaderiv(id, gpu.InfoLogLength)
		})
		log, _ := gpu.Value(dev, "glGetShaderInfoLog", func() string {
			return gl.GetShaderInfoLog(id, length)
		})

		dev.Logger().Error("failed to compile shader",
			zap.Stringer("stage", stage),
			zap.String("log", log),
		)
		dev.Call("glDeleteShader", func() { gl.DeleteShader(id) })
		return 0, multierr.Append(&CompileError{Stage: stage, Log: log}, err)
	}
	if err != nil {
		dev.Call("glDeleteShader", func() { gl.DeleteShader(id) })
		return 0, fmt.Errorf("compiling %s shader: %w", stage, err)
	}

	return id, nil
}

// LinkProgram links a vertex and fragment stage into a program. Both stages
// are deleted afterwards whether or not linking succeeded. A failed link
// deletes the program and returns the zero handle with a *LinkError.
func LinkProgram(dev *gpu.Device, vertex, fragment uint32) (uint32, error) {
	gl := dev.GL

	program, res := gpu.Value(dev, "glCreateProgram", gl.CreateProgram)
	if program == 0 {
		return 0, createError("program", res)
	}

	var err error
	err = multierr.Append(err, dev.Call("glAttachShader(vertex)", func() { gl.AttachShader(program, vertex) }).Err())
	err = multierr.Append(err, dev.Call("glAttachShader(fragment)", func() { gl.AttachShader(program, fragment) }).Err())
	err = multierr.Append(err, dev.Call("glLinkProgram", func() { gl.LinkProgram(program) }).Err())
	err = multierr.Append(err, dev.Call("glValidateProgram", func() { gl.ValidateProgram(program) }).Err())
	err = multierr.Append(err, dev.Call("glDeleteShader(vertex)", func() { gl.DeleteShader(vertex) }).Err())
	err = multierr.Append(err, dev.Call("glDeleteShader(fragment)", func() { gl.DeleteShader(fragment) }).Err())

	linked, _ := gpu.Value(dev, "glGetProgramiv(GL_LINK_STATUS)", func() int32 {
		return gl.GetProgramiv(program, gpu.LinkStatus)
	})
	if linked == gpu.False {
		log := programLog(dev, program)
		dev.Logger().Error("failed to link program",
			zap.Uint32("program", program),
			zap.String("log", log),
		)
		dev.Call("glDeleteProgram", func() { gl.DeleteProgram(program) })
		return 0, multierr.Append(&LinkError{Log: log}, err)
	}

	valid, _ := gpu.Value(dev, "glGetProgramiv(GL_VALIDATE_STATUS)", func() int32 {
		return gl.GetProgramiv(program, gpu.ValidateStatus)
	})
	if valid == gpu.False {
		dev.Logger().Warn("program failed validation",
			zap.Uint32("program", program),
			zap.String("log", programLog(dev, program)),
		)
	}

	if err != nil {
		dev.Logger().Warn("program linked with GL errors",
			zap.Uint32("program", program),
			zap.Error(err),
		)
	}

	dev.Logger().Debug("shader program linked", zap.Uint32("program", program))
	return program, nil
}

// createError describes a create call that returned the zero handle. Drivers
// may do so without setting an error flag.
func createError(what string, res gpu.Result) error {
	if err := res.Err(); err != nil {
		return fmt.Errorf("creating %s: %w", what, err)
	}
	return fmt.Errorf("creating %s: driver returned no handle", what)
}

func programLog(dev *gpu.Device, program uint32) string {
	length, _ := gpu.Value(dev, "glGetProgramiv(GL_INFO_LOG_LENGTH)", func() int32 {
		return dev.GL.GetProgramiv(program, gpu.InfoLogLength)
	})
	log, _ := gpu.Value(dev, "glGetProgramInfoLog", func() string {
		return dev.GL.GetProgramInfoLog(program, length)
	})
	return log
}

// Build compiles both stages of src and links them. If either stage fails to
// compile, the other is released and no link is attempted.
func Build(dev *gpu.Device, src Source) (uint32, error) {
	vertex, vertErr := CompileStage(dev, StageVertex, src.Vertex)
	fragment, fragErr := CompileStage(dev, StageFragment, src.Fragment)

	if vertex == 0 || fragment == 0 {
		if vertex != 0 {
			dev.Call("glDeleteShader(vertex)", func() { dev.GL.DeleteShader(vertex) })
		}
		if fragment != 0 {
			dev.Call("glDeleteShader(fragment)", func() { dev.GL.DeleteShader(fragment) })
		}
		return 0, multierr.Combine(vertErr, fragErr)
	}

	return LinkProgram(dev, vertex, fragment)
}

// UniformLocation returns the location of the named uniform, or -1 if the
// program has no active uniform of that name.
func UniformLocation(dev *gpu.Device, program uint32, name string) int32 {
	loc, _ := gpu.Value(dev, "glGetUniformLocation("+name+")", func() int32 {
		return dev.GL.GetUniformLocation(program, name)
	})
	if loc < 0 {
		dev.Logger().Warn("uniform not found",
			zap.String("name", name),
			zap.Uint32("program", program),
		)
	}
	return loc
}

// Package renderer draws the static scene every frame.
package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/engine/camera"
	"github.com/Faultbox/glscene/internal/engine/gpu"
	"github.com/Faultbox/glscene/internal/engine/mesh"
	"github.com/Faultbox/glscene/internal/engine/shader"
)

// Uniform names the scene shaders must declare.
const (
	UniformMVP   = "u_MVP"
	UniformColor = "u_Color"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	FOVDegrees float32
	Near       float32
	Far        float32
	ClearColor [4]float32
}

// Transforms holds the projection, fixed for the lifetime of the renderer.
type Transforms struct {
	Projection mgl32.Mat4
}

// NewTransforms builds a perspective projection for a width×height viewport.
func NewTransforms(width, height int, fovDegrees, near, far float32) Transforms {
	aspect := float32(width) / float32(height)
	return Transforms{
		Projection: mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far),
	}
}

// MVP returns projection * view * model.
func (t Transforms) MVP(view, model mgl32.Mat4) mgl32.Mat4 {
	return t.Projection.Mul4(view).Mul4(model)
}

// Segment is a range of line vertices drawn in a solid colour.
type Segment struct {
	First int32
	Count int32
	Color mgl32.Vec4
}

// Object is one drawable in the scene. Indexed meshes are drawn as
// triangles; meshes without indices are drawn as one line draw per segment.
type Object struct {
	Name     string
	Program  uint32
	Mesh     *mesh.Mesh
	Model    mgl32.Mat4
	Segments []Segment

	mvpLoc   int32
	colorLoc int32
}

// Renderer owns the scene's programs and meshes and draws them each frame.
type Renderer struct {
	dev        *gpu.Device
	config     Config
	transforms Transforms
	objects    []*Object
}

// New sets up the fixed GL state and the projection.
func New(dev *gpu.Device, cfg Config) (*Renderer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", cfg.Width, cfg.Height)
	}

	r := &Renderer{
		dev:        dev,
		config:     cfg,
		transforms: NewTransforms(cfg.Width, cfg.Height, cfg.FOVDegrees, cfg.Near, cfg.Far),
	}

	gl := dev.GL
	c := cfg.ClearColor
	var err error
	err = multierr.Append(err, dev.Call("glEnable(GL_DEPTH_TEST)", func() { gl.Enable(gpu.DepthTest) }).Err())
	err = multierr.Append(err, dev.Call("glViewport", func() {
		gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	}).Err())
	err = multierr.Append(err, dev.Call("glClearColor", func() { gl.ClearColor(c[0], c[1], c[2], c[3]) }).Err())
	if err != nil {
		return nil, fmt.Errorf("setting up render state: %w", err)
	}

	dev.Logger().Debug("renderer created",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Float32("fov", cfg.FOVDegrees),
	)
	return r, nil
}

// Objects returns the objects in draw order.
func (r *Renderer) Objects() []*Object {
	return r.objects
}

// Add appends obj to the draw list and resolves its uniforms. The renderer
// takes ownership of the object's program and mesh. A zero program is
// accepted: the object stays in the draw list and its GL calls fail and are
// reported every frame.
func (r *Renderer) Add(obj Object) (*Object, error) {
	if obj.Mesh == nil {
		return nil, fmt.Errorf("object %s: no mesh", obj.Name)
	}
	if !obj.Mesh.Indexed() && len(obj.Segments) == 0 {
		return nil, fmt.Errorf("object %s: mesh has no indices and no segments", obj.Name)
	}

	o := &obj
	o.mvpLoc, o.colorLoc = -1, -1
	if o.Program == 0 {
		r.dev.Logger().Warn("object has no usable program", zap.String("object", o.Name))
	} else {
		o.mvpLoc = shader.UniformLocation(r.dev, o.Program, UniformMVP)
		if len(o.Segments) > 0 {
			o.colorLoc = shader.UniformLocation(r.dev, o.Program, UniformColor)
		}
	}
	r.objects = append(r.objects, o)
	return o, nil
}

// RenderFrame clears the framebuffer and draws every object with the
// camera's current view. Failed GL calls are collected into the returned
// error; drawing continues past them.
func (r *Renderer) RenderFrame(cam *camera.State) error {
	gl := r.dev.GL
	view := cam.View()

	err := r.dev.Call("glClear", func() { gl.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit) }).Err()

	for _, o := range r.objects {
		mvp := r.transforms.MVP(view, o.Model)

		err = multierr.Append(err, r.dev.Call("glUseProgram", func() { gl.UseProgram(o.Program) }).Err())
		err = multierr.Append(err, r.dev.Call("glBindVertexArray", func() { gl.BindVertexArray(o.Mesh.VAO) }).Err())
		err = multierr.Append(err, r.dev.Call("glUniformMatrix4fv(u_MVP)", func() {
			gl.UniformMatrix4fv(o.mvpLoc, [16]float32(mvp))
		}).Err())

		if o.Mesh.Indexed() {
			err = multierr.Append(err, r.dev.Call("glDrawElements", func() {
				gl.DrawElements(gpu.Triangles, o.Mesh.IndexCount, gpu.UnsignedInt, 0)
			}).Err())
			continue
		}

		for _, seg := range o.Segments {
			col := seg.Color
			err = multierr.Append(err, r.dev.Call("glUniform4f(u_Color)", func() {
				gl.Uniform4f(o.colorLoc, col[0], col[1], col[2], col[3])
			}).Err())
			err = multierr.Append(err, r.dev.Call("glDrawArrays(GL_LINES)", func() {
				gl.DrawArrays(gpu.Lines, seg.First, seg.Count)
			}).Err())
		}
	}

	return err
}

// Close deletes every mesh and each distinct program once.
func (r *Renderer) Close() {
	r.dev.Logger().Debug("closing renderer")

	deleted := make(map[uint32]bool)
	for _, o := range r.objects {
		o.Mesh.Delete(r.dev)
		if o.Program != 0 && !deleted[o.Program] {
			deleted[o.Program] = true
			program := o.Program
			r.dev.Call("glDeleteProgram", func() { r.dev.GL.DeleteProgram(program) })
		}
	}
	r.objects = nil
}

package viewer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/assets"
	"github.com/Faultbox/glscene/internal/config"
	"github.com/Faultbox/glscene/internal/engine/gpu"
	"github.com/Faultbox/glscene/internal/engine/mesh"
	"github.com/Faultbox/glscene/internal/engine/renderer"
	"github.com/Faultbox/glscene/internal/engine/shader"
)

// PyramidOffset places the pyramid beside the cube.
var PyramidOffset = mgl32.Vec3{2.5, 0, 1}

// Axis colours: X red, Y green, Z blue.
var (
	ColorX = mgl32.Vec4{1, 0, 0, 1}
	ColorY = mgl32.Vec4{0, 1, 0, 1}
	ColorZ = mgl32.Vec4{0, 0, 1, 1}
)

// programs builds each distinct shader file once.
type programs struct {
	dev    *gpu.Device
	assets *assets.Manager
	built  map[string]uint32
}

func (p *programs) get(name string) (uint32, error) {
	if id, ok := p.built[name]; ok {
		return id, nil
	}

	log := p.dev.Logger()

	// A missing file leaves both sources empty and fails compilation
	var src shader.Source
	data, err := p.assets.Load(name)
	if err != nil {
		log.Error("failed to load shader file", zap.String("file", name), zap.Error(err))
	} else {
		src, err = shader.Parse(bytes.NewReader(data))
		if err != nil {
			log.Error("failed to read shader file", zap.String("file", name), zap.Error(err))
		}
	}
	if src.Discarded > 0 {
		log.Debug("ignored lines before first shader marker",
			zap.String("file", name),
			zap.Int("lines", src.Discarded),
		)
	}

	id, err := shader.Build(p.dev, src)
	var compileErr *shader.CompileError
	switch {
	case errors.As(err, &compileErr):
		// Objects using this file stay in the scene with no program
		log.Error("shader file did not compile; its objects will not draw",
			zap.String("file", name),
			zap.Error(err),
		)
		id = 0
	case err != nil:
		return 0, fmt.Errorf("building %s: %w", name, err)
	}
	p.built[name] = id
	return id, nil
}

// release deletes programs that never reached the renderer.
func (p *programs) release(keep map[uint32]bool) {
	for _, id := range p.built {
		if id != 0 && !keep[id] {
			p.dev.Call("glDeleteProgram", func() { p.dev.GL.DeleteProgram(id) })
		}
	}
}

// buildScene uploads the cube, pyramid and axes and registers them with r.
func buildScene(dev *gpu.Device, r *renderer.Renderer, am *assets.Manager, cfg config.ShaderConfig) (err error) {
	progs := &programs{dev: dev, assets: am, built: make(map[string]uint32)}
	var pending []*mesh.Mesh

	defer func() {
		if err == nil {
			return
		}
		for _, m := range pending {
			m.Delete(dev)
		}
		owned := make(map[uint32]bool)
		for _, o := range r.Objects() {
			owned[o.Program] = true
		}
		progs.release(owned)
	}()

	type part struct {
		geometry mesh.Geometry
		shader   string
		model    mgl32.Mat4
		segments []renderer.Segment
	}
	parts := []part{
		{geometry: mesh.Cube(), shader: cfg.Cube, model: mgl32.Ident4()},
		{geometry: mesh.Pyramid(), shader: cfg.Cube, model: mgl32.Translate3D(PyramidOffset.Elem())},
		{
			geometry: mesh.Axes(),
			shader:   cfg.Axes,
			model:    mgl32.Ident4(),
			segments: []renderer.Segment{
				{First: mesh.AxisX[0], Count: mesh.AxisX[1], Color: ColorX},
				{First: mesh.AxisY[0], Count: mesh.AxisY[1], Color: ColorY},
				{First: mesh.AxisZ[0], Count: mesh.AxisZ[1], Color: ColorZ},
			},
		},
	}

	for _, s := range parts {
		program, err := progs.get(s.shader)
		if err != nil {
			return err
		}

		m, err := mesh.Upload(dev, s.geometry)
		if err != nil {
			return err
		}
		pending = append(pending, m)

		if _, err := r.Add(renderer.Object{
			Name:     s.geometry.Name,
			Program:  program,
			Mesh:     m,
			Model:    s.model,
			Segments: s.segments,
		}); err != nil {
			return err
		}
		pending = pending[:len(pending)-1]
	}

	return nil
}

// Package viewer wires the window, GL device, scene and camera into the
// render loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/assets"
	"github.com/Faultbox/glscene/internal/config"
	"github.com/Faultbox/glscene/internal/engine/camera"
	"github.com/Faultbox/glscene/internal/engine/gpu"
	"github.com/Faultbox/glscene/internal/engine/gpu/opengl"
	"github.com/Faultbox/glscene/internal/engine/input"
	"github.com/Faultbox/glscene/internal/engine/renderer"
	"github.com/Faultbox/glscene/internal/engine/window"
)

// Surface is the part of the window the loop drives.
type Surface interface {
	ShouldClose() bool
	RequestClose()
	SwapBuffers()
	PollEvents() []input.Event
}

// Viewer is the running scene viewer.
type Viewer struct {
	log        *zap.Logger
	window     *window.Window
	surface    Surface
	dev        *gpu.Device
	renderer   *renderer.Renderer
	assets     *assets.Manager
	camera     *camera.State
	controller *camera.Controller

	frames      int
	frameErrors int
}

// New opens the window, loads OpenGL and builds the scene.
func New(cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	win, err := window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Function pointers can only be loaded once a context is current
	api, info, err := opengl.Init()
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", info.Version),
		zap.String("renderer", info.Renderer),
		zap.String("vendor", info.Vendor),
		zap.String("glsl", info.GLSL),
	)

	policy := gpu.PolicyLog
	if cfg.Debug.TrapOnGLError {
		policy = gpu.PolicyTrap
	}
	dev := gpu.NewDevice(api, policy, log.Named("gl"))

	v, err := newViewer(cfg, log, win, dev)
	if err != nil {
		win.Close()
		return nil, err
	}
	v.window = win
	return v, nil
}

// newViewer builds everything that sits on top of a GL device.
func newViewer(cfg *config.Config, log *zap.Logger, surface Surface, dev *gpu.Device) (*Viewer, error) {
	am := assets.NewManager()
	if cfg.Shaders.Dir != "" {
		if err := am.AddDir(cfg.Shaders.Dir); err != nil {
			return nil, err
		}
	}

	r, err := renderer.New(dev, renderer.Config{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		FOVDegrees: cfg.Render.FOV,
		Near:       cfg.Render.Near,
		Far:        cfg.Render.Far,
		ClearColor: cfg.Render.ClearColor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := buildScene(dev, r, am, cfg.Shaders); err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	log.Info("viewer initialized", zap.Stringer("gl_policy", dev.Policy()))
	return &Viewer{
		log:        log,
		surface:    surface,
		dev:        dev,
		renderer:   r,
		assets:     am,
		camera:     camera.NewState(mgl32.Vec3(cfg.Camera.Eye)),
		controller: camera.NewController(cfg.Camera.Step),
	}, nil
}

// Run renders, presents and polls until the window is asked to close.
func (v *Viewer) Run() error {
	v.log.Info("starting render loop")

	frameCount := 0
	fpsTimer := time.Now()

	for !v.surface.ShouldClose() {
		v.Frame()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	v.log.Info("render loop finished",
		zap.Int("frames", v.frames),
		zap.Int("frames_with_gl_errors", v.frameErrors),
		zap.Int("gl_failures", v.dev.Failures()),
	)
	return nil
}

// Frame runs one iteration: render, present, then handle input.
func (v *Viewer) Frame() {
	if err := v.renderer.RenderFrame(v.camera); err != nil {
		v.frameErrors++
	}
	v.frames++

	v.surface.SwapBuffers()

	for _, ev := range v.surface.PollEvents() {
		v.handleEvent(ev)
	}
}

func (v *Viewer) handleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		v.surface.RequestClose()
	case input.EventKey:
		switch v.controller.HandleKey(v.camera, ev) {
		case camera.EffectClose:
			v.surface.RequestClose()
		case camera.EffectMoved:
			v.log.Debug("camera moved",
				zap.Stringer("key", ev.Key),
				zap.Float32s("eye", v.camera.Eye[:]),
			)
		}
	}
}

// Camera returns the camera state the loop renders with.
func (v *Viewer) Camera() *camera.State {
	return v.camera
}

// Close releases GPU resources, then the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.assets != nil {
		hits, misses := v.assets.Stats()
		v.log.Debug("shader cache", zap.Int("hits", hits), zap.Int("misses", misses))
		v.assets.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

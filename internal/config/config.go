// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Shaders ShaderConfig  `yaml:"shaders"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings. The window is not resizable.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// RenderConfig holds projection and clear settings.
type RenderConfig struct {
	FOV        float32    `yaml:"fov"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	ClearColor [4]float32 `yaml:"clear_color"`
}

// CameraConfig holds the starting eye position and movement step.
type CameraConfig struct {
	Eye  [3]float32 `yaml:"eye"`
	Step float32    `yaml:"step"`
}

// ShaderConfig names the shader files. Dir, when set, is searched before
// the built-in shaders.
type ShaderConfig struct {
	Dir  string `yaml:"dir"`
	Cube string `yaml:"cube"`
	Axes string `yaml:"axes"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	TrapOnGLError bool `yaml:"trap_on_gl_error"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "3D Scene",
			Width:  1920,
			Height: 1080,
			VSync:  true,
		},
		Render: RenderConfig{
			FOV:        45,
			Near:       0.1,
			Far:        100,
			ClearColor: [4]float32{0, 0, 0, 1},
		},
		Camera: CameraConfig{
			Eye:  [3]float32{5, 3, 5},
			Step: 0.5,
		},
		Shaders: ShaderConfig{
			Cube: "Cube.shader",
			Axes: "Axes.shader",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Title != "3D Scene" {
		t.Errorf("expected title '3D Scene', got %s", cfg.Window.Title)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test render defaults
	if cfg.Render.FOV != 45 {
		t.Errorf("expected fov 45, got %v", cfg.Render.FOV)
	}
	if cfg.Render.Near != 0.1 || cfg.Render.Far != 100 {
		t.Errorf("expected clip planes 0.1/100, got %v/%v", cfg.Render.Near, cfg.Render.Far)
	}

	// Test camera defaults
	if cfg.Camera.Eye != [3]float32{5, 3, 5} {
		t.Errorf("expected eye (5, 3, 5), got %v", cfg.Camera.Eye)
	}
	if cfg.Camera.Step != 0.5 {
		t.Errorf("expected step 0.5, got %v", cfg.Camera.Step)
	}

	// Test shader defaults
	if cfg.Shaders.Cube != "Cube.shader" || cfg.Shaders.Axes != "Axes.shader" {
		t.Errorf("unexpected shader names %+v", cfg.Shaders)
	}
	if cfg.Shaders.Dir != "" {
		t.Errorf("expected no shader dir, got %s", cfg.Shaders.Dir)
	}

	if cfg.Debug.TrapOnGLError {
		t.Error("expected trap_on_gl_error to be false by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  title: "Scene"
  width: 1280
  height: 720
  vsync: false

render:
  fov: 60
  near: 0.5
  far: 50
  clear_color: [0.1, 0.1, 0.15, 1]

camera:
  eye: [0, 4, 8]
  step: 1

shaders:
  dir: "res/shaders"
  cube: "Solid.shader"

debug:
  trap_on_gl_error: true

logging:
  level: "debug"
  log_file: "scene.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Window.Title != "Scene" {
		t.Errorf("expected title 'Scene', got %s", cfg.Window.Title)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Render.FOV != 60 || cfg.Render.Near != 0.5 || cfg.Render.Far != 50 {
		t.Errorf("unexpected render settings %+v", cfg.Render)
	}
	if cfg.Render.ClearColor != [4]float32{0.1, 0.1, 0.15, 1} {
		t.Errorf("unexpected clear colour %v", cfg.Render.ClearColor)
	}

	if cfg.Camera.Eye != [3]float32{0, 4, 8} {
		t.Errorf("unexpected eye %v", cfg.Camera.Eye)
	}
	if cfg.Camera.Step != 1 {
		t.Errorf("expected step 1, got %v", cfg.Camera.Step)
	}

	if cfg.Shaders.Dir != "res/shaders" || cfg.Shaders.Cube != "Solid.shader" {
		t.Errorf("unexpected shader settings %+v", cfg.Shaders)
	}
	// Keys missing from the file keep their defaults
	if cfg.Shaders.Axes != "Axes.shader" {
		t.Errorf("expected default axes shader, got %s", cfg.Shaders.Axes)
	}

	if !cfg.Debug.TrapOnGLError {
		t.Error("expected trap_on_gl_error to be true")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "scene.log" {
		t.Errorf("expected log file 'scene.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"near zero", func(c *Config) { c.Render.Near = 0 }},
		{"far before near", func(c *Config) { c.Render.Far = 0.05 }},
		{"flat fov", func(c *Config) { c.Render.FOV = 0 }},
		{"wide fov", func(c *Config) { c.Render.FOV = 180 }},
		{"zero step", func(c *Config) { c.Camera.Step = 0 }},
		{"no cube shader", func(c *Config) { c.Shaders.Cube = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Keep the user's real config dir out of the search
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "trap flag",
			setup: func() {
				*flagTrap = true
			},
			verify: func(cfg *Config) {
				if !cfg.Debug.TrapOnGLError {
					t.Error("expected trap_on_gl_error with trap flag")
				}
			},
			teardown: func() {
				*flagTrap = false
			},
		},
		{
			name: "shaders flag",
			setup: func() {
				*flagShaders = "/opt/shaders"
			},
			verify: func(cfg *Config) {
				if cfg.Shaders.Dir != "/opt/shaders" {
					t.Errorf("expected shader dir /opt/shaders, got %s", cfg.Shaders.Dir)
				}
			},
			teardown: func() {
				*flagShaders = ""
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  step: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for negative step")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Title = "Saved"
	cfg.Camera.Eye = [3]float32{1, 2, 3}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("saved config did not round trip:\n got %+v\nwant %+v", loaded, cfg)
	}
}

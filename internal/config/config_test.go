package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/meadow/internal/engine/terrain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.World.Size != 65 {
		t.Errorf("expected world size 65, got %d", cfg.World.Size)
	}
	if cfg.World.NoiseSize != 128 {
		t.Errorf("expected noise size 128, got %d", cfg.World.NoiseSize)
	}
	if cfg.World.GrassDensity != 100 || cfg.World.GrassPool != 100 {
		t.Errorf("expected 100 blades per cell from a pool of 100, got %d/%d", cfg.World.GrassDensity, cfg.World.GrassPool)
	}
	if cfg.World.InitialLevel != 6 {
		t.Errorf("expected initial level 6, got %d", cfg.World.InitialLevel)
	}
	if cfg.World.FillMode() != terrain.FillTriangles {
		t.Errorf("expected filled terrain by default, got %v", cfg.World.FillMode())
	}

	if cfg.Camera.FOV != 45 || cfg.Camera.EyeHeight != 2 {
		t.Errorf("unexpected camera defaults %+v", cfg.Camera)
	}

	if cfg.Render.SunElevation != 50 || cfg.Render.ScreenshotDir != "screenshots" {
		t.Errorf("unexpected render defaults %+v", cfg.Render)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1280
  height: 720
  fullscreen: true

world:
  size: 33
  noise_size: 64
  grass_density: 12
  initial_level: 3
  seed: 1234
  wireframe: true

camera:
  eye_height: 3.5

render:
  clear_color: [0.1, 0.2, 0.3]
  wind: false

logging:
  level: "debug"
  log_file: "meadow.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 || !cfg.Graphics.Fullscreen {
		t.Errorf("graphics not loaded: %+v", cfg.Graphics)
	}
	if cfg.World.Size != 33 || cfg.World.NoiseSize != 64 || cfg.World.GrassDensity != 12 {
		t.Errorf("world not loaded: %+v", cfg.World)
	}
	if cfg.World.InitialLevel != 3 || cfg.World.Seed != 1234 {
		t.Errorf("world level/seed not loaded: %+v", cfg.World)
	}
	if cfg.World.FillMode() != terrain.FillWireframe {
		t.Error("expected wireframe fill mode")
	}
	if cfg.Camera.EyeHeight != 3.5 {
		t.Errorf("expected eye height 3.5, got %v", cfg.Camera.EyeHeight)
	}
	// Keys missing from the file keep their defaults
	if cfg.Camera.FOV != 45 {
		t.Errorf("expected default fov 45, got %v", cfg.Camera.FOV)
	}
	if cfg.World.GrassPool != 100 {
		t.Errorf("expected default grass pool 100, got %d", cfg.World.GrassPool)
	}
	if cfg.Render.ClearColor != [3]float32{0.1, 0.2, 0.3} || cfg.Render.Wind {
		t.Errorf("render not loaded: %+v", cfg.Render)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "meadow.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
world:
  size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"tiny world", func(c *Config) { c.World.Size = 2 }},
		{"world not power of two plus one", func(c *Config) { c.World.Size = 64 }},
		{"noise too small", func(c *Config) { c.World.NoiseSize = 64 }},
		{"noise too small for scale", func(c *Config) { c.World.Scale = 2 }},
		{"zero scale", func(c *Config) { c.World.Scale = 0 }},
		{"level zero", func(c *Config) { c.World.InitialLevel = 0 }},
		{"level above max", func(c *Config) { c.World.InitialLevel = 7 }},
		{"negative density", func(c *Config) { c.World.GrassDensity = -1 }},
		{"negative pool", func(c *Config) { c.World.GrassPool = -5 }},
		{"bad window", func(c *Config) { c.Graphics.Width = 0 }},
		{"bad clip range", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"bad fov", func(c *Config) { c.Camera.FOV = 180 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	cfg := Default()
	cfg.World.NoiseSize = 65
	if err := cfg.Validate(); err != nil {
		t.Errorf("noise size equal to world size should be enough: %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 2560
	cfg.World.Seed = 42
	cfg.World.Wireframe = true

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}

	if loaded.Graphics.Width != 2560 {
		t.Errorf("expected width 2560, got %d", loaded.Graphics.Width)
	}
	if loaded.World.Seed != 42 || !loaded.World.Wireframe {
		t.Errorf("world settings not saved: %+v", loaded.World)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("world:\n  size: 33\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth, *flagHeight = 2560, 1440 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() { *flagWidth, *flagHeight = 0, 0 },
		},
		{
			name:  "world flags",
			setup: func() { *flagSeed, *flagLevel, *flagWireframe = 99, 2, true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.Seed != 99 || cfg.World.InitialLevel != 2 || !cfg.World.Wireframe {
					t.Errorf("world flags not applied: %+v", cfg.World)
				}
			},
			teardown: func() { *flagSeed, *flagLevel, *flagWireframe = 0, 0, false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
world:
  initial_level: 4
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if path != configPath {
		t.Errorf("expected path %s, got %s", configPath, path)
	}

	// Width from flag, height and level from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.World.InitialLevel != 4 {
		t.Errorf("expected level 4 from file, got %d", cfg.World.InitialLevel)
	}
}

func TestLoadRejectsInvalidWorld(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("world:\n  initial_level: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

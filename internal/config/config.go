// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meadow/internal/engine/terrain"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	World    WorldConfig    `yaml:"world"`
	Camera   CameraConfig   `yaml:"camera"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// WorldConfig holds terrain generation settings. These are read once at
// startup; changing them requires a restart.
type WorldConfig struct {
	Size         int     `yaml:"size"`          // Vertices per side
	NoiseSize    int     `yaml:"noise_size"`    // Gradient lattice cells per side
	GrassDensity int     `yaml:"grass_density"` // Requested blades per cell
	GrassPool    int     `yaml:"grass_pool"`    // Jitter pool size, caps grass_density
	InitialLevel int     `yaml:"initial_level"`
	Seed         int64   `yaml:"seed"` // 0 picks a time-based seed
	Wireframe    bool    `yaml:"wireframe"`
	Scale        float32 `yaml:"scale"`
}

// CameraConfig holds viewer camera settings.
type CameraConfig struct {
	FOV       float32 `yaml:"fov"`
	Near      float32 `yaml:"near"`
	Far       float32 `yaml:"far"`
	Speed     float32 `yaml:"speed"`
	EyeHeight float32 `yaml:"eye_height"`
	StartX    float32 `yaml:"start_x"`
	StartZ    float32 `yaml:"start_z"`
}

// RenderConfig holds render pass settings.
type RenderConfig struct {
	ClearColor      [3]float32 `yaml:"clear_color"`
	Wind            bool       `yaml:"wind"`
	Grass           bool       `yaml:"grass"`
	BackfaceCulling bool       `yaml:"backface_culling"`
	SunAzimuth      float32    `yaml:"sun_azimuth"`   // Degrees around +Y from +Z
	SunElevation    float32    `yaml:"sun_elevation"` // Degrees above the horizon
	ScreenshotDir   string     `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock meadow world.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1920,
			Height:     1080,
			Fullscreen: false,
			VSync:      true,
		},
		World: WorldConfig{
			Size:         65,
			NoiseSize:    128,
			GrassDensity: 100,
			GrassPool:    100,
			InitialLevel: 6,
			Seed:         0,
			Wireframe:    false,
			Scale:        1,
		},
		Camera: CameraConfig{
			FOV:       45,
			Near:      0.1,
			Far:       100,
			Speed:     0.1,
			EyeHeight: 2,
			StartX:    5,
			StartZ:    5,
		},
		Render: RenderConfig{
			ClearColor:      [3]float32{0.8, 0.95, 0.99},
			Wind:            true,
			Grass:           true,
			BackfaceCulling: false,
			SunAzimuth:      135,
			SunElevation:    50,
			ScreenshotDir:   "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that the world can be built from these settings. Every
// vertex and grass blade must land inside the noise lattice.
func (c *Config) Validate() error {
	w := c.World
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if w.Size < 3 {
		return fmt.Errorf("%w: world.size %d, need at least 3", ErrInvalid, w.Size)
	}
	if n := w.Size - 1; n&(n-1) != 0 {
		return fmt.Errorf("%w: world.size %d, size-1 must be a power of two", ErrInvalid, w.Size)
	}
	if w.Scale <= 0 {
		return fmt.Errorf("%w: world.scale %v must be positive", ErrInvalid, w.Scale)
	}
	// Grass in the last cell samples up to (size-1+1)*scale, exclusive.
	need := float32(w.Size) * w.Scale
	if float32(w.NoiseSize) < need {
		return fmt.Errorf("%w: world.noise_size %d too small for size %d at scale %v (need %v)",
			ErrInvalid, w.NoiseSize, w.Size, w.Scale, need)
	}
	if maxLevel := terrain.MaxLevel(w.Size); w.InitialLevel < 1 || w.InitialLevel > maxLevel {
		return fmt.Errorf("%w: world.initial_level %d not in [1,%d]", ErrInvalid, w.InitialLevel, maxLevel)
	}
	if w.GrassDensity < 0 || w.GrassPool < 0 {
		return fmt.Errorf("%w: grass density %d and pool %d must be non-negative", ErrInvalid, w.GrassDensity, w.GrassPool)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip range [%v,%v]", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("%w: camera.fov %v", ErrInvalid, c.Camera.FOV)
	}
	return nil
}

// FillMode returns the terrain index mode selected by the world settings.
func (w WorldConfig) FillMode() terrain.FillMode {
	if w.Wireframe {
		return terrain.FillWireframe
	}
	return terrain.FillTriangles
}

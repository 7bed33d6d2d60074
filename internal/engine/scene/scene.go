// Package scene draws the terrain and its ground cover.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

// Config contains scene options.
type Config struct {
	Grass           bool
	BackfaceCulling bool
}

// View is the per-frame input of Render.
type View struct {
	ViewProj math.Mat4
	Wind     math.Vec3
	Mode     terrain.FillMode
}

// Scene groups the terrain and grass renderers.
type Scene struct {
	config Config

	terrainRenderer *TerrainRenderer
	grassRenderer   *GrassRenderer

	// LightDir points from the sun toward the ground.
	LightDir [3]float32
}

// New compiles the scene programs. A GL context must be current.
func New(cfg Config) (*Scene, error) {
	tr, err := NewTerrainRenderer()
	if err != nil {
		return nil, fmt.Errorf("terrain renderer: %w", err)
	}

	s := &Scene{
		config:          cfg,
		terrainRenderer: tr,
		LightDir:        [3]float32{-0.4, -1, -0.3},
	}

	if cfg.Grass {
		gr, err := NewGrassRenderer()
		if err != nil {
			tr.Destroy()
			return nil, fmt.Errorf("grass renderer: %w", err)
		}
		s.grassRenderer = gr
	}
	return s, nil
}

// Load uploads a terrain mesh and its grass.
func (s *Scene) Load(mesh *terrain.Mesh) error {
	if err := s.terrainRenderer.Upload(mesh.Vertices); err != nil {
		return err
	}
	if s.grassRenderer != nil {
		s.grassRenderer.Upload(mesh.Grass)
	}

	logger.Named("scene").Info("terrain uploaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("grass", len(mesh.Grass)),
		zap.Bool("grass_enabled", s.grassRenderer != nil),
	)
	return nil
}

// SetIndices replaces the terrain index list.
func (s *Scene) SetIndices(indices []uint32) error {
	return s.terrainRenderer.SetIndices(indices)
}

// Render draws the scene into the current framebuffer.
func (s *Scene) Render(v View) error {
	if s.config.BackfaceCulling {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}

	if err := s.terrainRenderer.Render(v.ViewProj, s.LightDir, v.Mode); err != nil {
		return err
	}
	// Blades are single-sided triangles seen from both sides.
	gl.Disable(gl.CULL_FACE)
	if s.grassRenderer != nil && v.Mode == terrain.FillTriangles {
		s.grassRenderer.Render(v.ViewProj, v.Wind)
	}
	return nil
}

// Destroy releases all GPU resources.
func (s *Scene) Destroy() {
	s.terrainRenderer.Destroy()
	if s.grassRenderer != nil {
		s.grassRenderer.Destroy()
	}
}

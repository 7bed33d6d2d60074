package terrain

import (
	"errors"
	"fmt"
	"math/rand"
)

// MeshConfig controls terrain mesh construction.
type MeshConfig struct {
	// WorldSize is the number of vertices per side of the grid.
	WorldSize int
	// GrassDensity is the requested blade count per cell, capped by the jitter pool size.
	GrassDensity int
	// Scale is the world-space distance between neighbouring vertices.
	Scale float32
}

// Mesh is the static terrain: one vertex per grid point and the ground-cover
// instances. It is never modified after BuildMesh returns.
type Mesh struct {
	Vertices  []Vertex
	Grass     []GrassInstance
	WorldSize int
	Bounds    Bounds

	builder *IndexBuilder
}

// NewJitterPool draws k ground-cover offsets. The same pool is reused for
// every cell, so blade patterns repeat across the terrain.
func NewJitterPool(k int, rng *rand.Rand) ([]Jitter, error) {
	if k < 0 {
		return nil, fmt.Errorf("terrain: jitter pool size must be non-negative, got %d", k)
	}
	if rng == nil {
		return nil, errors.New("terrain: nil random source")
	}
	pool := make([]Jitter, k)
	for i := range pool {
		pool[i] = Jitter{X: rng.Float32(), Z: rng.Float32(), Shade: rng.Float32()}
	}
	return pool, nil
}

// BuildMesh samples heights for every grid vertex and every grass blade.
// This is the only place the terrain queries heights; level-of-detail changes
// afterwards only touch indices.
func BuildMesh(cfg MeshConfig, heights HeightSampler, pool []Jitter) (*Mesh, error) {
	if cfg.WorldSize < 2 {
		return nil, fmt.Errorf("terrain: world size must be at least 2, got %d", cfg.WorldSize)
	}
	if cfg.GrassDensity < 0 {
		return nil, fmt.Errorf("terrain: grass density must be non-negative, got %d", cfg.GrassDensity)
	}
	if cfg.Scale <= 0 {
		return nil, fmt.Errorf("terrain: scale must be positive, got %v", cfg.Scale)
	}
	if heights == nil {
		return nil, errors.New("terrain: nil height sampler")
	}

	builder, err := NewIndexBuilder(cfg.WorldSize)
	if err != nil {
		return nil, err
	}

	perCell := min(cfg.GrassDensity, len(pool))
	jitter := pool[:perCell]
	cells := cfg.WorldSize * cfg.WorldSize

	vertices := make([]Vertex, 0, cells)
	grass := make([]GrassInstance, 0, cells*perCell)

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	for x := range cfg.WorldSize {
		for z := range cfg.WorldSize {
			px := float32(x) * cfg.Scale
			pz := float32(z) * cfg.Scale

			h, err := heights.HeightAt(px, pz)
			if err != nil {
				return nil, fmt.Errorf("terrain: vertex (%d,%d): %w", x, z, err)
			}

			pos := [3]float32{px, h, pz}
			updateBounds(&bounds, pos)
			vertices = append(vertices, Vertex{
				Position: pos,
				TexCoord: [2]float32{px, pz},
			})

			for _, j := range jitter {
				gx := px + cfg.Scale*j.X
				gz := pz + cfg.Scale*j.Z
				gh, err := heights.HeightAt(gx, gz)
				if err != nil {
					return nil, fmt.Errorf("terrain: grass in cell (%d,%d): %w", x, z, err)
				}
				grass = append(grass, GrassInstance{
					Offset: [3]float32{gx, gh, gz},
					Shade:  j.Shade,
				})
			}
		}
	}

	return &Mesh{
		Vertices:  vertices,
		Grass:     grass,
		WorldSize: cfg.WorldSize,
		Bounds:    bounds,
		builder:   builder,
	}, nil
}

// Vertex returns the vertex at grid coordinate (x, z).
func (m *Mesh) Vertex(x, z int) (Vertex, bool) {
	if x < 0 || z < 0 || x >= m.WorldSize || z >= m.WorldSize {
		return Vertex{}, false
	}
	return m.Vertices[m.Index(x, z)], true
}

// Index returns the vertex buffer index of grid coordinate (x, z).
func (m *Mesh) Index(x, z int) uint32 {
	return m.builder.Index(x, z)
}

// MaxLevel returns the deepest LOD level the grid supports.
func (m *Mesh) MaxLevel() int {
	return MaxLevel(m.WorldSize)
}

// Indices builds the full-world index list for level.
func (m *Mesh) Indices(level int, mode FillMode) ([]uint32, error) {
	return m.builder.Build(level, FullRegion(m.WorldSize), mode)
}

// AppendIndices is Indices writing into dst, for per-frame reuse.
// Index generation shares scratch space, so a Mesh must not build indices
// from more than one goroutine at a time.
func (m *Mesh) AppendIndices(dst []uint32, level int, mode FillMode) ([]uint32, error) {
	return m.builder.AppendBuild(dst, level, FullRegion(m.WorldSize), mode)
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

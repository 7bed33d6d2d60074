package terrain

import "github.com/Faultbox/meadow/pkg/noise"

// HeightSampler answers "what is the ground elevation at (x, z)".
//
// Mesh vertices, grass placement and camera grounding all go through the same
// sampler so they agree exactly on the terrain surface.
type HeightSampler interface {
	HeightAt(x, z float32) (float32, error)
}

// NoiseHeight uses the noise value directly as elevation.
type NoiseHeight struct {
	Field *noise.Field
}

// HeightAt implements HeightSampler.
func (h NoiseHeight) HeightAt(x, z float32) (float32, error) {
	return h.Field.ValueAt(x, z)
}

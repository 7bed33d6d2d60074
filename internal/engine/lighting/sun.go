// Package lighting computes the directional light used to shade the terrain.
package lighting

import "math"

// SunDirection returns the unit vector pointing from the ground toward the
// sun. Azimuth is measured in degrees around +Y starting at +Z, elevation in
// degrees above the horizon.
func SunDirection(azimuth, elevation float32) [3]float32 {
	az := float64(azimuth) * math.Pi / 180
	el := float64(elevation) * math.Pi / 180

	return [3]float32{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}

// LightDirection is the direction light travels, from the sun toward the
// ground, as the terrain shader expects it.
func LightDirection(azimuth, elevation float32) [3]float32 {
	d := SunDirection(azimuth, elevation)
	return [3]float32{-d[0], -d[1], -d[2]}
}

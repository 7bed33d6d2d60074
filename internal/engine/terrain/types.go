// Package terrain builds the static terrain mesh from a height function and
// generates level-of-detail index lists over it.
package terrain

// Vertex is a terrain vertex as uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// GrassInstance is one ground-cover blade placement.
type GrassInstance struct {
	Offset [3]float32
	Shade  float32
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Jitter is one entry of the ground-cover offset pool. X and Z offset a blade
// within its cell, Shade is passed to the shader for per-blade variation.
type Jitter struct {
	X, Z, Shade float32
}

// FillMode selects how each leaf square of the quadtree is emitted.
type FillMode int

const (
	// FillTriangles emits two triangles per leaf (3 indices each).
	FillTriangles FillMode = iota
	// FillWireframe emits the six edges of the same two triangles (2 indices each).
	FillWireframe
)

// String returns the mode name.
func (m FillMode) String() string {
	switch m {
	case FillTriangles:
		return "triangles"
	case FillWireframe:
		return "wireframe"
	default:
		return "unknown"
	}
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Square is an axis-aligned square region of the vertex grid.
type Square struct {
	TopLeft Point
	Width   int
}

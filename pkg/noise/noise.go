// Package noise implements 2D gradient noise over a precomputed lattice of
// unit gradients.
//
// A Field is built once from a random source and never mutated afterwards,
// so the same query always yields the same value for the lifetime of the
// Field. Queries must stay inside the precomputed lattice; out-of-range
// coordinates are rejected instead of wrapped.
package noise

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrOutOfRange is returned when a query falls outside the gradient lattice.
var ErrOutOfRange = errors.New("noise: coordinate outside gradient lattice")

// Field holds a (size+1) x (size+1) lattice of unit gradient vectors.
type Field struct {
	size int
	// gradients is row-major by z: gradients[z*(size+1)+x].
	gradients []gradient
}

type gradient struct {
	x, z float32
}

// New builds a Field with size cells per axis. Gradient angles are drawn
// uniformly from [0, 2π) using rng.
func New(size int, rng *rand.Rand) (*Field, error) {
	if size < 1 {
		return nil, fmt.Errorf("noise: size must be at least 1, got %d", size)
	}
	if rng == nil {
		return nil, errors.New("noise: nil random source")
	}

	side := size + 1
	grads := make([]gradient, side*side)
	for z := range side {
		for x := range side {
			angle := 2 * math.Pi * float64(rng.Float32())
			grads[z*side+x] = gradient{
				x: float32(math.Cos(angle)),
				z: float32(math.Sin(angle)),
			}
		}
	}

	return &Field{size: size, gradients: grads}, nil
}

// Size returns the number of lattice cells per axis.
func (f *Field) Size() int {
	return f.size
}

// Gradient returns the gradient stored at lattice point (ix, iz).
func (f *Field) Gradient(ix, iz int) (gx, gz float32, ok bool) {
	if ix < 0 || iz < 0 || ix > f.size || iz > f.size {
		return 0, 0, false
	}
	g := f.gradients[iz*(f.size+1)+ix]
	return g.x, g.z, true
}

// ValueAt returns the gradient noise value at (x, z).
//
// The containing cell [floor(x), floor(x)+1] x [floor(z), floor(z)+1] must lie
// within the lattice. The result is roughly in [-1, 1] and is not rescaled.
func (f *Field) ValueAt(x, z float32) (float32, error) {
	x0f := float32(math.Floor(float64(x)))
	z0f := float32(math.Floor(float64(z)))

	x0, err := f.cell(x0f, "x", x)
	if err != nil {
		return 0, err
	}
	z0, err := f.cell(z0f, "z", z)
	if err != nil {
		return 0, err
	}

	side := f.size + 1
	g00 := f.gradients[z0*side+x0]
	g10 := f.gradients[z0*side+x0+1]
	g01 := f.gradients[(z0+1)*side+x0]
	g11 := f.gradients[(z0+1)*side+x0+1]

	dx := x - x0f
	dz := z - z0f

	v00 := g00.x*dx + g00.z*dz
	v10 := g10.x*(dx-1) + g10.z*dz
	v01 := g01.x*dx + g01.z*(dz-1)
	v11 := g11.x*(dx-1) + g11.z*(dz-1)

	fx := Smooth(dx)
	fz := Smooth(dz)

	return Lerp(Lerp(v00, v10, fx), Lerp(v01, v11, fx), fz), nil
}

// cell validates a floored coordinate and returns it as a lattice index.
func (f *Field) cell(floored float32, axis string, v float32) (int, error) {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0, fmt.Errorf("%w: %s=%v is not finite", ErrOutOfRange, axis, v)
	}
	if floored < 0 || floored+1 > float32(f.size) {
		return 0, fmt.Errorf("%w: %s=%v needs cell [%v,%v], lattice is [0,%d]",
			ErrOutOfRange, axis, v, floored, floored+1, f.size)
	}
	return int(floored), nil
}

// Smooth is the cubic Hermite ease t²(3-2t).
func Smooth(t float32) float32 {
	return t * t * (3 - 2*t)
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

package terrain

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidRegion is returned when a LOD request does not fit the grid or
// cannot be subdivided the requested number of times.
var ErrInvalidRegion = errors.New("terrain: invalid LOD region")

// IndexBuilder turns a (level, region) request into an index list over a
// worldSize x worldSize vertex grid laid out as x*worldSize + y.
type IndexBuilder struct {
	worldSize int
	stack     []lodItem
}

type lodItem struct {
	level  int
	square Square
}

// NewIndexBuilder creates a builder for a grid with worldSize vertices per side.
func NewIndexBuilder(worldSize int) (*IndexBuilder, error) {
	if worldSize < 2 {
		return nil, fmt.Errorf("terrain: world size must be at least 2, got %d", worldSize)
	}
	// Index values must fit in uint32.
	if uint64(worldSize)*uint64(worldSize) > 1<<32 {
		return nil, fmt.Errorf("terrain: world size %d overflows 32-bit indices", worldSize)
	}
	return &IndexBuilder{worldSize: worldSize}, nil
}

// WorldSize returns the grid side length the builder indexes into.
func (b *IndexBuilder) WorldSize() int {
	return b.worldSize
}

// FullRegion returns the square covering the whole grid.
func FullRegion(worldSize int) Square {
	return Square{Width: worldSize - 1}
}

// MaxLevel returns the largest level L with 2^L <= worldSize-1.
func MaxLevel(worldSize int) int {
	if worldSize < 2 {
		return 0
	}
	return bits.Len(uint(worldSize-1)) - 1
}

// IndexCount returns how many indices Build emits for level and mode.
func IndexCount(level int, mode FillMode) int {
	leaves := 1 << (2 * level)
	switch mode {
	case FillWireframe:
		return leaves * 12
	default:
		return leaves * 6
	}
}

// Index maps grid coordinate (x, y) to its vertex buffer index.
func (b *IndexBuilder) Index(x, y int) uint32 {
	return uint32(x*b.worldSize + y)
}

// Build returns the indices for region subdivided level times.
func (b *IndexBuilder) Build(level int, region Square, mode FillMode) ([]uint32, error) {
	return b.AppendBuild(nil, level, region, mode)
}

// AppendBuild appends the indices for region subdivided level times to dst.
// Passing dst[:0] from the previous frame reuses its storage.
//
// Children are visited top-left, top-right, bottom-left, bottom-right at
// every depth, which fixes the output order and so the triangle winding.
func (b *IndexBuilder) AppendBuild(dst []uint32, level int, region Square, mode FillMode) ([]uint32, error) {
	if err := b.validate(level, region, mode); err != nil {
		return dst, err
	}

	if need := len(dst) + IndexCount(level, mode); cap(dst) < need {
		grown := make([]uint32, len(dst), need)
		copy(grown, dst)
		dst = grown
	}

	b.stack = append(b.stack[:0], lodItem{level: level, square: region})
	for len(b.stack) > 0 {
		item := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]

		if item.level > 0 {
			half := item.square.Width / 2
			tl := item.square.TopLeft
			next := item.level - 1
			// LIFO: push in reverse so TL pops first.
			b.stack = append(b.stack,
				lodItem{next, Square{Point{tl.X + half, tl.Y + half}, half}},
				lodItem{next, Square{Point{tl.X, tl.Y + half}, half}},
				lodItem{next, Square{Point{tl.X + half, tl.Y}, half}},
				lodItem{next, Square{tl, half}},
			)
			continue
		}

		dst = b.emitLeaf(dst, item.square, mode)
	}

	return dst, nil
}

func (b *IndexBuilder) emitLeaf(dst []uint32, sq Square, mode FillMode) []uint32 {
	x, y, w := sq.TopLeft.X, sq.TopLeft.Y, sq.Width

	tl := b.Index(x, y)
	tr := b.Index(x+w, y)
	bl := b.Index(x, y+w)
	br := b.Index(x+w, y+w)

	if mode == FillWireframe {
		return append(dst,
			tl, bl, bl, br, br, tl,
			tl, tr, tr, br, br, tl,
		)
	}
	return append(dst,
		tl, bl, br,
		tl, tr, br,
	)
}

func (b *IndexBuilder) validate(level int, region Square, mode FillMode) error {
	if mode != FillTriangles && mode != FillWireframe {
		return fmt.Errorf("%w: unknown fill mode %d", ErrInvalidRegion, mode)
	}
	if level < 0 {
		return fmt.Errorf("%w: negative level %d", ErrInvalidRegion, level)
	}
	w := region.Width
	if w < 1 || w&(w-1) != 0 {
		return fmt.Errorf("%w: width %d is not a power of two", ErrInvalidRegion, w)
	}
	if level >= bits.UintSize-1 || w>>level == 0 {
		return fmt.Errorf("%w: width %d cannot be halved %d times", ErrInvalidRegion, w, level)
	}
	tl := region.TopLeft
	limit := b.worldSize - 1
	if tl.X < 0 || tl.Y < 0 || tl.X+w > limit || tl.Y+w > limit {
		return fmt.Errorf("%w: square at (%d,%d) width %d exceeds grid [0,%d]",
			ErrInvalidRegion, tl.X, tl.Y, w, limit)
	}
	return nil
}

package terrain

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is returned when a LOD level lies outside [1, max].
var ErrInvalidLevel = errors.New("terrain: LOD level out of range")

// Level is the user-controlled LOD depth, kept within [1, max].
type Level struct {
	value int
	max   int
}

// NewLevel creates a level starting at initial.
func NewLevel(initial, max int) (*Level, error) {
	if max < 1 {
		return nil, fmt.Errorf("%w: max level %d, grid too small to subdivide", ErrInvalidLevel, max)
	}
	if initial < 1 || initial > max {
		return nil, fmt.Errorf("%w: %d not in [1,%d]", ErrInvalidLevel, initial, max)
	}
	return &Level{value: initial, max: max}, nil
}

// Value returns the current level.
func (l *Level) Value() int { return l.value }

// Max returns the upper bound.
func (l *Level) Max() int { return l.max }

// Increase raises the level by one. At max it does nothing and returns false.
func (l *Level) Increase() bool {
	if l.value >= l.max {
		return false
	}
	l.value++
	return true
}

// Decrease lowers the level by one. At 1 it does nothing and returns false.
func (l *Level) Decrease() bool {
	if l.value <= 1 {
		return false
	}
	l.value--
	return true
}

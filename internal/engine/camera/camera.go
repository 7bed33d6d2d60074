// Package camera provides the free-flying, ground-following viewer camera.
package camera

import (
	"fmt"

	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/pkg/math"
)

// Config holds camera construction parameters.
type Config struct {
	FOV       float32 // Vertical field of view in degrees
	Near      float32
	Far       float32
	Speed     float32 // World units moved per tick while a movement key is held
	EyeHeight float32 // Height kept above the terrain surface
	StartX    float32
	StartZ    float32
	Width     int
	Height    int
}

// DefaultConfig returns the camera settings of the stock viewer.
func DefaultConfig() Config {
	return Config{
		FOV:       45,
		Near:      0.1,
		Far:       100,
		Speed:     0.1,
		EyeHeight: 2,
		StartX:    5,
		StartZ:    5,
		Width:     1920,
		Height:    1080,
	}
}

// FlyCamera moves freely in the XZ plane while its height is pinned to the
// terrain surface plus a fixed eye height on every update.
type FlyCamera struct {
	Position  math.Vec3
	Direction math.Vec3

	FOV       float32
	Aspect    float32
	Near      float32
	Far       float32
	Speed     float32
	EyeHeight float32

	// Held movement keys
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	dragging bool
	mouseX   int
	mouseY   int
}

// New creates a camera from cfg.
func New(cfg Config) *FlyCamera {
	c := &FlyCamera{
		Position:  math.Vec3{X: cfg.StartX, Y: cfg.EyeHeight, Z: cfg.StartZ},
		Direction: math.Vec3{X: 1, Y: 0, Z: 1}.Normalize(),
		FOV:       cfg.FOV,
		Near:      cfg.Near,
		Far:       cfg.Far,
		Speed:     cfg.Speed,
		EyeHeight: cfg.EyeHeight,
		Aspect:    1,
	}
	c.SetAspect(cfg.Width, cfg.Height)
	return c
}

// Update applies held movement for one tick, then snaps the camera to
// EyeHeight above the terrain at its new XZ position.
//
// If the terrain has no height at the new position the planar move is
// undone and the lookup error is returned.
func (c *FlyCamera) Update(heights terrain.HeightSampler) error {
	c.Direction = c.Direction.Normalize()
	left := math.UnitY.Cross(c.Direction)

	prev := c.Position
	if c.Left {
		c.Position = c.Position.Add(left.Scale(c.Speed))
	}
	if c.Right {
		c.Position = c.Position.Add(left.Scale(-c.Speed))
	}
	if c.Forward {
		c.Position = c.Position.Add(c.Direction.Scale(c.Speed))
	}
	if c.Backward {
		c.Position = c.Position.Add(c.Direction.Scale(-c.Speed))
	}

	h, err := heights.HeightAt(c.Position.X, c.Position.Z)
	if err == nil {
		c.Position.Y = c.EyeHeight + h
		return nil
	}

	moveErr := fmt.Errorf("camera: no ground at (%.2f, %.2f): %w", c.Position.X, c.Position.Z, err)
	c.Position = prev
	h, err = heights.HeightAt(c.Position.X, c.Position.Z)
	if err != nil {
		return fmt.Errorf("camera: no ground at (%.2f, %.2f): %w", c.Position.X, c.Position.Z, err)
	}
	c.Position.Y = c.EyeHeight + h
	return moveErr
}

// SetDragging starts or stops pointer-drag rotation.
func (c *FlyCamera) SetDragging(pressed bool) {
	c.dragging = pressed
}

// Dragging reports whether pointer motion currently rotates the view.
func (c *FlyCamera) Dragging() bool {
	return c.dragging
}

// HandlePointer processes a pointer position in window coordinates. While
// dragging, the delta since the last position (as a fraction of the window
// size) turns the view: horizontal about world up, vertical about X.
func (c *FlyCamera) HandlePointer(x, y, width, height int) {
	if c.dragging && width > 0 && height > 0 {
		dx := -float32(x-c.mouseX) / float32(width)
		dy := float32(y-c.mouseY) / float32(height)

		rotX := math.QuatFromAxisAngle(math.UnitY, dx)
		rotY := math.QuatFromAxisAngle(math.UnitX, dy)
		c.Direction = rotX.Mul(rotY).Rotate(c.Direction)
	}

	c.mouseX = x
	c.mouseY = y
}

// ZoomIn narrows the field of view by one degree.
func (c *FlyCamera) ZoomIn() {
	if c.FOV > 1 {
		c.FOV--
	}
}

// ZoomOut widens the field of view by one degree.
func (c *FlyCamera) ZoomOut() {
	if c.FOV < 179 {
		c.FOV++
	}
}

// SetAspect updates the aspect ratio from a viewport size.
func (c *FlyCamera) SetAspect(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// ViewMatrix returns the view matrix looking along Direction.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Direction), math.UnitY)
}

// ProjectionMatrix returns the perspective projection.
func (c *FlyCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), c.Aspect, c.Near, c.Far)
}

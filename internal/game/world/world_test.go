package world

import (
	"fmt"
	stdmath "math"
	"testing"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/pkg/noise"
)

// slope is a tilted plane defined on [0,size) in x and z.
type slope struct {
	size float32
}

func (s slope) HeightAt(x, z float32) (float32, error) {
	if x < 0 || z < 0 || x >= s.size || z >= s.size {
		return 0, fmt.Errorf("slope (%v,%v): %w", x, z, noise.ErrOutOfRange)
	}
	return 0.5 + 0.1*x, nil
}

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.World.Size = 9
	cfg.World.NoiseSize = 16
	cfg.World.GrassDensity = 3
	cfg.World.GrassPool = 4
	cfg.World.InitialLevel = 3
	return cfg
}

func slopeWorld(t *testing.T, cam camera.Config) *World {
	t.Helper()
	w, err := Build(Options{
		Mesh:         terrain.MeshConfig{WorldSize: 9, GrassDensity: 1, Scale: 1},
		InitialLevel: 2,
		Mode:         terrain.FillTriangles,
		Camera:       cam,
		Wind:         true,
	}, slope{size: 9}, []terrain.Jitter{{X: 0.5, Z: 0.5, Shade: 0.2}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return w
}

func TestNewDeterministic(t *testing.T) {
	cfg := smallConfig()
	a, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if len(a.Mesh().Vertices) != 81 {
		t.Fatalf("expected 81 vertices, got %d", len(a.Mesh().Vertices))
	}
	if len(a.Mesh().Grass) != 81*3 {
		t.Fatalf("expected %d grass blades, got %d", 81*3, len(a.Mesh().Grass))
	}
	for i := range a.Mesh().Vertices {
		if a.Mesh().Vertices[i] != b.Mesh().Vertices[i] {
			t.Fatalf("vertex %d differs between equal seeds", i)
		}
	}
	for i := range a.Mesh().Grass {
		if a.Mesh().Grass[i] != b.Mesh().Grass[i] {
			t.Fatalf("grass %d differs between equal seeds", i)
		}
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	cfg := smallConfig()
	cfg.World.InitialLevel = 4
	if _, err := New(cfg, 1); err == nil {
		t.Error("expected error for level above max")
	}
}

func TestResolveSeed(t *testing.T) {
	if got := ResolveSeed(7); got != 7 {
		t.Errorf("ResolveSeed(7) = %d", got)
	}
	if got := ResolveSeed(0); got == 0 {
		t.Error("ResolveSeed(0) should pick a non-zero seed")
	}
}

func TestStepGroundsCamera(t *testing.T) {
	w, err := New(smallConfig(), 3)
	if err != nil {
		t.Fatal(err)
	}

	w.Apply(input.Action{Kind: input.KindMove, Direction: input.Forward, Pressed: true})
	for range 5 {
		if _, err := w.Step(); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
		pos := w.Camera().Position
		h, err := w.heights.HeightAt(pos.X, pos.Z)
		if err != nil {
			t.Fatalf("camera off terrain at (%v,%v)", pos.X, pos.Z)
		}
		if pos.Y != w.Camera().EyeHeight+h {
			t.Errorf("camera y = %v, want %v", pos.Y, w.Camera().EyeHeight+h)
		}
	}
}

func TestStepIndices(t *testing.T) {
	w, err := New(smallConfig(), 3)
	if err != nil {
		t.Fatal(err)
	}

	frame, err := w.Step()
	if err != nil {
		t.Fatal(err)
	}
	if frame.Level != 3 || len(frame.Indices) != terrain.IndexCount(3, terrain.FillTriangles) {
		t.Errorf("level %d with %d indices", frame.Level, len(frame.Indices))
	}

	w.Apply(input.Action{Kind: input.KindLevelDown})
	frame, err = w.Step()
	if err != nil {
		t.Fatal(err)
	}
	if frame.Level != 2 || len(frame.Indices) != terrain.IndexCount(2, terrain.FillTriangles) {
		t.Errorf("after level down: level %d with %d indices", frame.Level, len(frame.Indices))
	}
	for _, idx := range frame.Indices {
		if int(idx) >= len(w.Mesh().Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestStepWireframe(t *testing.T) {
	cfg := smallConfig()
	cfg.World.Wireframe = true
	w, err := New(cfg, 5)
	if err != nil {
		t.Fatal(err)
	}

	frame, err := w.Step()
	if err != nil {
		t.Fatal(err)
	}
	if frame.Mode != terrain.FillWireframe {
		t.Errorf("mode = %v", frame.Mode)
	}
	if len(frame.Indices) != terrain.IndexCount(3, terrain.FillWireframe) {
		t.Errorf("got %d wireframe indices", len(frame.Indices))
	}
}

func TestLevelSaturates(t *testing.T) {
	w, err := New(smallConfig(), 9)
	if err != nil {
		t.Fatal(err)
	}

	for range 10 {
		w.Apply(input.Action{Kind: input.KindLevelUp})
	}
	if w.Level() != 3 {
		t.Errorf("level after raising = %d, want 3", w.Level())
	}

	for range 10 {
		w.Apply(input.Action{Kind: input.KindLevelDown})
	}
	if w.Level() != 1 {
		t.Errorf("level after lowering = %d, want 1", w.Level())
	}
}

func TestEdgeBlocksMovement(t *testing.T) {
	cam := camera.DefaultConfig()
	cam.StartX, cam.StartZ = 8.5, 4
	cam.Speed = 0.5
	w := slopeWorld(t, cam)

	w.Apply(input.Action{Kind: input.KindMove, Direction: input.Forward, Pressed: true})
	for range 5 {
		if _, err := w.Step(); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}

	pos := w.Camera().Position
	if pos.X >= 9 || pos.Z >= 9 {
		t.Errorf("camera left the terrain: %+v", pos)
	}
	want := cam.EyeHeight + 0.5 + 0.1*pos.X
	if stdmath.Abs(float64(pos.Y-want)) > 1e-5 {
		t.Errorf("camera y = %v, want %v", pos.Y, want)
	}

	// Backing off works again.
	w.Apply(input.Action{Kind: input.KindMove, Direction: input.Forward})
	w.Apply(input.Action{Kind: input.KindMove, Direction: input.Backward, Pressed: true})
	before := w.Camera().Position.X
	if _, err := w.Step(); err != nil {
		t.Fatal(err)
	}
	if w.Camera().Position.X >= before {
		t.Errorf("camera did not move back: %v -> %v", before, w.Camera().Position.X)
	}
}

func TestWind(t *testing.T) {
	w := slopeWorld(t, camera.DefaultConfig())

	frame, err := w.Step()
	if err != nil {
		t.Fatal(err)
	}
	want := float32(stdmath.Sin(0.01)) / 2
	if frame.Tick != 1 || frame.Wind.X != want || frame.Wind.Y != 0 || frame.Wind.Z != 0 {
		t.Errorf("tick %d wind %+v, want x=%v", frame.Tick, frame.Wind, want)
	}

	w.wind = false
	frame, _ = w.Step()
	if frame.Wind.X != 0 {
		t.Errorf("wind disabled but got %+v", frame.Wind)
	}
}

func TestDragRotatesView(t *testing.T) {
	w := slopeWorld(t, camera.DefaultConfig())
	start := w.Camera().Direction

	// Motion without the button only tracks the pointer.
	w.Apply(input.Action{Kind: input.KindPointer, X: 10, Y: 10})
	if w.Camera().Direction != start {
		t.Fatal("direction changed without drag")
	}

	w.Apply(input.Action{Kind: input.KindDrag, Pressed: true, X: 100, Y: 100})
	if w.Camera().Direction != start {
		t.Fatal("pressing the button must not turn the view")
	}
	w.Apply(input.Action{Kind: input.KindPointer, X: 300, Y: 100})
	turned := w.Camera().Direction
	if turned == start {
		t.Fatal("drag did not rotate the view")
	}

	w.Apply(input.Action{Kind: input.KindDrag, Pressed: false, X: 300, Y: 100})
	w.Apply(input.Action{Kind: input.KindPointer, X: 500, Y: 300})
	if w.Camera().Direction != turned {
		t.Error("direction changed after release")
	}
}

func TestResizeAndZoom(t *testing.T) {
	w := slopeWorld(t, camera.DefaultConfig())

	w.Apply(input.Action{Kind: input.KindResize, Width: 800, Height: 400})
	if w.Camera().Aspect != 2 {
		t.Errorf("aspect = %v, want 2", w.Camera().Aspect)
	}
	w.Apply(input.Action{Kind: input.KindResize})
	if w.Camera().Aspect != 2 {
		t.Errorf("zero resize changed aspect to %v", w.Camera().Aspect)
	}

	fov := w.Camera().FOV
	w.Apply(input.Action{Kind: input.KindZoomIn})
	if w.Camera().FOV != fov-1 {
		t.Errorf("zoom in: fov = %v", w.Camera().FOV)
	}
	w.Apply(input.Action{Kind: input.KindZoomOut})
	w.Apply(input.Action{Kind: input.KindZoomOut})
	if w.Camera().FOV != fov+1 {
		t.Errorf("zoom out: fov = %v", w.Camera().FOV)
	}
}

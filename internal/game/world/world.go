// Package world holds the viewer state that changes from frame to frame:
// camera, level of detail, and the terrain index list derived from them.
// It has no GL dependency.
package world

import (
	"errors"
	"fmt"
	stdmath "math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
	"github.com/Faultbox/meadow/pkg/noise"
)

// Frame is everything the renderer needs for one tick. Indices is only
// valid until the next Step.
type Frame struct {
	Indices    []uint32
	View       math.Mat4
	Projection math.Mat4
	Tick       uint64
	Wind       math.Vec3
	Level      int
	Mode       terrain.FillMode
}

// Options configures a World built over an existing height sampler.
type Options struct {
	Mesh         terrain.MeshConfig
	InitialLevel int
	Mode         terrain.FillMode
	Camera       camera.Config
	Wind         bool
}

// World owns the static terrain and the per-frame viewer state.
type World struct {
	mesh    *terrain.Mesh
	heights terrain.HeightSampler
	level   *terrain.Level
	camera  *camera.FlyCamera
	mode    terrain.FillMode
	wind    bool

	indices []uint32
	tick    uint64
	width   int
	height  int
	blocked bool

	log *zap.Logger
}

// ResolveSeed returns seed, or a time-based seed when seed is 0.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// New generates the noise field and terrain described by cfg. seed must be
// resolved already (see ResolveSeed); equal seeds give identical worlds.
func New(cfg *config.Config, seed int64) (*World, error) {
	rng := rand.New(rand.NewSource(seed))

	field, err := noise.New(cfg.World.NoiseSize, rng)
	if err != nil {
		return nil, fmt.Errorf("noise field: %w", err)
	}
	pool, err := terrain.NewJitterPool(cfg.World.GrassPool, rng)
	if err != nil {
		return nil, err
	}

	return Build(Options{
		Mesh: terrain.MeshConfig{
			WorldSize:    cfg.World.Size,
			GrassDensity: cfg.World.GrassDensity,
			Scale:        cfg.World.Scale,
		},
		InitialLevel: cfg.World.InitialLevel,
		Mode:         cfg.World.FillMode(),
		Camera: camera.Config{
			FOV:       cfg.Camera.FOV,
			Near:      cfg.Camera.Near,
			Far:       cfg.Camera.Far,
			Speed:     cfg.Camera.Speed,
			EyeHeight: cfg.Camera.EyeHeight,
			StartX:    cfg.Camera.StartX,
			StartZ:    cfg.Camera.StartZ,
			Width:     cfg.Graphics.Width,
			Height:    cfg.Graphics.Height,
		},
		Wind: cfg.Render.Wind,
	}, terrain.NoiseHeight{Field: field}, pool)
}

// Build creates a World over heights. The mesh is sampled once here.
func Build(opts Options, heights terrain.HeightSampler, pool []terrain.Jitter) (*World, error) {
	log := logger.Named("world")

	mesh, err := terrain.BuildMesh(opts.Mesh, heights, pool)
	if err != nil {
		return nil, err
	}
	level, err := terrain.NewLevel(opts.InitialLevel, mesh.MaxLevel())
	if err != nil {
		return nil, err
	}

	w := &World{
		mesh:    mesh,
		heights: heights,
		level:   level,
		camera:  camera.New(opts.Camera),
		mode:    opts.Mode,
		wind:    opts.Wind,
		indices: make([]uint32, 0, terrain.IndexCount(level.Value(), opts.Mode)),
		width:   opts.Camera.Width,
		height:  opts.Camera.Height,
		log:     log,
	}

	// Fail now rather than on the first frame if the grid cannot be subdivided.
	if w.indices, err = mesh.AppendIndices(w.indices, level.Value(), opts.Mode); err != nil {
		return nil, fmt.Errorf("terrain indices: %w", err)
	}

	log.Info("terrain built",
		zap.Int("world_size", mesh.WorldSize),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("grass", len(mesh.Grass)),
		zap.Int("level", level.Value()),
		zap.Int("max_level", level.Max()),
		zap.Stringer("mode", opts.Mode),
	)
	return w, nil
}

// Mesh returns the static terrain.
func (w *World) Mesh() *terrain.Mesh { return w.mesh }

// Camera returns the viewer camera.
func (w *World) Camera() *camera.FlyCamera { return w.camera }

// Level returns the current LOD level.
func (w *World) Level() int { return w.level.Value() }

// Apply routes one input action. Quit is left to the caller.
func (w *World) Apply(a input.Action) {
	switch a.Kind {
	case input.KindMove:
		w.setMove(a.Direction, a.Pressed)
	case input.KindLevelUp:
		if w.level.Increase() {
			w.log.Info("detail level raised", zap.Int("level", w.level.Value()))
		}
	case input.KindLevelDown:
		if w.level.Decrease() {
			w.log.Info("detail level lowered", zap.Int("level", w.level.Value()))
		}
	case input.KindZoomIn:
		w.camera.ZoomIn()
	case input.KindZoomOut:
		w.camera.ZoomOut()
	case input.KindDrag:
		if a.Pressed {
			// Anchor at the press point so the view does not jump.
			w.camera.SetDragging(false)
			w.camera.HandlePointer(a.X, a.Y, w.width, w.height)
		}
		w.camera.SetDragging(a.Pressed)
	case input.KindPointer:
		w.camera.HandlePointer(a.X, a.Y, w.width, w.height)
	case input.KindResize:
		if a.Width > 0 && a.Height > 0 {
			w.width, w.height = a.Width, a.Height
			w.camera.SetAspect(a.Width, a.Height)
		}
	}
}

func (w *World) setMove(dir input.Direction, pressed bool) {
	switch dir {
	case input.Forward:
		w.camera.Forward = pressed
	case input.Backward:
		w.camera.Backward = pressed
	case input.Left:
		w.camera.Left = pressed
	case input.Right:
		w.camera.Right = pressed
	}
}

// Step advances one tick: the camera moves and is grounded first, then the
// index list is rebuilt for the current level.
func (w *World) Step() (Frame, error) {
	w.tick++

	if err := w.camera.Update(w.heights); err != nil {
		if !errors.Is(err, noise.ErrOutOfRange) {
			return Frame{}, err
		}
		if !w.blocked {
			w.log.Debug("camera blocked at terrain edge", zap.Error(err))
		}
		w.blocked = true
	} else {
		w.blocked = false
	}

	indices, err := w.mesh.AppendIndices(w.indices[:0], w.level.Value(), w.mode)
	if err != nil {
		return Frame{}, fmt.Errorf("terrain indices: %w", err)
	}
	w.indices = indices

	return Frame{
		Indices:    indices,
		View:       w.camera.ViewMatrix(),
		Projection: w.camera.ProjectionMatrix(),
		Tick:       w.tick,
		Wind:       w.windAt(w.tick),
		Level:      w.level.Value(),
		Mode:       w.mode,
	}, nil
}

func (w *World) windAt(tick uint64) math.Vec3 {
	if !w.wind {
		return math.Vec3{}
	}
	return math.Vec3{X: float32(stdmath.Sin(float64(tick)/100)) / 2}
}

// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/framebuffer"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/scene/shaders"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width           int // Drawable size in pixels
	Height          int
	ClearColor      [3]float32
	Grass           bool
	BackfaceCulling bool
	LightDir        [3]float32 // Sun toward ground
}

// Renderer draws the scene into an offscreen framebuffer, then composites
// that color target onto the window with a full-screen quad.
type Renderer struct {
	config Config
	log    *zap.Logger

	target *framebuffer.Framebuffer
	scene  *scene.Scene

	composite *shader.Program
	locColor  int32
	quadVAO   uint32
	quadVBO   uint32
}

// New creates the renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	var err error
	r.target, err = framebuffer.New(int32(cfg.Width), int32(cfg.Height))
	if err != nil {
		return nil, err
	}

	r.scene, err = scene.New(scene.Config{Grass: cfg.Grass, BackfaceCulling: cfg.BackfaceCulling})
	if err != nil {
		r.target.Destroy()
		return nil, err
	}
	r.scene.LightDir = cfg.LightDir

	r.composite, err = shader.Compile("composite", shaders.CompositeVertexShader, shaders.CompositeFragmentShader)
	if err != nil {
		r.scene.Destroy()
		r.target.Destroy()
		return nil, err
	}
	r.locColor = r.composite.Uniform("uColor")
	r.createQuad()

	return r, nil
}

// createQuad builds the two triangles covering clip space.
func (r *Renderer) createQuad() {
	vertices := []float32{
		-1, -1,
		1, -1,
		1, 1,
		-1, -1,
		1, 1,
		-1, 1,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Load uploads the static terrain mesh.
func (r *Renderer) Load(mesh *terrain.Mesh) error {
	return r.scene.Load(mesh)
}

// Draw renders one frame: the scene with the given terrain indices into the
// offscreen target, then the composition pass onto the window.
func (r *Renderer) Draw(indices []uint32, view scene.View) error {
	if err := r.scene.SetIndices(indices); err != nil {
		return err
	}

	r.target.Bind()
	r.target.Clear(r.config.ClearColor)
	gl.Enable(gl.DEPTH_TEST)
	if err := r.scene.Render(view); err != nil {
		r.target.Unbind()
		return err
	}
	r.target.Unbind()

	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.Disable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.composite.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.target.ColorTexture())
	gl.Uniform1i(r.locColor, 0)

	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	return nil
}

// Capture reads back the last rendered frame as bottom-up RGBA rows.
func (r *Renderer) Capture() (pixels []byte, width, height int) {
	w, h := r.target.Size()
	return r.target.ReadPixels(), int(w), int(h)
}

// Resize handles a drawable size change.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	r.target.Resize(int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	r.composite.Delete()
	r.scene.Destroy()
	r.target.Destroy()
}

package scene

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/scene/shaders"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/pkg/math"
)

// TerrainRenderer draws the static terrain vertex buffer with an index list
// that is replaced whenever the level of detail changes.
type TerrainRenderer struct {
	program *shader.Program

	locViewProj  int32
	locLightDir  int32
	locWireframe int32

	vao uint32
	vbo uint32
	ebo uint32

	indexCount int32
	indexCap   int // bytes allocated in ebo
}

// NewTerrainRenderer compiles the terrain program.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	program, err := shader.Compile("terrain", shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, err
	}

	return &TerrainRenderer{
		program:      program,
		locViewProj:  program.Uniform("uViewProj"),
		locLightDir:  program.Uniform("uLightDir"),
		locWireframe: program.Uniform("uWireframe"),
	}, nil
}

// Upload copies the terrain vertices to the GPU. It is called once per mesh.
func (tr *TerrainRenderer) Upload(vertices []terrain.Vertex) error {
	if len(vertices) == 0 {
		return errors.New("terrain renderer: no vertices")
	}
	tr.clearMesh()

	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	stride := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*stride, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(stride), 0)
	gl.EnableVertexAttribArray(0)

	// TexCoord (location 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, int32(stride), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)

	gl.BindVertexArray(0)
	return nil
}

// SetIndices replaces the index list. The buffer is only reallocated when it
// grows.
func (tr *TerrainRenderer) SetIndices(indices []uint32) error {
	if tr.vao == 0 {
		return errors.New("terrain renderer: indices set before upload")
	}
	tr.indexCount = int32(len(indices))
	if len(indices) == 0 {
		return nil
	}

	size := len(indices) * 4
	gl.BindVertexArray(tr.vao)
	if size > tr.indexCap {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, size, unsafe.Pointer(&indices[0]), gl.DYNAMIC_DRAW)
		tr.indexCap = size
	} else {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, size, unsafe.Pointer(&indices[0]))
	}
	gl.BindVertexArray(0)
	return nil
}

// Render draws the current index list as triangles or lines.
func (tr *TerrainRenderer) Render(viewProj math.Mat4, lightDir [3]float32, mode terrain.FillMode) error {
	if tr.vao == 0 || tr.indexCount == 0 {
		return nil
	}

	var prim uint32
	var wire int32
	switch mode {
	case terrain.FillTriangles:
		prim = gl.TRIANGLES
	case terrain.FillWireframe:
		prim, wire = gl.LINES, 1
	default:
		return fmt.Errorf("terrain renderer: unknown fill mode %d", mode)
	}

	tr.program.Use()
	gl.UniformMatrix4fv(tr.locViewProj, 1, false, viewProj.Ptr())
	gl.Uniform3f(tr.locLightDir, lightDir[0], lightDir[1], lightDir[2])
	gl.Uniform1i(tr.locWireframe, wire)

	gl.BindVertexArray(tr.vao)
	gl.DrawElements(prim, tr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	return nil
}

func (tr *TerrainRenderer) clearMesh() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	tr.indexCount = 0
	tr.indexCap = 0
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearMesh()
	tr.program.Delete()
}

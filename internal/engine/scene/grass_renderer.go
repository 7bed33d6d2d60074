package scene

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/scene/shaders"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/pkg/math"
)

// bladeVertices is the unit blade drawn for every instance: two base corners
// and a tip, in blade space (x across, y up).
var bladeVertices = []float32{
	-1, 0, 0,
	1, 0, 0,
	0, 1, 0,
}

// GrassRenderer draws all grass blades in one instanced call.
type GrassRenderer struct {
	program *shader.Program

	locViewProj int32
	locWind     int32

	vao         uint32
	bladeVBO    uint32
	instanceVBO uint32
	instances   int32
}

// NewGrassRenderer compiles the grass program and uploads the blade mesh.
func NewGrassRenderer() (*GrassRenderer, error) {
	program, err := shader.Compile("grass", shaders.GrassVertexShader, shaders.GrassFragmentShader)
	if err != nil {
		return nil, err
	}

	gr := &GrassRenderer{
		program:     program,
		locViewProj: program.Uniform("uViewProj"),
		locWind:     program.Uniform("uWind"),
	}

	gl.GenVertexArrays(1, &gr.vao)
	gl.BindVertexArray(gr.vao)

	gl.GenBuffers(1, &gr.bladeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gr.bladeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(bladeVertices)*4, unsafe.Pointer(&bladeVertices[0]), gl.STATIC_DRAW)

	// Blade position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &gr.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gr.instanceVBO)
	stride := int32(unsafe.Sizeof(terrain.GrassInstance{}))

	// Offset (location 1), one per instance
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribDivisor(1, 1)

	// Shade (location 2), one per instance
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribDivisor(2, 1)

	gl.BindVertexArray(0)
	return gr, nil
}

// Upload replaces the instance buffer.
func (gr *GrassRenderer) Upload(instances []terrain.GrassInstance) {
	gr.instances = int32(len(instances))
	if len(instances) == 0 {
		return
	}
	size := len(instances) * int(unsafe.Sizeof(terrain.GrassInstance{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, gr.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&instances[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws every blade, bent by wind.
func (gr *GrassRenderer) Render(viewProj math.Mat4, wind math.Vec3) {
	if gr.instances == 0 {
		return
	}

	gr.program.Use()
	gl.UniformMatrix4fv(gr.locViewProj, 1, false, viewProj.Ptr())
	gl.Uniform3f(gr.locWind, wind.X, wind.Y, wind.Z)

	gl.BindVertexArray(gr.vao)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, 3, gr.instances)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (gr *GrassRenderer) Destroy() {
	if gr.vao != 0 {
		gl.DeleteVertexArrays(1, &gr.vao)
		gr.vao = 0
	}
	if gr.bladeVBO != 0 {
		gl.DeleteBuffers(1, &gr.bladeVBO)
		gr.bladeVBO = 0
	}
	if gr.instanceVBO != 0 {
		gl.DeleteBuffers(1, &gr.instanceVBO)
		gr.instanceVBO = 0
	}
	gr.program.Delete()
}

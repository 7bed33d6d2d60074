// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for terrain rendering.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the fragment shader for terrain rendering.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// GrassVertexShader places and sways one blade per instance.
//
//go:embed grass.vert
var GrassVertexShader string

// GrassFragmentShader is the fragment shader for grass blades.
//
//go:embed grass.frag
var GrassFragmentShader string

// CompositeVertexShader draws the full-screen quad of the composition pass.
//
//go:embed composite.vert
var CompositeVertexShader string

// CompositeFragmentShader samples the offscreen color target.
//
//go:embed composite.frag
var CompositeFragmentShader string

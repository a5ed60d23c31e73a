// Package shaders embeds the scene's two-section shader files.
package shaders

import "embed"

// Cube and Axes are the file names of the built-in shaders.
const (
	Cube = "Cube.shader"
	Axes = "Axes.shader"
)

// FS holds the built-in shader files.
//
//go:embed *.shader
var FS embed.FS

// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "github.com/go-gl/mathgl/mgl32"

// Color is a linear RGB color with components in the range [0, 1].
// It is uploaded to shaders as a vec3.
type Color struct {
	R, G, B float32
}

// Palette colors.
var (
	ColorWhite   = Color{1, 1, 1}
	ColorYellow  = Color{1, 1, 0}
	ColorGreen   = Color{0, 1, 0}
	ColorMagenta = Color{1, 0, 1}
	ColorRed     = Color{1, 0, 0}
	ColorBlack   = Color{0, 0, 0}
)

// Vec3 returns the color as an mgl32.Vec3 for uniform uploads.
//
// Returns:
//   - mgl32.Vec3: the color as (R, G, B)
func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// RGBA returns the color with the given alpha, used for clear colors.
//
// Parameters:
//   - a: the alpha component
//
// Returns:
//   - r, g, b, a: the color components
func (c Color) RGBA(a float32) (float32, float32, float32, float32) {
	return c.R, c.G, c.B, a
}

package core

import "image/color"

// Color is an RGBA color with unassociated (straight) alpha.
// Channel values are linear unless a display encoding has been applied.
type Color struct {
	R, G, B, A float64
}

// Transparent is the miss output of the ray marcher: fully transparent black.
var Transparent = Color{}

// NewColor creates an opaque color from an RGB vector
func NewColor(rgb Vec3) Color {
	return Color{R: rgb.X, G: rgb.Y, B: rgb.Z, A: 1.0}
}

// RGB returns the color channels as a vector, dropping alpha
func (c Color) RGB() Vec3 {
	return Vec3{X: c.R, Y: c.G, Z: c.B}
}

// NRGBA converts the color to an 8-bit straight-alpha image color,
// clamping each channel to [0,1]
func (c Color) NRGBA() color.NRGBA {
	clamp8 := func(v float64) uint8 {
		return uint8(max(0, min(1, v)) * 255.0)
	}
	return color.NRGBA{
		R: clamp8(c.R),
		G: clamp8(c.G),
		B: clamp8(c.B),
		A: clamp8(c.A),
	}
}

package shading

import (
	"math"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
)

// Reinhard is the classic x/(1+x) tone-mapping operator, applied per channel
type Reinhard struct{}

// Map implements the ToneMapper interface
func (Reinhard) Map(c core.Vec3) core.Vec3 {
	return core.Vec3{
		X: c.X / (1.0 + c.X),
		Y: c.Y / (1.0 + c.Y),
		Z: c.Z / (1.0 + c.Z),
	}
}

// SRGBFromLinear applies the piecewise sRGB display encoding to a linear
// RGB color. Inputs are expected in [0,1]; values outside are clamped.
func SRGBFromLinear(c core.Vec3) core.Vec3 {
	return core.Vec3{
		X: srgbChannel(c.X),
		Y: srgbChannel(c.Y),
		Z: srgbChannel(c.Z),
	}
}

func srgbChannel(x float64) float64 {
	x = max(0, min(1, x))
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math.Pow(x, 1.0/2.4) - 0.055
}

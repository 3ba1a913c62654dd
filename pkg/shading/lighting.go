package shading

import (
	"math"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
)

// PointLight is a single point light with a Blinn-Phong specular lobe whose
// exponent is derived from roughness and whose diffuse term is attenuated
// by metalness. The view position is part of the light configuration since
// the lighting contract only receives surface point and normal.
type PointLight struct {
	Position  core.Vec3 // world-space light position
	ViewPos   core.Vec3 // world-space eye position for the specular term
	Color     core.Vec3 // light color, linear RGB
	Intensity float64   // radiance scale
	Ambient   float64   // constant ambient fraction, scaled by occlusion
}

// NewPointLight creates a white point light with sensible defaults
func NewPointLight(position, viewPos core.Vec3) *PointLight {
	return &PointLight{
		Position:  position,
		ViewPos:   viewPos,
		Color:     core.NewVec3(1, 1, 1),
		Intensity: 1.0,
		Ambient:   0.15,
	}
}

// Shade implements the Lighting interface
func (l *PointLight) Shade(mat Material, point, normal core.Vec3) core.Vec3 {
	n := normal.Normalize()
	lightDir := l.Position.Subtract(point).Normalize()
	viewDir := l.ViewPos.Subtract(point).Normalize()
	halfDir := lightDir.Add(viewDir).Normalize()

	ndotl := math.Max(n.Dot(lightDir), 0)
	ndoth := math.Max(n.Dot(halfDir), 0)

	// Metals have no diffuse reflection; dielectrics keep the full albedo
	diffuse := mat.BaseColor.Multiply(ndotl * (1.0 - mat.Metallic))

	// Rough surfaces get a broad, dim lobe; smooth surfaces a tight one.
	// Exponent range roughly [2, 512] over roughness [1, 0].
	shininess := 2.0 + 510.0*math.Pow(1.0-mat.Roughness, 2)
	specStrength := math.Pow(ndoth, shininess)

	// Metallic surfaces tint the highlight with the base color
	white := core.NewVec3(1, 1, 1)
	specColor := white.Multiply(1.0 - mat.Metallic).
		Add(mat.BaseColor.Multiply(mat.Metallic))
	specular := specColor.Multiply(specStrength * (1.0 - mat.Roughness*0.5))

	ambient := mat.BaseColor.Multiply(l.Ambient * mat.Occlusion)

	lit := diffuse.Add(specular).MultiplyVec(l.Color).Multiply(l.Intensity)
	return ambient.Add(lit)
}

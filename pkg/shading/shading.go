// Package shading provides the lighting, tone-mapping and display-encoding
// primitives used to color isosurface hit points. Lighting and tone mapping
// are strategy interfaces so alternative models can be substituted without
// touching the marching algorithm.
package shading

import "github.com/volmarch/go-volume-raymarcher/pkg/core"

// Material bundles the surface parameters handed to the lighting model
type Material struct {
	BaseColor core.Vec3 // linear RGB albedo
	Metallic  float64   // 0 = dielectric, 1 = fully metallic
	Roughness float64   // 0 = perfectly smooth, 1 = fully rough
	Occlusion float64   // ambient occlusion factor, 1 = unoccluded
}

// Lighting computes the lit color of a surface point. Implementations must
// be deterministic: identical inputs produce identical output.
type Lighting interface {
	Shade(mat Material, point, normal core.Vec3) core.Vec3
}

// ToneMapper compresses HDR radiance into a displayable range
type ToneMapper interface {
	Map(c core.Vec3) core.Vec3
}

// Package marcher implements fixed-step volumetric ray marching against a
// scalar field, locating the first isosurface crossing along the ray and
// shading it with injectable lighting, tone-mapping and encoding primitives.
package marcher

import (
	"fmt"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
	"github.com/volmarch/go-volume-raymarcher/pkg/shading"
	"github.com/volmarch/go-volume-raymarcher/pkg/volume"
)

// MaxSteps is the hard iteration budget per ray. The loop never takes more
// samples than this regardless of any other condition, bounding worst-case
// latency per invocation.
const MaxSteps = 200

// boundsMargin expands the half-extent comparison by 0.1% per axis so rays
// sampling right at the volume faces do not flicker on floating-point edge
// cases.
const boundsMargin = 0.501

// SurfaceNormal is the fixed normal used for every hit. The scalar field
// carries no gradient or per-voxel normals.
var SurfaceNormal = core.NewVec3(0, 1, 0)

// SurfaceMaterial is the fixed placeholder surface used for every hit
var SurfaceMaterial = shading.Material{
	BaseColor: core.NewVec3(1.0, 0.5, 0.5),
	Metallic:  0.5,
	Roughness: 0.6,
	Occlusion: 1.0,
}

// Config holds the per-draw marching parameters. Lighting, tone mapping and
// display encoding are extension points; nil values fall back to the
// defaults (point light, Reinhard, sRGB).
type Config struct {
	Threshold float64                      // isosurface level in the field's value range
	Lighting  shading.Lighting             // lit color for a hit point
	ToneMap   shading.ToneMapper           // HDR compression
	Encode    func(core.Vec3) core.Vec3    // display encoding, linear -> display RGB
}

// Marcher steps rays through one volume. Immutable after construction and
// safe for concurrent use: marching keeps all state on the stack.
type Marcher struct {
	volume    *volume.Volume
	threshold float64
	stepLen   float64
	limit     core.Vec3 // per-axis out-of-bounds distance from the origin
	lighting  shading.Lighting
	toneMap   shading.ToneMapper
	encode    func(core.Vec3) core.Vec3
}

// New creates a marcher for the given volume. The volume configuration is
// validated here; the marching loop itself has no error channel and always
// produces a defined color.
func New(vol *volume.Volume, cfg Config) (*Marcher, error) {
	if vol == nil {
		return nil, fmt.Errorf("marcher requires a volume")
	}
	if err := vol.Validate(); err != nil {
		return nil, fmt.Errorf("invalid volume: %w", err)
	}

	lighting := cfg.Lighting
	if lighting == nil {
		lighting = shading.NewPointLight(core.NewVec3(2, 4, 3), core.NewVec3(0, 0, 5))
	}
	toneMap := cfg.ToneMap
	if toneMap == nil {
		toneMap = shading.Reinhard{}
	}
	encode := cfg.Encode
	if encode == nil {
		encode = shading.SRGBFromLinear
	}

	return &Marcher{
		volume:    vol,
		threshold: cfg.Threshold,
		stepLen:   vol.Size.Length() / float64(MaxSteps),
		limit:     vol.Size.Multiply(boundsMargin),
		lighting:  lighting,
		toneMap:   toneMap,
		encode:    encode,
	}, nil
}

// StepLength returns the fixed world-space step size: ‖size‖ / MaxSteps.
// A single scalar shared by all rays, chosen so the worst-case diagonal
// traversal is adequately sampled.
func (m *Marcher) StepLength() float64 {
	return m.stepLen
}

// Threshold returns the isosurface level
func (m *Marcher) Threshold() float64 {
	return m.threshold
}

// March walks a ray from the entry point pos away from the camera through
// the volume and returns exactly one color: the shaded isosurface hit, or
// transparent black when the ray exits the bounds or exhausts the step
// budget without crossing the threshold.
func (m *Marcher) March(pos, cameraPos core.Vec3) core.Color {
	color, _ := m.MarchCount(pos, cameraPos)
	return color
}

// MarchCount is March plus the number of field samples taken, for render
// statistics
func (m *Marcher) MarchCount(pos, cameraPos core.Vec3) (core.Color, int) {
	step := pos.Subtract(cameraPos).Normalize().Multiply(m.stepLen)
	p := pos

	for i := 0; i < MaxSteps; i++ {
		// Termination test comes before sampling: the last loop index is
		// always a miss, and so is any position past the expanded bounds
		if i == MaxSteps-1 || m.outOfBounds(p) {
			return core.Transparent, i
		}

		if m.volume.SampleWorld(p) >= m.threshold {
			return m.shadeHit(p), i + 1
		}

		p = p.Add(step)
	}

	return core.Transparent, MaxSteps - 1
}

// outOfBounds reports whether p lies at or beyond the expanded half-extent
// on any axis. The margin position itself counts as out of bounds, so a
// sample exactly on the 0.501×size boundary is never taken.
func (m *Marcher) outOfBounds(p core.Vec3) bool {
	a := p.Abs()
	return a.X >= m.limit.X || a.Y >= m.limit.Y || a.Z >= m.limit.Z
}

// shadeHit produces the final display color for an isosurface hit at p
func (m *Marcher) shadeHit(p core.Vec3) core.Color {
	lit := m.lighting.Shade(SurfaceMaterial, p, SurfaceNormal)
	mapped := m.toneMap.Map(lit)
	encoded := m.encode(mapped)
	return core.Color{R: encoded.X, G: encoded.Y, B: encoded.Z, A: 1.0}
}

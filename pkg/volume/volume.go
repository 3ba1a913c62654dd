package volume

import (
	"fmt"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
)

// Volume describes a scalar field mapped onto a world-space box centered at
// the origin with total extent Size along each axis. Immutable during a
// render; owned by the host (scene) that built it.
type Volume struct {
	Size  core.Vec3
	Field ScalarField
}

// NewVolume creates a volume after validating its configuration.
// Degenerate extents are rejected here rather than checked during marching:
// the sampling-coordinate mapping divides by Size, so zero or negative
// components would produce undefined results.
func NewVolume(size core.Vec3, field ScalarField) (*Volume, error) {
	v := &Volume{Size: size, Field: field}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks the configuration preconditions
func (v *Volume) Validate() error {
	if v.Field == nil {
		return fmt.Errorf("volume has no scalar field")
	}
	if v.Size.X <= 0 || v.Size.Y <= 0 || v.Size.Z <= 0 {
		return fmt.Errorf("volume extents must be strictly positive, got %v", v.Size)
	}
	return nil
}

// Bounds returns the world-space bounding box of the volume
func (v *Volume) Bounds() core.AABB {
	return core.NewCenteredAABB(v.Size)
}

// SampleWorld reads the field at a world-space position by mapping it into
// the normalized sampling domain: p/size + 0.5
func (v *Volume) SampleWorld(p core.Vec3) float64 {
	uvw := p.DivideVec(v.Size)
	return v.Field.Sample(uvw.X+0.5, uvw.Y+0.5, uvw.Z+0.5)
}

package scene

import (
	"github.com/volmarch/go-volume-raymarcher/pkg/core"
	"github.com/volmarch/go-volume-raymarcher/pkg/renderer"
	"github.com/volmarch/go-volume-raymarcher/pkg/volume"
)

// NewSphereScene creates a scene with a solid sphere of normalized radius
// 0.35 centered in a 2x2x2 volume.
func NewSphereScene(opts ...Options) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0.5, 4),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	return build(
		volume.SphereField(0.35, 1.0, 0.0),
		core.NewVec3(2, 2, 2),
		0.5,
		cameraConfig,
		o,
	)
}

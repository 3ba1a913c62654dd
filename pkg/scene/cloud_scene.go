package scene

import (
	"github.com/volmarch/go-volume-raymarcher/pkg/core"
	"github.com/volmarch/go-volume-raymarcher/pkg/renderer"
	"github.com/volmarch/go-volume-raymarcher/pkg/volume"
)

const cloudGridResolution = 64

// NewCloudScene creates a blobby metaball cluster baked into a grid field.
// Baking keeps the CPU and GPU paths sampling identical data.
func NewCloudScene(opts ...Options) (*Scene, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	resolution := cloudGridResolution
	if o.GridResolution > 0 {
		resolution = o.GridResolution
	}

	grid, err := volume.NewGridFieldFromFunc(resolution, resolution, resolution,
		volume.MetaballField().Sample)
	if err != nil {
		return nil, err
	}

	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 1, 4.5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	return build(grid, core.NewVec3(2.4, 2, 2.4), 0.25, cameraConfig, o)
}

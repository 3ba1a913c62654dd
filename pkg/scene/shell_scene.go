package scene

import (
	"github.com/volmarch/go-volume-raymarcher/pkg/core"
	"github.com/volmarch/go-volume-raymarcher/pkg/renderer"
	"github.com/volmarch/go-volume-raymarcher/pkg/volume"
)

// NewShellScene creates a hollow sphere in an anisotropic volume. The shell
// interior is visible through the open poles when the threshold is raised.
func NewShellScene(opts ...Options) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(2.5, 1.5, 3.5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}

	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	return build(
		volume.ShellField(0.25, 0.42, 1.0, 0.0),
		core.NewVec3(2.5, 2, 2.5),
		0.5,
		cameraConfig,
		o,
	)
}

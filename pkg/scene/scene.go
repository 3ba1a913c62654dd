package scene

import (
	"fmt"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
	"github.com/volmarch/go-volume-raymarcher/pkg/marcher"
	"github.com/volmarch/go-volume-raymarcher/pkg/renderer"
	"github.com/volmarch/go-volume-raymarcher/pkg/shading"
	"github.com/volmarch/go-volume-raymarcher/pkg/volume"
)

// Scene bundles everything needed to render one volume: the camera, the
// volume with its scalar field, and a marcher configured for it.
type Scene struct {
	Camera       *renderer.Camera
	Volume       *volume.Volume
	Marcher      *marcher.Marcher
	CameraConfig renderer.CameraConfig
	Threshold    float64
	LightPos     core.Vec3
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera { return s.Camera }

// GetVolume implements renderer.Scene
func (s *Scene) GetVolume() *volume.Volume { return s.Volume }

// GetMarcher implements renderer.Scene
func (s *Scene) GetMarcher() *marcher.Marcher { return s.Marcher }

// Options tunes a built-in scene without replacing its defaults
type Options struct {
	CameraOverrides renderer.CameraConfig // Zero fields keep the scene default
	Threshold       float64               // 0 keeps the scene default
	GridResolution  int                   // 0 keeps the scene default
}

// MergeCameraConfig merges override values into a default config.
// Zero-valued override fields keep the default.
func MergeCameraConfig(defaults, overrides renderer.CameraConfig) renderer.CameraConfig {
	merged := defaults
	if overrides.Center.Length() > 0 {
		merged.Center = overrides.Center
	}
	if overrides.LookAt.Length() > 0 {
		merged.LookAt = overrides.LookAt
	}
	if overrides.Up.Length() > 0 {
		merged.Up = overrides.Up
	}
	if overrides.Width > 0 {
		merged.Width = overrides.Width
	}
	if overrides.AspectRatio > 0 {
		merged.AspectRatio = overrides.AspectRatio
	}
	if overrides.VFov > 0 {
		merged.VFov = overrides.VFov
	}
	if overrides.Near > 0 {
		merged.Near = overrides.Near
	}
	if overrides.Far > 0 {
		merged.Far = overrides.Far
	}
	return merged
}

// defaultLightPos is shared by the built-in scenes
var defaultLightPos = core.NewVec3(2, 4, 3)

// build assembles a scene from a field and per-scene defaults
func build(field volume.ScalarField, size core.Vec3, threshold float64,
	cameraConfig renderer.CameraConfig, opts Options) (*Scene, error) {

	cameraConfig = MergeCameraConfig(cameraConfig, opts.CameraOverrides)
	if opts.Threshold > 0 {
		threshold = opts.Threshold
	}

	vol, err := volume.NewVolume(size, field)
	if err != nil {
		return nil, fmt.Errorf("scene volume: %w", err)
	}

	camera := renderer.NewCamera(cameraConfig)
	light := shading.NewPointLight(defaultLightPos, camera.Position())

	m, err := marcher.New(vol, marcher.Config{
		Threshold: threshold,
		Lighting:  light,
	})
	if err != nil {
		return nil, fmt.Errorf("scene marcher: %w", err)
	}

	return &Scene{
		Camera:       camera,
		Volume:       vol,
		Marcher:      m,
		CameraConfig: cameraConfig,
		Threshold:    threshold,
		LightPos:     defaultLightPos,
	}, nil
}

// Grid bakes the scene's field into a grid for GPU upload. Fields that are
// already grids are returned as is.
func (s *Scene) Grid(resolution int) (*volume.GridField, error) {
	if grid, ok := s.Volume.Field.(*volume.GridField); ok {
		return grid, nil
	}
	if resolution <= 0 {
		resolution = 64
	}
	return volume.NewGridFieldFromFunc(resolution, resolution, resolution, s.Volume.Field.Sample)
}

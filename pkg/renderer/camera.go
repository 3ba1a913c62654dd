package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
)

// CameraConfig contains camera setup parameters
type CameraConfig struct {
	Center      core.Vec3 // camera position in world space
	LookAt      core.Vec3 // point the camera looks at
	Up          core.Vec3 // up direction, (0,1,0) if zero
	Width       int       // image width in pixels
	AspectRatio float64   // width / height
	VFov        float64   // vertical field of view in degrees
	Near        float64   // near clip plane for the projection matrix
	Far         float64   // far clip plane for the projection matrix
}

// Camera generates primary rays for the CPU path and view/projection
// matrices for the GPU uniform block. Immutable for the duration of a
// frame; the host updates it once per frame by building a new one.
type Camera struct {
	config CameraConfig
	height int

	// Precomputed viewport basis for ray generation
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	forward         core.Vec3
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	if config.Up.Length() == 0 {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.Near == 0 {
		config.Near = 0.1
	}
	if config.Far == 0 {
		config.Far = 100.0
	}

	height := int(float64(config.Width) / config.AspectRatio)

	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal camera basis
	w := config.Center.Subtract(config.LookAt).Normalize() // backward
	u := config.Up.Cross(w).Normalize()                    // right
	v := w.Cross(u)                                        // up

	origin := config.Center
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		config:          config,
		height:          height,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		forward:         w.Negate(),
	}
}

// GetRay generates the primary ray through the center of pixel (i, j).
// Deterministic: the same pixel always gets the same ray.
func (c *Camera) GetRay(i, j int) core.Ray {
	s := (float64(i) + 0.5) / float64(c.config.Width)
	t := 1.0 - (float64(j)+0.5)/float64(c.height) // image y grows downward

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}

// Position returns the camera's world-space position
func (c *Camera) Position() core.Vec3 {
	return c.origin
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.height
}

// GetCameraForward returns the normalized viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}

// ViewMatrix returns the world-to-camera transform
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(
		toMgl(c.config.Center),
		toMgl(c.config.LookAt),
		toMgl(c.config.Up),
	)
}

// ProjectionMatrix returns the perspective projection transform
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(
		mgl32.DegToRad(float32(c.config.VFov)),
		float32(c.config.AspectRatio),
		float32(c.config.Near),
		float32(c.config.Far),
	)
}

// ViewProjectionMatrix returns projection × view
func (c *Camera) ViewProjectionMatrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

func toMgl(v core.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

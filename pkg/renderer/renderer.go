package renderer

import (
	"image"
	"math"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
	"github.com/volmarch/go-volume-raymarcher/pkg/marcher"
	"github.com/volmarch/go-volume-raymarcher/pkg/volume"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetVolume() *volume.Volume
	GetMarcher() *marcher.Marcher
}

// VolumeRenderer turns a scene into pixels: every covered pixel gets a
// primary ray, an entry point on the volume's bounding box, and one march.
// Stateless across pixels; safe for concurrent use over disjoint bounds.
type VolumeRenderer struct {
	scene  Scene
	width  int
	height int
}

// NewVolumeRenderer creates a renderer for the given scene
func NewVolumeRenderer(scene Scene) *VolumeRenderer {
	camera := scene.GetCamera()
	return &VolumeRenderer{
		scene:  scene,
		width:  camera.Width(),
		height: camera.Height(),
	}
}

// Width returns the output image width
func (r *VolumeRenderer) Width() int { return r.width }

// Height returns the output image height
func (r *VolumeRenderer) Height() int { return r.height }

// renderPixel computes the color of a single pixel. Rays that never touch
// the volume's bounding box are misses without any marching; rays that do
// are marched from their entry point on the box surface, standing in for
// the rasterized bounding geometry of the GPU pipeline.
func (r *VolumeRenderer) renderPixel(i, j int) (core.Color, int) {
	camera := r.scene.GetCamera()
	ray := camera.GetRay(i, j)

	bounds := r.scene.GetVolume().Bounds()
	tNear, _, hit := bounds.Intersect(ray, 0, math.Inf(1))
	if !hit {
		return core.Transparent, 0
	}

	entry := ray.At(tNear)
	return r.scene.GetMarcher().MarchCount(entry, ray.Origin)
}

// RenderBounds renders pixels within the given bounds into the shared
// image. A stride greater than one renders every stride-th pixel and fills
// its block, producing the coarse preview passes. Bounds of concurrent
// calls must not overlap.
func (r *VolumeRenderer) RenderBounds(bounds image.Rectangle, stride int, img *image.NRGBA) RenderStats {
	if stride < 1 {
		stride = 1
	}

	var stats RenderStats
	for j := bounds.Min.Y; j < bounds.Max.Y; j += stride {
		for i := bounds.Min.X; i < bounds.Max.X; i += stride {
			color, samples := r.renderPixel(i, j)
			stats.addPixel(color.A > 0, samples)

			nrgba := color.NRGBA()
			for bj := j; bj < min(j+stride, bounds.Max.Y); bj++ {
				for bi := i; bi < min(i+stride, bounds.Max.X); bi++ {
					img.SetNRGBA(bi, bj, nrgba)
				}
			}
		}
	}
	stats.finalize()
	return stats
}

// RenderPass renders one full-resolution frame sequentially
func (r *VolumeRenderer) RenderPass() (*image.NRGBA, RenderStats) {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	stats := r.RenderBounds(img.Bounds(), 1, img)
	return img, stats
}

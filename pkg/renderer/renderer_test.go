package renderer

import (
	"image"
	"testing"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
	"github.com/volmarch/go-volume-raymarcher/pkg/marcher"
	"github.com/volmarch/go-volume-raymarcher/pkg/volume"
)

// testScene is a minimal Scene implementation for renderer tests
type testScene struct {
	camera  *Camera
	volume  *volume.Volume
	marcher *marcher.Marcher
}

func (s *testScene) GetCamera() *Camera           { return s.camera }
func (s *testScene) GetVolume() *volume.Volume    { return s.volume }
func (s *testScene) GetMarcher() *marcher.Marcher { return s.marcher }

// newTestScene builds a 64x64 view of a centered sphere
func newTestScene(t *testing.T, field volume.ScalarField) *testScene {
	t.Helper()

	vol, err := volume.NewVolume(core.NewVec3(2, 2, 2), field)
	if err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}

	m, err := marcher.New(vol, marcher.Config{Threshold: 0.5})
	if err != nil {
		t.Fatalf("Failed to create marcher: %v", err)
	}

	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Width:       64,
		AspectRatio: 1.0,
		VFov:        40.0,
	})

	return &testScene{camera: camera, volume: vol, marcher: m}
}

func TestVolumeRenderer_SphereCoverage(t *testing.T) {
	scene := newTestScene(t, volume.SphereField(0.4, 1.0, 0.0))
	renderer := NewVolumeRenderer(scene)

	img, stats := renderer.RenderPass()

	if stats.TotalPixels != 64*64 {
		t.Errorf("Expected %d pixels, got %d", 64*64, stats.TotalPixels)
	}
	if stats.HitPixels == 0 {
		t.Fatal("Expected the sphere to cover some pixels")
	}
	if stats.MissPixels == 0 {
		t.Fatal("Expected background pixels around the sphere")
	}

	// The center pixel looks straight through the sphere
	center := img.NRGBAAt(32, 32)
	if center.A != 255 {
		t.Errorf("Expected opaque center pixel, got alpha %d", center.A)
	}

	// The corner rays miss the bounding box entirely
	corner := img.NRGBAAt(0, 0)
	if corner != (img.NRGBAAt(63, 63)) {
		t.Errorf("Expected symmetric corners, got %v and %v", corner, img.NRGBAAt(63, 63))
	}
	if corner.A != 0 {
		t.Errorf("Expected transparent corner pixel, got alpha %d", corner.A)
	}
}

func TestVolumeRenderer_EmptyField(t *testing.T) {
	scene := newTestScene(t, volume.UniformField(0))
	renderer := NewVolumeRenderer(scene)

	img, stats := renderer.RenderPass()

	if stats.HitPixels != 0 {
		t.Errorf("Expected no hits in an empty field, got %d", stats.HitPixels)
	}
	for i := 0; i < len(img.Pix); i++ {
		if img.Pix[i] != 0 {
			t.Fatal("Expected a fully transparent image")
		}
	}
}

func TestVolumeRenderer_Deterministic(t *testing.T) {
	scene := newTestScene(t, volume.SphereField(0.4, 1.0, 0.0))
	renderer := NewVolumeRenderer(scene)

	first, _ := renderer.RenderPass()
	second, _ := renderer.RenderPass()

	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatalf("Render is not deterministic at byte %d", i)
		}
	}
}

func TestVolumeRenderer_StrideFillsBlocks(t *testing.T) {
	scene := newTestScene(t, volume.SphereField(0.4, 1.0, 0.0))
	renderer := NewVolumeRenderer(scene)

	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	stats := renderer.RenderBounds(img.Bounds(), 4, img)

	// One march per 4x4 block
	if stats.TotalPixels != 16*16 {
		t.Errorf("Expected %d marched pixels at stride 4, got %d", 16*16, stats.TotalPixels)
	}

	// Every pixel inside a block carries the block's color
	for j := 0; j < 64; j += 4 {
		for i := 0; i < 64; i += 4 {
			want := img.NRGBAAt(i, j)
			for bj := j; bj < j+4; bj++ {
				for bi := i; bi < i+4; bi++ {
					if got := img.NRGBAAt(bi, bj); got != want {
						t.Fatalf("Block (%d,%d) not uniform: %v vs %v at (%d,%d)",
							i, j, want, got, bi, bj)
					}
				}
			}
		}
	}
}

func TestVolumeRenderer_SampleBudget(t *testing.T) {
	scene := newTestScene(t, volume.UniformField(0.1))
	renderer := NewVolumeRenderer(scene)

	_, stats := renderer.RenderPass()

	if stats.MaxSamplesUsed > marcher.MaxSteps {
		t.Errorf("Sample budget exceeded: %d", stats.MaxSamplesUsed)
	}
	if stats.AverageSamples <= 0 {
		t.Errorf("Expected nonzero average samples, got %f", stats.AverageSamples)
	}
}

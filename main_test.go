package main

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/volmarch/go-volume-raymarcher/pkg/renderer"
	"github.com/volmarch/go-volume-raymarcher/pkg/scene"
)

// End-to-end smoke test: every built-in scene renders at a small size and
// encodes as PNG.
func TestRenderScenesToPNG(t *testing.T) {
	for _, id := range scene.SceneIDs() {
		t.Run(id, func(t *testing.T) {
			s, err := scene.CreateScene(id, scene.Options{
				CameraOverrides: renderer.CameraConfig{Width: 80},
				GridResolution:  16,
			})
			if err != nil {
				t.Fatalf("Failed to create scene: %v", err)
			}

			img, stats := renderer.NewVolumeRenderer(s).RenderPass()
			if stats.TotalPixels != img.Bounds().Dx()*img.Bounds().Dy() {
				t.Errorf("Stats cover %d pixels for a %v image", stats.TotalPixels, img.Bounds())
			}
			if stats.HitPixels == 0 {
				t.Errorf("Scene %q rendered no visible surface", id)
			}

			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				t.Fatalf("PNG encode failed: %v", err)
			}
			if buf.Len() == 0 {
				t.Fatal("Empty PNG output")
			}
		})
	}
}

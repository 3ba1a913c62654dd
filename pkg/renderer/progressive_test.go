package renderer

import (
	"context"
	"testing"

	"github.com/volmarch/go-volume-raymarcher/pkg/volume"
)

func TestProgressiveConfig(t *testing.T) {
	config := DefaultProgressiveConfig()

	if config.TileSize != 64 {
		t.Errorf("Expected default tile size 64, got %d", config.TileSize)
	}
	if config.MaxPasses != 4 {
		t.Errorf("Expected default max passes 4, got %d", config.MaxPasses)
	}
}

func TestProgressiveStrides(t *testing.T) {
	pr := &ProgressiveRenderer{config: ProgressiveConfig{MaxPasses: 4}}

	// Strides halve each pass down to full resolution
	expected := []int{8, 4, 2, 1}
	for pass := 1; pass <= 4; pass++ {
		if stride := pr.strideForPass(pass); stride != expected[pass-1] {
			t.Errorf("Pass %d: expected stride %d, got %d", pass, expected[pass-1], stride)
		}
	}
}

func TestNewTileGrid(t *testing.T) {
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Tiles cover the image exactly once
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}
	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if covered[y][x] {
					t.Fatalf("Pixel (%d,%d) covered by more than one tile", x, y)
				}
				covered[y][x] = true
			}
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Fatalf("Pixel (%d,%d) not covered by any tile", x, y)
			}
		}
	}
}

type silentLogger struct{}

func (silentLogger) Printf(format string, args ...interface{}) {}

func TestRenderProgressive_PassSequence(t *testing.T) {
	scene := newTestScene(t, volume.SphereField(0.4, 1.0, 0.0))
	config := ProgressiveConfig{TileSize: 32, MaxPasses: 3, NumWorkers: 2}
	pr := NewProgressiveRenderer(scene, config, silentLogger{})

	passChan, tileChan, errChan := pr.RenderProgressive(context.Background(), RenderOptions{TileUpdates: true})

	// Drain tile updates so the renderer never blocks on them
	go func() {
		for range tileChan {
		}
	}()

	var passes []PassResult
	for result := range passChan {
		passes = append(passes, result)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}

	if len(passes) != config.MaxPasses {
		t.Fatalf("Expected %d passes, got %d", config.MaxPasses, len(passes))
	}
	for i, pass := range passes {
		if pass.PassNumber != i+1 {
			t.Errorf("Pass %d: unexpected pass number %d", i, pass.PassNumber)
		}
		if pass.Image == nil {
			t.Fatalf("Pass %d: missing image", i+1)
		}
	}
	last := passes[len(passes)-1]
	if !last.IsLast || last.Stride != 1 {
		t.Errorf("Final pass should be full resolution: stride %d, isLast %v",
			last.Stride, last.IsLast)
	}

	// The final progressive pass equals a plain sequential render
	reference, _ := NewVolumeRenderer(scene).RenderPass()
	for i := range reference.Pix {
		if last.Image.Pix[i] != reference.Pix[i] {
			t.Fatalf("Final pass differs from sequential render at byte %d", i)
		}
	}
}

func TestRenderProgressive_Cancellation(t *testing.T) {
	scene := newTestScene(t, volume.SphereField(0.4, 1.0, 0.0))
	pr := NewProgressiveRenderer(scene, DefaultProgressiveConfig(), silentLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel before rendering starts

	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})

	for range passChan {
		t.Error("Expected no pass results after cancellation")
	}
	if err := <-errChan; err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

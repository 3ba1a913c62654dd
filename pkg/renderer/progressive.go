package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize   int // Size of each tile (64x64 recommended)
	MaxPasses  int // Number of coarse-to-fine passes; the last is full resolution
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:   64,
		MaxPasses:  4, // strides 8, 4, 2, 1
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// ProgressiveRenderer renders coarse-to-fine: early passes march one ray
// per pixel block and flood-fill it, the final pass marches every pixel.
// The marcher is deterministic, so passes refine resolution, not noise.
type ProgressiveRenderer struct {
	scene         Scene
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile
	img           *image.NRGBA // Shared output image (tiles have disjoint bounds)
	renderer      *VolumeRenderer
	workerPool    *WorkerPool
	logger        core.Logger
}

// NewProgressiveRenderer creates a progressive renderer for the scene
func NewProgressiveRenderer(scene Scene, config ProgressiveConfig, logger core.Logger) *ProgressiveRenderer {
	if config.MaxPasses < 1 {
		config.MaxPasses = 1
	}
	renderer := NewVolumeRenderer(scene)
	width, height := renderer.Width(), renderer.Height()

	pr := &ProgressiveRenderer{
		scene:    scene,
		width:    width,
		height:   height,
		config:   config,
		tiles:    NewTileGrid(width, height, config.TileSize),
		img:      image.NewNRGBA(image.Rect(0, 0, width, height)),
		renderer: renderer,
		logger:   logger,
	}
	pr.workerPool = NewWorkerPool(renderer, len(pr.tiles), config.NumWorkers)
	return pr
}

// strideForPass returns the pixel stride of a pass: halving each pass,
// ending at full resolution
func (pr *ProgressiveRenderer) strideForPass(passNumber int) int {
	return 1 << (pr.config.MaxPasses - passNumber)
}

// RenderPass renders a single progressive pass using parallel processing
func (pr *ProgressiveRenderer) RenderPass(passNumber int, tileCallback func(TileCompletionResult)) (*image.NRGBA, RenderStats, error) {
	stride := pr.strideForPass(passNumber)

	pr.logger.Printf("Pass %d: stride %d (using %d workers)...\n",
		passNumber, stride, pr.workerPool.GetNumWorkers())

	// Start worker pool if not already started
	if passNumber == 1 {
		pr.workerPool.Start()
	}

	// Submit all tiles as tasks
	for taskID, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:   tile,
			Stride: stride,
			TaskID: taskID,
			Image:  pr.img,
		})
	}

	// Wait for all tiles to complete, dispatching tile callbacks from this
	// single goroutine
	var stats RenderStats
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		stats.merge(result.Stats)

		if tileCallback != nil {
			tile := pr.tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:       tile.Bounds.Min.X / pr.config.TileSize,
				TileY:       tile.Bounds.Min.Y / pr.config.TileSize,
				TileImage:   pr.extractTileImage(tile),
				PassNumber:  passNumber,
				TileNumber:  i + 1,
				TotalTiles:  len(pr.tiles),
				TotalPasses: pr.config.MaxPasses,
			})
		}
	}
	stats.finalize()

	// Copy the shared image so later passes don't mutate what we hand out
	snapshot := image.NewNRGBA(pr.img.Bounds())
	copy(snapshot.Pix, pr.img.Pix)

	return snapshot, stats, nil
}

// extractTileImage copies a tile's pixels out of the shared image
func (pr *ProgressiveRenderer) extractTileImage(tile *Tile) *image.NRGBA {
	bounds := tile.Bounds
	tileImage := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			tileImage.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, pr.img.NRGBAAt(x, y))
		}
	}

	return tileImage
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Stride     int
	Image      *image.NRGBA
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	TileImage  *image.NRGBA // Image data for just this tile
	PassNumber int          // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders with channel-based communication.
// Returns channels for events; the caller reads them in its own goroutines.
// If options.TileUpdates is false, the tile channel is closed immediately
// and no tile events are generated.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100) // Buffer for tiles
	errChan := make(chan error, 1)

	// If tile updates are disabled, close the channel immediately
	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)
		defer pr.workerPool.Stop()

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			// Check if client disconnected before starting this pass
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					default:
						// Channel full, drop the tile update
					}
				}
			}

			img, stats, err := pr.RenderPass(pass, tileCallback)
			if err != nil {
				errChan <- err
				return
			}

			passTime := time.Since(startTime)
			pr.logger.Printf("Pass %d completed in %v (%d hits, %d misses)\n",
				pass, passTime, stats.HitPixels, stats.MissPixels)

			result := PassResult{
				PassNumber: pass,
				Stride:     pr.strideForPass(pass),
				Image:      img,
				Stats:      stats,
				IsLast:     pass == pr.config.MaxPasses,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, tileChan, errChan
}

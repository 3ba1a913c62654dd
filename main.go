package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/volmarch/go-volume-raymarcher/pkg/renderer"
	"github.com/volmarch/go-volume-raymarcher/pkg/scene"
)

func main() {
	sceneID := flag.String("scene", "sphere", "Scene: "+strings.Join(scene.SceneIDs(), ", "))
	threshold := flag.Float64("threshold", 0, "Isosurface threshold override (0 = scene default)")
	width := flag.Int("width", 0, "Image width override in pixels (0 = scene default)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Volume Ray Marcher")
		fmt.Println("Usage: raymarcher [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, id := range scene.SceneIDs() {
			fmt.Printf("  %s\n", id)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	fmt.Println("Starting volume ray marcher...")

	opts := scene.Options{Threshold: *threshold}
	if *width > 0 {
		opts.CameraOverrides.Width = *width
	}

	selectedScene, err := scene.CreateScene(*sceneID, opts)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using %s scene (threshold %.2f)...\n", *sceneID, selectedScene.Threshold)

	// Create output directory for this scene
	outputDir := filepath.Join("output", *sceneID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		return
	}

	volumeRenderer := renderer.NewVolumeRenderer(selectedScene)

	startTime := time.Now()
	img, stats := volumeRenderer.RenderPass()
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Coverage: %d hit / %d miss pixels\n", stats.HitPixels, stats.MissPixels)
	fmt.Printf("Samples per pixel: %.1f average, %d max\n",
		stats.AverageSamples, stats.MaxSamplesUsed)

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		return
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		return
	}

	fmt.Printf("Render saved as %s\n", filename)
}

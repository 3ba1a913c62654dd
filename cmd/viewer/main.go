// Viewer renders a scene interactively with the OpenGL ray marching
// pipeline. Drag to orbit, scroll to zoom, up/down arrows to adjust the
// isosurface threshold, number keys to switch scenes.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
	"github.com/volmarch/go-volume-raymarcher/pkg/gpu"
	"github.com/volmarch/go-volume-raymarcher/pkg/renderer"
	"github.com/volmarch/go-volume-raymarcher/pkg/scene"
)

const (
	windowWidth  = 960
	windowHeight = 540
	gridBakeSize = 64
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type viewer struct {
	window   *glfw.Window
	pipeline *gpu.Pipeline

	sceneIDs   []string
	sceneIndex int
	current    *scene.Scene
	threshold  float64

	// Orbit camera state
	yaw      float64
	pitch    float64
	distance float64

	mouseDown  bool
	lastMouseX float64
	lastMouseY float64
}

func main() {
	sceneID := flag.String("scene", "sphere", "Initial scene: "+strings.Join(scene.SceneIDs(), ", "))
	flag.Parse()

	v, err := newViewer(*sceneID)
	if err != nil {
		log.Fatalf("Failed to start viewer: %v", err)
	}
	defer glfw.Terminate()

	v.run()
}

func newViewer(sceneID string) (*viewer, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "Volume Ray Marcher", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}

	v := &viewer{
		window:   window,
		sceneIDs: scene.SceneIDs(),
		yaw:      0.4,
		pitch:    0.3,
		distance: 4.5,
	}
	for i, id := range v.sceneIDs {
		if id == sceneID {
			v.sceneIndex = i
		}
	}

	if err := v.loadScene(v.sceneIDs[v.sceneIndex]); err != nil {
		return nil, err
	}

	v.installCallbacks()
	return v, nil
}

// loadScene builds the scene, bakes its field and rebuilds the GL pipeline
func (v *viewer) loadScene(id string) error {
	s, err := scene.CreateScene(id)
	if err != nil {
		return err
	}
	grid, err := s.Grid(gridBakeSize)
	if err != nil {
		return fmt.Errorf("baking field for %s: %v", id, err)
	}

	if v.pipeline != nil {
		v.pipeline.Delete()
		v.pipeline = nil
	}
	pipeline, err := gpu.NewPipeline(grid)
	if err != nil {
		return fmt.Errorf("pipeline for %s: %v", id, err)
	}

	v.current = s
	v.threshold = s.Threshold
	v.pipeline = pipeline
	log.Printf("Scene %s loaded (threshold %.2f)", id, v.threshold)
	return nil
}

func (v *viewer) installCallbacks() {
	v.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyUp:
			v.threshold += 0.05
			log.Printf("Threshold: %.2f", v.threshold)
		case glfw.KeyDown:
			v.threshold = math.Max(0, v.threshold-0.05)
			log.Printf("Threshold: %.2f", v.threshold)
		default:
			if key >= glfw.Key1 && int(key-glfw.Key1) < len(v.sceneIDs) {
				id := v.sceneIDs[key-glfw.Key1]
				if err := v.loadScene(id); err != nil {
					log.Printf("Failed to load scene %s: %v", id, err)
				}
			}
		}
	})

	v.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			v.mouseDown = action == glfw.Press
			v.lastMouseX, v.lastMouseY = w.GetCursorPos()
		}
	})

	v.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !v.mouseDown {
			return
		}
		v.yaw += (xpos - v.lastMouseX) * 0.01
		v.pitch += (ypos - v.lastMouseY) * 0.01
		v.pitch = math.Max(-1.5, math.Min(1.5, v.pitch))
		v.lastMouseX, v.lastMouseY = xpos, ypos
	})

	v.window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		v.distance = math.Max(1.0, math.Min(20.0, v.distance-yoff*0.3))
	})
}

// orbitCamera builds a camera from the current orbit state
func (v *viewer) orbitCamera() *renderer.Camera {
	fbWidth, fbHeight := v.window.GetFramebufferSize()
	if fbHeight == 0 {
		fbHeight = 1
	}

	eye := core.NewVec3(
		v.distance*math.Cos(v.pitch)*math.Sin(v.yaw),
		v.distance*math.Sin(v.pitch),
		v.distance*math.Cos(v.pitch)*math.Cos(v.yaw),
	)

	return renderer.NewCamera(renderer.CameraConfig{
		Center:      eye,
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       fbWidth,
		AspectRatio: float64(fbWidth) / float64(fbHeight),
		VFov:        40.0,
	})
}

func (v *viewer) run() {
	for !v.window.ShouldClose() {
		fbWidth, fbHeight := v.window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		gl.ClearColor(0.05, 0.05, 0.08, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		camera := v.orbitCamera()
		v.pipeline.UpdateCamera(camera)
		v.pipeline.Draw(v.current.Volume.Size, v.threshold, v.current.LightPos)

		v.window.SwapBuffers()
		glfw.PollEvents()
	}
	v.pipeline.Delete()
}

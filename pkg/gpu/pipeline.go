package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
	"github.com/volmarch/go-volume-raymarcher/pkg/renderer"
	"github.com/volmarch/go-volume-raymarcher/pkg/volume"
)

// cameraBindingPoint is the uniform buffer binding index for the camera block
const cameraBindingPoint = 0

// Unit cube centered at the origin, 12 triangles, counter-clockwise when
// viewed from outside. The vertex shader scales it by the volume size.
var cubeVertices = []float32{
	// -Z face
	-0.5, -0.5, -0.5, -0.5, 0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, -0.5, 0.5, -0.5, -0.5, -0.5, -0.5, -0.5,
	// +Z face
	-0.5, -0.5, 0.5, 0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, -0.5, 0.5, 0.5, -0.5, -0.5, 0.5,
	// -X face
	-0.5, -0.5, -0.5, -0.5, -0.5, 0.5, -0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5, -0.5, 0.5, -0.5, -0.5, -0.5, -0.5,
	// +X face
	0.5, -0.5, -0.5, 0.5, 0.5, -0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, 0.5, -0.5, 0.5, 0.5, -0.5, -0.5,
	// -Y face
	-0.5, -0.5, -0.5, 0.5, -0.5, -0.5, 0.5, -0.5, 0.5,
	0.5, -0.5, 0.5, -0.5, -0.5, 0.5, -0.5, -0.5, -0.5,
	// +Y face
	-0.5, 0.5, -0.5, -0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
}

// Pipeline owns the GL state for drawing one volume: shader program, cube
// geometry, camera uniform buffer and the field texture.
type Pipeline struct {
	program   uint32
	vao       uint32
	vbo       uint32
	cameraUBO uint32
	texture   *VolumeTexture

	sizeLoc      int32
	thresholdLoc int32
	lightLoc     int32
	volumeLoc    int32
}

// NewPipeline compiles the shaders and uploads the cube mesh and the field
// texture. Must be called on the thread that owns the GL context.
func NewPipeline(grid *volume.GridField) (*Pipeline, error) {
	program, err := NewProgram(VertexShaderSource, FragmentShaderSource)
	if err != nil {
		return nil, err
	}

	texture, err := NewVolumeTexture(grid)
	if err != nil {
		gl.DeleteProgram(program)
		return nil, err
	}

	p := &Pipeline{program: program, texture: texture}

	// Cube geometry
	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.BindVertexArray(0)

	// Camera uniform buffer
	gl.GenBuffers(1, &p.cameraUBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, p.cameraUBO)
	gl.BufferData(gl.UNIFORM_BUFFER, CameraUniformSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, cameraBindingPoint, p.cameraUBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	blockIndex := gl.GetUniformBlockIndex(p.program, gl.Str("Camera\x00"))
	if blockIndex == gl.INVALID_INDEX {
		p.Delete()
		return nil, fmt.Errorf("camera uniform block not found in program")
	}
	gl.UniformBlockBinding(p.program, blockIndex, cameraBindingPoint)

	p.sizeLoc = gl.GetUniformLocation(p.program, gl.Str("volume_size\x00"))
	p.thresholdLoc = gl.GetUniformLocation(p.program, gl.Str("threshold\x00"))
	p.lightLoc = gl.GetUniformLocation(p.program, gl.Str("light_position\x00"))
	p.volumeLoc = gl.GetUniformLocation(p.program, gl.Str("volume\x00"))

	return p, nil
}

// UpdateCamera uploads a fresh camera block for the frame
func (p *Pipeline) UpdateCamera(camera *renderer.Camera) {
	data := NewCameraUniform(camera).Marshal()
	gl.BindBuffer(gl.UNIFORM_BUFFER, p.cameraUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

// UpdateField re-uploads the scalar field texture
func (p *Pipeline) UpdateField(grid *volume.GridField) error {
	return p.texture.Update(grid)
}

// Draw renders the volume with the given size, threshold and light position
func (p *Pipeline) Draw(size core.Vec3, threshold float64, lightPos core.Vec3) {
	gl.UseProgram(p.program)

	p.texture.Bind(0)
	gl.Uniform1i(p.volumeLoc, 0)
	gl.Uniform3f(p.sizeLoc, float32(size.X), float32(size.Y), float32(size.Z))
	gl.Uniform1f(p.thresholdLoc, float32(threshold))
	gl.Uniform3f(p.lightLoc, float32(lightPos.X), float32(lightPos.Y), float32(lightPos.Z))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(cubeVertices)/3))
	gl.BindVertexArray(0)
}

// Delete releases all GL resources owned by the pipeline
func (p *Pipeline) Delete() {
	if p.texture != nil {
		p.texture.Delete()
	}
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteBuffers(1, &p.cameraUBO)
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.program)
}

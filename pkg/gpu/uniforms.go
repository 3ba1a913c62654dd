// Package gpu contains the OpenGL rendering path: shader sources, program
// compilation, the 3D field texture and the camera uniform block. The CPU
// path in pkg/marcher implements the same sampling loop; the two must stay
// in agreement.
package gpu

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/volmarch/go-volume-raymarcher/pkg/renderer"
)

// CameraUniformSize is the byte size of the std140 camera uniform block
const CameraUniformSize = 208

// CameraUniform mirrors the shader's camera uniform block. Field order and
// offsets follow std140 layout: three mat4s at offsets 0, 64 and 128, the
// position vec3 at 192 and explicit padding to a 16-byte boundary.
type CameraUniform struct {
	ViewProjection mgl32.Mat4
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	Position       mgl32.Vec3
	Padding        float32
}

// NewCameraUniform builds the uniform block from a camera
func NewCameraUniform(c *renderer.Camera) CameraUniform {
	pos := c.Position()
	return CameraUniform{
		ViewProjection: c.ViewProjectionMatrix(),
		View:           c.ViewMatrix(),
		Projection:     c.ProjectionMatrix(),
		Position:       mgl32.Vec3{float32(pos.X), float32(pos.Y), float32(pos.Z)},
	}
}

// Marshal serializes the block into the exact byte layout the shader reads.
// Matrices are written column-major as mgl32 stores them.
func (u CameraUniform) Marshal() []byte {
	buf := make([]byte, CameraUniformSize)
	offset := 0

	putMat4 := func(m mgl32.Mat4) {
		for i := 0; i < 16; i++ {
			binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(m[i]))
			offset += 4
		}
	}
	putMat4(u.ViewProjection)
	putMat4(u.View)
	putMat4(u.Projection)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(u.Position[i]))
		offset += 4
	}
	binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(u.Padding))

	return buf
}

package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/volmarch/go-volume-raymarcher/pkg/volume"
)

// VolumeTexture holds the scalar field as a single-channel float 3D texture
type VolumeTexture struct {
	handle uint32
	nx     int
	ny     int
	nz     int
}

// NewVolumeTexture uploads a grid field into a GL_R32F 3D texture with
// linear filtering and clamp-to-edge, matching the CPU sampler in
// pkg/volume.
func NewVolumeTexture(grid *volume.GridField) (*VolumeTexture, error) {
	nx, ny, nz := grid.Resolution()
	data := grid.Data()
	if len(data) != nx*ny*nz {
		return nil, fmt.Errorf("field data size %d does not match %dx%dx%d", len(data), nx, ny, nz)
	}

	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_3D, handle)

	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.TexImage3D(gl.TEXTURE_3D, 0, gl.R32F,
		int32(nx), int32(ny), int32(nz),
		0, gl.RED, gl.FLOAT, gl.Ptr(data))

	gl.BindTexture(gl.TEXTURE_3D, 0)

	return &VolumeTexture{handle: handle, nx: nx, ny: ny, nz: nz}, nil
}

// Bind binds the texture to the given texture unit
func (t *VolumeTexture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_3D, t.handle)
}

// Update re-uploads the field data, keeping the same resolution
func (t *VolumeTexture) Update(grid *volume.GridField) error {
	nx, ny, nz := grid.Resolution()
	if nx != t.nx || ny != t.ny || nz != t.nz {
		return fmt.Errorf("resolution changed from %dx%dx%d to %dx%dx%d",
			t.nx, t.ny, t.nz, nx, ny, nz)
	}
	gl.BindTexture(gl.TEXTURE_3D, t.handle)
	gl.TexSubImage3D(gl.TEXTURE_3D, 0, 0, 0, 0,
		int32(nx), int32(ny), int32(nz),
		gl.RED, gl.FLOAT, gl.Ptr(grid.Data()))
	gl.BindTexture(gl.TEXTURE_3D, 0)
	return nil
}

// Delete releases the GL texture
func (t *VolumeTexture) Delete() {
	gl.DeleteTextures(1, &t.handle)
}

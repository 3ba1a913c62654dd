package volume

import (
	"fmt"
	"math"
)

// ScalarField is a single-channel scalar field sampled over the normalized
// [0,1]^3 domain, mirroring a red-channel 3D texture read.
type ScalarField interface {
	// Sample returns the field value at normalized coordinate (u, v, w).
	// Coordinates outside [0,1] are clamped to the edge, matching
	// clamp-to-edge texture addressing.
	Sample(u, v, w float64) float64
}

// GridField is a dense 3D grid of scalar values with trilinear filtering,
// the CPU equivalent of a linearly-filtered R32F 3D texture.
type GridField struct {
	nx, ny, nz int
	data       []float32
}

// NewGridField creates a zero-initialized grid with the given resolution
func NewGridField(nx, ny, nz int) (*GridField, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("grid resolution must be positive, got %dx%dx%d", nx, ny, nz)
	}
	return &GridField{
		nx:   nx,
		ny:   ny,
		nz:   nz,
		data: make([]float32, nx*ny*nz),
	}, nil
}

// NewGridFieldFromFunc creates a grid and fills every voxel by evaluating
// the function at the voxel center in normalized coordinates
func NewGridFieldFromFunc(nx, ny, nz int, f func(u, v, w float64) float64) (*GridField, error) {
	g, err := NewGridField(nx, ny, nz)
	if err != nil {
		return nil, err
	}
	for z := 0; z < nz; z++ {
		w := (float64(z) + 0.5) / float64(nz)
		for y := 0; y < ny; y++ {
			v := (float64(y) + 0.5) / float64(ny)
			for x := 0; x < nx; x++ {
				u := (float64(x) + 0.5) / float64(nx)
				g.Set(x, y, z, f(u, v, w))
			}
		}
	}
	return g, nil
}

// Resolution returns the grid dimensions along each axis
func (g *GridField) Resolution() (nx, ny, nz int) {
	return g.nx, g.ny, g.nz
}

// Set stores a value at the given voxel index
func (g *GridField) Set(x, y, z int, value float64) {
	g.data[(z*g.ny+y)*g.nx+x] = float32(value)
}

// At returns the stored value at the given voxel index
func (g *GridField) At(x, y, z int) float64 {
	return float64(g.data[(z*g.ny+y)*g.nx+x])
}

// Data returns the raw voxel values in x-fastest order, ready for upload
// as a 3D texture
func (g *GridField) Data() []float32 {
	return g.data
}

// Sample implements ScalarField with trilinear filtering between voxel
// centers and clamp-to-edge addressing outside the domain
func (g *GridField) Sample(u, v, w float64) float64 {
	x0, x1, fx := g.texelSpan(u, g.nx)
	y0, y1, fy := g.texelSpan(v, g.ny)
	z0, z1, fz := g.texelSpan(w, g.nz)

	c000 := g.At(x0, y0, z0)
	c100 := g.At(x1, y0, z0)
	c010 := g.At(x0, y1, z0)
	c110 := g.At(x1, y1, z0)
	c001 := g.At(x0, y0, z1)
	c101 := g.At(x1, y0, z1)
	c011 := g.At(x0, y1, z1)
	c111 := g.At(x1, y1, z1)

	c00 := lerp(c000, c100, fx)
	c10 := lerp(c010, c110, fx)
	c01 := lerp(c001, c101, fx)
	c11 := lerp(c011, c111, fx)

	c0 := lerp(c00, c10, fy)
	c1 := lerp(c01, c11, fy)

	return lerp(c0, c1, fz)
}

// texelSpan maps a normalized coordinate to the two neighboring texel
// indices and the interpolation fraction between their centers
func (g *GridField) texelSpan(coord float64, n int) (i0, i1 int, frac float64) {
	x := coord*float64(n) - 0.5
	floor := math.Floor(x)
	frac = x - floor

	i0 = clampIndex(int(floor), n)
	i1 = clampIndex(int(floor)+1, n)
	return i0, i1, frac
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

package volume

import (
	"math"
	"testing"
)

func TestNewGridField_InvalidResolution(t *testing.T) {
	tests := []struct {
		name       string
		nx, ny, nz int
	}{
		{"zero x", 0, 4, 4},
		{"zero y", 4, 0, 4},
		{"negative z", 4, 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGridField(tt.nx, tt.ny, tt.nz); err == nil {
				t.Errorf("Expected error for resolution %dx%dx%d", tt.nx, tt.ny, tt.nz)
			}
		})
	}
}

func TestGridField_ConstantField(t *testing.T) {
	g, err := NewGridFieldFromFunc(8, 8, 8, func(u, v, w float64) float64 {
		return 0.75
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	coords := [][3]float64{
		{0.5, 0.5, 0.5},
		{0.0, 0.0, 0.0},
		{1.0, 1.0, 1.0},
		{0.123, 0.456, 0.789},
	}
	for _, c := range coords {
		got := g.Sample(c[0], c[1], c[2])
		if math.Abs(got-0.75) > 1e-6 {
			t.Errorf("Sample(%v) = %f, expected 0.75", c, got)
		}
	}
}

func TestGridField_TrilinearInterpolation(t *testing.T) {
	// Two voxels along X: values 0 and 1. Halfway between their centers
	// the filtered value must be 0.5.
	g, err := NewGridField(2, 1, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	g.Set(0, 0, 0, 0.0)
	g.Set(1, 0, 0, 1.0)

	got := g.Sample(0.5, 0.5, 0.5)
	if math.Abs(got-0.5) > 1e-6 {
		t.Errorf("Expected 0.5 midway between texel centers, got %f", got)
	}

	// At the first texel center (u=0.25) the value is exactly the voxel value
	got = g.Sample(0.25, 0.5, 0.5)
	if math.Abs(got-0.0) > 1e-6 {
		t.Errorf("Expected 0.0 at first texel center, got %f", got)
	}
}

func TestGridField_ClampToEdge(t *testing.T) {
	g, err := NewGridField(2, 2, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	g.Set(0, 0, 0, 1.0)

	// Coordinates far outside the domain clamp to the nearest edge texel
	if got := g.Sample(-5, -5, -5); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("Expected clamped sample 1.0, got %f", got)
	}
	if got := g.Sample(5, 5, 5); math.Abs(got-0.0) > 1e-6 {
		t.Errorf("Expected clamped sample 0.0, got %f", got)
	}
}

func TestGridField_FromFuncVoxelCenters(t *testing.T) {
	g, err := NewGridFieldFromFunc(4, 4, 4, func(u, v, w float64) float64 {
		return u
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Voxel x=1 has center u = 1.5/4
	expected := 1.5 / 4.0
	if got := g.At(1, 2, 3); math.Abs(got-expected) > 1e-6 {
		t.Errorf("Expected voxel value %f, got %f", expected, got)
	}
}

func TestGridField_DataLayout(t *testing.T) {
	g, err := NewGridField(2, 2, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	g.Set(1, 0, 0, 1.0) // x-fastest: index 1
	g.Set(0, 1, 0, 2.0) // index 2
	g.Set(0, 0, 1, 3.0) // index 4

	data := g.Data()
	if len(data) != 8 {
		t.Fatalf("Expected 8 voxels, got %d", len(data))
	}
	if data[1] != 1.0 || data[2] != 2.0 || data[4] != 3.0 {
		t.Errorf("Unexpected layout: %v", data)
	}
}

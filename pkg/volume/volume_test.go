package volume

import (
	"math"
	"testing"

	"github.com/volmarch/go-volume-raymarcher/pkg/core"
)

func TestNewVolume_Validation(t *testing.T) {
	tests := []struct {
		name        string
		size        core.Vec3
		field       ScalarField
		expectError bool
	}{
		{"valid", core.NewVec3(2, 2, 2), UniformField(0), false},
		{"anisotropic valid", core.NewVec3(1, 4, 0.5), UniformField(0), false},
		{"zero extent", core.NewVec3(2, 0, 2), UniformField(0), true},
		{"negative extent", core.NewVec3(-1, 2, 2), UniformField(0), true},
		{"nil field", core.NewVec3(2, 2, 2), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVolume(tt.size, tt.field)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %s", tt.name)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if v == nil {
				t.Error("Expected volume, got nil")
			}
		})
	}
}

func TestVolume_Bounds(t *testing.T) {
	v, err := NewVolume(core.NewVec3(2, 4, 6), UniformField(0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bounds := v.Bounds()
	if bounds.Min != core.NewVec3(-1, -2, -3) || bounds.Max != core.NewVec3(1, 2, 3) {
		t.Errorf("Unexpected bounds: %v", bounds)
	}
}

func TestVolume_SampleWorld(t *testing.T) {
	// Field returning u lets us verify the world-to-domain mapping directly
	v, err := NewVolume(core.NewVec3(2, 2, 2), FieldFunc(func(u, _, _ float64) float64 {
		return u
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		p        core.Vec3
		expected float64
	}{
		{core.NewVec3(0, 0, 0), 0.5},  // center maps to 0.5
		{core.NewVec3(-1, 0, 0), 0.0}, // min face maps to 0
		{core.NewVec3(1, 0, 0), 1.0},  // max face maps to 1
		{core.NewVec3(0.5, 0, 0), 0.75},
	}
	for _, tt := range tests {
		if got := v.SampleWorld(tt.p); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("SampleWorld(%v) = %f, expected %f", tt.p, got, tt.expected)
		}
	}
}

func TestSphereField(t *testing.T) {
	f := SphereField(0.5, 1.0, 0.0)

	if got := f.Sample(0.5, 0.5, 0.5); got != 1.0 {
		t.Errorf("Center should be inside, got %f", got)
	}
	if got := f.Sample(0.5, 0.99, 0.5); got != 0.0 {
		t.Errorf("Near domain edge should be outside, got %f", got)
	}
	// Radius 0.5 touches the face centers of the domain cube
	if got := f.Sample(1.0, 0.5, 0.5); got != 1.0 {
		t.Errorf("Point at radius boundary should be inside, got %f", got)
	}
}

func TestShellField(t *testing.T) {
	f := ShellField(0.2, 0.4, 1.0, 0.0)

	if got := f.Sample(0.5, 0.5, 0.5); got != 0.0 {
		t.Errorf("Center is inside the hollow core, got %f", got)
	}
	if got := f.Sample(0.8, 0.5, 0.5); got != 1.0 {
		t.Errorf("Point at r=0.3 should be in the shell, got %f", got)
	}
}

func TestMetaballField_SmoothAndBounded(t *testing.T) {
	f := MetaballField()

	center := f.Sample(0.5, 0.5, 0.5)
	if center <= 0 {
		t.Errorf("Center should have positive density, got %f", center)
	}
	if got := f.Sample(0.01, 0.01, 0.01); got != 0.0 {
		t.Errorf("Domain corner should be empty, got %f", got)
	}

	// Deterministic: repeated sampling returns identical values
	if f.Sample(0.4, 0.5, 0.6) != f.Sample(0.4, 0.5, 0.6) {
		t.Error("MetaballField should be deterministic")
	}
}

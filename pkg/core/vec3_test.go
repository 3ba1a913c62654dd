package core

import (
	"math"
	"testing"
)

func TestVec3_DivideVec(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		divisor  Vec3
		expected Vec3
	}{
		{
			name:     "Unit divisor",
			vector:   NewVec3(1, 2, 3),
			divisor:  NewVec3(1, 1, 1),
			expected: NewVec3(1, 2, 3),
		},
		{
			name:     "Volume extent mapping",
			vector:   NewVec3(1, -1, 0.5),
			divisor:  NewVec3(2, 2, 2),
			expected: NewVec3(0.5, -0.5, 0.25),
		},
		{
			name:     "Anisotropic extents",
			vector:   NewVec3(3, 4, 10),
			divisor:  NewVec3(3, 2, 5),
			expected: NewVec3(1, 2, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.DivideVec(tt.divisor)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-9 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	zero := NewVec3(0, 0, 0).Normalize()
	if zero.Length() != 0 {
		t.Errorf("Normalizing zero vector should return zero vector, got %v", zero)
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1)
	expected := NewVec3(0, 0.5, 1)
	if v.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, v)
	}
}

func TestVec3_Abs(t *testing.T) {
	v := NewVec3(-1, 2, -3).Abs()
	expected := NewVec3(1, 2, 3)
	if v != expected {
		t.Errorf("Expected %v, got %v", expected, v)
	}
}

func TestVec3_Luminance(t *testing.T) {
	white := NewVec3(1, 1, 1)
	if math.Abs(white.Luminance()-1.0) > 1e-9 {
		t.Errorf("White luminance should be 1.0, got %f", white.Luminance())
	}

	green := NewVec3(0, 1, 0)
	red := NewVec3(1, 0, 0)
	if green.Luminance() <= red.Luminance() {
		t.Errorf("Green should be perceptually brighter than red: %f vs %f",
			green.Luminance(), red.Luminance())
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(1, 2, 3))
	point := ray.At(2.0)
	expected := NewVec3(2, 4, 6)
	if point.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, point)
	}
}

func TestColor_NRGBA(t *testing.T) {
	c := Color{R: 1.5, G: 0.5, B: -0.2, A: 1.0}
	got := c.NRGBA()
	if got.R != 255 {
		t.Errorf("Overbright channel should clamp to 255, got %d", got.R)
	}
	if got.B != 0 {
		t.Errorf("Negative channel should clamp to 0, got %d", got.B)
	}
	if got.A != 255 {
		t.Errorf("Expected opaque alpha, got %d", got.A)
	}

	miss := Transparent.NRGBA()
	if miss.R != 0 || miss.G != 0 || miss.B != 0 || miss.A != 0 {
		t.Errorf("Transparent should convert to zero NRGBA, got %v", miss)
	}
}

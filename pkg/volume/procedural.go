package volume

import "math"

// FieldFunc adapts a plain function to the ScalarField interface
type FieldFunc func(u, v, w float64) float64

// Sample implements ScalarField
func (f FieldFunc) Sample(u, v, w float64) float64 {
	return f(u, v, w)
}

// UniformField returns a field holding the same value everywhere
func UniformField(value float64) ScalarField {
	return FieldFunc(func(u, v, w float64) float64 {
		return value
	})
}

// SphereField returns a binary field: inside-value within a ball of the
// given radius around the domain center (0.5, 0.5, 0.5), outside-value
// elsewhere
func SphereField(radius, inside, outside float64) ScalarField {
	return FieldFunc(func(u, v, w float64) float64 {
		du := u - 0.5
		dv := v - 0.5
		dw := w - 0.5
		if math.Sqrt(du*du+dv*dv+dw*dw) <= radius {
			return inside
		}
		return outside
	})
}

// ShellField returns a binary field that is inside-value between the inner
// and outer radii around the domain center, outside-value elsewhere
func ShellField(innerRadius, outerRadius, inside, outside float64) ScalarField {
	return FieldFunc(func(u, v, w float64) float64 {
		du := u - 0.5
		dv := v - 0.5
		dw := w - 0.5
		r := math.Sqrt(du*du + dv*dv + dw*dw)
		if r >= innerRadius && r <= outerRadius {
			return inside
		}
		return outside
	})
}

// blob is a smooth density kernel used by MetaballField
type blob struct {
	u, v, w float64 // center in normalized coordinates
	radius  float64
}

// MetaballField returns a smooth field summing falloff kernels around a few
// fixed centers. Useful as a demo volume with a non-trivial isosurface.
func MetaballField() ScalarField {
	blobs := []blob{
		{0.50, 0.50, 0.50, 0.30},
		{0.30, 0.62, 0.42, 0.20},
		{0.68, 0.40, 0.60, 0.22},
		{0.55, 0.30, 0.35, 0.16},
	}
	return FieldFunc(func(u, v, w float64) float64 {
		sum := 0.0
		for _, b := range blobs {
			du := u - b.u
			dv := v - b.v
			dw := w - b.w
			d2 := du*du + dv*dv + dw*dw
			r2 := b.radius * b.radius
			if d2 < r2 {
				// (1 - d^2/r^2)^2 falls smoothly to zero at the kernel edge
				t := 1.0 - d2/r2
				sum += t * t
			}
		}
		return sum
	})
}

package geometry

import "math"

// Matrix4 is a row-major 4x4 homogeneous transform. Points are column
// vectors: p' = M·p.
type Matrix4 [16]float64

// Identity returns the identity transform.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotationZ returns a counter-clockwise rotation about the Z axis.
func RotationZ(radians float64) Matrix4 {
	sin, cos := math.Sincos(radians)
	return Matrix4{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Orientation builds the transform for a schematic orientation row
// "a b c d". The 2x2 submatrix is embedded with its second column
// negated to account for the file's Y-down axis, then transposed.
func Orientation(a, b, c, d float64) Matrix4 {
	return Matrix4{
		a, -b, 0, 0,
		c, -d, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}.Transpose()
}

func (m Matrix4) At(row, col int) float64 {
	return m[row*4+col]
}

// Mul returns m × n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[r*4+k] * n[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

func (m Matrix4) Transpose() Matrix4 {
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c*4+r] = m[r*4+c]
		}
	}
	return out
}

// TransformPoint applies m to p (z = 0, w = 1).
func (m Matrix4) TransformPoint(p Point2) Point2 {
	return Point2{
		X: m[0]*p.X + m[1]*p.Y + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[7],
	}
}

// TransformVector applies the linear part of m to v.
func (m Matrix4) TransformVector(v Vector2) Vector2 {
	return Vector2{
		X: m[0]*v.X + m[1]*v.Y,
		Y: m[4]*v.X + m[5]*v.Y,
	}
}

// TransformAABB returns the axis-aligned box around the four transformed
// corners of bb.
func (m Matrix4) TransformAABB(bb AABB) AABB {
	c := bb.Corners()
	return BoundsOf(
		m.TransformPoint(c[0]),
		m.TransformPoint(c[1]),
		m.TransformPoint(c[2]),
		m.TransformPoint(c[3]),
	)
}

// ApproxEqual compares element-wise within eps.
func (m Matrix4) ApproxEqual(n Matrix4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-n[i]) > eps {
			return false
		}
	}
	return true
}

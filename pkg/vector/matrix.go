package vector

import "math"

// Matrix2D is a 2D affine transformation matrix.
// Layout: [a, b, c, d, e, f] representing:
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
//
// where a/d are scale, b/c are skew/rotation and e/f are translation.
type Matrix2D [6]float64

// Identity returns the identity matrix.
func Identity() Matrix2D {
	return Matrix2D{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix2D {
	return Matrix2D{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix2D {
	return Matrix2D{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation matrix (angle in radians).
func Rotate(radians float64) Matrix2D {
	sin, cos := math.Sincos(radians)
	return Matrix2D{cos, sin, -sin, cos, 0, 0}
}

// SkewX returns a horizontal skew matrix (angle in radians).
func SkewX(radians float64) Matrix2D {
	return Matrix2D{1, 0, math.Tan(radians), 1, 0, 0}
}

// SkewY returns a vertical skew matrix (angle in radians).
func SkewY(radians float64) Matrix2D {
	return Matrix2D{1, math.Tan(radians), 0, 1, 0, 0}
}

// Mul multiplies this matrix by another: result = m * other.
// This applies 'other' first, then 'm', so accumulating down a node
// chain is parent.Mul(childLocal).
func (m Matrix2D) Mul(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Apply maps a point through the matrix.
func (m Matrix2D) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Determinant returns the determinant of the matrix.
func (m Matrix2D) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// ScaleFactor returns the effective uniform scale of the matrix, the
// geometric mean of the two axis scale magnitudes. Exact for uniform
// scale and rotation; an approximation for skewed or non-uniform
// transforms.
func (m Matrix2D) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix2D) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m[0]-1) < eps &&
		math.Abs(m[1]) < eps &&
		math.Abs(m[2]) < eps &&
		math.Abs(m[3]-1) < eps &&
		math.Abs(m[4]) < eps &&
		math.Abs(m[5]) < eps
}

package ink

import (
	"errors"
	"math"
)

// ErrSingularMatrix indicates a matrix inversion failed because the
// determinant is within machine epsilon of zero. Singularity is a
// configuration fault (e.g. a zero-size canvas or zero zoom), not a
// recoverable runtime condition; callers should surface it.
var ErrSingularMatrix = errors.New("ink: singular matrix")

// singularEpsilon is the determinant magnitude below which a matrix is
// treated as non-invertible.
const singularEpsilon = 1e-10

// homogeneousEpsilon is the tolerance on the w component of a transformed
// point before perspective division kicks in. The provided constructors
// only ever build affine matrices (w stays 1), but general composition
// could in principle produce a projective one.
const homogeneousEpsilon = 1e-12

// Matrix represents a 3x3 homogeneous 2D transformation matrix,
// stored row-major:
//
//	| m[0] m[1] m[2] |
//	| m[3] m[4] m[5] |
//	| m[6] m[7] m[8] |
//
// A point (x, y) transforms as the column vector (x, y, 1).
// Matrices are values and are never mutated in place; every operation
// returns a new Matrix.
type Matrix [9]float64

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{
		1, 0, tx,
		0, 1, ty,
		0, 0, 1,
	}
}

// Scale creates a scaling matrix with independent x and y factors.
func Scale(sx, sy float64) Matrix {
	return Matrix{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}
}

// ScaleUniform creates a scaling matrix with the same factor on both axes.
func ScaleUniform(s float64) Matrix {
	return Scale(s, s)
}

// Rotate creates a rotation matrix (angle in radians, counterclockwise in
// a y-up space).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	}
}

// RotateAround creates a rotation about the point (cx, cy):
// translate(cx, cy) * rotate(angle) * translate(-cx, -cy).
func RotateAround(angle, cx, cy float64) Matrix {
	return Translate(cx, cy).Multiply(Rotate(angle)).Multiply(Translate(-cx, -cy))
}

// ScaleAround creates a scaling about the point (cx, cy).
func ScaleAround(sx, sy, cx, cy float64) Matrix {
	return Translate(cx, cy).Multiply(Scale(sx, sy)).Multiply(Translate(-cx, -cy))
}

// Multiply returns m * other. When the product transforms a point, other
// applies first and m second, following the conventional matrix-times-vector
// reading.
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += m[row*3+k] * other[k*3+col]
			}
			r[row*3+col] = sum
		}
	}
	return r
}

// TransformPoint applies the matrix to a point. If the resulting
// homogeneous w component deviates from 1, the result is divided by w.
func (m Matrix) TransformPoint(p Point) Point {
	x := m[0]*p.X + m[1]*p.Y + m[2]
	y := m[3]*p.X + m[4]*p.Y + m[5]
	w := m[6]*p.X + m[7]*p.Y + m[8]
	if math.Abs(w-1) > homogeneousEpsilon && w != 0 {
		x /= w
		y /= w
	}
	return Point{X: x, Y: y}
}

// Determinant returns the determinant of the matrix.
func (m Matrix) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns the inverse matrix, computed as adjugate/determinant.
// It returns ErrSingularMatrix when the determinant is within machine
// epsilon of zero.
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Determinant()
	if math.Abs(det) < singularEpsilon {
		return Matrix{}, ErrSingularMatrix
	}
	inv := 1.0 / det
	return Matrix{
		(m[4]*m[8] - m[5]*m[7]) * inv,
		(m[2]*m[7] - m[1]*m[8]) * inv,
		(m[1]*m[5] - m[2]*m[4]) * inv,
		(m[5]*m[6] - m[3]*m[8]) * inv,
		(m[0]*m[8] - m[2]*m[6]) * inv,
		(m[2]*m[3] - m[0]*m[5]) * inv,
		(m[3]*m[7] - m[4]*m[6]) * inv,
		(m[1]*m[6] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[1]*m[3]) * inv,
	}, nil
}

// Transpose returns the transposed matrix.
func (m Matrix) Transpose() Matrix {
	return Matrix{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Equals reports whether every element of m is within epsilon of the
// corresponding element of other.
func (m Matrix) Equals(other Matrix, epsilon float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > epsilon {
			return false
		}
	}
	return true
}

// IsIdentity returns true if the matrix is exactly the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

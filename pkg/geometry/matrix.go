package geometry

import "math"

// Mat4 is a 4×4 affine transform stored row-major
type Mat4 [16]float64

// Identity returns the identity transform
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a transform that moves points by t
func Translation(t Vector3) Mat4 {
	return Mat4{
		1, 0, 0, t.X,
		0, 1, 0, t.Y,
		0, 0, 1, t.Z,
		0, 0, 0, 1,
	}
}

// RotationAbout returns a rotation of angle radians about the given
// axis through the origin. The axis does not need to be normalized;
// a zero axis yields the identity.
func RotationAbout(axis Vector3, angle float64) Mat4 {
	n := axis.Normalize()
	if n.Length() == 0 {
		return Identity()
	}
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	x, y, z := n.X, n.Y, n.Z
	return Mat4{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m × other (apply other first, then m)
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r*4+c] = m[r*4+0]*other[0*4+c] +
				m[r*4+1]*other[1*4+c] +
				m[r*4+2]*other[2*4+c] +
				m[r*4+3]*other[3*4+c]
		}
	}
	return out
}

// MulPoint transforms a point (w=1) by the matrix
func (m Mat4) MulPoint(v Vector3) Vector3 {
	return Vector3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// Translation returns the translation column of the matrix
func (m Mat4) Translation() Vector3 {
	return Vector3{X: m[3], Y: m[7], Z: m[11]}
}

// Basis returns the rotation whose columns are the world directions
// of the local X, Y and Z axes
func Basis(x, y, z Vector3) Mat4 {
	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		0, 0, 0, 1,
	}
}

// RotationAround composes translate(-pivot) → rotate → translate(pivot),
// i.e. a rotation of angle radians about an axis through pivot.
func RotationAround(pivot, axis Vector3, angle float64) Mat4 {
	return Translation(pivot).
		Mul(RotationAbout(axis, angle)).
		Mul(Translation(pivot.Mul(-1)))
}

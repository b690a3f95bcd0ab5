package geom

import (
	"math"

	"github.com/rpcollanton/freud/math/mat"
)

// EulerMatrix creates a 3D rotation matrix based off the Euler angles phi,
// theta, and psi. These represent three consecutive rotations around the x,
// y, and z axes, respectively.
func EulerMatrix(phi, theta, psi float64) *mat.Matrix {
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	sinPsi, cosPsi := math.Sincos(psi)

	vals := []float64{
		cosTheta * cosPsi,
		cosPhi*sinPsi + sinPhi*sinTheta*cosPsi,
		sinPhi*sinPsi - cosPhi*sinTheta*cosPsi,
		-cosTheta * sinPsi,
		cosPhi*cosPsi - sinPhi*sinTheta*sinPsi,
		sinPhi*cosPsi + cosPhi*sinTheta*sinPsi,
		sinTheta,
		-sinPhi * cosTheta,
		cosPhi * cosTheta,
	}

	return mat.NewMatrix(vals, 3, 3)
}

// Rotate returns v rotated by the given 3 x 3 rotation matrix.
func (v Vec) Rotate(m *mat.Matrix) Vec {
	return Vec{
		m.Vals[0]*v[0] + m.Vals[1]*v[1] + m.Vals[2]*v[2],
		m.Vals[3]*v[0] + m.Vals[4]*v[1] + m.Vals[5]*v[2],
		m.Vals[6]*v[0] + m.Vals[7]*v[1] + m.Vals[8]*v[2],
	}
}

package geom

import (
	"math"
)

// Quat is a unit quaternion representing a 3D orientation, stored in
// (w, x, y, z) order.
type Quat [4]float64

// IdentityQuat returns the identity orientation.
func IdentityQuat() Quat {
	return Quat{1, 0, 0, 0}
}

// AxisAngleQuat returns the quaternion rotating by the given angle around
// the given axis. The axis does not need to be normalized.
func AxisAngleQuat(axis Vec, angle float64) Quat {
	u, ok := axis.Normalize()
	if !ok {
		return IdentityQuat()
	}
	sin, cos := math.Sincos(angle / 2)
	return Quat{cos, sin * u[0], sin * u[1], sin * u[2]}
}

// Conj returns the conjugate of q, the inverse rotation for a unit
// quaternion.
func (q Quat) Conj() Quat {
	return Quat{q[0], -q[1], -q[2], -q[3]}
}

// Mult returns the Hamilton product q * p, the orientation obtained by
// applying p first and q second.
func (q Quat) Mult(p Quat) Quat {
	return Quat{
		q[0]*p[0] - q[1]*p[1] - q[2]*p[2] - q[3]*p[3],
		q[0]*p[1] + q[1]*p[0] + q[2]*p[3] - q[3]*p[2],
		q[0]*p[2] - q[1]*p[3] + q[2]*p[0] + q[3]*p[1],
		q[0]*p[3] + q[1]*p[2] - q[2]*p[1] + q[3]*p[0],
	}
}

// Rotate returns v rotated by q.
func (q Quat) Rotate(v Vec) Vec {
	// v' = v + 2 u x (u x v + w v), with u the vector part of q.
	u := Vec{q[1], q[2], q[3]}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q[0])).Add(u.Cross(t))
}

/*Package geom contains the small geometric primitives shared by the rest of
the library: 3-vectors, rotation matrices, and quaternions.

Everything here is float64. The arrays involved in order-parameter
calculations are small enough that there is no reason to halve precision the
way a renderer would.
*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Add returns the sum of v and u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns the difference v - u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns v scaled by a.
func (v Vec) Scale(a float64) Vec {
	return Vec{a * v[0], a * v[1], a * v[2]}
}

// Dot returns the inner product of v and u.
func (v Vec) Dot(u Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Cross returns the cross product of v and u.
func (v Vec) Cross(u Vec) Vec {
	return Vec{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector pointing along v. ok is returned as
// false if v has zero length, in which case the zero vector is returned.
func (v Vec) Normalize() (u Vec, ok bool) {
	n := v.Norm()
	if n == 0 {
		return Vec{}, false
	}
	return v.Scale(1 / n), true
}

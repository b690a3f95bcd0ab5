package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVec(rng *rand.Rand) Vec {
	return Vec{
		rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1,
	}
}

func TestVecAlgebra(t *testing.T) {
	v, u := Vec{1, 2, 3}, Vec{4, -5, 6}

	assert.Equal(t, Vec{5, -3, 9}, v.Add(u))
	assert.Equal(t, Vec{-3, 7, -3}, v.Sub(u))
	assert.Equal(t, Vec{2, 4, 6}, v.Scale(2))
	assert.Equal(t, 12.0, v.Dot(u))
	assert.InDelta(t, math.Sqrt(14), v.Norm(), 1e-12)

	// The cross product is perpendicular to both factors.
	c := v.Cross(u)
	assert.Equal(t, Vec{27, 6, -13}, c)
	assert.InDelta(t, 0, c.Dot(v), 1e-12)
	assert.InDelta(t, 0, c.Dot(u), 1e-12)
}

func TestNormalize(t *testing.T) {
	u, ok := Vec{3, 0, 4}.Normalize()
	require.True(t, ok)
	assert.InDelta(t, 1, u.Norm(), 1e-12)
	assert.InDelta(t, 0.6, u[0], 1e-12)
	assert.InDelta(t, 0.0, u[1], 1e-12)
	assert.InDelta(t, 0.8, u[2], 1e-12)

	u, ok = Vec{}.Normalize()
	assert.False(t, ok)
	assert.Equal(t, Vec{}, u)
}

func TestEulerMatrixAxes(t *testing.T) {
	// psi alone is a rotation around z.
	m := EulerMatrix(0, 0, math.Pi/2)
	got := Vec{1, 0, 0}.Rotate(m)
	assert.InDelta(t, 0, got[0], 1e-12)
	assert.InDelta(t, -1, got[1], 1e-12)
	assert.InDelta(t, 0, got[2], 1e-12)

	// phi alone is a rotation around x.
	m = EulerMatrix(math.Pi/2, 0, 0)
	got = Vec{1, 0, 0}.Rotate(m)
	assert.InDelta(t, 1, got[0], 1e-12)
	assert.InDelta(t, 0, got[1], 1e-12)
	assert.InDelta(t, 0, got[2], 1e-12)
}

func TestEulerMatrixIsometry(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		m := EulerMatrix(
			rng.Float64()*2*math.Pi,
			rng.Float64()*2*math.Pi,
			rng.Float64()*2*math.Pi,
		)
		v, u := randomVec(rng), randomVec(rng)
		assert.InDelta(t, v.Norm(), v.Rotate(m).Norm(), 1e-12)
		assert.InDelta(t, v.Dot(u), v.Rotate(m).Dot(u.Rotate(m)), 1e-12)
	}
}

func TestAxisAngleQuat(t *testing.T) {
	q := AxisAngleQuat(Vec{0, 0, 2}, math.Pi/2)
	got := q.Rotate(Vec{1, 0, 0})
	assert.InDelta(t, 0, got[0], 1e-12)
	assert.InDelta(t, 1, got[1], 1e-12)
	assert.InDelta(t, 0, got[2], 1e-12)

	assert.Equal(t, IdentityQuat(), AxisAngleQuat(Vec{}, 1))
}

func TestQuatConjInverts(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		axis, ok := randomVec(rng).Normalize()
		require.True(t, ok)
		q := AxisAngleQuat(axis, rng.Float64()*2*math.Pi)
		v := randomVec(rng)

		back := q.Conj().Rotate(q.Rotate(v))
		assert.InDelta(t, v[0], back[0], 1e-12)
		assert.InDelta(t, v[1], back[1], 1e-12)
		assert.InDelta(t, v[2], back[2], 1e-12)
	}
}

func TestQuatMultComposes(t *testing.T) {
	qx := AxisAngleQuat(Vec{1, 0, 0}, math.Pi/2)
	qz := AxisAngleQuat(Vec{0, 0, 1}, math.Pi/2)

	v := Vec{0, 1, 0}
	composed := qz.Mult(qx).Rotate(v)
	stepped := qz.Rotate(qx.Rotate(v))
	assert.InDelta(t, stepped[0], composed[0], 1e-12)
	assert.InDelta(t, stepped[1], composed[1], 1e-12)
	assert.InDelta(t, stepped[2], composed[2], 1e-12)

	// x'ing y gives z, then z'ing z is a no-op.
	assert.InDelta(t, 0, composed[0], 1e-12)
	assert.InDelta(t, 0, composed[1], 1e-12)
	assert.InDelta(t, 1, composed[2], 1e-12)
}

func TestQuatRotationIsometry(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 20; i++ {
		axis, ok := randomVec(rng).Normalize()
		require.True(t, ok)
		q := AxisAngleQuat(axis, rng.Float64()*2*math.Pi)
		v := randomVec(rng)
		assert.InDelta(t, v.Norm(), q.Rotate(v).Norm(), 1e-12)
	}
}

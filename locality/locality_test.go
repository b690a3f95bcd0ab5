package locality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcollanton/freud/box"
	"github.com/rpcollanton/freud/geom"
)

func simpleCubic(n int, a float64) (*box.Box, []geom.Vec) {
	b, err := box.Cube(float64(n) * a)
	if err != nil {
		panic(err)
	}
	points := []geom.Vec{}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				points = append(points, geom.Vec{
					float64(i) * a, float64(j) * a, float64(k) * a,
				})
			}
		}
	}
	return b, points
}

func TestFromArraysValidation(t *testing.T) {
	_, err := FromArrays(2, 2, []int{0, 1}, []int{1}, []float64{1, 1}, nil)
	assert.Error(t, err, "mismatched lengths")

	_, err = FromArrays(2, 2, []int{0, 2}, []int{1, 0}, []float64{1, 1}, nil)
	assert.Error(t, err, "query index out of range")

	_, err = FromArrays(2, 2, []int{0, 1}, []int{1, 2}, []float64{1, 1}, nil)
	assert.Error(t, err, "point index out of range")

	_, err = FromArrays(2, 2, []int{1, 0}, []int{0, 1}, []float64{1, 1}, nil)
	assert.Error(t, err, "unsorted query indices")

	_, err = FromArrays(2, 2, []int{0, 1}, []int{1, 0}, []float64{1, -1}, nil)
	assert.Error(t, err, "negative distance")
}

func TestDefaultWeights(t *testing.T) {
	nl, err := FromArrays(2, 2, []int{0, 1}, []int{1, 0}, []float64{1, 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, nl.Weights())
}

func TestSegments(t *testing.T) {
	// Particle 1 has no bonds; its segment must be empty, not skipped.
	nl, err := FromArrays(
		3, 3,
		[]int{0, 0, 2}, []int{1, 2, 0}, []float64{1, 1, 1}, nil,
	)
	require.NoError(t, err)

	start, end := nl.Segment(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)

	start, end = nl.Segment(1)
	assert.Equal(t, start, end, "empty segment")

	start, end = nl.Segment(2)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)
}

func TestWithWeights(t *testing.T) {
	nl, err := FromArrays(2, 2, []int{0, 1}, []int{1, 0}, []float64{1, 1}, nil)
	require.NoError(t, err)

	weighted, err := nl.WithWeights([]float64{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, weighted.Weights())
	assert.Equal(t, []float64{1, 1}, nl.Weights(), "original untouched")
}

func TestBallQuerySimpleCubic(t *testing.T) {
	b, points := simpleCubic(4, 1)
	nl, err := Build(b, points, points, QueryArgs{
		Mode: Ball, RMax: 1.1, ExcludeSelf: true,
	})
	require.NoError(t, err)

	assert.Equal(t, len(points), nl.NumQueryPoints())
	for q := range points {
		start, end := nl.Segment(q)
		assert.Equal(t, 6, end-start, "simple cubic first shell")
		for i := start; i < end; i++ {
			assert.InDelta(t, 1.0, nl.Distance(i), 1e-12)
			assert.NotEqual(t, q, nl.Index(i), "self bond excluded")
		}
	}
}

func TestBallQueryBruteForceFallback(t *testing.T) {
	// A box this small cannot fit three cells per axis, forcing the
	// direct pairwise path. Results must agree with the grid path.
	b, points := simpleCubic(3, 1)
	require.Nil(t, newCellGrid(b, points, 1.1))

	nl, err := Build(b, points, points, QueryArgs{
		Mode: Ball, RMax: 1.1, ExcludeSelf: true,
	})
	require.NoError(t, err)

	for q := range points {
		start, end := nl.Segment(q)
		assert.Equal(t, 6, end-start)
	}
}

func TestBallQueryRMaxTooLarge(t *testing.T) {
	// Beyond half the box width, each pair only contributes its minimum
	// image, which would undercount the physical shell. Such searches
	// are rejected instead.
	b, points := simpleCubic(2, 1)
	_, err := Build(b, points, points, QueryArgs{
		Mode: Ball, RMax: 1.1, ExcludeSelf: true,
	})
	assert.Error(t, err)

	// Non-periodic axes have no images to miss, so no radius limit.
	open, err := box.New(
		geom.Vec{10, 0, 0}, geom.Vec{0, 10, 0}, geom.Vec{0, 0, 10},
		[3]bool{false, false, false},
	)
	require.NoError(t, err)
	far := []geom.Vec{{1, 1, 1}, {9, 1, 1}}
	nl, err := Build(open, far, far, QueryArgs{
		Mode: Ball, RMax: 8.5, ExcludeSelf: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, nl.Len())
}

func TestNearestQuery(t *testing.T) {
	b, points := simpleCubic(4, 1)
	nl, err := Build(b, points, points, QueryArgs{
		Mode: Nearest, NumNeighbors: 6, ExcludeSelf: true,
	})
	require.NoError(t, err)

	for q := range points {
		start, end := nl.Segment(q)
		assert.Equal(t, 6, end-start)
		for i := start; i < end; i++ {
			assert.InDelta(t, 1.0, nl.Distance(i), 1e-12, "first shell only")
		}
	}
}

func TestNearestQueryIncludesSelf(t *testing.T) {
	b, points := simpleCubic(3, 1)
	nl, err := Build(b, points, points, QueryArgs{
		Mode: Nearest, NumNeighbors: 1, ExcludeSelf: false,
	})
	require.NoError(t, err)

	for q := range points {
		start, end := nl.Segment(q)
		require.Equal(t, 1, end-start)
		assert.Equal(t, q, nl.Index(start), "closest point is the particle itself")
		assert.InDelta(t, 0.0, nl.Distance(start), 1e-12)
	}
}

func TestQueryArgsValidation(t *testing.T) {
	b, points := simpleCubic(2, 1)

	_, err := Build(b, points, points, QueryArgs{Mode: Ball, RMax: 0})
	assert.Error(t, err, "ball query needs RMax")

	_, err = Build(b, points, points, QueryArgs{Mode: Nearest})
	assert.Error(t, err, "nearest query needs NumNeighbors")

	_, err = Build(b, points, points, QueryArgs{Mode: QueryMode(42), RMax: 1})
	assert.Error(t, err, "unknown mode")
}

func TestParseQueryMode(t *testing.T) {
	m, err := ParseQueryMode("ball")
	require.NoError(t, err)
	assert.Equal(t, Ball, m)

	m, err = ParseQueryMode("nearest")
	require.NoError(t, err)
	assert.Equal(t, Nearest, m)

	_, err = ParseQueryMode("voronoi")
	assert.Error(t, err)
}

func TestGridAgreesWithBruteForce(t *testing.T) {
	b, points := simpleCubic(5, 1)
	args := QueryArgs{Mode: Ball, RMax: 1.6, ExcludeSelf: true}

	grid := newCellGrid(b, points, args.RMax)
	require.NotNil(t, grid, "grid path should be taken for this box")

	gridBonds := grid.ballQuery(points, args)
	bruteBonds := bruteBallQuery(b, points, points, args)
	assert.Equal(t, bruteBonds, gridBonds)
}

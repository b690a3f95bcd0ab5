/*Package locality contains the neighbor machinery that order-parameter
computations are built on: a sparse bond list between query particles and
their neighbors, and the searches that construct one from a box and a point
set.
*/
package locality

import (
	"fmt"
)

// NeighborList is an immutable list of bonds. Each bond connects a query
// particle to one of its neighbors and carries the periodic distance between
// them and a caller-supplied weight.
//
// Bonds are stored sorted by query index, so the bonds of one particle form
// a contiguous segment. The per-particle segment offsets are built by a
// single linear scan at construction.
type NeighborList struct {
	queryIndices []int
	indices      []int
	distances    []float64
	weights      []float64

	numQueryPoints, numPoints int
	starts                    []int // len numQueryPoints+1 segment offsets.
}

// FromArrays creates a NeighborList from parallel bond arrays. queryIndices
// must be sorted in non-decreasing order. weights may be nil, in which case
// every bond gets weight 1. The arrays are copied, so the caller may reuse
// them.
func FromArrays(
	numQueryPoints, numPoints int,
	queryIndices, indices []int,
	distances, weights []float64,
) (*NeighborList, error) {
	n := len(queryIndices)
	if len(indices) != n || len(distances) != n ||
		(weights != nil && len(weights) != n) {
		return nil, fmt.Errorf(
			"locality: bond arrays have mismatched lengths %d, %d, %d",
			n, len(indices), len(distances),
		)
	}

	nl := &NeighborList{
		queryIndices:   make([]int, n),
		indices:        make([]int, n),
		distances:      make([]float64, n),
		weights:        make([]float64, n),
		numQueryPoints: numQueryPoints,
		numPoints:      numPoints,
	}
	copy(nl.queryIndices, queryIndices)
	copy(nl.indices, indices)
	copy(nl.distances, distances)
	if weights == nil {
		for i := range nl.weights {
			nl.weights[i] = 1
		}
	} else {
		copy(nl.weights, weights)
	}

	prev := 0
	for i := 0; i < n; i++ {
		qi, pi := nl.queryIndices[i], nl.indices[i]
		if qi < 0 || qi >= numQueryPoints {
			return nil, fmt.Errorf(
				"locality: bond %d has query index %d, not in [0, %d)",
				i, qi, numQueryPoints,
			)
		}
		if pi < 0 || pi >= numPoints {
			return nil, fmt.Errorf(
				"locality: bond %d has point index %d, not in [0, %d)",
				i, pi, numPoints,
			)
		}
		if qi < prev {
			return nil, fmt.Errorf(
				"locality: bonds are not sorted by query index at bond %d", i,
			)
		}
		if nl.distances[i] < 0 {
			return nil, fmt.Errorf(
				"locality: bond %d has negative distance %g",
				i, nl.distances[i],
			)
		}
		prev = qi
	}

	nl.buildSegments()
	return nl, nil
}

func (nl *NeighborList) buildSegments() {
	nl.starts = make([]int, nl.numQueryPoints+1)
	bond := 0
	for q := 0; q < nl.numQueryPoints; q++ {
		nl.starts[q] = bond
		for bond < len(nl.queryIndices) && nl.queryIndices[bond] == q {
			bond++
		}
	}
	nl.starts[nl.numQueryPoints] = bond
}

// Len returns the number of bonds in the list.
func (nl *NeighborList) Len() int { return len(nl.queryIndices) }

// NumQueryPoints returns the number of query particles the list was built
// for, including those with no bonds.
func (nl *NeighborList) NumQueryPoints() int { return nl.numQueryPoints }

// NumPoints returns the number of particles on the neighbor side of the
// list.
func (nl *NeighborList) NumPoints() int { return nl.numPoints }

// Segment returns the half-open bond range [start, end) belonging to query
// particle q.
func (nl *NeighborList) Segment(q int) (start, end int) {
	return nl.starts[q], nl.starts[q+1]
}

// QueryIndex returns the query particle index of bond i.
func (nl *NeighborList) QueryIndex(i int) int { return nl.queryIndices[i] }

// Index returns the neighbor particle index of bond i.
func (nl *NeighborList) Index(i int) int { return nl.indices[i] }

// Distance returns the periodic distance of bond i.
func (nl *NeighborList) Distance(i int) float64 { return nl.distances[i] }

// Weight returns the weight of bond i.
func (nl *NeighborList) Weight(i int) float64 { return nl.weights[i] }

// Weights returns a copy of the bond weight array, in bond order.
func (nl *NeighborList) Weights() []float64 {
	out := make([]float64, len(nl.weights))
	copy(out, nl.weights)
	return out
}

// WithWeights returns a copy of the list with the given per-bond weights.
func (nl *NeighborList) WithWeights(weights []float64) (*NeighborList, error) {
	return FromArrays(
		nl.numQueryPoints, nl.numPoints,
		nl.queryIndices, nl.indices, nl.distances, weights,
	)
}

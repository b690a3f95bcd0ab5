package locality

import (
	"fmt"
	"sort"

	"github.com/rpcollanton/freud/box"
	"github.com/rpcollanton/freud/geom"
)

// QueryMode selects the kind of neighbor search Build performs.
type QueryMode int

const (
	// Ball finds every neighbor within RMax of each query point.
	Ball QueryMode = iota
	// Nearest finds the NumNeighbors closest points to each query point.
	Nearest
)

func (m QueryMode) String() string {
	switch m {
	case Ball:
		return "ball"
	case Nearest:
		return "nearest"
	}
	return fmt.Sprintf("QueryMode(%d)", int(m))
}

// ParseQueryMode converts the textual mode names "ball" and "nearest" to
// their QueryMode values.
func ParseQueryMode(s string) (QueryMode, error) {
	switch s {
	case "ball":
		return Ball, nil
	case "nearest":
		return Nearest, nil
	}
	return 0, fmt.Errorf("locality: unknown query mode %q", s)
}

// QueryArgs parameterize a neighbor search.
type QueryArgs struct {
	Mode QueryMode
	// RMax is the search radius for Ball mode.
	RMax float64
	// NumNeighbors is the neighbor count for Nearest mode.
	NumNeighbors int
	// ExcludeSelf skips bonds whose query index equals the point index.
	// This only makes sense when querying a point set against itself.
	ExcludeSelf bool
}

// Build runs a neighbor search of the queryPoints against the points inside
// the given box and returns the resulting bond list, sorted by query index
// and then by distance. All bond weights are 1.
func Build(
	b *box.Box, queryPoints, points []geom.Vec, args QueryArgs,
) (*NeighborList, error) {
	switch args.Mode {
	case Ball:
		if args.RMax <= 0 {
			return nil, fmt.Errorf(
				"locality: ball query requires positive RMax, got %g",
				args.RMax,
			)
		}
		// Beyond half the box width the minimum image convention only
		// sees one image of each pair, so the search would silently
		// miss periodic neighbors.
		for i := 0; i < 3; i++ {
			if !b.Periodic(i) {
				continue
			}
			if half := b.PerpendicularWidth(i) / 2; args.RMax > half {
				return nil, fmt.Errorf(
					"locality: RMax %g exceeds half the box width %g along axis %d",
					args.RMax, half, i,
				)
			}
		}
	case Nearest:
		if args.NumNeighbors <= 0 {
			return nil, fmt.Errorf(
				"locality: nearest query requires positive NumNeighbors, got %d",
				args.NumNeighbors,
			)
		}
	default:
		return nil, fmt.Errorf("locality: unknown query mode %d", args.Mode)
	}

	var bonds []bond
	if args.Mode == Ball {
		if g := newCellGrid(b, points, args.RMax); g != nil {
			bonds = g.ballQuery(queryPoints, args)
		} else {
			bonds = bruteBallQuery(b, queryPoints, points, args)
		}
	} else {
		bonds = nearestQuery(b, queryPoints, points, args)
	}

	n := len(bonds)
	queryIndices, indices := make([]int, n), make([]int, n)
	distances := make([]float64, n)
	for i, bn := range bonds {
		queryIndices[i], indices[i], distances[i] = bn.query, bn.index, bn.dist
	}
	return FromArrays(
		len(queryPoints), len(points), queryIndices, indices, distances, nil,
	)
}

type bond struct {
	query, index int
	dist         float64
}

func sortSegment(bonds []bond) {
	sort.Slice(bonds, func(i, j int) bool {
		if bonds[i].dist != bonds[j].dist {
			return bonds[i].dist < bonds[j].dist
		}
		return bonds[i].index < bonds[j].index
	})
}

func bruteBallQuery(
	b *box.Box, queryPoints, points []geom.Vec, args QueryArgs,
) []bond {
	bonds := []bond{}
	for qi, q := range queryPoints {
		start := len(bonds)
		for pi, p := range points {
			if args.ExcludeSelf && qi == pi {
				continue
			}
			r := b.MinimumImage(p.Sub(q)).Norm()
			if r <= args.RMax {
				bonds = append(bonds, bond{qi, pi, r})
			}
		}
		sortSegment(bonds[start:])
	}
	return bonds
}

func nearestQuery(
	b *box.Box, queryPoints, points []geom.Vec, args QueryArgs,
) []bond {
	bonds := []bond{}
	candidates := make([]bond, 0, len(points))
	for qi, q := range queryPoints {
		candidates = candidates[:0]
		for pi, p := range points {
			if args.ExcludeSelf && qi == pi {
				continue
			}
			r := b.MinimumImage(p.Sub(q)).Norm()
			candidates = append(candidates, bond{qi, pi, r})
		}
		sortSegment(candidates)

		n := args.NumNeighbors
		if n > len(candidates) {
			n = len(candidates)
		}
		bonds = append(bonds, candidates[:n]...)
	}
	return bonds
}

// cellGrid is a periodic linked-cell grid over the fractional coordinates
// of a point set. It turns ball queries from O(Nq N) into a scan of the 27
// cells around each query point.
type cellGrid struct {
	b      *box.Box
	points []geom.Vec
	rMax   float64
	nc     [3]int
	cells  [][]int
}

// newCellGrid builds a grid for the given search radius. It returns nil if
// the box is too small or too skewed for a 27-cell scan to be exhaustive,
// in which case the caller must fall back to the direct pairwise search.
func newCellGrid(b *box.Box, points []geom.Vec, rMax float64) *cellGrid {
	g := &cellGrid{b: b, points: points, rMax: rMax}
	for i := 0; i < 3; i++ {
		if !b.Periodic(i) {
			return nil
		}
		// The perpendicular width of the cell along each axis must be at
		// least rMax for one shell of cells to cover the search sphere.
		g.nc[i] = int(b.PerpendicularWidth(i) / rMax)
		if g.nc[i] < 3 {
			return nil
		}
	}

	g.cells = make([][]int, g.nc[0]*g.nc[1]*g.nc[2])
	for pi, p := range points {
		idx := g.cellIndex(g.cellCoords(p))
		g.cells[idx] = append(g.cells[idx], pi)
	}
	return g
}

func (g *cellGrid) cellCoords(p geom.Vec) [3]int {
	s := g.b.Fractional(g.b.Wrap(p))
	var c [3]int
	for i := 0; i < 3; i++ {
		c[i] = int(s[i] * float64(g.nc[i]))
		// Guard against s[i] rounding up to exactly 1.
		if c[i] >= g.nc[i] {
			c[i] = g.nc[i] - 1
		}
		if c[i] < 0 {
			c[i] = 0
		}
	}
	return c
}

func (g *cellGrid) cellIndex(c [3]int) int {
	return c[0] + g.nc[0]*(c[1]+g.nc[1]*c[2])
}

func (g *cellGrid) ballQuery(queryPoints []geom.Vec, args QueryArgs) []bond {
	bonds := []bond{}
	for qi, q := range queryPoints {
		start := len(bonds)
		c := g.cellCoords(q)
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nc := [3]int{
						mod(c[0]+dx, g.nc[0]),
						mod(c[1]+dy, g.nc[1]),
						mod(c[2]+dz, g.nc[2]),
					}
					for _, pi := range g.cells[g.cellIndex(nc)] {
						if args.ExcludeSelf && qi == pi {
							continue
						}
						r := g.b.MinimumImage(g.points[pi].Sub(q)).Norm()
						if r <= args.RMax {
							bonds = append(bonds, bond{qi, pi, r})
						}
					}
				}
			}
		}
		sortSegment(bonds[start:])
	}
	return bonds
}

func mod(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}

/*Package pmft computes potentials of mean force and torque as spatial bond
histograms. Its resident XYT covers 2D systems with an orientation angle per
particle: every bond is binned by its separation in the query particle's
oriented frame and by the relative angle between the two bond directions.
*/
package pmft

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rpcollanton/freud/box"
	"github.com/rpcollanton/freud/geom"
	"github.com/rpcollanton/freud/locality"
)

// XYT is a three dimensional histogram of bond counts: x and y of the bond
// in the query particle's frame over [-maxX, maxX) x [-maxY, maxY), and the
// relative bond angle over [-maxT, maxT). Bonds outside the window are
// dropped.
//
// Unlike the Steinhardt engine, Accumulate adds to the running counts, so
// one XYT can aggregate bonds over many frames; Reset starts a new
// histogram. An XYT must not be used from multiple goroutines at once.
type XYT struct {
	maxX, maxY, maxT float64
	nx, ny, nt       int
	dx, dy, dt       float64
	workers          int

	counts []uint64
}

// New creates an XYT histogram extending to +-maxX, +-maxY, and +-maxT with
// the given number of bins per dimension. Each dimension needs at least two
// bins so a bin is never wider than its half-window.
func New(maxX, maxY, maxT float64, nx, ny, nt int) (*XYT, error) {
	switch {
	case maxX <= 0 || maxY <= 0 || maxT <= 0:
		return nil, fmt.Errorf(
			"pmft: window extents must be positive, got %g, %g, %g",
			maxX, maxY, maxT,
		)
	case nx < 2 || ny < 2 || nt < 2:
		return nil, fmt.Errorf(
			"pmft: at least two bins per dimension, got %d, %d, %d",
			nx, ny, nt,
		)
	}

	return &XYT{
		maxX: maxX, maxY: maxY, maxT: maxT,
		nx: nx, ny: ny, nt: nt,
		dx: 2 * maxX / float64(nx),
		dy: 2 * maxY / float64(ny),
		dt: 2 * maxT / float64(nt),

		workers: runtime.NumCPU(),
		counts:  make([]uint64, nx*ny*nt),
	}, nil
}

// NumBins returns the bin counts per dimension.
func (h *XYT) NumBins() (nx, ny, nt int) { return h.nx, h.ny, h.nt }

// Index returns the flat index of bin (ix, iy, it). x varies fastest.
func (h *XYT) Index(ix, iy, it int) int {
	return (it*h.ny+iy)*h.nx + ix
}

// SetWorkers sets the number of goroutines Accumulate uses. Values below
// one reset it to the number of logical cores.
func (h *XYT) SetWorkers(n int) {
	if n < 1 {
		n = runtime.NumCPU()
	}
	h.workers = n
}

func binCenters(max, d float64, n int) []float64 {
	centers := make([]float64, n)
	for i := range centers {
		centers[i] = -max + d*(float64(i)+0.5)
	}
	return centers
}

// BinCentersX returns the x coordinates of the bin centers.
func (h *XYT) BinCentersX() []float64 { return binCenters(h.maxX, h.dx, h.nx) }

// BinCentersY returns the y coordinates of the bin centers.
func (h *XYT) BinCentersY() []float64 { return binCenters(h.maxY, h.dy, h.ny) }

// BinCentersT returns the angle coordinates of the bin centers.
func (h *XYT) BinCentersT() []float64 { return binCenters(h.maxT, h.dt, h.nt) }

// Counts returns a copy of the accumulated bond counts, laid out per Index.
func (h *XYT) Counts() []uint64 {
	out := make([]uint64, len(h.counts))
	copy(out, h.counts)
	return out
}

// Reset zeroes the accumulated counts.
func (h *XYT) Reset() {
	for i := range h.counts {
		h.counts[i] = 0
	}
}

// Accumulate bins every bond of the neighbor list into the histogram.
// orientations holds one in-plane angle per particle. If nlist is nil, a
// ball search out to the window's corner radius is run first. Coincident
// particle pairs carry no bond direction and are skipped.
func (h *XYT) Accumulate(
	b *box.Box, points []geom.Vec, orientations []float64,
	nlist *locality.NeighborList,
) (*XYT, error) {
	if len(orientations) != len(points) {
		return h, fmt.Errorf(
			"pmft: %d orientations for %d points",
			len(orientations), len(points),
		)
	}
	if nlist == nil {
		var err error
		nlist, err = locality.Build(b, points, points, locality.QueryArgs{
			Mode:        locality.Ball,
			RMax:        math.Hypot(h.maxX, h.maxY),
			ExcludeSelf: true,
		})
		if err != nil {
			return h, err
		}
	}
	if nlist.NumQueryPoints() != len(points) ||
		nlist.NumPoints() != len(points) {
		return h, fmt.Errorf(
			"pmft: neighbor list covers %d x %d particles, but %d points were given",
			nlist.NumQueryPoints(), nlist.NumPoints(), len(points),
		)
	}

	n := len(points)
	workers := h.workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	// Per-worker local histograms, merged after the group wait.
	locals := make([][]uint64, workers)
	g := new(errgroup.Group)
	for w := 0; w < workers; w++ {
		w := w
		lo := w * n / workers
		hi := (w + 1) * n / workers
		locals[w] = make([]uint64, len(h.counts))
		g.Go(func() error {
			local := locals[w]
			for q := lo; q < hi; q++ {
				start, end := nlist.Segment(q)
				for i := start; i < end; i++ {
					j := nlist.Index(i)
					d := b.MinimumImage(points[j].Sub(points[q]))
					if d.Norm() == 0 {
						continue
					}
					h.binBond(local, d, orientations[q], orientations[j])
				}
			}
			return nil
		})
	}
	g.Wait()

	for _, local := range locals {
		for i, c := range local {
			h.counts[i] += c
		}
	}
	return h, nil
}

// binBond rotates the bond into the query particle's frame, computes the
// relative bond angle, and increments the matching bin if the bond falls
// inside the window.
func (h *XYT) binBond(counts []uint64, d geom.Vec, qTheta, pTheta float64) {
	sin, cos := math.Sincos(qTheta)
	x := cos*d[0] + sin*d[1]
	y := -sin*d[0] + cos*d[1]

	// Angle of the bond leaving the query particle minus the angle of
	// the same bond arriving at the neighbor, each in its particle's
	// frame.
	t1 := math.Atan2(d[1], d[0]) - qTheta
	t2 := math.Atan2(-d[1], -d[0]) - pTheta
	t := t1 - t2

	ix := int(math.Floor((x + h.maxX) / h.dx))
	iy := int(math.Floor((y + h.maxY) / h.dy))
	it := int(math.Floor((t + h.maxT) / h.dt))
	if ix < 0 || ix >= h.nx || iy < 0 || iy >= h.ny ||
		it < 0 || it >= h.nt {
		return
	}
	counts[h.Index(ix, iy, it)]++
}

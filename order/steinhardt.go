package order

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rpcollanton/freud/box"
	"github.com/rpcollanton/freud/geom"
	"github.com/rpcollanton/freud/locality"
)

var (
	// ErrNotComputed is returned when a result accessor is called before
	// the first successful Compute.
	ErrNotComputed = errors.New("order: results have not been computed yet")
	// ErrMissingNeighbors is returned when Compute is called with neither
	// a neighbor list nor query arguments to build one.
	ErrMissingNeighbors = errors.New(
		"order: neither a neighbor list nor query arguments were supplied",
	)
)

// Options selects the Steinhardt variant. The four combinations of Average
// and Wl share one accumulation pipeline and differ only in the final
// reduction and per-bond scale factor, so they are flags rather than
// separate types.
type Options struct {
	// Average replaces each particle's qlm with the mean of its
	// neighbors' raw qlm vectors before reduction (the Lechner-Dellago
	// second-shell variant).
	Average bool
	// Wl selects the cubic Wigner 3-j invariant instead of the quadratic
	// norm.
	Wl bool
	// Weighted scales each bond's contribution by the neighbor list's
	// weight for it and normalizes by the total weight.
	Weighted bool
}

// Steinhardt computes Ql and Wl order parameters for a point set. The
// configuration is fixed at construction; Compute may be called any number
// of times, and each call fully replaces the previous results.
//
// A Steinhardt instance must not be used from multiple goroutines at once:
// Compute parallelizes internally, but the engine itself is single-caller.
type Steinhardt struct {
	l       int
	opt     Options
	workers int

	harm   *Harmonics
	wigner *wignerTable // Built once at construction when opt.Wl is set.

	res *result
}

// result holds the output of one Compute call. It is assembled completely
// before being installed on the engine, so a failed Compute leaves the
// previous results readable.
type result struct {
	qlm          [][]complex128
	order        []complex128
	norm         complex128
	numParticles int
}

// New creates a Steinhardt engine for spherical harmonic degree l. l must
// be positive.
func New(l int, opt Options) (*Steinhardt, error) {
	if l < 1 {
		return nil, fmt.Errorf("order: degree must be positive, got %d", l)
	}

	st := &Steinhardt{
		l:       l,
		opt:     opt,
		workers: runtime.NumCPU(),
		harm:    NewHarmonics(l),
	}
	if opt.Wl {
		st.wigner = newWignerTable(l)
	}
	return st, nil
}

// Degree returns the spherical harmonic degree l.
func (st *Steinhardt) Degree() int { return st.l }

// Options returns the engine's configuration flags.
func (st *Steinhardt) Options() Options { return st.opt }

// SetWorkers sets the number of goroutines Compute uses for the
// accumulation pass. Values below one reset it to the number of logical
// cores.
func (st *Steinhardt) SetWorkers(n int) {
	if n < 1 {
		n = runtime.NumCPU()
	}
	st.workers = n
}

// Compute evaluates the order parameter for the given points inside b. If
// nlist is non-nil it supplies the bonds directly and must cover exactly
// len(points) query particles; otherwise query must be non-nil and a
// neighbor search is run first. The engine itself is returned so results
// can be read off a chained call.
func (st *Steinhardt) Compute(
	b *box.Box, points []geom.Vec,
	nlist *locality.NeighborList, query *locality.QueryArgs,
) (*Steinhardt, error) {
	if nlist == nil {
		if query == nil {
			return st, ErrMissingNeighbors
		}
		var err error
		nlist, err = locality.Build(b, points, points, *query)
		if err != nil {
			return st, err
		}
	}
	if nlist.NumQueryPoints() != len(points) {
		return st, fmt.Errorf(
			"order: neighbor list covers %d query particles, but %d points were given",
			nlist.NumQueryPoints(), len(points),
		)
	}
	if nlist.NumPoints() != len(points) {
		return st, fmt.Errorf(
			"order: neighbor list refers to %d particles, but %d points were given",
			nlist.NumPoints(), len(points),
		)
	}

	qlm, err := st.accumulate(b, points, nlist)
	if err != nil {
		return st, err
	}
	if st.opt.Average {
		qlm = st.shellAverage(qlm, nlist)
	}

	res := &result{qlm: qlm, numParticles: len(points)}
	res.order = make([]complex128, len(points))
	for i := range qlm {
		res.order[i] = st.reduce(qlm[i])
	}
	res.norm = st.reduce(meanQlm(qlm, st.harm.Len()))

	st.res = res
	return st, nil
}

// accumulate runs the per-bond harmonic evaluation and per-particle
// averaging. Particles are partitioned across workers by segment, so no two
// goroutines ever write the same particle's vector.
func (st *Steinhardt) accumulate(
	b *box.Box, points []geom.Vec, nlist *locality.NeighborList,
) ([][]complex128, error) {
	n := len(points)
	width := st.harm.Len()

	flat := make([]complex128, n*width)
	qlm := make([][]complex128, n)
	for i := range qlm {
		qlm[i] = flat[i*width : (i+1)*width]
	}

	workers := st.workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	g := new(errgroup.Group)
	for w := 0; w < workers; w++ {
		lo := w * n / workers
		hi := (w + 1) * n / workers
		g.Go(func() error {
			ylm := make([]complex128, width)
			for q := lo; q < hi; q++ {
				start, end := nlist.Segment(q)
				total := 0.0
				for i := start; i < end; i++ {
					d := b.MinimumImage(points[nlist.Index(i)].Sub(points[q]))
					if d.Norm() == 0 {
						return fmt.Errorf(
							"order: zero-length bond from particle %d to %d",
							q, nlist.Index(i),
						)
					}

					weight := 1.0
					if st.opt.Weighted {
						weight = nlist.Weight(i)
					}
					st.harm.Eval(d, ylm)
					for m := 0; m < width; m++ {
						qlm[q][m] += complex(weight, 0) * ylm[m]
					}
					total += weight
				}
				// A particle with no bonds keeps a zero vector rather than
				// dividing by zero.
				if total != 0 {
					inv := complex(1/total, 0)
					for m := 0; m < width; m++ {
						qlm[q][m] *= inv
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return qlm, nil
}

// shellAverage replaces each particle's vector with the unweighted mean of
// its neighbors' raw vectors, re-using the same bond list as the
// second-shell relation. It must only run once the raw array is complete.
func (st *Steinhardt) shellAverage(
	raw [][]complex128, nlist *locality.NeighborList,
) [][]complex128 {
	width := st.harm.Len()
	flat := make([]complex128, len(raw)*width)
	ave := make([][]complex128, len(raw))

	for q := range raw {
		ave[q] = flat[q*width : (q+1)*width]
		start, end := nlist.Segment(q)
		if start == end {
			continue
		}
		for i := start; i < end; i++ {
			neighbor := raw[nlist.Index(i)]
			for m := 0; m < width; m++ {
				ave[q][m] += neighbor[m]
			}
		}
		inv := complex(1/float64(end-start), 0)
		for m := 0; m < width; m++ {
			ave[q][m] *= inv
		}
	}
	return ave
}

// reduce collapses one qlm vector to the configured rotational invariant.
// In Ql mode the result is real and non-negative; in Wl mode it is the
// complex contraction, of which callers conventionally report the real
// part.
func (st *Steinhardt) reduce(qlm []complex128) complex128 {
	if st.opt.Wl {
		return st.wigner.Contract(qlm)
	}
	sum := 0.0
	for _, q := range qlm {
		sum += real(q)*real(q) + imag(q)*imag(q)
	}
	return complex(qlNorm(st.l, sum), 0)
}

func qlNorm(l int, sumSq float64) float64 {
	return math.Sqrt(4 * math.Pi / float64(2*l+1) * sumSq)
}

func meanQlm(qlm [][]complex128, width int) []complex128 {
	mean := make([]complex128, width)
	if len(qlm) == 0 {
		return mean
	}
	for _, q := range qlm {
		for m := 0; m < width; m++ {
			mean[m] += q[m]
		}
	}
	inv := complex(1/float64(len(qlm)), 0)
	for m := 0; m < width; m++ {
		mean[m] *= inv
	}
	return mean
}

// Order returns the per-particle invariant from the most recent Compute
// call. In Ql mode the imaginary parts are zero. The returned slice is
// owned by the engine and must not be modified.
func (st *Steinhardt) Order() ([]complex128, error) {
	if st.res == nil {
		return nil, ErrNotComputed
	}
	return st.res.order, nil
}

// Norm returns the invariant of the mean qlm vector over all particles.
// Unlike averaging the per-particle invariants, this preserves the relative
// phase between particles; the two only coincide for systems where every
// local environment is identical.
func (st *Steinhardt) Norm() (complex128, error) {
	if st.res == nil {
		return 0, ErrNotComputed
	}
	return st.res.norm, nil
}

// NumParticles returns the number of points in the most recent Compute
// call.
func (st *Steinhardt) NumParticles() (int, error) {
	if st.res == nil {
		return 0, ErrNotComputed
	}
	return st.res.numParticles, nil
}

// Qlm returns the per-particle order parameter vectors (after shell
// averaging, when enabled) from the most recent Compute call. The returned
// slices are owned by the engine and must not be modified.
func (st *Steinhardt) Qlm() ([][]complex128, error) {
	if st.res == nil {
		return nil, ErrNotComputed
	}
	return st.res.qlm, nil
}

// String returns a textual form of the engine's configuration. It can be
// parsed back with ParseSteinhardt.
func (st *Steinhardt) String() string {
	return fmt.Sprintf(
		"Steinhardt(l=%d, average=%t, wl=%t, weighted=%t)",
		st.l, st.opt.Average, st.opt.Wl, st.opt.Weighted,
	)
}

// ParseSteinhardt constructs an engine from the representation produced by
// String. Only the configuration round-trips; results do not.
func ParseSteinhardt(s string) (*Steinhardt, error) {
	var (
		l   int
		opt Options
	)
	_, err := fmt.Sscanf(
		s, "Steinhardt(l=%d, average=%t, wl=%t, weighted=%t)",
		&l, &opt.Average, &opt.Wl, &opt.Weighted,
	)
	if err != nil {
		return nil, fmt.Errorf("order: cannot parse %q: %w", s, err)
	}
	return New(l, opt)
}

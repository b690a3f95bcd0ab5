/*Package environment analyzes local bond environments against reference
geometries. Its one resident is LocalBondProjection, which measures how well
each neighbor bond lines up with a set of reference vectors defined in a
particle's own oriented frame.
*/
package environment

import (
	"errors"
	"fmt"

	"github.com/rpcollanton/freud/box"
	"github.com/rpcollanton/freud/geom"
	"github.com/rpcollanton/freud/locality"
)

// ErrNotComputed is returned when a result accessor is called before the
// first successful Compute.
var ErrNotComputed = errors.New(
	"environment: results have not been computed yet",
)

// MaxProjection returns the largest projection of the local bond onto any
// symmetrically equivalent image of proj, i.e. onto s * proj over every
// equivalent orientation s.
func MaxProjection(proj, localBond geom.Vec, equiv []geom.Quat) float64 {
	max := equiv[0].Rotate(proj).Dot(localBond)
	for _, s := range equiv[1:] {
		if p := s.Rotate(proj).Dot(localBond); p > max {
			max = p
		}
	}
	return max
}

// LocalBondProjection computes, for every bond and every reference
// projection vector, the maximal projection of the bond onto the
// symmetrically equivalent images of that vector in the query particle's
// local frame. Like the Steinhardt engine, each Compute call fully replaces
// the previous results, and the instance is single-caller.
type LocalBondProjection struct {
	res *projectionResult
}

type projectionResult struct {
	projections []float64
	normed      []float64

	numQueryPoints, numPoints, numProj int
}

// New creates an empty LocalBondProjection engine.
func New() *LocalBondProjection {
	return &LocalBondProjection{}
}

// Compute evaluates the maximal bond projections. orientations holds one
// quaternion per query particle and rotates bonds into that particle's
// local frame. equiv lists the symmetry operations of the reference
// structure; if empty, only the identity is used. The projection arrays are
// laid out bond-major: bond b, projection vector p lands at b*len(projVecs)+p.
func (lbp *LocalBondProjection) Compute(
	b *box.Box, points []geom.Vec, orientations []geom.Quat,
	projVecs []geom.Vec, equiv []geom.Quat,
	nlist *locality.NeighborList,
) (*LocalBondProjection, error) {
	if nlist == nil {
		return lbp, errors.New("environment: a neighbor list is required")
	}
	if nlist.NumQueryPoints() != len(points) ||
		nlist.NumPoints() != len(points) {
		return lbp, fmt.Errorf(
			"environment: neighbor list covers %d x %d particles, but %d points were given",
			nlist.NumQueryPoints(), nlist.NumPoints(), len(points),
		)
	}
	if len(orientations) != len(points) {
		return lbp, fmt.Errorf(
			"environment: %d orientations for %d points",
			len(orientations), len(points),
		)
	}
	if len(projVecs) == 0 {
		return lbp, errors.New(
			"environment: at least one projection vector is required",
		)
	}
	for i, p := range projVecs {
		if p.Norm() == 0 {
			return lbp, fmt.Errorf(
				"environment: projection vector %d has zero length", i,
			)
		}
	}
	if len(equiv) == 0 {
		equiv = []geom.Quat{geom.IdentityQuat()}
	}

	res := &projectionResult{
		projections:    make([]float64, nlist.Len()*len(projVecs)),
		normed:         make([]float64, nlist.Len()*len(projVecs)),
		numQueryPoints: nlist.NumQueryPoints(),
		numPoints:      nlist.NumPoints(),
		numProj:        len(projVecs),
	}

	for bond := 0; bond < nlist.Len(); bond++ {
		q := nlist.QueryIndex(bond)
		d := b.MinimumImage(points[nlist.Index(bond)].Sub(points[q]))
		r := d.Norm()
		if r == 0 {
			return lbp, fmt.Errorf(
				"environment: zero-length bond from particle %d to %d",
				q, nlist.Index(bond),
			)
		}
		// Express the bond in the query particle's local frame.
		local := orientations[q].Conj().Rotate(d)

		for pi, proj := range projVecs {
			p := MaxProjection(proj, local, equiv)
			res.projections[bond*res.numProj+pi] = p
			res.normed[bond*res.numProj+pi] = p / (r * proj.Norm())
		}
	}

	lbp.res = res
	return lbp, nil
}

// Projections returns the maximal bond projections from the most recent
// Compute call, bond-major.
func (lbp *LocalBondProjection) Projections() ([]float64, error) {
	if lbp.res == nil {
		return nil, ErrNotComputed
	}
	return lbp.res.projections, nil
}

// NormedProjections returns the projections normalized by bond length and
// projection vector length, so a perfectly aligned bond scores 1.
func (lbp *LocalBondProjection) NormedProjections() ([]float64, error) {
	if lbp.res == nil {
		return nil, ErrNotComputed
	}
	return lbp.res.normed, nil
}

// NumQueryPoints returns the number of query particles in the most recent
// Compute call.
func (lbp *LocalBondProjection) NumQueryPoints() (int, error) {
	if lbp.res == nil {
		return 0, ErrNotComputed
	}
	return lbp.res.numQueryPoints, nil
}

// NumProj returns the number of projection vectors in the most recent
// Compute call.
func (lbp *LocalBondProjection) NumProj() (int, error) {
	if lbp.res == nil {
		return 0, ErrNotComputed
	}
	return lbp.res.numProj, nil
}

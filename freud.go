/*Package freud computes local orientational order parameters for particles
in periodic or aperiodic simulation domains.

The heavy lifting lives in the sub-packages: box describes the periodic
domain, locality builds neighbor lists, and order contains the Steinhardt
Ql/Wl engine. This package only adds one-call helpers for the common case
of running a single analysis over one point set.
*/
package freud

import (
	"github.com/rpcollanton/freud/box"
	"github.com/rpcollanton/freud/geom"
	"github.com/rpcollanton/freud/locality"
	"github.com/rpcollanton/freud/order"
)

// Ql computes the per-particle Steinhardt Ql order parameter at degree l,
// running a neighbor search with the given query arguments.
func Ql(
	b *box.Box, points []geom.Vec, l int, args locality.QueryArgs,
) ([]float64, error) {
	st, err := order.New(l, order.Options{})
	if err != nil {
		return nil, err
	}
	if _, err := st.Compute(b, points, nil, &args); err != nil {
		return nil, err
	}

	vals, err := st.Order()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = real(v)
	}
	return out, nil
}

// Wl computes the per-particle Steinhardt Wl order parameter at degree l,
// running a neighbor search with the given query arguments. The values are
// complex; most callers only use the real part.
func Wl(
	b *box.Box, points []geom.Vec, l int, args locality.QueryArgs,
) ([]complex128, error) {
	st, err := order.New(l, order.Options{Wl: true})
	if err != nil {
		return nil, err
	}
	if _, err := st.Compute(b, points, nil, &args); err != nil {
		return nil, err
	}
	return st.Order()
}

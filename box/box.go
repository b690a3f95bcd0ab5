/*Package box describes the periodic domain that particle positions live in.

A Box is defined by three lattice vectors and a periodicity flag per axis.
Orthorhombic and cubic boxes are the common cases, but fully triclinic
lattices are supported: displacements are wrapped in fractional coordinates,
so the minimum image convention works for sheared boxes too.
*/
package box

import (
	"fmt"
	"math"

	"github.com/rpcollanton/freud/geom"
	"github.com/rpcollanton/freud/math/mat"
)

// degenerateEps is the relative determinant threshold below which a lattice
// is considered degenerate.
const degenerateEps = 1e-12

// Box is a periodic simulation domain. Boxes are immutable after
// construction and safe for concurrent use.
type Box struct {
	lattice  *mat.Matrix // Lattice vectors as columns.
	inverse  *mat.Matrix
	periodic [3]bool
	volume   float64
}

// New creates a Box with the given lattice vectors and per-axis periodicity
// flags. An error is returned if the lattice is degenerate.
func New(a1, a2, a3 geom.Vec, periodic [3]bool) (*Box, error) {
	lattice := mat.NewMatrix([]float64{
		a1[0], a2[0], a3[0],
		a1[1], a2[1], a3[1],
		a1[2], a2[2], a3[2],
	}, 3, 3)

	det := lattice.Determinant()
	scale := math.Max(a1.Norm(), math.Max(a2.Norm(), a3.Norm()))
	if scale == 0 || math.Abs(det) <= degenerateEps*scale*scale*scale {
		return nil, fmt.Errorf(
			"box: degenerate lattice vectors %v, %v, %v", a1, a2, a3,
		)
	}

	return &Box{
		lattice:  lattice,
		inverse:  lattice.Invert(),
		periodic: periodic,
		volume:   math.Abs(det),
	}, nil
}

// Cube creates a fully periodic cubic box with side length l.
func Cube(l float64) (*Box, error) {
	return Orthorhombic(l, l, l)
}

// Orthorhombic creates a fully periodic box with axis-aligned lattice
// vectors of the given lengths.
func Orthorhombic(lx, ly, lz float64) (*Box, error) {
	return New(
		geom.Vec{lx, 0, 0}, geom.Vec{0, ly, 0}, geom.Vec{0, 0, lz},
		[3]bool{true, true, true},
	)
}

// Volume returns the volume of the box.
func (b *Box) Volume() float64 { return b.volume }

// Periodic returns the periodicity flag for the given axis.
func (b *Box) Periodic(dim int) bool { return b.periodic[dim] }

// Lattice returns the ith lattice vector.
func (b *Box) Lattice(i int) geom.Vec {
	return geom.Vec{
		b.lattice.Vals[i], b.lattice.Vals[3+i], b.lattice.Vals[6+i],
	}
}

// PerpendicularWidth returns the distance between the two box faces
// spanned by the other two lattice vectors. It bounds how far apart two
// points can be along the given axis before their minimum image wraps.
func (b *Box) PerpendicularWidth(dim int) float64 {
	j, k := (dim+1)%3, (dim+2)%3
	return b.volume / b.Lattice(j).Cross(b.Lattice(k)).Norm()
}

// Fractional converts an absolute position or displacement to fractional
// lattice coordinates.
func (b *Box) Fractional(v geom.Vec) geom.Vec {
	var out geom.Vec
	b.inverse.VecAt(v[:], out[:])
	return out
}

// Absolute converts fractional lattice coordinates back to an absolute
// position or displacement.
func (b *Box) Absolute(s geom.Vec) geom.Vec {
	var out geom.Vec
	b.lattice.VecAt(s[:], out[:])
	return out
}

// MinimumImage maps the displacement d to its minimum image under the box's
// periodic axes. Non-periodic axes are passed through unchanged.
func (b *Box) MinimumImage(d geom.Vec) geom.Vec {
	s := b.Fractional(d)
	for i := 0; i < 3; i++ {
		if b.periodic[i] {
			s[i] -= math.Round(s[i])
		}
	}
	return b.Absolute(s)
}

// Wrap maps the position p into the primary box image, with fractional
// coordinates in [0, 1) along each periodic axis.
func (b *Box) Wrap(p geom.Vec) geom.Vec {
	s := b.Fractional(p)
	for i := 0; i < 3; i++ {
		if b.periodic[i] {
			s[i] -= math.Floor(s[i])
		}
	}
	return b.Absolute(s)
}

/*Package order computes Steinhardt bond-orientational order parameters.

For a particle i with bonds to neighbors j, the degree-l order parameter
vector is the bond-averaged spherical harmonic

	qlm(i) = (1/Nb) sum_j Ylm(r_ij-hat),

optionally re-averaged over the neighbor shell, and reduced to one of two
rotationally invariant forms: the quadratic norm Ql or the cubic Wigner 3-j
contraction Wl. See Steinhardt (1983) and Lechner & Dellago (2008).
*/
package order

import (
	"math"
	"math/cmplx"

	"github.com/rpcollanton/freud/geom"
)

// Harmonics evaluates the 2l+1 spherical harmonics of a fixed degree l at
// unit directions, in the 4pi-normalized physics convention with the
// Condon-Shortley phase. The recurrence coefficients are precomputed at
// construction, so one Harmonics can be shared read-only by many goroutines.
type Harmonics struct {
	l int

	// Coefficients of the normalized associated Legendre recurrences.
	// diag[m] steps P(m,m) -> P(m+1,m+1), off[m] steps P(m,m) -> P(m+1,m),
	// and a, b drive the three-term recurrence in degree, flattened over m
	// with row offsets in aOff.
	diag, off []float64
	a, b      []float64
	aOff      []int
}

// NewHarmonics creates an evaluator for degree l. l must be at least zero.
func NewHarmonics(l int) *Harmonics {
	h := &Harmonics{l: l}

	h.diag = make([]float64, l)
	h.off = make([]float64, l)
	for m := 0; m < l; m++ {
		fm := float64(m + 1)
		h.diag[m] = -math.Sqrt((2*fm + 1) / (2 * fm))
		h.off[m] = math.Sqrt(2*float64(m) + 3)
	}

	h.aOff = make([]int, l+1)
	for m := 0; m <= l; m++ {
		h.aOff[m] = len(h.a)
		for lp := m + 2; lp <= l; lp++ {
			flp, fm := float64(lp), float64(m)
			alm := math.Sqrt((4*flp*flp - 1) / (flp*flp - fm*fm))
			flq := flp - 1
			h.a = append(h.a, alm)
			h.b = append(h.b, alm*math.Sqrt(
				(flq*flq-fm*fm)/(4*flq*flq-1),
			))
		}
	}

	return h
}

// Degree returns the degree l the evaluator was built for.
func (h *Harmonics) Degree() int { return h.l }

// Len returns the number of harmonics per direction, 2l+1.
func (h *Harmonics) Len() int { return 2*h.l + 1 }

// Eval computes Y_l^m along the direction of v for m = -l..l and writes the
// values into out, which must have length 2l+1. v does not need to be
// normalized, but must not have zero length: a zero-length bond has no
// direction, and excluding self-bonds is the caller's job.
//
// The associated Legendre values are generated by a fully normalized
// three-term recurrence, which stays stable for directions arbitrarily
// close to the poles.
func (h *Harmonics) Eval(v geom.Vec, out []complex128) {
	r := v.Norm()
	cosTheta := v[2] / r
	rxy := math.Hypot(v[0], v[1])
	sinTheta := rxy / r
	phi := 0.0
	if rxy > 0 {
		phi = math.Atan2(v[1], v[0])
	}

	l := h.l
	// pmm tracks the fully normalized P(m,m), starting at
	// P(0,0) = sqrt(1/4pi).
	pmm := 1 / math.Sqrt(4*math.Pi)

	for m := 0; m <= l; m++ {
		var p float64
		switch {
		case m == l:
			p = pmm
		case m == l-1:
			p = h.off[m] * cosTheta * pmm
		default:
			pk2 := pmm
			pk1 := h.off[m] * cosTheta * pmm
			for i := h.aOff[m]; i < h.aOff[m]+(l-m-1); i++ {
				pk2, pk1 = pk1, h.a[i]*cosTheta*pk1-h.b[i]*pk2
			}
			p = pk1
		}

		sinPhi, cosPhi := math.Sincos(float64(m) * phi)
		y := complex(p*cosPhi, p*sinPhi)
		out[l+m] = y
		if m > 0 {
			// Y_l^-m = (-1)^m conj(Y_l^m).
			c := cmplx.Conj(y)
			if m%2 == 1 {
				c = -c
			}
			out[l-m] = c
		}

		if m < l {
			pmm *= h.diag[m] * sinTheta
		}
	}
}

/*Package mat contains routines for operating on small square matrices. Its
main customers are the lattice-vector inverses needed to switch between
absolute and fractional coordinates in triclinic boxes and the rotation
matrices used when checking rotational invariance.

Operations are split into easy to use methods which allocate their results
and slightly less convenient methods which require explicitly managing an LU
decomposition.
*/
package mat

import (
	"math"
)

// Matrix represents a square matrix of float64 values stored in row-major
// order.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// LUFactors contains the LU decomposition of a matrix along with its pivot
// bookkeeping. Exporting this type allows calling routines to reuse a single
// decomposition for several solves.
type LUFactors struct {
	lu    Matrix
	pivot []int
	d     float64
}

// NewMatrix creates a matrix with the specified values and dimensions.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 || height <= 0 {
		panic("mat: dimensions must be positive.")
	} else if width*height != len(vals) {
		panic("mat: height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// Mult multiplies two matrices together.
func (m1 *Matrix) Mult(m2 *Matrix) *Matrix {
	h, w := m1.Height, m2.Width
	out := NewMatrix(make([]float64, h*w), w, h)
	return m1.MultAt(m2, out)
}

// MultAt multiplies two matrices together and writes the result to the
// specified matrix.
func (m1 *Matrix) MultAt(m2, out *Matrix) *Matrix {
	if m1.Width != m2.Height {
		panic("mat: multiplication of incompatible matrix sizes.")
	}

	for i := range out.Vals {
		out.Vals[i] = 0
	}
	for i := 0; i < m1.Height; i++ {
		off := i * m1.Width
		for j := 0; j < m2.Width; j++ {
			outIdx := i*m2.Width + j
			for k := 0; k < m1.Width; k++ {
				out.Vals[outIdx] += m1.Vals[off+k] * m2.Vals[k*m2.Width+j]
			}
		}
	}

	return out
}

// VecAt applies m to the vector bs and writes the result to out. bs and out
// must not alias.
func (m *Matrix) VecAt(bs, out []float64) []float64 {
	if m.Width != len(bs) || m.Height != len(out) {
		panic("mat: vector length does not match matrix size.")
	}
	for i := 0; i < m.Height; i++ {
		off := i * m.Width
		sum := 0.0
		for j := 0; j < m.Width; j++ {
			sum += m.Vals[off+j] * bs[j]
		}
		out[i] = sum
	}
	return out
}

// Invert computes the inverse of a matrix.
func (m *Matrix) Invert() *Matrix {
	lu := m.LU()
	inv := NewMatrix(make([]float64, len(m.Vals)), m.Width, m.Height)
	return lu.InvertAt(inv)
}

// Determinant computes the determinant of a matrix.
func (m *Matrix) Determinant() float64 {
	return m.LU().Determinant()
}

// SolveVector solves the equation m * xs = bs for xs.
func (m *Matrix) SolveVector(bs []float64) []float64 {
	xs := make([]float64, len(bs))
	return m.LU().SolveVector(bs, xs)
}

// NewLUFactors creates an LUFactors instance of the requested dimension.
func NewLUFactors(n int) *LUFactors {
	luf := new(LUFactors)

	luf.lu.Vals, luf.lu.Width, luf.lu.Height = make([]float64, n*n), n, n
	luf.pivot = make([]int, n)
	luf.d = 1

	return luf
}

// LU returns the LU decomposition of a matrix.
func (m *Matrix) LU() *LUFactors {
	if m.Width != m.Height {
		panic("mat: m is non-square.")
	}

	luf := NewLUFactors(m.Width)
	m.LUFactorsAt(luf)
	return luf
}

// LUFactorsAt stores the LU decomposition of a matrix at the specified
// location. Doolittle's algorithm with partial pivoting.
func (m *Matrix) LUFactorsAt(luf *LUFactors) {
	if luf.lu.Width != m.Width || luf.lu.Height != m.Height {
		panic("mat: luf has different dimensions than m.")
	}

	n := m.Width
	lu := luf.lu.Vals
	copy(lu, m.Vals)
	for i := range luf.pivot {
		luf.pivot[i] = i
	}
	// Maintained for determinant calculations.
	luf.d = 1

	for k := 0; k < n; k++ {
		maxVal, maxRow := math.Abs(lu[k*n+k]), k
		for i := k + 1; i < n; i++ {
			if val := math.Abs(lu[i*n+k]); val > maxVal {
				maxVal, maxRow = val, i
			}
		}
		if maxRow != k {
			swapRows(k, maxRow, n, lu)
			luf.pivot[k], luf.pivot[maxRow] = luf.pivot[maxRow], luf.pivot[k]
			luf.d = -luf.d
		}

		pivot := lu[k*n+k]
		if pivot == 0 {
			// Singular. The zero diagonal makes the determinant zero and
			// poisons any subsequent solve with infinities, which is the
			// behavior callers check for.
			continue
		}
		for i := k + 1; i < n; i++ {
			lu[i*n+k] /= pivot
			f := lu[i*n+k]
			for j := k + 1; j < n; j++ {
				lu[i*n+j] -= f * lu[k*n+j]
			}
		}
	}
}

func swapRows(i1, i2, n int, lu []float64) {
	off1, off2 := n*i1, n*i2
	for j := 0; j < n; j++ {
		lu[off1+j], lu[off2+j] = lu[off2+j], lu[off1+j]
	}
}

// SolveVector solves M * xs = bs for xs.
//
// bs and xs may point to the same physical memory.
func (luf *LUFactors) SolveVector(bs, xs []float64) []float64 {
	n := luf.lu.Width
	if n != len(bs) {
		panic("mat: len(bs) != luf.Width")
	} else if n != len(xs) {
		panic("mat: len(xs) != luf.Width")
	}

	if &bs[0] == &xs[0] {
		tmp := make([]float64, n)
		copy(tmp, bs)
		bs = tmp
	}

	lu := luf.lu.Vals

	// P A = L U, so solve L y = P b by forward substitution, writing y over
	// xs as we go.
	for i := 0; i < n; i++ {
		sum := bs[luf.pivot[i]]
		for j := 0; j < i; j++ {
			sum -= lu[i*n+j] * xs[j]
		}
		xs[i] = sum
	}

	// Then U x = y by back substitution.
	for i := n - 1; i >= 0; i-- {
		sum := xs[i]
		for j := i + 1; j < n; j++ {
			sum -= lu[i*n+j] * xs[j]
		}
		xs[i] = sum / lu[i*n+i]
	}

	return xs
}

// InvertAt inverts the matrix represented by the given LU decomposition and
// writes the result into the specified out matrix.
func (luf *LUFactors) InvertAt(out *Matrix) *Matrix {
	n := luf.lu.Width
	if out.Width != out.Height {
		panic("mat: out matrix is non-square.")
	} else if n != out.Width {
		panic("mat: out matrix different size than m matrix.")
	}

	col, x := make([]float64, n), make([]float64, n)
	for j := 0; j < n; j++ {
		for i := range col {
			col[i] = 0
		}
		col[j] = 1
		luf.SolveVector(col, x)
		for i := 0; i < n; i++ {
			out.Vals[i*n+j] = x[i]
		}
	}

	return out
}

// Determinant computes the determinant of the matrix represented by the
// given LU decomposition.
func (luf *LUFactors) Determinant() float64 {
	d := luf.d
	lu := luf.lu.Vals
	n := luf.lu.Width

	for i := 0; i < n; i++ {
		d *= lu[i*n+i]
	}
	return d
}

package order

import (
	"math"
)

// wignerTable holds the Wigner 3-j symbols (l l l; m1 m2 m3) over every
// combination with m1 + m2 + m3 = 0, in m1-major order. The table depends
// only on l, is built once per engine, and is never mutated afterwards, so
// it is safe to read from every worker.
type wignerTable struct {
	l    int
	vals []float64
}

func newWignerTable(l int) *wignerTable {
	w := &wignerTable{l: l}
	for m1 := -l; m1 <= l; m1++ {
		for m2 := maxInt(-l, -l-m1); m2 <= minInt(l, l-m1); m2++ {
			w.vals = append(w.vals, Wigner3j(l, l, l, m1, m2, -m1-m2))
		}
	}
	return w
}

// Contract computes the cubic invariant
// sum_{m1+m2+m3=0} (l l l; m1 m2 m3) qlm[m1] qlm[m2] qlm[m3].
func (w *wignerTable) Contract(qlm []complex128) complex128 {
	l := w.l
	sum := complex(0, 0)
	i := 0
	for m1 := -l; m1 <= l; m1++ {
		q1 := qlm[m1+l]
		for m2 := maxInt(-l, -l-m1); m2 <= minInt(l, l-m1); m2++ {
			m3 := -m1 - m2
			sum += complex(w.vals[i], 0) * q1 * qlm[m2+l] * qlm[m3+l]
			i++
		}
	}
	return sum
}

// Wigner3j returns the Wigner 3-j symbol (j1 j2 j3; m1 m2 m3) for integer
// angular momenta, evaluated with the Racah formula on log-factorials so
// that moderate degrees do not overflow.
func Wigner3j(j1, j2, j3, m1, m2, m3 int) float64 {
	if m1+m2+m3 != 0 {
		return 0
	}
	if j3 < j1-j2 || j3 < j2-j1 || j3 > j1+j2 {
		return 0
	}
	if absInt(m1) > j1 || absInt(m2) > j2 || absInt(m3) > j3 {
		return 0
	}

	logPre := 0.5 * (lnFact(j1+j2-j3) + lnFact(j1-j2+j3) +
		lnFact(-j1+j2+j3) - lnFact(j1+j2+j3+1) +
		lnFact(j1+m1) + lnFact(j1-m1) +
		lnFact(j2+m2) + lnFact(j2-m2) +
		lnFact(j3+m3) + lnFact(j3-m3))

	tMin := maxInt(0, maxInt(j2-j3-m1, j1-j3+m2))
	tMax := minInt(j1+j2-j3, minInt(j1-m1, j2+m2))

	sum := 0.0
	for t := tMin; t <= tMax; t++ {
		logDenom := lnFact(t) + lnFact(j3-j2+t+m1) + lnFact(j3-j1+t-m2) +
			lnFact(j1+j2-j3-t) + lnFact(j1-t-m1) + lnFact(j2-t+m2)
		term := math.Exp(logPre - logDenom)
		if t%2 == 1 {
			term = -term
		}
		sum += term
	}

	if (j1-j2-m3)%2 != 0 {
		sum = -sum
	}
	return sum
}

func lnFact(n int) float64 {
	v, _ := math.Lgamma(float64(n) + 1)
	return v
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func maxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}

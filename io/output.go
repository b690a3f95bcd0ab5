package io

import (
	"bufio"
	"fmt"
	"os"
)

// WriteOrder writes per-particle order parameter values to a text catalog.
// Columns are the particle index, the real part, and the imaginary part of
// each value. The system norm and the configuration's textual form are
// recorded as comment lines, so the file is self-describing but still
// readable by ReadTable-style column readers.
func WriteOrder(
	fname, configRepr string, vals []complex128, norm complex128,
) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# %s\n", configRepr)
	fmt.Fprintf(w, "# norm = %.10g %+.10gi\n", real(norm), imag(norm))
	fmt.Fprintf(w, "# index re(order) im(order)\n")
	for i, v := range vals {
		fmt.Fprintf(w, "%d %.10g %.10g\n", i, real(v), imag(v))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return nil
}

/*Package io handles the file formats around an order-parameter run: the
gcfg configuration read by the command line tool, text catalogs of particle
positions, and the output catalog of per-particle values.
*/
package io

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

const ExampleOrderFile = `[Order]

#######################
# Required Parameters #
#######################

# File containing the particle positions as whitespace-separated columns.
# Lines starting with # are skipped.
Input = path/to/positions.txt
# File the per-particle order parameters will be written to.
Output = path/to/order.txt

# Spherical harmonic degree of the order parameter. 6 detects FCC-like
# local order, 4 is common for open crystals.
Degree = 6

# Side lengths of the simulation box.
BoxX = 10
BoxY = 10
BoxZ = 10

# How neighbors are found. "ball" takes everything within RMax of each
# particle, "nearest" takes the Neighbors closest particles.
Mode = ball
RMax = 1.5
# Neighbors = 12

#######################
# Optional Parameters #
#######################

# Columns of the input file holding the x, y, and z positions. Defaults
# are the first three columns.
# XCol = 0
# YCol = 1
# ZCol = 2

# Tilt components for triclinic boxes: XY is the x component of the second
# lattice vector, XZ and YZ the x and y components of the third. All
# default to zero.
# XY = 0
# XZ = 0
# YZ = 0

# Set to false for non-periodic axes. Defaults are true.
# PeriodicX = true
# PeriodicY = true
# PeriodicZ = true

# Variant flags. Average re-averages each particle's harmonics over its
# neighbor shell before reduction, Wl switches from the quadratic Ql
# invariant to the cubic Wigner form, and Weighted uses the neighbor list's
# bond weights.
# Average = false
# Wl = false
# Weighted = false`

// OrderConfig mirrors the [Order] section of a configuration file.
type OrderConfig struct {
	Input, Output string

	Degree    int
	Mode      string
	RMax      float64
	Neighbors int

	Average, Wl, Weighted bool

	BoxX, BoxY, BoxZ float64
	XY, XZ, YZ       float64

	PeriodicX, PeriodicY, PeriodicZ bool

	XCol, YCol, ZCol int
}

type orderConfigFile struct {
	Order OrderConfig
}

// DefaultOrderConfig returns an OrderConfig with every optional parameter
// at its default.
func DefaultOrderConfig() OrderConfig {
	return OrderConfig{
		Degree:    6,
		Mode:      "ball",
		PeriodicX: true,
		PeriodicY: true,
		PeriodicZ: true,
		XCol:      0,
		YCol:      1,
		ZCol:      2,
	}
}

// ReadOrderConfig reads and validates the [Order] section of the given
// configuration file.
func ReadOrderConfig(fname string) (*OrderConfig, error) {
	cfg := orderConfigFile{Order: DefaultOrderConfig()}
	if err := gcfg.ReadFileInto(&cfg, fname); err != nil {
		return nil, err
	}
	c := &cfg.Order

	switch {
	case c.Input == "":
		return nil, fmt.Errorf("config %s does not set Input", fname)
	case c.Output == "":
		return nil, fmt.Errorf("config %s does not set Output", fname)
	case c.Degree < 1:
		return nil, fmt.Errorf(
			"config %s sets Degree to %d, but it must be positive",
			fname, c.Degree,
		)
	case c.BoxX <= 0 || c.BoxY <= 0 || c.BoxZ <= 0:
		return nil, fmt.Errorf(
			"config %s needs positive BoxX, BoxY, and BoxZ", fname,
		)
	}

	switch c.Mode {
	case "ball":
		if c.RMax <= 0 {
			return nil, fmt.Errorf(
				"config %s uses ball mode but does not set a positive RMax",
				fname,
			)
		}
	case "nearest":
		if c.Neighbors < 1 {
			return nil, fmt.Errorf(
				"config %s uses nearest mode but does not set a positive Neighbors",
				fname,
			)
		}
	default:
		return nil, fmt.Errorf(
			"config %s sets Mode to %q, not 'ball' or 'nearest'",
			fname, c.Mode,
		)
	}

	return c, nil
}

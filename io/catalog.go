package io

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"github.com/rpcollanton/freud/geom"
)

// ReadPoints reads particle positions from a whitespace-separated text
// catalog, taking the x, y, and z coordinates from the given columns.
func ReadPoints(fname string, xCol, yCol, zCol int) ([]geom.Vec, error) {
	cols, err := table.ReadTable(fname, []int{xCol, yCol, zCol}, nil)
	if err != nil {
		return nil, err
	}

	xs, ys, zs := cols[0], cols[1], cols[2]
	if len(xs) == 0 {
		return nil, fmt.Errorf("catalog %s contains no points", fname)
	}

	points := make([]geom.Vec, len(xs))
	for i := range points {
		points[i] = geom.Vec{xs[i], ys[i], zs[i]}
	}
	return points, nil
}

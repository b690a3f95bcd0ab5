package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcollanton/freud/geom"
)

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestReadOrderConfig(t *testing.T) {
	fname := writeFile(t, "order.config", `[Order]
Input = pos.txt
Output = out.txt
Degree = 4
BoxX = 8
BoxY = 9
BoxZ = 10
Mode = nearest
Neighbors = 12
Average = true
PeriodicZ = false
XCol = 2
`)

	c, err := ReadOrderConfig(fname)
	require.NoError(t, err)

	assert.Equal(t, "pos.txt", c.Input)
	assert.Equal(t, "out.txt", c.Output)
	assert.Equal(t, 4, c.Degree)
	assert.Equal(t, "nearest", c.Mode)
	assert.Equal(t, 12, c.Neighbors)
	assert.True(t, c.Average)
	assert.False(t, c.Wl)

	// Unset parameters keep their defaults.
	assert.True(t, c.PeriodicX)
	assert.False(t, c.PeriodicZ)
	assert.Equal(t, 2, c.XCol)
	assert.Equal(t, 1, c.YCol)
	assert.Equal(t, 0.0, c.XY)
}

func TestExampleOrderFileParses(t *testing.T) {
	fname := writeFile(t, "example.config", ExampleOrderFile)
	c, err := ReadOrderConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Degree)
	assert.Equal(t, "ball", c.Mode)
	assert.Equal(t, 1.5, c.RMax)
}

func TestReadOrderConfigValidation(t *testing.T) {
	tests := []struct {
		name, text string
	}{
		{"no input", "[Order]\nOutput=o\nDegree=6\nBoxX=1\nBoxY=1\nBoxZ=1\nMode=ball\nRMax=1\n"},
		{"no output", "[Order]\nInput=i\nDegree=6\nBoxX=1\nBoxY=1\nBoxZ=1\nMode=ball\nRMax=1\n"},
		{"bad degree", "[Order]\nInput=i\nOutput=o\nDegree=0\nBoxX=1\nBoxY=1\nBoxZ=1\nMode=ball\nRMax=1\n"},
		{"bad box", "[Order]\nInput=i\nOutput=o\nDegree=6\nBoxX=-1\nBoxY=1\nBoxZ=1\nMode=ball\nRMax=1\n"},
		{"ball without rmax", "[Order]\nInput=i\nOutput=o\nDegree=6\nBoxX=1\nBoxY=1\nBoxZ=1\nMode=ball\n"},
		{"nearest without neighbors", "[Order]\nInput=i\nOutput=o\nDegree=6\nBoxX=1\nBoxY=1\nBoxZ=1\nMode=nearest\n"},
		{"unknown mode", "[Order]\nInput=i\nOutput=o\nDegree=6\nBoxX=1\nBoxY=1\nBoxZ=1\nMode=voronoi\nRMax=1\n"},
	}

	for _, test := range tests {
		fname := writeFile(t, "bad.config", test.text)
		_, err := ReadOrderConfig(fname)
		assert.Error(t, err, test.name)
	}
}

func TestReadPoints(t *testing.T) {
	fname := writeFile(t, "pos.txt", `# id x y z
0 1.0 2.0 3.0
1 4.0 5.0 6.0
2 7.0 8.0 9.0
`)

	points, err := ReadPoints(fname, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []geom.Vec{
		{1, 2, 3}, {4, 5, 6}, {7, 8, 9},
	}, points)
}

func TestReadPointsEmpty(t *testing.T) {
	fname := writeFile(t, "empty.txt", "# only a header\n")
	_, err := ReadPoints(fname, 0, 1, 2)
	assert.Error(t, err)
}

func TestWriteOrderRoundTrip(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "order.txt")
	vals := []complex128{0.5, complex(-0.25, 0.125), 1}

	err := WriteOrder(
		fname, "Steinhardt(l=6, average=false, wl=false, weighted=false)",
		vals, complex(0.5, 0),
	)
	require.NoError(t, err)

	// The catalog must come back through the same column reader the
	// input positions use.
	points, err := ReadPoints(fname, 0, 1, 2)
	require.NoError(t, err)
	require.Len(t, points, len(vals))
	for i, p := range points {
		assert.Equal(t, float64(i), p[0])
		assert.Equal(t, real(vals[i]), p[1])
		assert.Equal(t, imag(vals[i]), p[2])
	}
}

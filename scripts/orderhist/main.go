/*orderhist plots the distribution of a per-particle order parameter
catalog written by the main tool.

	$ orderhist order.txt hist.png
*/
package main

import (
	"log"
	"os"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/phil-mansfield/table"
)

const bins = 50

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Required file use: $ %s order_file out_png", os.Args[0])
	}
	orderFile, outFile := os.Args[1], os.Args[2]

	cols, err := table.ReadTable(orderFile, []int{1}, nil)
	if err != nil {
		log.Fatal(err.Error())
	}
	vals := cols[0]
	if len(vals) == 0 {
		log.Fatalf("%s contains no values.", orderFile)
	}

	centers, counts := histogram(vals, bins)

	plt.Reset()
	plt.Plot(centers, counts, "k", plt.LW(2))
	plt.XLabel(`$Q_\ell$`, plt.FontSize(16))
	plt.YLabel("count", plt.FontSize(16))
	plt.Title(orderFile)
	plt.Grid(plt.Axis("both"))
	plt.SaveFig(outFile)
	plt.Execute()
}

func histogram(vals []float64, n int) (centers, counts []float64) {
	min, max := vals[0], vals[0]
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		// All values identical: a single spike.
		return []float64{min}, []float64{float64(len(vals))}
	}

	dx := (max - min) / float64(n)
	centers, counts = make([]float64, n), make([]float64, n)
	for i := range centers {
		centers[i] = min + dx*(float64(i)+0.5)
	}
	for _, v := range vals {
		idx := int((v - min) / dx)
		if idx >= n {
			idx = n - 1
		}
		counts[idx]++
	}
	return centers, counts
}

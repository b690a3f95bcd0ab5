package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rpcollanton/freud/box"
	"github.com/rpcollanton/freud/geom"
	"github.com/rpcollanton/freud/io"
	"github.com/rpcollanton/freud/locality"
	"github.com/rpcollanton/freud/order"
)

func main() {
	var (
		orderStr, exampleConfig string
		logPath, pprofPath      string
		threads                 int
	)

	flag.StringVar(
		&orderStr, "Order", "",
		"Configuration file for [Order] mode: compute Steinhardt order "+
			"parameters for a position catalog.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Order'.",
	)
	flag.IntVar(
		&threads, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&logPath, "Log", "",
		"Location to write log statements to. Default is stderr.",
	)
	flag.StringVar(
		&pprofPath, "PProf", "",
		"Location to write profile to. Default is no profiling.",
	)

	flag.Parse()

	if logPath != "" {
		lf, err := os.Create(logPath)
		if err != nil {
			log.Fatal(err.Error())
		}
		defer lf.Close()
		log.SetOutput(lf)
	}

	if pprofPath != "" {
		f, err := os.Create(pprofPath)
		if err != nil {
			log.Fatal(err.Error())
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	switch {
	case exampleConfig != "":
		if exampleConfig != "Order" {
			log.Fatalf(
				"Unrecognized config type %q. The only accepted argument "+
					"is 'Order'.", exampleConfig,
			)
		}
		fmt.Println(io.ExampleOrderFile)
	case orderStr != "":
		orderMain(orderStr, threads)
	default:
		log.Fatal("At least one of -Order or -ExampleConfig must be given.")
	}
}

func orderMain(cfgPath string, threads int) {
	cfg, err := io.ReadOrderConfig(cfgPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	points, err := io.ReadPoints(cfg.Input, cfg.XCol, cfg.YCol, cfg.ZCol)
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Read %d points from %s", len(points), cfg.Input)

	b, err := box.New(
		geom.Vec{cfg.BoxX, 0, 0},
		geom.Vec{cfg.XY, cfg.BoxY, 0},
		geom.Vec{cfg.XZ, cfg.YZ, cfg.BoxZ},
		[3]bool{cfg.PeriodicX, cfg.PeriodicY, cfg.PeriodicZ},
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	mode, err := locality.ParseQueryMode(cfg.Mode)
	if err != nil {
		log.Fatal(err.Error())
	}
	args := locality.QueryArgs{
		Mode:         mode,
		RMax:         cfg.RMax,
		NumNeighbors: cfg.Neighbors,
		ExcludeSelf:  true,
	}

	engine, err := order.New(cfg.Degree, order.Options{
		Average:  cfg.Average,
		Wl:       cfg.Wl,
		Weighted: cfg.Weighted,
	})
	if err != nil {
		log.Fatal(err.Error())
	}
	engine.SetWorkers(threads)

	start := time.Now()
	if _, err := engine.Compute(b, points, nil, &args); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Computed %s in %v", engine, time.Since(start))

	vals, err := engine.Order()
	if err != nil {
		log.Fatal(err.Error())
	}
	norm, err := engine.Norm()
	if err != nil {
		log.Fatal(err.Error())
	}

	if err := io.WriteOrder(cfg.Output, engine.String(), vals, norm); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote %d values to %s", len(vals), cfg.Output)
}

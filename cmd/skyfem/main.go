// Command skyfem solves a static FEM problem read from an input file and
// writes the report next to it.
//
//	skyfem model.dat
//
// Options are taken from SKYFEM_OUTPUT, SKYFEM_WORKERS, SKYFEM_PLOT,
// SKYFEM_PLOT_SCALE and SKYFEM_DEBUG.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/notargets/SkylineFEM/domain"
	"github.com/notargets/SkylineFEM/domain/readers"
	"github.com/notargets/SkylineFEM/report"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <input file>\n", os.Args[0])
		os.Exit(2)
	}
	input := os.Args[1]
	cfg, err := ParseConfig(input)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := run(input, cfg); err != nil {
		log.Fatalf("%s: %v", input, err)
	}
	fmt.Printf("Results written to %s\n", cfg.Output)
}

func run(input string, cfg Config) error {
	start := time.Now()
	d, err := readers.ReadInputFile(input)
	if err != nil {
		return err
	}
	d.Workers = cfg.Workers
	if cfg.Debug {
		d.Logger = log.New(os.Stderr, "skyfem: ", log.Lmicroseconds)
	}

	solutions, err := d.Run()
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	o := report.NewOutputter(f)
	if err := o.Report(d, solutions, start); err != nil {
		return err
	}
	if cfg.Debug && d.Mode == domain.Execute {
		o.PrintColumnHeights(d)
		o.PrintDiagonalAddress(d)
		o.PrintStiffnessMatrix(d)
		if err := o.Err(); err != nil {
			return err
		}
	}

	if cfg.Plot != "" && len(solutions) > 0 {
		if err := report.PlotDeformedShape(d, solutions[0], cfg.PlotScale, cfg.Plot); err != nil {
			return err
		}
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Solution time: %v\n", time.Since(start))
	return nil
}

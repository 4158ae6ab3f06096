// Package main provides a profiling wrapper for imulsim to identify
// performance bottlenecks.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/imulsim/benchmarks"
	"github.com/sarchlab/imulsim/timing/harness"
	"github.com/sarchlab/imulsim/timing/latency"
)

var (
	model      = flag.String("model", benchmarks.ModelRTL, "Multiplier model: rtl or fl")
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile = flag.String("memprofile", "", "write memory profile to file")
	duration   = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	count      = flag.Int("count", 10000, "number of random multiplies")
	seed       = flag.Uint64("seed", 0xdeadbeef, "random seed")
)

func main() {
	flag.Parse()

	config := latency.DefaultTimingConfig()
	config.Seed = *seed
	config.RandomCount = *count
	config.MaxCycles = ^uint64(0)

	unit, err := benchmarks.NewUnit(*model, config.Width)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	rng := rand.New(rand.NewPCG(config.Seed, config.Seed))
	txns := benchmarks.Random(rng, config.RandomCount, config.Width)

	fmt.Printf("Model: %s\n", *model)
	fmt.Printf("Multiplies: %d\n", len(txns))

	start := time.Now()

	// Set timeout
	go func() {
		time.Sleep(*duration)
		fmt.Printf("\nTimeout reached after %v - stopping execution\n", *duration)
		os.Exit(2)
	}()

	tb := harness.NewFromTransactions(unit, config.Width, txns, 0, 0, nil)
	runErr := tb.Run(config.MaxCycles)

	elapsed := time.Since(start)

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	stats := tb.Stats()
	fmt.Printf("\nProfiling Results:\n")
	if runErr != nil {
		fmt.Printf("Error: %v\n", runErr)
	}
	fmt.Printf("Responses checked: %d\n", stats.Responses)
	fmt.Printf("Cycles simulated: %d\n", stats.Cycles)
	fmt.Printf("Simulated time: %.3g s\n", config.SimulatedSeconds(stats.Cycles))
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if stats.Cycles > 0 {
		fmt.Printf("Cycles/second: %.0f\n", float64(stats.Cycles)/elapsed.Seconds())
	}
}

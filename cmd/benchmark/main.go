// Command benchmark runs the full multiplier case table for both models.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv      Output results in CSV format (default: table)
//	-json     Output results as JSON
//	-model    Run only this model (rtl or fl; default: both)
//	-seed     Random seed for operands and delays
//	-count    Number of random operand pairs
//
// Example:
//
//	# Run every case under every delay setting on both models
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
//
// Each case runs with no delays, with source/sink delays of 3/5 and 5/3, and
// with random delays of up to 5 cycles.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/sarchlab/imulsim/benchmarks"
	"github.com/sarchlab/imulsim/timing/latency"
)

func main() {
	defaults := latency.DefaultTimingConfig()

	// Parse flags
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results as JSON")
	model := flag.String("model", "", "Run only this model (rtl or fl)")
	seed := flag.Uint64("seed", defaults.Seed, "Random seed")
	count := flag.Int("count", defaults.RandomCount, "Number of random operand pairs")
	flag.Parse()

	models := []string{benchmarks.ModelRTL, benchmarks.ModelFL}
	if *model != "" {
		if _, err := benchmarks.NewUnit(*model, defaults.Width); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		models = []string{*model}
	}

	config := defaults.Clone()
	config.Seed = *seed
	config.RandomCount = *count
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var results []benchmarks.CaseResult
	var last *benchmarks.Harness
	for _, m := range models {
		// Same operands for every model.
		rng := rand.New(rand.NewPCG(config.Seed, config.Seed))

		hc := benchmarks.DefaultConfig()
		hc.Model = m
		hc.Timing = config
		hc.Output = os.Stdout

		h := benchmarks.NewHarness(hc)
		h.AddCases(benchmarks.GetFullTable(rng, config.RandomCount))
		results = append(results, h.RunAll()...)
		last = h
	}

	// Print configuration
	if !*csvOutput && !*jsonOutput {
		table := latency.NewTableWithConfig(config)
		fmt.Println("Integer Multiplier Benchmark Harness")
		fmt.Println("====================================")
		fmt.Printf("Models: %v\n", models)
		fmt.Printf("Seed: %#x\n", config.Seed)
		fmt.Printf("RTL round trip: %d cycles, occupancy: %d cycles\n",
			table.RoundTrip(), table.Occupancy())
		fmt.Println("")
	}

	// Output results
	switch {
	case *jsonOutput:
		if err := last.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		last.PrintCSV(results)
	default:
		last.PrintResults(results)
	}

	if !benchmarks.AllPassed(results) {
		os.Exit(1)
	}
}

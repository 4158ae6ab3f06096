// Package main provides the entry point for imulsim.
// imulsim runs the cycle-accurate iterative integer multiplier, or its
// functional model, against test cases and checks every product.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/imulsim/benchmarks"
	"github.com/sarchlab/imulsim/loader"
	"github.com/sarchlab/imulsim/timing/latency"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the command line.
type options struct {
	model       string
	caseName    string
	vectors     string
	configPath  string
	saveConfig  string
	width       uint
	srcDelay    int
	sinkDelay   int
	randomDelay bool
	seed        uint64
	count       int
	maxCycles   uint64
	trace       bool
	verbose     bool
	jsonOut     bool
	csvOut      bool
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	defaults := latency.DefaultTimingConfig()
	o := &options{}

	fs := flag.NewFlagSet("imulsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.model, "model", benchmarks.ModelRTL, "Multiplier model: rtl or fl")
	fs.StringVar(&o.caseName, "case", "", "Run only the named case (default: all)")
	fs.StringVar(&o.vectors, "vectors", "", "Path to a test vector file")
	fs.StringVar(&o.configPath, "config", "", "Path to timing configuration JSON file")
	fs.StringVar(&o.saveConfig, "save-config", "", "Write the effective configuration to this path")
	fs.UintVar(&o.width, "width", defaults.Width, "Operand width in bits")
	fs.IntVar(&o.srcDelay, "src-delay", defaults.SrcDelay, "Idle cycles before each request")
	fs.IntVar(&o.sinkDelay, "sink-delay", defaults.SinkDelay, "Idle cycles before accepting each response")
	fs.BoolVar(&o.randomDelay, "random-delay", defaults.RandomDelay, "Draw each delay from [0, delay]")
	fs.Uint64Var(&o.seed, "seed", defaults.Seed, "Random seed")
	fs.IntVar(&o.count, "count", defaults.RandomCount, "Number of random operand pairs")
	fs.Uint64Var(&o.maxCycles, "max-cycles", defaults.MaxCycles, "Cycle budget per case")
	fs.BoolVar(&o.trace, "trace", false, "Print a line trace per cycle")
	fs.BoolVar(&o.verbose, "v", false, "Verbose output")
	fs.BoolVar(&o.jsonOut, "json", false, "Output results as JSON")
	fs.BoolVar(&o.csvOut, "csv", false, "Output results in CSV format")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: imulsim [options]\n")
		_, _ = fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, fs, nil
}

// timingConfig loads the configuration file, if any, and applies the flags
// that were set explicitly on top of it.
func timingConfig(o *options, fs *flag.FlagSet) (*latency.TimingConfig, error) {
	config := latency.DefaultTimingConfig()
	if o.configPath != "" {
		var err error
		config, err = latency.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			config.Width = o.width
		case "src-delay":
			config.SrcDelay = o.srcDelay
		case "sink-delay":
			config.SinkDelay = o.sinkDelay
		case "random-delay":
			config.RandomDelay = o.randomDelay
		case "seed":
			config.Seed = o.seed
		case "count":
			config.RandomCount = o.count
		case "max-cycles":
			config.MaxCycles = o.maxCycles
		}
	})

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timing config: %w", err)
	}
	return config, nil
}

// selectCases builds the case list from a vector file or the standard
// table.
func selectCases(o *options, config *latency.TimingConfig) ([]benchmarks.Case, error) {
	var cases []benchmarks.Case

	rng := rand.New(rand.NewPCG(config.Seed, config.Seed))

	switch {
	case o.vectors != "":
		txns, err := loader.Load(o.vectors, config.Width)
		if err != nil {
			return nil, err
		}
		cases = []benchmarks.Case{{
			Name:         strings.TrimSuffix(filepath.Base(o.vectors), filepath.Ext(o.vectors)),
			Description:  "vectors from " + o.vectors,
			Width:        config.Width,
			Transactions: txns,
		}}
	case config.Width == latency.MaxWidth:
		cases = benchmarks.GetCases(rng, config.RandomCount)
	default:
		cases = []benchmarks.Case{{
			Name:         "random",
			Description:  fmt.Sprintf("%d random operand pairs", config.RandomCount),
			Width:        config.Width,
			Transactions: benchmarks.Random(rng, config.RandomCount, config.Width),
		}}
	}

	if o.caseName != "" {
		var picked []benchmarks.Case
		for _, c := range cases {
			if c.Name == o.caseName {
				picked = append(picked, c)
			}
		}
		if len(picked) == 0 {
			return nil, fmt.Errorf("unknown case %q (have %s)",
				o.caseName, strings.Join(benchmarks.CaseNames(), ", "))
		}
		cases = picked
	}

	return benchmarks.WithDelays(cases, config.SrcDelay, config.SinkDelay, config.RandomDelay), nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, fs, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	config, err := timingConfig(o, fs)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error loading timing config: %v\n", err)
		return 1
	}

	if o.saveConfig != "" {
		if err := config.SaveConfig(o.saveConfig); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error saving timing config: %v\n", err)
			return 1
		}
	}

	cases, err := selectCases(o, config)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if _, err := benchmarks.NewUnit(o.model, config.Width); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	hc := benchmarks.DefaultConfig()
	hc.Model = o.model
	hc.Timing = config
	hc.Output = stdout
	hc.Verbose = o.trace
	if o.jsonOut || o.csvOut {
		hc.Trace = stderr
	}

	h := benchmarks.NewHarness(hc)
	h.AddCases(cases)

	if o.verbose && !o.jsonOut && !o.csvOut {
		table := latency.NewTableWithConfig(config)
		_, _ = fmt.Fprintf(stdout, "Model: %s\n", o.model)
		_, _ = fmt.Fprintf(stdout, "Width: %d bits\n", config.Width)
		_, _ = fmt.Fprintf(stdout, "Delays: src %d, sink %d (random: %v)\n",
			config.SrcDelay, config.SinkDelay, config.RandomDelay)
		if o.model == benchmarks.ModelRTL {
			_, _ = fmt.Fprintf(stdout, "Round trip: %d cycles, occupancy: %d cycles\n",
				table.RoundTrip(), table.Occupancy())
		}
		_, _ = fmt.Fprintf(stdout, "Cases: %d\n\n", len(cases))
	}

	results := h.RunAll()

	switch {
	case o.jsonOut:
		if err := h.PrintJSON(results); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	case o.csvOut:
		h.PrintCSV(results)
	default:
		h.PrintResults(results)
	}

	if !benchmarks.AllPassed(results) {
		return 1
	}
	return 0
}

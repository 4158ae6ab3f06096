package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/markkurossi/tabulate"

	"github.com/sarchlab/imulsim/emu"
	"github.com/sarchlab/imulsim/timing/harness"
	"github.com/sarchlab/imulsim/timing/imul"
	"github.com/sarchlab/imulsim/timing/latency"
	"github.com/sarchlab/imulsim/timing/stream"
)

// Model names accepted by NewUnit.
const (
	ModelRTL = "rtl"
	ModelFL  = "fl"
)

// NewUnit creates the multiplier model with the given name.
func NewUnit(model string, width uint) (stream.Unit, error) {
	if width == 0 || width > imul.MaxWidth {
		return nil, fmt.Errorf("unsupported width %d", width)
	}

	switch model {
	case ModelRTL:
		return imul.New(imul.WithWidth(width)), nil
	case ModelFL:
		return emu.NewMultiplier(width), nil
	default:
		return nil, fmt.Errorf("unknown model %q (want %s or %s)", model, ModelRTL, ModelFL)
	}
}

// CaseResult holds the outcome of running a single case.
type CaseResult struct {
	// Name identifies the case
	Name string `json:"name"`

	// Model is the multiplier model the case ran against
	Model string `json:"model"`

	// Transactions is the number of requests in the case
	Transactions int `json:"transactions"`

	// Channel timing
	SrcDelay    int  `json:"src_delay"`
	SinkDelay   int  `json:"sink_delay"`
	RandomDelay bool `json:"random_delay"`

	// SimulatedCycles is the number of cycles until the last response
	SimulatedCycles uint64 `json:"simulated_cycles"`

	// SimulatedSeconds is SimulatedCycles at the configured clock
	SimulatedSeconds float64 `json:"simulated_seconds"`

	// Request-to-response latency in cycles
	MinLatency uint64  `json:"min_latency"`
	MaxLatency uint64  `json:"max_latency"`
	AvgLatency float64 `json:"avg_latency"`

	// Stall cycles on each channel
	SrcStalls  uint64 `json:"src_stalls"`
	SinkStalls uint64 `json:"sink_stalls"`

	// Utilization is the fraction of cycles the RTL model spent computing
	Utilization float64 `json:"utilization,omitempty"`

	// Passed is true when every response matched
	Passed bool `json:"passed"`

	// Error describes the first failure
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Model selects the multiplier model, ModelRTL or ModelFL
	Model string

	// Timing supplies width, seed, cycle budget and clock
	Timing *latency.TimingConfig

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Trace receives per-cycle line traces when Verbose is set
	// (default: Output)
	Trace io.Writer

	// Verbose enables line tracing
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Model:   ModelRTL,
		Timing:  latency.DefaultTimingConfig(),
		Output:  os.Stdout,
		Verbose: false,
	}
}

// Harness runs multiplier cases and reports results.
type Harness struct {
	config HarnessConfig
	cases  []Case
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Trace == nil {
		config.Trace = config.Output
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}
	if config.Model == "" {
		config.Model = ModelRTL
	}
	return &Harness{
		config: config,
		cases:  []Case{},
	}
}

// AddCase adds a case to the harness.
func (h *Harness) AddCase(c Case) {
	h.cases = append(h.cases, c)
}

// AddCases adds multiple cases to the harness.
func (h *Harness) AddCases(cases []Case) {
	h.cases = append(h.cases, cases...)
}

// Cases returns the cases added so far.
func (h *Harness) Cases() []Case {
	return h.cases
}

// RunAll executes all cases and returns results.
func (h *Harness) RunAll() []CaseResult {
	results := make([]CaseResult, 0, len(h.cases))

	for i, c := range h.cases {
		result := h.RunCase(c, uint64(i))
		results = append(results, result)
	}

	return results
}

// RunCase runs one case on a fresh unit. streamID selects the random stream
// used for random delays, so that each case draws its own delays.
func (h *Harness) RunCase(c Case, streamID uint64) CaseResult {
	result := CaseResult{
		Name:         c.Name,
		Model:        h.config.Model,
		Transactions: len(c.Transactions),
		SrcDelay:     c.SrcDelay,
		SinkDelay:    c.SinkDelay,
		RandomDelay:  c.RandomDelay,
	}

	width := c.Width
	if width == 0 {
		width = h.config.Timing.Width
	}

	unit, err := NewUnit(h.config.Model, width)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	var delayOpts []stream.DelayOption
	if c.RandomDelay {
		rng := rand.New(rand.NewPCG(h.config.Timing.Seed, streamID))
		delayOpts = append(delayOpts, stream.WithRandomDelay(rng))
	}

	var opts []harness.Option
	if h.config.Verbose {
		_, _ = fmt.Fprintf(h.config.Trace, "# %s (%s)\n", c.Name, h.config.Model)
		opts = append(opts, harness.WithLineTrace(h.config.Trace))
	}

	tb := harness.NewFromTransactions(unit, width, c.Transactions,
		c.SrcDelay, c.SinkDelay, delayOpts, opts...)

	start := time.Now()
	err = tb.Run(h.config.Timing.MaxCycles)
	result.WallTime = time.Since(start)

	stats := tb.Stats()
	result.SimulatedCycles = stats.Cycles
	result.SimulatedSeconds = h.config.Timing.SimulatedSeconds(stats.Cycles)
	result.MinLatency = stats.MinLatency
	result.MaxLatency = stats.MaxLatency
	result.AvgLatency = stats.AvgLatency()
	result.SrcStalls = stats.SrcStalls
	result.SinkStalls = stats.SinkStalls

	if rtl, ok := unit.(*imul.Multiplier); ok {
		result.Utilization = rtl.Stats().Utilization()
	}

	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Passed = true

	return result
}

// AllPassed reports whether every result passed.
func AllPassed(results []CaseResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// PrintResults outputs results as a table.
func (h *Harness) PrintResults(results []CaseResult) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Case").SetAlign(tabulate.ML)
	tab.Header("Model").SetAlign(tabulate.ML)
	tab.Header("Txns").SetAlign(tabulate.MR)
	tab.Header("Delay").SetAlign(tabulate.MR)
	tab.Header("Cycles").SetAlign(tabulate.MR)
	tab.Header("Latency").SetAlign(tabulate.MR)
	tab.Header("Stalls").SetAlign(tabulate.MR)
	tab.Header("Util").SetAlign(tabulate.MR)
	tab.Header("Status").SetAlign(tabulate.ML)

	var passed int
	for _, r := range results {
		row := tab.Row()
		row.Column(r.Name)
		row.Column(r.Model)
		row.Column(fmt.Sprintf("%d", r.Transactions))
		row.Column(formatDelay(r))
		row.Column(fmt.Sprintf("%d", r.SimulatedCycles))
		row.Column(fmt.Sprintf("%d/%.1f/%d", r.MinLatency, r.AvgLatency, r.MaxLatency))
		row.Column(fmt.Sprintf("%d/%d", r.SrcStalls, r.SinkStalls))
		row.Column(fmt.Sprintf("%.1f%%", r.Utilization*100))
		if r.Passed {
			passed++
			row.Column("PASS")
		} else {
			row.Column("FAIL").SetFormat(tabulate.FmtBold)
		}
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column("")
	row.Column("")
	row.Column("")
	row.Column("")
	row.Column("")
	row.Column("")
	row.Column("")
	row.Column(fmt.Sprintf("%d/%d", passed, len(results))).SetFormat(tabulate.FmtBold)

	tab.Print(h.config.Output)

	for _, r := range results {
		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "%s: %s\n", r.Name, r.Error)
		}
	}
}

func formatDelay(r CaseResult) string {
	if r.RandomDelay {
		return fmt.Sprintf("~%d/%d", r.SrcDelay, r.SinkDelay)
	}
	return fmt.Sprintf("%d/%d", r.SrcDelay, r.SinkDelay)
}

// PrintCSV outputs results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []CaseResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,model,transactions,src_delay,sink_delay,random_delay,cycles,min_latency,avg_latency,max_latency,src_stalls,sink_stalls,utilization,passed")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%s,%d,%d,%d,%t,%d,%d,%.3f,%d,%d,%d,%.3f,%t\n",
			r.Name,
			r.Model,
			r.Transactions,
			r.SrcDelay,
			r.SinkDelay,
			r.RandomDelay,
			r.SimulatedCycles,
			r.MinLatency,
			r.AvgLatency,
			r.MaxLatency,
			r.SrcStalls,
			r.SinkStalls,
			r.Utilization,
			r.Passed,
		)
	}
}

// PrintJSON outputs results as an indented JSON array.
func (h *Harness) PrintJSON(results []CaseResult) error {
	enc := json.NewEncoder(h.config.Output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

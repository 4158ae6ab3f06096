package latency

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"
)

// MaxWidth is the widest operand the multiplier supports.
const MaxWidth = 32

// TimingConfig holds the multiplier width and the channel timing used to
// drive it in simulation.
type TimingConfig struct {
	// Width is the operand width in bits. Default: 32.
	Width uint `json:"width"`

	// SrcDelay is the number of idle cycles the source inserts before each
	// request. Default: 0.
	SrcDelay int `json:"src_delay"`

	// SinkDelay is the number of idle cycles the sink inserts before
	// accepting each response. Default: 0.
	SinkDelay int `json:"sink_delay"`

	// RandomDelay draws each delay uniformly from [0, delay] instead of
	// using the delay as is. Default: false.
	RandomDelay bool `json:"random_delay"`

	// Seed seeds the random generator used for random operands and
	// random delays. Default: 0xdeadbeef.
	Seed uint64 `json:"seed"`

	// RandomCount is the number of operand pairs in the random test case.
	// Default: 50.
	RandomCount int `json:"random_count"`

	// MaxCycles bounds the length of one simulation run. Default: 100000.
	MaxCycles uint64 `json:"max_cycles"`

	// ClockFreq is the simulated clock, used to report simulated time.
	// Default: 1 GHz.
	ClockFreq sim.Freq `json:"clock_freq"`
}

// DefaultTimingConfig returns a TimingConfig with default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		Width:       MaxWidth,
		SrcDelay:    0,
		SinkDelay:   0,
		RandomDelay: false,
		Seed:        0xdeadbeef,
		RandomCount: 50,
		MaxCycles:   100000,
		ClockFreq:   1 * sim.GHz,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all values are usable.
func (c *TimingConfig) Validate() error {
	if c.Width == 0 || c.Width > MaxWidth {
		return fmt.Errorf("width must be in [1, %d]", MaxWidth)
	}
	if c.SrcDelay < 0 {
		return fmt.Errorf("src_delay must be >= 0")
	}
	if c.SinkDelay < 0 {
		return fmt.Errorf("sink_delay must be >= 0")
	}
	if c.RandomCount < 0 {
		return fmt.Errorf("random_count must be >= 0")
	}
	if c.MaxCycles == 0 {
		return fmt.Errorf("max_cycles must be > 0")
	}
	if c.ClockFreq <= 0 {
		return fmt.Errorf("clock_freq must be > 0")
	}
	return nil
}

// SimulatedSeconds converts a cycle count to simulated time at ClockFreq.
func (c *TimingConfig) SimulatedSeconds(cycles uint64) float64 {
	if c.ClockFreq <= 0 {
		return 0
	}
	return float64(cycles) / float64(c.ClockFreq)
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	return &TimingConfig{
		Width:       c.Width,
		SrcDelay:    c.SrcDelay,
		SinkDelay:   c.SinkDelay,
		RandomDelay: c.RandomDelay,
		Seed:        c.Seed,
		RandomCount: c.RandomCount,
		MaxCycles:   c.MaxCycles,
		ClockFreq:   c.ClockFreq,
	}
}

// Package latency describes the cycle timing of the iterative multiplier and
// the configuration used to drive it in simulation.
//
// The multiplier spends one cycle taking a request, one CALC cycle per
// operand bit plus one settling cycle, and at least one DONE cycle handing
// the product over.
package latency

// SettleCycles is the number of CALC cycles after the last iteration.
const SettleCycles = 1

// Table provides cycle counts for a multiplier of a given width.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table for the default 32-bit multiplier.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing
// configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// Iterations returns the number of shift-accumulate steps per request.
func (t *Table) Iterations() uint64 {
	return uint64(t.config.Width)
}

// CalcCycles returns the number of cycles spent in CALC per request.
func (t *Table) CalcCycles() uint64 {
	return t.Iterations() + SettleCycles
}

// RoundTrip returns the number of cycles from the request transfer to the
// response transfer when the consumer is always ready.
func (t *Table) RoundTrip() uint64 {
	return t.CalcCycles() + 1
}

// RoundTripWithStall returns RoundTrip plus the cycles the consumer holds
// the response back.
func (t *Table) RoundTripWithStall(stall uint64) uint64 {
	return t.RoundTrip() + stall
}

// Occupancy returns the number of cycles one request keeps the multiplier
// busy when requests arrive back to back and responses are taken at once.
func (t *Table) Occupancy() uint64 {
	return t.RoundTrip() + 1
}

// BatchCycles returns the total cycles to run n requests back to back with
// no delays on either channel.
func (t *Table) BatchCycles(n uint64) uint64 {
	return n * t.Occupancy()
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}

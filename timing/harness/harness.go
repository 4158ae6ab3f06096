// Package harness provides the cycle-stepped test bench for multiplier
// units. It wraps a request source, the unit under test and a response sink
// and provides a simple interface for simulation.
package harness

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/imulsim/timing/stream"
)

// ErrMaxCycles is returned when a run does not finish within its cycle
// budget.
var ErrMaxCycles = errors.New("exceeded maximum cycle count")

// Stats holds test bench statistics.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Requests is the number of request transfers.
	Requests uint64
	// Responses is the number of response transfers.
	Responses uint64
	// SrcStalls is the number of cycles the source offered a request the
	// unit did not take.
	SrcStalls uint64
	// SinkStalls is the number of cycles the unit offered a response the
	// sink did not take.
	SinkStalls uint64
	// MinLatency and MaxLatency bound the cycles from a request transfer to
	// the matching response transfer.
	MinLatency uint64
	MaxLatency uint64
	// TotalLatency is the sum of all request-to-response latencies.
	TotalLatency uint64
}

// AvgLatency returns the mean request-to-response latency.
func (s Stats) AvgLatency() float64 {
	if s.Responses == 0 {
		return 0
	}
	return float64(s.TotalLatency) / float64(s.Responses)
}

// Option is a functional option for configuring the Harness.
type Option func(*Harness)

// WithLineTrace writes one line trace per cycle to w.
func WithLineTrace(w io.Writer) Option {
	return func(h *Harness) {
		h.trace = w
	}
}

// Harness connects a source, a unit and a sink.
type Harness struct {
	src  *stream.Source
	unit stream.Unit
	sink *stream.Sink

	req  stream.ReqChannel
	resp stream.RespChannel

	// Cycle of each request transfer not yet answered, oldest first.
	inflight []uint64

	stats Stats
	trace io.Writer
}

// New creates a harness around unit.
func New(src *stream.Source, unit stream.Unit, sink *stream.Sink, opts ...Option) *Harness {
	h := &Harness{
		src:  src,
		unit: unit,
		sink: sink,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// NewFromTransactions creates a harness that feeds the requests of txns to
// unit and expects their responses in order.
func NewFromTransactions(
	unit stream.Unit,
	nbits uint,
	txns []stream.Transaction,
	srcDelay, sinkDelay int,
	delayOpts []stream.DelayOption,
	opts ...Option,
) *Harness {
	reqs, resps := stream.Split(txns)
	src := stream.NewSource(nbits, reqs, srcDelay, delayOpts...)
	sink := stream.NewSink(resps, sinkDelay, delayOpts...)
	return New(src, unit, sink, opts...)
}

// Unit returns the unit under test.
func (h *Harness) Unit() stream.Unit {
	return h.unit
}

// Sink returns the response sink.
func (h *Harness) Sink() *stream.Sink {
	return h.sink
}

// Request returns the request channel as seen on the last cycle.
func (h *Harness) Request() stream.ReqChannel {
	return h.req
}

// Response returns the response channel as seen on the last cycle.
func (h *Harness) Response() stream.RespChannel {
	return h.resp
}

// Tick simulates one cycle.
//
// The source and sink drive their signals from their own state, the unit
// evaluates its combinational logic against them, and only then do the
// three commit. The line trace is taken between the two phases so that it
// shows the transfers of this cycle.
func (h *Harness) Tick() {
	h.src.Drive(&h.req)
	h.sink.Drive(&h.resp)
	h.unit.Evaluate(&h.req, &h.resp)

	if h.trace != nil {
		_, _ = fmt.Fprintf(h.trace, "%3d: %s\n", h.stats.Cycles, h.LineTrace())
	}

	h.record()

	h.src.Tick(h.req)
	h.sink.Tick(h.resp)
	h.unit.Commit()

	h.stats.Cycles++
}

func (h *Harness) record() {
	switch {
	case h.req.Fire():
		h.stats.Requests++
		h.inflight = append(h.inflight, h.stats.Cycles)
	case h.req.Valid:
		h.stats.SrcStalls++
	}

	switch {
	case h.resp.Fire():
		h.stats.Responses++
		if len(h.inflight) == 0 {
			return
		}
		lat := h.stats.Cycles - h.inflight[0]
		h.inflight = h.inflight[1:]
		h.stats.TotalLatency += lat
		if h.stats.MinLatency == 0 || lat < h.stats.MinLatency {
			h.stats.MinLatency = lat
		}
		if lat > h.stats.MaxLatency {
			h.stats.MaxLatency = lat
		}
	case h.resp.Valid:
		h.stats.SinkStalls++
	}
}

// Done returns true once every request was sent and every response
// received.
func (h *Harness) Done() bool {
	return h.src.Done() && h.sink.Done()
}

// Err returns the first response check failure.
func (h *Harness) Err() error {
	return h.sink.Err()
}

// Run ticks until the harness is done, a response check fails or maxCycles
// cycles have been simulated.
func (h *Harness) Run(maxCycles uint64) error {
	for !h.Done() {
		if h.stats.Cycles >= maxCycles {
			return fmt.Errorf("%w: %d cycles, %d requests sent, %d responses received",
				ErrMaxCycles, maxCycles, h.stats.Requests, h.stats.Responses)
		}
		h.Tick()
		if err := h.sink.Err(); err != nil {
			return fmt.Errorf("cycle %d: %w", h.stats.Cycles-1, err)
		}
	}
	return nil
}

// RunCycles simulates the given number of cycles.
// Returns true if still running, false if done.
func (h *Harness) RunCycles(cycles uint64) bool {
	for i := uint64(0); i < cycles && !h.Done(); i++ {
		h.Tick()
	}
	return !h.Done()
}

// Stats returns test bench statistics.
func (h *Harness) Stats() Stats {
	return h.stats
}

// Reset rewinds source and sink, resets the unit and clears statistics.
func (h *Harness) Reset() {
	h.src.Reset()
	h.sink.Reset()
	h.unit.Reset()
	h.req = stream.ReqChannel{}
	h.resp = stream.RespChannel{}
	h.inflight = nil
	h.stats = Stats{}
}

// LineTrace renders the request channel, the unit and the response channel
// side by side.
func (h *Harness) LineTrace() string {
	return h.req.Trace() + " > " + h.unit.LineTrace() + " > " + h.resp.Trace()
}

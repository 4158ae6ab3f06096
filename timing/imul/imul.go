package imul

import (
	"fmt"

	"github.com/sarchlab/imulsim/timing/stream"
)

// MaxWidth is the widest operand the multiplier supports.
const MaxWidth = 32

// Statistics holds multiplier activity counters.
type Statistics struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Requests is the number of requests accepted.
	Requests uint64
	// Responses is the number of responses delivered.
	Responses uint64
	// IdleCycles is the number of cycles spent in IDLE.
	IdleCycles uint64
	// CalcCycles is the number of cycles spent in CALC.
	CalcCycles uint64
	// Accumulations is the number of cycles the result register was written
	// with the adder output.
	Accumulations uint64
	// RespStalls is the number of cycles a response was held in DONE
	// because the consumer was not ready.
	RespStalls uint64
}

// Utilization returns the fraction of cycles spent computing.
func (s Statistics) Utilization() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.CalcCycles) / float64(s.Cycles)
}

// Option is a functional option for configuring the Multiplier.
type Option func(*Multiplier)

// WithWidth sets the operand width. The multiplier runs one iteration per
// operand bit.
func WithWidth(width uint) Option {
	return func(m *Multiplier) {
		if width == 0 || width > MaxWidth {
			panic(fmt.Sprintf("imul: unsupported width %d", width))
		}
		m.width = width
	}
}

// Multiplier is the fixed-latency iterative multiplier. It accepts one
// request at a time, runs one shift-and-add iteration per operand bit and
// holds the product on the response channel until it is taken.
type Multiplier struct {
	width uint

	dpath *Datapath
	ctrl  *Control

	// Channel values seen by the last Evaluate.
	req  stream.ReqChannel
	resp stream.RespChannel

	stats Statistics
}

// New creates a multiplier. The default width is 32 bits.
func New(opts ...Option) *Multiplier {
	m := &Multiplier{width: stream.DefaultWidth}

	for _, opt := range opts {
		opt(m)
	}

	m.dpath = NewDatapath(m.width)
	m.ctrl = NewControl(m.width)
	m.Reset()

	return m
}

// Width returns the operand width.
func (m *Multiplier) Width() uint {
	return m.width
}

// Evaluate implements stream.Unit.
func (m *Multiplier) Evaluate(req *stream.ReqChannel, resp *stream.RespChannel) {
	m.dpath.Outputs()

	m.ctrl.In = ControlIn{
		ReqVal:  req.Valid,
		RespRdy: resp.Ready,
		BLSB:    m.dpath.Out.BLSB,
	}
	m.ctrl.Evaluate()

	m.dpath.In = DatapathIn{
		ReqMsgA:      req.Msg.A.Value,
		ReqMsgB:      req.Msg.B.Value,
		AMuxSel:      m.ctrl.Out.AMuxSel,
		BMuxSel:      m.ctrl.Out.BMuxSel,
		ResultMuxSel: m.ctrl.Out.ResultMuxSel,
		ResultEn:     m.ctrl.Out.ResultEn,
	}
	m.dpath.Evaluate()

	req.Ready = m.ctrl.Out.ReqRdy
	resp.Valid = m.ctrl.Out.RespVal
	resp.Msg = stream.NewBits(m.width, m.dpath.Out.RespMsg)

	m.req = *req
	m.resp = *resp
}

// Commit implements stream.Unit.
func (m *Multiplier) Commit() {
	m.updateStats()
	m.dpath.Commit()
	m.ctrl.Commit()
}

func (m *Multiplier) updateStats() {
	m.stats.Cycles++

	switch m.ctrl.State() {
	case StateIdle:
		m.stats.IdleCycles++
	case StateCalc:
		m.stats.CalcCycles++
		if m.ctrl.Out.ResultEn {
			m.stats.Accumulations++
		}
	case StateDone:
		if !m.resp.Ready {
			m.stats.RespStalls++
		}
	}

	if m.req.Fire() {
		m.stats.Requests++
	}
	if m.resp.Fire() {
		m.stats.Responses++
	}
}

// Reset returns the multiplier to IDLE with cleared registers and
// statistics.
func (m *Multiplier) Reset() {
	m.dpath.Reset()
	m.ctrl.Reset()
	m.req = stream.ReqChannel{Msg: stream.NewReqMsg(m.width, 0, 0)}
	m.resp = stream.RespChannel{Msg: stream.NewBits(m.width, 0)}
	m.stats = Statistics{}
}

// State returns the control state.
func (m *Multiplier) State() State {
	return m.ctrl.State()
}

// Count returns the iteration counter.
func (m *Multiplier) Count() uint64 {
	return m.ctrl.Count()
}

// Datapath returns the datapath, for inspection.
func (m *Multiplier) Datapath() *Datapath {
	return m.dpath
}

// Stats returns activity counters.
func (m *Multiplier) Stats() Statistics {
	return m.stats
}

// stateTag returns the two-character state column of the line trace.
func (m *Multiplier) stateTag() string {
	switch m.ctrl.State() {
	case StateIdle:
		return "I "
	case StateCalc:
		if m.ctrl.Shifting() {
			return "Cs"
		}
		return "C "
	case StateDone:
		return "D "
	default:
		return "? "
	}
}

// LineTrace implements stream.Unit. It shows the request channel, the A and
// B registers, the state and the response channel.
func (m *Multiplier) LineTrace() string {
	return fmt.Sprintf("%s(%s %s %s)%s",
		m.req.Trace(),
		stream.NewBits(m.width, m.dpath.A()),
		stream.NewBits(m.width, m.dpath.B()),
		m.stateTag(),
		m.resp.Trace(),
	)
}

package imul

// State is the control unit state.
type State uint8

const (
	// StateIdle waits for a request and loads its operands.
	StateIdle State = iota
	// StateCalc runs the shift-and-add iterations.
	StateCalc
	// StateDone holds the result until the response is taken.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateCalc:
		return "CALC"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// CounterBits is the width of the iteration counter.
const CounterBits = 6

const counterMask = 1<<CounterBits - 1

// ControlIn holds the control unit input ports.
type ControlIn struct {
	ReqVal  bool
	RespRdy bool

	// BLSB is the status bit from the datapath.
	BLSB bool
}

// ControlOut holds the control unit output ports.
type ControlOut struct {
	ReqRdy  bool
	RespVal bool

	// Control signals (ctrl -> dpath).
	AMuxSel      OperandSel
	BMuxSel      OperandSel
	ResultMuxSel ResultSel
	ResultEn     bool
}

// Control is the finite state machine that sequences the datapath through
// one multiply and runs both handshakes.
type Control struct {
	In  ControlIn
	Out ControlOut

	iterations uint64

	state     State
	stateNext State

	cntr     uint64
	cntrNext uint64
	cntrEn   bool
	cntrRst  bool

	doShift bool
}

// NewControl creates a control unit that runs the given number of
// shift-accumulate iterations per request.
func NewControl(iterations uint) *Control {
	return &Control{iterations: uint64(iterations)}
}

// Evaluate computes the output ports and the next state from the input
// ports and the current state.
func (c *Control) Evaluate() {
	c.stateOutputs()
	c.stateTransitions()
	c.counter()
}

func (c *Control) stateOutputs() {
	c.doShift = false

	switch c.state {
	case StateIdle:
		// Latch whatever is on the request port; it only matters on the
		// cycle the request is taken.
		c.Out = ControlOut{
			ReqRdy:       true,
			RespVal:      false,
			AMuxSel:      SelIn,
			BMuxSel:      SelIn,
			ResultMuxSel: ResultSelZero,
			ResultEn:     true,
		}
		c.cntrEn, c.cntrRst = true, true

	case StateCalc:
		c.doShift = c.cntr < c.iterations

		// Accumulate only while shifting. On the cycle the counter reaches
		// the iteration count the write is suppressed.
		c.Out = ControlOut{
			ReqRdy:       false,
			RespVal:      false,
			AMuxSel:      SelShift,
			BMuxSel:      SelShift,
			ResultMuxSel: ResultSelAdd,
			ResultEn:     c.In.BLSB && c.doShift,
		}
		c.cntrEn, c.cntrRst = true, false

	case StateDone:
		c.Out = ControlOut{
			ReqRdy:       false,
			RespVal:      true,
			AMuxSel:      SelShift,
			BMuxSel:      SelShift,
			ResultMuxSel: ResultSelAdd,
			ResultEn:     false,
		}
		c.cntrEn, c.cntrRst = true, true
	}
}

func (c *Control) stateTransitions() {
	c.stateNext = c.state

	switch c.state {
	case StateIdle:
		if c.In.ReqVal && c.Out.ReqRdy {
			c.stateNext = StateCalc
		}
	case StateCalc:
		if c.cntr == c.iterations {
			c.stateNext = StateDone
		}
	case StateDone:
		if c.Out.RespVal && c.In.RespRdy {
			c.stateNext = StateIdle
		}
	}
}

func (c *Control) counter() {
	switch {
	case c.cntrRst:
		c.cntrNext = 0
	case c.cntrEn:
		c.cntrNext = (c.cntr + 1) & counterMask
	default:
		c.cntrNext = c.cntr
	}
}

// Commit latches the next state and counter value.
func (c *Control) Commit() {
	c.state = c.stateNext
	c.cntr = c.cntrNext
}

// Reset returns the control unit to IDLE.
func (c *Control) Reset() {
	c.In = ControlIn{}
	c.Out = ControlOut{}
	c.state, c.stateNext = StateIdle, StateIdle
	c.cntr, c.cntrNext = 0, 0
	c.cntrEn, c.cntrRst = false, false
	c.doShift = false
}

// State returns the current state.
func (c *Control) State() State {
	return c.state
}

// Count returns the iteration counter.
func (c *Control) Count() uint64 {
	return c.cntr
}

// Shifting reports whether the last evaluated cycle was a shift-accumulate
// step.
func (c *Control) Shifting() bool {
	return c.doShift
}

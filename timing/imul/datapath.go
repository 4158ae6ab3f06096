// Package imul provides the cycle-accurate fixed-latency integer multiplier.
//
// The multiplier is an iterative shift-and-add design: a Datapath holding the
// operand and result registers, sequenced by a three-state Control unit, and
// exposed to its partners over valid/ready request and response channels.
//
// Every cycle is evaluated in two phases. Evaluate computes all combinational
// values (status bits, control signals, mux and adder outputs) from the
// current register state; Commit then latches the next register values all
// at once.
package imul

import "github.com/sarchlab/imulsim/timing/stream"

// OperandSel selects the next value of an operand register.
type OperandSel uint8

const (
	// SelIn loads the operand from the request.
	SelIn OperandSel = iota
	// SelShift shifts the register by one bit.
	SelShift
)

// ResultSel selects the next value of the result register.
type ResultSel uint8

const (
	// ResultSelZero clears the result.
	ResultSelZero ResultSel = iota
	// ResultSelAdd loads the adder output.
	ResultSelAdd
)

// DatapathIn holds the datapath input ports.
type DatapathIn struct {
	// Request operands.
	ReqMsgA uint64
	ReqMsgB uint64

	// Control signals (ctrl -> dpath).
	AMuxSel      OperandSel
	BMuxSel      OperandSel
	ResultMuxSel ResultSel
	ResultEn     bool
}

// DatapathOut holds the datapath output ports.
type DatapathOut struct {
	// RespMsg is the result register.
	RespMsg uint64

	// BLSB is the least significant bit of the B register (dpath -> ctrl).
	BLSB bool
}

// Datapath holds the operand and result registers of the multiplier along
// with the shifters, adder and muxes between them. It makes no decisions:
// what it does each cycle is set entirely by its control inputs.
type Datapath struct {
	In  DatapathIn
	Out DatapathOut

	width uint
	mask  uint64

	aReg      uint64
	bReg      uint64
	resultReg uint64

	aNext      uint64
	bNext      uint64
	resultNext uint64
}

// NewDatapath creates a datapath with width-bit registers.
func NewDatapath(width uint) *Datapath {
	return &Datapath{
		width: width,
		mask:  stream.Mask(width),
	}
}

// Width returns the register width.
func (d *Datapath) Width() uint {
	return d.width
}

// Outputs drives the output ports from the current register state. Both
// outputs depend on registers only, so they are valid before the control
// unit is evaluated.
func (d *Datapath) Outputs() {
	d.Out.RespMsg = d.resultReg
	d.Out.BLSB = d.bReg&1 == 1
}

// Evaluate computes the next register values from the input ports.
func (d *Datapath) Evaluate() {
	aShift := (d.aReg << 1) & d.mask
	bShift := d.bReg >> 1
	sum := (d.aReg + d.resultReg) & d.mask

	switch d.In.AMuxSel {
	case SelShift:
		d.aNext = aShift
	default:
		d.aNext = d.In.ReqMsgA & d.mask
	}

	switch d.In.BMuxSel {
	case SelShift:
		d.bNext = bShift
	default:
		d.bNext = d.In.ReqMsgB & d.mask
	}

	d.resultNext = d.resultReg
	if d.In.ResultEn {
		switch d.In.ResultMuxSel {
		case ResultSelAdd:
			d.resultNext = sum
		default:
			d.resultNext = 0
		}
	}
}

// Commit latches the values computed by the last Evaluate.
func (d *Datapath) Commit() {
	d.aReg = d.aNext
	d.bReg = d.bNext
	d.resultReg = d.resultNext
}

// Reset clears all registers.
func (d *Datapath) Reset() {
	d.In = DatapathIn{}
	d.Out = DatapathOut{}
	d.aReg, d.bReg, d.resultReg = 0, 0, 0
	d.aNext, d.bNext, d.resultNext = 0, 0, 0
}

// A returns the multiplicand register.
func (d *Datapath) A() uint64 { return d.aReg }

// B returns the multiplier register.
func (d *Datapath) B() uint64 { return d.bReg }

// Result returns the result register.
func (d *Datapath) Result() uint64 { return d.resultReg }

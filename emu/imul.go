// Package emu provides the functional integer multiplier used as the
// reference for the cycle-accurate model.
package emu

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/imulsim/timing/stream"
)

// Multiply returns the low width bits of a*b.
func Multiply(width uint, a, b uint64) uint64 {
	return (a * b) & stream.Mask(width)
}

// MultiplyMsg returns the product for a request.
func MultiplyMsg(req stream.ReqMsg) stream.Bits {
	n := req.NBits()
	return stream.NewBits(n, Multiply(n, req.A.Value, req.B.Value))
}

// MultiplyAll returns the products for reqs, in the same order.
func MultiplyAll(reqs []stream.ReqMsg) []stream.Bits {
	resps := make([]stream.Bits, len(reqs))
	for i, req := range reqs {
		resps[i] = MultiplyMsg(req)
	}
	return resps
}

// Transactions pairs each request with its product.
func Transactions(reqs []stream.ReqMsg) []stream.Transaction {
	txns := make([]stream.Transaction, len(reqs))
	for i, req := range reqs {
		txns[i] = stream.Transaction{Req: req, Resp: MultiplyMsg(req)}
	}
	return txns
}

// DefaultQueueDepth is the default capacity of the request and response
// queues of the functional multiplier.
const DefaultQueueDepth = 1

// MultiplierOption is a functional option for configuring the Multiplier.
type MultiplierOption func(*Multiplier)

// WithQueueDepth sets the capacity of both queues.
func WithQueueDepth(depth int) MultiplierOption {
	return func(m *Multiplier) {
		m.depth = depth
	}
}

// Multiplier is the functional multiplier. Requests are taken into a queue
// whenever it has room, one request per cycle is multiplied into a response
// queue, and the head of the response queue is offered on the response
// channel. It keeps arrival order but has no iteration timing.
type Multiplier struct {
	width uint
	depth int

	reqQ  sim.Buffer
	respQ sim.Buffer

	req  stream.ReqChannel
	resp stream.RespChannel
}

// NewMultiplier creates a functional multiplier for width-bit operands.
func NewMultiplier(width uint, opts ...MultiplierOption) *Multiplier {
	m := &Multiplier{
		width: width,
		depth: DefaultQueueDepth,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.reqQ = sim.NewBuffer("IntMulFL.ReqQ", m.depth)
	m.respQ = sim.NewBuffer("IntMulFL.RespQ", m.depth)
	m.Reset()

	return m
}

// Evaluate implements stream.Unit.
func (m *Multiplier) Evaluate(req *stream.ReqChannel, resp *stream.RespChannel) {
	req.Ready = m.reqQ.CanPush()

	if head := m.respQ.Peek(); head != nil {
		resp.Valid = true
		resp.Msg = head.(stream.Bits)
	} else {
		resp.Valid = false
		resp.Msg = stream.NewBits(m.width, 0)
	}

	m.req = *req
	m.resp = *resp
}

// Commit implements stream.Unit.
func (m *Multiplier) Commit() {
	if m.resp.Fire() {
		m.respQ.Pop()
	}
	if m.req.Fire() {
		m.reqQ.Push(m.req.Msg)
	}

	if m.reqQ.Size() > 0 && m.respQ.CanPush() {
		req := m.reqQ.Pop().(stream.ReqMsg)
		m.respQ.Push(stream.NewBits(m.width, Multiply(m.width, req.A.Value, req.B.Value)))
	}
}

// Reset empties both queues.
func (m *Multiplier) Reset() {
	m.reqQ.Clear()
	m.respQ.Clear()
	m.req = stream.ReqChannel{Msg: stream.NewReqMsg(m.width, 0, 0)}
	m.resp = stream.RespChannel{Msg: stream.NewBits(m.width, 0)}
}

// Pending returns the number of requests taken but not yet answered.
func (m *Multiplier) Pending() int {
	return m.reqQ.Size() + m.respQ.Size()
}

// LineTrace implements stream.Unit.
func (m *Multiplier) LineTrace() string {
	return fmt.Sprintf("%s()%s", m.req.Trace(), m.resp.Trace())
}

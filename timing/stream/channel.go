package stream

import (
	"fmt"
	"strings"
)

// Channel is one valid/ready handshake. The driver owns Valid and Msg, the
// receiver owns Ready. A transfer happens on a cycle only when both Valid and
// Ready are set.
//
// Once asserted, Valid (with the same Msg) and Ready must stay asserted until
// a transfer completes. Neither side checks this.
type Channel[T fmt.Stringer] struct {
	Valid bool
	Ready bool
	Msg   T
}

// ReqChannel carries multiply requests.
type ReqChannel = Channel[ReqMsg]

// RespChannel carries products.
type RespChannel = Channel[Bits]

// Fire reports whether a transfer happens this cycle.
func (c Channel[T]) Fire() bool {
	return c.Valid && c.Ready
}

// Trace renders the channel for a line trace. A transfer shows the message;
// otherwise the message slot shows '#' when the receiver stalls, blank when
// the driver has nothing and '.' when neither side is ready.
func (c Channel[T]) Trace() string {
	s := c.Msg.String()
	switch {
	case c.Valid && !c.Ready:
		return pad("#", len(s))
	case !c.Valid && c.Ready:
		return pad(" ", len(s))
	case !c.Valid && !c.Ready:
		return pad(".", len(s))
	}
	return s
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// Unit is a cycle-stepped component with one request and one response
// channel.
//
// Evaluate runs the combinational logic for the current cycle. The partner
// owned signals (req.Valid, req.Msg, resp.Ready) must already be on the
// channels; Evaluate fills in the unit owned ones (req.Ready, resp.Valid,
// resp.Msg) from the current register state. Commit latches the next
// register state computed by the last Evaluate.
type Unit interface {
	Evaluate(req *ReqChannel, resp *RespChannel)
	Commit()
	Reset()
	LineTrace() string
}

package stream

import (
	"errors"
	"fmt"
)

var (
	// ErrMismatch is reported when a response differs from the expected one.
	ErrMismatch = errors.New("response mismatch")
	// ErrUnexpected is reported when a response arrives after all expected
	// responses were received.
	ErrUnexpected = errors.New("unexpected response")
)

// Sink consumes responses from a response channel, idling a number of
// cycles before asserting Ready for each one, and checks them against the
// expected sequence.
type Sink struct {
	expected []Bits
	received []Bits
	wait     delayer
	err      error
}

// NewSink creates a sink expecting the given responses in order. delay is
// the number of idle cycles before accepting each response.
func NewSink(expected []Bits, delay int, opts ...DelayOption) *Sink {
	s := &Sink{
		expected: expected,
		wait:     delayer{delay: delay},
	}
	for _, opt := range opts {
		opt(&s.wait)
	}
	s.Reset()
	return s
}

// Drive puts the sink owned signal on the channel.
func (s *Sink) Drive(c *RespChannel) {
	c.Ready = !s.Done() && s.wait.count == 0
}

// Tick latches the outcome of the cycle seen on c.
func (s *Sink) Tick(c RespChannel) {
	if !c.Fire() {
		s.wait.tick(false)
		return
	}

	idx := len(s.received)
	s.received = append(s.received, c.Msg)
	switch {
	case idx >= len(s.expected):
		s.fail(fmt.Errorf("%w: message %d: got %s", ErrUnexpected, idx, c.Msg))
	case c.Msg.Value != s.expected[idx].Value:
		s.fail(fmt.Errorf("%w: message %d: expected %s, got %s",
			ErrMismatch, idx, s.expected[idx], c.Msg))
	}
	s.wait.tick(true)
}

func (s *Sink) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Done reports whether every expected response has been received.
func (s *Sink) Done() bool {
	return len(s.received) >= len(s.expected)
}

// Err returns the first checking failure, if any.
func (s *Sink) Err() error {
	return s.err
}

// Received returns the responses consumed so far.
func (s *Sink) Received() []Bits {
	return s.received
}

// Reset discards received responses and clears any failure.
func (s *Sink) Reset() {
	s.received = nil
	s.err = nil
	s.wait.reset()
}

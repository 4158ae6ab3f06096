package stream

import "math/rand/v2"

// delayer counts down the idle cycles inserted before each item.
type delayer struct {
	delay int
	rng   *rand.Rand
	count int
}

func (d *delayer) next() int {
	if d.rng != nil && d.delay > 0 {
		return d.rng.IntN(d.delay + 1)
	}
	return d.delay
}

func (d *delayer) reset() {
	d.count = d.next()
}

// tick advances the countdown. A transfer restarts it.
func (d *delayer) tick(fired bool) {
	if fired {
		d.count = d.next()
		return
	}
	if d.count > 0 {
		d.count--
	}
}

// DelayOption configures the delay of a Source or Sink.
type DelayOption func(*delayer)

// WithRandomDelay makes the delay before each item a uniform draw from
// [0, delay] taken from rng instead of the fixed delay.
func WithRandomDelay(rng *rand.Rand) DelayOption {
	return func(d *delayer) {
		d.rng = rng
	}
}

// Source drives an ordered sequence of requests onto a request channel,
// idling a number of cycles before asserting Valid for each one.
type Source struct {
	nbits uint
	msgs  []ReqMsg
	idx   int
	wait  delayer
}

// NewSource creates a source for nbits-wide requests. delay is the number of
// idle cycles before each request.
func NewSource(nbits uint, msgs []ReqMsg, delay int, opts ...DelayOption) *Source {
	s := &Source{
		nbits: nbits,
		msgs:  msgs,
		wait:  delayer{delay: delay},
	}
	for _, opt := range opts {
		opt(&s.wait)
	}
	s.Reset()
	return s
}

// Drive puts the source owned signals on the channel.
func (s *Source) Drive(c *ReqChannel) {
	if s.Done() {
		c.Valid = false
		c.Msg = NewReqMsg(s.nbits, 0, 0)
		return
	}
	c.Valid = s.wait.count == 0
	c.Msg = s.msgs[s.idx]
}

// Tick latches the outcome of the cycle seen on c.
func (s *Source) Tick(c ReqChannel) {
	if s.Done() {
		return
	}
	if c.Fire() {
		s.idx++
	}
	s.wait.tick(c.Fire())
}

// Done reports whether every request has been transferred.
func (s *Source) Done() bool {
	return s.idx >= len(s.msgs)
}

// Sent returns the number of requests transferred so far.
func (s *Source) Sent() int {
	return s.idx
}

// Reset rewinds the source to its first request.
func (s *Source) Reset() {
	s.idx = 0
	s.wait.reset()
}

// Len returns the total number of requests.
func (s *Source) Len() int {
	return len(s.msgs)
}

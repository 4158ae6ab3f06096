// Package benchmarks provides the multiplier test-case tables and the
// harness that runs them against a multiplier model and reports results.
package benchmarks

import (
	"fmt"
	"math/rand/v2"

	"github.com/sarchlab/imulsim/emu"
	"github.com/sarchlab/imulsim/timing/stream"
)

// Case is a named sequence of transactions together with the channel
// timing used to drive it.
type Case struct {
	// Name identifies the case.
	Name string

	// Description explains what the case exercises.
	Description string

	// Width is the operand width of every transaction.
	Width uint

	// Transactions are the requests and their expected responses.
	Transactions []stream.Transaction

	// SrcDelay and SinkDelay are the idle cycles before each request and
	// before accepting each response.
	SrcDelay  int
	SinkDelay int

	// RandomDelay draws each delay from [0, delay] instead.
	RandomDelay bool
}

// txn builds a 32-bit transaction from literal values. Negative values are
// taken as their two's complement bit patterns.
func txn(a, b, result int64) stream.Transaction {
	return stream.Transaction{
		Req:  stream.NewReqMsgInt(32, a, b),
		Resp: stream.FromInt(32, result),
	}
}

// GetCases returns the standard case table with no channel delays. The
// random case draws count operand pairs from rng.
func GetCases(rng *rand.Rand, count int) []Case {
	return []Case{
		smallPosPos(),
		smallNegPos(),
		smallPosNeg(),
		smallNegNeg(),
		largePosPos(),
		largeNegPos(),
		lsbMasked(),
		midMasked(),
		zerosAndOnes(),
		randomCase(rng, count, 32),
	}
}

// GetFullTable returns the standard cases with no delays, followed by the
// same cases with fixed source/sink delays of 3/5 and 5/3 and with random
// delays of up to 5 cycles.
func GetFullTable(rng *rand.Rand, count int) []Case {
	base := GetCases(rng, count)

	table := make([]Case, 0, 4*len(base))
	table = append(table, base...)
	table = append(table, WithDelays(base, 3, 5, false)...)
	table = append(table, WithDelays(base, 5, 3, false)...)
	table = append(table, WithDelays(base, 5, 5, true)...)
	return table
}

// WithDelays returns copies of cases driven with the given delays. The copy
// names carry the delays.
func WithDelays(cases []Case, srcDelay, sinkDelay int, random bool) []Case {
	out := make([]Case, len(cases))
	for i, c := range cases {
		c.SrcDelay = srcDelay
		c.SinkDelay = sinkDelay
		c.RandomDelay = random
		if srcDelay != 0 || sinkDelay != 0 {
			c.Name = fmt.Sprintf("%s_%s", c.Name, delayTag(srcDelay, sinkDelay, random))
		}
		out[i] = c
	}
	return out
}

func delayTag(src, sink int, random bool) string {
	if random {
		return fmt.Sprintf("rdelay%d_%d", src, sink)
	}
	return fmt.Sprintf("delay%d_%d", src, sink)
}

// GetCase returns the standard case with the given name.
func GetCase(name string, rng *rand.Rand, count int) (Case, bool) {
	for _, c := range GetCases(rng, count) {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}

// CaseNames lists the names of the standard cases.
func CaseNames() []string {
	cases := GetCases(rand.New(rand.NewPCG(0, 0)), 0)
	names := make([]string, len(cases))
	for i, c := range cases {
		names[i] = c.Name
	}
	return names
}

func smallPosPos() Case {
	return Case{
		Name:        "small_pos_pos",
		Description: "small positive * positive",
		Width:       32,
		Transactions: []stream.Transaction{
			txn(2, 3, 6),
			txn(4, 5, 20),
			txn(3, 4, 12),
			txn(10, 13, 130),
			txn(8, 7, 56),
		},
	}
}

func smallNegPos() Case {
	return Case{
		Name:        "small_neg_pos",
		Description: "small negative * positive",
		Width:       32,
		Transactions: []stream.Transaction{
			txn(-1, 1, -1),
			txn(-2, 4, -8),
			txn(-8, 8, -64),
			txn(-16, 10, -160),
		},
	}
}

func smallPosNeg() Case {
	return Case{
		Name:        "small_pos_neg",
		Description: "small positive * negative",
		Width:       32,
		Transactions: []stream.Transaction{
			txn(1, -1, -1),
			txn(2, -4, -8),
			txn(8, -8, -64),
			txn(16, -10, -160),
		},
	}
}

func smallNegNeg() Case {
	return Case{
		Name:        "small_neg_neg",
		Description: "small negative * negative",
		Width:       32,
		Transactions: []stream.Transaction{
			txn(-1, -1, 1),
			txn(-2, -4, 8),
			txn(-8, -8, 64),
			txn(-128, -64, 8192),
		},
	}
}

func largePosPos() Case {
	return Case{
		Name:        "large_pos_pos",
		Description: "large positive * positive, product truncated",
		Width:       32,
		Transactions: []stream.Transaction{
			txn(0x0fffffff, 0x64, 0x3fffff9c),
			txn(0x0fffffff, 0x160, 0xfffffea0),
			txn(0x0fffffff, 0x1314, 0x3fffecec),
		},
	}
}

func largeNegPos() Case {
	return Case{
		Name:        "large_neg_pos",
		Description: "all-ones multiplicand * positive",
		Width:       32,
		Transactions: []stream.Transaction{
			txn(0xffffffff, 0x64, 0xffffff9c),
			txn(0xffffffff, 0x160, 0xfffffea0),
			txn(0xffffffff, 0x1314, 0xffffecec),
		},
	}
}

func lsbMasked() Case {
	return Case{
		Name:        "lsb_masked",
		Description: "multiplier with low bits cleared",
		Width:       32,
		Transactions: []stream.Transaction{
			txn(0xffffffff, 0xffffff00, 0x00000100),
			txn(0xffffffff, 0xffff0000, 0x00010000),
			txn(0xffffffff, 0xff000000, 0x01000000),
		},
	}
}

func midMasked() Case {
	return Case{
		Name:        "mid_masked",
		Description: "multiplier with middle bits cleared",
		Width:       32,
		Transactions: []stream.Transaction{
			txn(0xffffffff, 0xffff00ff, 0x0000ff01),
			txn(0xffffffff, 0xff0000ff, 0x00ffff01),
			txn(0xffffffff, 0xff00ffff, 0x00ff0001),
		},
	}
}

func zerosAndOnes() Case {
	return Case{
		Name:        "zeros_and_ones",
		Description: "zero and identity operands",
		Width:       32,
		Transactions: []stream.Transaction{
			txn(0x00000000, 0x00000001, 0x00000000),
			txn(0x00000001, 0x00000001, 0x00000001),
			txn(0xffffffff, 0x00000001, 0xffffffff),
			txn(0xffffffff, 0xffffffff, 0x00000001),
			txn(0x00000000, 0xdeadbeef, 0x00000000),
			txn(0xdeadbeef, 0x00000000, 0x00000000),
			txn(0x00000001, 0xcafef00d, 0xcafef00d),
			txn(0x12345678, 0x00000001, 0x12345678),
		},
	}
}

func randomCase(rng *rand.Rand, count int, width uint) Case {
	return Case{
		Name:         "random",
		Description:  fmt.Sprintf("%d random operand pairs", count),
		Width:        width,
		Transactions: Random(rng, count, width),
	}
}

// Random returns count transactions with operands drawn from rng and
// products from the functional model.
func Random(rng *rand.Rand, count int, width uint) []stream.Transaction {
	mask := stream.Mask(width)
	reqs := make([]stream.ReqMsg, count)
	for i := range reqs {
		a := rng.Uint64() & mask
		b := rng.Uint64() & mask
		reqs[i] = stream.NewReqMsg(width, a, b)
	}
	return emu.Transactions(reqs)
}

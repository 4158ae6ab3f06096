package imul_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/imulsim/timing/imul"
)

var _ = Describe("Datapath", func() {
	var d *imul.Datapath

	// clock runs one cycle with the given inputs.
	clock := func(in imul.DatapathIn) {
		d.Outputs()
		d.In = in
		d.Evaluate()
		d.Commit()
	}

	load := func(a, b uint64) {
		clock(imul.DatapathIn{
			ReqMsgA:      a,
			ReqMsgB:      b,
			AMuxSel:      imul.SelIn,
			BMuxSel:      imul.SelIn,
			ResultMuxSel: imul.ResultSelZero,
			ResultEn:     true,
		})
	}

	step := func(en bool) {
		clock(imul.DatapathIn{
			AMuxSel:      imul.SelShift,
			BMuxSel:      imul.SelShift,
			ResultMuxSel: imul.ResultSelAdd,
			ResultEn:     en,
		})
	}

	BeforeEach(func() {
		d = imul.NewDatapath(32)
	})

	It("should load operands and clear the result", func() {
		load(6, 7)

		Expect(d.A()).To(Equal(uint64(6)))
		Expect(d.B()).To(Equal(uint64(7)))
		Expect(d.Result()).To(Equal(uint64(0)))
		Expect(d.Width()).To(Equal(uint(32)))
	})

	It("should shift A left and B right", func() {
		load(0x80000001, 0x6)
		step(false)

		Expect(d.A()).To(Equal(uint64(0x2)))
		Expect(d.B()).To(Equal(uint64(0x3)))
		Expect(d.Result()).To(Equal(uint64(0)))
	})

	It("should accumulate A when enabled", func() {
		load(5, 1)
		step(true)
		Expect(d.Result()).To(Equal(uint64(5)))

		step(true)
		Expect(d.Result()).To(Equal(uint64(15)))
	})

	It("should wrap the adder at the register width", func() {
		load(0xffffffff, 1)
		step(true)
		step(true)

		Expect(d.Result()).To(Equal(uint64(0xfffffffd)))
	})

	It("should expose the result and the LSB of B", func() {
		load(3, 5)
		d.Outputs()
		Expect(d.Out.BLSB).To(BeTrue())

		step(true)
		d.Outputs()
		Expect(d.Out.BLSB).To(BeFalse())
		Expect(d.Out.RespMsg).To(Equal(uint64(3)))
	})

	It("should not latch before commit", func() {
		load(1, 1)
		d.In = imul.DatapathIn{AMuxSel: imul.SelIn, BMuxSel: imul.SelIn, ReqMsgA: 9, ReqMsgB: 9}
		d.Evaluate()

		Expect(d.A()).To(Equal(uint64(1)))
	})

	It("should clear registers on reset", func() {
		load(3, 5)
		d.Reset()

		Expect(d.A()).To(BeZero())
		Expect(d.B()).To(BeZero())
		Expect(d.Result()).To(BeZero())
	})
})

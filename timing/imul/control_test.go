package imul_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/imulsim/timing/imul"
)

var _ = Describe("Control", func() {
	const iterations = 4

	var c *imul.Control

	clock := func(in imul.ControlIn) imul.ControlOut {
		c.In = in
		c.Evaluate()
		out := c.Out
		c.Commit()
		return out
	}

	start := func() {
		clock(imul.ControlIn{ReqVal: true})
	}

	BeforeEach(func() {
		c = imul.NewControl(iterations)
	})

	It("should start in IDLE", func() {
		Expect(c.State()).To(Equal(imul.StateIdle))
		Expect(c.State().String()).To(Equal("IDLE"))
		Expect(imul.State(7).String()).To(Equal("UNKNOWN"))
	})

	It("should load operands and wait in IDLE", func() {
		out := clock(imul.ControlIn{})

		Expect(out).To(Equal(imul.ControlOut{
			ReqRdy:       true,
			RespVal:      false,
			AMuxSel:      imul.SelIn,
			BMuxSel:      imul.SelIn,
			ResultMuxSel: imul.ResultSelZero,
			ResultEn:     true,
		}))
		Expect(c.State()).To(Equal(imul.StateIdle))
		Expect(c.Count()).To(BeZero())
	})

	It("should enter CALC when a request is taken", func() {
		start()

		Expect(c.State()).To(Equal(imul.StateCalc))
		Expect(c.Count()).To(BeZero())
	})

	It("should shift every CALC cycle and add only on a set LSB", func() {
		start()

		out := clock(imul.ControlIn{BLSB: true})
		Expect(out.ReqRdy).To(BeFalse())
		Expect(out.RespVal).To(BeFalse())
		Expect(out.AMuxSel).To(Equal(imul.SelShift))
		Expect(out.BMuxSel).To(Equal(imul.SelShift))
		Expect(out.ResultMuxSel).To(Equal(imul.ResultSelAdd))
		Expect(out.ResultEn).To(BeTrue())
		Expect(c.Shifting()).To(BeTrue())
		Expect(c.Count()).To(Equal(uint64(1)))

		out = clock(imul.ControlIn{BLSB: false})
		Expect(out.ResultEn).To(BeFalse())
		Expect(c.Count()).To(Equal(uint64(2)))
	})

	It("should suppress the write once the count is reached", func() {
		start()
		for i := 0; i < iterations; i++ {
			out := clock(imul.ControlIn{BLSB: true})
			Expect(out.ResultEn).To(BeTrue())
			Expect(c.State()).To(Equal(imul.StateCalc))
		}
		Expect(c.Count()).To(Equal(uint64(iterations)))

		out := clock(imul.ControlIn{BLSB: true})
		Expect(out.ResultEn).To(BeFalse())
		Expect(c.Shifting()).To(BeFalse())
		Expect(c.State()).To(Equal(imul.StateDone))
	})

	It("should hold DONE until the response is taken", func() {
		start()
		for i := 0; i <= iterations; i++ {
			clock(imul.ControlIn{})
		}
		Expect(c.State()).To(Equal(imul.StateDone))

		for i := 0; i < 3; i++ {
			out := clock(imul.ControlIn{ReqVal: true})
			Expect(out.RespVal).To(BeTrue())
			Expect(out.ReqRdy).To(BeFalse())
			Expect(out.ResultEn).To(BeFalse())
			Expect(c.State()).To(Equal(imul.StateDone))
			Expect(c.Count()).To(BeZero())
		}

		clock(imul.ControlIn{RespRdy: true})
		Expect(c.State()).To(Equal(imul.StateIdle))
	})

	It("should return to IDLE on reset", func() {
		start()
		clock(imul.ControlIn{})
		c.Reset()

		Expect(c.State()).To(Equal(imul.StateIdle))
		Expect(c.Count()).To(BeZero())
	})
})

package stream_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/imulsim/timing/stream"
)

var _ = Describe("Channel", func() {
	var c stream.RespChannel

	BeforeEach(func() {
		c = stream.RespChannel{Msg: stream.NewBits(32, 0x2a)}
	})

	It("should fire only when valid and ready", func() {
		Expect(c.Fire()).To(BeFalse())
		c.Valid = true
		Expect(c.Fire()).To(BeFalse())
		c.Ready = true
		Expect(c.Fire()).To(BeTrue())
		c.Valid = false
		Expect(c.Fire()).To(BeFalse())
	})

	It("should trace a transfer as the message", func() {
		c.Valid, c.Ready = true, true
		Expect(c.Trace()).To(Equal("0000002a"))
	})

	It("should trace a stall as #", func() {
		c.Valid = true
		Expect(c.Trace()).To(Equal("#       "))
	})

	It("should trace an idle driver as blank", func() {
		c.Ready = true
		Expect(c.Trace()).To(Equal("        "))
	})

	It("should trace an idle channel as .", func() {
		Expect(c.Trace()).To(Equal(".       "))
	})

	It("should pad request traces to the message width", func() {
		r := stream.ReqChannel{Msg: stream.NewReqMsg(32, 0, 0)}
		Expect(r.Trace()).To(HaveLen(17))
		Expect(r.Trace()).To(HavePrefix("."))
	})
})

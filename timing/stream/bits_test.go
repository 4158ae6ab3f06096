package stream_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/imulsim/timing/stream"
)

var _ = Describe("Bits", func() {
	It("should mask values to the width", func() {
		Expect(stream.Mask(0)).To(Equal(uint64(0)))
		Expect(stream.Mask(4)).To(Equal(uint64(0xf)))
		Expect(stream.Mask(32)).To(Equal(uint64(0xffffffff)))
		Expect(stream.Mask(64)).To(Equal(^uint64(0)))
	})

	It("should truncate on construction", func() {
		b := stream.NewBits(8, 0x1234)
		Expect(b.Value).To(Equal(uint64(0x34)))
		Expect(b.Width).To(Equal(uint(8)))
	})

	It("should store negative integers as two's complement", func() {
		Expect(stream.FromInt(32, -1).Uint()).To(Equal(uint64(0xffffffff)))
		Expect(stream.FromInt(32, -8).Uint()).To(Equal(uint64(0xfffffff8)))
		Expect(stream.FromInt(4, -1).Uint()).To(Equal(uint64(0xf)))
	})

	It("should read back signed values", func() {
		Expect(stream.NewBits(32, 0xffffffff).Int()).To(Equal(int64(-1)))
		Expect(stream.NewBits(32, 0x7fffffff).Int()).To(Equal(int64(0x7fffffff)))
		Expect(stream.NewBits(32, 0x80000000).Int()).To(Equal(int64(-0x80000000)))
		Expect(stream.FromInt(16, -160).Int()).To(Equal(int64(-160)))
		Expect(stream.NewBits(64, ^uint64(0)).Int()).To(Equal(int64(-1)))
	})

	It("should report individual bits", func() {
		b := stream.NewBits(8, 0x05)
		Expect(b.Bit(0)).To(BeTrue())
		Expect(b.Bit(1)).To(BeFalse())
		Expect(b.Bit(2)).To(BeTrue())
	})

	It("should render zero-padded hex", func() {
		Expect(stream.NewBits(32, 6).String()).To(Equal("00000006"))
		Expect(stream.NewBits(32, 0xdeadbeef).String()).To(Equal("deadbeef"))
		Expect(stream.NewBits(6, 0x3f).String()).To(Equal("3f"))
		Expect(stream.NewBits(1, 1).String()).To(Equal("1"))
		Expect(stream.NewBits(0, 0).String()).To(Equal("0"))
	})
})

var _ = Describe("ReqMsg", func() {
	It("should build from signed operands", func() {
		m := stream.NewReqMsgInt(32, -1, 4)
		Expect(m.A.Uint()).To(Equal(uint64(0xffffffff)))
		Expect(m.B.Uint()).To(Equal(uint64(4)))
		Expect(m.NBits()).To(Equal(uint(32)))
	})

	It("should pack a above b", func() {
		m := stream.NewReqMsg(32, 0x12345678, 0x9abcdef0)
		p := m.Pack()
		Expect(p.Width).To(Equal(uint(64)))
		Expect(p.Value).To(Equal(uint64(0x123456789abcdef0)))
	})

	It("should unpack what it packed", func() {
		m := stream.NewReqMsg(8, 0xa5, 0x3c)
		Expect(m.Pack().Value).To(Equal(uint64(0xa53c)))
		Expect(stream.UnpackReqMsg(8, m.Pack())).To(Equal(m))
	})

	It("should render as a:b", func() {
		m := stream.NewReqMsg(32, 2, 3)
		Expect(m.String()).To(Equal("00000002:00000003"))
	})

	It("should split transactions", func() {
		txns := []stream.Transaction{
			{Req: stream.NewReqMsg(32, 2, 3), Resp: stream.NewBits(32, 6)},
			{Req: stream.NewReqMsg(32, 4, 5), Resp: stream.NewBits(32, 20)},
		}
		reqs, resps := stream.Split(txns)
		Expect(reqs).To(Equal([]stream.ReqMsg{txns[0].Req, txns[1].Req}))
		Expect(resps).To(Equal([]stream.Bits{txns[0].Resp, txns[1].Resp}))
	})
})

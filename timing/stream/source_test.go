package stream_test

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/imulsim/timing/stream"
)

var _ = Describe("Source", func() {
	var msgs []stream.ReqMsg

	BeforeEach(func() {
		msgs = []stream.ReqMsg{
			stream.NewReqMsg(32, 2, 3),
			stream.NewReqMsg(32, 4, 5),
		}
	})

	// step drives the source against a receiver with the given ready and
	// latches the cycle.
	step := func(s *stream.Source, ready bool) stream.ReqChannel {
		var c stream.ReqChannel
		s.Drive(&c)
		c.Ready = ready
		s.Tick(c)
		return c
	}

	It("should send one request per cycle without delay", func() {
		s := stream.NewSource(32, msgs, 0)
		Expect(s.Len()).To(Equal(2))

		c := step(s, true)
		Expect(c.Fire()).To(BeTrue())
		Expect(c.Msg).To(Equal(msgs[0]))

		c = step(s, true)
		Expect(c.Fire()).To(BeTrue())
		Expect(c.Msg).To(Equal(msgs[1]))

		Expect(s.Done()).To(BeTrue())
		Expect(s.Sent()).To(Equal(2))

		c = step(s, true)
		Expect(c.Valid).To(BeFalse())
	})

	It("should idle delay cycles before each request", func() {
		s := stream.NewSource(32, msgs, 2)

		Expect(step(s, true).Valid).To(BeFalse())
		Expect(step(s, true).Valid).To(BeFalse())
		Expect(step(s, true).Fire()).To(BeTrue())

		Expect(step(s, true).Valid).To(BeFalse())
		Expect(step(s, true).Valid).To(BeFalse())
		c := step(s, true)
		Expect(c.Fire()).To(BeTrue())
		Expect(c.Msg).To(Equal(msgs[1]))
		Expect(s.Done()).To(BeTrue())
	})

	It("should hold the same request until it is taken", func() {
		s := stream.NewSource(32, msgs, 0)

		for i := 0; i < 5; i++ {
			c := step(s, false)
			Expect(c.Valid).To(BeTrue())
			Expect(c.Msg).To(Equal(msgs[0]))
		}
		Expect(s.Sent()).To(Equal(0))

		c := step(s, true)
		Expect(c.Msg).To(Equal(msgs[0]))
		Expect(s.Sent()).To(Equal(1))
	})

	It("should rewind on reset", func() {
		s := stream.NewSource(32, msgs, 0)
		step(s, true)
		s.Reset()
		Expect(s.Sent()).To(Equal(0))
		Expect(step(s, true).Msg).To(Equal(msgs[0]))
	})

	It("should draw random delays within the bound", func() {
		many := make([]stream.ReqMsg, 20)
		for i := range many {
			many[i] = stream.NewReqMsg(32, uint64(i), 1)
		}
		rng := rand.New(rand.NewPCG(1, 2))
		s := stream.NewSource(32, many, 3, stream.WithRandomDelay(rng))

		gap := 0
		for !s.Done() {
			c := step(s, true)
			if c.Fire() {
				Expect(gap).To(BeNumerically("<=", 3))
				gap = 0
				continue
			}
			gap++
		}
	})
})

package stream

// DefaultWidth is the operand width used when none is given.
const DefaultWidth = 32

// ReqMsg bundles the two operands of a multiply request.
type ReqMsg struct {
	A Bits
	B Bits
}

// NewReqMsg creates a request with nbits-wide operands.
func NewReqMsg(nbits uint, a, b uint64) ReqMsg {
	return ReqMsg{A: NewBits(nbits, a), B: NewBits(nbits, b)}
}

// NewReqMsgInt creates a request from signed operands. Negative values are
// stored as their two's complement bit patterns.
func NewReqMsgInt(nbits uint, a, b int64) ReqMsg {
	return ReqMsg{A: FromInt(nbits, a), B: FromInt(nbits, b)}
}

// NBits returns the operand width.
func (m ReqMsg) NBits() uint {
	return m.A.Width
}

// Pack lays the request out as one bit pattern, a in the upper half and b in
// the lower half. Operands wider than 32 bits do not fit and are truncated.
func (m ReqMsg) Pack() Bits {
	n := m.NBits()
	return NewBits(2*n, m.A.Value<<n|m.B.Value)
}

// UnpackReqMsg is the inverse of Pack.
func UnpackReqMsg(nbits uint, p Bits) ReqMsg {
	return NewReqMsg(nbits, p.Value>>nbits, p.Value)
}

// String renders the request as "a:b".
func (m ReqMsg) String() string {
	return m.A.String() + ":" + m.B.String()
}

// Transaction pairs a request with the response expected for it.
type Transaction struct {
	Req  ReqMsg
	Resp Bits
}

// Split separates transactions into the request sequence fed to a source
// and the response sequence expected by a sink.
func Split(txns []Transaction) ([]ReqMsg, []Bits) {
	reqs := make([]ReqMsg, len(txns))
	resps := make([]Bits, len(txns))
	for i, t := range txns {
		reqs[i] = t.Req
		resps[i] = t.Resp
	}
	return reqs, resps
}

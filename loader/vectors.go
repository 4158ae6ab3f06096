// Package loader reads and writes multiplier test vector files.
//
// A vector file holds one transaction per line: two operands and, optionally,
// the expected product, separated by blanks. Numbers take any Go integer
// literal form (decimal, 0x, 0o, 0b) and may be negative. Text after '#' is
// ignored. A missing product is filled in from the functional model.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sarchlab/imulsim/emu"
	"github.com/sarchlab/imulsim/timing/stream"
)

// Load reads a vector file for width-bit operands.
func Load(path string, width uint) ([]stream.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open vector file")
	}
	defer func() { _ = f.Close() }()

	txns, err := Parse(f, width)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return txns, nil
}

// Parse reads vectors for width-bit operands from r.
func Parse(r io.Reader, width uint) ([]stream.Transaction, error) {
	if width == 0 || width > 32 {
		return nil, errors.Errorf("unsupported width %d", width)
	}

	var txns []stream.Transaction

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++

		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 && len(fields) != 3 {
			return nil, errors.Errorf("line %d: expected 2 or 3 fields, got %d", line, len(fields))
		}

		vals := make([]uint64, len(fields))
		for i, f := range fields {
			v, err := parseValue(f, width)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			vals[i] = v
		}

		req := stream.NewReqMsg(width, vals[0], vals[1])
		resp := emu.MultiplyMsg(req)
		if len(vals) == 3 {
			resp = stream.NewBits(width, vals[2])
		}
		txns = append(txns, stream.Transaction{Req: req, Resp: resp})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read vectors")
	}

	return txns, nil
}

// parseValue parses s as a width-bit value, signed or unsigned.
func parseValue(s string, width uint) (uint64, error) {
	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, errors.Errorf("invalid number %q", s)
		}
		if v < -(int64(1) << (width - 1)) {
			return 0, errors.Errorf("%s does not fit in %d bits", s, width)
		}
		return stream.FromInt(width, v).Value, nil
	}

	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, errors.Errorf("invalid number %q", s)
	}
	if v > stream.Mask(width) {
		return 0, errors.Errorf("%s does not fit in %d bits", s, width)
	}
	return v, nil
}

// Write writes txns in vector file form, all values in hex.
func Write(w io.Writer, txns []stream.Transaction) error {
	for _, t := range txns {
		_, err := fmt.Fprintf(w, "0x%s 0x%s 0x%s\n", t.Req.A, t.Req.B, t.Resp)
		if err != nil {
			return errors.Wrap(err, "failed to write vectors")
		}
	}
	return nil
}

// Package stream provides the valid/ready streaming channel convention used
// between the multiplier and its partners, together with the message types
// carried over it and the test source and sink that drive it.
package stream

import "fmt"

// MaxWidth is the widest bit pattern a Bits value can hold.
const MaxWidth = 64

// Bits is a fixed-width bit pattern. It carries no signedness; Int and Uint
// are two views of the same bits.
type Bits struct {
	// Width is the number of significant bits.
	Width uint
	// Value holds the bits. Bits at or above Width are always zero.
	Value uint64
}

// Mask returns a value with the low width bits set.
func Mask(width uint) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// NewBits creates a Bits value of the given width. Bits of v that do not fit
// are discarded.
func NewBits(width uint, v uint64) Bits {
	return Bits{Width: width, Value: v & Mask(width)}
}

// FromInt creates a Bits value from a signed integer using its two's
// complement representation truncated to width.
func FromInt(width uint, v int64) Bits {
	return NewBits(width, uint64(v))
}

// Uint returns the bits as an unsigned integer.
func (b Bits) Uint() uint64 {
	return b.Value
}

// Int returns the bits interpreted as a two's complement signed integer.
func (b Bits) Int() int64 {
	if b.Width == 0 {
		return 0
	}
	if b.Width >= MaxWidth {
		return int64(b.Value)
	}
	shift := MaxWidth - b.Width
	return int64(b.Value<<shift) >> shift
}

// Bit returns bit i.
func (b Bits) Bit(i uint) bool {
	return (b.Value>>i)&1 == 1
}

// String renders the bits as zero-padded hex, one digit per nibble.
func (b Bits) String() string {
	digits := int((b.Width + 3) / 4)
	if digits == 0 {
		digits = 1
	}
	return fmt.Sprintf("%0*x", digits, b.Value)
}

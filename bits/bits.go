// Package bits converts between unsigned integers and fixed-width binary digit
// slices. Digit 0 is the least significant bit; ToBinary and FromBinary are
// exact inverses for any value that fits the requested width.
package bits

import (
	"fmt"
)

// RangeError is returned by ToBinary when the value does not fit the
// requested width.
type RangeError struct {
	Value uint64
	Width int
}

func (e RangeError) Error() string {
	return fmt.Sprintf("value %d does not fit in %d bits", e.Value, e.Width)
}

// ToBinary decomposes v into width binary digits, least significant first.
// It returns a RangeError if v >= 2^width or width is negative. A width of 0
// encodes only 0.
func ToBinary(v uint64, width int) ([]uint8, error) {
	if width < 0 {
		return nil, RangeError{Value: v, Width: width}
	}
	if width < 64 && v>>uint(width) != 0 {
		return nil, RangeError{Value: v, Width: width}
	}
	digits := make([]uint8, width)
	for i := 0; i < width; i++ {
		digits[i] = uint8(v >> uint(i) & 1)
	}
	return digits, nil
}

// FromBinary reconstructs the integer Σ digits[i]·2^i. An empty slice
// decodes to 0.
func FromBinary(digits []uint8) uint64 {
	var v uint64
	for i, d := range digits {
		v |= uint64(d&1) << uint(i)
	}
	return v
}

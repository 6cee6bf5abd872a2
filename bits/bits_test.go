package bits

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000

	properties := gopter.NewProperties(parameters)
	properties.Property("FromBinary(ToBinary(v, 16)) == v", prop.ForAll(
		func(v uint16) bool {
			digits, err := ToBinary(uint64(v), 16)
			if err != nil {
				return false
			}
			return FromBinary(digits) == uint64(v)
		},
		gen.UInt16(),
	))

	properties.Property("ToBinary emits exactly width digits", prop.ForAll(
		func(v uint16) bool {
			digits, err := ToBinary(uint64(v), 16)
			return err == nil && len(digits) == 16
		},
		gen.UInt16(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestToBinaryRange(t *testing.T) {
	assert := require.New(t)

	_, err := ToBinary(1<<16, 16)
	assert.Error(err)
	var rangeErr RangeError
	assert.True(errors.As(err, &rangeErr))
	assert.Equal(uint64(1<<16), rangeErr.Value)
	assert.Equal(16, rangeErr.Width)

	digits, err := ToBinary(1<<16-1, 16)
	assert.NoError(err)
	assert.Equal(uint64(1<<16-1), FromBinary(digits))
}

func TestNegativeWidth(t *testing.T) {
	assert := require.New(t)

	_, err := ToBinary(6, -1)
	assert.Error(err)
	var rangeErr RangeError
	assert.True(errors.As(err, &rangeErr))
	assert.Equal(-1, rangeErr.Width)

	_, err = ToBinary(0, -8)
	assert.Error(err)
}

func TestZeroWidth(t *testing.T) {
	assert := require.New(t)

	digits, err := ToBinary(0, 0)
	assert.NoError(err)
	assert.Empty(digits)

	_, err = ToBinary(1, 0)
	assert.Error(err)

	assert.Equal(uint64(0), FromBinary(nil))
}

func TestBitOrder(t *testing.T) {
	assert := require.New(t)

	// 6 = 0b110; digit 0 is the least significant bit.
	digits, err := ToBinary(6, 4)
	assert.NoError(err)
	assert.Equal([]uint8{0, 1, 1, 0}, digits)
}

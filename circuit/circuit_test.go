package circuit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBindProduct(t *testing.T) {
	assert := require.New(t)
	mult := New(8)

	fixed, err := mult.BindProduct(6)
	assert.NoError(err)
	assert.Len(fixed, 16)
	// 6 = 0b110
	assert.Equal(uint8(0), fixed["p0"])
	assert.Equal(uint8(1), fixed["p1"])
	assert.Equal(uint8(1), fixed["p2"])
	for i := 3; i < 16; i++ {
		assert.Equal(uint8(0), fixed[VarP(i)])
	}
}

func TestBindProductOutOfRange(t *testing.T) {
	assert := require.New(t)
	mult := New(8)

	_, err := mult.BindProduct(1 << 16)
	assert.Error(err)
	var vErr ValidationError
	assert.True(errors.As(err, &vErr))
	assert.Equal("P", vErr.Field)
	assert.Equal(uint64(1<<16), vErr.Value)
	assert.Equal(uint64(1<<16-1), vErr.Max)

	// the register bound starts at 0; the pipeline rejects 0 and 1 itself
	_, err = mult.BindProduct(0)
	assert.NoError(err)
}

func TestDecodeFactors(t *testing.T) {
	assert := require.New(t)
	mult := New(8)

	asg := make(Assignment)
	for i := 0; i < 8; i++ {
		asg[VarA(i)] = uint8(13 >> i & 1)
		asg[VarB(i)] = uint8(201 >> i & 1)
	}
	a, b, err := mult.DecodeFactors(asg)
	assert.NoError(err)
	assert.Equal(uint64(13), a)
	assert.Equal(uint64(201), b)
}

func TestDecodeFactorsIgnoresInternalWires(t *testing.T) {
	assert := require.New(t)
	mult := New(8)

	asg := make(Assignment)
	for i := 0; i < 8; i++ {
		asg[VarA(i)] = uint8(3 >> i & 1)
		asg[VarB(i)] = uint8(2 >> i & 1)
	}
	a, b, err := mult.DecodeFactors(asg)
	assert.NoError(err)

	// the oracle reports internal circuit state alongside the factor bits;
	// extra names must not change the decoded pair
	asg["m3_4"] = 1
	asg["c7_1"] = 1
	asg["s12_0"] = 0
	asg["p5"] = 1
	a2, b2, err := mult.DecodeFactors(asg)
	assert.NoError(err)
	assert.Equal(a, a2)
	assert.Equal(b, b2)
}

func TestDecodeFactorsMissingVariable(t *testing.T) {
	assert := require.New(t)
	mult := New(8)

	asg := make(Assignment)
	for i := 0; i < 8; i++ {
		asg[VarA(i)] = 0
		asg[VarB(i)] = 0
	}
	delete(asg, "b5")
	_, _, err := mult.DecodeFactors(asg)
	assert.ErrorIs(err, ErrIncompleteAssignment)
}

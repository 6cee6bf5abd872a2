package anneal

import (
	"context"
	"testing"

	"github.com/Leosirius2597/dwave-factor/circuit"
	"github.com/Leosirius2597/dwave-factor/sampler"
	"github.com/stretchr/testify/require"
)

func TestSampleFactorsSmallProduct(t *testing.T) {
	assert := require.New(t)

	// 2-bit factors, product register of 4 bits, P = 6: the only valid
	// factorizations are (2,3) and (3,2)
	mult := circuit.New(2)
	model := mult.Compile()
	fixed, err := mult.BindProduct(6)
	assert.NoError(err)
	model.Fix(fixed)

	s := New(WithSeed(42), WithSweeps(64))
	set, err := s.Sample(context.Background(), model, sampler.Request{NumReads: 400, Label: "test"})
	assert.NoError(err)

	assert.Equal(uint64(400), set.TotalOccurrences())
	assert.NotEmpty(set.Records)

	validReads := uint64(0)
	for _, rec := range set.Records {
		assert.GreaterOrEqual(rec.Occurrences, uint64(1))
		a, b, err := mult.DecodeFactors(rec.Assignment)
		assert.NoError(err)
		if a*b == 6 {
			validReads += rec.Occurrences
		}
	}
	// annealing is stochastic, but on a model this small the ground state
	// dominates
	assert.Greater(validReads, uint64(100))
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	assert := require.New(t)

	mult := circuit.New(2)
	build := func() *sampler.SampleSet {
		model := mult.Compile()
		fixed, err := mult.BindProduct(9)
		assert.NoError(err)
		model.Fix(fixed)
		s := New(WithSeed(7), WithSweeps(32))
		set, err := s.Sample(context.Background(), model, sampler.Request{NumReads: 50})
		assert.NoError(err)
		return set
	}

	counts := func(set *sampler.SampleSet) map[[2]uint64]uint64 {
		out := make(map[[2]uint64]uint64)
		for _, rec := range set.Records {
			a, b, err := mult.DecodeFactors(rec.Assignment)
			assert.NoError(err)
			out[[2]uint64{a, b}] += rec.Occurrences
		}
		return out
	}
	assert.Equal(counts(build()), counts(build()))
}

func TestSampleHonorsContext(t *testing.T) {
	assert := require.New(t)

	model := circuit.New(8).Compile()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(WithSeed(1), WithSweeps(512))
	_, err := s.Sample(ctx, model, sampler.Request{NumReads: 5000})
	assert.ErrorIs(err, context.Canceled)
}

func TestSampleDefaultReads(t *testing.T) {
	assert := require.New(t)

	req := sampler.Request{}
	assert.Equal(sampler.DefaultNumReads, req.Reads())
	req.NumReads = 12
	assert.Equal(12, req.Reads())
}

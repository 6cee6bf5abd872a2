// Package sampler defines the contract with the combinatorial sampling
// oracle: given an energy model, return a multiset of low-energy bit
// assignments with occurrence counts and timing metadata. How the oracle
// finds assignments is its own business; implementations live in
// sampler/anneal (local) and sampler/client (remote).
package sampler

import (
	"context"

	"github.com/Leosirius2597/dwave-factor/circuit"
	"github.com/Leosirius2597/dwave-factor/qubo"
)

// DefaultNumReads is the number of reads requested per run when the caller
// does not say otherwise.
const DefaultNumReads = 7000

// Request carries per-run sampling parameters.
type Request struct {
	// NumReads is the number of samples to draw; 0 means DefaultNumReads.
	NumReads int
	// Label tags the run for the oracle's bookkeeping.
	Label string
}

// Reads returns the effective read count of the request.
func (r Request) Reads() int {
	if r.NumReads <= 0 {
		return DefaultNumReads
	}
	return r.NumReads
}

// Record is one distinct assignment and how many reads produced it.
type Record struct {
	Assignment  circuit.Assignment
	Occurrences uint64
}

// Timing reports the oracle's own processing time.
type Timing struct {
	OracleTimeMicros uint64
}

// SampleSet is the complete response of one sampling round-trip. The sum of
// Occurrences is informational: an oracle may under-deliver relative to the
// requested read count.
type SampleSet struct {
	Records []Record
	Timing  Timing
}

// TotalOccurrences sums the occurrence counts over all records.
func (s *SampleSet) TotalOccurrences() uint64 {
	var total uint64
	for _, r := range s.Records {
		total += r.Occurrences
	}
	return total
}

// Oracle is the sampling collaborator. Sample is a single synchronous
// round-trip; either a complete sample set comes back or the run fails with
// no partial result.
type Oracle interface {
	Sample(ctx context.Context, m *qubo.Model, req Request) (*SampleSet, error)
}

// Package factor runs the factoring pipeline: validate P, pin the product
// bits of the multiplication circuit, sample the reduced energy model, and
// aggregate the sampled assignments into ranked factor candidates.
package factor

import (
	"fmt"

	"github.com/Leosirius2597/dwave-factor/circuit"
	"github.com/Leosirius2597/dwave-factor/debug"
	"github.com/Leosirius2597/dwave-factor/sampler"
)

// ConsistencyError reports a violated internal invariant. It is fatal to the
// current run; retrying cannot succeed without fixing the caller's input.
// On debug builds Stack carries the call stack at the point of failure.
type ConsistencyError struct {
	Reason string
	Stack  string
}

func (e ConsistencyError) Error() string {
	if e.Stack == "" {
		return "consistency violation: " + e.Reason
	}
	return "consistency violation: " + e.Reason + "\n" + e.Stack
}

func newConsistencyError(reason string) ConsistencyError {
	e := ConsistencyError{Reason: reason}
	if debug.Debug {
		e.Stack = debug.Stack()
	}
	return e
}

// FactorCandidate is one decoded (a, b) pair with its occurrence statistics.
// Identity for aggregation is the pair (a, b); Valid is fixed at creation
// since a, b and P never change for a given key.
type FactorCandidate struct {
	A                 uint64
	B                 uint64
	Product           uint64
	Valid             bool
	Occurrences       uint64
	PercentageOfReads float64
}

// ResultSet is the aggregated outcome of one factoring run. Candidates are
// kept in first-seen order, valid and invalid alike; filtering and sorting
// belong to the presentation layer.
type ResultSet struct {
	Candidates       []FactorCandidate
	TotalReads       uint64
	OracleTimeMicros uint64
}

// Aggregate decodes every sampled assignment with mult, validates it against
// P, and merges samples decoding to the same (a, b) pair. The sum of
// candidate occurrences always equals TotalReads: no sample is dropped or
// double-counted. An empty sample set is a ConsistencyError since
// percentages are undefined.
func Aggregate(mult circuit.Multiplier, P uint64, set *sampler.SampleSet) (*ResultSet, error) {
	rs := &ResultSet{
		OracleTimeMicros: set.Timing.OracleTimeMicros,
	}
	seen := make(map[[2]uint64]int)
	for _, rec := range set.Records {
		a, b, err := mult.DecodeFactors(rec.Assignment)
		if err != nil {
			return nil, newConsistencyError(err.Error())
		}
		rs.TotalReads += rec.Occurrences
		key := [2]uint64{a, b}
		if idx, ok := seen[key]; ok {
			rs.Candidates[idx].Occurrences += rec.Occurrences
			continue
		}
		seen[key] = len(rs.Candidates)
		rs.Candidates = append(rs.Candidates, FactorCandidate{
			A:           a,
			B:           b,
			Product:     P,
			Valid:       a*b == P,
			Occurrences: rec.Occurrences,
		})
	}
	if rs.TotalReads == 0 {
		return nil, newConsistencyError("zero total reads, percentages are undefined")
	}
	for i := range rs.Candidates {
		rs.Candidates[i].PercentageOfReads = 100 * float64(rs.Candidates[i].Occurrences) / float64(rs.TotalReads)
	}
	return rs, nil
}

// Valid returns the valid candidates in first-seen order.
func (rs *ResultSet) Valid() []FactorCandidate {
	var out []FactorCandidate
	for _, c := range rs.Candidates {
		if c.Valid {
			out = append(out, c)
		}
	}
	return out
}

func (c FactorCandidate) String() string {
	return fmt.Sprintf("(%d,%d) x%d", c.A, c.B, c.Occurrences)
}

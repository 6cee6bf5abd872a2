// Package dwfactor factors a 16-bit positive integer P into two 8-bit factors
// by encoding the multiplication a*b = P as a constraint circuit over binary
// variables, reducing the circuit to a quadratic (QUBO) energy model, and
// submitting the model to a combinatorial sampling oracle. Sampled bit
// assignments are decoded back into candidate factor pairs, merged by
// occurrence and ranked.
//
// The oracle is pluggable: a local simulated annealer ships in
// sampler/anneal, and sampler/client talks to a remote solver API.
package dwfactor

import (
	"github.com/blang/semver/v4"
)

// Version of the dwave-factor library, stamped into serialized energy models.
var Version = semver.MustParse("0.2.0")

const (
	// ProductBits is the output width of the multiplication circuit; the
	// integer to factor must fit in this many bits.
	ProductBits = 16

	// FactorBits is the input width of each factor register.
	FactorBits = 8
)

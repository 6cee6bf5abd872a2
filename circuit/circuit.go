// Package circuit names the binary variables of the factoring circuit, binds
// the known product bits, and decodes sampled assignments back into factor
// pairs.
//
// Variable naming: factor inputs are a0..a{n-1} and b0..b{n-1}, product
// outputs are p0..p{2n-1}, digit 0 being the least significant bit. Internal
// wires (partial products, adder sums and carries) carry their own names and
// are ignored by DecodeFactors.
package circuit

import (
	"fmt"

	"github.com/Leosirius2597/dwave-factor/bits"
)

// ValidationError reports a bound value outside its required integer range.
// Values are never silently clamped.
type ValidationError struct {
	Field string
	Value uint64
	Min   uint64
	Max   uint64
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s = %d outside [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// ErrIncompleteAssignment is returned by DecodeFactors when a named factor
// variable is missing from the assignment; the sampler and the circuit
// disagree on the variable set, which is a defect, not a recoverable state.
var ErrIncompleteAssignment = fmt.Errorf("assignment is missing a factor variable")

// Assignment maps variable names to bit values, one per sample returned by
// the oracle. It may contain internal wiring variables beyond the named
// factor and product bits.
type Assignment map[string]uint8

// FixedVariables pins product-output variables to the bits of P. It is built
// once per factoring run and consumed by the model reduction.
type FixedVariables map[string]uint8

// VarA returns the name of the i-th bit of factor a.
func VarA(i int) string { return fmt.Sprintf("a%d", i) }

// VarB returns the name of the i-th bit of factor b.
func VarB(i int) string { return fmt.Sprintf("b%d", i) }

// VarP returns the name of the i-th bit of the product.
func VarP(i int) string { return fmt.Sprintf("p%d", i) }

// Multiplier describes an n-bit by n-bit binary multiplication circuit with a
// 2n-bit product register.
type Multiplier struct {
	factorBits int
}

// New returns a multiplier over factorBits-wide factor registers.
func New(factorBits int) Multiplier {
	if factorBits <= 0 {
		panic("factorBits must be positive")
	}
	return Multiplier{factorBits: factorBits}
}

// FactorBits returns the width of each factor register.
func (m Multiplier) FactorBits() int { return m.factorBits }

// ProductBits returns the width of the product register.
func (m Multiplier) ProductBits() int { return 2 * m.factorBits }

// BindProduct decomposes P into the product-output variables. It returns a
// ValidationError if P does not fit the product register. Callers enforce
// P >= 2 themselves; the bound here is only the register width.
func (m Multiplier) BindProduct(P uint64) (FixedVariables, error) {
	w := m.ProductBits()
	digits, err := bits.ToBinary(P, w)
	if err != nil {
		return nil, ValidationError{Field: "P", Value: P, Min: 0, Max: 1<<uint(w) - 1}
	}
	fixed := make(FixedVariables, w)
	for i, d := range digits {
		fixed[VarP(i)] = d
	}
	return fixed, nil
}

// DecodeFactors extracts the named a and b variables from an assignment and
// reconstructs both factors. Unrecognized variable names are ignored: oracle
// output includes internal circuit wiring. A missing factor variable returns
// ErrIncompleteAssignment.
func (m Multiplier) DecodeFactors(asg Assignment) (a, b uint64, err error) {
	da := make([]uint8, m.factorBits)
	db := make([]uint8, m.factorBits)
	for i := 0; i < m.factorBits; i++ {
		var ok bool
		if da[i], ok = asg[VarA(i)]; !ok {
			return 0, 0, fmt.Errorf("%w: %s", ErrIncompleteAssignment, VarA(i))
		}
		if db[i], ok = asg[VarB(i)]; !ok {
			return 0, 0, fmt.Errorf("%w: %s", ErrIncompleteAssignment, VarB(i))
		}
	}
	return bits.FromBinary(da), bits.FromBinary(db), nil
}

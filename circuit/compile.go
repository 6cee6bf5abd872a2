package circuit

import (
	"fmt"

	"github.com/Leosirius2597/dwave-factor/qubo"
)

// Compile lowers the multiplication circuit to a QUBO energy model.
//
// Partial products aᵢ·bⱼ are AND gates; each product column is then reduced
// with half and full adders, carries rippling into the next column. The
// surviving column wire is tied to the named product-output variable, so
// fixing the product bits afterwards pins the circuit to a concrete P.
// Assignments with zero energy are exactly the valid multiplications.
func (m Multiplier) Compile() *qubo.Model {
	q := qubo.NewModel()
	n := m.factorBits

	// factor registers first: stable, documented variable order
	for i := 0; i < n; i++ {
		q.Var(VarA(i))
	}
	for i := 0; i < n; i++ {
		q.Var(VarB(i))
	}

	columns := make([][]string, 2*n+1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			w := fmt.Sprintf("m%d_%d", i, j)
			q.And(VarA(i), VarB(j), w)
			columns[i+j] = append(columns[i+j], w)
		}
	}

	for k := 0; k < 2*n; k++ {
		addends := columns[k]
		next := 0
		for len(addends) >= 3 {
			sum := fmt.Sprintf("s%d_%d", k, next)
			carry := fmt.Sprintf("c%d_%d", k, next)
			next++
			q.FullAdder(addends[0], addends[1], addends[2], sum, carry)
			addends = append([]string{sum}, addends[3:]...)
			columns[k+1] = append(columns[k+1], carry)
		}
		if len(addends) == 2 {
			sum := fmt.Sprintf("s%d_%d", k, next)
			carry := fmt.Sprintf("c%d_%d", k, next)
			q.HalfAdder(addends[0], addends[1], sum, carry)
			addends = addends[:1]
			addends[0] = sum
			columns[k+1] = append(columns[k+1], carry)
		}
		if len(addends) == 1 {
			q.Equal(addends[0], VarP(k))
		} else {
			q.Zero(VarP(k))
		}
	}

	// an 2n-bit register holds any n×n product; carries past the top column
	// must settle to zero
	for _, w := range columns[2*n] {
		q.Zero(w)
	}

	return q
}

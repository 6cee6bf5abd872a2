package qubo

// Gate penalty construction. Each gate contributes terms whose minimum over
// binary assignments is 0, attained exactly on the gate's truth table.

type term struct {
	name string
	c    float64
}

// squaredLinear expands (Σ cᵢxᵢ + k)² into linear, quadratic and constant
// terms, using xᵢ² = xᵢ.
func (m *Model) squaredLinear(terms []term, k float64) {
	for i, ti := range terms {
		m.AddLinear(ti.name, ti.c*ti.c+2*k*ti.c)
		for _, tj := range terms[i+1:] {
			m.AddQuadratic(ti.name, tj.name, 2*ti.c*tj.c)
		}
	}
	m.AddOffset(k * k)
}

// And constrains z = x AND y with the penalty xy − 2xz − 2yz + 3z.
func (m *Model) And(x, y, z string) {
	m.AddQuadratic(x, y, 1)
	m.AddQuadratic(x, z, -2)
	m.AddQuadratic(y, z, -2)
	m.AddLinear(z, 3)
}

// Equal constrains x == y with the penalty (x − y)² = x + y − 2xy.
func (m *Model) Equal(x, y string) {
	m.AddLinear(x, 1)
	m.AddLinear(y, 1)
	m.AddQuadratic(x, y, -2)
}

// Zero constrains x == 0 with the penalty x.
func (m *Model) Zero(x string) {
	m.AddLinear(x, 1)
}

// HalfAdder constrains sum = x XOR y and carry = x AND y via the identity
// x + y = sum + 2·carry, penalized as (x + y − sum − 2·carry)².
func (m *Model) HalfAdder(x, y, sum, carry string) {
	m.squaredLinear([]term{
		{x, 1}, {y, 1}, {sum, -1}, {carry, -2},
	}, 0)
}

// FullAdder constrains sum = x XOR y XOR cin and carry = MAJ(x, y, cin) via
// x + y + cin = sum + 2·carry, penalized as (x + y + cin − sum − 2·carry)².
func (m *Model) FullAdder(x, y, cin, sum, carry string) {
	m.squaredLinear([]term{
		{x, 1}, {y, 1}, {cin, 1}, {sum, -1}, {carry, -2},
	}, 0)
}

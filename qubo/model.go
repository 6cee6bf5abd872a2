// Package qubo implements a quadratic unconstrained binary optimization
// model over named variables: E(x) = Σ aᵢxᵢ + Σ bᵢⱼxᵢxⱼ + c. Constraint
// gates contribute penalty terms whose ground states are exactly the valid
// gate rows, so any assignment with E(x) == 0 satisfies the whole circuit.
package qubo

import (
	"fmt"
	"sort"
)

type pair struct{ i, j int } // i < j

// Model is a QUBO energy model ready for sampling. Variables are indexed in
// insertion order; fixed variables are eliminated from the model entirely.
type Model struct {
	names  []string
	index  map[string]int
	linear map[int]float64
	quad   map[pair]float64
	offset float64
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		index:  make(map[string]int),
		linear: make(map[int]float64),
		quad:   make(map[pair]float64),
	}
}

// Var returns the index of the named variable, registering it on first use.
func (m *Model) Var(name string) int {
	if i, ok := m.index[name]; ok {
		return i
	}
	i := len(m.names)
	m.names = append(m.names, name)
	m.index[name] = i
	return i
}

// Variables returns the variable names in index order. The returned slice is
// owned by the model.
func (m *Model) Variables() []string { return m.names }

// NumVariables returns the number of free variables.
func (m *Model) NumVariables() int { return len(m.names) }

// AddLinear accumulates w·x onto the energy.
func (m *Model) AddLinear(name string, w float64) {
	if w == 0 {
		return
	}
	m.linear[m.Var(name)] += w
}

// AddQuadratic accumulates w·x·y onto the energy. x == y folds to a linear
// term since x² = x over binary variables.
func (m *Model) AddQuadratic(x, y string, w float64) {
	if w == 0 {
		return
	}
	i, j := m.Var(x), m.Var(y)
	if i == j {
		m.linear[i] += w
		return
	}
	if i > j {
		i, j = j, i
	}
	m.quad[pair{i, j}] += w
}

// AddOffset accumulates a constant onto the energy.
func (m *Model) AddOffset(w float64) { m.offset += w }

// Offset returns the constant energy term.
func (m *Model) Offset() float64 { return m.offset }

// Linear returns the linear coefficient of the named variable.
func (m *Model) Linear(name string) float64 {
	i, ok := m.index[name]
	if !ok {
		return 0
	}
	return m.linear[i]
}

// Quadratic returns the coefficient of x·y.
func (m *Model) Quadratic(x, y string) float64 {
	i, ok := m.index[x]
	if !ok {
		return 0
	}
	j, ok := m.index[y]
	if !ok {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	return m.quad[pair{i, j}]
}

// Energy evaluates the model on a full assignment. Variables absent from the
// assignment are an error; extra entries are ignored.
func (m *Model) Energy(asg map[string]uint8) (float64, error) {
	x := make([]float64, len(m.names))
	for i, name := range m.names {
		v, ok := asg[name]
		if !ok {
			return 0, fmt.Errorf("assignment is missing variable %s", name)
		}
		x[i] = float64(v & 1)
	}
	e := m.offset
	for i, w := range m.linear {
		e += w * x[i]
	}
	for p, w := range m.quad {
		e += w * x[p.i] * x[p.j]
	}
	return e, nil
}

// Fix eliminates the given variables from the model by substituting their
// values: linear terms fold into the offset, quadratic terms fold into the
// linear term of the surviving variable. Unknown names are ignored (a fixed
// product bit may have had all its terms cancelled already).
func (m *Model) Fix(fixed map[string]uint8) {
	val := make(map[int]float64, len(fixed))
	for name, v := range fixed {
		if i, ok := m.index[name]; ok {
			val[i] = float64(v & 1)
		}
	}
	if len(val) == 0 {
		return
	}

	for i, t := range val {
		m.offset += m.linear[i] * t
		delete(m.linear, i)
	}
	// iterate in stable order so repeated runs build identical maps
	pairs := make([]pair, 0, len(m.quad))
	for p := range m.quad {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].i != pairs[b].i {
			return pairs[a].i < pairs[b].i
		}
		return pairs[a].j < pairs[b].j
	})
	for _, p := range pairs {
		ti, iFixed := val[p.i]
		tj, jFixed := val[p.j]
		w := m.quad[p]
		switch {
		case iFixed && jFixed:
			m.offset += w * ti * tj
			delete(m.quad, p)
		case iFixed:
			m.linear[p.j] += w * ti
			delete(m.quad, p)
		case jFixed:
			m.linear[p.i] += w * tj
			delete(m.quad, p)
		}
	}
	m.compact(val)
}

// compact renumbers variables after Fix removed some, preserving insertion
// order of the survivors.
func (m *Model) compact(removed map[int]float64) {
	remap := make([]int, len(m.names))
	names := make([]string, 0, len(m.names)-len(removed))
	for i, name := range m.names {
		if _, gone := removed[i]; gone {
			remap[i] = -1
			delete(m.index, name)
			continue
		}
		remap[i] = len(names)
		names = append(names, name)
	}
	linear := make(map[int]float64, len(m.linear))
	for i, w := range m.linear {
		linear[remap[i]] = w
	}
	quad := make(map[pair]float64, len(m.quad))
	for p, w := range m.quad {
		quad[pair{remap[p.i], remap[p.j]}] = w
	}
	m.names = names
	m.linear = linear
	m.quad = quad
	for i, name := range m.names {
		m.index[name] = i
	}
}

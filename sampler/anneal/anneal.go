// Package anneal implements a local sampling oracle: simulated annealing
// with a geometric temperature schedule and Metropolis acceptance. Reads are
// independent restarts, run in parallel batches; identical final states are
// merged into one record with a combined occurrence count.
package anneal

import (
	"context"
	"encoding/binary"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/Leosirius2597/dwave-factor/circuit"
	"github.com/Leosirius2597/dwave-factor/logger"
	"github.com/Leosirius2597/dwave-factor/qubo"
	"github.com/Leosirius2597/dwave-factor/sampler"
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"
)

// Option configures the sampler.
type Option func(*Sampler)

// WithSweeps sets the number of full-variable sweeps per read.
func WithSweeps(n int) Option {
	return func(s *Sampler) { s.sweeps = n }
}

// WithSeed makes the sampler deterministic. Seed 0 derives one from the
// clock.
func WithSeed(seed int64) Option {
	return func(s *Sampler) { s.seed = seed }
}

// WithBetaRange sets the inverse-temperature schedule endpoints.
func WithBetaRange(betaMin, betaMax float64) Option {
	return func(s *Sampler) { s.betaMin, s.betaMax = betaMin, betaMax }
}

// Sampler is a local simulated-annealing oracle.
type Sampler struct {
	sweeps  int
	betaMin float64
	betaMax float64
	seed    int64
}

// New returns a Sampler with a schedule that settles the factoring models
// reliably; tune with options.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		sweeps:  256,
		betaMin: 0.1,
		betaMax: 5.0,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type neighbor struct {
	j int
	w float64
}

// compiled is the model flattened for fast energy deltas.
type compiled struct {
	names  []string
	linear []float64
	adj    [][]neighbor
}

func compile(m *qubo.Model) *compiled {
	names := m.Variables()
	c := &compiled{
		names:  names,
		linear: make([]float64, len(names)),
		adj:    make([][]neighbor, len(names)),
	}
	for i, name := range names {
		c.linear[i] = m.Linear(name)
	}
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if w := m.Quadratic(names[i], names[j]); w != 0 {
				c.adj[i] = append(c.adj[i], neighbor{j, w})
				c.adj[j] = append(c.adj[j], neighbor{i, w})
			}
		}
	}
	return c
}

// flipDelta is the energy change of flipping variable i.
func (c *compiled) flipDelta(state *bitset.BitSet, i int) float64 {
	d := c.linear[i]
	for _, nb := range c.adj[i] {
		if state.Test(uint(nb.j)) {
			d += nb.w
		}
	}
	if state.Test(uint(i)) {
		return -d
	}
	return d
}

// Sample draws req.Reads() independent annealed states from the model.
func (s *Sampler) Sample(ctx context.Context, m *qubo.Model, req sampler.Request) (*sampler.SampleSet, error) {
	c := compile(m)
	n := len(c.names)
	reads := req.Reads()

	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := logger.Logger().With().Str("sampler", "anneal").Str("label", req.Label).Int("reads", reads).Int("variables", n).Logger()
	log.Debug().Int64("seed", seed).Msg("sampling")

	start := time.Now()

	workers := runtime.GOMAXPROCS(0)
	if workers > reads {
		workers = reads
	}
	results := make([]map[string]uint64, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		batch := reads / workers
		if w < reads%workers {
			batch++
		}
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(w)))
			counts := make(map[string]uint64)
			state := bitset.New(uint(n))
			for r := 0; r < batch; r++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				s.annealOnce(c, state, rng)
				counts[stateKey(state)]++
			}
			results[w] = counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &sampler.SampleSet{
		Timing: sampler.Timing{OracleTimeMicros: uint64(time.Since(start).Microseconds())},
	}
	merged := make(map[string]int)
	for _, counts := range results {
		for key, occ := range counts {
			if idx, ok := merged[key]; ok {
				set.Records[idx].Occurrences += occ
				continue
			}
			merged[key] = len(set.Records)
			set.Records = append(set.Records, sampler.Record{
				Assignment:  keyToAssignment(key, c.names),
				Occurrences: occ,
			})
		}
	}
	log.Debug().Int("records", len(set.Records)).Uint64("micros", set.Timing.OracleTimeMicros).Msg("sampled")
	return set, nil
}

func (s *Sampler) annealOnce(c *compiled, state *bitset.BitSet, rng *rand.Rand) {
	n := len(c.names)
	state.ClearAll()
	for i := 0; i < n; i++ {
		if rng.Intn(2) == 1 {
			state.Set(uint(i))
		}
	}
	if s.sweeps <= 1 {
		return
	}
	// geometric beta ramp
	ratio := math.Pow(s.betaMax/s.betaMin, 1/float64(s.sweeps-1))
	beta := s.betaMin
	for sweep := 0; sweep < s.sweeps; sweep++ {
		for i := 0; i < n; i++ {
			d := c.flipDelta(state, i)
			if d <= 0 || rng.Float64() < math.Exp(-beta*d) {
				state.Flip(uint(i))
			}
		}
		beta *= ratio
	}
}

func stateKey(state *bitset.BitSet) string {
	words := state.Bytes()
	buf := make([]byte, 8*len(words))
	for i, word := range words {
		binary.LittleEndian.PutUint64(buf[8*i:], word)
	}
	return string(buf)
}

func keyToAssignment(key string, names []string) circuit.Assignment {
	asg := make(circuit.Assignment, len(names))
	for i, name := range names {
		word := binary.LittleEndian.Uint64([]byte(key)[8*(i/64):])
		asg[name] = uint8(word >> uint(i%64) & 1)
	}
	return asg
}

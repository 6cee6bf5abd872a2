package factor

import (
	"context"
	"fmt"
	"time"

	dwfactor "github.com/Leosirius2597/dwave-factor"
	"github.com/Leosirius2597/dwave-factor/circuit"
	"github.com/Leosirius2597/dwave-factor/logger"
	"github.com/Leosirius2597/dwave-factor/sampler"
)

// MinP is the smallest integer worth factoring.
const MinP = 2

// MaxP is the largest integer the product register holds.
const MaxP = 1<<dwfactor.ProductBits - 1

// Run factors P with the given oracle: it compiles the multiplication
// circuit, fixes the product bits to P, samples the reduced model once, and
// aggregates the result. P outside [MinP, MaxP] is a ValidationError.
func Run(ctx context.Context, P uint64, oracle sampler.Oracle, req sampler.Request) (*ResultSet, error) {
	if P < MinP || P > MaxP {
		return nil, circuit.ValidationError{Field: "P", Value: P, Min: MinP, Max: MaxP}
	}
	if req.Label == "" {
		req.Label = fmt.Sprintf("factor-%d", P)
	}

	log := logger.Logger().With().Uint64("P", P).Int("reads", req.Reads()).Logger()
	start := time.Now()

	mult := circuit.New(dwfactor.FactorBits)
	fixed, err := mult.BindProduct(P)
	if err != nil {
		return nil, err
	}
	model := mult.Compile()
	free := model.NumVariables()
	model.Fix(fixed)
	log.Debug().Int("variables", free).Int("after_fix", model.NumVariables()).Msg("model compiled")

	set, err := oracle.Sample(ctx, model, req)
	if err != nil {
		return nil, fmt.Errorf("sampling: %w", err)
	}

	rs, err := Aggregate(mult, P, set)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("candidates", len(rs.Candidates)).
		Int("valid", len(rs.Valid())).
		Uint64("total_reads", rs.TotalReads).
		Dur("took", time.Since(start)).
		Msg("factoring run done")
	return rs, nil
}

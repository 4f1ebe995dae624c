package experiment

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/subsim/internal/config"
	"github.com/san-kum/subsim/internal/sim"
)

// Case is one named configuration in a sweep.
type Case struct {
	Name   string
	Config *config.Config
}

type CaseResult struct {
	Name   string
	Result *sim.Result
}

// Sweep runs every case concurrently, at most workers at a time, and
// returns results in case order. The first failure cancels the rest.
func Sweep(ctx context.Context, cases []Case, workers int, registry *Registry, logger *zap.Logger) ([]CaseResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]CaseResult, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			exp := New(c.Config, registry, logger.With(zap.String("case", c.Name)))
			if err := exp.Setup(); err != nil {
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			results[i] = CaseResult{Name: c.Name, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

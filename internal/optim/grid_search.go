package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/san-kum/subsim/internal/config"
	"github.com/san-kum/subsim/internal/experiment"
)

var ErrNoCandidates = errors.New("optim: empty search grid")

// Param is one axis of the grid: a config parameter and the values to try.
type Param struct {
	Name   string
	Values []float64
}

// Trial is a single point of the grid and the metric it scored.
type Trial struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	params  []Param
	workers int
	logger  *zap.Logger
}

func NewGridSearch(params []Param, workers int, logger *zap.Logger) *GridSearch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GridSearch{params: params, workers: workers, logger: logger}
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.params) == 0 {
		return 0
	}
	n := 1
	for _, p := range g.params {
		n *= len(p.Values)
	}
	return n
}

// Search runs every grid point on a copy of base and returns all trials
// sorted by metric, lowest first. NaN scores sort last.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metric string, registry *experiment.Registry) ([]Trial, error) {
	if g.Size() == 0 {
		return nil, ErrNoCandidates
	}

	points := make([]map[string]float64, 0, g.Size())
	g.enumerate(0, map[string]float64{}, &points)

	cases := make([]experiment.Case, len(points))
	for i, p := range points {
		cfg := base.Clone()
		if err := cfg.SetParams(p); err != nil {
			return nil, err
		}
		cases[i] = experiment.Case{Name: label(p), Config: cfg}
	}

	g.logger.Info("grid search", zap.Int("points", len(cases)), zap.String("metric", metric))
	results, err := experiment.Sweep(ctx, cases, g.workers, registry, g.logger)
	if err != nil {
		return nil, err
	}

	trials := make([]Trial, len(results))
	for i, r := range results {
		v, ok := r.Result.Metrics[metric]
		if !ok {
			return nil, fmt.Errorf("optim: run %s has no metric %q", r.Name, metric)
		}
		trials[i] = Trial{Params: points[i], Value: v}
	}
	sort.SliceStable(trials, func(i, j int) bool {
		a, b := trials[i].Value, trials[j].Value
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a < b
	})
	return trials, nil
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.params) {
		point := make(map[string]float64, len(current))
		for k, v := range current {
			point[k] = v
		}
		*out = append(*out, point)
		return
	}
	p := g.params[depth]
	for _, v := range p.Values {
		current[p.Name] = v
		g.enumerate(depth+1, current, out)
	}
	delete(current, p.Name)
}

// ParseParam reads "name=v1,v2,..." or "name=lo:hi:n" (n evenly spaced
// values from lo to hi inclusive).
func ParseParam(s string) (Param, error) {
	name, rhs, ok := strings.Cut(s, "=")
	if !ok || name == "" || rhs == "" {
		return Param{}, fmt.Errorf("optim: bad parameter %q, want name=v1,v2 or name=lo:hi:n", s)
	}

	if parts := strings.Split(rhs, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return Param{}, fmt.Errorf("optim: bad range %q: %w", rhs, err)
		}
		return Param{Name: name, Values: Linspace(lo, hi, n)}, nil
	}

	var values []float64
	for _, f := range strings.Split(rhs, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Param{}, fmt.Errorf("optim: bad value in %q: %w", s, err)
		}
		values = append(values, v)
	}
	return Param{Name: name, Values: values}, nil
}

func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func label(point map[string]float64) string {
	keys := make([]string, 0, len(point))
	for k := range point {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, point[k])
	}
	return strings.Join(parts, ",")
}

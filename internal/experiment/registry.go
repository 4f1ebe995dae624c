package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/subsim/internal/dynamo"
	"github.com/san-kum/subsim/internal/integrators"
	"github.com/san-kum/subsim/internal/metrics"
	"github.com/san-kum/subsim/internal/sim"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	metrics     func() []sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		metrics:     metrics.Default,
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["midpoint"] = func() dynamo.Integrator { return integrators.NewMidpoint() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }

	return r
}

func (r *Registry) RegisterIntegrator(name string, fn func() dynamo.Integrator) {
	r.integrators[name] = fn
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh metric set; metrics hold state per run.
func (r *Registry) DefaultMetrics() []sim.Metric {
	return r.metrics()
}

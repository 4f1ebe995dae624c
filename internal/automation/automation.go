package automation

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/subsim/internal/config"
	"github.com/san-kum/subsim/internal/experiment"
)

var ErrEmptyScenario = errors.New("automation: scenario has no cases")

// Scenario is a scripted batch of runs read from YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Duration    float64        `yaml:"duration"` // overrides every case when > 0
	Cases       []ScenarioCase `yaml:"cases"`

	dir string
}

// ScenarioCase starts from a preset, layers an optional config file on
// top, then sets individual parameters by name.
type ScenarioCase struct {
	Name   string             `yaml:"name"`
	Preset string             `yaml:"preset"`
	Config string             `yaml:"config"`
	Params map[string]float64 `yaml:"params"`
}

// LoadScenario reads a scenario. Case config paths are relative to the
// scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if len(s.Cases) == 0 {
		return nil, ErrEmptyScenario
	}
	return &s, nil
}

// Resolve turns every case into a validated config.
func (s *Scenario) Resolve() ([]experiment.Case, error) {
	seen := make(map[string]bool, len(s.Cases))
	cases := make([]experiment.Case, 0, len(s.Cases))

	for i, sc := range s.Cases {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("case%d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("case %s: duplicate name", name)
		}
		seen[name] = true

		preset := sc.Preset
		if preset == "" {
			preset = "cruise"
		}
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("case %s: unknown preset %s", name, preset)
		}
		if sc.Config != "" {
			path := sc.Config
			if !filepath.IsAbs(path) {
				path = filepath.Join(s.dir, path)
			}
			loaded, err := config.LoadOver(path, cfg)
			if err != nil {
				return nil, fmt.Errorf("case %s: %w", name, err)
			}
			cfg = loaded
		}
		if err := cfg.SetParams(sc.Params); err != nil {
			return nil, fmt.Errorf("case %s: %w", name, err)
		}
		if s.Duration > 0 {
			cfg.Duration = s.Duration
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("case %s: %w", name, err)
		}
		cases = append(cases, experiment.Case{Name: name, Config: cfg})
	}
	return cases, nil
}

// MonteCarloConfig perturbs named parameters uniformly by up to
// ±Perturbation[name] around the base value.
type MonteCarloConfig struct {
	Trials       int
	Perturbation map[string]float64
	Seed         int64 // 0 seeds from the clock
}

// MonteCarloCases builds one case per trial.
func MonteCarloCases(base *config.Config, mc MonteCarloConfig) ([]experiment.Case, error) {
	if mc.Trials <= 0 {
		return nil, fmt.Errorf("automation: trials must be positive, got %d", mc.Trials)
	}
	seed := mc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	names := make([]string, 0, len(mc.Perturbation))
	for name := range mc.Perturbation {
		if _, err := base.Param(name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	// fixed order so a seed reproduces the same draws
	sort.Strings(names)

	cases := make([]experiment.Case, mc.Trials)
	for i := range cases {
		cfg := base.Clone()
		for _, name := range names {
			v, _ := cfg.Param(name)
			_ = cfg.SetParam(name, v+(rng.Float64()*2-1)*mc.Perturbation[name])
		}
		cases[i] = experiment.Case{Name: fmt.Sprintf("trial%03d", i+1), Config: cfg}
	}
	return cases, nil
}

// Stats summarises one metric over a batch of runs.
type Stats struct {
	Metric  string
	Trials  int
	Bounded int // runs whose metric is finite and at most Limit
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	P95     float64
}

// Summarize collects metric across results. Non-finite values count as
// unbounded and are left out of the moments.
func Summarize(results []experiment.CaseResult, metric string, limit float64) Stats {
	s := Stats{Metric: metric, Trials: len(results), Min: math.NaN(), Max: math.NaN(), Mean: math.NaN(), StdDev: math.NaN(), P95: math.NaN()}

	values := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		v, ok := r.Result.Metrics[metric]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
		if v <= limit {
			s.Bounded++
		}
	}
	if len(values) == 0 {
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		s.StdDev = 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	s.Min, s.Max = sorted[0], sorted[len(sorted)-1]
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return s
}

package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/subsim/internal/config"
)

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %f, want %f", i, got[i], want[i])
		}
	}
	if v := Linspace(3, 9, 1); len(v) != 1 || v[0] != 3 {
		t.Errorf("single point = %v", v)
	}
	if Linspace(0, 1, 0) != nil {
		t.Error("expected nil for n=0")
	}
}

func TestParseParam(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		values  int
		wantErr bool
	}{
		{"initial.roll=0.1,0.2,0.3", "initial.roll", 3, false},
		{"submarine.thrust.x=50:150:5", "submarine.thrust.x", 5, false},
		{"autopilot.kp=200", "autopilot.kp", 1, false},
		{"initial.roll", "", 0, true},
		{"=1,2", "", 0, true},
		{"initial.roll=a,b", "", 0, true},
		{"initial.roll=0:1:x", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParseParam(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name != tt.name || len(p.Values) != tt.values {
				t.Errorf("got %s with %d values", p.Name, len(p.Values))
			}
		})
	}
}

func TestGridSize(t *testing.T) {
	g := NewGridSearch([]Param{
		{Name: "a", Values: []float64{1, 2, 3}},
		{Name: "b", Values: []float64{1, 2}},
	}, 1, nil)
	if g.Size() != 6 {
		t.Errorf("size = %d, want 6", g.Size())
	}

	var points []map[string]float64
	g.enumerate(0, map[string]float64{}, &points)
	if len(points) != 6 {
		t.Fatalf("enumerated %d points", len(points))
	}
	if points[0]["a"] != 1 || points[0]["b"] != 1 || points[5]["a"] != 3 || points[5]["b"] != 2 {
		t.Errorf("unexpected order: first %v, last %v", points[0], points[5])
	}
	if NewGridSearch(nil, 1, nil).Size() != 0 {
		t.Error("empty grid should have size 0")
	}
}

func TestSearchRanksTrials(t *testing.T) {
	base := config.GetPreset("rolled")
	base.Duration = 2

	g := NewGridSearch([]Param{{Name: "initial.roll", Values: []float64{0.5, 0.1}}}, 2, nil)
	trials, err := g.Search(context.Background(), base, "max_roll", nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(trials) != 2 {
		t.Fatalf("got %d trials", len(trials))
	}
	if trials[0].Params["initial.roll"] != 0.1 {
		t.Errorf("best roll = %f, want 0.1", trials[0].Params["initial.roll"])
	}
	if trials[0].Value > trials[1].Value {
		t.Errorf("trials not sorted: %f > %f", trials[0].Value, trials[1].Value)
	}
	if base.Initial.Roll != config.GetPreset("rolled").Initial.Roll {
		t.Error("search modified the base config")
	}
}

func TestSearchErrors(t *testing.T) {
	base := config.DefaultConfig()
	base.Duration = 0.1

	if _, err := NewGridSearch(nil, 1, nil).Search(context.Background(), base, "max_roll", nil); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}

	g := NewGridSearch([]Param{{Name: "warp", Values: []float64{1}}}, 1, nil)
	if _, err := g.Search(context.Background(), base, "max_roll", nil); !errors.Is(err, config.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	g = NewGridSearch([]Param{{Name: "initial.roll", Values: []float64{0}}}, 1, nil)
	if _, err := g.Search(context.Background(), base, "no_such_metric", nil); err == nil {
		t.Error("expected error for missing metric")
	}
}

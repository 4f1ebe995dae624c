package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/sim"
)

func sine(freq, dt float64, n int, decay float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) * dt
		out[i] = math.Exp(-decay*t) * math.Sin(2*math.Pi*freq*t)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		dt   float64
		n    int
	}{
		{"slow roll", 0.25, 1.0 / 60, 1200},
		{"fast", 2, 1.0 / 60, 600},
		{"odd length", 0.5, 0.01, 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := sine(tt.freq, tt.dt, tt.n, 0)
			for i := range data {
				data[i] += 3
			}
			f, period, err := DominantFrequency(data, tt.dt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			resolution := 1 / (float64(tt.n) * tt.dt)
			if math.Abs(f-tt.freq) > resolution {
				t.Errorf("expected %.3f Hz, got %.3f", tt.freq, f)
			}
			if math.Abs(period-1/f) > 1e-12 {
				t.Errorf("period %f does not match frequency %f", period, f)
			}
		})
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 0.7
	}
	f, period, err := DominantFrequency(data, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != 0 || !math.IsInf(period, 1) {
		t.Errorf("expected no dominant frequency, got %f Hz", f)
	}
}

func TestPowerSpectrumShort(t *testing.T) {
	if _, err := PowerSpectrum([]float64{1, 2}, 0.1); !errors.Is(err, ErrShortSignal) {
		t.Errorf("expected ErrShortSignal, got %v", err)
	}
}

func TestPowerSpectrumBins(t *testing.T) {
	spec, err := PowerSpectrum(sine(1, 0.125, 16, 0), 0.125)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spec.Frequencies) != 9 || len(spec.Power) != 9 {
		t.Fatalf("expected 9 bins, got %d", len(spec.Power))
	}
	if spec.Frequencies[8] != 4 {
		t.Errorf("expected Nyquist at 4 Hz, got %f", spec.Frequencies[8])
	}
	if math.Abs(spec.Power[2]-0.5) > 1e-9 {
		t.Errorf("expected amplitude 0.5 at 1 Hz, got %f", spec.Power[2])
	}
}

func TestLogDecrement(t *testing.T) {
	freq, decay := 0.5, 0.2
	data := sine(freq, 0.001, 10000, decay)

	delta, zeta, err := LogDecrement(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := decay / freq
	if math.Abs(delta-want) > 1e-3 {
		t.Errorf("expected delta %f, got %f", want, delta)
	}
	if zeta <= 0 || zeta >= 1 {
		t.Errorf("expected underdamped ratio, got %f", zeta)
	}

	if _, _, err := LogDecrement([]float64{0, 1, 0}); !errors.Is(err, ErrShortSignal) {
		t.Errorf("expected ErrShortSignal, got %v", err)
	}
}

func TestSeries(t *testing.T) {
	samples := []sim.Sample{
		{Roll: 0.1, Velocity: mgl64.Vec3{3, 4, 0}, AngularVelocity: mgl64.Vec3{0.5, 0, 0}},
		{Roll: 0.2, Position: mgl64.Vec3{0, -1, 2}},
	}

	tests := []struct {
		signal Signal
		want   []float64
	}{
		{Roll, []float64{0.1, 0.2}},
		{Speed, []float64{5, 0}},
		{RollRate, []float64{0.5, 0}},
		{Depth, []float64{0, -1}},
		{DriftSide, []float64{0, 2}},
	}
	for _, tt := range tests {
		t.Run(string(tt.signal), func(t *testing.T) {
			got := Series(samples, tt.signal)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("sample %d: expected %f, got %f", i, tt.want[i], got[i])
				}
			}
		})
	}

	if Series(samples, "bogus") != nil {
		t.Error("expected nil for unknown signal")
	}
	if _, err := ParseSignal("bogus"); err == nil {
		t.Error("expected error for unknown signal")
	}
	if s, err := ParseSignal("pitch_aoa"); err != nil || s != PitchAoA {
		t.Errorf("expected pitch_aoa, got %q (%v)", s, err)
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{3, -4, 3, -4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Min != -4 || s.Max != 3 || s.Final != -4 {
		t.Errorf("min %f max %f final %f", s.Min, s.Max, s.Final)
	}
	if math.Abs(s.Mean+0.5) > 1e-12 || math.Abs(s.Median+0.5) > 1e-12 {
		t.Errorf("mean %f median %f", s.Mean, s.Median)
	}
	if math.Abs(s.StdDev-3.5) > 1e-12 {
		t.Errorf("std %f, want 3.5", s.StdDev)
	}
	if math.Abs(s.RMS-math.Sqrt(12.5)) > 1e-12 {
		t.Errorf("rms %f, want %f", s.RMS, math.Sqrt(12.5))
	}

	if _, err := Summarize(nil); !errors.Is(err, ErrShortSignal) {
		t.Errorf("expected ErrShortSignal, got %v", err)
	}
}

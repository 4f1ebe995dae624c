package analysis

import (
	"fmt"
	"sort"

	"github.com/san-kum/subsim/internal/sim"
)

// Signal selects one scalar channel of a sample.
type Signal string

const (
	Roll      Signal = "roll"
	Pitch     Signal = "pitch"
	Yaw       Signal = "yaw"
	RollRate  Signal = "roll_rate"
	PitchAoA  Signal = "pitch_aoa"
	YawAoA    Signal = "yaw_aoa"
	Speed     Signal = "speed"
	Depth     Signal = "depth"
	DriftSide Signal = "drift"
)

var extractors = map[Signal]func(sim.Sample) float64{
	Roll:      func(s sim.Sample) float64 { return s.Roll },
	Pitch:     func(s sim.Sample) float64 { return s.Pitch },
	Yaw:       func(s sim.Sample) float64 { return s.Yaw },
	RollRate:  func(s sim.Sample) float64 { return s.AngularVelocity.X() },
	PitchAoA:  func(s sim.Sample) float64 { return s.PitchAoA },
	YawAoA:    func(s sim.Sample) float64 { return s.YawAoA },
	Speed:     func(s sim.Sample) float64 { return s.Velocity.Len() },
	Depth:     func(s sim.Sample) float64 { return s.Position.Y() },
	DriftSide: func(s sim.Sample) float64 { return s.Position.Z() },
}

func ParseSignal(name string) (Signal, error) {
	s := Signal(name)
	if _, ok := extractors[s]; !ok {
		return "", fmt.Errorf("unknown signal %q (have %v)", name, Signals())
	}
	return s, nil
}

func Signals() []Signal {
	names := make([]Signal, 0, len(extractors))
	for s := range extractors {
		names = append(names, s)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Series extracts one channel from every sample.
func Series(samples []sim.Sample, s Signal) []float64 {
	extract, ok := extractors[s]
	if !ok {
		return nil
	}
	out := make([]float64, len(samples))
	for i, sample := range samples {
		out[i] = extract(sample)
	}
	return out
}

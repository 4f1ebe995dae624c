package metrics

import "github.com/san-kum/subsim/internal/sim"

// Default is the metric set recorded for every stored run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewExcursion(Roll),
		NewExcursion(Pitch),
		NewExcursion(Yaw),
		NewSettling(Roll, 0.05),
		NewMeanSpeed(),
		NewDrift(),
		NewPeakDrag(),
	}
}

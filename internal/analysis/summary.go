package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summary is the basic shape of a signal.
type Summary struct {
	Min, Max float64
	Mean     float64
	Median   float64
	StdDev   float64 // population
	RMS      float64
	Final    float64
}

// Summarize describes data, which must not be empty.
func Summarize(data []float64) (Summary, error) {
	if len(data) == 0 {
		return Summary{}, ErrShortSignal
	}
	in := stats.Float64Data(data)

	var s Summary
	var err error
	if s.Min, err = stats.Min(in); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(in); err != nil {
		return Summary{}, err
	}
	if s.Mean, err = stats.Mean(in); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(in); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = stats.StandardDeviation(in); err != nil {
		return Summary{}, err
	}

	squares := make(stats.Float64Data, len(data))
	for i, v := range data {
		squares[i] = v * v
	}
	ms, err := stats.Mean(squares)
	if err != nil {
		return Summary{}, err
	}
	s.RMS = math.Sqrt(ms)
	s.Final = data[len(data)-1]
	return s, nil
}

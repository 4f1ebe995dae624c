package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSignal = errors.New("analysis: signal too short")

type Spectrum struct {
	Frequencies []float64
	Power       []float64
}

// PowerSpectrum removes the mean from data and returns the one-sided
// magnitude spectrum, bin k at k/(n·dt) Hz.
func PowerSpectrum(data []float64, dt float64) (Spectrum, error) {
	n := len(data)
	if n < 4 {
		return Spectrum{}, ErrShortSignal
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	bins := n/2 + 1
	spec := Spectrum{
		Frequencies: make([]float64, bins),
		Power:       make([]float64, bins),
	}
	for k := 0; k < bins; k++ {
		spec.Frequencies[k] = float64(k) / (float64(n) * dt)
		spec.Power[k] = cmplx.Abs(coeffs[k]) / float64(n)
	}
	return spec, nil
}

// DominantFrequency returns the frequency and period of the strongest
// non-DC bin. A flat signal has no dominant frequency.
func DominantFrequency(data []float64, dt float64) (freq, period float64, err error) {
	spec, err := PowerSpectrum(data, dt)
	if err != nil {
		return 0, 0, err
	}

	best := 0
	for k := 1; k < len(spec.Power); k++ {
		if spec.Power[k] > spec.Power[best] || best == 0 {
			best = k
		}
	}
	if spec.Power[best] < 1e-12 {
		return 0, math.Inf(1), nil
	}
	freq = spec.Frequencies[best]
	return freq, 1 / freq, nil
}

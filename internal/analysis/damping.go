package analysis

import "math"

// Peaks returns the indices of positive local maxima of data.
func Peaks(data []float64) []int {
	var peaks []int
	for i := 1; i+1 < len(data); i++ {
		if data[i] > 0 && data[i] > data[i-1] && data[i] >= data[i+1] {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// LogDecrement is the mean natural log ratio of successive positive peaks,
// one per cycle, and the damping ratio it implies. Fewer than two peaks
// gives ErrShortSignal.
func LogDecrement(data []float64) (delta, zeta float64, err error) {
	peaks := Peaks(data)
	if len(peaks) < 2 {
		return 0, 0, ErrShortSignal
	}

	sum := 0.0
	for i := 1; i < len(peaks); i++ {
		sum += math.Log(data[peaks[i-1]] / data[peaks[i]])
	}
	delta = sum / float64(len(peaks)-1)
	zeta = delta / math.Sqrt(4*math.Pi*math.Pi+delta*delta)
	return delta, zeta, nil
}

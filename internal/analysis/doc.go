// Package analysis extracts oscillation characteristics from recorded runs.
//
//   - [PowerSpectrum]: one-sided power spectrum of a uniformly sampled signal
//   - [DominantFrequency]: strongest non-DC component and its period
//   - [Peaks] and [LogDecrement]: damping of a decaying oscillation
//   - [Summarize]: min, max, mean, median, spread and RMS of a signal
//
// A righted hull rolls back and forth around level; the spectrum of its
// roll angle gives the natural roll period and the log decrement of the
// successive peaks gives how quickly the fins and spinning drag damp it:
//
//	roll := analysis.Series(samples, analysis.Roll)
//	f, period, _ := analysis.DominantFrequency(roll, dt)
package analysis

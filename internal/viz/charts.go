package viz

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/subsim/internal/sim"
)

type Series struct {
	Name   string
	Values []float64
}

var seriesColors = []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Blue}

// Chart plots up to three series on shared axes.
func Chart(title string, series []Series, width, height int) string {
	data := make([][]float64, 0, len(series))
	legends := make([]string, 0, len(series))
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		data = append(data, s.Values)
		legends = append(legends, s.Name)
	}
	if len(data) == 0 {
		return title + ": no data\n"
	}

	colors := seriesColors
	if len(data) < len(colors) {
		colors = colors[:len(data)]
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(title),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func channel(samples []sim.Sample, f func(sim.Sample) float64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = f(s)
	}
	return out
}

func vecSeries(samples []sim.Sample, f func(sim.Sample) mgl64.Vec3) []Series {
	names := [3]string{"x", "y", "z"}
	out := make([]Series, 3)
	for axis := range out {
		out[axis] = Series{
			Name:   names[axis],
			Values: channel(samples, func(s sim.Sample) float64 { return f(s)[axis] }),
		}
	}
	return out
}

// RunCharts renders the standard set: attitude, angular velocity, angle
// of attack, linear velocity and position.
func RunCharts(samples []sim.Sample, width, height int) []string {
	attitude := []Series{
		{"roll", channel(samples, func(s sim.Sample) float64 { return degrees(s.Roll) })},
		{"pitch", channel(samples, func(s sim.Sample) float64 { return degrees(s.Pitch) })},
		{"yaw", channel(samples, func(s sim.Sample) float64 { return degrees(s.Yaw) })},
	}
	aoa := []Series{
		{"pitch", channel(samples, func(s sim.Sample) float64 { return degrees(s.PitchAoA) })},
		{"yaw", channel(samples, func(s sim.Sample) float64 { return degrees(s.YawAoA) })},
		{"roll", channel(samples, func(s sim.Sample) float64 { return degrees(s.RollAoA) })},
	}

	return []string{
		Chart("attitude (deg)", attitude, width, height),
		Chart("angular velocity (rad/s)", vecSeries(samples, func(s sim.Sample) mgl64.Vec3 { return s.AngularVelocity }), width, height),
		Chart("angle of attack (deg)", aoa, width, height),
		Chart("linear velocity (m/s)", vecSeries(samples, func(s sim.Sample) mgl64.Vec3 { return s.Velocity }), width, height),
		Chart("position (m)", vecSeries(samples, func(s sim.Sample) mgl64.Vec3 { return s.Position }), width, height),
	}
}

// TrackView is which pair of world axes a track is drawn in.
type TrackView int

const (
	SideView TrackView = iota // x right, y up
	TopView                   // x right, z down the page
)

func (v TrackView) String() string {
	if v == TopView {
		return "top"
	}
	return "side"
}

func (v TrackView) project(p mgl64.Vec3) (float64, float64) {
	if v == TopView {
		return p.X(), -p.Z()
	}
	return p.X(), p.Y()
}

// TrackCanvas draws the path of the hull onto a braille canvas of
// width by height cells.
func TrackCanvas(samples []sim.Sample, view TrackView, width, height int) *Canvas {
	c := NewCanvas(width, height)
	if len(samples) == 0 {
		return c
	}
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i], ys[i] = view.project(s.Position)
	}
	w, h := c.Dots()
	vp := FitViewport(xs, ys, w, h, 0.5)
	for i := 1; i < len(xs); i++ {
		c.Line(vp, xs[i-1], ys[i-1], xs[i], ys[i])
	}
	return c
}

// Track draws the path of the hull in braille.
func Track(samples []sim.Sample, view TrackView, width, height int) string {
	return strings.TrimRight(TrackCanvas(samples, view, width, height).String(), "\n")
}

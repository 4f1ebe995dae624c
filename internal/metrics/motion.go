package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/sim"
)

type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(s sim.Sample) {
	m.sum += s.Velocity.Len()
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// Drift is the straight-line distance from the first observed position.
type Drift struct {
	name    string
	origin  mgl64.Vec3
	current mgl64.Vec3
	seen    bool
}

func NewDrift() *Drift {
	return &Drift{name: "drift_distance"}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) Observe(s sim.Sample) {
	if !d.seen {
		d.origin = s.Position
		d.seen = true
	}
	d.current = s.Position
}

func (d *Drift) Value() float64 { return d.current.Sub(d.origin).Len() }

func (d *Drift) Reset() {
	d.origin = mgl64.Vec3{}
	d.current = mgl64.Vec3{}
	d.seen = false
}

// PeakReading is the largest magnitude of one named force or torque reading.
type PeakReading struct {
	name    string
	reading string
	peak    float64
}

func NewPeakReading(reading string) *PeakReading {
	return &PeakReading{
		name:    "peak_" + reading,
		reading: reading,
	}
}

// NewPeakDrag tracks the hull drag force.
func NewPeakDrag() *PeakReading {
	p := NewPeakReading("Drag")
	p.name = "peak_drag"
	return p
}

func (p *PeakReading) Name() string { return p.name }

func (p *PeakReading) Observe(s sim.Sample) {
	r, ok := s.Reading(p.reading)
	if !ok {
		return
	}
	if m := r.Magnitude(); !math.IsNaN(m) {
		p.peak = math.Max(p.peak, m)
	}
}

func (p *PeakReading) Value() float64 { return p.peak }

func (p *PeakReading) Reset() { p.peak = 0 }

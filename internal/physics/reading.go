package physics

import "github.com/go-gl/mathgl/mgl64"

type ReadingKind int

const (
	ForceReading ReadingKind = iota
	TorqueReading
)

func (k ReadingKind) String() string {
	if k == TorqueReading {
		return "torque"
	}
	return "force"
}

// Reading is a snapshot of one model's output after Apply, for drawing.
type Reading struct {
	Name     string      `json:"name"`
	Kind     ReadingKind `json:"kind"`
	Value    mgl64.Vec3  `json:"value"`
	Position mgl64.Vec3  `json:"position"`
}

func (r Reading) Magnitude() float64 { return r.Value.Len() }

func ReadForce(f Force) Reading {
	return Reading{Name: f.Name(), Kind: ForceReading, Value: f.Value(), Position: f.WorldPosition()}
}

// ReadTorque places the reading at the body's center of mass when bound.
func ReadTorque(t Torque) Reading {
	r := Reading{Name: t.Name(), Kind: TorqueReading, Value: t.Value()}
	if t.Body() != nil {
		r.Position = t.Body().Transform().Origin
	}
	return r
}

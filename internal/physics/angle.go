package physics

import "math"

// StallAngle is the largest angle of attack the linear lift model accepts.
const StallAngle = math.Pi / 12

// Plane selects the 2D plane of motion a quantity is measured in.
type Plane int

const (
	// Horizontal is the pitch plane (world x-y).
	Horizontal Plane = iota
	// Vertical is the yaw plane (world x-z).
	Vertical
)

func (p Plane) String() string {
	switch p {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// WrapAngle maps a into (-π, π]. Non-finite input yields NaN.
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return math.NaN()
	}
	if a > 4*math.Pi || a < -4*math.Pi {
		a = math.Mod(a, 2*math.Pi)
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

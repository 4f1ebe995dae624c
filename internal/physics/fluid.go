package physics

// Gravity is the magnitude of gravitational acceleration in m/s².
const Gravity = 9.81

// WaterDensity is fresh water in kg/m³.
const WaterDensity = 1000.0

// Fluid is the medium a body moves through. It is passed to every Apply
// call explicitly.
type Fluid struct {
	Density float64 `yaml:"density" json:"density"`
}

func DefaultFluid() Fluid {
	return Fluid{Density: WaterDensity}
}

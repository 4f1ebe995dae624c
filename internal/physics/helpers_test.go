package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/rigid"
)

const tol = 1e-9

func newBody(mass float64) *rigid.Body {
	return rigid.NewCapsuleX(mass, 0.65, 2.9)
}

func pitched(b *rigid.Body, angle float64) *rigid.Body {
	b.SetOrientation(mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1}))
	return b
}

func rolled(b *rigid.Body, angle float64) *rigid.Body {
	b.SetOrientation(mgl64.QuatRotate(angle, mgl64.Vec3{1, 0, 0}))
	return b
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// near compares by distance; mgl64's approximate equality degrades to
// eps² whenever a component is exactly zero.
func near(got, want mgl64.Vec3, tol float64) bool {
	return got.Sub(want).Len() < tol
}

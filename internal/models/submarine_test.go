package models_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/subsim/internal/dynamo"
	"github.com/san-kum/subsim/internal/integrators"
	"github.com/san-kum/subsim/internal/models"
	"github.com/san-kum/subsim/internal/physics"
	"github.com/san-kum/subsim/internal/rigid"
)

func names(readings []physics.Reading) []string {
	out := make([]string, len(readings))
	for i, r := range readings {
		out[i] = r.Name
	}
	return out
}

var _ = Describe("Submarine", func() {
	var (
		sub   *models.Submarine
		world *rigid.World
		body  *rigid.Body
	)

	BeforeEach(func() {
		sub = newReference()
		world = rigid.NewWorld(integrators.NewRK4())
		var err error
		body, err = sub.AddToWorld(world)
		Expect(err).NotTo(HaveOccurred())
	})

	It("carries the reference parameters", func() {
		Expect(sub.Geometry()).To(Equal(models.Geometry{Length: 2.9, Width: 0.6, Height: 0.7, Mass: 140}))
		Expect(sub.DragCoefficient()).To(Equal(0.04))
		Expect(sub.LiftSlope()).To(Equal(math.Pi / 2))
		Expect(sub.SpinningDragCoefficient()).To(Equal(2.0))
		Expect(sub.BuoyancyPosition()).To(Equal(mgl64.Vec3{0, 0.15, 0}))
		Expect(sub.Thrust()).To(Equal(mgl64.Vec3{100, 0, 10}))
		Expect(sub.PropellorTorque()).To(Equal(mgl64.Vec3{20, 0, 0}))
		Expect(sub.Fins()).To(HaveLen(4))
		Expect(body.InverseMass()).To(BeNumerically("~", 1.0/140, 1e-15))
	})

	It("refuses to be added to a world twice", func() {
		_, err := sub.AddToWorld(world)
		Expect(err).To(MatchError(dynamo.ErrAlreadyAdded))
	})

	It("can be removed and added again", func() {
		Expect(sub.RemoveFromWorld(world)).To(Succeed())
		Expect(world.Bodies()).To(BeEmpty())
		Expect(sub.UpdateForces(physics.DefaultFluid())).To(MatchError(dynamo.ErrUnboundBody))
		Expect(sub.RemoveFromWorld(world)).To(MatchError(dynamo.ErrNotSetup))

		_, err := sub.AddToWorld(world)
		Expect(err).NotTo(HaveOccurred())
		Expect(sub.UpdateForces(physics.DefaultFluid())).To(Succeed())
	})

	It("fails loudly before being bound", func() {
		unbound := newReference()
		Expect(unbound.UpdateForces(physics.DefaultFluid())).To(MatchError(dynamo.ErrUnboundBody))
	})

	It("applies every model in a fixed order", func() {
		Expect(sub.UpdateForces(physics.DefaultFluid())).To(Succeed())
		Expect(names(sub.Readings())).To(Equal([]string{
			"Propellor", "Weight", "Buoyancy", "Thrust", "Drag", "Lift", "Spinning Drag",
			"north fin lift", "north fin drag", "north fin damping",
			"south fin lift", "south fin drag", "south fin damping",
			"east fin lift", "east fin drag", "east fin damping",
			"west fin lift", "west fin drag", "west fin damping",
		}))
	})

	Context("at rest", func() {
		It("balances weight against buoyancy with a level righting arm", func() {
			Expect(sub.UpdateForces(physics.DefaultFluid())).To(Succeed())
			readings := sub.Readings()

			weight, buoyancy := readings[1], readings[2]
			Expect(near(weight.Value, mgl64.Vec3{0, -1373.4, 0}, 1e-9)).To(BeTrue())
			Expect(weight.Position).To(Equal(mgl64.Vec3{}))
			Expect(near(buoyancy.Value, mgl64.Vec3{0, 1373.4, 0}, 1e-9)).To(BeTrue())
			Expect(near(buoyancy.Position, mgl64.Vec3{0, 0.15, 0}, 1e-12)).To(BeTrue())

			// Drag is skipped at rest, so only thrust pushes the hull.
			Expect(near(body.TotalForce(), mgl64.Vec3{100, 0, 10}, 1e-9)).To(BeTrue())
		})

		It("produces a righting moment once rolled", func() {
			body.SetOrientation(mgl64.QuatRotate(0.3, mgl64.Vec3{1, 0, 0}))
			sub.SetThrust(mgl64.Vec3{})
			sub.SetPropellorTorque(mgl64.Vec3{})

			Expect(sub.UpdateForces(physics.DefaultFluid())).To(Succeed())
			Expect(body.TotalForce().Len()).To(BeNumerically("<", 1e-9))
			Expect(body.TotalTorque().X()).To(BeNumerically("<", -1))
		})
	})

	It("produces no hull lift when moving straight along the nose", func() {
		body.SetLinearVelocity(mgl64.Vec3{2, 0, 0})
		Expect(sub.UpdateForces(physics.DefaultFluid())).To(Succeed())

		Expect(sub.Kinematics().AngleOfAttack(physics.Horizontal)).To(BeZero())
		Expect(sub.Readings()[5].Value).To(Equal(mgl64.Vec3{}))
	})

	Describe("geometry", func() {
		It("re-derives areas and lever arms on every setter", func() {
			Expect(sub.SetLength(4)).To(Succeed())
			Expect(sub.SetWidth(1)).To(Succeed())
			Expect(sub.SetHeight(0.5)).To(Succeed())

			body.SetLinearVelocity(mgl64.Vec3{1, 0, 0})
			Expect(sub.UpdateForces(physics.Fluid{Density: 1000})).To(Succeed())
			readings := sub.Readings()

			drag := readings[4]
			Expect(drag.Value.X()).To(BeNumerically("~", -0.5*1000*math.Pi*1*0.5*0.04, 1e-9))

			thrust := readings[3]
			Expect(near(thrust.Position, mgl64.Vec3{-2, 0, 0}, 1e-12)).To(BeTrue())

			lift := readings[5]
			Expect(near(lift.Position, mgl64.Vec3{1, 0, 0}, 1e-12)).To(BeTrue())

			radius := math.Sqrt(1-math.Pow(0.725/2, 2)) * 0.5
			for _, fin := range sub.Fins() {
				Expect(fin.Radius()).To(BeNumerically("~", radius, 1e-12))
			}
		})

		It("keeps fins bound after a geometry change", func() {
			Expect(sub.SetLength(3.5)).To(Succeed())
			for _, fin := range sub.Fins() {
				Expect(fin.Lift().Body()).To(BeIdenticalTo(dynamo.Body(body)))
			}
		})

		It("weighs a new mass on the next tick while in a world", func() {
			Expect(sub.SetMass(200)).To(Succeed())
			Expect(sub.Mass()).To(Equal(200.0))
			Expect(body.InverseMass()).To(BeNumerically("~", 1.0/200, 1e-15))
			Expect(body.LocalInertia()).To(Equal(rigid.CapsuleXInertia(200, 0.65, 2.9)))

			Expect(sub.UpdateForces(physics.DefaultFluid())).To(Succeed())
			readings := sub.Readings()
			Expect(near(readings[1].Value, mgl64.Vec3{0, -1962, 0}, 1e-9)).To(BeTrue(), "weight %v", readings[1].Value)
			Expect(near(readings[2].Value, mgl64.Vec3{0, 1962, 0}, 1e-9)).To(BeTrue(), "buoyancy %v", readings[2].Value)
		})

		It("keeps the body mass when a geometry change is rejected", func() {
			Expect(sub.SetLength(1)).NotTo(Succeed())
			Expect(body.InverseMass()).To(BeNumerically("~", 1.0/140, 1e-15))
			Expect(body.LocalInertia()).To(Equal(rigid.CapsuleXInertia(140, 0.65, 2.9)))
		})

		It("rejects geometry that strands the fins and keeps the old one", func() {
			Expect(sub.SetLength(1)).To(MatchError(models.ErrFinOutsideHull))
			Expect(sub.Length()).To(Equal(2.9))
			Expect(sub.SetWidth(-1)).To(MatchError(dynamo.ErrParameterBounds))
			Expect(sub.Width()).To(Equal(0.6))
		})
	})

	Describe("fin sets", func() {
		It("mounts north and south for horizontal, east and west for vertical", func() {
			Expect(sub.SetVerticalFins(models.FinSet{})).To(Succeed())
			Expect(sub.Fins()).To(HaveLen(2))
			Expect(sub.Fins()[0].Orientation()).To(Equal(models.North))
			Expect(sub.Fins()[1].Orientation()).To(Equal(models.South))

			Expect(sub.SetHorizontalFins(models.FinSet{})).To(Succeed())
			Expect(sub.Fins()).To(BeEmpty())

			vertical := models.FinSet{Enabled: true, FinParams: finParams}
			Expect(sub.SetVerticalFins(vertical)).To(Succeed())
			Expect(sub.Fins()[0].Orientation()).To(Equal(models.East))
			Expect(sub.Fins()[1].Orientation()).To(Equal(models.West))
			Expect(sub.Fins()[0].Lift().Body()).NotTo(BeNil())
		})

		It("rejects a fin set mounted off the hull", func() {
			bad := models.FinSet{Enabled: true, FinParams: finParams}
			bad.Offset = 3
			Expect(sub.SetHorizontalFins(bad)).To(MatchError(models.ErrFinOutsideHull))
			Expect(sub.Fins()).To(HaveLen(4))
		})
	})

	It("settles to an upright roll when integrated", func() {
		sub.SetThrust(mgl64.Vec3{})
		sub.SetPropellorTorque(mgl64.Vec3{})
		body.SetOrientation(mgl64.QuatRotate(0.4, mgl64.Vec3{1, 0, 0}))

		for i := 0; i < 60*20; i++ {
			Expect(world.Step(1.0 / 60)).To(Succeed())
			Expect(sub.UpdateForces(physics.DefaultFluid())).To(Succeed())
		}
		Expect(math.Abs(sub.Kinematics().Roll())).To(BeNumerically("<", 0.2))
	})
})

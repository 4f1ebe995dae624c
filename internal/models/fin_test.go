package models_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/subsim/internal/dynamo"
	"github.com/san-kum/subsim/internal/models"
	"github.com/san-kum/subsim/internal/physics"
	"github.com/san-kum/subsim/internal/rigid"
)

type hull struct{ length, width float64 }

func (h hull) Length() float64 { return h.length }
func (h hull) Width() float64  { return h.width }

var finParams = models.FinParams{
	Area:            0.025,
	AspectRatio:     3,
	LiftSlope:       math.Pi,
	DragCoefficient: 0.03,
	Offset:          -0.725,
}

var _ = Describe("Fin", func() {
	referenceHull := hull{length: 2.9, width: 0.6}

	DescribeTable("fixes its plane from the mounting orientation",
		func(o models.Orientation, plane physics.Plane) {
			fin := models.NewFin(o, finParams)
			Expect(fin.Plane()).To(Equal(plane))
			Expect(fin.CalculatePosition(referenceHull, 0.5)).To(Succeed())
			Expect(fin.Plane()).To(Equal(plane))
		},
		Entry("north", models.North, physics.Horizontal),
		Entry("south", models.South, physics.Horizontal),
		Entry("east", models.East, physics.Vertical),
		Entry("west", models.West, physics.Vertical),
	)

	DescribeTable("mounts on the hull ellipse",
		func(o models.Orientation, offset float64, want mgl64.Vec3) {
			fin := models.NewFin(o, finParams)
			Expect(fin.CalculatePosition(referenceHull, offset)).To(Succeed())
			Expect(near(fin.Position(), want, 1e-12)).To(BeTrue(), "got %v", fin.Position())
		},
		Entry("north at the widest point", models.North, 0.0, mgl64.Vec3{0, 0.3, 0}),
		Entry("south at the widest point", models.South, 0.0, mgl64.Vec3{0, -0.3, 0}),
		Entry("east at the widest point", models.East, 0.0, mgl64.Vec3{0, 0, 0.3}),
		Entry("west at the widest point", models.West, 0.0, mgl64.Vec3{0, 0, -0.3}),
		Entry("north at the bow tip", models.North, 1.45, mgl64.Vec3{1.45, 0, 0}),
		Entry("west at the stern tip", models.West, -1.45, mgl64.Vec3{-1.45, 0, 0}),
	)

	It("has radius width/2 at the middle and 0 at either tip", func() {
		fin := models.NewFin(models.North, finParams)

		Expect(fin.CalculatePosition(referenceHull, 0)).To(Succeed())
		Expect(fin.Radius()).To(Equal(0.3))

		Expect(fin.CalculatePosition(referenceHull, 1.45)).To(Succeed())
		Expect(fin.Radius()).To(Equal(0.0))

		Expect(fin.CalculatePosition(referenceHull, -1.45)).To(Succeed())
		Expect(fin.Radius()).To(Equal(0.0))
	})

	It("feeds its mounting point to lift, drag and damping", func() {
		fin := models.NewFin(models.East, finParams)
		Expect(fin.CalculatePosition(referenceHull, -0.725)).To(Succeed())

		radius := math.Sqrt(1-0.25) * 0.3
		Expect(fin.Radius()).To(BeNumerically("~", radius, 1e-12))
		Expect(fin.Lift().Position()).To(Equal(fin.Position()))
		Expect(fin.Drag().Position()).To(Equal(fin.Position()))
		Expect(fin.Damping().Radius()).To(Equal(fin.Radius()))
	})

	It("rejects offsets beyond the hull", func() {
		fin := models.NewFin(models.North, finParams)
		Expect(fin.CalculatePosition(referenceHull, 1.5)).To(MatchError(models.ErrFinOutsideHull))
		Expect(fin.CalculatePosition(referenceHull, -2)).To(MatchError(models.ErrFinOutsideHull))
		Expect(fin.CalculatePosition(hull{}, 0)).To(MatchError(dynamo.ErrParameterBounds))
	})

	It("only lifts in its own plane", func() {
		horizontal := models.NewFin(models.North, finParams)
		Expect(horizontal.Lift().PitchArea()).To(Equal(0.025))
		Expect(horizontal.Lift().YawArea()).To(BeZero())

		vertical := models.NewFin(models.West, finParams)
		Expect(vertical.Lift().PitchArea()).To(BeZero())
		Expect(vertical.Lift().YawArea()).To(Equal(0.025))
	})

	Describe("ApplyForces", func() {
		var (
			body *rigid.Body
			fin  *models.Fin
		)

		BeforeEach(func() {
			body = rigid.NewCapsuleX(140, 0.65, 2.9)
			fin = models.NewFin(models.North, finParams)
			Expect(fin.CalculatePosition(referenceHull, -0.725)).To(Succeed())
		})

		It("fails loudly when unbound", func() {
			Expect(fin.ApplyForces(physics.DefaultFluid())).To(MatchError(dynamo.ErrUnboundBody))
		})

		It("applies lift, drag and damping to the bound body", func() {
			body.SetOrientation(mgl64.QuatRotate(0.1, mgl64.Vec3{0, 0, 1}))
			body.SetLinearVelocity(mgl64.Vec3{2, 0, 0})
			body.SetAngularVelocity(mgl64.Vec3{1, 0, 0})
			fin.Bind(body)

			Expect(fin.ApplyForces(physics.DefaultFluid())).To(Succeed())

			Expect(fin.Lift().Value().Y()).To(BeNumerically(">", 0))
			Expect(fin.Drag().Value().X()).To(BeNumerically("<", 0))
			Expect(fin.Damping().Value().X()).To(BeNumerically("<", 0))

			readings := fin.Readings()
			Expect(readings).To(HaveLen(3))
			Expect(readings[0].Name).To(Equal("north fin lift"))
			Expect(readings[1].Name).To(Equal("north fin drag"))
			Expect(readings[2].Name).To(Equal("north fin damping"))
		})
	})
})

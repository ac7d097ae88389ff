package physics_test

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/binstar/internal/physics"
)

var yellow = color.RGBA{253, 249, 0, 255}

var _ = Describe("Body", func() {
	var a, b physics.Body

	BeforeEach(func() {
		a = *physics.NewBody(mgl64.Vec3{-10, 0, 0}, mgl64.Vec3{}, 1e10, 5, yellow)
		b = *physics.NewBody(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{}, 9e10, 2.5, yellow)
	})

	Describe("Update", func() {
		It("accelerates toward the other body with an inverse-square magnitude", func() {
			a.Update(b.Position, b.Mass, physics.DefaultG)

			want := physics.DefaultG * b.Mass / (20 * 20)
			Expect(a.Acceleration[0]).To(BeNumerically("~", want, want*1e-12))
			Expect(a.Acceleration[2]).To(BeNumerically("==", 0))
		})

		It("updates velocity before position", func() {
			a.Update(b.Position, b.Mass, physics.DefaultG)

			Expect(a.Velocity).To(Equal(a.Acceleration))
			Expect(a.Position[0]).To(BeNumerically("~", -10+a.Acceleration[0], 1e-15))
		})

		It("leaves the vertical acceleration untouched", func() {
			a.Acceleration[1] = 0.5
			b.Position[1] = 1000

			a.Update(b.Position, b.Mass, physics.DefaultG)

			Expect(a.Acceleration[1]).To(Equal(0.5))
			Expect(a.Velocity[1]).To(Equal(0.5))
		})

		It("ignores vertical separation in the force", func() {
			raised := b
			raised.Position[1] = 50

			flat := a
			flat.Update(b.Position, b.Mass, physics.DefaultG)
			lifted := a
			lifted.Update(raised.Position, raised.Mass, physics.DefaultG)

			Expect(lifted.Acceleration).To(Equal(flat.Acceleration))
		})

		It("overwrites acceleration instead of accumulating it", func() {
			a.Update(b.Position, b.Mass, physics.DefaultG)
			first := a.Acceleration
			a.Position = mgl64.Vec3{-10, 0, 0}
			a.Update(b.Position, b.Mass, physics.DefaultG)

			Expect(a.Acceleration[0]).To(BeNumerically("~", first[0], 1e-15))
		})

		It("does not touch the other body", func() {
			before := b
			a.Update(b.Position, b.Mass, physics.DefaultG)

			Expect(b).To(Equal(before))
		})

		It("corrupts the state permanently when the bodies coincide", func() {
			b.Position = a.Position
			a.Update(b.Position, b.Mass, physics.DefaultG)

			Expect(a.IsFinite()).To(BeFalse())
			for i := 0; i < 10; i++ {
				a.Update(mgl64.Vec3{10, 0, 0}, b.Mass, physics.DefaultG)
			}
			Expect(math.IsNaN(a.Position[0])).To(BeTrue())
		})
	})

	Describe("StepPair", func() {
		It("obeys Newton's third law", func() {
			b.Position = mgl64.Vec3{7, 3, -4}

			na, nb := physics.StepPair(a, b, physics.DefaultG)

			fa := na.Acceleration.Mul(na.Mass)
			fb := nb.Acceleration.Mul(nb.Mass)
			Expect(fa[0]).To(BeNumerically("~", -fb[0], math.Abs(fa[0])*1e-12))
			Expect(fa[2]).To(BeNumerically("~", -fb[2], math.Abs(fa[2])*1e-12))
		})

		It("does not depend on argument order", func() {
			na, nb := physics.StepPair(a, b, physics.DefaultG)
			rb, ra := physics.StepPair(b, a, physics.DefaultG)

			Expect(ra).To(Equal(na))
			Expect(rb).To(Equal(nb))
		})

		It("matches two reciprocal Update calls on pre-tick snapshots", func() {
			ua, ub := a, b
			ua.Update(b.Position, b.Mass, physics.DefaultG)
			ub.Update(a.Position, a.Mass, physics.DefaultG)

			na, nb := physics.StepPair(a, b, physics.DefaultG)

			Expect(na).To(Equal(ua))
			Expect(nb).To(Equal(ub))
		})

		It("stays finite over many ticks for separated bodies", func() {
			a.Velocity = mgl64.Vec3{-0.1, 0, -0.1}
			b.Velocity = mgl64.Vec3{0.1, 0, 0.1}

			for i := 0; i < 5000; i++ {
				a, b = physics.StepPair(a, b, physics.DefaultG)
				Expect(a.IsFinite()).To(BeTrue(), "body a at tick %d", i)
				Expect(b.IsFinite()).To(BeTrue(), "body b at tick %d", i)
			}
		})

		It("pulls the bodies together in the first ticks", func() {
			a.Velocity = mgl64.Vec3{0.01, 0, -0.02}
			b.Velocity = mgl64.Vec3{-0.01, 0, 0.02}

			prev := physics.Separation(a, b)
			for i := 0; i < 20; i++ {
				a, b = physics.StepPair(a, b, physics.DefaultG)
				sep := physics.Separation(a, b)
				Expect(sep).To(BeNumerically("<", prev), "tick %d", i)
				prev = sep
			}
			Expect(a.Position[0]).To(BeNumerically(">", -10))
			Expect(b.Position[0]).To(BeNumerically("<", 10))
		})
	})
})

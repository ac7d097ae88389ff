package camera_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/binstar/internal/camera"
	"github.com/san-kum/binstar/internal/vecmath"
)

func approx(want mgl64.Vec3) OmegaMatcher {
	return Satisfy(func(got mgl64.Vec3) bool {
		return got.ApproxEqualThreshold(want, 1e-12)
	})
}

var _ = Describe("DeriveBasis", func() {
	It("points front along +x and right along +z at zero yaw and pitch", func() {
		b := camera.DeriveBasis(0, 0, vecmath.WorldUp, 1)

		Expect(b.Front).To(approx(mgl64.Vec3{1, 0, 0}))
		Expect(b.Right).To(approx(mgl64.Vec3{0, 0, 1}))
		Expect(b.Up).To(approx(mgl64.Vec3{0, 1, 0}))
	})

	It("bakes the scale into every vector", func() {
		b := camera.DeriveBasis(0.7, -0.3, vecmath.WorldUp, 3)

		Expect(b.Front.Len()).To(BeNumerically("~", 3, 1e-12))
		Expect(b.Right.Len()).To(BeNumerically("~", 3, 1e-12))
		Expect(b.Up.Len()).To(BeNumerically("~", 3, 1e-12))
	})

	It("is orthogonal across the clamped pitch range", func() {
		for yaw := -math.Pi; yaw <= math.Pi; yaw += 0.37 {
			for pitch := camera.MinPitch; pitch <= camera.MaxPitch; pitch += 0.25 {
				b := camera.DeriveBasis(yaw, pitch, vecmath.WorldUp, 1)

				Expect(b.Front.Dot(b.Right)).To(BeNumerically("~", 0, 1e-12))
				Expect(b.Front.Dot(b.Up)).To(BeNumerically("~", 0, 1e-12))
				Expect(b.Right.Dot(b.Up)).To(BeNumerically("~", 0, 1e-12))
				Expect(b.Right[1]).To(BeNumerically("~", 0, 1e-12))
			}
		}
	})

	It("follows yaw around the vertical axis", func() {
		b := camera.DeriveBasis(math.Pi/2, 0, vecmath.WorldUp, 1)

		Expect(b.Front).To(approx(mgl64.Vec3{0, 0, 1}))
		Expect(b.Right).To(approx(mgl64.Vec3{-1, 0, 0}))
	})

	It("returns identical output for identical input", func() {
		first := camera.DeriveBasis(1.18, 0.4, vecmath.WorldUp, 3)
		second := camera.DeriveBasis(1.18, 0.4, vecmath.WorldUp, 3)

		Expect(second).To(Equal(first))
	})
})

package camera_test

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/binstar/internal/camera"
)

var _ = Describe("ApplyLook", func() {
	It("scales yaw by mouse x, elapsed time and look speed", func() {
		yaw, pitch := camera.ApplyLook(1.0, 0, mgl64.Vec2{20, 0}, 0.5, 0.1)

		Expect(yaw).To(BeNumerically("~", 2.0, 1e-12))
		Expect(pitch).To(Equal(0.0))
	})

	It("inverts pitch so moving the pointer up looks up", func() {
		_, pitch := camera.ApplyLook(0, 0, mgl64.Vec2{0, -10}, 0.1, 0.1)

		Expect(pitch).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("caps pitch at exactly the upper limit", func() {
		_, pitch := camera.ApplyLook(0, 1.49, mgl64.Vec2{0, -1e6}, 0.016, 0.1)

		Expect(pitch).To(Equal(1.5))
	})

	It("caps pitch at exactly the lower limit", func() {
		_, pitch := camera.ApplyLook(0, -1.49, mgl64.Vec2{0, 1e6}, 0.016, 0.1)

		Expect(pitch).To(Equal(-1.5))
	})

	It("clamps an out-of-range starting pitch even without input", func() {
		_, pitch := camera.ApplyLook(0, 3, mgl64.Vec2{}, 0.016, 0.1)

		Expect(pitch).To(Equal(camera.MaxPitch))
	})

	It("never clamps yaw", func() {
		yaw, _ := camera.ApplyLook(0, 0, mgl64.Vec2{1e4, 0}, 1, 0.1)

		Expect(yaw).To(BeNumerically("~", 1000, 1e-9))
	})
})

var _ = Describe("Pose", func() {
	It("threads look input through yaw and pitch", func() {
		p := camera.Pose{Yaw: 1.18}
		p.Look(mgl64.Vec2{10, -10}, 0.1, camera.DefaultSettings())

		Expect(p.Yaw).To(BeNumerically("~", 1.28, 1e-12))
		Expect(p.Pitch).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("targets one scaled front vector ahead", func() {
		s := camera.DefaultSettings()
		p := camera.Pose{Position: mgl64.Vec3{0, 1, 0}}
		b := p.Basis(s)

		Expect(p.Target(b).ApproxEqual(mgl64.Vec3{3, 1, 0})).To(BeTrue())
	})
})

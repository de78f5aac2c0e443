package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a pinhole look-at camera. The kernels never see it
// directly; they consume its position, inverse view matrix and vertical
// field of view through the per-frame uniform.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FOV      float32 // vertical, degrees
}

func NewCamera() *Camera {
	return &Camera{
		Up:  mgl32.Vec3{0, 1, 0},
		FOV: 60,
	}
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// InverseView maps camera space to world space. Ray directions are
// rotated through it with w = 0.
func (c *Camera) InverseView() mgl32.Mat4 {
	return c.ViewMatrix().Inv()
}

// Orbit drives a camera on a horizontal circle around the world origin.
type Orbit struct {
	Radius float32
	Height float32
	Speed  float32 // radians per second
}

func DefaultOrbit() Orbit {
	return Orbit{Radius: 4, Height: 1.5, Speed: 0.3}
}

func (o Orbit) Position(t float32) mgl32.Vec3 {
	a := float64(o.Speed * t)
	return mgl32.Vec3{
		float32(math.Cos(a)) * o.Radius,
		o.Height,
		float32(math.Sin(a)) * o.Radius,
	}
}

// Aim places cam on the orbit at time t, looking at the origin.
func (o Orbit) Aim(cam *Camera, t float32) {
	cam.Position = o.Position(t)
	cam.Target = mgl32.Vec3{}
}

package trace

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a world-space half line. Direction stays unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Frame carries the per-frame scalars every kernel invocation shares.
// The GPU path packs the same values into the frame uniform.
type Frame struct {
	CameraPos mgl32.Vec3
	InvView   mgl32.Mat4
	Time      float32
	Aspect    float32
	FOV       float32 // vertical, degrees
}

// CameraRay builds the primary ray for a pixel. u and v are in [0,1]
// with v growing upward; the direction is normalized in camera space
// and rotated to world space with w = 0, so it stays unit length.
func CameraRay(u, v float32, frame Frame) Ray {
	tanHalfFov := float32(math.Tan(float64(mgl32.DegToRad(frame.FOV)) / 2))

	local := mgl32.Vec3{
		(u*2 - 1) * frame.Aspect * tanHalfFov,
		(v*2 - 1) * tanHalfFov,
		-1,
	}.Normalize()

	return Ray{
		Origin:    frame.CameraPos,
		Direction: frame.InvView.Mul4x1(local.Vec4(0)).Vec3(),
	}
}

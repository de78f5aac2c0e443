package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a rigid placement: position plus orientation. Primitives
// carry their size in explicit fields (radius, half extent), so there is
// no scale component and the inverse stays exact.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func NewTransform(position mgl32.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: mgl32.QuatIdent(),
	}
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	return translate.Mul4(t.Rotation.Mat4())
}

func (t Transform) WorldToObject() mgl32.Mat4 {
	// inv(M) = inv(R) * inv(T), composed from the known parts.
	invRotate := t.Rotation.Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())
	return invRotate.Mul4(invTranslate)
}

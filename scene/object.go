package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type PrimitiveKind int32

const (
	SpherePrimitive PrimitiveKind = 0
	// BoxPrimitive is reserved in the record layout. The kernels skip it.
	BoxPrimitive   PrimitiveKind = 1
	PlanePrimitive PrimitiveKind = 2
)

func (k PrimitiveKind) String() string {
	switch k {
	case SpherePrimitive:
		return "sphere"
	case BoxPrimitive:
		return "box"
	case PlanePrimitive:
		return "plane"
	}
	return "unknown"
}

// Object pairs a primitive with a placement and a material reference.
// The scene assigns the ID at AddObject and it stays stable for the
// object's lifetime.
type Object struct {
	Kind      PrimitiveKind
	Transform Transform

	// Radius applies to spheres, HalfExtent is reserved for boxes.
	Radius     float32
	HalfExtent mgl32.Vec3

	// Index into the scene's material registry.
	Material int

	id   int
	dead bool
}

// NewSphere builds a sphere of the given radius centered on position.
func NewSphere(position mgl32.Vec3, radius float32, material int) *Object {
	return &Object{
		Kind:      SpherePrimitive,
		Transform: NewTransform(position),
		Radius:    radius,
		Material:  material,
	}
}

// NewPlane builds an infinite plane through position. Its normal is the
// transform's +Y axis, so an identity rotation gives a floor.
func NewPlane(position mgl32.Vec3, material int) *Object {
	return &Object{
		Kind:      PlanePrimitive,
		Transform: NewTransform(position),
		Material:  material,
	}
}

func (o *Object) ID() int {
	return o.id
}

func (o *Object) record() ObjectRecord {
	return ObjectRecord{
		Model:      o.Transform.ObjectToWorld(),
		InvModel:   o.Transform.WorldToObject(),
		Material:   int32(o.Material),
		Kind:       o.Kind,
		Radius:     o.Radius,
		HalfExtent: o.HalfExtent,
	}
}

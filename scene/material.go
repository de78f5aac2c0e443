package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type MaterialKind int32

const (
	Lambertian MaterialKind = 0
	Metal      MaterialKind = 1
	Glass      MaterialKind = 2
	Emissive   MaterialKind = 3
)

func (k MaterialKind) String() string {
	switch k {
	case Lambertian:
		return "lambertian"
	case Metal:
		return "metal"
	case Glass:
		return "glass"
	case Emissive:
		return "emissive"
	}
	return "unknown"
}

// Material describes a surface response. Materials are value types,
// immutable once added to a scene, and referenced by index from objects.
type Material struct {
	// Diagnostic name. Never reaches the device arrays.
	Name string

	Kind MaterialKind

	// Linear RGB. The packed record reserves a fourth component.
	BaseColor mgl32.Vec3

	// Radiance added on every hit. Only Emissive materials should
	// carry a non-zero value.
	Emission mgl32.Vec3

	Metallic  float32
	Roughness float32
	IOR       float32
}

func NewLambertian(name string, albedo mgl32.Vec3) Material {
	return Material{
		Name:      name,
		Kind:      Lambertian,
		BaseColor: albedo,
		Roughness: 1.0,
	}
}

func NewMetal(name string, albedo mgl32.Vec3, roughness float32) Material {
	return Material{
		Name:      name,
		Kind:      Metal,
		BaseColor: albedo,
		Metallic:  1.0,
		Roughness: mgl32.Clamp(roughness, 0, 1),
	}
}

// NewGlass builds a clear dielectric. Tint lives in BaseColor; the
// default is white, so refracted light keeps its color.
func NewGlass(name string, ior float32) Material {
	return Material{
		Name:      name,
		Kind:      Glass,
		BaseColor: mgl32.Vec3{1, 1, 1},
		IOR:       ior,
	}
}

func NewEmissive(name string, radiance mgl32.Vec3) Material {
	return Material{
		Name:     name,
		Kind:     Emissive,
		Emission: radiance,
	}
}

func (m Material) record() MaterialRecord {
	return MaterialRecord{
		BaseColor: [4]float32{m.BaseColor.X(), m.BaseColor.Y(), m.BaseColor.Z(), 1},
		Props:     [4]float32{m.Metallic, m.Roughness, m.IOR, 0},
		Emission:  [4]float32{m.Emission.X(), m.Emission.Y(), m.Emission.Z(), 0},
		Kind:      int32(m.Kind),
	}
}

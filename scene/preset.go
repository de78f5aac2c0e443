package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ShowcaseScene builds the standard demo: a matte ground plane and a
// glass sphere flanked by a polished and a brushed metal one.
func ShowcaseScene() *Scene {
	s := NewScene()

	ground := s.AddMaterial(NewLambertian("ground", mgl32.Vec3{0.5, 0.5, 0.5}))
	glass := s.AddMaterial(NewGlass("glass", 1.52))
	mirror := s.AddMaterial(NewMetal("mirror", mgl32.Vec3{0.8, 0.8, 0.8}, 0.0))
	brass := s.AddMaterial(NewMetal("brass", mgl32.Vec3{0.8, 0.6, 0.2}, 0.3))

	s.MustAddObject(NewPlane(mgl32.Vec3{0, -0.5, 0}, ground))
	s.MustAddObject(NewSphere(mgl32.Vec3{0, 0, 0}, 0.5, glass))
	s.MustAddObject(NewSphere(mgl32.Vec3{-1.2, 0, 0}, 0.5, mirror))
	s.MustAddObject(NewSphere(mgl32.Vec3{1.2, 0, 0}, 0.5, brass))

	return s
}

// StudioScene is the showcase under an emissive dome lamp, the preset
// that exercises the emissive terminal path.
func StudioScene() *Scene {
	s := ShowcaseScene()
	lamp := s.AddMaterial(NewEmissive("lamp", mgl32.Vec3{4, 4, 4}))
	s.MustAddObject(NewSphere(mgl32.Vec3{0, 3.5, 0}, 1.0, lamp))
	return s
}

// Preset returns a named built-in scene.
func Preset(name string) (*Scene, error) {
	switch name {
	case "showcase":
		return ShowcaseScene(), nil
	case "studio":
		return StudioScene(), nil
	}
	return nil, fmt.Errorf("scene: unknown preset %q (have showcase, studio)", name)
}

package trace

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fresnel3d/fresnel/scene"
)

func buildArrays(t *testing.T, build func(s *scene.Scene)) ([]scene.ObjectRecord, []scene.MaterialRecord) {
	t.Helper()
	s := scene.NewScene()
	build(s)
	return s.BuildDeviceArrays()
}

func singleSphere(t *testing.T, pos mgl32.Vec3, radius float32) []scene.ObjectRecord {
	t.Helper()
	objs, _ := buildArrays(t, func(s *scene.Scene) {
		mat := s.AddMaterial(scene.NewLambertian("gray", mgl32.Vec3{0.5, 0.5, 0.5}))
		s.MustAddObject(scene.NewSphere(pos, radius, mat))
	})
	return objs
}

func vec3Close(a, b mgl32.Vec3, eps float32) bool {
	return closeEnough(a.X(), b.X(), eps) && closeEnough(a.Y(), b.Y(), eps) && closeEnough(a.Z(), b.Z(), eps)
}

func TestSphereIntersection(t *testing.T) {
	objs := singleSphere(t, mgl32.Vec3{0, 0, 0}, 0.5)

	cases := []struct {
		name      string
		ray       Ray
		hit       bool
		t         float32
		normal    mgl32.Vec3
		frontFace bool
	}{
		{
			name:      "head on",
			ray:       Ray{Origin: mgl32.Vec3{0, 0, 2}, Direction: mgl32.Vec3{0, 0, -1}},
			hit:       true,
			t:         1.5,
			normal:    mgl32.Vec3{0, 0, 1},
			frontFace: true,
		},
		{
			name:      "from inside takes the far root",
			ray:       Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}},
			hit:       true,
			t:         0.5,
			normal:    mgl32.Vec3{0, 0, 1},
			frontFace: false,
		},
		{
			name: "offset miss",
			ray:  Ray{Origin: mgl32.Vec3{0, 2, 2}, Direction: mgl32.Vec3{0, 0, -1}},
			hit:  false,
		},
		{
			name: "behind the origin",
			ray:  Ray{Origin: mgl32.Vec3{0, 0, 2}, Direction: mgl32.Vec3{0, 0, 1}},
			hit:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit, found := Nearest(tc.ray, objs)
			if found != tc.hit {
				t.Fatalf("found = %v, want %v", found, tc.hit)
			}
			if !tc.hit {
				return
			}
			if !closeEnough(hit.T, tc.t, 1e-4) {
				t.Errorf("t = %f, want %f", hit.T, tc.t)
			}
			if !vec3Close(hit.Normal, tc.normal, 1e-4) {
				t.Errorf("normal = %v, want %v", hit.Normal, tc.normal)
			}
			if hit.FrontFace != tc.frontFace {
				t.Errorf("frontFace = %v, want %v", hit.FrontFace, tc.frontFace)
			}
			if !vec3Close(hit.Point, tc.ray.At(hit.T), 1e-5) {
				t.Errorf("point %v is not on the ray at t", hit.Point)
			}
		})
	}
}

func TestSphereOffCenter(t *testing.T) {
	objs := singleSphere(t, mgl32.Vec3{-1.2, 0, 0}, 0.5)

	hit, found := Nearest(Ray{Origin: mgl32.Vec3{-1.2, 0, 3}, Direction: mgl32.Vec3{0, 0, -1}}, objs)
	if !found {
		t.Fatal("expected a hit on the translated sphere")
	}
	if !closeEnough(hit.T, 2.5, 1e-4) {
		t.Errorf("t = %f, want 2.5", hit.T)
	}
	if !vec3Close(hit.Normal, mgl32.Vec3{0, 0, 1}, 1e-4) {
		t.Errorf("normal = %v, want +Z", hit.Normal)
	}
}

func TestPlaneIntersection(t *testing.T) {
	objs, _ := buildArrays(t, func(s *scene.Scene) {
		mat := s.AddMaterial(scene.NewLambertian("ground", mgl32.Vec3{0.5, 0.5, 0.5}))
		s.MustAddObject(scene.NewPlane(mgl32.Vec3{0, -0.5, 0}, mat))
	})

	t.Run("from above", func(t *testing.T) {
		hit, found := Nearest(Ray{Origin: mgl32.Vec3{0, 1, 0}, Direction: mgl32.Vec3{0, -1, 0}}, objs)
		if !found {
			t.Fatal("expected a hit")
		}
		if !closeEnough(hit.T, 1.5, 1e-4) {
			t.Errorf("t = %f, want 1.5", hit.T)
		}
		if !vec3Close(hit.Normal, mgl32.Vec3{0, 1, 0}, 1e-4) || !hit.FrontFace {
			t.Errorf("normal = %v frontFace = %v, want +Y front", hit.Normal, hit.FrontFace)
		}
	})

	t.Run("from below flips the normal", func(t *testing.T) {
		hit, found := Nearest(Ray{Origin: mgl32.Vec3{0, -2, 0}, Direction: mgl32.Vec3{0, 1, 0}}, objs)
		if !found {
			t.Fatal("expected a hit")
		}
		if !vec3Close(hit.Normal, mgl32.Vec3{0, -1, 0}, 1e-4) || hit.FrontFace {
			t.Errorf("normal = %v frontFace = %v, want -Y back", hit.Normal, hit.FrontFace)
		}
	})

	t.Run("parallel ray misses", func(t *testing.T) {
		if _, found := Nearest(Ray{Origin: mgl32.Vec3{0, 1, 0}, Direction: mgl32.Vec3{1, 0, 0}}, objs); found {
			t.Error("near parallel ray should not hit")
		}
	})
}

func TestRotatedPlaneNormal(t *testing.T) {
	objs, _ := buildArrays(t, func(s *scene.Scene) {
		mat := s.AddMaterial(scene.NewLambertian("wall", mgl32.Vec3{0.5, 0.5, 0.5}))
		wall := scene.NewPlane(mgl32.Vec3{0, 0, -3}, mat)
		wall.Transform.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0})
		s.MustAddObject(wall)
	})

	// +Y rotated 90 degrees about X points at +Z, making a back wall.
	hit, found := Nearest(Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}, objs)
	if !found {
		t.Fatal("expected a hit on the wall")
	}
	if !closeEnough(hit.T, 3, 1e-4) {
		t.Errorf("t = %f, want 3", hit.T)
	}
	if !vec3Close(hit.Normal, mgl32.Vec3{0, 0, 1}, 1e-4) {
		t.Errorf("normal = %v, want +Z", hit.Normal)
	}
}

func TestNearestPicksClosest(t *testing.T) {
	objs, _ := buildArrays(t, func(s *scene.Scene) {
		mat := s.AddMaterial(scene.NewLambertian("gray", mgl32.Vec3{0.5, 0.5, 0.5}))
		far := s.AddMaterial(scene.NewLambertian("far", mgl32.Vec3{0.1, 0.1, 0.1}))
		// Far sphere added first so order cannot fake the result.
		s.MustAddObject(scene.NewSphere(mgl32.Vec3{0, 0, -6}, 0.5, far))
		s.MustAddObject(scene.NewSphere(mgl32.Vec3{0, 0, -2}, 0.5, mat))
	})

	hit, found := Nearest(Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}, objs)
	if !found {
		t.Fatal("expected a hit")
	}
	if !closeEnough(hit.T, 1.5, 1e-4) {
		t.Errorf("t = %f, want the closer sphere at 1.5", hit.T)
	}
	if hit.Material != 0 {
		t.Errorf("material = %d, want 0 (the near sphere's)", hit.Material)
	}
}

func TestNearestSkipsReservedKinds(t *testing.T) {
	objs := singleSphere(t, mgl32.Vec3{0, 0, -2}, 0.5)
	objs[0].Kind = scene.BoxPrimitive

	if _, found := Nearest(Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}, objs); found {
		t.Error("reserved primitive kinds must not be traced")
	}
}

func closeEnough(a, b, epsilon float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}

package trace

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fresnel3d/fresnel/scene"
)

const (
	// tMin rejects self intersections at bounce points; tMax is the
	// miss sentinel the nearest-hit scan starts from.
	tMin = 0.001
	tMax = 10000.0
)

// HitInfo describes the nearest surface a ray touched.
type HitInfo struct {
	T         float32
	Point     mgl32.Vec3
	Normal    mgl32.Vec3
	Material  int32
	FrontFace bool
}

// setFaceNormal orients outward against the ray and records which side
// was hit. Glass needs the side to pick its refraction ratio.
func (h *HitInfo) setFaceNormal(r Ray, outward mgl32.Vec3) {
	h.FrontFace = r.Direction.Dot(outward) < 0
	if h.FrontFace {
		h.Normal = outward
	} else {
		h.Normal = outward.Mul(-1)
	}
}

func intersectSphere(r Ray, obj *scene.ObjectRecord, hit *HitInfo) bool {
	center := obj.Model.Col(3).Vec3()
	oc := r.Origin.Sub(center)
	a := r.Direction.Dot(r.Direction)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - obj.Radius*obj.Radius

	disc := b*b - a*c
	if disc < 0 {
		return false
	}
	sq := float32(math.Sqrt(float64(disc)))

	// Prefer the near root, fall back to the far one when the near
	// root sits behind the epsilon (ray starting inside the sphere).
	t := (-b - sq) / a
	if t < tMin {
		t = (-b + sq) / a
	}
	if t <= tMin || t >= hit.T {
		return false
	}

	hit.T = t
	hit.Point = r.At(t)
	hit.setFaceNormal(r, hit.Point.Sub(center).Normalize())
	hit.Material = obj.Material
	return true
}

func intersectPlane(r Ray, obj *scene.ObjectRecord, hit *HitInfo) bool {
	normal := obj.Model.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize()
	point := obj.Model.Col(3).Vec3()

	denom := normal.Dot(r.Direction)
	if mgl32.Abs(denom) <= tMin {
		// Near parallel, no stable hit.
		return false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t <= tMin || t >= hit.T {
		return false
	}

	hit.T = t
	hit.Point = r.At(t)
	hit.setFaceNormal(r, normal)
	hit.Material = obj.Material
	return true
}

// Nearest scans every record and keeps the closest hit in (tMin, tMax).
// Brute force over the array; scenes are a handful of analytic
// primitives. Reserved kinds (boxes) are skipped.
func Nearest(r Ray, objects []scene.ObjectRecord) (HitInfo, bool) {
	hit := HitInfo{T: tMax}
	found := false
	for i := range objects {
		obj := &objects[i]
		switch obj.Kind {
		case scene.SpherePrimitive:
			if intersectSphere(r, obj, &hit) {
				found = true
			}
		case scene.PlanePrimitive:
			if intersectPlane(r, obj, &hit) {
				found = true
			}
		}
	}
	return hit, found
}

package trace

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fresnel3d/fresnel/scene"
)

func reflect(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

func refract(uv, n mgl32.Vec3, ratio float32) mgl32.Vec3 {
	cosTheta := min(uv.Mul(-1).Dot(n), 1)
	perp := uv.Add(n.Mul(cosTheta)).Mul(ratio)
	parallel := n.Mul(-float32(math.Sqrt(math.Abs(float64(1 - perp.Dot(perp))))))
	return perp.Add(parallel)
}

// reflectance is Schlick's approximation for the Fresnel term.
func reflectance(cosTheta, ratio float32) float32 {
	r0 := (1 - ratio) / (1 + ratio)
	r0 *= r0
	return r0 + (1-r0)*float32(math.Pow(float64(1-cosTheta), 5))
}

// scatter picks the bounce for a hit. ok reports whether the path
// continues; emissive and reserved material kinds terminate it. The
// draw order on rng is load bearing: the WGSL kernel consumes the same
// stream in the same order.
func scatter(r Ray, hit HitInfo, mat *scene.MaterialRecord, rng *lcg) (attenuation mgl32.Vec3, scattered Ray, ok bool) {
	attenuation = mgl32.Vec3{mat.BaseColor[0], mat.BaseColor[1], mat.BaseColor[2]}

	switch scene.MaterialKind(mat.Kind) {
	case scene.Lambertian:
		dir := hit.Normal.Add(rng.inUnitSphere())
		if dir.Len() < 0.001 {
			// Degenerate sample cancelled the normal.
			dir = hit.Normal
		}
		return attenuation, Ray{Origin: hit.Point, Direction: dir.Normalize()}, true

	case scene.Metal:
		reflected := reflect(r.Direction, hit.Normal)
		dir := reflected.Add(rng.inUnitSphere().Mul(mat.Roughness())).Normalize()
		return attenuation, Ray{Origin: hit.Point, Direction: dir}, dir.Dot(hit.Normal) > 0

	case scene.Glass:
		ratio := mat.IOR()
		if hit.FrontFace {
			ratio = 1 / mat.IOR()
		}
		cosTheta := min(r.Direction.Mul(-1).Dot(hit.Normal), 1)
		sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))

		var dir mgl32.Vec3
		if ratio*sinTheta > 1 || reflectance(cosTheta, ratio) > rng.next() {
			// Total internal reflection, or the Fresnel lottery
			// picked the reflective branch.
			dir = reflect(r.Direction, hit.Normal)
		} else {
			dir = refract(r.Direction, hit.Normal, ratio)
		}
		return attenuation, Ray{Origin: hit.Point, Direction: dir.Normalize()}, true
	}

	return attenuation, Ray{}, false
}

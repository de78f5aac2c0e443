package trace

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fresnel3d/fresnel/scene"
)

// MaxDepth bounds the bounce loop. Glass needs most of it: a path can
// cross four interfaces before it leaves the showcase scene.
const MaxDepth = 8

// Sky is the gradient background for rays that miss everything.
func Sky(dir mgl32.Vec3) mgl32.Vec3 {
	t := 0.5 * (dir.Y() + 1)
	return mgl32.Vec3{1, 1, 1}.Mul(1 - t).Add(mgl32.Vec3{0.5, 0.7, 1.0}.Mul(t))
}

// Gamma applies the 1/2.2 display transform. The kernels apply it
// exactly once, at the end of a pixel; nothing downstream may repeat it.
func Gamma(c mgl32.Vec3) mgl32.Vec3 {
	const inv = 1.0 / 2.2
	return mgl32.Vec3{
		float32(math.Pow(float64(c.X()), inv)),
		float32(math.Pow(float64(c.Y()), inv)),
		float32(math.Pow(float64(c.Z()), inv)),
	}
}

func mulv(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// tracePath integrates one path: at every bounce it banks the surface
// emission weighted by the attenuation so far, then either follows the
// scattered ray or stops. A miss banks the sky and stops. Rays that
// never escape within MaxDepth contribute whatever they banked.
func tracePath(r Ray, objects []scene.ObjectRecord, materials []scene.MaterialRecord, rng *lcg) mgl32.Vec3 {
	sum := mgl32.Vec3{}
	attenuation := mgl32.Vec3{1, 1, 1}

	for depth := 0; depth < MaxDepth; depth++ {
		hit, found := Nearest(r, objects)
		if !found {
			sum = sum.Add(mulv(attenuation, Sky(r.Direction)))
			break
		}

		mat := &materials[hit.Material]
		emission := mgl32.Vec3{mat.Emission[0], mat.Emission[1], mat.Emission[2]}
		sum = sum.Add(mulv(attenuation, emission))

		tint, scattered, ok := scatter(r, hit, mat, rng)
		if !ok {
			break
		}
		attenuation = mulv(attenuation, tint)
		r = scattered
	}
	return sum
}

// Pixel traces the full path for one pixel and returns its gamma
// corrected color. Row 0 is the top of the image; v is flipped so
// world +Y points up on screen. Deterministic in (px, py, frame.Time).
func Pixel(px, py, width, height int, frame Frame, objects []scene.ObjectRecord, materials []scene.MaterialRecord) mgl32.Vec3 {
	rng := newLCG(uint32(px), uint32(py), frame.Time)

	u := (float32(px) + 0.5) / float32(width)
	v := 1 - (float32(py)+0.5)/float32(height)

	r := CameraRay(u, v, frame)
	return Gamma(tracePath(r, objects, materials, &rng))
}

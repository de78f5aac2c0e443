package trace

import (
	"github.com/go-gl/mathgl/mgl32"
)

// lcg is the per-pixel random stream. The constants match the WGSL
// kernel bit for bit so both substrates draw the same sequence for the
// same pixel and time.
type lcg struct {
	state uint32
}

func newLCG(px, py uint32, time float32) lcg {
	return lcg{state: px*1973 + py*9277 + uint32(time*1000)*26699}
}

// next returns a value in [0, 1) with 24 bits of resolution.
func (g *lcg) next() float32 {
	g.state = g.state*1664525 + 1013904223
	return float32(g.state&0x00FFFFFF) / float32(0x01000000)
}

// inUnitSphere rejection-samples the open unit ball.
func (g *lcg) inUnitSphere() mgl32.Vec3 {
	for {
		p := mgl32.Vec3{g.next()*2 - 1, g.next()*2 - 1, g.next()*2 - 1}
		if p.Dot(p) < 1 {
			return p
		}
	}
}

package render

import (
	"github.com/fresnel3d/fresnel/scene"
)

type Options struct {
	// Frame dims.
	FrameW int
	FrameH int

	// Vertical field of view in degrees. Zero means the 60 degree
	// default shared with the GPU kernel.
	FOV float32

	// Worker count for CPU tracing; zero or less picks NumCPU.
	Workers int

	// Camera path around the scene.
	Orbit scene.Orbit
}

func DefaultOptions() Options {
	return Options{
		FrameW: 1280,
		FrameH: 720,
		FOV:    60,
		Orbit:  scene.DefaultOrbit(),
	}
}

func (o Options) validate() error {
	if o.FrameW <= 0 || o.FrameH <= 0 {
		return ErrInvalidDims
	}
	return nil
}

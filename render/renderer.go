package render

import (
	"context"
	"image"
	"time"

	"github.com/fresnel3d/fresnel/scene"
	"github.com/fresnel3d/fresnel/trace"
)

// Renderer owns a scene, a camera riding the orbit, and the tracer that
// turns snapshots into frames.
type Renderer struct {
	opts   Options
	scene  *scene.Scene
	camera *scene.Camera
	tracer Tracer

	frames uint64
	stats  FrameStats
	prof   *Profiler
	closed bool
}

func New(sc *scene.Scene, tracer Tracer, opts Options) (*Renderer, error) {
	if sc == nil {
		return nil, ErrNilScene
	}
	if tracer == nil {
		return nil, ErrNilTracer
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.FOV == 0 {
		opts.FOV = 60
	}
	if opts.Orbit == (scene.Orbit{}) {
		opts.Orbit = scene.DefaultOrbit()
	}

	cam := scene.NewCamera()
	cam.FOV = opts.FOV
	return &Renderer{
		opts:   opts,
		scene:  sc,
		camera: cam,
		tracer: tracer,
		prof:   NewProfiler(),
	}, nil
}

func (r *Renderer) Scene() *scene.Scene {
	return r.scene
}

// Frame positions the camera on the orbit for elapsed time t and
// returns the kernel inputs for that moment.
func (r *Renderer) Frame(t float32) trace.Frame {
	r.opts.Orbit.Aim(r.camera, t)
	return trace.Frame{
		CameraPos: r.camera.Position,
		InvView:   r.camera.InverseView(),
		Time:      t,
		Aspect:    float32(r.opts.FrameW) / float32(r.opts.FrameH),
		FOV:       r.camera.FOV,
	}
}

// RenderAt traces the scene as it looks at elapsed time t.
func (r *Renderer) RenderAt(t float32) (*image.RGBA, error) {
	if r.closed {
		return nil, ErrClosed
	}

	start := time.Now()
	r.prof.Reset()

	r.prof.BeginScope("snapshot")
	snap := r.scene.Snapshot()
	r.prof.EndScope("snapshot")

	img := image.NewRGBA(image.Rect(0, 0, r.opts.FrameW, r.opts.FrameH))
	r.prof.BeginScope("trace")
	if err := r.tracer.Trace(snap, r.Frame(t), img); err != nil {
		return nil, err
	}
	r.prof.EndScope("trace")
	r.prof.SetCount("objects", len(snap.Objects))
	r.prof.SetCount("pixels", r.opts.FrameW*r.opts.FrameH)

	r.frames++
	r.stats = FrameStats{
		Frame:      r.frames,
		RenderTime: time.Since(start),
		Width:      r.opts.FrameW,
		Height:     r.opts.FrameH,
		TracerID:   r.tracer.ID(),
		Revision:   snap.Revision,
	}
	return img, nil
}

// Animate renders frames at the requested rate, with t advancing in
// wall time from zero, until ctx is cancelled or fn returns an error.
// A cancelled context is a normal stop and returns nil.
func (r *Renderer) Animate(ctx context.Context, fps int, fn func(*image.RGBA, FrameStats) error) error {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			img, err := r.RenderAt(float32(time.Since(start).Seconds()))
			if err != nil {
				return err
			}
			if err := fn(img, r.stats); err != nil {
				return err
			}
		}
	}
}

// Stats reports the last rendered frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Profile exposes the phase timings of the last rendered frame.
func (r *Renderer) Profile() *Profiler {
	return r.prof
}

// Close shuts the renderer and its tracer down. Safe to call twice.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.tracer.Close()
}

package render

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fresnel3d/fresnel/scene"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.FrameW = 48
	opts.FrameH = 32
	return opts
}

func TestNewValidation(t *testing.T) {
	tracer := NewCPUTracer(1)

	_, err := New(nil, tracer, testOptions())
	assert.ErrorIs(t, err, ErrNilScene)

	_, err = New(scene.ShowcaseScene(), nil, testOptions())
	assert.ErrorIs(t, err, ErrNilTracer)

	bad := testOptions()
	bad.FrameH = 0
	_, err = New(scene.ShowcaseScene(), tracer, bad)
	assert.ErrorIs(t, err, ErrInvalidDims)
}

func TestRenderAt(t *testing.T) {
	r, err := New(scene.ShowcaseScene(), NewCPUTracer(0), testOptions())
	require.NoError(t, err)
	defer r.Close()

	img, err := r.RenderAt(0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 48, 32), img.Bounds())

	stats := r.Stats()
	assert.Equal(t, uint64(1), stats.Frame)
	assert.Equal(t, 48, stats.Width)
	assert.Equal(t, 32, stats.Height)
	assert.Equal(t, r.tracer.ID(), stats.TracerID)
	assert.Equal(t, uint64(1), stats.Revision)
	assert.Greater(t, stats.RenderTime.Nanoseconds(), int64(0))

	_, err = r.RenderAt(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), r.Stats().Frame)
}

func TestRenderAtMovesWithTheOrbit(t *testing.T) {
	r, err := New(scene.ShowcaseScene(), NewCPUTracer(0), testOptions())
	require.NoError(t, err)
	defer r.Close()

	f0 := r.Frame(0)
	f5 := r.Frame(5)
	assert.NotEqual(t, f0.CameraPos, f5.CameraPos, "orbit should move the camera")
	assert.Equal(t, float32(48)/float32(32), f0.Aspect)

	a, err := r.RenderAt(0)
	require.NoError(t, err)
	b, err := r.RenderAt(5)
	require.NoError(t, err)
	assert.NotEqual(t, a.Pix, b.Pix, "different orbit angles should render differently")
}

func TestRenderAfterClose(t *testing.T) {
	r, err := New(scene.ShowcaseScene(), NewCPUTracer(1), testOptions())
	require.NoError(t, err)

	r.Close()
	r.Close()

	_, err = r.RenderAt(0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestAnimateStopsOnCallbackError(t *testing.T) {
	r, err := New(scene.ShowcaseScene(), NewCPUTracer(0), testOptions())
	require.NoError(t, err)
	defer r.Close()

	stop := errors.New("done")
	frames := 0
	err = r.Animate(context.Background(), 120, func(img *image.RGBA, stats FrameStats) error {
		frames++
		assert.NotNil(t, img)
		if frames == 3 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, frames)
}

func TestAnimateStopsOnContextCancel(t *testing.T) {
	r, err := New(scene.ShowcaseScene(), NewCPUTracer(0), testOptions())
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	err = r.Animate(ctx, 120, func(img *image.RGBA, stats FrameStats) error {
		frames++
		cancel()
		return nil
	})
	assert.NoError(t, err, "cancellation is a normal stop")
	assert.GreaterOrEqual(t, frames, 1)
}

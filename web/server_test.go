package web

import (
	"context"
	"image"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fresnel3d/fresnel/render"
	"github.com/fresnel3d/fresnel/scene"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	r, err := render.New(scene.ShowcaseScene(), render.NewCPUTracer(0), render.Options{
		FrameW: 32,
		FrameH: 24,
	})
	require.NoError(t, err)
	t.Cleanup(r.Close)

	return NewServer(r, 30, 1)
}

func TestServeHome(t *testing.T) {
	s := testServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestBroadcastDeliversJPEGFrame(t *testing.T) {
	s := testServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return s.ClientCount() == 1
	}, time.Second, time.Millisecond)

	img, err := s.renderer.RenderAt(0)
	require.NoError(t, err)
	require.NoError(t, s.broadcast(img, s.renderer.Stats()))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	kind, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	assert.Equal(t, websocket.BinaryMessage, kind)
	require.Greater(t, len(payload), 2)
	assert.Equal(t, []byte{0xff, 0xd8}, payload[:2], "frames are streamed as JPEG")
}

func TestBroadcastSkipsEncodingWithoutViewers(t *testing.T) {
	s := testServer(t)

	// No connected clients: must be a no-op, not an error.
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	assert.NoError(t, s.broadcast(img, render.FrameStats{}))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s := testServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestScaleFrame(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 48))

	if got := scaleFrame(src, 1); got != src {
		t.Error("factor 1 should return the frame untouched")
	}

	half := scaleFrame(src, 0.5)
	assert.Equal(t, image.Rect(0, 0, 32, 24), half.Bounds())

	// Tiny factors clamp to one pixel instead of a zero-sized image.
	dot := scaleFrame(src, 0.001)
	assert.Equal(t, image.Rect(0, 0, 1, 1), dot.Bounds())
}

package web

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"image"
	"image/jpeg"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	xdraw "golang.org/x/image/draw"

	"github.com/fresnel3d/fresnel/log"
	"github.com/fresnel3d/fresnel/render"
)

var logger = log.New("web")

//go:embed index.html
var indexHTML []byte

// Server streams rendered frames to browsers over a websocket. One render
// loop feeds every connected viewer; frames are encoded once per tick.
type Server struct {
	renderer *render.Renderer
	fps      int
	scale    float64
	quality  int

	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]*sync.Mutex
	clientsMu sync.RWMutex
}

func NewServer(r *render.Renderer, fps int, scale float64) *Server {
	if fps <= 0 {
		fps = 15
	}
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	return &Server{
		renderer: r,
		fps:      fps,
		scale:    scale,
		quality:  85,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Handler serves the viewer page on / and the frame stream on /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveHome)
	mux.HandleFunc("/ws", s.handleSocket)
	return mux
}

// Run renders and serves until ctx is cancelled or either loop fails.
// A cancelled context is a normal stop and returns nil.
func (s *Server) Run(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderErr := make(chan error, 1)
	go func() {
		renderErr <- s.renderer.Animate(ctx, s.fps, s.broadcast)
	}()

	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	logger.Noticef("viewer on http://%s at %d fps, scale %.2f", addr, s.fps, s.scale)

	var err error
	select {
	case <-ctx.Done():
	case err = <-renderErr:
	case err = <-serveErr:
	}
	srv.Close()
	cancel()

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) serveHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMu
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		logger.Infof("viewer %s disconnected", r.RemoteAddr)
	}()

	logger.Infof("viewer connected from %s", r.RemoteAddr)

	// Drain incoming messages until the peer goes away; the write side
	// is driven by the render loop.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ClientCount reports how many viewers are connected.
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// broadcast encodes one frame and fans it out. Writes hold a per
// connection mutex so a slow viewer cannot interleave partial frames.
func (s *Server) broadcast(img *image.RGBA, stats render.FrameStats) error {
	if s.ClientCount() == 0 {
		return nil
	}

	payload, err := s.encodeFrame(img)
	if err != nil {
		return err
	}

	var failed []*websocket.Conn
	s.clientsMu.RLock()
	for conn, mu := range s.clients {
		mu.Lock()
		err := conn.WriteMessage(websocket.BinaryMessage, payload)
		mu.Unlock()
		if err != nil {
			logger.Warningf("dropping viewer: %v", err)
			conn.Close()
			failed = append(failed, conn)
		}
	}
	s.clientsMu.RUnlock()

	if len(failed) > 0 {
		s.clientsMu.Lock()
		for _, conn := range failed {
			delete(s.clients, conn)
		}
		s.clientsMu.Unlock()
	}

	logger.Debugf("frame %d: %d bytes in %s", stats.Frame, len(payload), stats.RenderTime)
	return nil
}

// encodeFrame downscales when asked and encodes as JPEG, which keeps the
// stream an order of magnitude leaner than PNG at interactive rates.
func (s *Server) encodeFrame(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaleFrame(img, s.scale), &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// scaleFrame resizes by factor with a cheap bilinear kernel. Factor 1
// returns img untouched.
func scaleFrame(img *image.RGBA, factor float64) image.Image {
	if factor == 1 {
		return img
	}

	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

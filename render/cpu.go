package render

import (
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/fresnel3d/fresnel/scene"
	"github.com/fresnel3d/fresnel/trace"
)

// Rows handed to a worker at a time.
const bandRows = 16

// CPUTracer renders frames on the host, splitting the image into row
// bands over a worker pool. Every pixel reseeds its own random stream
// from (x, y, time), so the worker count never changes the output.
type CPUTracer struct {
	id      string
	workers int
}

func NewCPUTracer(workers int) *CPUTracer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUTracer{
		id:      "cpu-" + uuid.NewString()[:8],
		workers: workers,
	}
}

func (t *CPUTracer) ID() string {
	return t.id
}

func (t *CPUTracer) Trace(snap *scene.Snapshot, frame trace.Frame, img *image.RGBA) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return ErrInvalidDims
	}

	bands := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < t.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y0 := range bands {
				yEnd := y0 + bandRows
				if yEnd > h {
					yEnd = h
				}
				for py := y0; py < yEnd; py++ {
					for px := 0; px < w; px++ {
						c := trace.Pixel(px, py, w, h, frame, snap.Objects, snap.Materials)
						img.SetRGBA(bounds.Min.X+px, bounds.Min.Y+py, rgba(c))
					}
				}
			}
		}()
	}

	for y := 0; y < h; y += bandRows {
		bands <- y
	}
	close(bands)
	wg.Wait()
	return nil
}

func (t *CPUTracer) Close() {}

// rgba clamps a kernel color into an 8-bit pixel. Gamma was already
// applied inside the kernel.
func rgba(c mgl32.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(mgl32.Clamp(c.X(), 0, 1)*255 + 0.5),
		G: uint8(mgl32.Clamp(c.Y(), 0, 1)*255 + 0.5),
		B: uint8(mgl32.Clamp(c.Z(), 0, 1)*255 + 0.5),
		A: 255,
	}
}

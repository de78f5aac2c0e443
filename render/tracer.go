package render

import (
	"image"

	"github.com/fresnel3d/fresnel/scene"
	"github.com/fresnel3d/fresnel/trace"
)

// Tracer turns a scene snapshot plus per-frame scalars into pixels.
// Implementations are reused across frames and must tolerate snapshot
// pointers changing between calls.
type Tracer interface {
	// ID names the tracer instance in logs and stats.
	ID() string

	// Trace fills img with gamma-corrected pixels for one frame.
	Trace(snap *scene.Snapshot, frame trace.Frame, img *image.RGBA) error

	// Close releases tracer resources.
	Close()
}

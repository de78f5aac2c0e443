package render

import "time"

// FrameStats describes the last frame a renderer produced.
type FrameStats struct {
	// Frame index since the renderer started.
	Frame uint64

	// Wall time spent tracing.
	RenderTime time.Duration

	// Traced dimensions.
	Width  int
	Height int

	// The tracer that produced the frame.
	TracerID string

	// Scene revision the frame was traced from.
	Revision uint64
}

package render

import "errors"

var (
	ErrNilScene    = errors.New("render: no scene attached")
	ErrNilTracer   = errors.New("render: no tracer attached")
	ErrNilSnapshot = errors.New("render: no snapshot to trace")
	ErrInvalidDims = errors.New("render: frame dimensions must be positive")
	ErrClosed      = errors.New("render: renderer already closed")
)

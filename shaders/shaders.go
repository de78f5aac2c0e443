package shaders

import (
	_ "embed"
)

//go:embed pathtrace.wgsl
var PathtraceWGSL string

//go:embed fullscreen.wgsl
var FullscreenWGSL string

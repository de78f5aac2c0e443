package cmd

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/fresnel3d/fresnel/render"
	"github.com/fresnel3d/fresnel/scene"
)

// RenderFrame renders a single frame on the CPU and writes it out as PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := scene.Preset(ctx.String("scene"))
	if err != nil {
		return err
	}

	r, err := render.New(sc, render.NewCPUTracer(ctx.Int("workers")), render.Options{
		FrameW: ctx.Int("width"),
		FrameH: ctx.Int("height"),
	})
	if err != nil {
		return err
	}
	defer r.Close()

	img, err := r.RenderAt(float32(ctx.Float64("time")))
	if err != nil {
		return err
	}

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}

	logger.Noticef("wrote %s", out)
	displayFrameStats(r.Stats())
	logger.Debugf("frame profile\n%s", r.Profile())
	return nil
}

func displayFrameStats(stats render.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Frame", "Size", "Scene rev", "Render time"})
	table.Append([]string{
		stats.TracerID,
		fmt.Sprintf("%d", stats.Frame),
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.Revision),
		stats.RenderTime.String(),
	})
	table.Render()

	logger.Noticef("frame statistics\n%s", buf.String())
}

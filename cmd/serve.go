package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/urfave/cli"

	"github.com/fresnel3d/fresnel/render"
	"github.com/fresnel3d/fresnel/scene"
	"github.com/fresnel3d/fresnel/web"
)

// Serve renders on the CPU and streams the frames to browsers over a
// websocket until interrupted.
func Serve(ctx *cli.Context) error {
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

	srv := web.NewServer(r, ctx.Int("fps"), ctx.Float64("scale"))

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return srv.Run(runCtx, ctx.String("addr"))
}

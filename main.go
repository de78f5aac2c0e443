package main

import (
	"os"

	"github.com/fresnel3d/fresnel/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "fresnel"
	app.Usage = "path trace analytic scenes on the CPU or a wgpu compute kernel"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame to a png file",
			Description: `
Evaluate the animated scene at a fixed timestamp and path trace one frame on
the CPU tracer, then write the result as a png image.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 1280,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 720,
					Usage: "frame height",
				},
				cli.Float64Flag{
					Name:  "time, t",
					Value: 0,
					Usage: "animation timestamp in seconds",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "tracer worker count, 0 selects one per logical CPU",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: "showcase",
					Usage: "scene preset name",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "view",
			Usage: "render the scene into a window using the wgpu compute kernel",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 1280,
					Usage: "window width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 720,
					Usage: "window height",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: "showcase",
					Usage: "scene preset name",
				},
			},
			Action: cmd.View,
		},
		{
			Name:  "serve",
			Usage: "stream CPU traced frames to browsers over a websocket",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Value: "127.0.0.1:8080",
					Usage: "listen address",
				},
				cli.IntFlag{
					Name:  "fps",
					Value: 15,
					Usage: "target frames per second",
				},
				cli.Float64Flag{
					Name:  "scale",
					Value: 1.0,
					Usage: "downscale factor applied before encoding, in (0, 1]",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 640,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 360,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "tracer worker count, 0 selects one per logical CPU",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: "showcase",
					Usage: "scene preset name",
				},
			},
			Action: cmd.Serve,
		},
		{
			Name:   "devices",
			Usage:  "list usable wgpu adapters",
			Action: cmd.ListDevices,
		},
	}

	app.Run(os.Args)
}

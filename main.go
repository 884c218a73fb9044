package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/Supremolink81/gotracer/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "gotracer"
	app.Usage = "render scenes using cpu path tracing"
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
			Usage: "render a single frame",
			Description: `
Render one of the built-in scenes into a PNG file. The frame is split into
tiles which a pool of workers pulls from a shared queue; for a fixed seed the
output image is identical regardless of the worker count.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 64,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "num-bounces",
					Value: 10,
					Usage: "maximum path bounces",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 32,
					Usage: "tile edge length in pixels",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "worker count (0 = one per logical cpu)",
				},
				cli.Uint64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "seed for the per-pixel random generators",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: 1.0,
					Usage: "linear exposure applied before gamma correction",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: "spheres",
					Usage: "name of the built-in scene to render",
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
			Name:   "list-scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
	}

	app.Run(os.Args)
}

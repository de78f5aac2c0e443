package cmd

import (
	"github.com/urfave/cli"

	"github.com/fresnel3d/fresnel/log"
)

var logger = log.New("fresnel")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

package main

import (
	"log/slog"
	"os"

	"mandala/catalog"
	"mandala/fill"
	"mandala/palette"
	"mandala/session"

	"github.com/alecthomas/kong"
)

type cli struct {
	LogLevel  slog.Level `help:"Minimum log level (debug, info, warn, error)" default:"info"`
	LogFormat string     `help:"Log output format" enum:"text,json" default:"text"`

	Fill    fill.CLICmd    `cmd:"" help:"Bucket-fill the region around a pixel of an image"`
	Paint   session.CLICmd `cmd:"" help:"Replay colouring scripts"`
	List    catalog.CLICmd `cmd:"" help:"List the colouring pages of a folder"`
	Palette palette.CLICmd `cmd:"" help:"Show or export swatch palettes"`
}

func (c *cli) logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("mandala"),
		kong.Description("Colour line-art pages with brush, pen, eraser and bucket tools."),
		kong.UsageOnError(),
	)

	logger := c.logger()
	slog.SetDefault(logger)

	err := kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}

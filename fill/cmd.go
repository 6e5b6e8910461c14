package fill

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"

	"mandala/canvas"
	"mandala/palette"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Image     string      `arg:"" type:"existingfile" help:"Image to fill"`
	X         int         `help:"Seed column" required:""`
	Y         int         `help:"Seed row" required:""`
	Color     string      `help:"Fill color as #RRGGBB" default:"#FF6B6B"`
	Tolerance int         `help:"Maximum per-channel difference from the seed color" default:"30"`
	Out       string      `help:"Destination file. Overwrites the source image when empty"`
	Force     bool        `help:"Replace the destination if it exists" default:"false"`
	FillColor color.NRGBA `kong:"-"`

	inPlace bool `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var err error
	if c.FillColor, err = palette.ParseHex(c.Color); err != nil {
		return err
	}

	if c.Tolerance < 0 {
		return fmt.Errorf("invalid tolerance: %d", c.Tolerance)
	}

	if c.Out == "" {
		c.Out = c.Image
		c.Force = true
		c.inPlace = true
	}
	if c.Out, err = filepath.Abs(c.Out); err != nil {
		return fmt.Errorf("invalid destination path %q: %w", c.Out, err)
	}

	return nil
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	logger = logger.With("file", c.Image)

	img, err := canvas.Decode(c.Image)
	if err != nil {
		return err
	}

	seed := image.Pt(c.X, c.Y)
	n := Engine{Tolerance: c.Tolerance}.Fill(img, seed, c.FillColor)
	logger.Info("filled", "x", c.X, "y", c.Y, "color", palette.FormatHex(c.FillColor), "pixels", n)
	if n == 0 && c.inPlace {
		return nil
	}

	return canvas.Export(logger, img, c.Out, c.Force)
}

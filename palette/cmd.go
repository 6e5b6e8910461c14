package palette

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Show struct {
		Source string `arg:"" optional:"" help:"Palette name (default) or PAL file in RIFF format" default:"default"`
	} `cmd:"" help:"Print the swatches of a palette"`
	Export struct {
		Out    string `arg:"" help:"Destination PAL file"`
		Source string `help:"Palette name (default) or PAL file in RIFF format" default:"default"`
		Force  bool   `help:"Overwrite the destination if it exists" default:"false"`
	} `cmd:"" help:"Write a palette as a RIFF PAL file"`
}

func (c *CLICmd) Run(kctx *kong.Context, logger *slog.Logger) error {
	switch kctx.Selected().Name {
	case "show":
		sw, err := Load(c.Show.Source)
		if err != nil {
			return err
		}
		for i := range sw {
			hex, _ := sw.Hex(i)
			fmt.Fprintf(kctx.Stdout, "%3d %s\n", i, hex)
		}
		return nil
	case "export":
		return c.export(logger)
	}
	return fmt.Errorf("unsupported palette command %q", kctx.Selected().Name)
}

func (c *CLICmd) export(logger *slog.Logger) error {
	sw, err := Load(c.Export.Source)
	if err != nil {
		return err
	}

	out, err := filepath.Abs(c.Export.Out)
	if err != nil {
		return fmt.Errorf("invalid destination path %q: %w", c.Export.Out, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if c.Export.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(out, flags, 0o644)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", out, err)
	}

	n, err := WriteTo(f, []color.Palette{sw.Palette()})
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("could not close palette file %q: %w", out, closeErr)
	}
	if err != nil {
		return fmt.Errorf("could not save palette %q: %w", out, err)
	}

	logger.Info("palette exported", "file", out, "colors", len(sw), "bytes", n)
	return nil
}

package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Dir string `help:"Folder holding the colouring pages" default:"."`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	dir, err := filepath.Abs(c.Dir)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(dir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid pages path %q: %w", c.Dir, err)
	}
	c.Dir = dir
	return nil
}

func (c *CLICmd) Run(kctx *kong.Context, logger *slog.Logger) error {
	entries, err := Scan(logger, c.Dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		orientation := "landscape"
		if e.Portrait() {
			orientation = "portrait"
		}
		fmt.Fprintf(kctx.Stdout, "%s\t%dx%d\t%s\t%s\n", e.Name, e.Width, e.Height, e.Format, orientation)
	}
	logger.Info("stats", "pages", len(entries))
	return nil
}

// Package catalog lists the colouring pages available in a directory.
package catalog

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Entry describes one decodable page.
type Entry struct {
	Name   string
	Path   string
	Format string
	Width  int
	Height int
}

func (e Entry) Portrait() bool {
	return e.Height > e.Width
}

// Scan reads the header of every regular file in dir and returns the images, sorted by
// name. Files that are not images are logged and skipped.
func Scan(logger *slog.Logger, dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read folder %q: %w", dir, err)
	}

	var entries []Entry
	for _, file := range files {
		if file.IsDir() || strings.HasPrefix(file.Name(), ".") {
			continue
		}

		name := filepath.Join(dir, file.Name())
		entry, err := readEntry(name)
		if err != nil {
			logger.Debug("skipping file", "file", name, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	logger.Debug("scanned pages", "dir", dir, "pages", len(entries), "files", len(files))
	return entries, nil
}

func readEntry(name string) (Entry, error) {
	img, err := os.Open(name)
	if err != nil {
		return Entry{}, fmt.Errorf("could not open image: %w", err)
	}
	defer img.Close()

	imgConf, format, err := image.DecodeConfig(img)
	if err != nil {
		return Entry{}, fmt.Errorf("could not read image: %w", err)
	}

	return Entry{
		Name:   filepath.Base(name),
		Path:   name,
		Format: format,
		Width:  imgConf.Width,
		Height: imgConf.Height,
	}, nil
}

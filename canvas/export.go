package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultExportName is used when a save request names a directory.
const DefaultExportName = "my-mandala-coloring.png"

// Save writes the canvas to path, picking the encoder from the file extension.
func (c *Canvas) Save(logger *slog.Logger, path string, overwrite bool) error {
	return Export(logger, c.buf, path, overwrite)
}

// Export encodes img to path through a temporary file in the same directory, so a failed
// export never leaves a truncated image behind. Without overwrite an existing destination
// is an error.
func Export(logger *slog.Logger, img image.Image, path string, overwrite bool) (err error) {
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, DefaultExportName)
	}
	if err := checkDest(path, overwrite); err != nil {
		return err
	}

	format, err := formatOf(path)
	if err != nil {
		return err
	}

	destDir, destName := filepath.Split(path)
	if destDir == "" {
		destDir = "."
	}

	outFile, err := os.CreateTemp(destDir, "."+destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", outFile.Name(), defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", outFile.Name(), defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
			}
		}
		if !canRename || err != nil {
			if rmErr := os.Remove(outFile.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				logger.Error("could not remove temporary file", "name", outFile.Name(), "error", rmErr)
			}
		}
	}()

	switch format {
	case "gif":
		if err = gif.Encode(outFile, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF destination %q: %w", path, err)
		}
	case "jpeg":
		if err = jpeg.Encode(outFile, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG destination %q: %w", path, err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", path, err)
		}
	case "bmp":
		if err = bmp.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", path, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", path, err)
		}
	}

	logger.Debug("encoded image", "file", path, "format", format)
	canRename = true
	return nil
}

func formatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".gif":
		return "gif", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", ext)
	}
}

func checkDest(dest string, overwrite bool) error {
	info, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot replace non-regular file %q: %s", dest, info.Mode().String())
	}
	if !overwrite {
		return fmt.Errorf("destination file already exists: %q", dest)
	}
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}

package canvas

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"
	"os"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// pageScale is the share of the canvas a loaded page may cover.
const pageScale = 0.9

// Decode reads an image file into an NRGBA buffer with its origin at (0, 0), honouring
// the EXIF orientation of JPEG photos.
func Decode(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}

	return toNRGBA(img), nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(b.Sub(b.Min))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

// Load decodes a line-art page and places it on a cleared canvas. A page that cannot be
// read leaves the canvas as it was.
func (c *Canvas) Load(logger *slog.Logger, path string) error {
	img, err := Decode(path)
	if err != nil {
		return err
	}

	c.Place(logger, img)
	c.mandala = path
	return nil
}

// Place clears the canvas and draws img centred, scaled to 90% of the canvas while keeping
// its aspect ratio. The result becomes the state Reset returns to.
func (c *Canvas) Place(logger *slog.Logger, img image.Image) {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	c.Clear()
	if srcWidth == 0 || srcHeight == 0 {
		c.original = clone(c.buf)
		return
	}

	canvasWidth := float64(c.buf.Rect.Dx())
	canvasHeight := float64(c.buf.Rect.Dy())
	scale := math.Min(canvasWidth/srcWidth, canvasHeight/srcHeight) * pageScale

	destWidth := srcWidth * scale
	destHeight := srcHeight * scale
	x := (canvasWidth - destWidth) / 2
	y := (canvasHeight - destHeight) / 2
	destBounds := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+destWidth)), int(math.Round(y+destHeight)),
	)

	logger.Info("placing page", "width", destBounds.Dx(), "height", destBounds.Dy(), "scale", scale)
	xdraw.CatmullRom.Scale(c.buf, destBounds, img, srcBounds, xdraw.Over, nil)
	c.original = clone(c.buf)
}

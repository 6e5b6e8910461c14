// Package canvas is the raster surface that colouring tools paint on.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// DefaultWidth and DefaultHeight size a canvas when none is requested.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

var white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Canvas owns the pixel buffer of one colouring page. It is not safe for concurrent use;
// callers serialise tool operations against it.
type Canvas struct {
	buf      *image.NRGBA
	original *image.NRGBA
	mandala  string
}

// New returns a white canvas of the given size.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	c := &Canvas{buf: image.NewNRGBA(image.Rect(0, 0, width, height))}
	c.Clear()
	return c, nil
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.buf.Rect
}

// Image exposes the live buffer for reading.
func (c *Canvas) Image() image.Image {
	return c.buf
}

// Mandala is the path of the last loaded page, empty for a blank canvas.
func (c *Canvas) Mandala() string {
	return c.mandala
}

// Snapshot returns a copy of the whole buffer.
func (c *Canvas) Snapshot() *image.NRGBA {
	return clone(c.buf)
}

// Commit replaces the whole buffer with img in a single write. img must have the canvas
// bounds; the canvas keeps its own copy.
func (c *Canvas) Commit(img *image.NRGBA) error {
	if img == nil || img.Rect != c.buf.Rect {
		return fmt.Errorf("cannot commit image: bounds do not match canvas %v", c.buf.Rect)
	}
	copyPix(c.buf, img)
	return nil
}

// Clear paints the canvas white. The loaded page, if any, stays available to Reset.
func (c *Canvas) Clear() {
	draw.Draw(c.buf, c.buf.Rect, image.NewUniform(white), image.Point{}, draw.Src)
}

// Reset restores the page as it was right after loading. It reports false when no page
// was loaded.
func (c *Canvas) Reset() bool {
	if c.original == nil {
		return false
	}
	copyPix(c.buf, c.original)
	return true
}

func clone(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copyPix(dst, src)
	return dst
}

// copyPix copies rows between equally sized images whose strides may differ.
func copyPix(dst, src *image.NRGBA) {
	rowSize := src.Rect.Dx() * 4
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		di := dst.PixOffset(dst.Rect.Min.X, y)
		si := src.PixOffset(src.Rect.Min.X, y)
		copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
	}
}

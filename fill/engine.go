// Package fill implements the paint-bucket tool: a tolerance-matched,
// 4-connected region fill over an in-memory raster buffer.
package fill

import (
	"image"
	"image/color"

	"mandala/palette"
)

// DefaultTolerance is the per-channel difference accepted as part of a region. It absorbs the
// anti-aliased edges of line art so fills do not leave thin unfilled rings along strokes.
const DefaultTolerance = 30

// Engine fills regions of NRGBA buffers. The zero value matches exact colours only;
// use New for the default tolerance.
type Engine struct {
	// Tolerance bounds |pixel - reference| for every channel, alpha included.
	// Negative values behave like 0.
	Tolerance int
}

func New() Engine {
	return Engine{Tolerance: DefaultTolerance}
}

// FillHex parses hex and fills from (x, y) with the default tolerance. A malformed colour
// returns an error wrapping palette.ErrInvalidColorFormat and leaves buf untouched.
func FillHex(buf *image.NRGBA, x, y int, hex string) (int, error) {
	c, err := palette.ParseHex(hex)
	if err != nil {
		return 0, err
	}
	return New().Fill(buf, image.Pt(x, y), c), nil
}

// Fill replaces the 4-connected region of pixels matching the seed's colour with c at full
// opacity and returns the number of pixels written. It is a no-op for an empty buffer, a seed
// outside the buffer, or a seed already painted with c. The buffer is only borrowed for the
// duration of the call.
func (e Engine) Fill(buf *image.NRGBA, seed image.Point, c color.NRGBA) int {
	if buf == nil || buf.Rect.Empty() || !seed.In(buf.Rect) {
		return 0
	}

	tol := max(e.Tolerance, 0)
	ref := pixel(buf, seed)
	fill := [4]uint8{c.R, c.G, c.B, 0xFF}
	if ref == fill {
		return 0
	}

	width, height := buf.Rect.Dx(), buf.Rect.Dy()
	visited := make([]bool, width*height)
	stack := []image.Point{seed}
	filled := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !p.In(buf.Rect) {
			continue
		}
		idx := (p.Y-buf.Rect.Min.Y)*width + (p.X - buf.Rect.Min.X)
		if visited[idx] {
			continue
		}
		visited[idx] = true

		off := buf.PixOffset(p.X, p.Y)
		if !match(buf.Pix[off:off+4:off+4], ref, tol) {
			continue
		}

		copy(buf.Pix[off:off+4], fill[:])
		filled++

		stack = append(stack,
			image.Pt(p.X+1, p.Y),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X, p.Y-1),
		)
	}

	return filled
}

func pixel(buf *image.NRGBA, p image.Point) [4]uint8 {
	off := buf.PixOffset(p.X, p.Y)
	return [4]uint8(buf.Pix[off : off+4])
}

// match is inclusive and compares against the reference sampled before any write, so a region
// never drifts through chains of near colours.
func match(px []uint8, ref [4]uint8, tol int) bool {
	for i, v := range ref {
		d := int(px[i]) - int(v)
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

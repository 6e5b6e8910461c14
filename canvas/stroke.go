package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four Béziers approximate a circle.
const kappa = 0.5522847498

// Point is a position in canvas space, sub-pixel precise.
type Point struct {
	X, Y float64
}

// Pen describes how a stroke segment is laid down.
type Pen struct {
	Width float64
	Color color.NRGBA
	// Erase removes paint instead of adding it: destination alpha is scaled by one minus
	// the stroke coverage.
	Erase bool
}

// Stroke draws the segment from -> to with round caps, so consecutive segments of a
// freehand line join smoothly.
func (c *Canvas) Stroke(pen Pen, from, to Point) {
	r := max(pen.Width, 1) / 2
	bbox := image.Rect(
		int(math.Floor(min(from.X, to.X)-r))-1, int(math.Floor(min(from.Y, to.Y)-r))-1,
		int(math.Ceil(max(from.X, to.X)+r))+1, int(math.Ceil(max(from.Y, to.Y)+r))+1,
	).Intersect(c.buf.Rect)
	if bbox.Empty() {
		return
	}

	mask := coverage(bbox, r, from, to)
	if pen.Erase {
		erase(c.buf, mask)
		return
	}
	draw.DrawMask(c.buf, bbox, image.NewUniform(pen.Color), image.Point{}, mask, bbox.Min, draw.Over)
}

// coverage rasterises the capsule around the segment into an alpha mask covering bbox.
// Each part is composited separately so overlapping sub-paths never cancel out.
func coverage(bbox image.Rectangle, r float64, from, to Point) *image.Alpha {
	mask := image.NewAlpha(bbox)
	w, h := bbox.Dx(), bbox.Dy()
	ox, oy := float64(bbox.Min.X), float64(bbox.Min.Y)
	z := vector.NewRasterizer(w, h)

	shape := func(path func()) {
		z.Reset(w, h)
		path()
		z.Draw(mask, bbox, image.Opaque, image.Point{})
	}

	local := func(p Point) (float32, float32) {
		return float32(p.X - ox), float32(p.Y - oy)
	}

	shape(func() { circle(z, from, r, local) })
	if from == to {
		return mask
	}
	shape(func() { circle(z, to, r, local) })

	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	nx, ny := -dy/length*r, dx/length*r
	shape(func() {
		z.MoveTo(local(Point{from.X + nx, from.Y + ny}))
		z.LineTo(local(Point{to.X + nx, to.Y + ny}))
		z.LineTo(local(Point{to.X - nx, to.Y - ny}))
		z.LineTo(local(Point{from.X - nx, from.Y - ny}))
		z.ClosePath()
	})

	return mask
}

func circle(z *vector.Rasterizer, c Point, r float64, local func(Point) (float32, float32)) {
	k := r * kappa
	z.MoveTo(local(Point{c.X + r, c.Y}))
	cubeTo(z, local, Point{c.X + r, c.Y + k}, Point{c.X + k, c.Y + r}, Point{c.X, c.Y + r})
	cubeTo(z, local, Point{c.X - k, c.Y + r}, Point{c.X - r, c.Y + k}, Point{c.X - r, c.Y})
	cubeTo(z, local, Point{c.X - r, c.Y - k}, Point{c.X - k, c.Y - r}, Point{c.X, c.Y - r})
	cubeTo(z, local, Point{c.X + k, c.Y - r}, Point{c.X + r, c.Y - k}, Point{c.X + r, c.Y})
	z.ClosePath()
}

func cubeTo(z *vector.Rasterizer, local func(Point) (float32, float32), b, c, d Point) {
	bx, by := local(b)
	cx, cy := local(c)
	dx, dy := local(d)
	z.CubeTo(bx, by, cx, cy, dx, dy)
}

func erase(buf *image.NRGBA, mask *image.Alpha) {
	b := mask.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := uint32(mask.AlphaAt(x, y).A)
			if m == 0 {
				continue
			}
			off := buf.PixOffset(x, y)
			a := (uint32(buf.Pix[off+3])*(0xFF-m) + 0x7F) / 0xFF
			if a == 0 {
				copy(buf.Pix[off:off+4], []uint8{0, 0, 0, 0})
				continue
			}
			buf.Pix[off+3] = uint8(a)
		}
	}
}

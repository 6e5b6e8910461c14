// Package session holds the state of one colouring session and turns discrete UI actions
// into operations on its canvas.
package session

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"mandala/canvas"
	"mandala/fill"
	"mandala/palette"
)

type Tool string

const (
	Brush  Tool = "brush"
	Pen    Tool = "pen"
	Eraser Tool = "eraser"
	Bucket Tool = "bucket"
)

func (t Tool) valid() bool {
	switch t {
	case Brush, Pen, Eraser, Bucket:
		return true
	}
	return false
}

const (
	DefaultColor     = "#FF6B6B"
	DefaultBrushSize = 3
	MinBrushSize     = 1
	MaxBrushSize     = 50
)

var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrBrushSize     = errors.New("brush size out of range")
	ErrUnknownAction = errors.New("unknown action")
)

// Session is the state shared by every tool handler. A session owns its canvas: all
// operations against it must go through the same session, one at a time.
type Session struct {
	Tool      Tool
	Color     string
	BrushSize int
	Canvas    *canvas.Canvas
	Engine    fill.Engine
	Swatches  palette.Swatches

	drawing bool
	last    canvas.Point
	logger  *slog.Logger
}

// New returns a session on c with the brush selected, the default colour and size, the
// default fill tolerance and the built-in swatches.
func New(logger *slog.Logger, c *canvas.Canvas) *Session {
	return &Session{
		Tool:      Brush,
		Color:     DefaultColor,
		BrushSize: DefaultBrushSize,
		Canvas:    c,
		Engine:    fill.New(),
		Swatches:  palette.Default,
		logger:    logger,
	}
}

// Drawing reports whether a freehand stroke is in progress.
func (s *Session) Drawing() bool {
	return s.drawing
}

func (s *Session) selectTool(t Tool) error {
	if !t.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTool, t)
	}
	s.Tool = t
	s.drawing = false
	return nil
}

func (s *Session) selectColor(hex string) error {
	c, err := palette.ParseHex(hex)
	if err != nil {
		return err
	}
	s.Color = palette.FormatHex(c)
	return nil
}

func (s *Session) selectSwatch(i int) error {
	hex, err := s.Swatches.Hex(i)
	if err != nil {
		return err
	}
	s.Color = hex
	return nil
}

func (s *Session) setBrushSize(size int) error {
	if size < MinBrushSize || size > MaxBrushSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrBrushSize, size, MinBrushSize, MaxBrushSize)
	}
	s.BrushSize = size
	return nil
}

// pen maps the active tool onto stroke geometry: the pen draws at half the brush width,
// the eraser at twice it.
func (s *Session) pen() (canvas.Pen, error) {
	size := float64(s.BrushSize)
	switch s.Tool {
	case Brush:
		c, err := palette.ParseHex(s.Color)
		return canvas.Pen{Width: size, Color: c}, err
	case Pen:
		c, err := palette.ParseHex(s.Color)
		return canvas.Pen{Width: max(1, size/2), Color: c}, err
	case Eraser:
		return canvas.Pen{Width: size * 2, Erase: true}, nil
	}
	return canvas.Pen{}, fmt.Errorf("%w: %q cannot draw strokes", ErrUnknownTool, s.Tool)
}

func (s *Session) startStroke(p canvas.Point) {
	if s.Tool == Bucket {
		return
	}
	s.drawing = true
	s.last = p
}

func (s *Session) continueStroke(p canvas.Point) error {
	if !s.drawing || s.Tool == Bucket {
		return nil
	}
	pen, err := s.pen()
	if err != nil {
		return err
	}
	s.Canvas.Stroke(pen, s.last, p)
	s.last = p
	return nil
}

func (s *Session) stopStroke() {
	s.drawing = false
}

// bucket fills from the clicked pixel on a snapshot of the canvas and commits the result in
// one write, so a failure never leaves a half-filled page.
func (s *Session) bucket(p canvas.Point) error {
	if s.Tool != Bucket {
		return nil
	}

	c, err := palette.ParseHex(s.Color)
	if err != nil {
		return err
	}

	seed := image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	buf := s.Canvas.Snapshot()
	n := s.Engine.Fill(buf, seed, c)
	s.logger.Debug("bucket fill", "x", seed.X, "y", seed.Y, "color", s.Color, "pixels", n)
	if n == 0 {
		return nil
	}
	return s.Canvas.Commit(buf)
}

package session

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"mandala/canvas"
	"mandala/palette"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
	white   = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black   = color.NRGBA{A: 0xFF}
)

func newSession(t *testing.T, w, h int) *Session {
	t.Helper()
	c, err := canvas.New(w, h)
	require.NoError(t, err)
	return New(discard, c)
}

func pixel(s *Session, x, y int) color.NRGBA {
	return s.Canvas.Image().(*image.NRGBA).NRGBAAt(x, y)
}

func dispatchAll(t *testing.T, s *Session, actions ...Action) {
	t.Helper()
	for i, a := range actions {
		require.NoError(t, s.Dispatch(a), "action %d (%s)", i, a.Kind)
	}
}

func TestNew_Defaults(t *testing.T) {
	s := newSession(t, 4, 4)
	assert.Equal(t, Brush, s.Tool)
	assert.Equal(t, DefaultColor, s.Color)
	assert.Equal(t, DefaultBrushSize, s.BrushSize)
	assert.Equal(t, 30, s.Engine.Tolerance)
	assert.False(t, s.Drawing())
}

func TestDispatch_Selection(t *testing.T) {
	s := newSession(t, 4, 4)

	dispatchAll(t, s,
		Action{Kind: KindTool, Tool: Bucket},
		Action{Kind: KindColor, Color: "00ff7f"},
		Action{Kind: KindSize, Size: 12},
	)
	assert.Equal(t, Bucket, s.Tool)
	assert.Equal(t, "#00FF7F", s.Color)
	assert.Equal(t, 12, s.BrushSize)

	require.NoError(t, s.Dispatch(Action{Kind: KindSwatch, Index: 10}))
	assert.Equal(t, "#000000", s.Color)
}

func TestDispatch_Rejected(t *testing.T) {
	s := newSession(t, 4, 4)

	assert.ErrorIs(t, s.Dispatch(Action{Kind: KindColor, Color: "xyz123"}), palette.ErrInvalidColorFormat)
	assert.ErrorIs(t, s.Dispatch(Action{Kind: KindColor, Color: "#12345"}), palette.ErrInvalidColorFormat)
	assert.ErrorIs(t, s.Dispatch(Action{Kind: KindTool, Tool: "spray"}), ErrUnknownTool)
	assert.ErrorIs(t, s.Dispatch(Action{Kind: KindSize, Size: 0}), ErrBrushSize)
	assert.ErrorIs(t, s.Dispatch(Action{Kind: KindSize, Size: MaxBrushSize + 1}), ErrBrushSize)
	assert.Error(t, s.Dispatch(Action{Kind: KindSwatch, Index: 99}))
	assert.ErrorIs(t, s.Dispatch(Action{Kind: "scribble"}), ErrUnknownAction)

	assert.Equal(t, Brush, s.Tool)
	assert.Equal(t, DefaultColor, s.Color)
	assert.Equal(t, DefaultBrushSize, s.BrushSize)
}

func TestDispatch_BucketClick(t *testing.T) {
	s := newSession(t, 9, 5)
	// Vertical wall at x=4.
	buf := s.Canvas.Snapshot()
	for y := 0; y < 5; y++ {
		buf.SetNRGBA(4, y, black)
	}
	require.NoError(t, s.Canvas.Commit(buf))

	dispatchAll(t, s,
		Action{Kind: KindTool, Tool: Bucket},
		Action{Kind: KindColor, Color: "#FF0000"},
		Action{Kind: KindClick, X: 1.7, Y: 2.9},
	)

	red := color.NRGBA{R: 0xFF, A: 0xFF}
	assert.Equal(t, red, pixel(s, 0, 0))
	assert.Equal(t, red, pixel(s, 3, 4))
	assert.Equal(t, black, pixel(s, 4, 2))
	assert.Equal(t, white, pixel(s, 5, 2))
}

func TestDispatch_ClickIgnoredWithoutBucket(t *testing.T) {
	s := newSession(t, 4, 4)
	before := s.Canvas.Snapshot()

	require.NoError(t, s.Dispatch(Action{Kind: KindClick, X: 1, Y: 1}))
	assert.Equal(t, before.Pix, s.Canvas.Snapshot().Pix)
}

func TestDispatch_ClickOutsideCanvas(t *testing.T) {
	s := newSession(t, 4, 4)
	before := s.Canvas.Snapshot()

	dispatchAll(t, s,
		Action{Kind: KindTool, Tool: Bucket},
		Action{Kind: KindClick, X: -1, Y: 0},
		Action{Kind: KindClick, X: 4, Y: 0},
	)
	assert.Equal(t, before.Pix, s.Canvas.Snapshot().Pix)
}

func TestDispatch_BrushStroke(t *testing.T) {
	s := newSession(t, 30, 30)

	dispatchAll(t, s,
		Action{Kind: KindColor, Color: "#0000FF"},
		Action{Kind: KindSize, Size: 4},
		Action{Kind: KindDown, X: 5, Y: 15},
	)
	assert.True(t, s.Drawing())
	assert.Equal(t, white, pixel(s, 5, 15), "pointer down alone paints nothing")

	dispatchAll(t, s,
		Action{Kind: KindMove, X: 15, Y: 15},
		Action{Kind: KindMove, X: 25, Y: 15},
		Action{Kind: KindUp},
	)
	assert.False(t, s.Drawing())

	blue := color.NRGBA{B: 0xFF, A: 0xFF}
	assert.Equal(t, blue, pixel(s, 10, 15))
	assert.Equal(t, blue, pixel(s, 20, 15))
	assert.Equal(t, white, pixel(s, 15, 5))

	require.NoError(t, s.Dispatch(Action{Kind: KindMove, X: 25, Y: 25}))
	assert.Equal(t, white, pixel(s, 25, 22), "moves after pointer up are ignored")
}

func TestDispatch_TouchAndLeave(t *testing.T) {
	s := newSession(t, 30, 30)

	dispatchAll(t, s,
		Action{Kind: KindTool, Tool: Pen},
		Action{Kind: KindColor, Color: "#000000"},
		Action{Kind: KindSize, Size: 6},
		Action{Kind: KindTouchStart, X: 15, Y: 2},
		Action{Kind: KindTouchMove, X: 15, Y: 27},
	)
	assert.True(t, s.Drawing())
	assert.Equal(t, black, pixel(s, 15, 15))

	require.NoError(t, s.Dispatch(Action{Kind: KindTouchEnd}))
	assert.False(t, s.Drawing())

	dispatchAll(t, s, Action{Kind: KindDown, X: 1, Y: 1}, Action{Kind: KindLeave})
	assert.False(t, s.Drawing())
}

func TestDispatch_Eraser(t *testing.T) {
	s := newSession(t, 30, 30)

	dispatchAll(t, s,
		Action{Kind: KindTool, Tool: Eraser},
		Action{Kind: KindDown, X: 2, Y: 15},
		Action{Kind: KindMove, X: 28, Y: 15},
		Action{Kind: KindUp},
	)
	assert.Equal(t, color.NRGBA{}, pixel(s, 15, 15))
	assert.Equal(t, white, pixel(s, 15, 2))
}

func TestDispatch_BucketIgnoresPointer(t *testing.T) {
	s := newSession(t, 10, 10)
	before := s.Canvas.Snapshot()

	dispatchAll(t, s,
		Action{Kind: KindTool, Tool: Bucket},
		Action{Kind: KindDown, X: 1, Y: 1},
		Action{Kind: KindMove, X: 8, Y: 8},
	)
	assert.False(t, s.Drawing())
	assert.Equal(t, before.Pix, s.Canvas.Snapshot().Pix)
}

func TestDispatch_ClearResetSave(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.png")
	writePage(t, page)

	s := newSession(t, 20, 20)
	dispatchAll(t, s, Action{Kind: KindLoad, Path: page})
	loaded := s.Canvas.Snapshot()

	dispatchAll(t, s,
		Action{Kind: KindTool, Tool: Bucket},
		Action{Kind: KindColor, Color: "#00FF00"},
		Action{Kind: KindClick, X: 0, Y: 0},
	)
	assert.NotEqual(t, loaded.Pix, s.Canvas.Snapshot().Pix)

	dispatchAll(t, s, Action{Kind: KindReset})
	assert.Equal(t, loaded.Pix, s.Canvas.Snapshot().Pix)

	dispatchAll(t, s, Action{Kind: KindClear})
	assert.Equal(t, white, pixel(s, 10, 10))

	out := filepath.Join(dir, "out.png")
	dispatchAll(t, s, Action{Kind: KindSave, Path: out})
	assert.Error(t, s.Dispatch(Action{Kind: KindSave, Path: out}))
	require.NoError(t, s.Dispatch(Action{Kind: KindSave, Path: out, Overwrite: true}))
	_, err := os.Stat(out)
	assert.NoError(t, err)

	assert.Error(t, s.Dispatch(Action{Kind: KindLoad, Path: filepath.Join(dir, "missing.png")}))
}

// writePage writes a 10x10 white page with a black border.
func writePage(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := white
			if x == 0 || y == 0 || x == 9 || y == 9 {
				c = black
			}
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

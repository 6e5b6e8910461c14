package session

import (
	"fmt"

	"mandala/canvas"
)

type Kind string

const (
	KindTool       Kind = "tool"
	KindColor      Kind = "color"
	KindSwatch     Kind = "swatch"
	KindSize       Kind = "size"
	KindDown       Kind = "down"
	KindMove       Kind = "move"
	KindUp         Kind = "up"
	KindLeave      Kind = "leave"
	KindClick      Kind = "click"
	KindTouchStart Kind = "touchstart"
	KindTouchMove  Kind = "touchmove"
	KindTouchEnd   Kind = "touchend"
	KindLoad       Kind = "load"
	KindClear      Kind = "clear"
	KindReset      Kind = "reset"
	KindSave       Kind = "save"
)

// Action is one discrete UI event. Only the fields relevant to Kind are read.
type Action struct {
	Kind      Kind    `yaml:"action"`
	Tool      Tool    `yaml:"tool,omitempty"`
	Color     string  `yaml:"color,omitempty"`
	Index     int     `yaml:"index,omitempty"`
	Size      int     `yaml:"size,omitempty"`
	X         float64 `yaml:"x,omitempty"`
	Y         float64 `yaml:"y,omitempty"`
	Path      string  `yaml:"path,omitempty"`
	Overwrite bool    `yaml:"overwrite,omitempty"`
}

func (a Action) point() canvas.Point {
	return canvas.Point{X: a.X, Y: a.Y}
}

type handler func(*Session, Action) error

// handlers is the dispatch table. Touch events share the pointer handlers.
var handlers = map[Kind]handler{
	KindTool:   func(s *Session, a Action) error { return s.selectTool(a.Tool) },
	KindColor:  func(s *Session, a Action) error { return s.selectColor(a.Color) },
	KindSwatch: func(s *Session, a Action) error { return s.selectSwatch(a.Index) },
	KindSize:   func(s *Session, a Action) error { return s.setBrushSize(a.Size) },

	KindDown:       pointerDown,
	KindTouchStart: pointerDown,
	KindMove:       pointerMove,
	KindTouchMove:  pointerMove,
	KindUp:         pointerUp,
	KindTouchEnd:   pointerUp,
	KindLeave:      pointerUp,
	KindClick:      func(s *Session, a Action) error { return s.bucket(a.point()) },

	KindLoad: func(s *Session, a Action) error {
		s.stopStroke()
		return s.Canvas.Load(s.logger, a.Path)
	},
	KindClear: func(s *Session, _ Action) error {
		s.stopStroke()
		s.Canvas.Clear()
		return nil
	},
	KindReset: func(s *Session, _ Action) error {
		s.stopStroke()
		if !s.Canvas.Reset() {
			s.logger.Debug("nothing to reset, no page loaded")
		}
		return nil
	},
	KindSave: func(s *Session, a Action) error {
		path := a.Path
		if path == "" {
			path = canvas.DefaultExportName
		}
		return s.Canvas.Save(s.logger, path, a.Overwrite)
	},
}

func pointerDown(s *Session, a Action) error {
	s.startStroke(a.point())
	return nil
}

func pointerMove(s *Session, a Action) error {
	return s.continueStroke(a.point())
}

func pointerUp(s *Session, _ Action) error {
	s.stopStroke()
	return nil
}

// Dispatch applies a to the session. A rejected action leaves the session unchanged.
func (s *Session) Dispatch(a Action) error {
	h, ok := handlers[a.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
	return h(s, a)
}

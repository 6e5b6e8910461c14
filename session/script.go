package session

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mandala/canvas"
	"mandala/palette"

	"gopkg.in/yaml.v3"
)

// Script is a recorded colouring session: a canvas, its configuration and the actions to
// replay on it. JSON documents are accepted too.
type Script struct {
	Width     int      `yaml:"width"`
	Height    int      `yaml:"height"`
	Tolerance *int     `yaml:"tolerance"`
	Palette   string   `yaml:"palette"`
	Steps     []Action `yaml:"steps"`
}

// ParseScript decodes a script, rejecting unknown fields and empty step lists.
func ParseScript(data []byte) (*Script, error) {
	var sc Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	if sc.Tolerance != nil && *sc.Tolerance < 0 {
		return nil, fmt.Errorf("parse script: negative tolerance %d", *sc.Tolerance)
	}
	return &sc, nil
}

// ReadScript loads a script file. Relative page, export and palette paths are resolved
// against the script's directory.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read script %q: %w", path, err)
	}

	sc, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	if sc.Palette != palette.DefaultName {
		sc.Palette = resolve(sc.Palette)
	}
	for i := range sc.Steps {
		switch sc.Steps[i].Kind {
		case KindLoad:
			sc.Steps[i].Path = resolve(sc.Steps[i].Path)
		case KindSave:
			if sc.Steps[i].Path == "" {
				sc.Steps[i].Path = canvas.DefaultExportName
			}
			sc.Steps[i].Path = resolve(sc.Steps[i].Path)
		}
	}
	return sc, nil
}

// Run replays the script on a fresh canvas and stops at the first failing step.
func (sc *Script) Run(logger *slog.Logger) (*Session, error) {
	width, height := sc.Width, sc.Height
	if width == 0 {
		width = canvas.DefaultWidth
	}
	if height == 0 {
		height = canvas.DefaultHeight
	}

	c, err := canvas.New(width, height)
	if err != nil {
		return nil, err
	}

	s := New(logger, c)
	if sc.Tolerance != nil {
		s.Engine.Tolerance = *sc.Tolerance
	}
	if sc.Palette != "" {
		if s.Swatches, err = palette.Load(sc.Palette); err != nil {
			return nil, err
		}
	}

	for i, step := range sc.Steps {
		if err := s.Dispatch(step); err != nil {
			return s, fmt.Errorf("step %d (%s): %w", i, step.Kind, err)
		}
	}

	logger.Info("script done", "steps", len(sc.Steps), "page", c.Mandala())
	return s, nil
}

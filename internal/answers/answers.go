// Package answers collects the values substituted into a template's blanks,
// either interactively or from a saved file.
package answers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/madlibs/internal/madlib"
	"github.com/ariel-frischer/madlibs/internal/render"
)

var (
	// ErrAborted is returned when the user cancels an interactive prompt.
	ErrAborted = errors.New("cancelled by user")
	// ErrMissingAnswer is returned when a static answer set lacks a blank.
	ErrMissingAnswer = errors.New("missing answer")
)

// Collector gathers one answer per blank, asked in blank order.
type Collector interface {
	Collect(ctx context.Context, blanks []madlib.Blank) (render.Answers, error)
}

// Static serves a fixed answer set.
type Static struct {
	Answers render.Answers
}

// Collect returns a copy of the answer set after checking that every blank
// has an answer. Answers for keys with no blank are kept so the renderer can
// report them.
func (s Static) Collect(ctx context.Context, blanks []madlib.Blank) (render.Answers, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, b := range blanks {
		if _, ok := s.Answers[b.Key]; !ok {
			return nil, fmt.Errorf("%w for blank %q (%s)", ErrMissingAnswer, b.Key, b.Prompt)
		}
	}
	out := make(render.Answers, len(s.Answers))
	for k, v := range s.Answers {
		out[k] = v
	}
	return out, nil
}

// LoadFile reads a flat key/value answer file. JSON and YAML are both
// accepted; scalar values of any type are read as their literal text.
func LoadFile(path string) (Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Static{}, fmt.Errorf("reading answers file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Static{}, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]string{}
	}

	out := make(render.Answers, len(raw))
	for k, v := range raw {
		out[k] = strings.TrimSpace(v)
	}
	return Static{Answers: out}, nil
}

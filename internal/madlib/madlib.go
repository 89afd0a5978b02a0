// Package madlib defines the validated, immutable story template produced by
// the contract validator and consumed by the renderer.
package madlib

import (
	"encoding/json"
	"fmt"
)

// Blank is a single fill-in slot of a template.
type Blank struct {
	Key    string `json:"key" yaml:"key"`
	Prompt string `json:"prompt" yaml:"prompt"`
}

// Template is a validated story template. Its fields are only reachable
// through accessors that return copies, so a Template never changes after
// construction.
type Template struct {
	title    string
	blanks   []Blank
	skeleton string
}

// New builds a Template from already validated parts. It copies blanks so the
// caller keeps no handle on the template's internals. Callers outside the
// contract package should go through contract.Validate instead.
func New(title string, blanks []Blank, skeleton string) *Template {
	owned := make([]Blank, len(blanks))
	copy(owned, blanks)
	return &Template{
		title:    title,
		blanks:   owned,
		skeleton: skeleton,
	}
}

// Title returns the template title.
func (t *Template) Title() string {
	return t.title
}

// Skeleton returns the narrative text containing the placeholders.
func (t *Template) Skeleton() string {
	return t.skeleton
}

// Blanks returns the blanks in presentation order.
func (t *Template) Blanks() []Blank {
	out := make([]Blank, len(t.blanks))
	copy(out, t.blanks)
	return out
}

// Len returns the number of blanks.
func (t *Template) Len() int {
	return len(t.blanks)
}

// Keys returns the blank keys in presentation order.
func (t *Template) Keys() []string {
	keys := make([]string, len(t.blanks))
	for i, b := range t.blanks {
		keys[i] = b.Key
	}
	return keys
}

// HasKey reports whether key names one of the template's blanks.
func (t *Template) HasKey(key string) bool {
	for _, b := range t.blanks {
		if b.Key == key {
			return true
		}
	}
	return false
}

// document is the wire shape of a template.
type document struct {
	Title    string  `json:"title"`
	Blanks   []Blank `json:"blanks"`
	Skeleton string  `json:"skeleton"`
}

// MarshalJSON encodes the template in the same shape the generative source
// is asked to produce.
func (t *Template) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		Title:    t.title,
		Blanks:   t.Blanks(),
		Skeleton: t.skeleton,
	})
}

// Dump returns an indented JSON rendition of the template for diagnostic
// display.
func (t *Template) Dump() (string, error) {
	data, err := json.MarshalIndent(document{
		Title:    t.title,
		Blanks:   t.Blanks(),
		Skeleton: t.skeleton,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding template: %w", err)
	}
	return string(data), nil
}

// ValidKey reports whether key can name a blank and its placeholder: one or
// more ASCII letters, digits or underscores, not made of digits alone.
func ValidKey(key string) bool {
	if key == "" {
		return false
	}
	allDigits := true
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
			allDigits = false
		default:
			return false
		}
	}
	return !allDigits
}

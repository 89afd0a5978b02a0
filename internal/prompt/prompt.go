// Package prompt builds the instruction text sent to the generative source.
// The blank-count requirement it declares comes from the same contract.Bounds
// value the validator enforces.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/ariel-frischer/madlibs/internal/contract"
)

//go:embed request.tmpl
var requestTemplate string

var requestTmpl = template.Must(template.New("request").Parse(requestTemplate))

// DefaultTheme is used when the caller gives no theme.
const DefaultTheme = "surprise me with any playful theme"

// Default skeleton length, in words.
const (
	DefaultMinWords = 120
	DefaultMaxWords = 200
)

// Request describes the template to ask for.
type Request struct {
	Bounds   contract.Bounds
	Count    int // exact blank count to ask for; 0 asks for any count within Bounds
	Theme    string
	MinWords int
	MaxWords int
}

// Validate checks that the request is consistent with its bounds.
func (r Request) Validate() error {
	if err := r.Bounds.Validate(); err != nil {
		return err
	}
	if r.Count != 0 && !r.Bounds.Contains(r.Count) {
		return fmt.Errorf("blank count %d is outside the allowed range %d-%d", r.Count, r.Bounds.Min, r.Bounds.Max)
	}
	if r.MinWords < 0 || r.MaxWords < 0 || (r.MaxWords > 0 && r.MinWords > r.MaxWords) {
		return fmt.Errorf("invalid skeleton length %d-%d words", r.MinWords, r.MaxWords)
	}
	return nil
}

// Build returns the generation request text for req.
func Build(req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		theme = DefaultTheme
	}
	minWords, maxWords := req.MinWords, req.MaxWords
	if minWords == 0 {
		minWords = DefaultMinWords
	}
	if maxWords == 0 {
		maxWords = DefaultMaxWords
	}
	if minWords > maxWords {
		return "", fmt.Errorf("invalid skeleton length %d-%d words", minWords, maxWords)
	}

	var sb strings.Builder
	err := requestTmpl.Execute(&sb, struct {
		CountClause string
		Theme       string
		MinWords    int
		MaxWords    int
	}{
		CountClause: countClause(req),
		Theme:       theme,
		MinWords:    minWords,
		MaxWords:    maxWords,
	})
	if err != nil {
		return "", fmt.Errorf("rendering generation request: %w", err)
	}
	return strings.TrimSpace(sb.String()), nil
}

func countClause(req Request) string {
	switch {
	case req.Count != 0:
		return fmt.Sprintf("Provide exactly %d blank entries.", req.Count)
	case req.Bounds.Min == req.Bounds.Max:
		return fmt.Sprintf("Provide exactly %d blank entries.", req.Bounds.Min)
	default:
		return fmt.Sprintf("Provide between %d and %d blank entries.", req.Bounds.Min, req.Bounds.Max)
	}
}

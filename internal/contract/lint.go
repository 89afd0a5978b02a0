package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/madlibs/internal/madlib"
	"github.com/ariel-frischer/madlibs/internal/render"
)

// FindingCode identifies a lint finding.
type FindingCode string

const (
	FindingMalformedSkeleton     FindingCode = "malformed-skeleton"
	FindingUndeclaredPlaceholder FindingCode = "undeclared-placeholder"
	FindingRepeatedPlaceholder   FindingCode = "repeated-placeholder"
	FindingUnusedKey             FindingCode = "unused-key"
	FindingEmptyPrompt           FindingCode = "empty-prompt"
)

// Finding is a non-fatal problem in a validated template. The generation
// request asks for each placeholder exactly once, but validation does not
// enforce it; Lint surfaces the drift before rendering fails on it.
type Finding struct {
	Code    FindingCode
	Key     string
	Message string
}

// String formats the finding as "code: message".
func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// BlocksRender reports whether rendering t with one answer per blank is
// certain to fail because of this finding.
func (f Finding) BlocksRender() bool {
	switch f.Code {
	case FindingMalformedSkeleton, FindingUndeclaredPlaceholder, FindingUnusedKey:
		return true
	default:
		return false
	}
}

// FirstBlocking returns the first finding that blocks rendering.
func FirstBlocking(findings []Finding) (Finding, bool) {
	for _, f := range findings {
		if f.BlocksRender() {
			return f, true
		}
	}
	return Finding{}, false
}

// Lint reports skeleton/key inconsistencies of t. Findings are ordered by
// kind: malformed skeleton, undeclared placeholders (in order of appearance),
// repeated placeholders, unused keys and empty prompts (in blank order).
func Lint(t *madlib.Template) []Finding {
	var findings []Finding

	placeholders, err := render.Placeholders(t.Skeleton())
	if err != nil {
		var renderErr *render.Error
		key := ""
		if errors.As(err, &renderErr) {
			key = renderErr.Key
		}
		findings = append(findings, Finding{
			Code:    FindingMalformedSkeleton,
			Key:     key,
			Message: err.Error(),
		})
	} else {
		findings = append(findings, placeholderFindings(t, placeholders)...)
	}

	for _, b := range t.Blanks() {
		if strings.TrimSpace(b.Prompt) == "" {
			findings = append(findings, Finding{
				Code:    FindingEmptyPrompt,
				Key:     b.Key,
				Message: fmt.Sprintf("blank %q has an empty prompt", b.Key),
			})
		}
	}

	return findings
}

func placeholderFindings(t *madlib.Template, placeholders []render.Segment) []Finding {
	var findings []Finding

	uses := make(map[string]int, len(placeholders))
	reported := make(map[string]bool)
	for _, p := range placeholders {
		uses[p.Key]++
		if !t.HasKey(p.Key) && !reported[p.Key] {
			reported[p.Key] = true
			findings = append(findings, Finding{
				Code:    FindingUndeclaredPlaceholder,
				Key:     p.Key,
				Message: fmt.Sprintf("placeholder {%s} at offset %d has no matching blank", p.Key, p.Offset),
			})
		}
	}

	keys := t.Keys()
	for _, key := range keys {
		if n := uses[key]; n > 1 {
			findings = append(findings, Finding{
				Code:    FindingRepeatedPlaceholder,
				Key:     key,
				Message: fmt.Sprintf("placeholder {%s} is used %d times", key, n),
			})
		}
	}
	for _, key := range keys {
		if uses[key] == 0 {
			findings = append(findings, Finding{
				Code:    FindingUnusedKey,
				Key:     key,
				Message: fmt.Sprintf("blank %q is never used in the skeleton", key),
			})
		}
	}

	return findings
}

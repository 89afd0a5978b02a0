// Package render substitutes caller-supplied answers into a validated
// template's skeleton. Substitution is an explicit scan so that unresolved
// placeholders and unused answers are reported separately.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/madlibs/internal/madlib"
)

// Answers maps a blank key to the text supplied for it.
type Answers map[string]string

// ErrorKind classifies a render failure.
type ErrorKind int

const (
	// UnresolvedPlaceholder means a placeholder names no declared blank or has no answer.
	UnresolvedPlaceholder ErrorKind = iota + 1
	// UnusedAnswer means an answer was supplied for a key no placeholder references.
	UnusedAnswer
	// MalformedPlaceholder means the skeleton's brace syntax is invalid.
	MalformedPlaceholder
)

// String returns the kind's name.
func (k ErrorKind) String() string {
	switch k {
	case UnresolvedPlaceholder:
		return "UnresolvedPlaceholder"
	case UnusedAnswer:
		return "UnusedAnswer"
	case MalformedPlaceholder:
		return "MalformedPlaceholder"
	default:
		return "Unknown"
	}
}

// Error is a render failure naming the offending key.
type Error struct {
	Kind   ErrorKind
	Key    string
	Offset int    // byte offset in the skeleton; -1 when not applicable
	Detail string // extra context for MalformedPlaceholder
}

// Sentinels for errors.Is matching on kind alone.
var (
	ErrUnresolvedPlaceholder = &Error{Kind: UnresolvedPlaceholder}
	ErrUnusedAnswer          = &Error{Kind: UnusedAnswer}
	ErrMalformedPlaceholder  = &Error{Kind: MalformedPlaceholder}
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case UnresolvedPlaceholder:
		return fmt.Sprintf("unresolved placeholder {%s} at offset %d", e.Key, e.Offset)
	case UnusedAnswer:
		return fmt.Sprintf("answer for %q is not used by any placeholder", e.Key)
	case MalformedPlaceholder:
		if e.Key != "" {
			return fmt.Sprintf("malformed placeholder {%s} at offset %d: %s", e.Key, e.Offset, e.Detail)
		}
		return fmt.Sprintf("malformed placeholder at offset %d: %s", e.Offset, e.Detail)
	default:
		return fmt.Sprintf("render error for %q", e.Key)
	}
}

// Is matches sentinels that carry a kind and no key.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Key == "" && t.Kind == e.Kind
}

// Render returns the skeleton of t with every placeholder replaced by its
// answer. Answers are inserted as literal text without escaping.
//
// It fails with UnresolvedPlaceholder for the first placeholder whose key is
// not a declared blank or has no answer, and afterwards with UnusedAnswer for
// the first answer no placeholder consumed: declared keys in blank order, then
// undeclared keys in sorted order. Neither t nor answers is modified.
func Render(t *madlib.Template, answers Answers) (string, error) {
	segments, err := Scan(t.Skeleton())
	if err != nil {
		return "", err
	}

	used := make(map[string]bool, len(answers))
	var sb strings.Builder
	for _, seg := range segments {
		if !seg.IsPlaceholder() {
			sb.WriteString(seg.Text)
			continue
		}
		value, ok := answers[seg.Key]
		if !ok || !t.HasKey(seg.Key) {
			return "", &Error{Kind: UnresolvedPlaceholder, Key: seg.Key, Offset: seg.Offset}
		}
		sb.WriteString(value)
		used[seg.Key] = true
	}

	if key, ok := firstUnused(t, answers, used); ok {
		return "", &Error{Kind: UnusedAnswer, Key: key, Offset: -1}
	}

	return sb.String(), nil
}

func firstUnused(t *madlib.Template, answers Answers, used map[string]bool) (string, bool) {
	for _, key := range t.Keys() {
		if _, ok := answers[key]; ok && !used[key] {
			return key, true
		}
	}

	var extra []string
	for key := range answers {
		if !t.HasKey(key) {
			extra = append(extra, key)
		}
	}
	if len(extra) == 0 {
		return "", false
	}
	sort.Strings(extra)
	return extra[0], true
}

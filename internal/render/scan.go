package render

import (
	"strings"

	"github.com/ariel-frischer/madlibs/internal/madlib"
)

// Segment is one piece of a scanned skeleton: either literal text, with brace
// escapes already resolved, or a placeholder.
type Segment struct {
	Text   string // literal text; empty for placeholders
	Key    string // placeholder key; empty for literal text
	Offset int    // byte offset of the segment in the skeleton
}

// IsPlaceholder reports whether the segment is a placeholder.
func (s Segment) IsPlaceholder() bool {
	return s.Key != ""
}

// Scan splits a skeleton into literal text and {key} placeholders. Literal
// braces are written doubled ("{{" and "}}"). A single "{" that does not open
// a well-formed placeholder, or a lone "}", is a MalformedPlaceholder error.
func Scan(skeleton string) ([]Segment, error) {
	var (
		segments []Segment
		literal  strings.Builder
		start    int
	)

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, Segment{Text: literal.String(), Offset: start})
			literal.Reset()
		}
	}

	for i := 0; i < len(skeleton); {
		c := skeleton[i]
		switch {
		case c == '{' && i+1 < len(skeleton) && skeleton[i+1] == '{':
			if literal.Len() == 0 {
				start = i
			}
			literal.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(skeleton) && skeleton[i+1] == '}':
			if literal.Len() == 0 {
				start = i
			}
			literal.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(skeleton[i+1:], '}')
			if end < 0 {
				return nil, &Error{Kind: MalformedPlaceholder, Offset: i, Detail: "unterminated placeholder"}
			}
			key := skeleton[i+1 : i+1+end]
			if !madlib.ValidKey(key) {
				return nil, &Error{Kind: MalformedPlaceholder, Key: key, Offset: i, Detail: "placeholder name is not a valid key"}
			}
			flush()
			segments = append(segments, Segment{Key: key, Offset: i})
			i += end + 2
		case c == '}':
			return nil, &Error{Kind: MalformedPlaceholder, Offset: i, Detail: `unmatched "}" (write "}}" for a literal brace)`}
		default:
			if literal.Len() == 0 {
				start = i
			}
			literal.WriteByte(c)
			i++
		}
	}
	flush()

	return segments, nil
}

// Placeholders returns the placeholder segments of a skeleton in order of
// appearance.
func Placeholders(skeleton string) ([]Segment, error) {
	segments, err := Scan(skeleton)
	if err != nil {
		return nil, err
	}
	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if s.IsPlaceholder() {
			out = append(out, s)
		}
	}
	return out, nil
}

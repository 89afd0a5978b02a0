// Package sanitize strips formatting artifacts that generative sources wrap
// around structured payloads, such as Markdown code fences and stray quotes.
package sanitize

import (
	"regexp"
	"strings"
)

// Fence is the Markdown code fence marker.
const Fence = "```"

// infoStringPattern matches the language tag that may follow an opening fence.
var infoStringPattern = regexp.MustCompile(`^[A-Za-z0-9_+.\-]*$`)

// bareTags are info strings recognized on a fenced segment that has no body.
var bareTags = map[string]bool{
	"json": true,
	"yaml": true,
	"yml":  true,
	"text": true,
}

// Sanitize trims raw and, when it opens with a code fence, returns the first
// non-empty fenced segment without its language tag line. One layer of
// matching quotes wrapped around an object or array is removed. When no
// fenced segment has content the trimmed input is returned. Sanitize never
// fails and Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, Fence) {
		if inner, ok := firstFencedSegment(cleaned); ok {
			cleaned = inner
		}
	}
	return unquote(cleaned)
}

// firstFencedSegment returns the first fenced body with content. Segments at
// odd positions of the split lie between an opening and a closing fence.
func firstFencedSegment(text string) (string, bool) {
	parts := strings.Split(text, Fence)
	for i := 1; i < len(parts); i += 2 {
		body := strings.TrimSpace(stripInfoString(parts[i]))
		if body != "" {
			return body, true
		}
	}
	return "", false
}

// stripInfoString drops the language tag line that follows an opening fence.
func stripInfoString(segment string) string {
	nl := strings.IndexByte(segment, '\n')
	if nl < 0 {
		if bareTags[strings.ToLower(strings.TrimSpace(segment))] {
			return ""
		}
		return segment
	}
	if infoStringPattern.MatchString(strings.TrimSpace(segment[:nl])) {
		return segment[nl+1:]
	}
	return segment
}

// unquote removes one pair of matching quote characters when they wrap an
// object or array literal.
func unquote(text string) string {
	if len(text) < 2 {
		return text
	}
	first, last := text[0], text[len(text)-1]
	if first != last || !isQuote(first) {
		return text
	}
	inner := strings.TrimSpace(text[1 : len(text)-1])
	if looksStructured(inner) {
		return inner
	}
	return text
}

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

func looksStructured(text string) bool {
	if len(text) < 2 {
		return false
	}
	switch text[0] {
	case '{':
		return text[len(text)-1] == '}'
	case '[':
		return text[len(text)-1] == ']'
	}
	return false
}

// Package payload parses sanitized source text into a generic structured
// value. It has no knowledge of templates: it only decides whether the text is
// syntactically valid and returns a positioned node tree for the contract
// validator to walk.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names the serialization a payload is expected in.
type Format string

const (
	// FormatJSON accepts strict JSON only. This is what the generation request asks for.
	FormatJSON Format = "json"
	// FormatYAML accepts any YAML document, JSON included.
	FormatYAML Format = "yaml"
)

// ValidFormat reports whether s names a supported format.
func ValidFormat(s string) bool {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return true
	}
	return false
}

// MalformedError reports a payload that is not syntactically valid.
type MalformedError struct {
	Format  Format
	Line    int // 1-based, 0 when unknown
	Column  int // 1-based, 0 when unknown
	Message string
	Err     error

	duplicate bool
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	var sb strings.Builder
	sb.WriteString("malformed ")
	sb.WriteString(string(e.Format))
	sb.WriteString(" payload")
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(" at line %d", e.Line))
		if e.Column > 0 {
			sb.WriteString(fmt.Sprintf(", column %d", e.Column))
		}
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// Unwrap returns the underlying decoder error.
func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Parse parses text as strict JSON.
func Parse(text string) (*yaml.Node, error) {
	return ParseAs(text, FormatJSON)
}

// ParseAs parses text in the given format and returns the root value node
// (never a document node).
func ParseAs(text string, format Format) (*yaml.Node, error) {
	switch format {
	case FormatJSON:
		return parseJSON(text)
	case FormatYAML:
		return parseYAML(text, FormatYAML)
	default:
		return nil, fmt.Errorf("unknown payload format: %q", format)
	}
}

// parseJSON checks the JSON grammar with encoding/json, then builds the
// positioned tree with yaml.v3, which reads any JSON document.
func parseJSON(text string) (*yaml.Node, error) {
	decoded, err := decodeJSON(text)
	if err != nil {
		return nil, err
	}

	node, err := parseYAML(text, FormatJSON)
	if err == nil {
		return node, nil
	}

	var malformed *MalformedError
	if errors.As(err, &malformed) && malformed.duplicate {
		return nil, err
	}

	// Valid JSON that yaml.v3 rejects (for example escaped surrogate pairs):
	// build the tree from the decoded value. Positions are lost.
	var fallback yaml.Node
	if encErr := fallback.Encode(decoded); encErr != nil {
		return nil, err
	}
	return &fallback, nil
}

func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	// Numbers stay text so out-of-range values are not a parse failure.
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MalformedError{Format: FormatJSON, Message: "payload is empty", Err: err}
		}
		return nil, jsonError(text, err)
	}

	// Anything after the top-level value is an error.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		offset := dec.InputOffset()
		line, column := lineColumn(text, offset)
		return nil, &MalformedError{
			Format:  FormatJSON,
			Line:    line,
			Column:  column,
			Message: "unexpected data after top-level value",
			Err:     err,
		}
	}

	return decoded, nil
}

func jsonError(text string, err error) *MalformedError {
	out := &MalformedError{Format: FormatJSON, Message: err.Error(), Err: err}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		out.Line, out.Column = lineColumn(text, syntaxErr.Offset)
		return out
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		out.Message = "unexpected end of payload"
		out.Line, out.Column = lineColumn(text, int64(len(text)))
	}
	return out
}

func parseYAML(text string, format Format) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, &MalformedError{
				Format:  format,
				Message: strings.Join(typeErr.Errors, "; "),
				Err:     err,
			}
		}
		line, column := extractLineColumn(err.Error())
		return nil, &MalformedError{
			Format:  format,
			Line:    line,
			Column:  column,
			Message: cleanYAMLError(err.Error()),
			Err:     err,
		}
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	if root.Kind == 0 || root.Kind == yaml.DocumentNode {
		return nil, &MalformedError{Format: format, Message: "payload is empty"}
	}
	if err := checkDuplicateKeys(root, format); err != nil {
		return nil, err
	}
	return root, nil
}

// checkDuplicateKeys rejects mappings that define the same key twice.
// Decoding into a yaml.Node does not perform this check.
func checkDuplicateKeys(node *yaml.Node, format Format) error {
	if node.Kind == yaml.MappingNode {
		seen := make(map[string]*yaml.Node, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if first, ok := seen[key.Value]; ok {
				return &MalformedError{
					Format:    format,
					Line:      key.Line,
					Column:    key.Column,
					Message:   fmt.Sprintf("mapping key %q already defined at line %d", key.Value, first.Line),
					duplicate: true,
				}
			}
			seen[key.Value] = key
		}
	}
	for _, child := range node.Content {
		if err := checkDuplicateKeys(child, format); err != nil {
			return err
		}
	}
	return nil
}

// lineColumn converts a byte offset into 1-based line and column numbers.
func lineColumn(text string, offset int64) (line, column int) {
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	if offset < 0 {
		offset = 0
	}
	prefix := text[:offset]
	line = strings.Count(prefix, "\n") + 1
	column = int(offset) - strings.LastIndexByte(prefix, '\n')
	return line, column
}

// extractLineColumn attempts to extract line and column numbers from a YAML error message.
// Returns 0, 0 if unable to extract.
func extractLineColumn(errMsg string) (line, column int) {
	// yaml.v3 errors look like: "yaml: line 5: could not find expected ':'"
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanYAMLError removes the "yaml: line X:" prefix from error messages for cleaner output.
func cleanYAMLError(errMsg string) string {
	if idx := strings.LastIndex(errMsg, ": "); idx > 0 && strings.HasPrefix(errMsg, "yaml:") {
		return errMsg[idx+2:]
	}
	return errMsg
}

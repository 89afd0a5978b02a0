// Package contract checks a parsed payload against the template contract and
// builds the immutable madlib.Template. Checks run in a fixed order and stop
// at the first violation so failure reasons are deterministic.
package contract

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/madlibs/internal/madlib"
	"gopkg.in/yaml.v3"
)

// Code is the category of a contract violation.
type Code string

const (
	CodeMissingField   Code = "missing-field"
	CodeUnknownField   Code = "unknown-field"
	CodeMalformedBlank Code = "malformed-blank"
	CodeBlankCount     Code = "blank-count"
	CodeDuplicateKey   Code = "duplicate-key"
	CodeBadKey         Code = "bad-key"
)

// Violation reports the first way a payload breaks the contract.
type Violation struct {
	Code     Code
	Subject  string // field name, blank index, count or key
	Path     string // field location (e.g., "blanks[2].key")
	Line     int    // 1-based line in the payload, 0 when unknown
	Column   int    // 1-based column in the payload, 0 when unknown
	Expected string
	Actual   string
	Hint     string
}

// Reason returns the "<code>:<subject>" reason string.
func (v *Violation) Reason() string {
	return string(v.Code) + ":" + v.Subject
}

// Error implements the error interface.
func (v *Violation) Error() string {
	var sb strings.Builder
	sb.WriteString("contract violation ")
	sb.WriteString(v.Reason())
	if v.Line > 0 {
		sb.WriteString(fmt.Sprintf(" (line %d", v.Line))
		if v.Column > 0 {
			sb.WriteString(fmt.Sprintf(":%d", v.Column))
		}
		sb.WriteString(")")
	}
	if v.Expected != "" {
		sb.WriteString(": expected ")
		sb.WriteString(v.Expected)
		if v.Actual != "" {
			sb.WriteString(", got ")
			sb.WriteString(v.Actual)
		}
	}
	return sb.String()
}

// FormatFull returns a detailed multi-line description of the violation.
func (v *Violation) FormatFull() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  Reason: %s\n", v.Reason()))
	if v.Line > 0 {
		sb.WriteString(fmt.Sprintf("  Line %d", v.Line))
		if v.Column > 0 {
			sb.WriteString(fmt.Sprintf(", Column %d", v.Column))
		}
		sb.WriteString("\n")
	}
	if v.Path != "" {
		sb.WriteString(fmt.Sprintf("  Path: %s\n", v.Path))
	}
	if v.Expected != "" {
		sb.WriteString(fmt.Sprintf("  Expected: %s\n", v.Expected))
	}
	if v.Actual != "" {
		sb.WriteString(fmt.Sprintf("  Got: %s\n", v.Actual))
	}
	if v.Hint != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", v.Hint))
	}
	return sb.String()
}

// Options tunes validation beyond the base contract.
type Options struct {
	// DisallowUnknownFields rejects top-level fields the schema does not declare.
	DisallowUnknownFields bool
}

// Validate checks root against TemplateSchema and bounds and returns the
// validated template. It returns a *Violation for payloads that break the
// contract, and a plain error when bounds itself is invalid.
func Validate(root *yaml.Node, bounds Bounds) (*madlib.Template, error) {
	return ValidateWithOptions(root, bounds, Options{})
}

// ValidateWithOptions is Validate with extra checks enabled by opts.
func ValidateWithOptions(root *yaml.Node, bounds Bounds, opts Options) (*madlib.Template, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	obj := rootMapping(root)

	// 1. Required top-level fields.
	title, err := expectString(obj, "title", "title")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title.Value) == "" {
		return nil, &Violation{
			Code:     CodeMissingField,
			Subject:  "title",
			Path:     "title",
			Line:     title.Line,
			Column:   title.Column,
			Expected: "non-empty string",
			Actual:   "empty string",
			Hint:     "Give the template a short descriptive title",
		}
	}
	blanksNode, err := expectField(obj, "blanks", "blanks", yaml.SequenceNode, FieldTypeArray)
	if err != nil {
		return nil, err
	}
	skeleton, err := expectString(obj, "skeleton", "skeleton")
	if err != nil {
		return nil, err
	}

	if opts.DisallowUnknownFields {
		if err := checkUnknownFields(obj); err != nil {
			return nil, err
		}
	}

	// 2. Blank shapes.
	blanks := make([]madlib.Blank, 0, len(blanksNode.Content))
	keyNodes := make([]*yaml.Node, 0, len(blanksNode.Content))
	for i, item := range blanksNode.Content {
		blank, keyNode, err := expectBlank(item, i)
		if err != nil {
			return nil, err
		}
		blanks = append(blanks, blank)
		keyNodes = append(keyNodes, keyNode)
	}

	// 3. Count bounds.
	if n := len(blanks); !bounds.Contains(n) {
		return nil, &Violation{
			Code:     CodeBlankCount,
			Subject:  fmt.Sprintf("%d", n),
			Path:     "blanks",
			Line:     blanksNode.Line,
			Column:   blanksNode.Column,
			Expected: fmt.Sprintf("between %d and %d blanks", bounds.Min, bounds.Max),
			Actual:   fmt.Sprintf("%d blanks", n),
			Hint:     "Request a new template; blank counts are never adjusted automatically",
		}
	}

	// 4. Unique keys.
	seen := make(map[string]bool, len(blanks))
	for i, b := range blanks {
		if seen[b.Key] {
			return nil, &Violation{
				Code:    CodeDuplicateKey,
				Subject: b.Key,
				Path:    fmt.Sprintf("blanks[%d].key", i),
				Line:    keyNodes[i].Line,
				Column:  keyNodes[i].Column,
				Hint:    fmt.Sprintf("Each blank needs its own key; %q is declared more than once", b.Key),
			}
		}
		seen[b.Key] = true
	}

	// 5. Key syntax.
	for i, b := range blanks {
		if !madlib.ValidKey(b.Key) {
			return nil, &Violation{
				Code:     CodeBadKey,
				Subject:  b.Key,
				Path:     fmt.Sprintf("blanks[%d].key", i),
				Line:     keyNodes[i].Line,
				Column:   keyNodes[i].Column,
				Expected: "letters, digits or underscores, not all digits",
				Actual:   fmt.Sprintf("%q", b.Key),
				Hint:     "Use a snake_case identifier such as silly_noun",
			}
		}
	}

	return madlib.New(title.Value, blanks, skeleton.Value), nil
}

// expectBlank checks that item is an object with string key and prompt.
func expectBlank(item *yaml.Node, index int) (madlib.Blank, *yaml.Node, error) {
	path := fmt.Sprintf("blanks[%d]", index)
	malformed := func(node *yaml.Node, expected string) error {
		at := orParent(node, item)
		return &Violation{
			Code:     CodeMalformedBlank,
			Subject:  fmt.Sprintf("%d", index),
			Path:     path,
			Line:     nodeLine(at),
			Column:   nodeColumn(at),
			Expected: expected,
			Actual:   describe(node),
			Hint:     `Each blank must look like {"key": "snake_case", "prompt": "A noun:"}`,
		}
	}

	if item.Kind != yaml.MappingNode {
		return madlib.Blank{}, nil, malformed(item, "object with string fields key and prompt")
	}
	key := findNode(item, "key")
	if !isString(key) {
		return madlib.Blank{}, nil, malformed(key, "string field key")
	}
	prompt := findNode(item, "prompt")
	if !isString(prompt) {
		return madlib.Blank{}, nil, malformed(prompt, "string field prompt")
	}
	return madlib.Blank{Key: key.Value, Prompt: prompt.Value}, key, nil
}

func checkUnknownFields(obj *yaml.Node) error {
	known := make(map[string]bool, len(TemplateSchema.Fields))
	for _, f := range TemplateSchema.Fields {
		known[f.Name] = true
	}
	for i := 0; i+1 < len(obj.Content); i += 2 {
		key := obj.Content[i]
		if !known[key.Value] {
			return &Violation{
				Code:    CodeUnknownField,
				Subject: key.Value,
				Path:    key.Value,
				Line:    key.Line,
				Column:  key.Column,
				Hint:    "Only title, blanks and skeleton are allowed at the top level",
			}
		}
	}
	return nil
}

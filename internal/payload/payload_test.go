// Package payload_test tests structural parsing of sanitized payloads.
// Related: internal/payload/payload.go
// Tags: payload, json, yaml, parsing, malformed, diagnostics
package payload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse_ValidJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		wantKind yaml.Kind
	}{
		"object": {
			text:     `{"title": "T", "blanks": [], "skeleton": "s"}`,
			wantKind: yaml.MappingNode,
		},
		"multi-line object with tabs": {
			text:     "{\n\t\"title\": \"T\",\n\t\"n\": 3\n}",
			wantKind: yaml.MappingNode,
		},
		"array": {
			text:     `[1, 2, 3]`,
			wantKind: yaml.SequenceNode,
		},
		"string scalar": {
			text:     `"hello"`,
			wantKind: yaml.ScalarNode,
		},
		"null": {
			text:     `null`,
			wantKind: yaml.ScalarNode,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			node, err := Parse(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, node.Kind)
		})
	}
}

func TestParse_KeepsPositions(t *testing.T) {
	t.Parallel()

	node, err := Parse("{\n  \"title\": \"T\",\n  \"skeleton\": \"s\"\n}")
	require.NoError(t, err)
	require.Equal(t, yaml.MappingNode, node.Kind)
	require.Len(t, node.Content, 4)

	assert.Equal(t, "skeleton", node.Content[2].Value)
	assert.Equal(t, 3, node.Content[2].Line)
	assert.Equal(t, "!!str", node.Content[1].ShortTag())
}

func TestParse_Scalars(t *testing.T) {
	t.Parallel()

	node, err := Parse(`{"s": "5", "n": 5, "b": true, "z": null}`)
	require.NoError(t, err)

	tags := map[string]string{}
	for i := 0; i < len(node.Content); i += 2 {
		tags[node.Content[i].Value] = node.Content[i+1].ShortTag()
	}
	assert.Equal(t, map[string]string{
		"s": "!!str",
		"n": "!!int",
		"b": "!!bool",
		"z": "!!null",
	}, tags)
}

func TestParse_OutOfRangeNumbers(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"huge exponent":  `{"title": "T", "n": 1e400, "blanks": [], "skeleton": ""}`,
		"huge integer":   `{"title": "T", "n": 123456789012345678901234567890}`,
		"with surrogate": `{"title": "\ud83c\udf89", "n": -1e400}`,
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			node, err := Parse(text)
			require.NoError(t, err)
			assert.Equal(t, yaml.MappingNode, node.Kind)
		})
	}
}

func TestParse_EscapedSurrogatePair(t *testing.T) {
	t.Parallel()

	node, err := Parse(`{"title": "Party \ud83c\udf89", "n": 1}`)
	require.NoError(t, err)
	require.Equal(t, yaml.MappingNode, node.Kind)

	values := map[string]string{}
	for i := 0; i < len(node.Content); i += 2 {
		values[node.Content[i].Value] = node.Content[i+1].Value
	}
	assert.Equal(t, "Party 🎉", values["title"])
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text        string
		wantLine    int
		wantMessage string
	}{
		"empty": {
			text:        "",
			wantMessage: "payload is empty",
		},
		"prose": {
			text:     "Sorry, I cannot help with that.",
			wantLine: 1,
		},
		"missing value on second line": {
			text:     "{\n  \"title\": ,\n  \"skeleton\": \"s\"\n}",
			wantLine: 2,
		},
		"truncated": {
			text:        `{"title": "T", "blanks": [`,
			wantMessage: "unexpected end of payload",
		},
		"trailing data": {
			text:        `{"title": "T"} {"title": "U"}`,
			wantMessage: "unexpected data after top-level value",
		},
		"single quotes are not JSON": {
			text:     `{'title': 'T'}`,
			wantLine: 1,
		},
		"yaml is not JSON": {
			text:     "title: T\nskeleton: s",
			wantLine: 1,
		},
		"duplicate key": {
			text:        "{\n\"title\": \"a\",\n\"title\": \"b\"}",
			wantLine:    3,
			wantMessage: `mapping key "title" already defined at line 2`,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			node, err := Parse(tc.text)
			require.Error(t, err)
			assert.Nil(t, node)

			var malformed *MalformedError
			require.True(t, errors.As(err, &malformed), "want *MalformedError, got %T", err)
			assert.Equal(t, FormatJSON, malformed.Format)
			if tc.wantLine > 0 {
				assert.Equal(t, tc.wantLine, malformed.Line)
			}
			if tc.wantMessage != "" {
				assert.Equal(t, tc.wantMessage, malformed.Message)
			}
			assert.Contains(t, err.Error(), "malformed json payload")
		})
	}
}

func TestParseAs_YAML(t *testing.T) {
	t.Parallel()

	node, err := ParseAs("title: T\nblanks:\n  - key: a\n    prompt: A\nskeleton: \"{a}\"\n", FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, yaml.MappingNode, node.Kind)
	assert.Equal(t, 2, node.Content[2].Line)
}

func TestParseAs_YAMLMalformed(t *testing.T) {
	t.Parallel()

	_, err := ParseAs("title: [unclosed\nskeleton: s\n", FormatYAML)
	require.Error(t, err)

	var malformed *MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, FormatYAML, malformed.Format)
	assert.NotEmpty(t, malformed.Message)
}

func TestParseAs_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := ParseAs("{}", Format("toml"))
	require.Error(t, err)

	var malformed *MalformedError
	assert.False(t, errors.As(err, &malformed))
}

func TestValidFormat(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidFormat("json"))
	assert.True(t, ValidFormat("yaml"))
	assert.False(t, ValidFormat("toml"))
	assert.False(t, ValidFormat(""))
}

func TestMalformedError_Error(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *MalformedError
		want string
	}{
		"with position": {
			err:  &MalformedError{Format: FormatJSON, Line: 3, Column: 7, Message: "bad"},
			want: "malformed json payload at line 3, column 7: bad",
		},
		"line only": {
			err:  &MalformedError{Format: FormatYAML, Line: 2, Message: "bad"},
			want: "malformed yaml payload at line 2: bad",
		},
		"no position": {
			err:  &MalformedError{Format: FormatJSON, Message: "payload is empty"},
			want: "malformed json payload: payload is empty",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestLineColumn(t *testing.T) {
	t.Parallel()

	text := "ab\ncde\nf"
	tests := map[string]struct {
		offset           int64
		wantLine, wantCo int
	}{
		"start":          {offset: 0, wantLine: 1, wantCo: 1},
		"first line":     {offset: 2, wantLine: 1, wantCo: 3},
		"second line":    {offset: 4, wantLine: 2, wantCo: 2},
		"past end clamp": {offset: 99, wantLine: 3, wantCo: 2},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			line, col := lineColumn(text, tc.offset)
			assert.Equal(t, tc.wantLine, line)
			assert.Equal(t, tc.wantCo, col)
		})
	}
}

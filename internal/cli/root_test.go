// Package cli_test runs madlibs commands end to end against saved templates.
// Related: internal/cli/root.go, internal/cli/game, internal/cli/templates, internal/cli/config
// Tags: cli, commands, exit-codes, integration
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/madlibs/internal/testutil"
)

type cmdResult struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, args ...string) cmdResult {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	code := run(context.Background(), cmd)
	return cmdResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRender(t *testing.T) {
	tests := map[string]struct {
		blanks    int
		answers   string
		noAnswers bool
		wantCode  int
		wantOut   string
		wantErr   string
	}{
		"complete answers": {
			blanks:   9,
			answers:  testutil.AnswersJSON(9),
			wantCode: ExitSuccess,
			wantOut:  testutil.Story(9),
		},
		"missing answer": {
			blanks:   9,
			answers:  testutil.AnswersJSON(8),
			wantCode: ExitInvalidArguments,
			wantErr:  "word8",
		},
		"unused answer": {
			blanks:   9,
			answers:  testutil.AnswersJSON(9, "bonus"),
			wantCode: ExitFailed,
			wantErr:  "bonus",
		},
		"too few blanks": {
			blanks:   7,
			answers:  testutil.AnswersJSON(7),
			wantCode: ExitFailed,
			wantErr:  "Template Error",
		},
		"no answers flag": {
			blanks:    9,
			noAnswers: true,
			wantCode:  ExitInvalidArguments,
			wantErr:   "render needs an answers file",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.IsolateHome(t)
			dir := t.TempDir()
			tmplPath := testutil.WriteFile(t, dir, "story.json", testutil.TemplateJSON(tc.blanks))

			args := []string{"render", tmplPath}
			if !tc.noAnswers {
				args = append(args, "--answers", testutil.WriteFile(t, dir, "answers.json", tc.answers))
			}

			res := execute(t, args...)
			assert.Equal(t, tc.wantCode, res.code, "stderr: %s", res.stderr)
			if tc.wantOut != "" {
				assert.Contains(t, res.stdout, "🎲 Title: The Day Off")
				assert.Contains(t, res.stdout, "Here is your completed Mad Lib:")
				assert.Contains(t, res.stdout, tc.wantOut)
			}
			if tc.wantErr != "" {
				assert.Contains(t, res.stderr, tc.wantErr)
			}
		})
	}
}

func TestRender_MalformedPayload(t *testing.T) {
	testutil.IsolateHome(t)
	dir := t.TempDir()
	tmplPath := testutil.WriteFile(t, dir, "story.json", `{"title": "x", "blanks": [`)
	answersPath := testutil.WriteFile(t, dir, "answers.json", `{}`)

	res := execute(t, "render", tmplPath, "--answers", answersPath)
	assert.Equal(t, ExitMalformedPayload, res.code)
	assert.NotContains(t, res.stdout, "Title:")
}

func TestRender_YAMLAnswers(t *testing.T) {
	testutil.IsolateHome(t)
	dir := t.TempDir()
	tmplPath := testutil.WriteFile(t, dir, "story.json", testutil.TemplateJSON(8))

	var sb strings.Builder
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&sb, "word%d: a%d\n", i, i)
	}
	answersPath := testutil.WriteFile(t, dir, "answers.yaml", sb.String())

	res := execute(t, "render", tmplPath, "--answers", answersPath, "--show-template")
	require.Equal(t, ExitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, `"skeleton"`)
	assert.Contains(t, res.stdout, testutil.Story(8))
}

func TestPlay_FromFile(t *testing.T) {
	testutil.IsolateHome(t)
	dir := t.TempDir()
	tmplPath := testutil.WriteFile(t, dir, "story.json", testutil.TemplateJSON(10))
	answersPath := testutil.WriteFile(t, dir, "answers.json", testutil.AnswersJSON(10))

	for _, args := range [][]string{
		{"play", "--from-file", tmplPath, "--answers", answersPath},
		{"--from-file", tmplPath, "--answers", answersPath},
	} {
		res := execute(t, args...)
		require.Equal(t, ExitSuccess, res.code, "args %v stderr: %s", args, res.stderr)
		assert.Contains(t, res.stdout, testutil.Story(10))
	}
}

func TestPlay_InvalidFlags(t *testing.T) {
	tests := map[string]struct {
		args    []string
		wantErr string
	}{
		"blanks out of bounds": {
			args:    []string{"play", "--blanks", "20"},
			wantErr: "20",
		},
		"model with saved template": {
			args:    []string{"play", "--from-file", "story.json", "--model", "gemini-2.5-pro"},
			wantErr: "--model",
		},
		"unknown format": {
			args:    []string{"play", "--format", "xml"},
			wantErr: "xml",
		},
		"unknown flag": {
			args:    []string{"play", "--nope"},
			wantErr: "nope",
		},
		"unknown command": {
			args:    []string{"bogus"},
			wantErr: "bogus",
		},
		"missing config file": {
			args:    []string{"play", "--config", "/does/not/exist.json"},
			wantErr: "exist.json",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.IsolateHome(t)

			res := execute(t, tc.args...)
			assert.Equal(t, ExitInvalidArguments, res.code)
			assert.Contains(t, res.stderr, tc.wantErr)
		})
	}
}

func TestPlay_RefusesTemplateThatCannotRender(t *testing.T) {
	tests := map[string]struct {
		skeleton string
		wantErr  string
	}{
		"key missing from skeleton": {
			skeleton: "{word0} {word1} {word2} {word3} {word4} {word5} {word6} {word7}",
			wantErr:  "unused-key",
		},
		"undeclared placeholder": {
			skeleton: "{word0} {word1} {word2} {word3} {word4} {word5} {word6} {word7} {word8} {extra}",
			wantErr:  "undeclared-placeholder",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.IsolateHome(t)
			dir := t.TempDir()

			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(testutil.TemplateJSON(9)), &doc))
			doc["skeleton"] = tc.skeleton
			data, err := json.Marshal(doc)
			require.NoError(t, err)
			tmplPath := testutil.WriteFile(t, dir, "story.json", string(data))

			// The answers file does not exist: refusing must happen before answers are read.
			res := execute(t, "play", "--from-file", tmplPath, "--answers", filepath.Join(dir, "missing.json"))
			assert.Equal(t, ExitFailed, res.code, "stderr: %s", res.stderr)
			assert.Contains(t, res.stderr, tc.wantErr)
			assert.NotContains(t, res.stdout, "Title:")
		})
	}
}

func TestPlay_NoAPIKey(t *testing.T) {
	testutil.IsolateHome(t)

	res := execute(t, "play")
	assert.Equal(t, ExitSourceFailed, res.code)
	assert.Contains(t, res.stderr, "GEMINI_API_KEY")
}

func TestPlay_MissingTemplateFile(t *testing.T) {
	testutil.IsolateHome(t)

	res := execute(t, "play", "--from-file", filepath.Join(t.TempDir(), "nope.json"), "--answers", "a.json")
	assert.Equal(t, ExitInvalidArguments, res.code)
	assert.Contains(t, res.stderr, "template not found")
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		files    map[string]string
		order    []string
		wantCode int
		wantOut  []string
	}{
		"all valid": {
			files:    map[string]string{"a.json": testutil.TemplateJSON(8), "b.json": testutil.TemplateJSON(10)},
			order:    []string{"a.json", "b.json"},
			wantCode: ExitSuccess,
			wantOut:  []string{`a.json: "The Day Off" (8 blanks`, `b.json: "The Day Off" (10 blanks`},
		},
		"first failure is malformed": {
			files:    map[string]string{"bad.json": "title: [", "few.json": testutil.TemplateJSON(3)},
			order:    []string{"bad.json", "few.json"},
			wantCode: ExitMalformedPayload,
			wantOut:  []string{"2 of 2 template(s) failed validation"},
		},
		"first failure is a violation": {
			files:    map[string]string{"ok.json": testutil.TemplateJSON(9), "few.json": testutil.TemplateJSON(3), "bad.json": "{"},
			order:    []string{"ok.json", "few.json", "bad.json"},
			wantCode: ExitFailed,
			wantOut:  []string{"ok.json", "few.json", "2 of 3 template(s) failed validation"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.IsolateHome(t)
			dir := t.TempDir()

			args := []string{"validate"}
			for _, file := range tc.order {
				args = append(args, testutil.WriteFile(t, dir, file, tc.files[file]))
			}

			res := execute(t, args...)
			assert.Equal(t, tc.wantCode, res.code, "stdout: %s", res.stdout)
			for _, want := range tc.wantOut {
				assert.Contains(t, res.stdout, want)
			}
		})
	}
}

func TestValidate_NoArgs(t *testing.T) {
	testutil.IsolateHome(t)

	res := execute(t, "validate")
	assert.Equal(t, ExitInvalidArguments, res.code)
	assert.Contains(t, res.stderr, "at least 1 argument")
}

func TestValidate_StrictFields(t *testing.T) {
	testutil.IsolateHome(t)
	dir := t.TempDir()

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(testutil.TemplateJSON(9)), &doc))
	doc["mood"] = "silly"
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := testutil.WriteFile(t, dir, "extra.json", string(data))

	res := execute(t, "validate", path)
	assert.Equal(t, ExitSuccess, res.code)

	res = execute(t, "validate", "--strict", path)
	assert.Equal(t, ExitFailed, res.code)
	assert.Contains(t, res.stdout, "mood")
}

func TestPrompt(t *testing.T) {
	testutil.IsolateHome(t)

	res := execute(t, "prompt", "--blanks", "8", "--theme", "space pirates")
	require.Equal(t, ExitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, "exactly 8")
	assert.Contains(t, res.stdout, "space pirates")

	res = execute(t, "prompt", "--blanks", "3")
	assert.Equal(t, ExitInvalidArguments, res.code)
}

func TestConfigCommands(t *testing.T) {
	home := testutil.IsolateHome(t)
	globalPath := filepath.Join(home, ".madlibs", "config.json")

	res := execute(t, "config", "path")
	require.Equal(t, ExitSuccess, res.code)
	assert.Equal(t, globalPath, strings.TrimSpace(res.stdout))

	res = execute(t, "config", "set", "blanks", "8")
	require.Equal(t, ExitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, "Set blanks = 8")
	assert.FileExists(t, globalPath)

	res = execute(t, "config", "set", "api_key", "hunter2")
	require.Equal(t, ExitSuccess, res.code, "stderr: %s", res.stderr)
	assert.NotContains(t, res.stdout, "hunter2")

	res = execute(t, "config", "show")
	require.Equal(t, ExitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, `"blanks": 8`)
	assert.NotContains(t, res.stdout, "hunter2")

	res = execute(t, "config", "set", "nope", "1")
	assert.Equal(t, ExitInvalidArguments, res.code)

	res = execute(t, "config", "set", "blanks", "many")
	assert.Equal(t, ExitInvalidArguments, res.code)

	res = execute(t, "config", "keys")
	require.Equal(t, ExitSuccess, res.code)
	for _, key := range []string{"Available configuration keys:", "model", "max_blanks", "enum (json, yaml)"} {
		assert.Contains(t, res.stdout, key)
	}
}

func TestConfigShow_LocalFile(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteFile(t, t.TempDir(), "madlibs.json", `{"theme": "pirates"}`)

	res := execute(t, "--config", path, "config", "show")
	require.Equal(t, ExitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, `"theme": "pirates"`)
}

func TestVersion(t *testing.T) {
	testutil.IsolateHome(t)

	res := execute(t, "version", "--plain")
	require.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "madlibs dev")
	assert.Contains(t, res.stdout, "platform:")

	res = execute(t, "v")
	require.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "Platform:")
}

func TestRootHelp(t *testing.T) {
	testutil.IsolateHome(t)

	res := execute(t, "--help")
	require.Equal(t, ExitSuccess, res.code)
	for _, want := range []string{"Play:", "Templates:", "Configuration:", "render", "validate"} {
		assert.Contains(t, res.stdout, want)
	}
}

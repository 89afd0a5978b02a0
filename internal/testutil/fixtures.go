// Package testutil provides test helpers for madlibs command and pipeline tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// apiKeyEnvVars lists the environment variables that could enable real Gemini calls.
var apiKeyEnvVars = []string{
	"GEMINI_API_KEY",
	"GOOGLE_API_KEY",
	"MADLIBS_API_KEY",
}

// IsolateHome points HOME at an empty temp directory and clears every
// MADLIBS_* and API key variable, so tests never read the developer's config
// or reach the network. Tests that use it cannot run in parallel.
func IsolateHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, kv := range os.Environ() {
		if key, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, "MADLIBS_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
	for _, key := range apiKeyEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

// WriteFile writes content to dir/name, creating dir if needed, and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// BlankKey returns the key TemplateJSON uses for blank i.
func BlankKey(i int) string {
	return fmt.Sprintf("word%d", i)
}

// TemplateJSON returns a JSON payload titled "The Day Off" with n blanks
// word0..word(n-1). The skeleton is every placeholder joined by a space.
func TemplateJSON(n int) string {
	blanks := make([]map[string]string, n)
	placeholders := make([]string, n)
	for i := range blanks {
		blanks[i] = map[string]string{"key": BlankKey(i), "prompt": "a noun"}
		placeholders[i] = "{" + BlankKey(i) + "}"
	}
	data, _ := json.Marshal(map[string]any{
		"title":    "The Day Off",
		"blanks":   blanks,
		"skeleton": strings.Join(placeholders, " "),
	})
	return string(data)
}

// AnswersJSON returns answers a0..a(n-1) for the first n blanks of
// TemplateJSON, plus an answer for each extra key.
func AnswersJSON(n int, extra ...string) string {
	values := make(map[string]string, n+len(extra))
	for i := 0; i < n; i++ {
		values[BlankKey(i)] = fmt.Sprintf("a%d", i)
	}
	for _, key := range extra {
		values[key] = "spare"
	}
	data, _ := json.Marshal(values)
	return string(data)
}

// Story returns the text TemplateJSON(n) renders to with AnswersJSON(n).
func Story(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("a%d", i)
	}
	return strings.Join(words, " ")
}

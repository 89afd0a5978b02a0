// Package contract_test tests non-fatal skeleton/key consistency findings.
// Related: internal/contract/lint.go
// Tags: contract, lint, placeholder, unused-key, drift
package contract

import (
	"testing"

	"github.com/ariel-frischer/madlibs/internal/madlib"
	"github.com/stretchr/testify/assert"
)

func lintTemplate(skeleton string, blanks ...madlib.Blank) *madlib.Template {
	return madlib.New("T", blanks, skeleton)
}

func codes(findings []Finding) []FindingCode {
	out := make([]FindingCode, len(findings))
	for i, f := range findings {
		out[i] = f.Code
	}
	return out
}

func TestLint(t *testing.T) {
	t.Parallel()

	a := madlib.Blank{Key: "a", Prompt: "A:"}
	b := madlib.Blank{Key: "b", Prompt: "B:"}
	c := madlib.Blank{Key: "c", Prompt: "C:"}

	tests := map[string]struct {
		tpl       *madlib.Template
		wantCodes []FindingCode
		wantKeys  []string
	}{
		"each key exactly once": {
			tpl:       lintTemplate("{a} {b} {c}", a, b, c),
			wantCodes: []FindingCode{},
			wantKeys:  []string{},
		},
		"unused key": {
			tpl:       lintTemplate("{a} {c}", a, b, c),
			wantCodes: []FindingCode{FindingUnusedKey},
			wantKeys:  []string{"b"},
		},
		"repeated placeholder": {
			tpl:       lintTemplate("{a} {b} {a} {c} {a}", a, b, c),
			wantCodes: []FindingCode{FindingRepeatedPlaceholder},
			wantKeys:  []string{"a"},
		},
		"undeclared placeholder reported once": {
			tpl:       lintTemplate("{ghost} {a} {b} {c} {ghost}", a, b, c),
			wantCodes: []FindingCode{FindingUndeclaredPlaceholder},
			wantKeys:  []string{"ghost"},
		},
		"malformed skeleton": {
			tpl:       lintTemplate("{a} {b", a, b),
			wantCodes: []FindingCode{FindingMalformedSkeleton},
			wantKeys:  []string{""},
		},
		"empty prompt": {
			tpl:       lintTemplate("{a} {b}", a, madlib.Blank{Key: "b", Prompt: "  "}),
			wantCodes: []FindingCode{FindingEmptyPrompt},
			wantKeys:  []string{"b"},
		},
		"findings ordered by kind": {
			tpl:       lintTemplate("{x} {a} {a}", a, b),
			wantCodes: []FindingCode{FindingUndeclaredPlaceholder, FindingRepeatedPlaceholder, FindingUnusedKey},
			wantKeys:  []string{"x", "a", "b"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			findings := Lint(tc.tpl)
			assert.Equal(t, tc.wantCodes, codes(findings))

			keys := make([]string, len(findings))
			for i, f := range findings {
				keys[i] = f.Key
			}
			assert.Equal(t, tc.wantKeys, keys)
		})
	}
}

func TestFinding_String(t *testing.T) {
	t.Parallel()

	f := Finding{Code: FindingUnusedKey, Key: "b", Message: `blank "b" is never used in the skeleton`}
	assert.Equal(t, `unused-key: blank "b" is never used in the skeleton`, f.String())
}

func TestFirstBlocking(t *testing.T) {
	t.Parallel()

	a := madlib.Blank{Key: "a", Prompt: "A:"}
	b := madlib.Blank{Key: "b", Prompt: ""}

	tests := map[string]struct {
		tpl      *madlib.Template
		wantCode FindingCode
		wantOK   bool
	}{
		"clean":                  {tpl: lintTemplate("{a} {b}", a, b)},
		"repeated is playable":   {tpl: lintTemplate("{a} {a} {b}", a, b)},
		"unused key":             {tpl: lintTemplate("{a}", a, b), wantCode: FindingUnusedKey, wantOK: true},
		"undeclared placeholder": {tpl: lintTemplate("{a} {b} {c}", a, b), wantCode: FindingUndeclaredPlaceholder, wantOK: true},
		"malformed skeleton":     {tpl: lintTemplate("{a} {b", a, b), wantCode: FindingMalformedSkeleton, wantOK: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f, ok := FirstBlocking(Lint(tc.tpl))
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantCode, f.Code)
		})
	}
}

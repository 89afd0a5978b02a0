// Package errors_test tests CLI error categories, constructors and wrapping.
// Related: internal/errors/errors.go
// Tags: errors, categories, wrap, unwrap
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testError is a helper for testing non-CLIError errors
type testError struct{}

func (e *testError) Error() string { return "test error" }

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		expected string
	}{
		"Argument":      {category: Argument, expected: "Argument Error"},
		"Configuration": {category: Configuration, expected: "Configuration Error"},
		"Prerequisite":  {category: Prerequisite, expected: "Prerequisite Error"},
		"Runtime":       {category: Runtime, expected: "Runtime Error"},
		"Contract":      {category: Contract, expected: "Template Error"},
		"Unknown":       {category: ErrorCategory(99), expected: "Error"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, tc.category.String())
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantSteps    int
	}{
		"argument":     {err: NewArgumentError("missing argument", "provide it", "see --help"), wantCategory: Argument, wantSteps: 2},
		"config":       {err: NewConfigError("config error", "check config file"), wantCategory: Configuration, wantSteps: 1},
		"prerequisite": {err: NewPrerequisiteError("missing file"), wantCategory: Prerequisite},
		"runtime":      {err: NewRuntimeError("generation failed", "try again"), wantCategory: Runtime, wantSteps: 1},
		"contract":     {err: NewContractError("bad template", "regenerate"), wantCategory: Contract, wantSteps: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantCategory, tc.err.Category)
			assert.Len(t, tc.err.Remediation, tc.wantSteps)
			assert.Equal(t, tc.err.Message, tc.err.Error())
			assert.Nil(t, tc.err.Unwrap())
		})
	}
}

func TestNewArgumentErrorWithUsage(t *testing.T) {
	t.Parallel()

	err := NewArgumentErrorWithUsage("invalid arg", "madlibs render FILE --answers PATH", "pass --answers")
	assert.Equal(t, Argument, err.Category)
	assert.Equal(t, "madlibs render FILE --answers PATH", err.Usage)
	assert.Equal(t, []string{"pass --answers"}, err.Remediation)
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, Runtime))

	cause := &testError{}
	wrapped := Wrap(cause, Runtime, "fix it")
	require.NotNil(t, wrapped)
	assert.Equal(t, Runtime, wrapped.Category)
	assert.Equal(t, "test error", wrapped.Message)
	assert.Equal(t, []string{"fix it"}, wrapped.Remediation)

	var target *testError
	assert.True(t, stderrors.As(wrapped, &target))
}

func TestWrapWithMessage(t *testing.T) {
	t.Parallel()

	assert.Nil(t, WrapWithMessage(nil, Runtime, "wrapper"))

	inner := &CLIError{Message: "inner"}
	wrapped := WrapWithMessage(inner, Contract, "outer")
	require.NotNil(t, wrapped)
	assert.Equal(t, Contract, wrapped.Category)
	assert.Equal(t, "outer: inner", wrapped.Message)
	assert.ErrorIs(t, wrapped, inner)
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	original := NewArgumentError("test")
	assert.Same(t, original, AsCLIError(original))
	assert.True(t, IsCLIError(original))

	chained := fmt.Errorf("context: %w", original)
	assert.Same(t, original, AsCLIError(chained))
	assert.True(t, IsCLIError(chained))

	assert.Nil(t, AsCLIError(&testError{}))
	assert.False(t, IsCLIError(&testError{}))
	assert.Nil(t, AsCLIError(nil))
}

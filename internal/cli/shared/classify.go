package shared

import (
	"context"
	"errors"

	"github.com/ariel-frischer/madlibs/internal/answers"
	"github.com/ariel-frischer/madlibs/internal/contract"
	clierrors "github.com/ariel-frischer/madlibs/internal/errors"
	"github.com/ariel-frischer/madlibs/internal/payload"
	"github.com/ariel-frischer/madlibs/internal/render"
	"github.com/ariel-frischer/madlibs/internal/source"
)

// Classify maps a command error to its exit code and the CLIError to print.
// The returned CLIError is nil when nothing should be printed.
func Classify(err error) (int, *clierrors.CLIError) {
	if err == nil {
		return ExitSuccess, nil
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code, nil
	}

	if errors.Is(err, answers.ErrAborted) || errors.Is(err, context.Canceled) {
		return ExitAborted, nil
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return exitCodeFor(err, cliErr.Category), cliErr
	}
	return exitCodeFor(err, -1), clierrors.Wrap(err, clierrors.Runtime)
}

// exitCodeFor checks known causes first, then the CLIError category.
// A negative category means err carried no CLIError.
func exitCodeFor(err error, category clierrors.ErrorCategory) int {
	var (
		malformed *payload.MalformedError
		violation *contract.Violation
		renderErr *render.Error
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeout
	case errors.Is(err, source.ErrEmptyResponse):
		return ExitSourceFailed
	case errors.As(err, &malformed):
		return ExitMalformedPayload
	case errors.As(err, &violation), errors.As(err, &renderErr):
		return ExitFailed
	case errors.Is(err, answers.ErrMissingAnswer):
		return ExitInvalidArguments
	}

	switch category {
	case clierrors.Argument, clierrors.Configuration, clierrors.Prerequisite:
		return ExitInvalidArguments
	case clierrors.Runtime:
		return ExitSourceFailed
	default:
		return ExitFailed
	}
}

package shared

import (
	"errors"
	"fmt"
	"os"

	"github.com/ariel-frischer/madlibs/internal/config"
	"github.com/ariel-frischer/madlibs/internal/contract"
	clierrors "github.com/ariel-frischer/madlibs/internal/errors"
	"github.com/ariel-frischer/madlibs/internal/payload"
	"github.com/ariel-frischer/madlibs/internal/pipeline"
)

// ReadPayload reads a saved template payload.
func ReadPayload(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", clierrors.FileNotFound("template", path)
		}
		return "", clierrors.Wrap(fmt.Errorf("reading %s: %w", path, err), clierrors.Prerequisite)
	}
	return string(data), nil
}

// PipelineOptions returns the validation options described by cfg.
func PipelineOptions(cfg *config.Configuration) pipeline.Options {
	return pipeline.Options{
		Request: cfg.PromptRequest(),
		Bounds:  cfg.Bounds(),
		Format:  cfg.PayloadFormat(),
		Strict:  cfg.StrictFields,
	}
}

// IsTemplateError reports whether err is a payload or contract failure.
func IsTemplateError(err error) bool {
	var (
		malformed *payload.MalformedError
		violation *contract.Violation
	)
	return errors.As(err, &malformed) || errors.As(err, &violation)
}

// TemplateError converts a payload or contract failure into a CLIError.
// Other errors are returned unchanged.
func TemplateError(source string, err error) error {
	var malformed *payload.MalformedError
	if errors.As(err, &malformed) {
		return clierrors.MalformedPayload(source, err)
	}
	var violation *contract.Violation
	if errors.As(err, &violation) {
		return clierrors.TemplateRejected(source, violation.Hint, err)
	}
	return err
}

package errors

import (
	"fmt"
)

// Common CLI error constructors. Each returns a CLIError with remediation
// steps the user can follow from the terminal.

// ConfigParseError is returned when the configuration cannot be loaded.
func ConfigParseError(path string, err error) *CLIError {
	source := path
	if source == "" {
		source = "~/.madlibs/config.json or MADLIBS_* environment"
	}
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to load configuration from %s: %v", source, err),
		Remediation: []string{
			"Check the file is valid JSON",
			"Run 'madlibs config keys' to list valid keys and types",
			"Run 'madlibs config show' to see the effective configuration",
		},
		Err: err,
	}
}

// InvalidBlankCount is returned when --blanks falls outside the configured bounds.
func InvalidBlankCount(count int, bounds string) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("blank count must be between %s, got %d", bounds, count),
		Usage:    "madlibs play --blanks N",
		Remediation: []string{
			fmt.Sprintf("Pass a --blanks value in %s", bounds),
			"Or change min_blanks/max_blanks with 'madlibs config set'",
		},
	}
}

// InvalidFlagCombination is returned when flags conflict.
func InvalidFlagCombination(flags, reason string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Message:     fmt.Sprintf("invalid flag combination %s: %s", flags, reason),
		Remediation: []string{"Run 'madlibs help' for valid flag usage"},
	}
}

// FileNotFound is returned when an input file does not exist.
func FileNotFound(kind, path string) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("%s not found: %s", kind, path),
		Remediation: []string{
			"Check the path is correct",
		},
	}
}

// SourceSetupFailed is returned when the Gemini client cannot be created.
func SourceSetupFailed(err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("cannot reach Gemini: %v", err),
		Remediation: []string{
			"Set GEMINI_API_KEY (or GOOGLE_API_KEY) in your environment",
			"Or run 'madlibs config set api_key <key>'",
			"Use --from-file to play with a saved template instead",
		},
		Err: err,
	}
}

// SourceFailed is returned when the generator call fails.
func SourceFailed(model string, err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("template generation with %s failed: %v", model, err),
		Remediation: []string{
			"Check your network connection and API key",
			"Try again, or choose another model with --model",
		},
		Err: err,
	}
}

// EmptyResponse is returned when the generator returns no text.
func EmptyResponse(model string, err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("%s returned an empty response", model),
		Remediation: []string{
			"Try again; empty responses are usually transient",
			"Try a different --theme or --model",
		},
		Err: err,
	}
}

// TimeoutError is returned when the generator does not answer in time.
func TimeoutError(timeout, model string, err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("%s did not respond within %s", model, timeout),
		Remediation: []string{
			"Raise the limit with 'madlibs config set timeout <seconds>'",
			"Or set MADLIBS_TIMEOUT for a single run",
		},
		Err: err,
	}
}

// MalformedPayload is returned when the template text is not valid JSON/YAML.
func MalformedPayload(source string, err error) *CLIError {
	return &CLIError{
		Category: Contract,
		Message:  fmt.Sprintf("%s is not a valid template payload: %v", source, err),
		Remediation: []string{
			"Generate a new template, the generator sometimes adds prose around the JSON",
			"Run 'madlibs validate <file>' on a saved payload for line and column details",
		},
		Err: err,
	}
}

// TemplateRejected is returned when the payload parses but breaks the contract.
// detail, when set, is listed as the first remediation step.
func TemplateRejected(source, detail string, err error) *CLIError {
	remediation := []string{"Generate a new template"}
	if detail != "" {
		remediation = append([]string{detail}, remediation...)
	}
	return &CLIError{
		Category:    Contract,
		Message:     fmt.Sprintf("%s was rejected: %v", source, err),
		Remediation: remediation,
		Err:         err,
	}
}

// TemplateUnplayable is returned before any answers are collected when the
// template's skeleton and blanks cannot render together.
func TemplateUnplayable(finding string) *CLIError {
	return &CLIError{
		Category: Contract,
		Message:  fmt.Sprintf("template cannot be completed: %s", finding),
		Remediation: []string{
			"Use every blank key exactly once in the skeleton",
			"Run 'madlibs validate FILE' to list all findings",
			"Generate a new template",
		},
	}
}

// RenderFailed is returned when answers cannot be substituted into the story.
func RenderFailed(err error) *CLIError {
	return &CLIError{
		Category: Contract,
		Message:  fmt.Sprintf("cannot complete the story: %v", err),
		Remediation: []string{
			"Make sure every blank has exactly one answer",
			"Remove answers for keys the template does not declare",
		},
		Err: err,
	}
}

// MissingAnswer is returned when an answers file lacks a blank.
func MissingAnswer(path string, err error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("%s: %v", path, err),
		Remediation: []string{
			"Add an entry for every blank key to the answers file",
			"Or omit --answers to fill in the blanks interactively",
		},
		Err: err,
	}
}

// AnswersFileError is returned when an answers file cannot be read.
func AnswersFileError(path string, err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("cannot read answers from %s: %v", path, err),
		Remediation: []string{
			`Answers files are flat JSON or YAML objects, e.g. {"animal": "otter"}`,
		},
		Err: err,
	}
}

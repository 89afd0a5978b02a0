package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateConfigValues checks constraints spanning more than one field.
// Returns nil if valid, or a ValidationError with field information if invalid.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	bounds := cfg.Bounds()
	if err := bounds.Validate(); err != nil {
		return &ValidationError{
			FilePath: filePath,
			Field:    "max_blanks",
			Message:  fmt.Sprintf("must be at least min_blanks (%d)", cfg.MinBlanks),
		}
	}

	if cfg.Blanks != 0 && !bounds.Contains(cfg.Blanks) {
		return &ValidationError{
			FilePath: filePath,
			Field:    "blanks",
			Message:  fmt.Sprintf("must be between %d and %d (or 0 for any)", bounds.Min, bounds.Max),
		}
	}

	if cfg.MaxWords < cfg.MinWords {
		return &ValidationError{
			FilePath: filePath,
			Field:    "max_words",
			Message:  fmt.Sprintf("must be at least min_words (%d)", cfg.MinWords),
		}
	}

	return nil
}

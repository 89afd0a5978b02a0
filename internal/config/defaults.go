package config

import (
	"github.com/ariel-frischer/madlibs/internal/contract"
	"github.com/ariel-frischer/madlibs/internal/payload"
	"github.com/ariel-frischer/madlibs/internal/prompt"
	"github.com/ariel-frischer/madlibs/internal/source"
)

// DefaultBlanks is the blank count requested when none is configured.
const DefaultBlanks = 9

// DefaultTimeout is the source timeout in seconds.
const DefaultTimeout = 60

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"model":         source.DefaultModel,
		"api_key":       "",
		"min_blanks":    contract.DefaultBounds.Min,
		"max_blanks":    contract.DefaultBounds.Max,
		"blanks":        DefaultBlanks,
		"theme":         "",
		"min_words":     prompt.DefaultMinWords,
		"max_words":     prompt.DefaultMaxWords,
		"format":        string(payload.FormatJSON),
		"timeout":       DefaultTimeout,
		"show_template": false,
		"strict_fields": false,
	}
}

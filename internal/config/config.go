package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/madlibs/internal/contract"
	"github.com/ariel-frischer/madlibs/internal/payload"
	"github.com/ariel-frischer/madlibs/internal/prompt"
)

// EnvPrefix prefixes every environment override, e.g. MADLIBS_MAX_BLANKS.
const EnvPrefix = "MADLIBS_"

// Configuration represents the madlibs CLI configuration
type Configuration struct {
	Model        string `koanf:"model" json:"model" validate:"required"`
	APIKey       string `koanf:"api_key" json:"api_key"`
	MinBlanks    int    `koanf:"min_blanks" json:"min_blanks" validate:"min=1,max=100"`
	MaxBlanks    int    `koanf:"max_blanks" json:"max_blanks" validate:"min=1,max=100,gtefield=MinBlanks"`
	Blanks       int    `koanf:"blanks" json:"blanks" validate:"omitempty,min=1,max=100"` // 0 asks for any count within bounds
	Theme        string `koanf:"theme" json:"theme"`
	MinWords     int    `koanf:"min_words" json:"min_words" validate:"min=1"`
	MaxWords     int    `koanf:"max_words" json:"max_words" validate:"min=1,gtefield=MinWords"`
	Format       string `koanf:"format" json:"format" validate:"oneof=json yaml"`
	Timeout      int    `koanf:"timeout" json:"timeout" validate:"omitempty,min=1,max=3600"` // seconds; 0 disables
	ShowTemplate bool   `koanf:"show_template" json:"show_template"`
	StrictFields bool   `koanf:"strict_fields" json:"strict_fields"`
}

// GlobalConfigPath returns the path of the per-user config file.
func GlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(homeDir, ".madlibs", "config.json"), nil
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if globalPath, err := GlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath != "" {
		localConfigPath = expandHomePath(localConfigPath)
		if _, err := os.Stat(localConfigPath); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
		if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
	}

	// Environment variables win over every file.
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := ValidateConfigValues(&cfg, configSource(localConfigPath)); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func configSource(localConfigPath string) string {
	if localConfigPath != "" {
		return localConfigPath
	}
	return "config"
}

// Bounds returns the blank-count bounds shared by request shaping and validation.
func (c *Configuration) Bounds() contract.Bounds {
	return contract.Bounds{Min: c.MinBlanks, Max: c.MaxBlanks}
}

// PromptRequest returns the generation request described by the configuration.
func (c *Configuration) PromptRequest() prompt.Request {
	return prompt.Request{
		Bounds:   c.Bounds(),
		Count:    c.Blanks,
		Theme:    c.Theme,
		MinWords: c.MinWords,
		MaxWords: c.MaxWords,
	}
}

// PayloadFormat returns the payload format expected from the source.
func (c *Configuration) PayloadFormat() payload.Format {
	return payload.Format(c.Format)
}

// TimeoutDuration returns the source timeout, or 0 when disabled.
func (c *Configuration) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Redacted returns a copy safe to print, with the API key masked.
func (c *Configuration) Redacted() Configuration {
	out := *c
	if out.APIKey != "" {
		out.APIKey = "********"
	}
	return out
}

// envTransform converts environment variable names to config keys
// Example: MADLIBS_MAX_BLANKS -> max_blanks
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

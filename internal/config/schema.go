package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Key name as written in config.json
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Secret        bool            // Masked when printed
}

// KnownKeys is the registry of all known configuration keys with their schemas.
// Defaults live in GetDefaults.
var KnownKeys = map[string]ConfigKeySchema{
	"model": {
		Path:        "model",
		Type:        TypeString,
		Description: "Gemini model that generates templates",
	},
	"api_key": {
		Path:        "api_key",
		Type:        TypeString,
		Description: "Gemini API key (falls back to GEMINI_API_KEY or GOOGLE_API_KEY)",
		Secret:      true,
	},
	"min_blanks": {
		Path:        "min_blanks",
		Type:        TypeInt,
		Description: "Fewest blanks a template may declare",
	},
	"max_blanks": {
		Path:        "max_blanks",
		Type:        TypeInt,
		Description: "Most blanks a template may declare",
	},
	"blanks": {
		Path:        "blanks",
		Type:        TypeInt,
		Description: "Exact blank count to request (0 requests any count within bounds)",
	},
	"theme": {
		Path:        "theme",
		Type:        TypeString,
		Description: "Story theme passed to the generator",
	},
	"min_words": {
		Path:        "min_words",
		Type:        TypeInt,
		Description: "Shortest story skeleton to request, in words",
	},
	"max_words": {
		Path:        "max_words",
		Type:        TypeInt,
		Description: "Longest story skeleton to request, in words",
	},
	"format": {
		Path:          "format",
		Type:          TypeEnum,
		AllowedValues: []string{"json", "yaml"},
		Description:   "Payload format requested from the generator",
	},
	"timeout": {
		Path:        "timeout",
		Type:        TypeInt,
		Description: "Seconds to wait for the generator (0 disables the timeout)",
	},
	"show_template": {
		Path:        "show_template",
		Type:        TypeBool,
		Description: "Print the validated template as JSON before playing",
	},
	"strict_fields": {
		Path:        "strict_fields",
		Type:        TypeBool,
		Description: "Reject payloads with unknown top-level fields",
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the known key names in lexical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeInt:
		return parseIntValue(value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

func parseIntValue(value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	if n < 0 {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q (must not be negative)", value)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}

func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if value == allowed {
			return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}

package contract

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldType represents the expected type of a schema field.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeArray  FieldType = "array"
	FieldTypeObject FieldType = "object"
)

// SchemaField defines a field of the template payload.
type SchemaField struct {
	Name        string        // Field name in the payload
	Type        FieldType     // Expected type
	Required    bool          // Whether field must be present
	Pattern     string        // Documented pattern for string values (optional)
	Description string        // Human-readable description
	Children    []SchemaField // Fields of each element for array types
}

// Schema describes the complete payload contract.
type Schema struct {
	Description string
	Fields      []SchemaField
}

// KeyPattern documents the blank key syntax; madlib.ValidKey enforces it.
const KeyPattern = `^[A-Za-z0-9_]+$ (not all digits)`

// TemplateSchema is the contract a generated payload must satisfy. Fields are
// checked in the order listed.
var TemplateSchema = Schema{
	Description: "Story template with a title, ordered blanks, and a skeleton containing {key} placeholders",
	Fields: []SchemaField{
		{
			Name:        "title",
			Type:        FieldTypeString,
			Required:    true,
			Description: "Short descriptive title (non-empty)",
		},
		{
			Name:        "blanks",
			Type:        FieldTypeArray,
			Required:    true,
			Description: "Ordered fill-in slots presented to the player",
			Children: []SchemaField{
				{Name: "key", Type: FieldTypeString, Required: true, Pattern: KeyPattern, Description: "Placeholder name, unique within the template"},
				{Name: "prompt", Type: FieldTypeString, Required: true, Description: "Instruction shown when asking for the value"},
			},
		},
		{
			Name:        "skeleton",
			Type:        FieldTypeString,
			Required:    true,
			Description: "Story text containing {key} placeholders; literal braces are doubled",
		},
	},
}

// Bounds is the closed range of blank counts a template may declare. The same
// value configures the generation request and the validator.
type Bounds struct {
	Min int `validate:"min=1"`
	Max int `validate:"gtefield=Min"`
}

// DefaultBounds is the 8-10 blank range of the classic game.
var DefaultBounds = Bounds{Min: 8, Max: 10}

var validate = validator.New()

// Validate checks that the bounds describe a non-empty range of positive counts.
func (b Bounds) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("invalid blank bounds %d-%d: %w", b.Min, b.Max, err)
	}
	return nil
}

// Contains reports whether n lies within the bounds.
func (b Bounds) Contains(n int) bool {
	return b.Min <= n && n <= b.Max
}

// String formats the bounds as "min-max".
func (b Bounds) String() string {
	if b.Min == b.Max {
		return fmt.Sprintf("%d", b.Min)
	}
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

package contract

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rootMapping returns the top-level mapping node, or nil when the payload is
// not an object.
func rootMapping(root *yaml.Node) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		return rootMapping(root.Content[0])
	}
	if root.Kind == yaml.MappingNode {
		return root
	}
	return nil
}

// findNode finds a value node by key in a mapping node.
func findNode(obj *yaml.Node, key string) *yaml.Node {
	if obj == nil || obj.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(obj.Content); i += 2 {
		if obj.Content[i].Value == key {
			return obj.Content[i+1]
		}
	}
	return nil
}

// expectField returns the named field of obj when it has the expected node
// kind, or a missing-field violation.
func expectField(obj *yaml.Node, name, path string, kind yaml.Kind, fieldType FieldType) (*yaml.Node, error) {
	node := findNode(obj, name)
	if node != nil && node.Kind == kind {
		return node, nil
	}
	return nil, missingField(obj, node, name, path, fieldType)
}

// expectString returns the named field of obj when it is a string scalar, or
// a missing-field violation.
func expectString(obj *yaml.Node, name, path string) (*yaml.Node, error) {
	node := findNode(obj, name)
	if isString(node) {
		return node, nil
	}
	return nil, missingField(obj, node, name, path, FieldTypeString)
}

func missingField(obj, node *yaml.Node, name, path string, fieldType FieldType) *Violation {
	v := &Violation{
		Code:     CodeMissingField,
		Subject:  name,
		Path:     path,
		Expected: string(fieldType),
	}
	switch {
	case obj == nil:
		v.Expected = "object with fields title, blanks and skeleton"
		v.Actual = "not an object"
		v.Hint = "The payload must be a single JSON object"
	case node == nil:
		v.Line = obj.Line
		v.Column = obj.Column
		v.Actual = "absent"
		v.Hint = fmt.Sprintf("Add the '%s' field to the payload", name)
	default:
		v.Line = node.Line
		v.Column = node.Column
		v.Actual = describe(node)
		v.Hint = fmt.Sprintf("Change '%s' to be a %s", path, fieldType)
	}
	return v
}

// isString reports whether node is a string scalar.
func isString(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str"
}

// describe names the type of node for error messages.
func describe(node *yaml.Node) string {
	if node == nil {
		return "absent"
	}
	switch node.Kind {
	case yaml.MappingNode:
		return "object"
	case yaml.SequenceNode:
		return "array"
	case yaml.AliasNode:
		return "alias"
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!str":
			return "string"
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		case "!!null":
			return "null"
		}
		return "scalar"
	default:
		return "unknown"
	}
}

func orParent(node, parent *yaml.Node) *yaml.Node {
	if node != nil {
		return node
	}
	return parent
}

func nodeLine(node *yaml.Node) int {
	if node == nil {
		return 0
	}
	return node.Line
}

func nodeColumn(node *yaml.Node) int {
	if node == nil {
		return 0
	}
	return node.Column
}

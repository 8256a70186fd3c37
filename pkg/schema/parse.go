package schema

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

const fieldsKey = "fields"

// Parse decodes a JSON or YAML schema document. The document is either a
// mapping of field name to config, the same mapping nested under "fields"
// (other top-level keys are ignored), or a "fields" list whose entries carry
// their own "name". JSON is valid YAML, so
// both formats share the same decoder and keep declaration order.
func Parse(data []byte) (*Schema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema: document root must be a mapping (line %d)", root.Line)
	}
	if nested := lookupKey(root, fieldsKey); nested != nil {
		root = nested
	}

	s := &Schema{index: make(map[string]int)}
	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, value := root.Content[i], root.Content[i+1]
			cfg, err := decodeField(value)
			if err != nil {
				return nil, fmt.Errorf("schema: field %q: %w", key.Value, err)
			}
			cfg.Name = key.Value
			if err := s.Add(cfg); err != nil {
				return nil, err
			}
		}
	case yaml.SequenceNode:
		for _, item := range root.Content {
			cfg, err := decodeField(item)
			if err != nil {
				return nil, fmt.Errorf("schema: field at line %d: %w", item.Line, err)
			}
			if err := s.Add(cfg); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("schema: %q must be a mapping or list (line %d)", fieldsKey, root.Line)
	}
	return s, nil
}

// LoadFile reads and parses a schema document from disk.
func LoadFile(filename string) (*Schema, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", filename, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, filename)
	}
	return s, nil
}

// LoadFS reads and parses a schema document from fsys.
func LoadFS(fsys fs.FS, name string) (*Schema, error) {
	if fsys == nil {
		return nil, fmt.Errorf("schema: file system is nil")
	}
	data, err := fs.ReadFile(fsys, path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", name, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, name)
	}
	return s, nil
}

func decodeField(node *yaml.Node) (FieldConfig, error) {
	var cfg FieldConfig
	switch node.Kind {
	case yaml.MappingNode:
		if err := node.Decode(&cfg); err != nil {
			return FieldConfig{}, err
		}
	case yaml.ScalarNode:
		// Shorthand "email: email" declares only the type.
		cfg.Type = FieldType(node.Value)
	default:
		return FieldConfig{}, fmt.Errorf("expected mapping (line %d)", node.Line)
	}
	return cfg, nil
}

func lookupKey(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != key {
			continue
		}
		value := mapping.Content[i+1]
		if value.Kind == yaml.SequenceNode {
			return value
		}
		if value.Kind == yaml.MappingNode && !isFieldConfig(value) {
			return value
		}
	}
	return nil
}

// isFieldConfig reports whether mapping reads as a single field config rather
// than a set of field configs, so a field called "fields" still parses. A set
// may contain fields named "type" or "validate"; in a single config "type" is
// a scalar and "validate" holds only rule keys.
func isFieldConfig(mapping *yaml.Node) bool {
	typeNode := lookupValue(mapping, "type")
	validateNode := lookupValue(mapping, "validate")
	if typeNode == nil && validateNode == nil {
		return false
	}
	if typeNode != nil && typeNode.Kind != yaml.ScalarNode {
		return false
	}
	if validateNode != nil && !isRuleBlock(validateNode) {
		return false
	}
	if typeNode != nil {
		// Shorthand sets look like "type: select" too; a single config never
		// has every value as a bare scalar naming a field type.
		return !allTypeShorthands(mapping)
	}
	return true
}

func isRuleBlock(node *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "required", "min", "max", "pattern", "format", "options", "callback", "messages":
		default:
			return false
		}
	}
	return true
}

func allTypeShorthands(mapping *yaml.Node) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		value := mapping.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return false
		}
		if _, err := normalizeType(FieldType(value.Value)); err != nil {
			return false
		}
	}
	return true
}

func lookupValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

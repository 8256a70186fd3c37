package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options is the ordered option list of a choice field. In documents it can be
// written as a list of {value, label} objects, a list of scalars, or a mapping
// of value to label.
type Options []Option

// UnmarshalYAML accepts the three option layouts while keeping document order.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(Options, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("options: value for %q must be a scalar label", key.Value)
			}
			out = append(out, Option{Value: key.Value, Label: value.Value})
		}
		*o = out
		return nil
	case yaml.SequenceNode:
		out := make(Options, 0, len(node.Content))
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				out = append(out, Option{Value: item.Value, Label: item.Value})
			case yaml.MappingNode:
				var opt Option
				if err := item.Decode(&opt); err != nil {
					return fmt.Errorf("options: %w", err)
				}
				out = append(out, opt)
			default:
				return fmt.Errorf("options: unsupported item at line %d", item.Line)
			}
		}
		*o = out
		return nil
	case yaml.ScalarNode:
		if strings.TrimSpace(node.Value) == "" || node.Tag == "!!null" {
			*o = nil
			return nil
		}
	}
	return fmt.Errorf("options: expected list or mapping at line %d", node.Line)
}

// Values returns the option values in order.
func (o Options) Values() []string {
	if len(o) == 0 {
		return nil
	}
	out := make([]string, 0, len(o))
	for _, opt := range o {
		out = append(out, opt.Value)
	}
	return out
}

// Label returns the label for value, falling back to the value itself.
func (o Options) Label(value string) string {
	for _, opt := range o {
		if opt.Value == value {
			if opt.Label != "" {
				return opt.Label
			}
			return opt.Value
		}
	}
	return value
}

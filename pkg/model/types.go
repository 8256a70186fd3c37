package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/schema"
)

// Field is a schema entry with its value resolved.
type Field struct {
	Name        string            `json:"name"`
	Type        schema.FieldType  `json:"type"`
	ID          string            `json:"id"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Class       string            `json:"class,omitempty"`
	Required    bool              `json:"required"`
	Value       any               `json:"value,omitempty"`
	Options     schema.Options    `json:"options,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Errors      []string          `json:"errors,omitempty"`

	Config schema.FieldConfig `json:"-"`
}

// Form is the ordered set of fields built from a schema.
type Form struct {
	Fields []Field `json:"fields"`
}

// Field returns the field named name.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// HasErrors reports whether any field carries an error.
func (f Form) HasErrors() bool {
	for _, field := range f.Fields {
		if len(field.Errors) > 0 {
			return true
		}
	}
	return false
}

// InputName is the name attribute the control submits under. Multi-valued
// fields submit name[] so PHP-style and url.Values consumers agree.
func (f Field) InputName() string {
	if f.Type.Multiple() && !strings.HasSuffix(f.Name, "[]") {
		return f.Name + "[]"
	}
	return f.Name
}

// String renders the value for single-valued controls.
func (f Field) String() string {
	return stringify(f.Value)
}

// Strings renders the value as a list, for multi-valued controls.
func (f Field) Strings() []string {
	switch typed := f.Value.(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), typed...)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, stringify(item))
		}
		return out
	case string:
		if typed == "" {
			return nil
		}
		return strings.Split(typed, ",")
	default:
		return []string{stringify(typed)}
	}
}

// Selected reports whether option value is part of the field value.
func (f Field) Selected(value string) bool {
	if f.Type.Multiple() {
		for _, item := range f.Strings() {
			if item == value {
				return true
			}
		}
		return false
	}
	return f.String() == value
}

// Checked reports whether a single checkbox is ticked.
func (f Field) Checked() bool {
	switch typed := f.Value.(type) {
	case nil:
		return false
	case bool:
		return typed
	default:
		value := stringify(typed)
		if value == "" || value == "0" || strings.EqualFold(value, "false") {
			return false
		}
		return f.Config.CheckedValue == "" || value == f.Config.CheckedValue || value == "1" || strings.EqualFold(value, "true") || strings.EqualFold(value, "on")
	}
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "1"
		}
		return ""
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case []string:
		return strings.Join(typed, ",")
	default:
		return fmt.Sprint(typed)
	}
}

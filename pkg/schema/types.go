package schema

import (
	"context"
	"fmt"
	"strconv"
)

// FieldType enumerates the controls the HTML renderer knows how to draw.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeEmail       FieldType = "email"
	FieldTypeURL         FieldType = "url"
	FieldTypeTel         FieldType = "tel"
	FieldTypeNumber      FieldType = "number"
	FieldTypePassword    FieldType = "password"
	FieldTypeHidden      FieldType = "hidden"
	FieldTypeDate        FieldType = "date"
	FieldTypeColor       FieldType = "color"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeCheckboxes  FieldType = "checkboxes"
	FieldTypeEditor      FieldType = "editor"
)

var knownTypes = map[FieldType]struct{}{
	FieldTypeText: {}, FieldTypeTextarea: {}, FieldTypeEmail: {}, FieldTypeURL: {},
	FieldTypeTel: {}, FieldTypeNumber: {}, FieldTypePassword: {}, FieldTypeHidden: {},
	FieldTypeDate: {}, FieldTypeColor: {}, FieldTypeSelect: {}, FieldTypeMultiselect: {},
	FieldTypeRadio: {}, FieldTypeCheckbox: {}, FieldTypeCheckboxes: {}, FieldTypeEditor: {},
}

var typeAliases = map[string]FieldType{
	"string":         FieldTypeText,
	"integer":        FieldTypeNumber,
	"wysiwyg":        FieldTypeEditor,
	"multicheck":     FieldTypeCheckboxes,
	"checkbox_group": FieldTypeCheckboxes,
	"select_multi":   FieldTypeMultiselect,
}

// Known reports whether t is one of the built-in field types.
func (t FieldType) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

// Multiple reports whether the field submits a list of values.
func (t FieldType) Multiple() bool {
	return t == FieldTypeMultiselect || t == FieldTypeCheckboxes
}

// Choice reports whether the field picks from declared options.
func (t FieldType) Choice() bool {
	switch t {
	case FieldTypeSelect, FieldTypeMultiselect, FieldTypeRadio, FieldTypeCheckboxes:
		return true
	default:
		return false
	}
}

// Numeric reports whether min/max compare the value instead of its length.
func (t FieldType) Numeric() bool {
	return t == FieldTypeNumber
}

// Option is a single choice for select, radio and checkbox group fields.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// RuleKind identifies an entry in the validation rule table.
type RuleKind string

const (
	RuleRequired RuleKind = "required"
	RuleMin      RuleKind = "min"
	RuleMax      RuleKind = "max"
	RulePattern  RuleKind = "pattern"
	RuleFormat   RuleKind = "format"
	RuleOptions  RuleKind = "options"
	RuleCallback RuleKind = "callback"
)

// Rule is one expanded validation constraint. Value carries the textual
// parameter: the bound for min/max, the expression for pattern, the format or
// callback name.
type Rule struct {
	Kind  RuleKind `json:"kind"`
	Value string   `json:"value,omitempty"`
}

// Validation is the declarative rule block of a field.
type Validation struct {
	Required bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Min      *float64          `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64          `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern  string            `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format   string            `json:"format,omitempty" yaml:"format,omitempty"`
	// Options restricts submitted values to the declared options. Choice
	// fields with options enforce it unless it is explicitly false.
	Options  *bool             `json:"options,omitempty" yaml:"options,omitempty"`
	Callback string            `json:"callback,omitempty" yaml:"callback,omitempty"`
	Messages map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// SanitizeFunc cleans a submitted value before validation.
type SanitizeFunc func(value any) any

// ValidateFunc is a per-field custom rule. A non-nil error becomes the field
// error message.
type ValidateFunc func(ctx context.Context, value any, data map[string]any) error

// FieldConfig is a single schema entry.
type FieldConfig struct {
	Name         string            `json:"name" yaml:"name,omitempty"`
	Type         FieldType         `json:"type" yaml:"type,omitempty"`
	Label        string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	ID           string            `json:"id,omitempty" yaml:"id,omitempty"`
	Class        string            `json:"class,omitempty" yaml:"class,omitempty"`
	Default      any               `json:"default,omitempty" yaml:"default,omitempty"`
	Value        any               `json:"value,omitempty" yaml:"value,omitempty"`
	// CheckedValue is what a single checkbox submits when ticked.
	CheckedValue string            `json:"checkedValue,omitempty" yaml:"checked_value,omitempty"`
	Options      Options           `json:"options,omitempty" yaml:"options,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Validate     Validation        `json:"validate,omitempty" yaml:"validate,omitempty"`
	Sanitize     string            `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`

	SanitizeFunc SanitizeFunc `json:"-" yaml:"-"`
	ValidateFunc ValidateFunc `json:"-" yaml:"-"`
}

// Required reports whether the field carries the required rule.
func (c FieldConfig) Required() bool {
	return c.Validate.Required
}

// OptionsEnforced reports whether the options rule applies.
func (c FieldConfig) OptionsEnforced() bool {
	if c.Validate.Options != nil {
		return *c.Validate.Options && len(c.Options) > 0
	}
	return c.Type.Choice() && len(c.Options) > 0
}

// Rules expands the validation block into the ordered rule list the validator
// dispatches on. Required always comes first and the callback last.
func (c FieldConfig) Rules() []Rule {
	v := c.Validate
	var rules []Rule
	if v.Required {
		rules = append(rules, Rule{Kind: RuleRequired})
	}
	if v.Min != nil {
		rules = append(rules, Rule{Kind: RuleMin, Value: formatBound(*v.Min)})
	}
	if v.Max != nil {
		rules = append(rules, Rule{Kind: RuleMax, Value: formatBound(*v.Max)})
	}
	if v.Format != "" {
		rules = append(rules, Rule{Kind: RuleFormat, Value: v.Format})
	}
	if v.Pattern != "" {
		rules = append(rules, Rule{Kind: RulePattern, Value: v.Pattern})
	}
	if c.OptionsEnforced() {
		rules = append(rules, Rule{Kind: RuleOptions})
	}
	if v.Callback != "" || c.ValidateFunc != nil {
		rules = append(rules, Rule{Kind: RuleCallback, Value: v.Callback})
	}
	return rules
}

// HasOption reports whether value matches a declared option.
func (c FieldConfig) HasOption(value string) bool {
	for _, opt := range c.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Message returns the per-field message override for a rule kind.
func (c FieldConfig) Message(kind RuleKind) string {
	if len(c.Validate.Messages) == 0 {
		return ""
	}
	return c.Validate.Messages[string(kind)]
}

func formatBound(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Float is a convenience for building Validation bounds in Go code.
func Float(value float64) *float64 {
	return &value
}

// Bool is a convenience for Validation.Options.
func Bool(value bool) *bool {
	return &value
}

func (t FieldType) String() string {
	return string(t)
}

func fieldError(name string, err error) error {
	return fmt.Errorf("schema: field %q: %w", name, err)
}

package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formfields/pkg/casing"
)

// IDPrefix is prepended to derived control ids.
const IDPrefix = "ff-"

// implicitFormats are applied when a field declares no format of its own.
var implicitFormats = map[FieldType]string{
	FieldTypeEmail:  "email",
	FieldTypeURL:    "url",
	FieldTypeNumber: "number",
	FieldTypeDate:   "date",
	FieldTypeColor:  "color",
}

var idReplacer = strings.NewReplacer("[", "-", "]", "", ".", "-", " ", "-")

// Normalize cleans a field config and fills derived values. It is applied by
// Schema.Add, so callers only need it when working with bare configs.
func Normalize(cfg FieldConfig) (FieldConfig, error) {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return FieldConfig{}, fmt.Errorf("schema: %w", ErrEmptyName)
	}

	fieldType, err := normalizeType(cfg.Type)
	if err != nil {
		return FieldConfig{}, fieldError(cfg.Name, err)
	}
	cfg.Type = fieldType

	cfg.Label = strings.TrimSpace(cfg.Label)
	if cfg.Label == "" {
		cfg.Label = casing.Label(cfg.Name)
	}
	cfg.Description = strings.TrimSpace(cfg.Description)
	cfg.Placeholder = strings.TrimSpace(cfg.Placeholder)
	cfg.ID = strings.TrimSpace(cfg.ID)
	if cfg.ID == "" {
		cfg.ID = IDPrefix + strings.Trim(casing.Key(idReplacer.Replace(cfg.Name)), "-")
	}
	cfg.Class = strings.Join(strings.Fields(cfg.Class), " ")
	cfg.Sanitize = strings.ToLower(strings.TrimSpace(cfg.Sanitize))
	cfg.CheckedValue = strings.TrimSpace(cfg.CheckedValue)
	if cfg.Type == FieldTypeCheckbox && cfg.CheckedValue == "" {
		cfg.CheckedValue = "1"
	}
	cfg.Attributes = normalizeAttributes(cfg.Attributes)

	if cfg.Options, err = normalizeOptions(cfg.Options); err != nil {
		return FieldConfig{}, fieldError(cfg.Name, err)
	}
	if cfg.Validate, err = normalizeValidation(cfg.Validate, cfg.Type); err != nil {
		return FieldConfig{}, fieldError(cfg.Name, err)
	}
	return cfg, nil
}

func normalizeType(raw FieldType) (FieldType, error) {
	value := strings.ToLower(strings.TrimSpace(string(raw)))
	if value == "" {
		return FieldTypeText, nil
	}
	if alias, ok := typeAliases[value]; ok {
		return alias, nil
	}
	fieldType := FieldType(value)
	if !fieldType.Known() {
		return "", fmt.Errorf("%w %q", ErrUnknownType, value)
	}
	return fieldType, nil
}

// normalizeAttributes drops event handler attributes and keys that cannot be
// written as HTML attribute names. Attributes the renderer owns (name, id,
// type, value) are dropped as well.
func normalizeAttributes(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for key, value := range attrs {
		name := casing.Key(key)
		if name == "" || strings.HasPrefix(name, "on") {
			continue
		}
		switch name {
		case "name", "id", "type", "value":
			continue
		}
		out[name] = strings.TrimSpace(value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeOptions(options Options) (Options, error) {
	if len(options) == 0 {
		return nil, nil
	}
	out := make(Options, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		opt.Value = strings.TrimSpace(opt.Value)
		opt.Label = strings.TrimSpace(opt.Label)
		if _, dup := seen[opt.Value]; dup {
			return nil, fmt.Errorf("%w: duplicate value %q", ErrInvalidOptions, opt.Value)
		}
		seen[opt.Value] = struct{}{}
		if opt.Label == "" {
			opt.Label = opt.Value
		}
		out = append(out, opt)
	}
	return out, nil
}

func normalizeValidation(v Validation, fieldType FieldType) (Validation, error) {
	v.Pattern = strings.TrimSpace(v.Pattern)
	v.Format = strings.ToLower(strings.TrimSpace(v.Format))
	v.Callback = strings.TrimSpace(v.Callback)
	if v.Format == "" {
		v.Format = implicitFormats[fieldType]
	}

	if !fieldType.Numeric() {
		if v.Min != nil && *v.Min < 0 {
			return Validation{}, fmt.Errorf("%w: min length %v is negative", ErrInvalidRule, *v.Min)
		}
		if v.Max != nil && *v.Max < 0 {
			return Validation{}, fmt.Errorf("%w: max length %v is negative", ErrInvalidRule, *v.Max)
		}
	}
	if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
		return Validation{}, fmt.Errorf("%w: min %v is greater than max %v", ErrInvalidRule, *v.Min, *v.Max)
	}
	if v.Pattern != "" {
		if _, err := CompilePattern(v.Pattern); err != nil {
			return Validation{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
	}

	if len(v.Messages) > 0 {
		messages := make(map[string]string, len(v.Messages))
		for key, message := range v.Messages {
			kind := strings.ToLower(strings.TrimSpace(key))
			if !knownRule(RuleKind(kind)) {
				return Validation{}, fmt.Errorf("%w: message for unknown rule %q", ErrInvalidRule, key)
			}
			messages[kind] = strings.TrimSpace(message)
		}
		v.Messages = messages
	}
	return v, nil
}

func knownRule(kind RuleKind) bool {
	switch kind {
	case RuleRequired, RuleMin, RuleMax, RulePattern, RuleFormat, RuleOptions, RuleCallback:
		return true
	default:
		return false
	}
}

// sortedKeys is used where attribute output must be deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// AttributeNames returns the field's extra attribute names in sorted order.
func (c FieldConfig) AttributeNames() []string {
	return sortedKeys(c.Attributes)
}

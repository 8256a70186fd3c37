package validation

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/schema"
)

// Message keys. Bound rules pick a variant depending on what they measure.
const (
	MessageRequired  = "required"
	MessageMin       = "min"
	MessageMinLength = "min.length"
	MessageMinCount  = "min.count"
	MessageMax       = "max"
	MessageMaxLength = "max.length"
	MessageMaxCount  = "max.count"
	MessagePattern   = "pattern"
	MessageFormat    = "format"
	MessageOptions   = "options"
	MessageCallback  = "callback"
)

var defaultMessages = map[string]string{
	MessageRequired:  "{label} is required.",
	MessageMin:       "{label} must be at least {min}.",
	MessageMinLength: "{label} must be at least {min} characters.",
	MessageMinCount:  "Select at least {min} options for {label}.",
	MessageMax:       "{label} may not be greater than {max}.",
	MessageMaxLength: "{label} may not be longer than {max} characters.",
	MessageMaxCount:  "Select no more than {max} options for {label}.",
	MessagePattern:   "{label} has an invalid format.",
	MessageFormat:    "{label} must be a valid {format}.",
	MessageOptions:   "{label} contains an invalid choice.",
	MessageCallback:  "{label} is invalid.",
}

var formatNames = map[string]string{
	"email":        "email address",
	"url":          "URL",
	"tel":          "phone number",
	"datetime":     "date and time",
	"alphanumeric": "alphanumeric value",
	"alpha":        "alphabetic value",
	"uuid":         "UUID",
}

type messageParams struct {
	label  string
	min    string
	max    string
	format string
}

func (v *Validator) message(cfg schema.FieldConfig, kind schema.RuleKind, key string, params messageParams) string {
	template := cfg.Message(kind)
	if template == "" {
		template = v.messages[key]
	}
	if template == "" {
		template = defaultMessages[key]
	}
	if params.label == "" {
		params.label = cfg.Label
	}
	format := params.format
	if readable, ok := formatNames[format]; ok {
		format = readable
	}
	return strings.NewReplacer(
		"{label}", params.label,
		"{min}", params.min,
		"{max}", params.max,
		"{format}", format,
		"{name}", cfg.Name,
	).Replace(template)
}

package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/schema"
	"github.com/goliatone/go-formfields/pkg/validation"
)

// Option customises Fill.
type Option func(*filler)

type filler struct {
	validator *validation.Validator
	logger    *zap.Logger
}

// WithValidator checks every answer against v before accepting it. Answers
// given so far are visible to callbacks.
func WithValidator(v *validation.Validator) Option {
	return func(f *filler) {
		f.validator = v
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(f *filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Fill asks one question per schema field and returns the answers keyed by
// field name, shaped like submitted form data: strings for single fields and
// []string for multi-valued ones. Hidden fields are not asked; they keep
// their resolved default.
func Fill(ctx context.Context, s *schema.Schema, driver PromptDriver, defaults map[string]any, opts ...Option) (map[string]any, error) {
	if s == nil {
		return nil, validation.ErrNilSchema
	}
	if driver == nil {
		return nil, ErrNoDriver
	}
	f := &filler{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	sources := model.Sources{Submitted: defaults}
	answers := make(map[string]any, s.Len())
	for _, cfg := range s.Fields() {
		if err := ctx.Err(); err != nil {
			return answers, err
		}
		field := model.BuildField(cfg, sources)
		value, err := f.ask(ctx, driver, field, answers)
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return answers, err
			}
			return answers, fmt.Errorf("prompt: field %q: %w", cfg.Name, err)
		}
		answers[cfg.Name] = value
		f.logger.Debug("prompt answered", zap.String("field", cfg.Name), zap.String("type", cfg.Type.String()))
	}
	return answers, nil
}

func (f *filler) ask(ctx context.Context, driver PromptDriver, field model.Field, answers map[string]any) (any, error) {
	cfg := field.Config
	message := questionLabel(field)

	switch cfg.Type {
	case schema.FieldTypeHidden:
		return field.String(), nil

	case schema.FieldTypeCheckbox:
		ok, err := driver.Confirm(ctx, ConfirmConfig{Message: message, Default: field.Checked(), Help: field.Description})
		if err != nil || !ok {
			return "", err
		}
		return checkedValue(cfg), nil

	case schema.FieldTypeSelect, schema.FieldTypeRadio:
		labels := optionLabels(cfg.Options)
		if len(labels) == 0 {
			return "", nil
		}
		def := 0
		if idx := indexOf(cfg.Options.Values(), field.String()); idx >= 0 {
			def = idx
		}
		idx, err := driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def, Help: field.Description})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(cfg.Options) {
			return "", fmt.Errorf("selection %d out of range", idx)
		}
		return cfg.Options[idx].Value, nil

	case schema.FieldTypeMultiselect, schema.FieldTypeCheckboxes:
		values := cfg.Options.Values()
		prompt := SelectConfig{
			Message:  message,
			Options:  optionLabels(cfg.Options),
			Defaults: indicesOf(values, field.Strings()),
			Help:     field.Description,
		}
		prompt.Validator = func(picked []int) error {
			return f.check(ctx, cfg, valuesAt(values, picked), answers)
		}
		picked, err := driver.MultiSelect(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return valuesAt(values, picked), nil

	case schema.FieldTypePassword:
		return driver.Password(ctx, InputConfig{Message: message, Help: field.Description, Validator: f.stringCheck(ctx, cfg, answers)})

	case schema.FieldTypeTextarea, schema.FieldTypeEditor:
		return driver.TextArea(ctx, TextAreaConfig{Message: message, Default: field.String(), Help: field.Description, Validator: f.stringCheck(ctx, cfg, answers)})

	default:
		return driver.Input(ctx, InputConfig{Message: message, Default: field.String(), Help: field.Description, Validator: f.stringCheck(ctx, cfg, answers)})
	}
}

func (f *filler) stringCheck(ctx context.Context, cfg schema.FieldConfig, answers map[string]any) func(string) error {
	return func(value string) error {
		return f.check(ctx, cfg, value, answers)
	}
}

// check validates one answer. Without a validator only the required rule is
// enforced.
func (f *filler) check(ctx context.Context, cfg schema.FieldConfig, value any, answers map[string]any) error {
	if f.validator == nil {
		if cfg.Required() && blank(value) {
			return errors.New(requiredMessage(cfg))
		}
		return nil
	}
	data := make(map[string]any, len(answers)+1)
	for name, answer := range answers {
		data[name] = answer
	}
	data[cfg.Name] = value
	result := f.validator.Validate(ctx, data)
	if messages := result.Errors[cfg.Name]; len(messages) > 0 {
		return errors.New(strings.Join(messages, " "))
	}
	return nil
}

func questionLabel(field model.Field) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	if field.Required {
		label += " *"
	}
	return label
}

func requiredMessage(cfg schema.FieldConfig) string {
	if msg := cfg.Message(schema.RuleRequired); msg != "" {
		return msg
	}
	label := cfg.Label
	if label == "" {
		label = cfg.Name
	}
	return label + " is required."
}

func checkedValue(cfg schema.FieldConfig) string {
	if cfg.CheckedValue != "" {
		return cfg.CheckedValue
	}
	return "1"
}

func optionLabels(options schema.Options) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		if opt.Label != "" {
			out = append(out, opt.Label)
			continue
		}
		out = append(out, opt.Value)
	}
	return out
}

func valuesAt(values []string, picked []int) []string {
	out := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(values) {
			out = append(out, values[idx])
		}
	}
	return out
}

func indexOf(values []string, target string) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}

func indicesOf(values, targets []string) []int {
	var out []int
	for _, target := range targets {
		if idx := indexOf(values, target); idx >= 0 {
			out = append(out, idx)
		}
	}
	return out
}

func blank(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case []string:
		return len(typed) == 0
	default:
		return false
	}
}

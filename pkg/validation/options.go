package validation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/sanitize"
)

// CallbackFunc implements a named callback rule. Returning a non-nil error
// fails the field; the error text becomes the message unless the field
// overrides the callback message.
type CallbackFunc func(ctx context.Context, value any, data map[string]any) error

// Option configures a Validator.
type Option func(*Validator)

// WithCallback registers a named callback rule.
func WithCallback(name string, fn CallbackFunc) Option {
	return func(v *Validator) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		v.callbacks[name] = fn
	}
}

// WithFormat registers or replaces a named format check.
func WithFormat(name string, fn FormatFunc) Option {
	return func(v *Validator) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || fn == nil {
			return
		}
		v.formats[name] = fn
	}
}

// WithSanitizers swaps the sanitizer registry.
func WithSanitizers(registry *sanitize.Registry) Option {
	return func(v *Validator) {
		if registry != nil {
			v.sanitizers = registry
		}
	}
}

// WithMessages overrides default message templates by key. Templates may use
// the {label}, {name}, {min}, {max} and {format} placeholders.
func WithMessages(messages map[string]string) Option {
	return func(v *Validator) {
		for key, template := range messages {
			v.messages[strings.ToLower(strings.TrimSpace(key))] = template
		}
	}
}

// WithLogger attaches a zap logger. Validation logs at debug level only.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

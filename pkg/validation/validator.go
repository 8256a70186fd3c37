package validation

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/sanitize"
	"github.com/goliatone/go-formfields/pkg/schema"
)

// Validator checks submitted data against a schema. It keeps the errors of
// the most recent Validate call and nothing else.
type Validator struct {
	schema     *schema.Schema
	callbacks  map[string]CallbackFunc
	formats    map[string]FormatFunc
	messages   map[string]string
	sanitizers *sanitize.Registry
	logger     *zap.Logger

	mu     sync.Mutex
	errors Errors
}

// New builds a validator for s. Unknown format, callback and sanitizer names
// referenced by the schema are reported here rather than at submit time.
func New(s *schema.Schema, opts ...Option) (*Validator, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	v := &Validator{
		schema:     s,
		callbacks:  make(map[string]CallbackFunc),
		formats:    defaultFormats(),
		messages:   make(map[string]string),
		sanitizers: sanitize.NewDefaultRegistry(),
		logger:     zap.NewNop(),
		errors:     Errors{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if err := v.check(); err != nil {
		return nil, err
	}
	return v, nil
}

// MustNew panics when New fails.
func MustNew(s *schema.Schema, opts ...Option) *Validator {
	v, err := New(s, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Validator) check() error {
	for _, cfg := range v.schema.Fields() {
		if format := cfg.Validate.Format; format != "" {
			if _, ok := v.formats[strings.ToLower(format)]; !ok {
				return fmt.Errorf("%w %q on field %q", ErrUnknownFormat, format, cfg.Name)
			}
		}
		if callback := cfg.Validate.Callback; callback != "" {
			if _, ok := v.callbacks[callback]; !ok {
				return fmt.Errorf("%w %q on field %q", ErrUnknownCallback, callback, cfg.Name)
			}
		}
		if name := cfg.Sanitize; name != "" && cfg.SanitizeFunc == nil {
			if _, ok := v.sanitizers.Get(name); !ok {
				return fmt.Errorf("%w %q on field %q", ErrUnknownSanitizer, name, cfg.Name)
			}
		}
	}
	return nil
}

// Schema returns the schema the validator checks against.
func (v *Validator) Schema() *schema.Schema {
	return v.schema
}

// Validate sanitizes and checks data. The stored error list is replaced on
// every call.
func (v *Validator) Validate(ctx context.Context, data map[string]any) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if data == nil {
		data = map[string]any{}
	}

	errs := Errors{}
	values := make(map[string]any, v.schema.Len())

	for _, cfg := range v.schema.Fields() {
		if err := ctx.Err(); err != nil {
			errs.Add(FormErrorKey, fmt.Sprintf("validation cancelled: %v", err))
			break
		}
		value := v.sanitizeValue(cfg, readValue(cfg, data))
		values[cfg.Name] = value
		for _, message := range v.checkField(ctx, cfg, value, data) {
			errs.Add(cfg.Name, message)
		}
	}

	v.mu.Lock()
	v.errors = errs
	v.mu.Unlock()

	v.logger.Debug("form validated",
		zap.Int("fields", v.schema.Len()),
		zap.Int("errors", errs.Len()),
		zap.Strings("invalid", errs.Fields()),
	)

	return Result{Values: values, Errors: errs.Clone()}
}

// ValidateForm validates url-encoded form values.
func (v *Validator) ValidateForm(ctx context.Context, form url.Values) Result {
	data := make(map[string]any, len(form))
	for key, list := range form {
		if len(list) == 1 && !strings.HasSuffix(key, "[]") {
			data[key] = list[0]
			continue
		}
		data[key] = append([]string(nil), list...)
	}
	return v.Validate(ctx, data)
}

// Errors returns a copy of the errors from the last Validate call.
func (v *Validator) Errors() Errors {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errors.Clone()
}

// HasErrors reports whether the last Validate call recorded errors.
func (v *Validator) HasErrors() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errors.Len() > 0
}

func (v *Validator) checkField(ctx context.Context, cfg schema.FieldConfig, value any, data map[string]any) []string {
	empty := isEmpty(value)
	var messages []string
	for _, rule := range cfg.Rules() {
		if rule.Kind == schema.RuleRequired {
			if empty {
				return []string{v.message(cfg, rule.Kind, MessageRequired, messageParams{})}
			}
			continue
		}
		if empty && rule.Kind != schema.RuleCallback {
			continue
		}
		fn, ok := ruleTable[rule.Kind]
		if !ok {
			continue
		}
		messages = append(messages, fn(ctx, v, check{cfg: cfg, rule: rule, value: value, data: data})...)
	}
	return messages
}

func (v *Validator) sanitizeValue(cfg schema.FieldConfig, value any) any {
	fn := sanitize.Func(cfg.SanitizeFunc)
	if fn == nil {
		name := cfg.Sanitize
		if name == "" {
			name = sanitize.ForType(cfg)
		}
		fn, _ = v.sanitizers.Get(name)
	}
	if !cfg.Type.Multiple() {
		if fn == nil {
			return value
		}
		return fn(value)
	}
	list, _ := sanitize.Apply(fn, value).([]any)
	out := make([]any, 0, len(list))
	for _, item := range list {
		if item == nil || sanitize.String(item) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// readValue picks the submitted value for cfg. Multi-valued fields accept
// both name and name[] keys and always yield a list.
func readValue(cfg schema.FieldConfig, data map[string]any) any {
	raw, ok := data[cfg.Name]
	if !ok && cfg.Type.Multiple() {
		raw, ok = data[cfg.Name+"[]"]
	}
	if !ok {
		if cfg.Type.Multiple() {
			return []any{}
		}
		return nil
	}

	if cfg.Type.Multiple() {
		switch typed := raw.(type) {
		case nil:
			return []any{}
		case []any:
			return typed
		case []string:
			out := make([]any, len(typed))
			for i, item := range typed {
				out[i] = item
			}
			return out
		default:
			return []any{typed}
		}
	}

	switch typed := raw.(type) {
	case []string:
		if len(typed) == 0 {
			return nil
		}
		raw = typed[0]
	case []any:
		if len(typed) == 0 {
			return nil
		}
		raw = typed[0]
	}

	// A checkbox submits its checked value or nothing; any other string is
	// unchecked.
	if cfg.Type == schema.FieldTypeCheckbox {
		if s, ok := raw.(string); ok && cfg.CheckedValue != "" {
			return s == cfg.CheckedValue
		}
	}
	return raw
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case bool:
		return !typed
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	default:
		return false
	}
}

package validation

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/sanitize"
	"github.com/goliatone/go-formfields/pkg/schema"
)

type check struct {
	cfg   schema.FieldConfig
	rule  schema.Rule
	value any
	data  map[string]any
}

type ruleFunc func(ctx context.Context, v *Validator, c check) []string

// ruleTable dispatches every rule kind except required, which checkField
// handles itself because it short-circuits the rest.
var ruleTable = map[schema.RuleKind]ruleFunc{
	schema.RuleMin:      checkMin,
	schema.RuleMax:      checkMax,
	schema.RulePattern:  checkPattern,
	schema.RuleFormat:   checkFormat,
	schema.RuleOptions:  checkOptions,
	schema.RuleCallback: checkCallback,
}

// measure returns the quantity bounds compare against and the message suffix
// that describes it. ok is false when the value cannot be measured.
func measure(c check) (float64, string, bool) {
	switch {
	case c.cfg.Type == schema.FieldTypeCheckbox:
		return 0, "", false
	case c.cfg.Type.Numeric():
		n, ok := toFloat(c.value)
		return n, "", ok
	case c.cfg.Type.Multiple():
		return float64(len(elements(c.value))), ".count", true
	default:
		return float64(utf8.RuneCountInString(sanitize.String(c.value))), ".length", true
	}
}

func checkMin(_ context.Context, v *Validator, c check) []string {
	bound, err := strconv.ParseFloat(c.rule.Value, 64)
	if err != nil {
		return nil
	}
	n, suffix, ok := measure(c)
	if !ok || n >= bound {
		return nil
	}
	return []string{v.message(c.cfg, schema.RuleMin, MessageMin+suffix, messageParams{min: c.rule.Value})}
}

func checkMax(_ context.Context, v *Validator, c check) []string {
	bound, err := strconv.ParseFloat(c.rule.Value, 64)
	if err != nil {
		return nil
	}
	n, suffix, ok := measure(c)
	if !ok || n <= bound {
		return nil
	}
	return []string{v.message(c.cfg, schema.RuleMax, MessageMax+suffix, messageParams{max: c.rule.Value})}
}

func checkPattern(_ context.Context, v *Validator, c check) []string {
	re, err := schema.CompilePattern(c.rule.Value)
	if err != nil {
		// Normalize already compiled it; a failure here means the field was
		// built without going through a Schema.
		v.logger.Warn("pattern does not compile", zap.String("field", c.cfg.Name), zap.Error(err))
		return nil
	}
	for _, item := range elements(c.value) {
		if s := sanitize.String(item); s != "" && !re.MatchString(s) {
			return []string{v.message(c.cfg, schema.RulePattern, MessagePattern, messageParams{})}
		}
	}
	return nil
}

func checkFormat(_ context.Context, v *Validator, c check) []string {
	name := strings.ToLower(c.rule.Value)
	fn, ok := v.formats[name]
	if !ok {
		return nil
	}
	for _, item := range elements(c.value) {
		if s := sanitize.String(item); s != "" && !fn(s) {
			return []string{v.message(c.cfg, schema.RuleFormat, MessageFormat, messageParams{format: name})}
		}
	}
	return nil
}

func checkOptions(_ context.Context, v *Validator, c check) []string {
	for _, item := range elements(c.value) {
		if !c.cfg.HasOption(sanitize.String(item)) {
			return []string{v.message(c.cfg, schema.RuleOptions, MessageOptions, messageParams{})}
		}
	}
	return nil
}

func checkCallback(ctx context.Context, v *Validator, c check) []string {
	var messages []string
	fail := func(err error) {
		message := c.cfg.Message(schema.RuleCallback)
		if message == "" {
			message = err.Error()
		}
		if message == "" {
			message = v.message(c.cfg, schema.RuleCallback, MessageCallback, messageParams{})
		}
		messages = append(messages, message)
	}
	if name := c.rule.Value; name != "" {
		if fn, ok := v.callbacks[name]; ok {
			if err := fn(ctx, c.value, c.data); err != nil {
				fail(err)
			}
		}
	}
	if c.cfg.ValidateFunc != nil {
		if err := c.cfg.ValidateFunc(ctx, c.value, c.data); err != nil {
			fail(err)
		}
	}
	return messages
}

func elements(value any) []any {
	switch typed := value.(type) {
	case nil:
		return nil
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

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case int64:
		return float64(typed), true
	case int:
		return float64(typed), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

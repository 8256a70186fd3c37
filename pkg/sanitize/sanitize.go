package sanitize

import (
	"fmt"
	"html"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfields/pkg/casing"
	"github.com/goliatone/go-formfields/pkg/schema"
)

// Func cleans a single submitted value.
type Func func(value any) any

// Sanitizer names registered by NewDefaultRegistry.
const (
	NameText     = "text"
	NameTextarea = "textarea"
	NameEmail    = "email"
	NameURL      = "url"
	NameKey      = "key"
	NameInt      = "int"
	NameFloat    = "float"
	NameBool     = "bool"
	NameHTML     = "html"
	NameColor    = "color"
	NameDate     = "date"
	NameRaw      = "raw"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
	ugcOnce      sync.Once
	ugcPolicy    *bluemonday.Policy

	hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-f]{3}|[0-9a-f]{6})$`)
	safeURLSchemes  = map[string]struct{}{"http": {}, "https": {}, "mailto": {}, "tel": {}, "ftp": {}}
)

func strict() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

func ugc() *bluemonday.Policy {
	ugcOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy
}

// Text strips tags, invalid UTF-8, line breaks and repeated whitespace.
func Text(value any) any {
	return cleanLine(stripTags(String(value)))
}

// Textarea behaves like Text but keeps line breaks.
func Textarea(value any) any {
	raw := strings.ReplaceAll(String(value), "\r\n", "\n")
	lines := strings.Split(stripTags(raw), "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// HTML keeps safe user content markup.
func HTML(value any) any {
	return strings.TrimSpace(ugc().Sanitize(strings.ToValidUTF8(String(value), "")))
}

// Email removes whitespace and characters that cannot appear in an address.
func Email(value any) any {
	raw := strings.TrimSpace(String(value))
	var out strings.Builder
	out.Grow(len(raw))
	for _, r := range raw {
		if isEmailRune(r) {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// URL trims the value and drops it when the scheme is not one of http, https,
// mailto, tel or ftp. Relative references are kept.
func URL(value any) any {
	raw := strings.TrimSpace(strings.ToValidUTF8(String(value), ""))
	raw = strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" {
		if _, ok := safeURLSchemes[strings.ToLower(parsed.Scheme)]; !ok {
			return ""
		}
	}
	return parsed.String()
}

// Key lower-cases the value and keeps [a-z0-9_-].
func Key(value any) any {
	return casing.Key(String(value))
}

// Int parses an integer. Empty input yields nil; input that does not parse is
// returned trimmed so the number format rule can report it.
func Int(value any) any {
	switch typed := value.(type) {
	case int:
		return int64(typed)
	case int64:
		return typed
	case float64:
		if typed == math.Trunc(typed) {
			return int64(typed)
		}
	}
	raw := strings.TrimSpace(String(value))
	if raw == "" {
		return nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}

// Float parses a decimal number with the same empty/invalid handling as Int.
func Float(value any) any {
	switch typed := value.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	}
	raw := strings.TrimSpace(String(value))
	if raw == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return raw
}

// Bool treats 1, true, on, yes and y as true and everything else as false.
func Bool(value any) any {
	if b, ok := value.(bool); ok {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(String(value))) {
	case "1", "true", "on", "yes", "y":
		return true
	default:
		return false
	}
}

// Color accepts #rgb and #rrggbb hex colours and returns "" otherwise.
func Color(value any) any {
	raw := strings.ToLower(strings.TrimSpace(String(value)))
	if raw != "" && !strings.HasPrefix(raw, "#") {
		raw = "#" + raw
	}
	if !hexColorPattern.MatchString(raw) {
		return ""
	}
	return raw
}

// dateLayouts are accepted by Date and reduced to the YYYY-MM-DD form a date
// input submits.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006/01/02"}

// Date trims the value and reduces timestamps to their date. Anything it
// cannot read is returned trimmed so the date format rule can report it.
func Date(value any) any {
	raw := strings.TrimSpace(String(value))
	if raw == "" {
		return ""
	}
	if _, err := time.Parse(time.DateOnly, raw); err == nil {
		return raw
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format(time.DateOnly)
		}
	}
	return raw
}

// Raw returns the value as a string without cleaning it.
func Raw(value any) any {
	if value == nil {
		return nil
	}
	return String(value)
}

// String converts scalar submissions into their string form.
func String(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
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
	case fmt.Stringer:
		return typed.String()
	case []string:
		if len(typed) > 0 {
			return typed[0]
		}
		return ""
	default:
		return fmt.Sprint(typed)
	}
}

// Apply runs fn over value, element-wise when value is a list.
func Apply(fn Func, value any) any {
	if fn == nil {
		return value
	}
	switch typed := value.(type) {
	case []string:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, fn(item))
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, fn(item))
		}
		return out
	default:
		return fn(value)
	}
}

// ForType returns the default sanitizer name for a field type.
func ForType(cfg schema.FieldConfig) string {
	switch cfg.Type {
	case schema.FieldTypeTextarea:
		return NameTextarea
	case schema.FieldTypeEditor:
		return NameHTML
	case schema.FieldTypeEmail:
		return NameEmail
	case schema.FieldTypeURL:
		return NameURL
	case schema.FieldTypeNumber:
		if cfg.Validate.Format == "integer" {
			return NameInt
		}
		return NameFloat
	case schema.FieldTypeCheckbox:
		return NameBool
	case schema.FieldTypeColor:
		return NameColor
	case schema.FieldTypeDate:
		return NameDate
	case schema.FieldTypePassword:
		return NameRaw
	default:
		return NameText
	}
}

// maxStripPasses bounds the decode/strip loop for nested entity encodings.
const maxStripPasses = 8

// stripTags removes markup and decodes entities. Decoding can surface tags
// that were entity encoded, so the strict policy runs again until the text is
// stable. Text that never settles loses every '<'.
func stripTags(value string) string {
	current := strings.ToValidUTF8(value, "")
	for i := 0; i < maxStripPasses; i++ {
		next := html.UnescapeString(strict().Sanitize(current))
		if next == current {
			return next
		}
		current = next
	}
	return strings.ReplaceAll(current, "<", "")
}

func cleanLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func isEmailRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("!#$%&'*+/=?^_`{|}~.@-", r)
}

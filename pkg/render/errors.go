package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/model"
)

// ErrorMapping splits an error payload into field messages keyed by field
// name and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level messages, trimming them and
// dropping blanks and duplicates while keeping order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors matches payload keys to form fields. Keys may be the field name,
// the submitted name (tags[]), a dotted or bracketed path (address.zip for a
// field named address[zip]) or a JSON pointer, optionally wrapped in body,
// data or payload segments. Anything else is a form-level error so no message
// is lost.
func MapErrors(form model.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	lookup := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		if key := strings.Join(pathSegments(field.Name), "."); key != "" {
			lookup[key] = field.Name
		}
	}

	for _, rawKey := range sortedPayloadKeys(payload) {
		messages := normalizeMessages(payload[rawKey])
		if len(messages) == 0 {
			continue
		}
		name, ok := matchField(rawKey, lookup)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func matchField(raw string, lookup map[string]string) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := pathSegments(raw)
	for _, variant := range [][]string{
		segments,
		dropWrapperSegments(segments),
		stripNumericSegments(segments),
		stripNumericSegments(dropWrapperSegments(segments)),
	} {
		// Longest prefix wins so address.zip beats address.
		for end := len(variant); end > 0; end-- {
			if name, ok := lookup[strings.Join(variant[:end], ".")]; ok {
				return name, true
			}
		}
	}
	return "", false
}

func pathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[]", "", "[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":    {},
	"request": {},
	"payload": {},
	"data":    {},
	"fields":  {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "_form", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedPayloadKeys(payload map[string][]string) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

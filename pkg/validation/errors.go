package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FormErrorKey holds messages that do not belong to a single field.
const FormErrorKey = "_form"

var (
	// ErrNilSchema is returned by New when no schema is supplied.
	ErrNilSchema = errors.New("validation: schema is required")
	// ErrUnknownCallback is returned when a field names an unregistered callback.
	ErrUnknownCallback = errors.New("validation: unknown callback")
	// ErrUnknownFormat is returned when a field names an unregistered format.
	ErrUnknownFormat = errors.New("validation: unknown format")
	// ErrUnknownSanitizer is returned when a field names an unregistered sanitizer.
	ErrUnknownSanitizer = errors.New("validation: unknown sanitizer")
)

// Errors maps field names to their validation messages.
type Errors map[string][]string

// Add appends message to field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the first message for field.
func (e Errors) Get(field string) string {
	if messages := e[field]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the names with messages in sorted order.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name, messages := range e {
		if len(messages) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len counts messages across all fields.
func (e Errors) Len() int {
	total := 0
	for _, messages := range e {
		total += len(messages)
	}
	return total
}

// Clone returns a deep copy.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for name, messages := range e {
		out[name] = append([]string(nil), messages...)
	}
	return out
}

// Error implements error with a deterministic summary.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, name := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e[name], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsErrors extracts Errors from err.
func AsErrors(err error) (Errors, bool) {
	var out Errors
	if errors.As(err, &out) {
		return out, true
	}
	return nil, false
}

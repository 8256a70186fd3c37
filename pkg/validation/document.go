package validation

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formfields/pkg/schema"
)

// Issue is a problem found while checking a schema document.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// DocumentResult captures the outcome of CheckDocument.
type DocumentResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

var fieldInError = regexp.MustCompile(`field "([^"]*)"`)

// CheckDocument parses raw as a schema document and builds a validator from it
// with opts, reporting whatever would make either step fail. Callers use it to
// lint schema files before deploying them.
func CheckDocument(raw []byte, opts ...Option) DocumentResult {
	result := DocumentResult{Valid: true}

	s, err := schema.Parse(raw)
	if err != nil {
		result.Valid = false
		result.Issues = append(result.Issues, issueFromError(err))
		return result
	}
	if _, err := New(s, opts...); err != nil {
		result.Valid = false
		result.Issues = append(result.Issues, issueFromError(err))
	}
	return result
}

func issueFromError(err error) Issue {
	if err == nil {
		return Issue{Message: "unknown error"}
	}
	msg := strings.TrimSpace(err.Error())
	var field string
	if match := fieldInError.FindStringSubmatch(msg); match != nil {
		field = match[1]
		msg = strings.Replace(msg, " on "+match[0], "", 1)
		msg = strings.Replace(msg, match[0]+": ", "", 1)
	}
	for {
		trimmed := strings.TrimPrefix(strings.TrimPrefix(msg, "schema: "), "validation: ")
		if trimmed == msg {
			break
		}
		msg = trimmed
	}
	return Issue{Field: field, Message: strings.TrimSpace(msg)}
}

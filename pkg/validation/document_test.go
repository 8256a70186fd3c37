package validation

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCheckDocumentValid(t *testing.T) {
	raw := []byte(`
fields:
  email:
    type: email
    validate:
      required: true
      callback: unique
`)
	result := CheckDocument(raw, WithCallback("unique", nil))
	if result.Valid {
		t.Fatalf("expected nil callback to leave the name unregistered")
	}

	result = CheckDocument(raw, WithCallback("unique", func(_ context.Context, _ any, _ map[string]any) error { return nil }))
	if !result.Valid {
		t.Fatalf("expected document to be valid: %#v", result.Issues)
	}
}

func TestCheckDocumentIssues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Issue
	}{
		{
			name: "unknown type",
			raw:  "fields:\n  colour:\n    type: wheel\n",
			want: Issue{Field: "colour", Message: `unknown field type "wheel"`},
		},
		{
			name: "unknown format",
			raw:  "fields:\n  age:\n    type: number\n    validate:\n      format: roman\n",
			want: Issue{Field: "age", Message: `unknown format "roman"`},
		},
		{
			name: "empty",
			raw:  "",
			want: Issue{Message: "document is empty"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckDocument([]byte(tt.raw))
			if result.Valid {
				t.Fatalf("expected document to be invalid")
			}
			if diff := cmp.Diff([]Issue{tt.want}, result.Issues); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

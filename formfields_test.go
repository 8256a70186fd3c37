package formfields_test

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	formfields "github.com/goliatone/go-formfields"
	"github.com/goliatone/go-formfields/pkg/schema"
	"github.com/goliatone/go-formfields/pkg/validation"
)

func contactSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Parse([]byte(`
name:
  label: Name
  validate:
    required: true
email:
  type: email
  label: Email
topic:
  type: select
  label: Topic
  options:
    - value: sales
      label: Sales
    - value: support
      label: Support
`))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return s
}

func TestRenderThenValidateRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := contactSchema(t)
	submitted := map[string]any{"name": "", "email": "not-an-email", "topic": "support"}

	result, err := formfields.Validate(ctx, s, submitted)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid() {
		t.Fatalf("expected invalid result")
	}
	if diff := cmp.Diff([]string{"email", "name"}, result.Errors.Fields()); diff != "" {
		t.Fatalf("error fields mismatch (-want +got):\n%s", diff)
	}

	out, err := formfields.Render(ctx, s, formfields.RenderOptions{
		Values: submitted,
		Errors: result.Errors,
		Hidden: map[string]string{"_nonce": "n1"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`name="_nonce"`,
		`value="not-an-email"`,
		"Name is required.",
		"Email must be a valid email address.",
		`aria-invalid="true"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Index(html, `name="name"`) > strings.Index(html, `name="topic"`) {
		t.Fatalf("expected schema order in output:\n%s", html)
	}
}

func TestRenderField(t *testing.T) {
	s := contactSchema(t)
	out, err := formfields.RenderField(context.Background(), s, "topic", formfields.RenderOptions{
		Values: map[string]any{"topic": "sales"},
	})
	if err != nil {
		t.Fatalf("render field: %v", err)
	}
	if !strings.Contains(string(out), "selected") || strings.Contains(string(out), `name="email"`) {
		t.Fatalf("unexpected field markup:\n%s", out)
	}

	_, err = formfields.RenderField(context.Background(), s, "missing", formfields.RenderOptions{})
	if !errors.Is(err, formfields.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestValidateForm(t *testing.T) {
	form := url.Values{"name": {" Ada "}, "email": {"ada@example.com"}, "topic": {"sales"}}
	result, err := formfields.ValidateForm(context.Background(), contactSchema(t), form)
	if err != nil {
		t.Fatalf("validate form: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected valid form, got %v", result.Errors)
	}
	if result.Values["name"] != "Ada" {
		t.Fatalf("expected sanitized name, got %q", result.Values["name"])
	}
}

func TestValidateReportsConfigurationErrors(t *testing.T) {
	s := schema.MustNew(schema.FieldConfig{Name: "slug", Validate: schema.Validation{Callback: "unique_slug"}})
	if _, err := formfields.Validate(context.Background(), s, nil); !errors.Is(err, validation.ErrUnknownCallback) {
		t.Fatalf("expected ErrUnknownCallback, got %v", err)
	}
	if _, err := formfields.Render(context.Background(), nil, formfields.RenderOptions{}); !errors.Is(err, validation.ErrNilSchema) {
		t.Fatalf("expected ErrNilSchema, got %v", err)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	matches, err := fs.Glob(formfields.EmbeddedTemplates(), "fields/*.tmpl")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) < 5 {
		t.Fatalf("expected bundled field templates, got %v", matches)
	}
}

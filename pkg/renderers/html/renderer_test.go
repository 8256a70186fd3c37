package html_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/html"
	"github.com/goliatone/go-formfields/pkg/renderers/html/components"
	"github.com/goliatone/go-formfields/pkg/schema"
	"github.com/goliatone/go-formfields/pkg/testsupport"
)

const profileSchema = `
fields:
  first_name:
    label: First name
    placeholder: Ada
    validate:
      required: true
      max: 40
  bio:
    type: textarea
    description: A few words about you.
  age:
    type: number
    validate:
      min: 18
  plan:
    type: select
    placeholder: Choose a plan
    options:
      free: Free
      pro: Pro
  colour:
    type: radio
    options: [red, green]
  topics:
    type: checkboxes
    options: [go, php, js]
  newsletter:
    type: checkbox
    checked_value: "yes"
  password:
    type: password
  ref:
    type: hidden
    default: landing
  website:
    type: url
    attributes:
      data-track: "site"
      onclick: "alert(1)"
`

func newRenderer(t *testing.T, opts ...html.Option) *html.Renderer {
	t.Helper()
	r, err := html.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func renderForm(t *testing.T, r *html.Renderer, sources model.Sources, opts render.RenderOptions) string {
	t.Helper()
	s := testsupport.ParseSchema(t, profileSchema)
	out, err := r.Render(context.Background(), model.Build(s, sources), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderControls(t *testing.T) {
	out := renderForm(t, newRenderer(t), model.Sources{
		Submitted: map[string]any{
			"first_name": "Ada <The Countess>",
			"plan":       "pro",
			"colour":     "green",
			"topics[]":   []string{"go", "js"},
			"newsletter": "yes",
			"password":   "secret",
		},
	}, render.RenderOptions{})

	wants := []string{
		`<label for="ff-first_name">First name <span class="ff-required" aria-hidden="true">*</span></label>`,
		`<input type="text" id="ff-first_name" name="first_name" value="Ada &lt;The Countess&gt;" placeholder="Ada" required maxlength="40">`,
		`<textarea id="ff-bio" name="bio" aria-describedby="ff-bio-description"></textarea>`,
		`<p class="ff-description" id="ff-bio-description">A few words about you.</p>`,
		`<input type="number" id="ff-age" name="age" value="" min="18" step="any">`,
		`<option value="">Choose a plan</option>`,
		`<option value="pro" selected>Pro</option>`,
		`<fieldset class="ff-field ff-field--radio" data-field="colour">`,
		`<legend>Colour</legend>`,
		`<input type="radio" id="ff-colour-1" name="colour" value="green" checked>`,
		`<input type="checkbox" id="ff-topics-0" name="topics[]" value="go" checked>`,
		`<input type="checkbox" id="ff-topics-1" name="topics[]" value="php">`,
		`<input type="checkbox" id="ff-newsletter" name="newsletter" value="yes" checked>`,
		`<input type="password" id="ff-password" name="password" value="">`,
		`<input type="hidden" id="ff-ref" name="ref" value="landing">`,
		` data-track="site">`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "<form") {
		t.Fatalf("renderer must not emit a form element")
	}
	if strings.Contains(out, "onclick") {
		t.Fatalf("event handler attributes must be dropped")
	}
	if strings.Contains(out, "secret") {
		t.Fatalf("password values must not be echoed")
	}
}

func TestRenderErrorsAndHiddenFields(t *testing.T) {
	out := renderForm(t, newRenderer(t), model.Sources{
		Errors: map[string][]string{"first_name": {"First name is required."}},
	}, render.RenderOptions{
		Errors: map[string][]string{
			"first_name": {"First name is required."},
			"age":        {"Age must be at least 18."},
			"_form":      {"Please fix the errors below."},
		},
		Hidden: render.MergeHiddenFields(nil, render.NonceField("_wpnonce", "n<1>"), render.MethodField("put")),
	})

	if !strings.HasPrefix(out, `<input type="hidden" name="_method" value="PUT">`+"\n"+`<input type="hidden" name="_wpnonce" value="n&lt;1&gt;">`) {
		t.Fatalf("expected hidden fields first, got\n%s", out)
	}
	if strings.Count(out, "First name is required.") != 1 {
		t.Fatalf("expected duplicate messages to be merged\n%s", out)
	}
	wants := []string{
		`<div class="ff-form-errors" role="alert">`,
		`<li>Please fix the errors below.</li>`,
		`<div class="ff-field ff-field--text ff-field--required ff-field--invalid" data-field="first_name">`,
		`aria-invalid="true" aria-describedby="ff-first_name-errors"`,
		`<ul class="ff-errors" id="ff-first_name-errors" role="alert">`,
		`<li>Age must be at least 18.</li>`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestRenderValuePrecedence(t *testing.T) {
	type profile struct {
		FirstName string
		Bio       string
	}
	out := renderForm(t, newRenderer(t), model.Sources{
		Submitted: map[string]any{"bio": "submitted <b>bio</b>"},
		Entity:    profile{FirstName: "Grace", Bio: "stored"},
	}, render.RenderOptions{})

	if !strings.Contains(out, `value="Grace"`) {
		t.Fatalf("expected entity value\n%s", out)
	}
	if !strings.Contains(out, `>submitted &lt;b&gt;bio&lt;/b&gt;</textarea>`) {
		t.Fatalf("expected escaped submitted value to win\n%s", out)
	}
}

func TestTemplateOverrideDir(t *testing.T) {
	r := newRenderer(t, html.WithTemplatesDir(filepath.Join("testdata", "override")))
	out := renderForm(t, r, model.Sources{}, render.RenderOptions{})

	if !strings.Contains(out, `<textarea id="ff-bio" name="bio" data-override="true"></textarea>`) {
		t.Fatalf("expected override template\n%s", out)
	}
	if !strings.Contains(out, `<input type="text" id="ff-first_name"`) {
		t.Fatalf("expected bundled templates for other fields\n%s", out)
	}
}

func TestCustomComponent(t *testing.T) {
	r := newRenderer(t, html.WithComponent("color", components.Descriptor{
		Chrome: true,
		Renderer: func(buf *bytes.Buffer, field model.Field, _ components.ComponentData) error {
			buf.WriteString(`<color-picker name="` + field.Name + `"></color-picker>`)
			return nil
		},
	}))

	field := model.BuildField(schema.FieldConfig{Name: "accent", Type: schema.FieldTypeColor, ID: "ff-accent", Label: "Accent"}, model.Sources{})
	out, err := r.RenderField(context.Background(), field, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render field: %v", err)
	}
	if !strings.Contains(string(out), `<color-picker name="accent"></color-picker>`) {
		t.Fatalf("expected custom component\n%s", out)
	}
	if !strings.Contains(string(out), `<label for="ff-accent">Accent</label>`) {
		t.Fatalf("expected chrome around custom component\n%s", out)
	}
}

func TestRenderFieldTranslates(t *testing.T) {
	r := newRenderer(t)
	cfg, err := schema.Normalize(schema.FieldConfig{Name: "email", Type: schema.FieldTypeEmail})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	field := model.BuildField(cfg, model.Sources{})

	out, err := r.RenderField(context.Background(), field, render.RenderOptions{
		Locale: "es",
		Translator: render.TranslatorFunc(func(_, key string, _ ...any) (string, error) {
			if key == "Email" {
				return "Correo", nil
			}
			return "", nil
		}),
		Errors: map[string][]string{"email": {"Invalid"}},
	})
	if err != nil {
		t.Fatalf("render field: %v", err)
	}
	for _, want := range []string{`<label for="ff-email">Correo</label>`, `<li>Invalid</li>`, `type="email"`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("expected %q in\n%s", want, out)
		}
	}
}

func TestRenderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := testsupport.ParseSchema(t, profileSchema)
	if _, err := newRenderer(t).Render(ctx, model.Build(s, model.Sources{}), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

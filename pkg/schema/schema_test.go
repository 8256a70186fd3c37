package schema

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePreservesDeclarationOrder(t *testing.T) {
	data, err := os.ReadFile("testdata/profile.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []string{"first_name", "email", "plan", "newsletter"}
	if diff := cmp.Diff(want, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	plan, ok := s.Field("plan")
	if !ok {
		t.Fatalf("expected plan field")
	}
	wantOptions := Options{{Value: "free", Label: "Free"}, {Value: "pro", Label: "Pro"}}
	if diff := cmp.Diff(wantOptions, plan.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if plan.Default != "free" {
		t.Fatalf("expected default free, got %#v", plan.Default)
	}

	first, _ := s.Field("first_name")
	if first.Label != "First Name" || first.ID != "ff-first_name" {
		t.Fatalf("unexpected derived label/id: %q %q", first.Label, first.ID)
	}
	if first.Validate.Max == nil || *first.Validate.Max != 40 {
		t.Fatalf("expected max 40, got %v", first.Validate.Max)
	}

	newsletter, _ := s.Field("newsletter")
	if newsletter.Type != FieldTypeCheckbox || newsletter.CheckedValue != "1" {
		t.Fatalf("unexpected shorthand field: %#v", newsletter)
	}
}

func TestParseFieldsNamedLikeConfigKeys(t *testing.T) {
	cases := []struct {
		name      string
		doc       string
		wantNames []string
	}{
		{
			name:      "field named type",
			doc:       "fields:\n  title:\n    type: text\n  type:\n    type: select\n    options: [post, page]\n",
			wantNames: []string{"title", "type"},
		},
		{
			name:      "field named validate",
			doc:       "fields:\n  validate:\n    type: checkbox\n  name: text\n",
			wantNames: []string{"validate", "name"},
		},
		{
			name:      "type shorthands",
			doc:       "fields:\n  type: select\n  email: email\n",
			wantNames: []string{"type", "email"},
		},
		{
			name:      "single field called fields",
			doc:       "fields:\n  type: text\n  label: Heading\n  validate:\n    required: true\n",
			wantNames: []string{"fields"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Parse([]byte(tc.doc))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tc.wantNames, s.Names()); diff != "" {
				t.Fatalf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}

	s, err := Parse([]byte(cases[0].doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	typ, _ := s.Field("type")
	if typ.Type != FieldTypeSelect || !cmp.Equal([]string{"post", "page"}, typ.Options.Values()) {
		t.Fatalf("unexpected field named type: %#v", typ)
	}
}

func TestLoadFileJSONList(t *testing.T) {
	s, err := LoadFile("testdata/profile.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	alpha, _ := s.Field("alpha")
	if diff := cmp.Diff([]string{"a", "b"}, alpha.Options.Values()); diff != "" {
		t.Fatalf("option values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS(t *testing.T) {
	s, err := LoadFS(os.DirFS("testdata"), "profile.yaml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("expected 4 fields, got %d", s.Len())
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{name: "empty", doc: "  ", want: ErrEmptyDocument},
		{name: "unknown type", doc: "a:\n  type: slider\n", want: ErrUnknownType},
		{name: "inverted bounds", doc: "a:\n  validate:\n    min: 5\n    max: 1\n", want: ErrInvalidRule},
		{name: "bad pattern", doc: "a:\n  validate:\n    pattern: '[a-'\n", want: ErrInvalidRule},
		{name: "duplicate option", doc: "a:\n  type: select\n  options: [x, x]\n", want: ErrInvalidOptions},
		{name: "unknown message", doc: "a:\n  validate:\n    messages:\n      bogus: nope\n", want: ErrInvalidRule},
		{name: "duplicate field", doc: "fields:\n  - name: a\n  - name: a\n", want: ErrDuplicateField},
		{name: "missing name", doc: "fields:\n  - type: text\n", want: ErrEmptyName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNormalizeAttributesAndAliases(t *testing.T) {
	cfg, err := Normalize(FieldConfig{
		Name: " bio ",
		Type: "WYSIWYG",
		Attributes: map[string]string{
			"rows":    " 4 ",
			"onclick": "alert(1)",
			"id":      "override",
			"Data-X":  "y",
		},
		Class: "  wide   tall ",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Name != "bio" || cfg.Type != FieldTypeEditor {
		t.Fatalf("unexpected name/type %q %q", cfg.Name, cfg.Type)
	}
	want := map[string]string{"rows": "4", "data-x": "y"}
	if diff := cmp.Diff(want, cfg.Attributes); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if cfg.Class != "wide tall" {
		t.Fatalf("unexpected class %q", cfg.Class)
	}
}

func TestRulesOrderAndImplicitOptions(t *testing.T) {
	cfg, err := Normalize(FieldConfig{
		Name:    "size",
		Type:    FieldTypeSelect,
		Options: Options{{Value: "s"}, {Value: "m"}},
		Validate: Validation{
			Required: true,
			Min:      Float(1),
			Pattern:  "^[a-z]$",
			Format:   "alpha",
			Callback: "stock",
		},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := []Rule{
		{Kind: RuleRequired},
		{Kind: RuleMin, Value: "1"},
		{Kind: RuleFormat, Value: "alpha"},
		{Kind: RulePattern, Value: "^[a-z]$"},
		{Kind: RuleOptions},
		{Kind: RuleCallback, Value: "stock"},
	}
	if diff := cmp.Diff(want, cfg.Rules()); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	cfg.Validate.Options = Bool(false)
	for _, rule := range cfg.Rules() {
		if rule.Kind == RuleOptions {
			t.Fatalf("expected options rule to be disabled")
		}
	}
}

func TestCompilePatternDelimited(t *testing.T) {
	re, err := CompilePattern("/^abc$/i")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !re.MatchString("ABC") {
		t.Fatalf("expected case-insensitive match")
	}

	plain, err := CompilePattern("/docs/[a-z]+")
	if err != nil {
		t.Fatalf("compile plain: %v", err)
	}
	if !plain.MatchString("/docs/intro") {
		t.Fatalf("expected plain pattern to match path")
	}
}

func TestMustAddChainsAndPanics(t *testing.T) {
	s := MustNew().
		MustAdd(FieldConfig{Name: "first_name"}).
		MustAdd(FieldConfig{Name: "email", Type: FieldTypeEmail})

	if diff := cmp.Diff([]string{"first_name", "email"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	cfg, _ := s.Field("first_name")
	if cfg.Label != "First Name" || cfg.ID != "ff-first_name" {
		t.Fatalf("unexpected derived label/id: %q %q", cfg.Label, cfg.ID)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for duplicate field")
		}
	}()
	s.MustAdd(FieldConfig{Name: "email"})
}

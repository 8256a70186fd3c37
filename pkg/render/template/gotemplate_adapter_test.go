package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formfields/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formfields/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if want := "Hello Ada!"; result != want || written != want {
		t.Fatalf("render mismatch: result %q, written %q, want %q", result, written, want)
	}
}

func TestEngineEscapesValues(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("escape.tmpl", struct {
		HTML string `json:"html"`
	}{HTML: `<script>alert("x")</script>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<script>") {
		t.Fatalf("expected escaped output, got %q", result)
	}
}

func TestEngineOverrideDirWins(t *testing.T) {
	engine := newEngine(t,
		gotemplate.WithOverrideDir(filepath.Join("testdata", "missing")),
		gotemplate.WithOverrideDir(filepath.Join("testdata", "override")),
	)

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Hi Ada, from the override."; result != want {
		t.Fatalf("expected override template, got %q", result)
	}

	// Templates the override dir does not carry fall through to the bundle.
	result, err = engine.RenderTemplate("use-global", map[string]any{"settings": map[string]any{"env": "dev"}})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if result != "env=dev" {
		t.Fatalf("unexpected fallback output %q", result)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})
	if want := "env=staging"; result != want || written != want {
		t.Fatalf("render mismatch: result %q, written %q", result, written)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter to be rejected")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected filter output %q", result)
	}
}

func TestEngineRenderString(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderString("{{ a|trim }}-{{ b }}", map[string]any{"a": "  x ", "b": 2})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "x-2" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template sources")
	}
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(append(opts, gotemplate.WithFS(templatesFS))...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

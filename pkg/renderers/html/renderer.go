// Package html renders schema fields as HTML controls. Each control comes from
// a pongo2 template under templates/fields; the label, description and error
// chrome around it is built in Go. The renderer never emits a <form> element.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render"
	rendertemplate "github.com/goliatone/go-formfields/pkg/render/template"
	"github.com/goliatone/go-formfields/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formfields/pkg/renderers/html/components"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDirs     []string
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	extra            map[string]components.Descriptor
	logger           *zap.Logger
}

// WithTemplatesFS replaces the bundled templates.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir adds a directory whose templates override bundled ones
// file by file. Earlier directories win.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path = strings.TrimSpace(path); path != "" {
			cfg.templateDirs = append(cfg.templateDirs, path)
		}
	}
}

// WithTemplateRenderer injects a template engine, bypassing the built-in one.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the component registry.
func WithComponents(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithComponent registers or overrides one component. Registering under a
// field type name makes every field of that type use it.
func WithComponent(name string, descriptor components.Descriptor) Option {
	return func(cfg *config) {
		if cfg.extra == nil {
			cfg.extra = make(map[string]components.Descriptor)
		}
		cfg.extra[name] = descriptor
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer draws fields as HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
	logger    *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engineOpts := []gotemplate.Option{
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithLogger(cfg.logger),
		}
		for _, dir := range cfg.templateDirs {
			engineOpts = append(engineOpts, gotemplate.WithOverrideDir(dir))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	registry := cfg.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	} else {
		registry = registry.Clone()
	}
	for name, descriptor := range cfg.extra {
		if err := registry.Register(name, descriptor); err != nil {
			return nil, fmt.Errorf("html renderer: %w", err)
		}
	}

	return &Renderer{templates: templates, registry: registry, logger: cfg.logger}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return Name
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws hidden inputs, form-level errors and then every field in
// order. Errors in options are merged into the fields they name.
func (r *Renderer) Render(ctx context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	fields := make([]model.Field, len(form.Fields))
	copy(fields, form.Fields)
	form = model.Form{Fields: fields}

	mapping := render.MapErrors(form, options.Errors)
	for i := range form.Fields {
		if extra := mapping.Fields[form.Fields[i].Name]; len(extra) > 0 {
			form.Fields[i].Errors = render.MergeFormErrors(form.Fields[i].Errors, extra...)
		}
	}
	render.LocalizeForm(&form, options)

	var buf bytes.Buffer
	for _, hidden := range render.SortedHiddenFields(options.Hidden) {
		writeHiddenInput(&buf, hidden)
	}
	writeFormErrors(&buf, mapping.Form)

	for _, field := range form.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		markup, err := r.renderField(field)
		if err != nil {
			return nil, err
		}
		buf.WriteString(markup)
	}

	r.logger.Debug("form rendered",
		zap.Int("fields", len(form.Fields)),
		zap.Int("hidden", len(options.Hidden)),
		zap.Bool("errors", form.HasErrors() || len(mapping.Form) > 0),
	)
	return buf.Bytes(), nil
}

// RenderField draws a single field with its chrome.
func (r *Renderer) RenderField(ctx context.Context, field model.Field, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if extra := options.Errors[field.Name]; len(extra) > 0 {
		field.Errors = render.MergeFormErrors(field.Errors, extra...)
	}
	render.LocalizeField(&field, options)

	markup, err := r.renderField(field)
	if err != nil {
		return nil, err
	}
	return []byte(markup), nil
}

func (r *Renderer) renderField(field model.Field) (string, error) {
	name := r.registry.ForType(field.Type)
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("html renderer: component %q not registered for field %q", name, field.Name)
	}

	var control bytes.Buffer
	data := components.ComponentData{Template: r.templates, Control: controlData(field)}
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("html renderer: render component %q for field %q: %w", name, field.Name, err)
	}

	if !descriptor.Chrome {
		return strings.TrimSpace(control.String()) + "\n", nil
	}
	return buildFieldMarkup(field, descriptor, control.String()), nil
}

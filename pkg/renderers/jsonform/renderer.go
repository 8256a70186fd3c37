// Package jsonform renders resolved fields as JSON for client-side form
// builders. It carries the same values, errors and translations the HTML
// renderer draws.
package jsonform

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render"
)

// Name is the registry key of the renderer.
const Name = "json"

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints output with the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	indent string
	logger *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// Document is the rendered payload.
type Document struct {
	Hidden []render.HiddenField `json:"hidden,omitempty"`
	Errors []string             `json:"errors,omitempty"`
	Fields []model.Field        `json:"fields"`
}

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "application/json" }

// Render encodes the form. Error keys that match no field end up in the
// document level errors list.
func (r *Renderer) Render(ctx context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
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

	doc := Document{
		Hidden: render.SortedHiddenFields(options.Hidden),
		Errors: mapping.Form,
		Fields: form.Fields,
	}
	out, err := r.encode(doc)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("form encoded", zap.Int("fields", len(doc.Fields)), zap.Int("bytes", len(out)))
	return out, nil
}

// RenderField encodes a single field object.
func (r *Renderer) RenderField(ctx context.Context, field model.Field, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if extra := options.Errors[field.Name]; len(extra) > 0 {
		field.Errors = render.MergeFormErrors(field.Errors, extra...)
	}
	render.LocalizeField(&field, options)
	return r.encode(field)
}

func (r *Renderer) encode(v any) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(v, "", r.indent)
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode: %w", err)
	}
	return out, nil
}

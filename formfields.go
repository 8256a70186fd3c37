package formfields

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/html"
	"github.com/goliatone/go-formfields/pkg/schema"
	"github.com/goliatone/go-formfields/pkg/validation"
)

// ErrUnknownField is returned by RenderField for names the schema lacks.
var ErrUnknownField = errors.New("formfields: unknown field")

// RenderOptions aliases render.RenderOptions so callers configuring values,
// errors and hidden inputs need only the root package.
type RenderOptions = render.RenderOptions

// Result aliases validation.Result.
type Result = validation.Result

// Render resolves every field of s against opts and draws it with the HTML
// renderer. The surrounding <form> element belongs to the caller.
func Render(ctx context.Context, s *schema.Schema, opts RenderOptions, rendererOpts ...html.Option) ([]byte, error) {
	if s == nil {
		return nil, validation.ErrNilSchema
	}
	renderer, err := html.New(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("formfields: %w", err)
	}
	return renderer.Render(ctx, model.Build(s, opts.Sources()), opts)
}

// RenderField draws the single field called name.
func RenderField(ctx context.Context, s *schema.Schema, name string, opts RenderOptions, rendererOpts ...html.Option) ([]byte, error) {
	if s == nil {
		return nil, validation.ErrNilSchema
	}
	cfg, ok := s.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	renderer, err := html.New(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("formfields: %w", err)
	}
	return renderer.RenderField(ctx, model.BuildField(cfg, opts.Sources()), opts)
}

// Validate checks data against s and returns sanitized values with the
// accumulated errors. The error return is reserved for configuration
// problems, such as a field naming a callback that was never registered.
func Validate(ctx context.Context, s *schema.Schema, data map[string]any, opts ...validation.Option) (Result, error) {
	v, err := validation.New(s, opts...)
	if err != nil {
		return Result{}, err
	}
	return v.Validate(ctx, data), nil
}

// ValidateForm is Validate for url.Values such as http.Request.PostForm.
func ValidateForm(ctx context.Context, s *schema.Schema, form url.Values, opts ...validation.Option) (Result, error) {
	v, err := validation.New(s, opts...)
	if err != nil {
		return Result{}, err
	}
	return v.ValidateForm(ctx, form), nil
}

// EmbeddedTemplates exposes the bundled field templates so callers can copy
// or extend them. Names read "fields/input.tmpl".
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

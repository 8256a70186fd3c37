package render

import (
	"context"

	"github.com/goliatone/go-formfields/pkg/model"
)

// Renderer turns resolved fields into markup. Implementations render field
// controls only; the surrounding <form> element belongs to the caller.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, options RenderOptions) ([]byte, error)
	RenderField(ctx context.Context, field model.Field, options RenderOptions) ([]byte, error)
}

package render

import (
	"github.com/goliatone/go-formfields/pkg/model"
)

// RenderOptions carry per-request data: submitted values to re-populate,
// validation errors to display and hidden inputs to emit.
type RenderOptions struct {
	// Values are submitted values keyed by field name. They win over the
	// entity and the schema defaults.
	Values map[string]any
	// Errors are validation messages keyed by field name. Keys that do not
	// match a field are rendered as form-level errors.
	Errors map[string][]string
	// Entity supplies stored values through entity.Lookup.
	Entity any
	// Hidden inputs are emitted before the visible fields, sorted by name.
	Hidden map[string]string

	// Locale and Translator localise labels, descriptions, placeholders and
	// option labels. The untranslated text is the lookup key.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Sources converts the options into model build sources.
func (o RenderOptions) Sources() model.Sources {
	return model.Sources{
		Submitted: o.Values,
		Entity:    o.Entity,
		Errors:    o.Errors,
	}
}

package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/schema"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when options
// ask for a locale but carry no translator.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves a message in a locale. The untranslated text is the key.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what to show when a lookup fails.
type MissingTranslationHandler func(locale, key string, err error) string

func missingTranslationDefault(_ string, key string, _ error) string {
	return key
}

// LocalizeForm translates the human-readable text of every field in place.
// Nothing happens when neither a locale nor a translator is set.
func LocalizeForm(form *model.Form, opts RenderOptions) {
	if form == nil || (opts.Translator == nil && strings.TrimSpace(opts.Locale) == "") {
		return
	}
	for i := range form.Fields {
		LocalizeField(&form.Fields[i], opts)
	}
}

// LocalizeField translates one field in place.
func LocalizeField(field *model.Field, opts RenderOptions) {
	if field == nil || (opts.Translator == nil && strings.TrimSpace(opts.Locale) == "") {
		return
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	tr := func(text string) string {
		return translate(opts.Locale, text, opts.Translator, onMissing)
	}

	field.Label = tr(field.Label)
	field.Description = tr(field.Description)
	field.Placeholder = tr(field.Placeholder)
	if len(field.Options) > 0 {
		options := make(schema.Options, len(field.Options))
		copy(options, field.Options)
		for i := range options {
			options[i].Label = tr(options[i].Label)
		}
		field.Options = options
	}
}

func translate(locale, key string, t Translator, onMissing MissingTranslationHandler) string {
	if strings.TrimSpace(key) == "" {
		return key
	}
	if t == nil {
		return onMissing(locale, key, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, err)
}

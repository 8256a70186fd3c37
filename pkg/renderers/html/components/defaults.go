package components

import (
	"bytes"
	"fmt"
	"html"

	"github.com/goliatone/go-formfields/pkg/model"
)

// Built-in component names.
const (
	NameInput      = "input"
	NameTextarea   = "textarea"
	NameEditor     = "editor"
	NameSelect     = "select"
	NameRadio      = "radio"
	NameCheckbox   = "checkbox"
	NameCheckboxes = "checkboxes"
	NameHidden     = "hidden"
)

// TemplatePrefix is where field templates live inside the bundle.
const TemplatePrefix = "fields/"

// NewDefaultRegistry returns a registry holding the built-in controls.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(NameInput, Descriptor{Renderer: TemplateRenderer(TemplatePrefix + "input.tmpl"), Chrome: true})
	registry.MustRegister(NameTextarea, Descriptor{Renderer: TemplateRenderer(TemplatePrefix + "textarea.tmpl"), Chrome: true})
	registry.MustRegister(NameEditor, Descriptor{Renderer: TemplateRenderer(TemplatePrefix + "editor.tmpl"), Chrome: true})
	registry.MustRegister(NameSelect, Descriptor{Renderer: TemplateRenderer(TemplatePrefix + "select.tmpl"), Chrome: true})
	registry.MustRegister(NameRadio, Descriptor{Renderer: TemplateRenderer(TemplatePrefix + "radio.tmpl"), Chrome: true, Group: true})
	registry.MustRegister(NameCheckbox, Descriptor{Renderer: TemplateRenderer(TemplatePrefix + "checkbox.tmpl"), Chrome: true})
	registry.MustRegister(NameCheckboxes, Descriptor{Renderer: TemplateRenderer(TemplatePrefix + "checkboxes.tmpl"), Chrome: true, Group: true})
	registry.MustRegister(NameHidden, Descriptor{Renderer: hiddenRenderer})
	return registry
}

// TemplateRenderer renders a component through the named template. The
// template receives the ComponentData.Control values.
func TemplateRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, _ model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}
		rendered, err := data.Template.RenderTemplate(templateName, data.Control)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

func hiddenRenderer(buf *bytes.Buffer, field model.Field, _ ComponentData) error {
	fmt.Fprintf(buf, `<input type="hidden" id="%s" name="%s" value="%s">`,
		html.EscapeString(field.ID),
		html.EscapeString(field.InputName()),
		html.EscapeString(field.String()),
	)
	return nil
}

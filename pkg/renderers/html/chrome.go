package html

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/html/components"
	"github.com/goliatone/go-formfields/pkg/schema"
)

// CSS hooks emitted by the chrome.
const (
	classField       = "ff-field"
	classRequired    = "ff-required"
	classDescription = "ff-description"
	classErrors      = "ff-errors"
	classFormErrors  = "ff-form-errors"
)

func descriptionID(field model.Field) string { return field.ID + "-description" }
func errorsID(field model.Field) string      { return field.ID + "-errors" }

func describedBy(field model.Field) string {
	var ids []string
	if strings.TrimSpace(field.Description) != "" {
		ids = append(ids, descriptionID(field))
	}
	if len(field.Errors) > 0 {
		ids = append(ids, errorsID(field))
	}
	return strings.Join(ids, " ")
}

// controlData is the template context for a field control.
func controlData(field model.Field) map[string]any {
	value := field.String()
	if field.Type == schema.FieldTypePassword {
		value = ""
	}
	inputType := string(field.Type)
	if inputType == "" {
		inputType = string(schema.FieldTypeText)
	}

	options := make([]map[string]any, 0, len(field.Options))
	for i, opt := range field.Options {
		options = append(options, map[string]any{
			"value":    opt.Value,
			"label":    opt.Label,
			"selected": field.Selected(opt.Value),
			"id":       fmt.Sprintf("%s-%d", field.ID, i),
		})
	}

	checkedValue := field.Config.CheckedValue
	if checkedValue == "" {
		checkedValue = "1"
	}

	return map[string]any{
		"type":          inputType,
		"name":          field.InputName(),
		"id":            field.ID,
		"value":         value,
		"class":         field.Class,
		"placeholder":   field.Placeholder,
		"required":      field.Required,
		"invalid":       len(field.Errors) > 0,
		"describedby":   describedBy(field),
		"attributes":    attributeString(field),
		"options":       options,
		"multiple":      field.Type.Multiple(),
		"checked":       field.Checked(),
		"checked_value": checkedValue,
	}
}

// attributeString renders constraint and user attributes, already escaped,
// with a leading space. User attributes win over derived constraints.
func attributeString(field model.Field) string {
	attrs := constraintAttributes(field)
	for name, value := range field.Attributes {
		attrs[name] = value
	}
	if len(attrs) == 0 {
		return ""
	}

	var b strings.Builder
	for _, name := range sortedNames(attrs) {
		b.WriteByte(' ')
		b.WriteString(stdhtml.EscapeString(name))
		if value := attrs[name]; value != "" {
			b.WriteString(`="`)
			b.WriteString(stdhtml.EscapeString(value))
			b.WriteByte('"')
		}
	}
	return b.String()
}

func constraintAttributes(field model.Field) map[string]string {
	attrs := make(map[string]string)
	v := field.Config.Validate
	bound := func(value float64) string { return strconv.FormatFloat(value, 'f', -1, 64) }

	switch field.Type {
	case schema.FieldTypeNumber:
		if v.Min != nil {
			attrs["min"] = bound(*v.Min)
		}
		if v.Max != nil {
			attrs["max"] = bound(*v.Max)
		}
		if v.Format == "integer" {
			attrs["step"] = "1"
		} else {
			attrs["step"] = "any"
		}
	case schema.FieldTypeText, schema.FieldTypeEmail, schema.FieldTypeURL, schema.FieldTypeTel,
		schema.FieldTypePassword, schema.FieldTypeTextarea:
		if v.Min != nil {
			attrs["minlength"] = bound(*v.Min)
		}
		if v.Max != nil {
			attrs["maxlength"] = bound(*v.Max)
		}
	}
	return attrs
}

func buildFieldMarkup(field model.Field, descriptor components.Descriptor, control string) string {
	var b strings.Builder
	b.Grow(len(control) + 256)

	wrapper := "div"
	if descriptor.Group {
		wrapper = "fieldset"
	}

	b.WriteString("<" + wrapper + ` class="` + classField + " " + classField + "--" + stdhtml.EscapeString(string(field.Type)))
	if field.Required {
		b.WriteString(" " + classField + "--required")
	}
	if len(field.Errors) > 0 {
		b.WriteString(" " + classField + "--invalid")
	}
	b.WriteString(`" data-field="` + stdhtml.EscapeString(field.Name) + `">` + "\n")

	if label := strings.TrimSpace(field.Label); label != "" {
		if descriptor.Group {
			b.WriteString("    <legend>")
		} else {
			b.WriteString(`    <label for="` + stdhtml.EscapeString(field.ID) + `">`)
		}
		b.WriteString(stdhtml.EscapeString(label))
		if field.Required {
			b.WriteString(` <span class="` + classRequired + `" aria-hidden="true">*</span>`)
		}
		if descriptor.Group {
			b.WriteString("</legend>\n")
		} else {
			b.WriteString("</label>\n")
		}
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if desc := strings.TrimSpace(field.Description); desc != "" {
		b.WriteString(`    <p class="` + classDescription + `" id="` + stdhtml.EscapeString(descriptionID(field)) + `">`)
		b.WriteString(stdhtml.EscapeString(desc))
		b.WriteString("</p>\n")
	}

	if len(field.Errors) > 0 {
		b.WriteString(`    <ul class="` + classErrors + `" id="` + stdhtml.EscapeString(errorsID(field)) + `" role="alert">` + "\n")
		for _, message := range field.Errors {
			b.WriteString("        <li>" + stdhtml.EscapeString(message) + "</li>\n")
		}
		b.WriteString("    </ul>\n")
	}

	b.WriteString("</" + wrapper + ">\n")
	return b.String()
}

func writeHiddenInput(buf *bytes.Buffer, field render.HiddenField) {
	fmt.Fprintf(buf, `<input type="hidden" name="%s" value="%s">`+"\n",
		stdhtml.EscapeString(field.Name), stdhtml.EscapeString(field.Value))
}

func writeFormErrors(buf *bytes.Buffer, messages []string) {
	if len(messages) == 0 {
		return
	}
	buf.WriteString(`<div class="` + classFormErrors + `" role="alert">` + "\n<ul>\n")
	for _, message := range messages {
		buf.WriteString("    <li>" + stdhtml.EscapeString(message) + "</li>\n")
	}
	buf.WriteString("</ul>\n</div>\n")
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

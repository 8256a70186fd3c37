// Package formfields renders HTML form fields from a declarative schema and
// validates submissions against the same schema.
//
// A schema is a YAML document (or a list of schema.FieldConfig) mapping field
// names to their type, label, validation rules and sanitizer:
//
//	s, err := schema.LoadFile("signup.yaml")
//	html, err := formfields.Render(ctx, s, formfields.RenderOptions{Values: submitted})
//	result, err := formfields.Validate(ctx, s, submitted)
//	if !result.Valid() {
//		html, err = formfields.Render(ctx, s, formfields.RenderOptions{
//			Values: submitted,
//			Errors: result.Errors,
//		})
//	}
//
// Rendering and validation live in pkg/renderers/html and pkg/validation; the
// functions here build a fresh renderer or validator per call. Long-lived
// callers should construct those once and reuse them.
package formfields

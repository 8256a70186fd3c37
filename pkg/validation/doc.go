// Package validation checks submitted data against a schema and returns the
// sanitized values together with an error map.
//
// The engine is table driven: every field config expands into an ordered list
// of schema.Rule values (required, min, max, format, pattern, options,
// callback) and each kind dispatches to one check function. Checks run
// independently and every failure is recorded, with two exceptions: a
// required failure stops the remaining checks for that field, and an empty
// optional field skips everything except callbacks.
//
// Values are sanitized before they are checked, so rules see the same value
// the caller receives in Result.Values.
//
//	v, err := validation.New(s, validation.WithCallback("unique_email", checkEmail))
//	if err != nil {
//		return err
//	}
//	result := v.Validate(ctx, data)
//	if !result.Valid() {
//		// re-render with result.Errors
//	}
package validation

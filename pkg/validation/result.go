package validation

// Result is the outcome of one Validate call.
type Result struct {
	// Values holds the sanitized value of every schema field, including
	// fields that failed validation so forms can be re-rendered.
	Values map[string]any
	Errors Errors
}

// Valid reports whether no errors were recorded.
func (r Result) Valid() bool {
	return r.Errors.Len() == 0
}

// Err returns the errors as an error value, or nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

// ValidValues returns only the values of fields without errors.
func (r Result) ValidValues() map[string]any {
	out := make(map[string]any, len(r.Values))
	for name, value := range r.Values {
		if !r.Errors.Has(name) {
			out[name] = value
		}
	}
	return out
}

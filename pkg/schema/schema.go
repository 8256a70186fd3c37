package schema

import "fmt"

// Schema is an ordered collection of field configs keyed by name.
type Schema struct {
	fields []FieldConfig
	index  map[string]int
}

// New builds a schema from configs, normalising each entry.
func New(fields ...FieldConfig) (*Schema, error) {
	s := &Schema{index: make(map[string]int, len(fields))}
	for _, cfg := range fields {
		if err := s.Add(cfg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustNew mirrors New but panics, which keeps package-level schema
// declarations short.
func MustNew(fields ...FieldConfig) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add normalises cfg and appends it. Names must be unique.
func (s *Schema) Add(cfg FieldConfig) error {
	normalized, err := Normalize(cfg)
	if err != nil {
		return err
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, exists := s.index[normalized.Name]; exists {
		return fmt.Errorf("schema: %w %q", ErrDuplicateField, normalized.Name)
	}
	s.index[normalized.Name] = len(s.fields)
	s.fields = append(s.fields, normalized)
	return nil
}

// MustAdd is Add for schemas declared in code, where a bad field is a bug.
func (s *Schema) MustAdd(cfg FieldConfig) *Schema {
	if err := s.Add(cfg); err != nil {
		panic(err)
	}
	return s
}

// Field returns the config registered under name.
func (s *Schema) Field(name string) (FieldConfig, bool) {
	if s == nil {
		return FieldConfig{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return FieldConfig{}, false
	}
	return s.fields[idx], true
}

// Has reports whether name is part of the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// Names returns field names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.fields))
	for _, cfg := range s.fields {
		names = append(names, cfg.Name)
	}
	return names
}

// Fields returns a copy of the field configs in declaration order.
func (s *Schema) Fields() []FieldConfig {
	if s == nil {
		return nil
	}
	return append([]FieldConfig(nil), s.fields...)
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

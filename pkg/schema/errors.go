package schema

import "errors"

var (
	// ErrEmptyName is returned when a field config has no name.
	ErrEmptyName = errors.New("field name is required")
	// ErrDuplicateField is returned when a schema already holds the name.
	ErrDuplicateField = errors.New("duplicate field")
	// ErrUnknownType is returned for field types the renderer cannot draw.
	ErrUnknownType = errors.New("unknown field type")
	// ErrInvalidRule is returned for rules that can never be satisfied or
	// cannot be compiled.
	ErrInvalidRule = errors.New("invalid validation rule")
	// ErrInvalidOptions is returned for empty or duplicated option values.
	ErrInvalidOptions = errors.New("invalid options")
	// ErrEmptyDocument is returned when a schema document has no content.
	ErrEmptyDocument = errors.New("schema: document is empty")
)

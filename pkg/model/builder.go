package model

import (
	"github.com/goliatone/go-formfields/pkg/entity"
	"github.com/goliatone/go-formfields/pkg/schema"
)

// Sources carries everything a field value can come from.
type Sources struct {
	// Submitted holds request data keyed by field name. A present key wins
	// even when its value is empty, so cleared inputs stay cleared on
	// re-render.
	Submitted map[string]any
	// Entity is an optional object consulted through entity.Lookup.
	Entity any
	// Errors attaches validation messages to fields by name.
	Errors map[string][]string
}

// Build resolves every schema field against sources.
func Build(s *schema.Schema, sources Sources) Form {
	configs := s.Fields()
	form := Form{Fields: make([]Field, 0, len(configs))}
	for _, cfg := range configs {
		form.Fields = append(form.Fields, BuildField(cfg, sources))
	}
	return form
}

// BuildField resolves a single field.
func BuildField(cfg schema.FieldConfig, sources Sources) Field {
	field := Field{
		Name:        cfg.Name,
		Type:        cfg.Type,
		ID:          cfg.ID,
		Label:       cfg.Label,
		Description: cfg.Description,
		Placeholder: cfg.Placeholder,
		Class:       cfg.Class,
		Required:    cfg.Required(),
		Value:       ResolveValue(cfg, sources),
		Options:     cfg.Options,
		Attributes:  cfg.Attributes,
		Config:      cfg,
	}
	if messages := sources.Errors[cfg.Name]; len(messages) > 0 {
		field.Errors = append([]string(nil), messages...)
	}
	return field
}

// ResolveValue applies the submitted, entity, value, default precedence.
func ResolveValue(cfg schema.FieldConfig, sources Sources) any {
	if sources.Submitted != nil {
		if value, ok := sources.Submitted[cfg.Name]; ok {
			return value
		}
		if cfg.Type.Multiple() {
			if value, ok := sources.Submitted[cfg.Name+"[]"]; ok {
				return value
			}
		}
	}
	if sources.Entity != nil {
		if value, ok := entity.Lookup(sources.Entity, cfg.Name); ok {
			return value
		}
	}
	if cfg.Value != nil {
		return cfg.Value
	}
	return cfg.Default
}

// Package model turns schema entries into renderable fields. Build resolves
// every field's current value from the available sources, in order:
//
//  1. the submitted data, when it contains the field name
//  2. the entity, via entity.Lookup
//  3. the configured Value
//  4. the configured Default
//
// Renderers consume the resulting Form and never look at the sources
// themselves.
package model

// Package schema describes form fields declaratively. A Schema is an ordered
// collection of FieldConfig entries keyed by field name; the same schema drives
// HTML rendering (pkg/renderers/html) and submission validation
// (pkg/validation).
//
// Schemas are usually parsed from JSON or YAML documents:
//
//	fields:
//	  email:
//	    type: email
//	    validate:
//	      required: true
//	  plan:
//	    type: select
//	    options:
//	      free: Free
//	      pro: Pro
//
// Document order is preserved, so fields render and validate in the order
// they are declared. Every entry passes through Normalize when added, which
// fills derived values (label, id) and rejects inconsistent rules early.
package schema

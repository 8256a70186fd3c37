// Package prompt fills a schema interactively from a terminal. Each field
// becomes one question chosen by its type, and the answers come back shaped
// like submitted form data so they can be handed straight to a
// validation.Validator.
package prompt

// Package sanitize holds the named sanitizers applied to submitted values
// before validation. Every field type has a default sanitizer (see ForType);
// schema entries can pick another by name or supply their own function.
//
// Text sanitizers strip markup with bluemonday's strict policy, while the
// "html" sanitizer keeps user-generated-content markup via the UGC policy.
package sanitize

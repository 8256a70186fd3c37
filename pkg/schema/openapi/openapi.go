// Package openapi builds field schemas from the request body of an OpenAPI 3
// operation.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfields/pkg/schema"
)

var (
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no usable body schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

// mediaTypes lists request body content types in preference order.
var mediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// FromOpenAPI loads an OpenAPI 3 document and converts the top-level
// properties of the operation's request body into a schema. Properties are
// added in name order.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (*schema.Schema, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(operation.RequestBody)
	if body == nil || len(body.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	s, err := schema.New()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		cfg := convertProperty(name, ref.Value)
		cfg.Validate.Required = required[name]
		if err := s.Add(cfg); err != nil {
			return nil, fmt.Errorf("openapi: property %q: %w", name, err)
		}
	}
	return s, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			id := operation.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			if id == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertProperty(name string, src *openapi3.Schema) schema.FieldConfig {
	cfg := schema.FieldConfig{
		Name:        name,
		Label:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		Type:        schema.FieldTypeText,
	}

	switch firstSchemaType(src.Type) {
	case openapi3.TypeString:
		cfg.Type = stringFieldType(src.Format)
		if len(src.Enum) > 0 {
			cfg.Type = schema.FieldTypeSelect
			cfg.Options = enumOptions(src.Enum)
		}
		if src.MinLength != 0 {
			cfg.Validate.Min = schema.Float(float64(src.MinLength))
		}
		if src.MaxLength != nil {
			cfg.Validate.Max = schema.Float(float64(*src.MaxLength))
		}
		cfg.Validate.Pattern = src.Pattern
	case openapi3.TypeInteger, openapi3.TypeNumber:
		cfg.Type = schema.FieldTypeNumber
		if firstSchemaType(src.Type) == openapi3.TypeInteger {
			cfg.Validate.Format = "integer"
		}
		if src.Min != nil {
			cfg.Validate.Min = schema.Float(*src.Min)
		}
		if src.Max != nil {
			cfg.Validate.Max = schema.Float(*src.Max)
		}
	case openapi3.TypeBoolean:
		cfg.Type = schema.FieldTypeCheckbox
	case openapi3.TypeArray:
		if src.Items != nil && src.Items.Value != nil && len(src.Items.Value.Enum) > 0 {
			cfg.Type = schema.FieldTypeCheckboxes
			cfg.Options = enumOptions(src.Items.Value.Enum)
		}
		if src.MinItems != 0 {
			cfg.Validate.Min = schema.Float(float64(src.MinItems))
		}
		if src.MaxItems != nil {
			cfg.Validate.Max = schema.Float(float64(*src.MaxItems))
		}
	}
	return cfg
}

func stringFieldType(format string) schema.FieldType {
	switch format {
	case "email":
		return schema.FieldTypeEmail
	case "uri", "url":
		return schema.FieldTypeURL
	case "date":
		return schema.FieldTypeDate
	case "password":
		return schema.FieldTypePassword
	default:
		return schema.FieldTypeText
	}
}

func enumOptions(values []any) schema.Options {
	options := make(schema.Options, 0, len(values))
	for _, value := range values {
		text := fmt.Sprint(value)
		options = append(options, schema.Option{Value: text, Label: text})
	}
	return options
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	if values := types.Slice(); len(values) > 0 {
		return values[0]
	}
	return ""
}

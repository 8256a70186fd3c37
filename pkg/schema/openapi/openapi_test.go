package openapi

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/schema"
)

const petstore = `
openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name, species]
              properties:
                name:
                  type: string
                  minLength: 2
                  maxLength: 40
                species:
                  type: string
                  enum: [cat, dog]
                age:
                  type: integer
                  minimum: 0
                  maximum: 30
                owner_email:
                  type: string
                  format: email
                vaccinated:
                  type: boolean
                tags:
                  type: array
                  items:
                    type: string
                    enum: [indoor, outdoor]
      responses:
        "201":
          description: created
  /pets/{id}:
    delete:
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "204":
          description: deleted
`

func TestFromOpenAPI(t *testing.T) {
	s, err := FromOpenAPI(context.Background(), []byte(petstore), "createPet")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if diff := cmp.Diff([]string{"age", "name", "owner_email", "species", "tags", "vaccinated"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	types := map[string]schema.FieldType{}
	for _, cfg := range s.Fields() {
		types[cfg.Name] = cfg.Type
	}
	wantTypes := map[string]schema.FieldType{
		"age":         schema.FieldTypeNumber,
		"name":        schema.FieldTypeText,
		"owner_email": schema.FieldTypeEmail,
		"species":     schema.FieldTypeSelect,
		"tags":        schema.FieldTypeCheckboxes,
		"vaccinated":  schema.FieldTypeCheckbox,
	}
	if diff := cmp.Diff(wantTypes, types); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}

	name, _ := s.Field("name")
	if !name.Required() || *name.Validate.Min != 2 || *name.Validate.Max != 40 {
		t.Fatalf("unexpected name rules: %+v", name.Validate)
	}
	age, _ := s.Field("age")
	if age.Validate.Format != "integer" || *age.Validate.Max != 30 {
		t.Fatalf("unexpected age rules: %+v", age.Validate)
	}
	species, _ := s.Field("species")
	if diff := cmp.Diff([]string{"cat", "dog"}, species.Options.Values()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPIErrors(t *testing.T) {
	if _, err := FromOpenAPI(context.Background(), []byte(petstore), "missing"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := FromOpenAPI(context.Background(), []byte(petstore), "delete:/pets/{id}"); !errors.Is(err, ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := FromOpenAPI(context.Background(), nil, "createPet"); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

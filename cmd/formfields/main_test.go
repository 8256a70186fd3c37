package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/schema"
)

const signupSchema = `
fields:
  - name: name
    label: Name
    validate:
      required: true
      max: 20
  - name: email
    type: email
    label: Email
  - name: plan
    type: select
    options:
      - value: free
      - value: pro
`

const ordersDocument = `
openapi: 3.0.3
info:
  title: Orders
  version: "1.0"
paths:
  /orders:
    post:
      operationId: createOrder
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [sku]
              properties:
                sku:
                  type: string
                  maxLength: 12
                quantity:
                  type: integer
                  minimum: 1
      responses:
        "201":
          description: created
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FORMFIELDS_TEMPLATES_DIR", "")
	t.Setenv("FORMFIELDS_LOG_LEVEL", "error")
	t.Setenv("FORMFIELDS_VERBOSE", "false")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestValidateCommand(t *testing.T) {
	path := writeFile(t, "signup.yaml", signupSchema)

	out, err := run(t, `{"name": " Ada ", "email": "ada@example.com", "plan": "pro"}`, "validate", path)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	var got resultOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	want := resultOutput{Valid: true, Values: map[string]any{"name": "Ada", "email": "ada@example.com", "plan": "pro"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateCommandReportsInvalidData(t *testing.T) {
	schemaPath := writeFile(t, "signup.yaml", signupSchema)
	dataPath := writeFile(t, "data.json", `{"email": "nope", "plan": "gold"}`)

	out, err := run(t, "", "validate", schemaPath, "--data", dataPath)
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	var got resultOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Valid {
		t.Fatalf("expected invalid result")
	}
	for _, field := range []string{"name", "email", "plan"} {
		if len(got.Errors[field]) == 0 {
			t.Fatalf("expected error for %s, got %v", field, got.Errors)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	schemaPath := writeFile(t, "signup.yaml", signupSchema)
	valuesPath := writeFile(t, "values.json", `{"name": "Grace"}`)

	out, err := run(t, "", "render", schemaPath, "--values", valuesPath, "--hidden", "_nonce=abc")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`name="_nonce"`, `value="Grace"`, `<select`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = run(t, "", "render", schemaPath, "--field", "email")
	if err != nil {
		t.Fatalf("render field: %v", err)
	}
	if strings.Contains(out, `name="name"`) || !strings.Contains(out, `type="email"`) {
		t.Fatalf("unexpected single field output:\n%s", out)
	}
}

func TestRenderCommandJSONFormat(t *testing.T) {
	schemaPath := writeFile(t, "signup.yaml", signupSchema)

	out, err := run(t, "", "render", schemaPath, "--format", "json")
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	var doc struct {
		Fields []struct {
			Name string `json:"name"`
		} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(doc.Fields) != 3 || doc.Fields[0].Name != "name" {
		t.Fatalf("unexpected fields: %+v", doc.Fields)
	}

	if _, err := run(t, "", "render", schemaPath, "--format", "xml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestLintCommand(t *testing.T) {
	good := writeFile(t, "good.yaml", signupSchema)
	bad := writeFile(t, "bad.yaml", `
age:
  type: number
  validate:
    min: 10
    max: 2
`)

	out, err := run(t, "", "lint", good)
	if err != nil || !strings.Contains(out, "good.yaml: ok") {
		t.Fatalf("expected clean lint, got %v\n%s", err, out)
	}

	out, err = run(t, "", "lint", good, bad)
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	if !strings.Contains(out, "bad.yaml: age:") {
		t.Fatalf("expected issue for age, got:\n%s", out)
	}
}

func TestImportOpenAPICommand(t *testing.T) {
	docPath := writeFile(t, "orders.yaml", ordersDocument)

	out, err := run(t, "", "import-openapi", docPath, "--operation", "createOrder")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	s, err := schema.Parse([]byte(out))
	if err != nil {
		t.Fatalf("re-parse imported schema: %v\n%s", err, out)
	}
	if diff := cmp.Diff([]string{"quantity", "sku"}, s.Names()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
	sku, _ := s.Field("sku")
	if !sku.Required() || sku.Validate.Max == nil || *sku.Validate.Max != 12 {
		t.Fatalf("unexpected sku rules: %+v", sku.Validate)
	}
	quantity, _ := s.Field("quantity")
	if quantity.Type != schema.FieldTypeNumber {
		t.Fatalf("expected number type, got %q", quantity.Type)
	}
}

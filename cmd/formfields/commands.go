package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/html"
	"github.com/goliatone/go-formfields/pkg/renderers/jsonform"
	"github.com/goliatone/go-formfields/pkg/renderers/prompt"
	"github.com/goliatone/go-formfields/pkg/schema"
	"github.com/goliatone/go-formfields/pkg/schema/openapi"
	"github.com/goliatone/go-formfields/pkg/validation"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		valuesPath   string
		errorsPath   string
		templatesDir string
		field        string
		format       string
		hidden       map[string]string
	)
	cmd := &cobra.Command{
		Use:   "render <schema>",
		Short: "Render the schema fields as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schema.LoadFile(args[0])
			if err != nil {
				return err
			}
			opts := render.RenderOptions{Hidden: hidden}
			if valuesPath != "" {
				if err := readJSONFile(valuesPath, &opts.Values); err != nil {
					return err
				}
			}
			if errorsPath != "" {
				if err := readJSONFile(errorsPath, &opts.Errors); err != nil {
					return err
				}
			}

			rendererOpts := []html.Option{html.WithLogger(a.logger)}
			if templatesDir == "" {
				templatesDir = a.cfg.TemplatesDir
			}
			if templatesDir != "" {
				rendererOpts = append(rendererOpts, html.WithTemplatesDir(templatesDir))
			}
			htmlRenderer, err := html.New(rendererOpts...)
			if err != nil {
				return err
			}
			registry, err := render.NewRegistry(htmlRenderer, jsonform.New(jsonform.WithIndent("  "), jsonform.WithLogger(a.logger)))
			if err != nil {
				return err
			}
			renderer, err := registry.Get(format)
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.List(), ", "))
			}

			var out []byte
			if field != "" {
				cfg, ok := s.Field(field)
				if !ok {
					return fmt.Errorf("field %q not found in %s", field, args[0])
				}
				out, err = renderer.RenderField(cmd.Context(), model.BuildField(cfg, opts.Sources()), opts)
			} else {
				out, err = renderer.Render(cmd.Context(), model.Build(s, opts.Sources()), opts)
			}
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON file with values keyed by field name")
	cmd.Flags().StringVar(&errorsPath, "errors", "", "JSON file with error messages keyed by field name")
	cmd.Flags().StringVar(&templatesDir, "templates", "", "directory with field template overrides")
	cmd.Flags().StringVar(&field, "field", "", "render only this field")
	cmd.Flags().StringVar(&format, "format", html.Name, "output format: html or json")
	cmd.Flags().StringToStringVar(&hidden, "hidden", nil, "hidden inputs as name=value")
	return cmd
}

// resultOutput is the JSON shape printed by validate and fill.
type resultOutput struct {
	Valid  bool                `json:"valid"`
	Values map[string]any      `json:"values"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func (a *app) validateCmd() *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "validate <schema>",
		Short: "Validate and sanitize JSON data against the schema",
		Long: `Reads a JSON object from --data (or stdin) and prints the sanitized values
and errors as JSON. Exits with status 1 when the data is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schema.LoadFile(args[0])
			if err != nil {
				return err
			}
			v, err := validation.New(s, validation.WithLogger(a.logger))
			if err != nil {
				return err
			}
			var data map[string]any
			if dataPath == "" || dataPath == "-" {
				err = readJSON(a.stdin, &data)
			} else {
				err = readJSONFile(dataPath, &data)
			}
			if err != nil {
				return err
			}
			return a.writeResult(v.Validate(cmd.Context(), data))
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "JSON file with submitted data (stdin when empty)")
	return cmd
}

func (a *app) fillCmd() *cobra.Command {
	var (
		defaultsPath string
		check        bool
	)
	cmd := &cobra.Command{
		Use:   "fill <schema>",
		Short: "Fill the schema interactively and print the answers as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schema.LoadFile(args[0])
			if err != nil {
				return err
			}
			var defaults map[string]any
			if defaultsPath != "" {
				if err := readJSONFile(defaultsPath, &defaults); err != nil {
					return err
				}
			}
			v, err := validation.New(s, validation.WithLogger(a.logger))
			if err != nil {
				return err
			}

			opts := []prompt.Option{prompt.WithLogger(a.logger)}
			if check {
				opts = append(opts, prompt.WithValidator(v))
			}
			answers, err := prompt.Fill(cmd.Context(), s, prompt.NewSurveyDriver(), defaults, opts...)
			if err != nil {
				return err
			}
			return a.writeResult(v.Validate(cmd.Context(), answers))
		},
	}
	cmd.Flags().StringVar(&defaultsPath, "defaults", "", "JSON file with default answers")
	cmd.Flags().BoolVar(&check, "check", true, "re-ask answers that fail validation")
	return cmd
}

func (a *app) importOpenAPICmd() *cobra.Command {
	var (
		operationID string
		outputPath  string
	)
	cmd := &cobra.Command{
		Use:   "import-openapi <document>",
		Short: "Convert an OpenAPI request body into a field schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			s, err := openapi.FromOpenAPI(cmd.Context(), data, operationID)
			if err != nil {
				return err
			}
			out, err := marshalSchema(s)
			if err != nil {
				return err
			}
			a.logger.Debug("openapi imported", zap.String("operation", operationID), zap.Int("fields", s.Len()))
			if outputPath == "" {
				_, err = a.stdout.Write(out)
				return err
			}
			if err := os.WriteFile(outputPath, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}
			fmt.Fprintf(a.stderr, "Schema written to %s\n", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&operationID, "operation", "", "operation id (or METHOD:/path) to import")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (stdout if empty)")
	_ = cmd.MarkFlagRequired("operation")
	return cmd
}

func (a *app) lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <schema>...",
		Short: "Check schema documents for invalid fields and rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				result := validation.CheckDocument(raw)
				if result.Valid {
					fmt.Fprintf(a.stdout, "%s: ok\n", path)
					continue
				}
				failed = true
				for _, issue := range result.Issues {
					if issue.Field == "" {
						fmt.Fprintf(a.stdout, "%s: %s\n", path, issue.Message)
						continue
					}
					fmt.Fprintf(a.stdout, "%s: %s: %s\n", path, issue.Field, issue.Message)
				}
			}
			if failed {
				return errInvalid
			}
			return nil
		},
	}
}

func (a *app) writeResult(result validation.Result) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resultOutput{Valid: result.Valid(), Values: result.Values, Errors: result.Errors}); err != nil {
		return err
	}
	if !result.Valid() {
		return errInvalid
	}
	return nil
}

// schemaDocument is the list form accepted by schema.Parse.
type schemaDocument struct {
	Fields []schema.FieldConfig `yaml:"fields"`
}

func marshalSchema(s *schema.Schema) ([]byte, error) {
	fields := s.Fields()
	for i := range fields {
		// Parse derives the same id again.
		fields[i].ID = ""
	}
	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(schemaDocument{Fields: fields}); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return []byte(buf.String()), nil
}

func readJSONFile(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := readJSON(f, dst); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func readJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(dst); err != nil && err != io.EOF {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

package todo

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var schemaSource string

const schemaURL = "tasks.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Schema returns the JSON Schema document the store file must satisfy.
func Schema() string {
	return schemaSource
}

// SchemaViolation describes one place where a store document breaks the schema.
type SchemaViolation struct {
	Path    string
	Message string
}

func (v *SchemaViolation) Error() string {
	if v.Path != "" {
		return fmt.Sprintf("%s: %s", v.Path, v.Message)
	}
	return v.Message
}

// validateDocument checks raw store bytes against the embedded schema.
// It returns every schema violation joined into one error.
func validateDocument(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse task store: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile task store schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var errs []error
		collectSchemaErrors(&errs, err)
		return errors.Join(errs...)
	}
	return nil
}

func collectSchemaErrors(errs *[]error, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*errs = append(*errs, err)
		return
	}

	if len(ve.Causes) == 0 {
		*errs = append(*errs, &SchemaViolation{
			Path:    jsonPointerToPath(ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// jsonPointerToPath renders a JSON pointer as a dotted path. The store has
// no arrays, so every segment is an object key: /tasks/4/status becomes
// tasks.4.status.
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := make([]string, 0, 3)
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			part = `""`
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ".")
}

package dataset

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const (
	resumesSchema  = "schemas/resumes.schema.json"
	trainingSchema = "schemas/training.schema.json"
)

// ValidationError lists the schema violations found in an input document.
type ValidationError struct {
	Path   string
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: validation failed:", ve.Path)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// validate checks a decoded document against an embedded schema.
func validate(schema, path string, doc any) error {
	raw, err := schemaFS.ReadFile(schema)
	if err != nil {
		return fmt.Errorf("reading schema %s: %w", schema, err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(raw), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating %s against %s: %w", path, schema, err)
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{
		Path:   path,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}

	return verr
}

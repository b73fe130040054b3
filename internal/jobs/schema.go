package jobs

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// importSchema describes a bulk import document: an array of postings.
// Numbers may arrive as strings; the normalizer coerces them afterwards.
const importSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["job_id", "experience_required", "salary_range"],
    "properties": {
      "job_id": {"type": ["string", "integer"], "minLength": 1},
      "title": {"type": "string"},
      "company": {"type": "string"},
      "location": {"type": "string"},
      "experience_required": {
        "type": "object",
        "required": ["min", "max"],
        "properties": {
          "min": {"type": ["number", "string"]},
          "max": {"type": ["number", "string"]}
        }
      },
      "salary_range": {
        "type": "array",
        "minItems": 2,
        "maxItems": 2,
        "items": {"type": ["number", "string"]}
      },
      "required_skills": {
        "oneOf": [
          {"type": "string"},
          {"type": "array", "items": {"type": "string"}}
        ]
      }
    }
  }
}`

var importSchemaLoader = gojsonschema.NewStringLoader(importSchema)

// FieldError is one schema violation.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every violation found in an import document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "import document invalid: " + strings.Join(parts, "; ")
}

// ValidateImport checks document against the import schema.
func ValidateImport(document []byte) error {
	result, err := gojsonschema.Validate(importSchemaLoader, gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("validate import document: %w", err)
	}
	if result.Valid() {
		return nil
	}
	schemaErr := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return schemaErr
}

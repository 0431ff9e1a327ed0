package extract

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resultSchemaJSON constrains the shape of the model's answer before it is
// decoded into typed structs. Item contents stay schema-less on purpose:
// each BOM layout brings its own columns.
const resultSchemaJSON = `{
  "type": "object",
  "required": ["items", "bom_type"],
  "properties": {
    "document_title": {"type": ["string", "null"]},
    "bom_type": {"type": "string"},
    "total_items": {"type": "integer", "minimum": 0},
    "items": {
      "type": "array",
      "items": {"type": "object"}
    }
  }
}`

var resultSchema = jsonschema.MustCompileString("bom_result.json", resultSchemaJSON)

// validateResult checks raw model output against the result schema.
func validateResult(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("model returned invalid JSON: %w", err)
	}
	if err := resultSchema.Validate(doc); err != nil {
		return fmt.Errorf("model output failed validation: %w", err)
	}
	return nil
}

package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldSpec describes one expected column of a BOM table: the JSON field
// name the model must emit and a hint about what belongs in it.
type FieldSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ModeSchema is the ordered field list for one processing mode. Order
// matters: it drives the prompt and, indirectly, the column layout the
// model tends to produce.
type ModeSchema []FieldSpec

// SchemaSet maps processing mode names to their field schemas.
type SchemaSet map[string]ModeSchema

// DefaultBOMType is used when a request carries no processing mode.
const DefaultBOMType = "simple"

// DefaultSchemas returns the built-in schemas for the two supported
// processing modes.
func DefaultSchemas() SchemaSet {
	return SchemaSet{
		"engineering": {
			{Name: "item_number", Description: "Line item number (e.g., '1', '2')"},
			{Name: "quantity", Description: "Quantity needed"},
			{Name: "substitution_code", Description: "Substitution code (S column, e.g., 6, 10)"},
			{Name: "manufacturer", Description: "Manufacturer name"},
			{Name: "part_number", Description: "Manufacturer part number"},
			{Name: "description", Description: "Component description"},
			{Name: "reference_designator", Description: "Reference designator (REF column, e.g., 'C1, C2', 'U1')"},
			{Name: "package", Description: "Package type if specified (e.g., '0603', 'SOIC8')"},
		},
		"simple": {
			{Name: "category", Description: "Category (e.g., STRUCTURE, ELECTRONICS, OTHER)"},
			{Name: "where", Description: "Source/location"},
			{Name: "item", Description: "Item description"},
			{Name: "quantity", Description: "Quantity"},
			{Name: "unit_price", Description: "Unit price"},
			{Name: "total", Description: "Total cost"},
		},
	}
}

// For returns the schema for a processing mode, falling back to the simple
// schema for unknown modes.
func (s SchemaSet) For(bomType string) ModeSchema {
	if schema, ok := s[bomType]; ok {
		return schema
	}
	return s[DefaultBOMType]
}

// Modes returns the known processing mode names.
func (s SchemaSet) Modes() []string {
	modes := make([]string, 0, len(s))
	for mode := range s {
		modes = append(modes, mode)
	}
	return modes
}

// LoadSchemas reads a schema set from a YAML file. The file fully replaces
// the built-in set for the modes it defines; modes it omits keep their
// defaults.
//
//	simple:
//	  - name: category
//	    description: Category (e.g., STRUCTURE, ELECTRONICS, OTHER)
func LoadSchemas(path string) (SchemaSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	var loaded SchemaSet
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing schema file: %w", err)
	}

	schemas := DefaultSchemas()
	for mode, schema := range loaded {
		if len(schema) == 0 {
			return nil, fmt.Errorf("schema for mode %q is empty", mode)
		}
		schemas[mode] = schema
	}

	return schemas, nil
}

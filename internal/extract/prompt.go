package extract

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a precise BOM data extraction expert. Extract data exactly as it appears."

// buildPrompt assembles the user prompt for one document. The expected-field
// block is rendered by hand instead of json.Marshal so the schema's field
// order survives into the prompt.
func buildPrompt(schema ModeSchema, bomType, text string) string {
	var b strings.Builder

	b.WriteString("Extract ALL BOM (Bill of Materials) line items from this document.\n\n")
	b.WriteString("Document contains a BOM table with these expected fields:\n")
	b.WriteString(renderSchemaJSON(schema))
	b.WriteString("\n\nCRITICAL INSTRUCTIONS:\n")
	b.WriteString("1. Extract EVERY line item - do not skip any rows\n")
	b.WriteString("2. Preserve exact values from the document\n")
	b.WriteString("3. If a field is empty or not present, use null\n")
	b.WriteString("4. Return ONLY valid JSON with no markdown formatting\n")
	b.WriteString("5. For engineering BOMs: Pay attention to substitution codes and reference designators\n")
	b.WriteString("6. For cost BOMs: Ensure calculations match (quantity x unit_price = total)\n")
	b.WriteString("\nReturn format:\n")
	fmt.Fprintf(&b, `{
  "document_title": "extracted title if present",
  "bom_type": %q,
  "total_items": <count>,
  "items": [
    {"field1": "value1", "field2": "value2", ...},
    ...
  ]
}`, bomType)
	b.WriteString("\n\nDocument text:\n")
	b.WriteString(text)

	return b.String()
}

func renderSchemaJSON(schema ModeSchema) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range schema {
		fmt.Fprintf(&b, "  %q: %q", f.Name, f.Description)
		if i < len(schema)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// stripCodeFence removes a surrounding markdown code fence if the model
// ignored the no-markdown instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

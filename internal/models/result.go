package models

// ExtractionData is the structured output of one BOM extraction.
type ExtractionData struct {
	DocumentTitle string   `json:"document_title,omitempty" msgpack:"document_title"`
	BOMType       string   `json:"bom_type" msgpack:"bom_type"`
	TotalItems    int      `json:"total_items,omitempty" msgpack:"total_items"`
	Items         []Record `json:"items" msgpack:"items"`
}

// ItemCount prefers the explicit total reported by the extractor and falls
// back to the length of the item list.
func (d *ExtractionData) ItemCount() int {
	if d.TotalItems > 0 {
		return d.TotalItems
	}
	return len(d.Items)
}

// ResultFiles holds the opaque artifact identifiers used to build download
// links for a completed extraction.
type ResultFiles struct {
	JSON string `json:"json" msgpack:"json"`
	CSV  string `json:"csv" msgpack:"csv"`
	XLSX string `json:"xlsx,omitempty" msgpack:"xlsx"`
}

// ExtractionResponse is the wire contract of POST /upload. A failed
// extraction carries Success=false and a user-facing Error message.
type ExtractionResponse struct {
	Success bool            `json:"success"`
	Data    *ExtractionData `json:"data,omitempty"`
	Files   *ResultFiles    `json:"files,omitempty"`
	Error   string          `json:"error,omitempty"`
}

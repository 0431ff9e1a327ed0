// Package extract turns uploaded BOM PDFs into structured line items using
// an LLM behind an OpenAI-compatible chat completions API.
package extract

import (
	"context"

	"github.com/bom-extractor/backend/internal/models"
)

// Request carries one document through the extraction pipeline.
type Request struct {
	FileName string
	PDF      []byte
	BOMType  string // "simple" or "engineering"
}

// Extractor is the interface the HTTP layer depends on.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*models.ExtractionData, error)
}

// ChatCompleter abstracts the LLM call so the pipeline can be tested without
// a live endpoint.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bom-extractor/backend/internal/models"
)

// Service runs the PDF-to-structured-data pipeline: text extraction, prompt
// construction, the LLM call, then validation and decoding of the answer.
type Service struct {
	llm     ChatCompleter
	schemas SchemaSet
	logger  *slog.Logger
}

// NewService creates an extraction service. A nil schema set uses the
// built-in schemas; a nil logger uses slog.Default.
func NewService(llm ChatCompleter, schemas SchemaSet, logger *slog.Logger) *Service {
	if schemas == nil {
		schemas = DefaultSchemas()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{llm: llm, schemas: schemas, logger: logger}
}

// Extract implements Extractor.
func (s *Service) Extract(ctx context.Context, req Request) (*models.ExtractionData, error) {
	start := time.Now()
	bomType := req.BOMType
	if bomType == "" {
		bomType = DefaultBOMType
	}

	text, pages, err := ExtractText(req.PDF)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", req.FileName, err)
	}

	s.logger.Info("extract.start",
		"file", req.FileName,
		"bom_type", bomType,
		"pages", pages,
		"text_len", len(text),
	)

	prompt := buildPrompt(s.schemas.For(bomType), bomType, text)

	content, err := s.llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		s.logger.Error("extract.llm_error",
			"file", req.FileName,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}

	data, err := parseResult(content, bomType)
	if err != nil {
		s.logger.Error("extract.invalid_result",
			"file", req.FileName,
			"error", err,
			"content_len", len(content),
		)
		return nil, err
	}

	s.logger.Info("extract.ok",
		"file", req.FileName,
		"bom_type", data.BOMType,
		"items", len(data.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return data, nil
}

// parseResult turns raw model output into a validated ExtractionData,
// normalizing fields the model may omit or get wrong.
func parseResult(content, bomType string) (*models.ExtractionData, error) {
	raw := []byte(stripCodeFence(content))
	if err := validateResult(raw); err != nil {
		return nil, err
	}

	var data models.ExtractionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding extraction result: %w", err)
	}

	if data.BOMType == "" {
		data.BOMType = bomType
	}
	if data.TotalItems == 0 {
		data.TotalItems = len(data.Items)
	}

	return &data, nil
}

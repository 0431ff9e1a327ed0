// stub_extractor.go - Canned extractor implementation for testing
package testutil

import (
	"context"
	"sync"

	"github.com/bom-extractor/backend/internal/extract"
	"github.com/bom-extractor/backend/internal/models"
)

// StubExtractor implements extract.Extractor with canned output.
type StubExtractor struct {
	mu       sync.Mutex
	Data     *models.ExtractionData
	Err      error
	Requests []extract.Request
}

func (s *StubExtractor) Extract(_ context.Context, req extract.Request) (*models.ExtractionData, error) {
	s.mu.Lock()
	s.Requests = append(s.Requests, req)
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return s.Data, nil
}

// CallCount returns how many extractions were requested.
func (s *StubExtractor) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Requests)
}

// Package client implements the controller's ProcessingClient over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/bom-extractor/backend/internal/controller"
	"github.com/bom-extractor/backend/internal/models"
)

// Client submits files to the processing service's /upload endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Submit posts the file and processing mode as multipart form data. The JSON
// body is parsed regardless of HTTP status; a non-2xx status forces the
// failure path even if the body claims success. A returned error means the
// request failed at the transport level.
func (c *Client) Submit(ctx context.Context, file controller.SelectedFile, bomType string) (*models.ExtractionResponse, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, fmt.Errorf("building form file: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, fmt.Errorf("writing form file: %w", err)
	}
	if err := w.WriteField("bom_type", bomType); err != nil {
		return nil, fmt.Errorf("writing bom_type field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var out models.ExtractionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		// An unparseable body is a server-side failure, not a transport
		// one; the controller shows the generic extraction error.
		return &models.ExtractionResponse{Success: false}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		out.Success = false
	}

	return &out, nil
}

// handlers_download.go - Artifact download handlers
package api

import (
	"github.com/bom-extractor/backend/internal/export"
	"github.com/bom-extractor/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

var downloadMIMETypes = map[string]string{
	export.FormatJSON: "application/json",
	export.FormatCSV:  "text/csv",
	export.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// DownloadHandlerImpl implements the DownloadHandler interface
type DownloadHandlerImpl struct {
	artifacts storage.ArtifactStore
}

// NewDownloadHandler creates a new download handler instance
func NewDownloadHandler(artifacts storage.ArtifactStore) DownloadHandler {
	return &DownloadHandlerImpl{artifacts: artifacts}
}

// HandleDownload serves a previously produced artifact as an attachment.
// The format segment must match the artifact: a JSON identifier cannot be
// fetched through the CSV route.
func (h *DownloadHandlerImpl) HandleDownload(c echo.Context) error {
	format := c.Param("format")
	mime, ok := downloadMIMETypes[format]
	if !ok {
		return NewBadRequestError("unsupported download format: "+format, nil)
	}

	id := c.Param("id")
	artifact, err := h.artifacts.GetArtifact(id)
	if err != nil || artifact.Format != format {
		return NewNotFoundError("file", id)
	}

	path, err := h.artifacts.GetArtifactPath(id)
	if err != nil {
		return NewNotFoundError("file", id)
	}

	c.Response().Header().Set(echo.HeaderContentType, mime)
	return c.Attachment(path, artifact.Name)
}

// handlers_extract.go - Upload-and-extract operation handlers
package api

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/bom-extractor/backend/internal/export"
	"github.com/bom-extractor/backend/internal/extract"
	"github.com/bom-extractor/backend/internal/models"
	"github.com/bom-extractor/backend/internal/results"
	"github.com/bom-extractor/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// ExtractHandlerImpl implements the ExtractHandler interface
type ExtractHandlerImpl struct {
	store     storage.Store
	artifacts storage.ArtifactStore
	extractor extract.Extractor
	results   *results.Manager
}

// NewExtractHandler creates a new extract handler instance
func NewExtractHandler(store storage.Store, artifacts storage.ArtifactStore, extractor extract.Extractor, resultMgr *results.Manager) ExtractHandler {
	return &ExtractHandlerImpl{
		store:     store,
		artifacts: artifacts,
		extractor: extractor,
		results:   resultMgr,
	}
}

// HandleUpload accepts a multipart PDF upload with a processing mode, runs
// the extraction and responds with the structured result plus artifact
// identifiers for the download endpoints.
func (h *ExtractHandlerImpl) HandleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("No file uploaded", err)
	}
	if fileHeader.Filename == "" {
		return NewBadRequestError("No file selected", nil)
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return NewBadRequestError("Only PDF files are allowed", nil)
	}

	bomType := c.FormValue("bom_type")
	if bomType == "" {
		bomType = extract.DefaultBOMType
	}

	src, err := fileHeader.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	pdfData, err := io.ReadAll(src)
	if err != nil {
		return NewInternalError("failed to read uploaded file", err)
	}
	if !extract.IsPDF(pdfData) {
		return NewBadRequestError("Only PDF files are allowed", nil)
	}

	info, err := h.store.Save(fileHeader.Filename, bytes.NewReader(pdfData))
	if err != nil {
		return NewInternalError("failed to save file", err)
	}
	h.store.SetStatus(info.ID, "extracting")

	data, err := h.runExtraction(c, fileHeader.Filename, pdfData, bomType)
	if err != nil {
		h.store.SetStatus(info.ID, "error")
		return err
	}
	h.store.SetStatus(info.ID, "extracted")

	files, err := h.writeArtifacts(fileHeader.Filename, data)
	if err != nil {
		return err
	}

	res := &results.StoredResult{
		ID:        files.JSON,
		FileName:  fileHeader.Filename,
		Data:      data,
		Files:     *files,
		CreatedAt: time.Now(),
	}
	if err := h.results.Put(res); err != nil {
		c.Logger().Warnf("failed to persist result %s: %v", res.ID, err)
	}

	return c.JSON(http.StatusOK, models.ExtractionResponse{
		Success: true,
		Data:    data,
		Files:   files,
	})
}

func (h *ExtractHandlerImpl) runExtraction(c echo.Context, name string, pdfData []byte, bomType string) (*models.ExtractionData, error) {
	data, err := h.extractor.Extract(c.Request().Context(), extract.Request{
		FileName: name,
		PDF:      pdfData,
		BOMType:  bomType,
	})
	if err != nil {
		return nil, NewInternalError("Extraction failed: "+err.Error(), nil)
	}
	return data, nil
}

// writeArtifacts produces the JSON, CSV and XLSX outputs for one result.
func (h *ExtractHandlerImpl) writeArtifacts(fileName string, data *models.ExtractionData) (*models.ResultFiles, error) {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	jsonBytes, err := export.WriteJSON(data)
	if err != nil {
		return nil, NewInternalError("failed to write JSON output", err)
	}
	jsonArt, err := h.artifacts.SaveArtifact(base+".json", export.FormatJSON, jsonBytes)
	if err != nil {
		return nil, NewInternalError("failed to save JSON output", err)
	}

	csvBytes, err := export.WriteCSV(data.Items)
	if err != nil {
		return nil, NewInternalError("failed to write CSV output", err)
	}
	csvArt, err := h.artifacts.SaveArtifact(base+".csv", export.FormatCSV, csvBytes)
	if err != nil {
		return nil, NewInternalError("failed to save CSV output", err)
	}

	xlsxBytes, err := export.WriteXLSX(data)
	if err != nil {
		return nil, NewInternalError("failed to write XLSX output", err)
	}
	xlsxArt, err := h.artifacts.SaveArtifact(base+".xlsx", export.FormatXLSX, xlsxBytes)
	if err != nil {
		return nil, NewInternalError("failed to save XLSX output", err)
	}

	return &models.ResultFiles{
		JSON: jsonArt.ID,
		CSV:  csvArt.ID,
		XLSX: xlsxArt.ID,
	}, nil
}

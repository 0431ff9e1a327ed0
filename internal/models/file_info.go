package models

import "time"

// FileInfo represents metadata about an uploaded PDF.
type FileInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	Status     string    `json:"status"` // "uploaded", "extracting", "extracted", "error"
}

// Artifact represents a produced output file (JSON, CSV or XLSX) available
// for download. IDs are opaque to clients; they come back verbatim in
// download URLs.
type Artifact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"` // download filename, e.g. "bom.csv"
	Format    string    `json:"format"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

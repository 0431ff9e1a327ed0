// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// ExtractHandler handles upload-and-extract operations
type ExtractHandler interface {
	HandleUpload(c echo.Context) error
}

// DownloadHandler serves produced artifacts
type DownloadHandler interface {
	HandleDownload(c echo.Context) error
}

// ResultsHandler serves server-rendered result pages
type ResultsHandler interface {
	HandleResultPage(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

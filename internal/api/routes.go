// routes.go - Route registration helpers
package api

import (
	"github.com/bom-extractor/backend/internal/extract"
	"github.com/bom-extractor/backend/internal/results"
	"github.com/bom-extractor/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store     storage.Store
	Artifacts storage.ArtifactStore
	Extractor extract.Extractor
	Results   *results.Manager
	Version   string
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Extract  ExtractHandler
	Download DownloadHandler
	Results  ResultsHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Version),
		Extract:  NewExtractHandler(deps.Store, deps.Artifacts, deps.Extractor, deps.Results),
		Download: NewDownloadHandler(deps.Artifacts),
		Results:  NewResultsHandler(deps.Results),
	}
}

// RegisterRoutes registers all API routes with the Echo instance.
// Upload and download paths are unprefixed: they are the wire contract the
// browser controller depends on.
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/api/health", handlers.Health.HandleHealth)

	e.POST("/upload", handlers.Extract.HandleUpload)
	e.GET("/download/:format/:id", handlers.Download.HandleDownload)
	e.GET("/results/:id", handlers.Results.HandleResultPage)
}

// SetupMiddleware configures the custom error handler
func SetupMiddleware(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler
}

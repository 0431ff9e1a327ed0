// handlers_results.go - Server-rendered result page handlers
package api

import (
	"net/http"

	"github.com/bom-extractor/backend/internal/results"
	"github.com/bom-extractor/backend/internal/view"
	"github.com/labstack/echo/v4"
)

// ResultsHandlerImpl implements the ResultsHandler interface
type ResultsHandlerImpl struct {
	results *results.Manager
}

// NewResultsHandler creates a new results handler instance
func NewResultsHandler(resultMgr *results.Manager) ResultsHandler {
	return &ResultsHandlerImpl{results: resultMgr}
}

// HandleResultPage renders a stored extraction result as a standalone HTML
// page, reusing the same table renderer the upload workflow uses.
func (h *ResultsHandlerImpl) HandleResultPage(c echo.Context) error {
	id := c.Param("id")
	res, ok := h.results.Get(id)
	if !ok {
		return NewNotFoundError("result", id)
	}

	return c.HTML(http.StatusOK, view.RenderResultPage(res.Data, res.Files))
}

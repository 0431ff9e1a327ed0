package view

import (
	"sync"

	"github.com/bom-extractor/backend/internal/models"
)

// Section identifies one of the mutually exclusive page regions.
type Section string

const (
	SectionUpload  Section = "upload"
	SectionResults Section = "results"
	SectionError   Section = "error"
)

// Page is a headless render surface implementing controller.Renderer. It
// tracks region visibility and produces the same HTML fragments a browser
// view would show, which makes the full workflow assertable in tests and
// reusable for server-side rendering.
type Page struct {
	mu sync.Mutex

	visible       Section
	loading       bool
	dropHighlight bool
	hasFile       bool
	fileName      string
	errorMessage  string
	resultsHTML   string
}

// NewPage creates a page showing the upload section.
func NewPage() *Page {
	return &Page{visible: SectionUpload}
}

func (p *Page) ShowUpload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = SectionUpload
	p.resultsHTML = ""
	p.errorMessage = ""
}

func (p *Page) ShowResults(data *models.ExtractionData, files models.ResultFiles) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = SectionResults
	p.errorMessage = ""
	// Rebuilt from scratch per result, so download links never accumulate
	// across displays.
	p.resultsHTML = RenderSummary(data) + RenderTable(data.Items) + RenderDownloads(files)
}

func (p *Page) ShowError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = SectionError
	p.errorMessage = message
	p.resultsHTML = ""
}

func (p *Page) SetLoading(loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = loading
}

func (p *Page) ClearError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errorMessage = ""
}

func (p *Page) SetSelectedFile(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fileName = name
	p.hasFile = true
}

func (p *Page) ClearSelectedFile() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fileName = ""
	p.hasFile = false
}

func (p *Page) HighlightDropTarget(active bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dropHighlight = active
}

func (p *Page) ClearForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fileName = ""
	p.hasFile = false
}

// Visible returns the currently visible section.
func (p *Page) Visible() Section {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// Loading reports whether the submitting sub-state is active.
func (p *Page) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// DropHighlighted reports whether the drop target is highlighted.
func (p *Page) DropHighlighted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropHighlight
}

// FileName returns the displayed selection name and the has-file marker.
func (p *Page) FileName() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fileName, p.hasFile
}

// ErrorMessage returns the displayed error message, empty when none.
func (p *Page) ErrorMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errorMessage
}

// ResultsHTML returns the rendered results fragment, empty outside the
// results section.
func (p *Page) ResultsHTML() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resultsHTML
}

// Package controller implements the upload/result workflow as an explicit
// finite-state machine. It receives typed UI events (file selection, drag
// gestures, submit, reset) and drives an injected render surface, so the
// whole workflow runs headless under test.
//
// State machine: Upload -> Loading -> {Results | Error}, with Results and
// Error returning to Upload via Reset. Exactly one of Upload, Results and
// Error is ever visible.
package controller

import (
	"context"
	"sync"

	"github.com/bom-extractor/backend/internal/models"
)

// State identifies which of the mutually exclusive views is active.
type State int

const (
	StateUpload State = iota
	StateLoading
	StateResults
	StateError
)

func (s State) String() string {
	switch s {
	case StateUpload:
		return "upload"
	case StateLoading:
		return "loading"
	case StateResults:
		return "results"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// User-facing messages. These are part of the workflow contract, not
// presentation detail, so they live with the state machine.
const (
	MsgSelectPDF     = "Please select a PDF file"
	MsgSelectFile    = "Please select a file"
	MsgGenericError  = "An error occurred during extraction"
	msgNetworkPrefix = "Network error: "
)

// SelectedFile is a candidate upload captured from a picker or a drop.
type SelectedFile struct {
	Name string
	Type string // MIME type; must be application/pdf
	Data []byte
}

// Renderer is the render surface the controller drives. Implementations may
// bridge to a real UI or record calls for tests.
type Renderer interface {
	// ShowUpload makes the upload view visible and hides results and error.
	ShowUpload()
	// ShowResults makes the results view visible with the given data and
	// download identifiers, hiding upload and error.
	ShowResults(data *models.ExtractionData, files models.ResultFiles)
	// ShowError makes the error view visible with a message.
	ShowError(message string)
	// SetLoading toggles the submitting sub-state: submit control disabled
	// and its label swapped for a progress indicator while true.
	SetLoading(loading bool)
	// ClearError clears any prior error display without changing views.
	ClearError()
	// SetSelectedFile displays the selection's name and marks the drop
	// target as holding a file.
	SetSelectedFile(name string)
	// ClearSelectedFile removes the displayed name and the has-file marker.
	ClearSelectedFile()
	// HighlightDropTarget toggles the drag-in-progress highlight.
	HighlightDropTarget(active bool)
	// ClearForm resets the submission form to its initial values.
	ClearForm()
}

// ProcessingClient submits one file to the processing service. A returned
// error means the request never completed at the transport level;
// server-reported failures come back as a response with Success=false.
type ProcessingClient interface {
	Submit(ctx context.Context, file SelectedFile, bomType string) (*models.ExtractionResponse, error)
}

// Controller is the upload/result state machine. All event methods are safe
// for concurrent use; at most one submission is in flight at a time.
type Controller struct {
	mu       sync.Mutex
	client   ProcessingClient
	renderer Renderer

	state    State
	selected *SelectedFile
	inFlight bool

	// generation invalidates in-flight submissions: a response carrying a
	// generation older than the current one arrived after a reset and is
	// discarded instead of overwriting the newer UI state.
	generation uint64
}

// New creates a controller in the Upload state.
func New(client ProcessingClient, renderer Renderer) *Controller {
	return &Controller{
		client:   client,
		renderer: renderer,
		state:    StateUpload,
	}
}

// State returns the currently visible state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SelectedFileName returns the current selection's name, if any.
func (c *Controller) SelectedFileName() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return "", false
	}
	return c.selected.Name, true
}

// SelectFiles handles a file list from the picker or a drop. Only the first
// file is considered; the rest are ignored. A non-PDF selection surfaces an
// error and leaves any prior selection untouched.
func (c *Controller) SelectFiles(files ...SelectedFile) {
	if len(files) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	first := files[0]
	if first.Type != "application/pdf" {
		c.showErrorLocked(MsgSelectPDF)
		return
	}

	c.selected = &first
	c.renderer.SetSelectedFile(first.Name)
}

// DragEnter highlights the drop target while a drag is over it.
func (c *Controller) DragEnter() {
	c.renderer.HighlightDropTarget(true)
}

// DragLeave removes the drop-target highlight.
func (c *Controller) DragLeave() {
	c.renderer.HighlightDropTarget(false)
}

// Drop un-highlights the drop target and treats the dropped files as a
// selection.
func (c *Controller) Drop(files ...SelectedFile) {
	c.renderer.HighlightDropTarget(false)
	c.SelectFiles(files...)
}

// Submit runs one submission to completion. Without a selection it surfaces
// an error and performs no network call. The network call happens on the
// calling goroutine; callers wanting a responsive UI invoke Submit from a
// separate goroutine, which is safe because completion is re-synchronized
// through the controller's lock and generation check.
func (c *Controller) Submit(ctx context.Context, bomType string) {
	c.mu.Lock()
	if c.inFlight {
		// Submit control is disabled while loading; ignore duplicates.
		c.mu.Unlock()
		return
	}
	if c.selected == nil {
		c.showErrorLocked(MsgSelectFile)
		c.mu.Unlock()
		return
	}

	file := *c.selected
	gen := c.generation
	c.inFlight = true
	c.state = StateLoading
	c.renderer.ClearError()
	c.renderer.SetLoading(true)
	c.mu.Unlock()

	resp, err := c.client.Submit(ctx, file, bomType)
	c.finish(gen, resp, err)
}

// finish applies a submission outcome. Loading is exited on every path; a
// stale outcome (generation mismatch after a reset) is dropped entirely.
func (c *Controller) finish(gen uint64, resp *models.ExtractionResponse, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}

	c.inFlight = false
	c.renderer.SetLoading(false)

	switch {
	case err != nil:
		c.showErrorLocked(msgNetworkPrefix + err.Error())
	case resp != nil && resp.Success && resp.Data != nil:
		c.state = StateResults
		var files models.ResultFiles
		if resp.Files != nil {
			files = *resp.Files
		}
		c.renderer.ShowResults(resp.Data, files)
	default:
		msg := MsgGenericError
		if resp != nil && resp.Error != "" {
			msg = resp.Error
		}
		c.showErrorLocked(msg)
	}
}

// Reset returns the controller to a pristine Upload state. "Start new
// upload" and "retry after error" both route here, so the resulting state is
// identical regardless of where the reset came from.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.inFlight = false
	c.selected = nil
	c.state = StateUpload

	c.renderer.SetLoading(false)
	c.renderer.ClearSelectedFile()
	c.renderer.ClearForm()
	c.renderer.ClearError()
	c.renderer.ShowUpload()
}

func (c *Controller) showErrorLocked(msg string) {
	c.state = StateError
	c.renderer.ShowError(msg)
}

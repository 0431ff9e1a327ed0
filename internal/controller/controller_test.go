// controller_test.go - Tests for the upload/result state machine
package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bom-extractor/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer records render surface calls for assertions.
type fakeRenderer struct {
	mu           sync.Mutex
	visible      string // "upload", "results", "error"
	loading      bool
	highlighted  bool
	fileName     string
	hasFile      bool
	errorMessage string
	lastData     *models.ExtractionData
	lastFiles    models.ResultFiles
	formCleared  int
	resultShows  int
}

func (r *fakeRenderer) ShowUpload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = "upload"
}

func (r *fakeRenderer) ShowResults(data *models.ExtractionData, files models.ResultFiles) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = "results"
	r.lastData = data
	r.lastFiles = files
	r.resultShows++
}

func (r *fakeRenderer) ShowError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = "error"
	r.errorMessage = message
}

func (r *fakeRenderer) SetLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = loading
}

func (r *fakeRenderer) ClearError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorMessage = ""
}

func (r *fakeRenderer) SetSelectedFile(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fileName = name
	r.hasFile = true
}

func (r *fakeRenderer) ClearSelectedFile() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fileName = ""
	r.hasFile = false
}

func (r *fakeRenderer) HighlightDropTarget(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlighted = active
}

func (r *fakeRenderer) ClearForm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formCleared++
}

func (r *fakeRenderer) snapshot() fakeRenderer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fakeRenderer{
		visible:      r.visible,
		loading:      r.loading,
		highlighted:  r.highlighted,
		fileName:     r.fileName,
		hasFile:      r.hasFile,
		errorMessage: r.errorMessage,
	}
}

// fakeClient returns canned responses and counts calls.
type fakeClient struct {
	mu      sync.Mutex
	resp    *models.ExtractionResponse
	err     error
	calls   int
	block   chan struct{} // when set, Submit waits until closed
	lastBOM string
}

func (f *fakeClient) Submit(_ context.Context, _ SelectedFile, bomType string) (*models.ExtractionResponse, error) {
	f.mu.Lock()
	f.calls++
	f.lastBOM = bomType
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.resp, f.err
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func pdfFile(name string) SelectedFile {
	return SelectedFile{Name: name, Type: "application/pdf", Data: []byte("%PDF-1.4")}
}

func successResponse() *models.ExtractionResponse {
	item := models.NewRecord(
		models.Field{Key: "part", Value: "R1"},
		models.Field{Key: "qty", Value: int64(10)},
	)
	return &models.ExtractionResponse{
		Success: true,
		Data: &models.ExtractionData{
			BOMType: "simple",
			Items:   []models.Record{item},
		},
		Files: &models.ResultFiles{JSON: "a1", CSV: "a1"},
	}
}

func TestController_SelectFiles(t *testing.T) {
	t.Run("valid PDF is selected", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(&fakeClient{}, r)

		c.SelectFiles(pdfFile("bom.pdf"))

		name, ok := c.SelectedFileName()
		require.True(t, ok)
		assert.Equal(t, "bom.pdf", name)
		assert.Equal(t, "bom.pdf", r.snapshot().fileName)
		assert.True(t, r.snapshot().hasFile)
	})

	t.Run("empty list is a no-op", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(&fakeClient{}, r)

		c.SelectFiles()

		_, ok := c.SelectedFileName()
		assert.False(t, ok)
		assert.Equal(t, StateUpload, c.State())
	})

	t.Run("only the first file is taken", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(&fakeClient{}, r)

		c.SelectFiles(pdfFile("first.pdf"), pdfFile("second.pdf"))

		name, _ := c.SelectedFileName()
		assert.Equal(t, "first.pdf", name)
	})

	t.Run("non-PDF is rejected and prior selection preserved", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(&fakeClient{}, r)

		c.SelectFiles(pdfFile("bom.pdf"))
		c.SelectFiles(SelectedFile{Name: "notes.txt", Type: "text/plain"})

		assert.Equal(t, StateError, c.State())
		assert.Equal(t, MsgSelectPDF, r.snapshot().errorMessage)

		name, ok := c.SelectedFileName()
		require.True(t, ok)
		assert.Equal(t, "bom.pdf", name)
	})
}

func TestController_DragHighlight(t *testing.T) {
	r := &fakeRenderer{}
	c := New(&fakeClient{}, r)

	c.DragEnter()
	assert.True(t, r.snapshot().highlighted)

	c.DragLeave()
	assert.False(t, r.snapshot().highlighted)

	c.DragEnter()
	c.Drop(pdfFile("bom.pdf"))
	assert.False(t, r.snapshot().highlighted)

	name, _ := c.SelectedFileName()
	assert.Equal(t, "bom.pdf", name)
}

func TestController_SubmitWithoutSelection(t *testing.T) {
	r := &fakeRenderer{}
	client := &fakeClient{resp: successResponse()}
	c := New(client, r)

	c.Submit(context.Background(), "simple")

	assert.Equal(t, StateError, c.State())
	assert.Equal(t, MsgSelectFile, r.snapshot().errorMessage)
	assert.Zero(t, client.callCount(), "no network call without a selection")
}

func TestController_SubmitSuccess(t *testing.T) {
	r := &fakeRenderer{}
	client := &fakeClient{resp: successResponse()}
	c := New(client, r)

	c.SelectFiles(pdfFile("bom.pdf"))
	c.Submit(context.Background(), "simple")

	assert.Equal(t, StateResults, c.State())
	snap := r.snapshot()
	assert.Equal(t, "results", snap.visible)
	assert.False(t, snap.loading, "loading cleared after completion")
	assert.Equal(t, 1, client.callCount())
	assert.Equal(t, "simple", client.lastBOM)
	assert.Equal(t, models.ResultFiles{JSON: "a1", CSV: "a1"}, r.lastFiles)
}

func TestController_SubmitServerFailure(t *testing.T) {
	t.Run("server-supplied message", func(t *testing.T) {
		r := &fakeRenderer{}
		client := &fakeClient{resp: &models.ExtractionResponse{Success: false, Error: "Unreadable PDF"}}
		c := New(client, r)

		c.SelectFiles(pdfFile("bom.pdf"))
		c.Submit(context.Background(), "simple")

		assert.Equal(t, StateError, c.State())
		assert.Equal(t, "Unreadable PDF", r.snapshot().errorMessage)
		assert.False(t, r.snapshot().loading)
	})

	t.Run("generic fallback message", func(t *testing.T) {
		r := &fakeRenderer{}
		client := &fakeClient{resp: &models.ExtractionResponse{Success: false}}
		c := New(client, r)

		c.SelectFiles(pdfFile("bom.pdf"))
		c.Submit(context.Background(), "simple")

		assert.Equal(t, MsgGenericError, r.snapshot().errorMessage)
	})
}

func TestController_SubmitTransportError(t *testing.T) {
	r := &fakeRenderer{}
	client := &fakeClient{err: errors.New("connection refused")}
	c := New(client, r)

	c.SelectFiles(pdfFile("bom.pdf"))
	c.Submit(context.Background(), "simple")

	assert.Equal(t, StateError, c.State())
	assert.Equal(t, "Network error: connection refused", r.snapshot().errorMessage)
	assert.False(t, r.snapshot().loading, "loading cleared on the error path")
}

func TestController_ResetProducesIdenticalState(t *testing.T) {
	fromResults := func() fakeRenderer {
		r := &fakeRenderer{}
		c := New(&fakeClient{resp: successResponse()}, r)
		c.SelectFiles(pdfFile("bom.pdf"))
		c.Submit(context.Background(), "simple")
		require.Equal(t, StateResults, c.State())
		c.Reset()
		assert.Equal(t, StateUpload, c.State())
		_, ok := c.SelectedFileName()
		assert.False(t, ok)
		return r.snapshot()
	}

	fromError := func() fakeRenderer {
		r := &fakeRenderer{}
		c := New(&fakeClient{resp: &models.ExtractionResponse{Success: false, Error: "boom"}}, r)
		c.SelectFiles(pdfFile("bom.pdf"))
		c.Submit(context.Background(), "simple")
		require.Equal(t, StateError, c.State())
		c.Reset()
		assert.Equal(t, StateUpload, c.State())
		_, ok := c.SelectedFileName()
		assert.False(t, ok)
		return r.snapshot()
	}

	assert.Equal(t, fromResults(), fromError())
}

func TestController_StaleResponseDiscardedAfterReset(t *testing.T) {
	r := &fakeRenderer{}
	block := make(chan struct{})
	client := &fakeClient{resp: successResponse(), block: block}
	c := New(client, r)

	c.SelectFiles(pdfFile("bom.pdf"))

	done := make(chan struct{})
	go func() {
		c.Submit(context.Background(), "simple")
		close(done)
	}()

	// Wait until the request is in flight, then reset underneath it.
	require.Eventually(t, func() bool { return client.callCount() == 1 }, time.Second, 5*time.Millisecond)
	c.Reset()

	close(block)
	<-done

	// The late success must not overwrite the reset UI.
	assert.Equal(t, StateUpload, c.State())
	assert.Equal(t, "upload", r.snapshot().visible)
	assert.False(t, r.snapshot().loading)
}

func TestController_NoConcurrentSubmissions(t *testing.T) {
	r := &fakeRenderer{}
	block := make(chan struct{})
	client := &fakeClient{resp: successResponse(), block: block}
	c := New(client, r)

	c.SelectFiles(pdfFile("bom.pdf"))

	done := make(chan struct{})
	go func() {
		c.Submit(context.Background(), "simple")
		close(done)
	}()
	require.Eventually(t, func() bool { return client.callCount() == 1 }, time.Second, 5*time.Millisecond)

	// A second submit while loading is ignored.
	c.Submit(context.Background(), "simple")
	assert.Equal(t, 1, client.callCount())

	close(block)
	<-done
	assert.Equal(t, StateResults, c.State())
}

func TestController_LoadingEnteredDuringSubmit(t *testing.T) {
	r := &fakeRenderer{}
	block := make(chan struct{})
	client := &fakeClient{resp: successResponse(), block: block}
	c := New(client, r)

	c.SelectFiles(pdfFile("bom.pdf"))

	done := make(chan struct{})
	go func() {
		c.Submit(context.Background(), "simple")
		close(done)
	}()
	require.Eventually(t, func() bool { return client.callCount() == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, StateLoading, c.State())
	assert.True(t, r.snapshot().loading)

	close(block)
	<-done
	assert.False(t, r.snapshot().loading)
}

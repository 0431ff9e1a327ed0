package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	content    string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	return f.content, f.err
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\n...")))
	assert.False(t, IsPDF([]byte("MZ")))
	assert.False(t, IsPDF(nil))
	assert.False(t, IsPDF([]byte("%PD")))
}

func TestExtractText_RejectsNonPDF(t *testing.T) {
	_, _, err := ExtractText([]byte("plain text"))
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestService_ExtractRejectsNonPDF(t *testing.T) {
	llm := &fakeCompleter{}
	svc := NewService(llm, nil, nil)

	_, err := svc.Extract(context.Background(), Request{
		FileName: "notes.txt",
		PDF:      []byte("not a pdf"),
		BOMType:  "simple",
	})
	require.ErrorIs(t, err, ErrNotPDF)
	assert.Zero(t, llm.calls, "no model call for rejected input")
}

func TestParseResult_Valid(t *testing.T) {
	content := `{
		"document_title": "Widget BOM",
		"bom_type": "simple",
		"total_items": 2,
		"items": [
			{"part": "R1", "qty": 10},
			{"part": "C3", "qty": 4}
		]
	}`

	data, err := parseResult(content, "simple")
	require.NoError(t, err)
	assert.Equal(t, "Widget BOM", data.DocumentTitle)
	assert.Equal(t, "simple", data.BOMType)
	assert.Equal(t, 2, data.TotalItems)
	require.Len(t, data.Items, 2)
	assert.Equal(t, []string{"part", "qty"}, data.Items[0].Keys())

	qty, ok := data.Items[0].Get("qty")
	require.True(t, ok)
	assert.Equal(t, int64(10), qty)
}

func TestParseResult_StripsCodeFence(t *testing.T) {
	content := "```json\n{\"bom_type\": \"simple\", \"items\": [{\"part\": \"R1\"}]}\n```"

	data, err := parseResult(content, "simple")
	require.NoError(t, err)
	require.Len(t, data.Items, 1)
}

func TestParseResult_NormalizesOmittedFields(t *testing.T) {
	// bom_type present but empty count; total_items falls back to len(items).
	content := `{"bom_type": "engineering", "items": [{"part": "R1"}, {"part": "C3"}]}`

	data, err := parseResult(content, "simple")
	require.NoError(t, err)
	assert.Equal(t, "engineering", data.BOMType)
	assert.Equal(t, 2, data.TotalItems)
}

func TestParseResult_RejectsInvalidShape(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "the model rambled instead"},
		{"missing items", `{"bom_type": "simple"}`},
		{"missing bom_type", `{"items": []}`},
		{"items not objects", `{"bom_type": "simple", "items": ["R1"]}`},
		{"negative total", `{"bom_type": "simple", "total_items": -1, "items": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseResult(tt.content, "simple")
			assert.Error(t, err)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

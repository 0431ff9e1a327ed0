package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/bom-extractor/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleData() *models.ExtractionData {
	return &models.ExtractionData{
		DocumentTitle: "Widget BOM",
		BOMType:       "simple",
		TotalItems:    2,
		Items: []models.Record{
			models.NewRecord(
				models.Field{Key: "part", Value: "R1"},
				models.Field{Key: "qty", Value: int64(10)},
				models.Field{Key: "unit_cost", Value: 0.05},
			),
			models.NewRecord(
				// Missing unit_cost and carrying an extra key the header
				// row does not know about.
				models.Field{Key: "part", Value: "C3"},
				models.Field{Key: "qty", Value: int64(4)},
				models.Field{Key: "manufacturer", Value: "Acme"},
			),
		},
	}
}

func TestWriteJSON(t *testing.T) {
	out, err := WriteJSON(sampleData())
	require.NoError(t, err)

	var decoded models.ExtractionData
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Widget BOM", decoded.DocumentTitle)
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, []string{"part", "qty", "unit_cost"}, decoded.Items[0].Keys())
}

func TestWriteCSV(t *testing.T) {
	out, err := WriteCSV(sampleData().Items)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Columns come from the first record only.
	assert.Equal(t, []string{"part", "qty", "unit_cost"}, rows[0])
	assert.Equal(t, []string{"R1", "10", "0.05"}, rows[1])
	// Missing column is empty, the extra manufacturer key is dropped.
	assert.Equal(t, []string{"C3", "4", ""}, rows[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	out, err := WriteCSV(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestWriteXLSX(t *testing.T) {
	out, err := WriteXLSX(sampleData())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"BOM"}, f.GetSheetList())

	rows, err := f.GetRows("BOM")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"part", "qty", "unit_cost"}, rows[0])
	assert.Equal(t, "R1", rows[1][0])
	assert.Equal(t, "10", rows[1][1])
	assert.Equal(t, "C3", rows[2][0])
}

func TestWriteXLSX_NoItems(t *testing.T) {
	out, err := WriteXLSX(&models.ExtractionData{BOMType: "simple"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"BOM"}, f.GetSheetList())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "R1", "R1"},
		{"int64", int64(10), "10"},
		{"integral float", float64(10), "10"},
		{"fractional float", 0.05, "0.05"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.in))
		})
	}
}

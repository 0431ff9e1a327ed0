// Package export produces downloadable artifacts from extraction results.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bom-extractor/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

// Formats of the artifacts produced for every extraction.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// WriteJSON renders the full extraction result as indented JSON.
func WriteJSON(data *models.ExtractionData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return out, nil
}

// WriteCSV renders the item list as CSV. The header row comes from the first
// record's field order; later records missing a column produce an empty cell.
func WriteCSV(items []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(items) == 0 {
		w.Flush()
		return buf.Bytes(), w.Error()
	}

	headers := items[0].Keys()
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(headers))
	for _, item := range items {
		for i, key := range headers {
			v, ok := item.Get(key)
			if !ok || v == nil {
				row[i] = ""
				continue
			}
			row[i] = formatValue(v)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing row: %w", err)
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// WriteXLSX renders the result as a single-sheet workbook.
func WriteXLSX(data *models.ExtractionData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "BOM"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	if len(data.Items) > 0 {
		headers := data.Items[0].Keys()
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return nil, err
			}
		}

		for rowIdx, item := range data.Items {
			for colIdx, key := range headers {
				v, ok := item.Get(key)
				if !ok || v == nil {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// formatValue converts a scalar cell value to its text form. Integral floats
// produced by JSON decoding print without a trailing ".0".
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Package view renders extraction results as HTML and provides a headless
// implementation of the controller's render surface.
package view

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/bom-extractor/backend/internal/models"
)

// EmptyTableMessage is shown instead of an empty table when the extraction
// found no items.
const EmptyTableMessage = "No items were extracted from this document."

// DefaultDocumentTitle is used when the extraction reports no title.
const DefaultDocumentTitle = "BOM Document"

// missingCell is the placeholder for absent or null values.
const missingCell = "-"

// FormatHeader converts a snake_case field key into a display header:
// "unit_cost" -> "Unit Cost".
func FormatHeader(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// RenderTable renders BOM items as an HTML table. Column order comes from
// the first record only; later records with different keys render ragged
// cells rather than being reconciled, matching the documented
// first-row-only schema policy. Every cell value is HTML-escaped.
func RenderTable(items []models.Record) string {
	if len(items) == 0 {
		return `<p class="empty-state">` + EmptyTableMessage + `</p>`
	}

	keys := items[0].Keys()

	var b strings.Builder
	b.WriteString(`<table class="bom-table"><thead><tr>`)
	for _, key := range keys {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(FormatHeader(key)))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	for _, item := range items {
		b.WriteString("<tr>")
		for _, key := range keys {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(CellText(item, key)))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")

	return b.String()
}

// CellText returns the display text for one cell. Missing and null values
// both render the literal placeholder.
func CellText(item models.Record, key string) string {
	v, ok := item.Get(key)
	if !ok || v == nil {
		return missingCell
	}
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

// RenderSummary renders the result header: item count, uppercased processing
// mode and the document title (with a fallback title).
func RenderSummary(data *models.ExtractionData) string {
	title := data.DocumentTitle
	if title == "" {
		title = DefaultDocumentTitle
	}

	var b strings.Builder
	b.WriteString(`<div class="summary">`)
	fmt.Fprintf(&b, `<h2>%s</h2>`, html.EscapeString(title))
	fmt.Fprintf(&b, `<span class="count">%d items</span>`, data.ItemCount())
	fmt.Fprintf(&b, `<span class="mode">%s</span>`, html.EscapeString(strings.ToUpper(data.BOMType)))
	b.WriteString(`</div>`)
	return b.String()
}

// RenderDownloads renders the download actions for a result's artifacts.
// Links are built fresh per result from the server-supplied identifiers.
func RenderDownloads(files models.ResultFiles) string {
	var b strings.Builder
	b.WriteString(`<div class="downloads">`)
	fmt.Fprintf(&b, `<a class="btn" href="/download/json/%s">Download JSON</a>`, html.EscapeString(files.JSON))
	fmt.Fprintf(&b, `<a class="btn" href="/download/csv/%s">Download CSV</a>`, html.EscapeString(files.CSV))
	if files.XLSX != "" {
		fmt.Fprintf(&b, `<a class="btn" href="/download/xlsx/%s">Download XLSX</a>`, html.EscapeString(files.XLSX))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// RenderResultPage composes a full standalone results page.
func RenderResultPage(data *models.ExtractionData, files models.ResultFiles) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>BOM Extraction Results</title></head><body>")
	b.WriteString(RenderSummary(data))
	b.WriteString(RenderTable(data.Items))
	b.WriteString(RenderDownloads(files))
	b.WriteString("</body></html>")
	return b.String()
}

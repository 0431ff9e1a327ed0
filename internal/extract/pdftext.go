package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotPDF is returned when the uploaded bytes do not carry a PDF signature.
var ErrNotPDF = fmt.Errorf("not a PDF document")

// IsPDF checks the %PDF file signature.
func IsPDF(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], []byte("%PDF"))
}

// ExtractText extracts plain text from all pages of a PDF, with a page
// marker before each page so the model can attribute rows to pages.
func ExtractText(data []byte) (string, int, error) {
	if !IsPDF(data) {
		return "", 0, ErrNotPDF
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("opening PDF: %w", err)
	}

	pageCount := reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		fmt.Fprintf(&sb, "\n--- Page %d ---\n", i)

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or malformed pages yield no text but should not
			// abort the whole document.
			continue
		}
		sb.WriteString(text)
	}

	return sb.String(), pageCount, nil
}

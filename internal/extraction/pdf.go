package extraction

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF extracts text from a PDF document. It first attempts whole-document
// structured extraction; if that fails it falls back to page-by-page plain-text
// extraction. Only when both strategies fail is ErrExtractionFailed returned.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ErrExtractionFailed{Format: FormatPDF, Cause: err}
	}

	if text, err := extractPDFDocument(reader); err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	text, err := extractPDFPages(reader)
	if err != nil {
		return "", &ErrExtractionFailed{Format: FormatPDF, Cause: err}
	}
	return text, nil
}

// extractPDFDocument reads the whole document's plain text in one pass.
func extractPDFDocument(reader *pdf.Reader) (text string, err error) {
	// The underlying parser panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = &ErrExtractionFailed{Format: FormatPDF, Cause: recoveredError(r)}
		}
	}()

	r, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// extractPDFPages walks pages individually, skipping ones that fail to decode.
func extractPDFPages(reader *pdf.Reader) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrExtractionFailed{Format: FormatPDF, Cause: recoveredError(r)}
		}
	}()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

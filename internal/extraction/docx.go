package extraction

import (
	"bytes"
	"fmt"
	"html"
	"regexp"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
)

// extractDOCX extracts paragraph text, in document order, from a modern Word
// document. Paragraphs are joined by newlines.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ErrExtractionFailed{Format: FormatDOCX, Cause: err}
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()

	// The library exposes the raw document XML; paragraph boundaries become
	// newlines, all other markup is dropped.
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTag.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

// recoveredError converts a recovered panic value into an error.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

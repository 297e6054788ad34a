package extraction

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
)

// extractHTML extracts visible text from an HTML resume, dropping script and
// style content.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &ErrExtractionFailed{Format: FormatHTML, Cause: err}
	}

	doc.Find("script, style, noscript").Remove()

	var buf bytes.Buffer
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		buf.WriteString(sel.Text())
	})
	if buf.Len() == 0 {
		// Fragment without a body element
		buf.WriteString(doc.Text())
	}
	return buf.String(), nil
}

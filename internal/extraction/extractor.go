// Package extraction converts uploaded resume documents into plain text.
//
// Extraction is deterministic given identical input and has no side effects
// beyond reading the input bytes. Failures are reported through the typed
// errors in errors.go so callers can surface the specific problem.
package extraction

// Extract converts a file's binary content into cleaned plain text based on
// its declared format.
//
// It returns ErrUnsupportedFormat for formats with no extraction path (legacy
// .doc and anything unrecognized), ErrExtractionFailed for corrupt or
// unreadable content, and ErrEmptyDocument when no text survives cleaning.
func Extract(data []byte, format Format) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatHTML:
		text, err = extractHTML(data)
	case FormatText:
		text = string(data)
	default:
		return "", &ErrUnsupportedFormat{Format: format}
	}
	if err != nil {
		return "", err
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", &ErrEmptyDocument{Format: format}
	}
	return cleaned, nil
}

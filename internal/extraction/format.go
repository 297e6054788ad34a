package extraction

import (
	"path/filepath"
	"strings"
)

// Format identifies the declared format of an uploaded resume.
type Format string

// Supported (and recognized-but-unsupported) resume formats.
const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatDOC     Format = "doc" // legacy Word; recognized but has no extraction path
	FormatHTML    Format = "html"
	FormatText    Format = "txt"
	FormatUnknown Format = ""
)

// FormatFromFilename derives the format from a file name's extension.
func FormatFromFilename(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".doc":
		return FormatDOC
	case ".html", ".htm":
		return FormatHTML
	case ".txt":
		return FormatText
	default:
		return FormatUnknown
	}
}

// FormatFromContentType derives the format from a MIME content type.
func FormatFromContentType(contentType string) Format {
	// Strip parameters like "; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	switch strings.TrimSpace(strings.ToLower(contentType)) {
	case "application/pdf":
		return FormatPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX
	case "application/msword":
		return FormatDOC
	case "text/html":
		return FormatHTML
	case "text/plain":
		return FormatText
	default:
		return FormatUnknown
	}
}

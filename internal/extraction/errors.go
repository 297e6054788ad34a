package extraction

import "fmt"

// ErrUnsupportedFormat indicates the declared format has no extraction path.
type ErrUnsupportedFormat struct {
	Format Format
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported resume format: %s", e.Format)
}

// ErrExtractionFailed indicates the file content was corrupt or unreadable.
type ErrExtractionFailed struct {
	Format Format
	Cause  error
}

func (e *ErrExtractionFailed) Error() string {
	return fmt.Sprintf("failed to extract text from %s document: %v", e.Format, e.Cause)
}

func (e *ErrExtractionFailed) Unwrap() error {
	return e.Cause
}

// ErrEmptyDocument indicates the document yielded no extractable text.
type ErrEmptyDocument struct {
	Format Format
}

func (e *ErrEmptyDocument) Error() string {
	return fmt.Sprintf("no text could be extracted from %s document", e.Format)
}

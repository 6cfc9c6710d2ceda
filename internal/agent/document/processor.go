package document

import "context"

// Extractor pulls plain text out of a staged file of one content family.
type Extractor interface {
	// CanProcess reports whether the extractor handles the sniffed MIME type.
	CanProcess(mimeType string) bool

	// Extract returns the text content of the file at path. A file without
	// any text yields "" and no error.
	Extract(ctx context.Context, path string) (string, error)
}

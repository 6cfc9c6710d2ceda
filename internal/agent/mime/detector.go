// Package mime determines a file's type from its content, never from its name.
package mime

import (
	"archive/zip"
	"fmt"
	stdmime "mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/alisever/join-the-siege/internal/models"
)

// WordDocumentEntry is the manifest part every word-processor container carries.
const WordDocumentEntry = "word/document.xml"

// DetectMimeType sniffs the file at path and returns a canonical MIME type.
// Parameters are dropped and every zip-based format is reported as application/zip.
func DetectMimeType(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect mime type: %w", err)
	}
	return canonical(mt), nil
}

func canonical(mt *mimetype.MIME) string {
	for m := mt; m != nil; m = m.Parent() {
		if bare(m.String()) == models.MimeZip {
			return models.MimeZip
		}
	}
	return bare(mt.String())
}

func bare(s string) string {
	if mediaType, _, err := stdmime.ParseMediaType(s); err == nil {
		return mediaType
	}
	return strings.TrimSpace(strings.SplitN(s, ";", 2)[0])
}

// IsWordProcessorContainer reports whether path is a zip archive holding a
// word-processor document body. Unreadable or non-zip files yield false.
func IsWordProcessorContainer(path string) bool {
	r, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == WordDocumentEntry {
			return true
		}
	}
	return false
}

// IsImage reports whether mimeType is any image type.
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, models.MimeImagePref)
}

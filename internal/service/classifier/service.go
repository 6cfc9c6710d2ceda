package classifier

import (
	"context"
	"io"

	"github.com/alisever/join-the-siege/internal/models"
)

// DocumentClassifier assigns one configured class, or unknown_file, to an upload.
type DocumentClassifier interface {
	Classify(ctx context.Context, file io.Reader, filename string) (models.ClassificationResult, error)
}

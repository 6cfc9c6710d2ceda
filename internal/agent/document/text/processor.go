// Package text passes plain-text uploads through unchanged.
package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/alisever/join-the-siege/internal/models"
	"github.com/alisever/join-the-siege/pkg/logger"
)

// maxTextSize caps how much of a text upload is read.
const maxTextSize = 32 << 20

type Processor struct {
	logger logger.Logger
}

func NewProcessor(log logger.Logger) *Processor {
	return &Processor{logger: log.Named("text")}
}

func (p *Processor) CanProcess(mimeType string) bool {
	return mimeType == models.MimeText
}

// Extract returns the file content verbatim. Content that is not valid UTF-8
// is rejected.
func (p *Processor) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open text file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxTextSize))
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("text file is not valid utf-8")
	}
	return string(data), nil
}

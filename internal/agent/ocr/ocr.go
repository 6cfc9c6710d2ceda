// Package ocr defines the optical character recognition backends used for
// raster content.
package ocr

import (
	"context"
	"strings"
)

const (
	EngineTesseract = "tesseract"
	EngineTextract  = "textract"
)

// Engine recognizes text in an encoded image (PNG or JPEG bytes).
type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
	Close() error
}

// EngineFunc adapts a plain function to Engine.
type EngineFunc func(ctx context.Context, image []byte) (string, error)

func (f EngineFunc) Recognize(ctx context.Context, image []byte) (string, error) {
	return f(ctx, image)
}

func (f EngineFunc) Close() error { return nil }

// Normalize trims trailing whitespace on every line and drops leading and
// trailing blank lines.
func Normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// Package tesseract runs OCR through the local Tesseract library.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/alisever/join-the-siege/internal/agent/ocr"
	"github.com/alisever/join-the-siege/pkg/logger"
)

type Config struct {
	Languages   []string
	PageSegMode gosseract.PageSegMode
}

// Engine creates a fresh client per call; gosseract clients are not safe for
// concurrent use.
type Engine struct {
	config *Config
	logger logger.Logger
}

var _ ocr.Engine = (*Engine)(nil)

func NewEngine(cfg *Config, log logger.Logger) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}
	if cfg.PageSegMode == 0 {
		cfg.PageSegMode = gosseract.PSM_AUTO
	}
	return &Engine{config: cfg, logger: log.Named("tesseract")}
}

// ParseLanguages splits a tesseract language spec such as "eng+deu".
func ParseLanguages(spec string) []string {
	var langs []string
	for _, l := range strings.Split(spec, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}

func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.config.Languages...); err != nil {
		return "", fmt.Errorf("failed to set ocr language: %w", err)
	}
	if err := client.SetPageSegMode(e.config.PageSegMode); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to recognize text: %w", err)
	}

	e.logger.Debug("Tesseract recognition finished",
		logger.Int("bytes", len(image)),
		logger.Int("chars", len(text)),
	)
	return ocr.Normalize(text), nil
}

func (e *Engine) Close() error {
	return nil
}

package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/disintegration/imaging"

	"github.com/alisever/join-the-siege/internal/agent/mime"
	"github.com/alisever/join-the-siege/internal/agent/ocr"
	"github.com/alisever/join-the-siege/pkg/logger"
)

// Processor recognizes text in raster images. It also serves rasterized PDF
// pages through Recognize.
type Processor struct {
	logger        logger.Logger
	engine        ocr.Engine
	preprocessors []ImagePreprocessor
	config        *ProcessOptions
}

type ProcessOptions struct {
	Preprocess      bool
	MinSide         int
	BorderSize      int
	ContrastPercent float64
	SharpenSigma    float64
}

func DefaultProcessOptions() *ProcessOptions {
	return &ProcessOptions{
		Preprocess:      true,
		MinSide:         1000,
		BorderSize:      10,
		ContrastPercent: 20,
		SharpenSigma:    0.5,
	}
}

func NewProcessor(engine ocr.Engine, log logger.Logger, opts *ProcessOptions) (*Processor, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("ocr engine is required")
	}
	if opts == nil {
		opts = DefaultProcessOptions()
	}

	p := &Processor{
		logger: log.Named("image"),
		engine: engine,
		config: opts,
	}
	if opts.Preprocess {
		p.preprocessors = []ImagePreprocessor{
			NewGrayscaleProcessor(),
			NewUpscaleProcessor(opts.MinSide),
			NewContrastProcessor(opts.ContrastPercent),
			NewSharpenProcessor(opts.SharpenSigma),
			NewBorderProcessor(opts.BorderSize),
		}
	}
	return p, nil
}

func (p *Processor) CanProcess(mimeType string) bool {
	return mime.IsImage(mimeType)
}

// Extract decodes the image at path, honoring EXIF orientation, and runs OCR.
func (p *Processor) Extract(ctx context.Context, path string) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return p.Recognize(ctx, img)
}

// Recognize preprocesses img and passes it to the OCR engine as PNG.
func (p *Processor) Recognize(ctx context.Context, img image.Image) (string, error) {
	start := time.Now()

	processed, err := runPreprocessors(img, p.preprocessors)
	if err != nil {
		return "", fmt.Errorf("failed to preprocess image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	text, err := p.engine.Recognize(ctx, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("ocr failed: %w", err)
	}

	b := processed.Bounds()
	p.logger.Debug("Image recognized",
		logger.Int("width", b.Dx()),
		logger.Int("height", b.Dy()),
		logger.Int("chars", len(text)),
		logger.Duration("took", time.Since(start)),
	)
	return text, nil
}

func (p *Processor) Close() error {
	return p.engine.Close()
}

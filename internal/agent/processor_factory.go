package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/alisever/join-the-siege/internal/agent/document"
	"github.com/alisever/join-the-siege/internal/agent/document/image"
	"github.com/alisever/join-the-siege/internal/agent/document/pdf"
	"github.com/alisever/join-the-siege/internal/agent/document/text"
	"github.com/alisever/join-the-siege/internal/agent/document/word"
	"github.com/alisever/join-the-siege/internal/agent/mime"
	"github.com/alisever/join-the-siege/internal/agent/ocr"
	"github.com/alisever/join-the-siege/internal/models"
	"github.com/alisever/join-the-siege/pkg/logger"
)

// FactoryOptions carries the OCR stack shared by the image and PDF extractors.
type FactoryOptions struct {
	Engine     ocr.Engine
	Rasterizer pdf.Rasterizer
	PDF        *pdf.Config
	Image      *image.ProcessOptions
}

// ExtractorFactory maps a sniffed MIME type to the extractor for it.
type ExtractorFactory struct {
	extractors map[string]document.Extractor
	images     document.Extractor
	engine     ocr.Engine
	logger     logger.Logger
}

func NewExtractorFactory(log logger.Logger, opts FactoryOptions) (*ExtractorFactory, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("ocr engine is required")
	}

	imageProcessor, err := image.NewProcessor(opts.Engine, log, opts.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to create image processor: %w", err)
	}

	factory := &ExtractorFactory{
		extractors: make(map[string]document.Extractor),
		images:     imageProcessor,
		engine:     opts.Engine,
		logger:     log.Named("extractor"),
	}
	factory.extractors[models.MimePDF] = pdf.NewProcessor(imageProcessor, opts.Rasterizer, log, opts.PDF)
	factory.extractors[models.MimeZip] = word.NewProcessor(log)
	factory.extractors[models.MimeText] = text.NewProcessor(log)

	return factory, nil
}

// GetExtractor returns the extractor for mimeType. Zip archives qualify only
// when path holds a word-processor document body.
func (f *ExtractorFactory) GetExtractor(mimeType, path string) (document.Extractor, error) {
	if f.images.CanProcess(mimeType) {
		return f.images, nil
	}

	extractor, ok := f.extractors[mimeType]
	if !ok {
		return nil, models.WrapError(models.ErrUnsupportedType, "get extractor", fmt.Errorf("mime type %q", mimeType))
	}
	if mimeType == models.MimeZip && !mime.IsWordProcessorContainer(path) {
		return nil, models.WrapError(models.ErrUnsupportedType, "get extractor", fmt.Errorf("zip archive without %s", mime.WordDocumentEntry))
	}
	return extractor, nil
}

// Extract returns the text of the file at path. Unsupported types yield ""
// without an error.
func (f *ExtractorFactory) Extract(ctx context.Context, path, mimeType string) (string, error) {
	extractor, err := f.GetExtractor(mimeType, path)
	if err != nil {
		if models.IsKind(err, models.ErrUnsupportedType) {
			f.logger.Info("No extractor for content, relying on filename",
				logger.String("mime_type", mimeType),
			)
			return "", nil
		}
		return "", err
	}

	start := time.Now()
	content, err := extractor.Extract(ctx, path)
	if err != nil {
		return "", err
	}

	f.logger.Debug("Text extracted",
		logger.String("mime_type", mimeType),
		logger.Int("chars", len(content)),
		logger.Duration("took", time.Since(start)),
	)
	return content, nil
}

func (f *ExtractorFactory) Close() error {
	return f.engine.Close()
}

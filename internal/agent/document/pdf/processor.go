package pdf

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/alisever/join-the-siege/internal/models"
	"github.com/alisever/join-the-siege/pkg/logger"
)

// ImageRecognizer runs OCR on a rendered page.
type ImageRecognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

type Config struct {
	// MinTextLength is the trimmed text-layer length below which a page is OCRed.
	MinTextLength int
	DPI           int
	// MaxWorkers bounds concurrent OCR pages within one document.
	MaxWorkers int
}

// document is the read side of an opened PDF.
type document interface {
	NumPage() int
	PageText(n int) (string, error)
	Close() error
}

type Processor struct {
	logger     logger.Logger
	recognizer ImageRecognizer
	rasterizer Rasterizer
	config     *Config
	open       func(path string) (document, error)
}

func NewProcessor(recognizer ImageRecognizer, rasterizer Rasterizer, log logger.Logger, cfg *Config) *Processor {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = 10
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	return &Processor{
		logger:     log.Named("pdf"),
		recognizer: recognizer,
		rasterizer: rasterizer,
		config:     cfg,
		open:       openDocument,
	}
}

func (p *Processor) CanProcess(mimeType string) bool {
	return mimeType == models.MimePDF
}

// Extract reads every page's text layer in order. Pages whose text layer is
// shorter than MinTextLength are rendered and OCRed in parallel. A page that
// fails to render or recognize keeps whatever text layer it had.
func (p *Processor) Extract(ctx context.Context, path string) (string, error) {
	start := time.Now()

	doc, err := p.open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	texts := make([]string, numPages)
	var sparse []int
	for i := 0; i < numPages; i++ {
		text, err := doc.PageText(i + 1)
		if err != nil {
			p.logger.Warn("Failed to read page text layer",
				logger.Int("page", i+1),
				logger.Error(err),
			)
		}
		texts[i] = text
		if utf8.RuneCountInString(strings.TrimSpace(text)) < p.config.MinTextLength {
			sparse = append(sparse, i)
		}
	}

	if len(sparse) > 0 {
		p.ocrPages(ctx, path, sparse, texts)
	}

	p.logger.Debug("PDF text extracted",
		logger.Int("pages", numPages),
		logger.Int("ocr_pages", len(sparse)),
		logger.Duration("took", time.Since(start)),
	)
	return strings.Join(texts, "\n"), nil
}

func (p *Processor) ocrPages(ctx context.Context, path string, pages []int, texts []string) {
	if p.recognizer == nil || p.rasterizer == nil {
		p.logger.Warn("OCR unavailable, keeping sparse text layer", logger.Int("pages", len(pages)))
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.MaxWorkers)
	for _, idx := range pages {
		idx := idx
		g.Go(func() error {
			if text, ok := p.ocrPage(gctx, path, idx+1); ok {
				texts[idx] = text
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (p *Processor) ocrPage(ctx context.Context, path string, page int) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("OCR panicked", logger.Int("page", page), logger.Any("panic", r))
			text, ok = "", false
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", false
	}

	img, err := p.rasterizer.RasterizePage(ctx, path, page, p.config.DPI)
	if err != nil {
		p.logger.Warn("Failed to render page", logger.Int("page", page), logger.Error(err))
		return "", false
	}
	text, err = p.recognizer.Recognize(ctx, img)
	if err != nil {
		p.logger.Warn("Failed to OCR page", logger.Int("page", page), logger.Error(err))
		return "", false
	}
	return text, true
}

type ledongthucDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func openDocument(path string) (doc document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			f.Close()
			doc, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	return &ledongthucDocument{file: f, reader: reader}, nil
}

func (d *ledongthucDocument) NumPage() int {
	return d.reader.NumPage()
}

// PageText recovers from panics raised by malformed content streams.
func (d *ledongthucDocument) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed page %d: %v", n, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func (d *ledongthucDocument) Close() error {
	return d.file.Close()
}

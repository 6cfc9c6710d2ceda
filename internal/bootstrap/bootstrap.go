// Package bootstrap assembles the classification pipeline from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/alisever/join-the-siege/config"
	"github.com/alisever/join-the-siege/internal/agent"
	"github.com/alisever/join-the-siege/internal/agent/document/image"
	"github.com/alisever/join-the-siege/internal/agent/document/pdf"
	"github.com/alisever/join-the-siege/internal/agent/ocr"
	"github.com/alisever/join-the-siege/internal/agent/ocr/tesseract"
	"github.com/alisever/join-the-siege/internal/agent/ocr/textract"
	"github.com/alisever/join-the-siege/internal/models"
	"github.com/alisever/join-the-siege/internal/service/classifier"
	"github.com/alisever/join-the-siege/pkg/logger"
	"github.com/alisever/join-the-siege/pkg/storage"
)

type App struct {
	Config     *config.AppConfig
	Classes    *config.ClassSet
	Classifier *classifier.Service

	closeFn func() error
}

// New builds the classifier. recorder may be nil.
func New(ctx context.Context, cfg *config.AppConfig, log logger.Logger, recorder classifier.Recorder) (*App, error) {
	classes, err := config.LoadClasses(cfg.ClassesFile)
	if err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}

	engine, err := NewEngine(ctx, cfg.OCR, log)
	if err != nil {
		return nil, fmt.Errorf("init ocr engine: %w", err)
	}

	factory, err := agent.NewExtractorFactory(log, agent.FactoryOptions{
		Engine:     engine,
		Rasterizer: pdf.NewPopplerRasterizer(cfg.OCR.PdftoppmPath, log),
		PDF: &pdf.Config{
			MinTextLength: cfg.OCR.MinPDFTextLength,
			DPI:           cfg.OCR.DPI,
			MaxWorkers:    cfg.OCR.Workers,
		},
		Image: image.DefaultProcessOptions(),
	})
	if err != nil {
		return nil, fmt.Errorf("init extractors: %w", err)
	}

	opts := []classifier.Option{
		classifier.WithMinConfidence(cfg.Classifier.MinConfidence),
		classifier.WithStager(storage.NewTempStager(cfg.StagingDir)),
	}
	if recorder != nil {
		opts = append(opts, classifier.WithMetrics(recorder))
	}

	log.Info("Classifier ready",
		logger.Strings("classes", classes.Names()),
		logger.String("ocr_engine", cfg.OCR.Engine),
		logger.Float64("min_confidence", cfg.Classifier.MinConfidence),
	)

	return &App{
		Config:     cfg,
		Classes:    classes,
		Classifier: classifier.NewService(factory, classes, log, opts...),
		closeFn:    factory.Close,
	}, nil
}

// NewEngine selects the OCR backend named by cfg.Engine.
func NewEngine(ctx context.Context, cfg config.OCRConfig, log logger.Logger) (ocr.Engine, error) {
	switch cfg.Engine {
	case "", ocr.EngineTesseract:
		return tesseract.NewEngine(&tesseract.Config{
			Languages: tesseract.ParseLanguages(cfg.Language),
		}, log), nil
	case ocr.EngineTextract:
		aws := config.GetTextractConfig()
		return textract.NewEngine(ctx, &textract.Config{
			Region:        aws.Region,
			Endpoint:      aws.Endpoint,
			AccessKey:     aws.AccessKey,
			SecretKey:     aws.SecretKey,
			MinConfidence: 50,
		}, log)
	default:
		return nil, fmt.Errorf("unknown ocr engine %q", cfg.Engine)
	}
}

// Classify runs the assembled pipeline on one document.
func (a *App) Classify(ctx context.Context, file io.Reader, filename string) (models.ClassificationResult, error) {
	return a.Classifier.Classify(ctx, file, filename)
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

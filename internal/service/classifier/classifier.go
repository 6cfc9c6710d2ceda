// Package classifier runs the sniff, extract, score and select pipeline for
// one uploaded document.
package classifier

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/alisever/join-the-siege/config"
	"github.com/alisever/join-the-siege/internal/agent/mime"
	"github.com/alisever/join-the-siege/internal/models"
	"github.com/alisever/join-the-siege/pkg/logger"
	"github.com/alisever/join-the-siege/pkg/storage"
)

// TextExtractor returns the text of a staged file given its sniffed type.
type TextExtractor interface {
	Extract(ctx context.Context, path, mimeType string) (string, error)
}

// MimeDetector sniffs the content type of the file at path.
type MimeDetector func(path string) (string, error)

// Recorder receives pipeline observations.
type Recorder interface {
	RecordClassification(class string, score float64)
	RecordExtractionFailure(stage string)
}

type nopRecorder struct{}

func (nopRecorder) RecordClassification(string, float64) {}
func (nopRecorder) RecordExtractionFailure(string)       {}

type Config struct {
	MinConfidence float64
}

type Service struct {
	extractor TextExtractor
	classes   []models.ClassDefinition
	stager    storage.Stager
	detect    MimeDetector
	metrics   Recorder
	logger    logger.Logger
	config    *Config
}

var _ DocumentClassifier = (*Service)(nil)

type Option func(*Service)

func WithStager(stager storage.Stager) Option {
	return func(s *Service) { s.stager = stager }
}

func WithMimeDetector(detect MimeDetector) Option {
	return func(s *Service) { s.detect = detect }
}

func WithMetrics(recorder Recorder) Option {
	return func(s *Service) { s.metrics = recorder }
}

func WithMinConfidence(minConfidence float64) Option {
	return func(s *Service) { s.config.MinConfidence = minConfidence }
}

func NewService(extractor TextExtractor, classes *config.ClassSet, log logger.Logger, opts ...Option) *Service {
	if classes == nil {
		classes = config.DefaultClasses()
	}
	s := &Service{
		extractor: extractor,
		classes:   classes.Definitions(),
		stager:    storage.NewTempStager(""),
		detect:    mime.DetectMimeType,
		metrics:   nopRecorder{},
		logger:    log.Named("classifier"),
		config:    &Config{MinConfidence: config.DefaultMinConfidence},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify stages the upload, sniffs its content type, extracts text and
// scores it together with the filename. Extraction failures degrade to
// filename-only scoring; only invalid input and staging failures are errors.
// The staged copy is removed before Classify returns.
func (s *Service) Classify(ctx context.Context, file io.Reader, filename string) (models.ClassificationResult, error) {
	if file == nil {
		return models.ClassificationResult{}, models.WrapError(models.ErrInvalidInput, "classify", errors.New("no file provided"))
	}
	if strings.TrimSpace(filename) == "" {
		return models.ClassificationResult{}, models.WrapError(models.ErrInvalidInput, "classify", errors.New("empty filename"))
	}

	log := logger.FromContext(ctx, s.logger).With(logger.String("filename", filename))
	start := time.Now()

	staged, err := s.stager.Stage(ctx, file, filename)
	if err != nil {
		return models.ClassificationResult{}, models.WrapError(models.ErrStaging, "stage upload", err)
	}
	defer func() {
		if err := staged.Release(); err != nil {
			log.Warn("Failed to remove staged upload", logger.String("path", staged.Path), logger.Error(err))
		}
	}()

	mimeType, err := s.detect(staged.Path)
	if err != nil {
		return models.ClassificationResult{}, models.WrapError(models.ErrStaging, "detect mime type", err)
	}
	log = log.With(logger.String("mime_type", mimeType))

	text := s.extractText(ctx, log, staged.Path, mimeType)
	if err := ctx.Err(); err != nil {
		return models.ClassificationResult{}, err
	}

	scorings := scoreClasses(CombinedText(filename, text), s.classes)
	board := boardOf(scorings)
	winner := SelectClass(board, s.config.MinConfidence)

	for _, sc := range scorings {
		if sc.Score >= s.config.MinConfidence {
			continue
		}
		for _, kw := range sc.Keywords {
			log.Debug("Keyword below threshold",
				logger.String("class", sc.Class),
				logger.String("keyword", kw.Keyword),
				logger.Float64("score", kw.Score),
			)
		}
	}

	if winner.Class == models.UnknownClass {
		best, _ := board.Best()
		log.Warn("Low confidence classification",
			logger.String("best_class", best.Class),
			logger.Float64("best_score", best.Score),
			logger.Float64("threshold", s.config.MinConfidence),
		)
	} else {
		log.Info("Document classified",
			logger.String("class", winner.Class),
			logger.Float64("score", winner.Score),
			logger.Int64("size", staged.Size),
			logger.Duration("took", time.Since(start)),
		)
	}
	s.metrics.RecordClassification(winner.Class, winner.Score)

	return models.ClassificationResult{
		Class:    winner.Class,
		Score:    winner.Score,
		MimeType: mimeType,
		Scores:   board,
	}, nil
}

// extractText never fails: errors and panics yield "".
func (s *Service) extractText(ctx context.Context, log logger.Logger, path, mimeType string) (text string) {
	stage := string(models.FileTypeOf(mimeType))
	defer func() {
		if r := recover(); r != nil {
			log.Error("Extraction panicked", logger.Any("panic", r), logger.Stack())
			s.metrics.RecordExtractionFailure(stage)
			text = ""
		}
	}()

	content, err := s.extractor.Extract(ctx, path, mimeType)
	if err != nil {
		log.Warn("Extraction failed, classifying by filename", logger.Error(err))
		s.metrics.RecordExtractionFailure(stage)
		return ""
	}
	return content
}

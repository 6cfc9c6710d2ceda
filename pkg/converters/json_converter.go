package converters

import (
	"fmt"
	"time"

	"github.com/alisever/join-the-siege/internal/models"
)

// ReportConverter turns a classification into its wire representation.
type ReportConverter interface {
	Convert(filename string, result models.ClassificationResult, elapsed time.Duration) (*ClassificationReport, error)
}

// ClassificationReport is the verbose form of a classification.
type ClassificationReport struct {
	FileName     string          `json:"file_name"`
	FileClass    string          `json:"file_class"`
	Confidence   float64         `json:"confidence"`
	Threshold    float64         `json:"threshold"`
	MimeType     string          `json:"mime_type"`
	FileType     models.FileType `json:"file_type"`
	Scores       []ScoreEntry    `json:"scores"`
	ProcessingMs int64           `json:"processing_ms"`
	ProcessedAt  time.Time       `json:"processed_at"`
}

// ScoreEntry is one class's score, in configuration order.
type ScoreEntry struct {
	Class      string  `json:"class"`
	Score      float64 `json:"score"`
	Qualifying bool    `json:"qualifying"`
}

// Summary is the minimal response body.
type Summary struct {
	FileClass string `json:"file_class"`
}

type JSONConverter struct {
	threshold float64
	now       func() time.Time
}

func NewJSONConverter(threshold float64) *JSONConverter {
	return &JSONConverter{threshold: threshold, now: time.Now}
}

func (c *JSONConverter) Convert(filename string, result models.ClassificationResult, elapsed time.Duration) (*ClassificationReport, error) {
	if result.Class == "" {
		return nil, fmt.Errorf("classification has no class")
	}

	report := &ClassificationReport{
		FileName:     filename,
		FileClass:    result.Class,
		Confidence:   result.Score,
		Threshold:    c.threshold,
		MimeType:     result.MimeType,
		FileType:     models.FileTypeOf(result.MimeType),
		Scores:       make([]ScoreEntry, 0, len(result.Scores)),
		ProcessingMs: elapsed.Milliseconds(),
		ProcessedAt:  c.now().UTC(),
	}
	for _, s := range result.Scores {
		report.Scores = append(report.Scores, ScoreEntry{
			Class:      s.Class,
			Score:      s.Score,
			Qualifying: s.Score >= c.threshold,
		})
	}
	return report, nil
}

// Summarize returns the minimal body carrying only the class label.
func Summarize(result models.ClassificationResult) Summary {
	return Summary{FileClass: result.Class}
}

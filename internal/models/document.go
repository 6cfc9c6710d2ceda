package models

import "strings"

// FileType 文件类型
type FileType string

const (
	PDF   FileType = "pdf"
	Image FileType = "image"
	Word  FileType = "word"
	Text  FileType = "text"
	Other FileType = "other"
)

// Canonical MIME types produced by the sniffer.
const (
	MimePDF       = "application/pdf"
	MimeZip       = "application/zip"
	MimeText      = "text/plain"
	MimeImagePref = "image/"
)

// UnknownClass is returned when no class reaches the confidence threshold.
const UnknownClass = "unknown_file"

// ClassDefinition 文档类别及其关键词
type ClassDefinition struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// ClassScore is the confidence of one class for one document.
type ClassScore struct {
	Class string  `json:"class"`
	Score float64 `json:"score"`
}

// ScoreBoard holds exactly one score per configured class, in configuration order.
type ScoreBoard []ClassScore

// Best returns the entry with the strictly highest score. Ties keep the earlier entry.
func (b ScoreBoard) Best() (ClassScore, bool) {
	if len(b) == 0 {
		return ClassScore{}, false
	}
	best := b[0]
	for _, s := range b[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, true
}

// Score returns the score recorded for class.
func (b ScoreBoard) Score(class string) (float64, bool) {
	for _, s := range b {
		if s.Class == class {
			return s.Score, true
		}
	}
	return 0, false
}

// ClassificationResult 分类结果
type ClassificationResult struct {
	Class    string     `json:"file_class"`
	Score    float64    `json:"confidence"`
	MimeType string     `json:"mime_type"`
	Scores   ScoreBoard `json:"scores"`
}

// IsUnknown reports whether no class was confident enough.
func (r ClassificationResult) IsUnknown() bool {
	return r.Class == UnknownClass
}

// FileTypeOf maps a canonical MIME type to its content family.
func FileTypeOf(mimeType string) FileType {
	switch {
	case mimeType == MimePDF:
		return PDF
	case strings.HasPrefix(mimeType, MimeImagePref):
		return Image
	case mimeType == MimeZip:
		return Word
	case mimeType == MimeText:
		return Text
	default:
		return Other
	}
}

package validator

import (
	"mime/multipart"
	"path/filepath"
	"strings"
)

// DefaultAllowedExtensions are the upload extensions accepted by the HTTP API.
var DefaultAllowedExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".docx"}

const (
	CodeNoFile         = "NO_FILE"
	CodeNoFilename     = "NO_FILENAME"
	CodeTypeNotAllowed = "TYPE_NOT_ALLOWED"
	CodeFileTooLarge   = "FILE_TOO_LARGE"
)

// DocumentValidator checks upload metadata before any content is read. The
// extension gate is an API policy only; routing inside the pipeline is by
// sniffed content.
type DocumentValidator struct {
	config *ValidatorConfig
}

type ValidatorConfig struct {
	MaxFileSize       int64
	AllowedExtensions map[string]bool
}

// ValidationError 验证错误
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewDocumentValidator(cfg *ValidatorConfig) *DocumentValidator {
	if cfg == nil {
		cfg = &ValidatorConfig{}
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = extensionSet(DefaultAllowedExtensions)
	}
	return &DocumentValidator{config: cfg}
}

// AllowedFile reports whether filename carries an allowed extension,
// compared case-insensitively.
func (v *DocumentValidator) AllowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != "" && v.config.AllowedExtensions[ext]
}

// ValidateUpload returns nil when the upload may be classified.
func (v *DocumentValidator) ValidateUpload(header *multipart.FileHeader) *ValidationError {
	if header == nil {
		return &ValidationError{Code: CodeNoFile, Message: "No file part in the request", Field: "file"}
	}
	if strings.TrimSpace(header.Filename) == "" {
		return &ValidationError{Code: CodeNoFilename, Message: "No selected file", Field: "file"}
	}
	if !v.AllowedFile(header.Filename) {
		return &ValidationError{Code: CodeTypeNotAllowed, Message: "File type not allowed", Field: "file"}
	}
	if v.config.MaxFileSize > 0 && header.Size > v.config.MaxFileSize {
		return &ValidationError{Code: CodeFileTooLarge, Message: "File too large", Field: "file"}
	}
	return nil
}

// AllowedFile checks filename against DefaultAllowedExtensions.
func AllowedFile(filename string) bool {
	return defaultValidator.AllowedFile(filename)
}

var defaultValidator = NewDocumentValidator(nil)

func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = true
	}
	return set
}

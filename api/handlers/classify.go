package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alisever/join-the-siege/internal/service/classifier"
	"github.com/alisever/join-the-siege/internal/utils/validator"
	"github.com/alisever/join-the-siege/pkg/converters"
	"github.com/alisever/join-the-siege/pkg/logger"
)

type ClassifyHandler struct {
	service   classifier.DocumentClassifier
	converter converters.ReportConverter
	validator *validator.DocumentValidator
	logger    logger.Logger
}

func NewClassifyHandler(
	service classifier.DocumentClassifier,
	converter converters.ReportConverter,
	v *validator.DocumentValidator,
	log logger.Logger,
) *ClassifyHandler {
	if v == nil {
		v = validator.NewDocumentValidator(nil)
	}
	return &ClassifyHandler{
		service:   service,
		converter: converter,
		validator: v,
		logger:    log.Named("http"),
	}
}

// ClassifyFile handles POST /classify_file with a multipart "file" part.
// ?verbose=true returns the full report instead of only the class.
func (h *ClassifyHandler) ClassifyFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.handleUploadError(c, err)
		return
	}
	if verr := h.validator.ValidateUpload(header); verr != nil {
		status := http.StatusBadRequest
		if verr.Code == validator.CodeFileTooLarge {
			status = http.StatusRequestEntityTooLarge
		}
		h.handleError(c, status, verr.Message, nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid file upload", err)
		return
	}
	defer file.Close()

	start := time.Now()
	result, err := h.service.Classify(c.Request.Context(), file, header.Filename)
	if err != nil {
		h.handleError(c, statusForError(err), "Failed to classify file", err)
		return
	}

	verbose, _ := strconv.ParseBool(c.Query("verbose"))
	if !verbose {
		c.JSON(http.StatusOK, converters.Summarize(result))
		return
	}

	report, err := h.converter.Convert(header.Filename, result, time.Since(start))
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to build report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// handleUploadError distinguishes a missing part, a part without a filename
// and an unreadable body.
func (h *ClassifyHandler) handleUploadError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		h.handleError(c, http.StatusRequestEntityTooLarge, "File too large", err)
	case errors.Is(err, http.ErrMissingFile) && hasEmptyFilePart(c):
		h.handleError(c, http.StatusBadRequest, "No selected file", nil)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		h.handleError(c, http.StatusBadRequest, "No file part in the request", nil)
	default:
		h.handleError(c, http.StatusBadRequest, "Invalid file upload", err)
	}
}

// hasEmptyFilePart reports whether the form carried a "file" part without a
// filename, which multipart parsing files under plain values.
func hasEmptyFilePart(c *gin.Context) bool {
	form := c.Request.MultipartForm
	if form == nil {
		return false
	}
	_, ok := form.Value["file"]
	return ok
}

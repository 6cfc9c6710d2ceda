package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alisever/join-the-siege/internal/models"
	"github.com/alisever/join-the-siege/pkg/logger"
)

// ErrorResponse 定义错误响应结构
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func statusForError(err error) int {
	switch {
	case models.IsKind(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleError 统一错误处理
func (h *ClassifyHandler) handleError(c *gin.Context, status int, message string, err error) {
	log := logger.FromContext(c.Request.Context(), h.logger)
	fields := []logger.Field{
		logger.String("path", c.Request.URL.Path),
		logger.Int("status", status),
	}
	if err != nil {
		fields = append(fields, logger.Error(err))
	}
	if status >= http.StatusInternalServerError {
		log.Error(message, fields...)
	} else {
		log.Warn(message, fields...)
	}

	response := ErrorResponse{Error: message}
	if err != nil && status < http.StatusInternalServerError {
		response.Detail = err.Error()
	}
	c.JSON(status, response)
}

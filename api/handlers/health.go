package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	classes []string
}

func NewHealthHandler(classes []string) *HealthHandler {
	return &HealthHandler{classes: classes}
}

// Healthz handles GET /healthz.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"classes": h.classes,
	})
}

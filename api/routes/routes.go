package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alisever/join-the-siege/api/handlers"
	"github.com/alisever/join-the-siege/api/middleware"
	"github.com/alisever/join-the-siege/pkg/logger"
	"github.com/alisever/join-the-siege/pkg/metrics"
)

type Options struct {
	Metrics       *metrics.Metrics
	MaxUploadSize int64
	Logger        logger.Logger
}

// SetupRoutes 配置所有路由
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, opts Options) {
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if opts.Logger != nil {
		r.Use(middleware.AccessLog(opts.Logger))
	}
	r.Use(middleware.CORS())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware("api"))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	r.GET("/healthz", h.Health.Healthz)
	r.POST("/classify_file", middleware.BodyLimit(opts.MaxUploadSize), h.Classify.ClassifyFile)
}

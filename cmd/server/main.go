package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alisever/join-the-siege/api/handlers"
	"github.com/alisever/join-the-siege/api/routes"
	"github.com/alisever/join-the-siege/config"
	"github.com/alisever/join-the-siege/internal/bootstrap"
	"github.com/alisever/join-the-siege/internal/utils/validator"
	"github.com/alisever/join-the-siege/pkg/converters"
	"github.com/alisever/join-the-siege/pkg/logger"
	"github.com/alisever/join-the-siege/pkg/metrics"
)

func main() {
	cfg := config.GetConfig()

	// init logger
	log, err := logger.NewLogger(
		logger.WithLevel(cfg.LogLevel),
		logger.WithEncoding(cfg.LogEncoding),
		logger.WithOutputPaths(cfg.LogOutputs),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	m := metrics.New("api")

	app, err := bootstrap.New(context.Background(), cfg, log, m)
	if err != nil {
		log.Fatal("Failed to build classifier", logger.Error(err))
	}
	defer app.Close()

	// init handlers
	h := handlers.NewHandlers(
		app.Classifier,
		converters.NewJSONConverter(cfg.Classifier.MinConfidence),
		validator.NewDocumentValidator(&validator.ValidatorConfig{MaxFileSize: cfg.MaxUploadSize}),
		app.Classes.Names(),
		log,
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	routes.SetupRoutes(r, h, routes.Options{
		Metrics:       m,
		MaxUploadSize: cfg.MaxUploadSize,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start server
	go func() {
		log.Info("Server starting", logger.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", logger.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", logger.Error(err))
	}
}

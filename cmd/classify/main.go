// Command classify runs the classification pipeline over local files.
//
//	classify [-v] FILE...
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alisever/join-the-siege/config"
	"github.com/alisever/join-the-siege/internal/bootstrap"
	"github.com/alisever/join-the-siege/internal/cli"
	"github.com/alisever/join-the-siege/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.GetConfig()
	log, err := logger.NewLogger(
		logger.WithLevel("warn"),
		logger.WithEncoding("console"),
		logger.WithOutputPaths([]string{"stderr"}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "classify:", err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Run(ctx, os.Args[1:], cli.Options{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		MinConfidence: cfg.Classifier.MinConfidence,
		Open: func(ctx context.Context) (cli.Pipeline, error) {
			return bootstrap.New(ctx, cfg, log, nil)
		},
	})
}

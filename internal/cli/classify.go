// Package cli implements the classify command over any classification pipeline.
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alisever/join-the-siege/internal/models"
	"github.com/alisever/join-the-siege/pkg/converters"
)

// Pipeline classifies one document at a time and owns resources released by Close.
type Pipeline interface {
	Classify(ctx context.Context, file io.Reader, filename string) (models.ClassificationResult, error)
	Close() error
}

type Options struct {
	Stdout        io.Writer
	Stderr        io.Writer
	MinConfidence float64
	// Open builds the pipeline once the arguments are known to be valid.
	Open func(ctx context.Context) (Pipeline, error)
}

// Run executes `classify [-v] FILE...` and returns the exit code: 0 on
// success, 1 when the pipeline or any file fails, 2 on usage errors.
// The pipeline is always closed before Run returns.
func Run(ctx context.Context, args []string, opts Options) int {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	fs.SetOutput(opts.Stderr)
	verbose := fs.Bool("v", false, "print the full score report as JSON")
	fs.Usage = func() {
		fmt.Fprintln(opts.Stderr, "usage: classify [-v] FILE...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	pipeline, err := opts.Open(ctx)
	if err != nil {
		fmt.Fprintln(opts.Stderr, "classify:", err)
		return 1
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			fmt.Fprintln(opts.Stderr, "classify: close:", err)
		}
	}()

	c := &command{
		pipeline:  pipeline,
		converter: converters.NewJSONConverter(opts.MinConfidence),
		stdout:    opts.Stdout,
		enc:       json.NewEncoder(opts.Stdout),
		verbose:   *verbose,
	}
	c.enc.SetIndent("", "  ")

	code := 0
	for _, path := range fs.Args() {
		if err := c.classify(ctx, path); err != nil {
			fmt.Fprintf(opts.Stderr, "%s: %v\n", path, err)
			code = 1
		}
	}
	return code
}

type command struct {
	pipeline  Pipeline
	converter converters.ReportConverter
	stdout    io.Writer
	enc       *json.Encoder
	verbose   bool
}

func (c *command) classify(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	result, err := c.pipeline.Classify(ctx, f, filepath.Base(path))
	if err != nil {
		return err
	}
	if !c.verbose {
		_, err := fmt.Fprintf(c.stdout, "%s\t%s\n", path, result.Class)
		return err
	}
	report, err := c.converter.Convert(filepath.Base(path), result, time.Since(start))
	if err != nil {
		return err
	}
	return c.enc.Encode(report)
}

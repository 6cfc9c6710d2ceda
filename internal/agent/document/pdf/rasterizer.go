package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/alisever/join-the-siege/pkg/logger"
)

// Rasterizer renders a single PDF page (1-based) to an image.
type Rasterizer interface {
	RasterizePage(ctx context.Context, path string, page, dpi int) (image.Image, error)
}

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger logger.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		r.logger.Error("exec failed",
			logger.String("cmd", name),
			logger.String("args", strings.Join(args, " ")),
			logger.Duration("duration", time.Since(start)),
			logger.Error(err),
			logger.String("stderr", truncate(errb.String(), 8<<10)),
		)
	} else {
		r.logger.Debug("exec ok",
			logger.String("cmd", name),
			logger.Duration("duration", time.Since(start)),
			logger.Int("stderr_bytes", errb.Len()),
		)
	}
	return out.Bytes(), errb.Bytes(), err
}

// PopplerRasterizer shells out to pdftoppm.
type PopplerRasterizer struct {
	binary string
	runner Runner
	tmpDir string
}

var _ Rasterizer = (*PopplerRasterizer)(nil)

// NewPopplerRasterizer uses binary ("pdftoppm" when empty) and writes page
// images under the system temp dir.
func NewPopplerRasterizer(binary string, log logger.Logger) *PopplerRasterizer {
	return NewPopplerRasterizerWithRunner(binary, execRunner{logger: log.Named("exec")}, "")
}

func NewPopplerRasterizerWithRunner(binary string, runner Runner, tmpDir string) *PopplerRasterizer {
	if binary == "" {
		binary = "pdftoppm"
	}
	return &PopplerRasterizer{binary: binary, runner: runner, tmpDir: tmpDir}
}

func (r *PopplerRasterizer) RasterizePage(ctx context.Context, path string, page, dpi int) (image.Image, error) {
	dir, err := os.MkdirTemp(r.tmpDir, "classify-page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create raster dir: %w", err)
	}
	defer os.RemoveAll(dir)

	// pdftoppm -r 300 -f N -l N -singlefile -png <in.pdf> <dir/page>
	prefix := filepath.Join(dir, "page")
	n := strconv.Itoa(page)
	_, errb, err := r.runner.Run(ctx, r.binary,
		"-r", strconv.Itoa(dpi),
		"-f", n, "-l", n,
		"-singlefile", "-png",
		path, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm page %d: %w: %s", page, err, truncate(strings.TrimSpace(string(errb)), 512))
	}

	img, err := imaging.Open(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered page %d: %w", page, err)
	}
	return img, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}

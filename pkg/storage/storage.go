// Package storage stages uploads on local disk for the lifetime of one request.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Stager writes an upload to a private temporary file.
type Stager interface {
	Stage(ctx context.Context, reader io.Reader, filename string) (*StagedFile, error)
}

// StagedFile is a temporary copy of an upload. Release removes it and is
// safe to call more than once.
type StagedFile struct {
	Path string
	Size int64
	Name string

	once sync.Once
	err  error
}

func (f *StagedFile) Release() error {
	f.once.Do(func() {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			f.err = fmt.Errorf("failed to remove staged file: %w", err)
		}
	})
	return f.err
}

// TempStager creates staged files under dir, or the system temp dir when
// dir is empty.
type TempStager struct {
	dir string
}

var _ Stager = (*TempStager)(nil)

func NewTempStager(dir string) *TempStager {
	return &TempStager{dir: dir}
}

// Stage copies reader into a new temp file. The file name never derives from
// the upload's name, so nothing downstream can key off the extension. On any
// error no file is left behind.
func (s *TempStager) Stage(ctx context.Context, reader io.Reader, filename string) (*StagedFile, error) {
	f, err := os.CreateTemp(s.dir, "upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	n, err := io.Copy(f, &contextReader{ctx: ctx, r: reader})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	return &StagedFile{Path: path, Size: n, Name: filename}, nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

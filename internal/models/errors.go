package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks requests the caller must fix (missing file, empty filename).
	ErrInvalidInput = errors.New("invalid input")
	// ErrStaging marks filesystem failures while materializing an upload.
	ErrStaging = errors.New("staging failure")
	// ErrUnsupportedType marks content no extractor can handle.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// WrapError preserves typed errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

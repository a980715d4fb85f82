package local

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-git/go-billy/v5"

	"github.com/offlinereader/zimscan/volume"
)

// translateError reduces a billy or os error to the volume error
// taxonomy. Errors with no mapping pass through unchanged so callers can
// still log the backend's original report.
func translateError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", volume.ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission), errors.Is(err, billy.ErrCrossedBoundary):
		return fmt.Errorf("%w: %w", volume.ErrPermission, err)
	case errors.Is(err, billy.ErrReadOnly),
		errors.Is(err, billy.ErrNotSupported),
		errors.Is(err, fs.ErrClosed),
		errors.Is(err, fs.ErrInvalid):
		return fmt.Errorf("%w: %w", volume.ErrInvalidState, err)
	default:
		return err
	}
}

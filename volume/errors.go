package volume

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the backend error taxonomy. Each variant
// reduces its native error codes to one of these; errors with no mapping
// pass through unchanged inside an *Error so they are never silently
// swallowed.
var (
	// ErrNotFound indicates the requested path does not exist on the volume.
	ErrNotFound = errors.New("volume: path not found")

	// ErrPermission indicates the backend denied access.
	ErrPermission = errors.New("volume: access denied")

	// ErrQuotaExceeded indicates a backend storage-quota condition.
	ErrQuotaExceeded = errors.New("volume: storage quota exceeded")

	// ErrInvalidState indicates the backend reports the volume or handle
	// is in an unusable state.
	ErrInvalidState = errors.New("volume: invalid state")
)

// Error represents a volume operation error with context about the
// operation that failed. It wraps the translated backend error.
type Error struct {
	// Op is the operation that failed (e.g. "scan", "fetch")
	Op string

	// Volume is the volume name
	Volume string

	// Path is the volume-relative path (if applicable)
	Path string

	// Err is the underlying error, already reduced to the taxonomy
	// where a mapping exists
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("volume.%s %s:%s: %v", e.Op, e.Volume, e.Path, e.Err)
	}
	return fmt.Sprintf("volume.%s %s: %v", e.Op, e.Volume, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given operation, volume name and
// underlying error.
func NewError(op, vol string, err error) *Error {
	return &Error{
		Op:     op,
		Volume: vol,
		Err:    err,
	}
}

// NewPathError creates a new Error with path context.
func NewPathError(op, vol, path string, err error) *Error {
	return &Error{
		Op:     op,
		Volume: vol,
		Path:   path,
		Err:    err,
	}
}

// IsNotFound reports whether err maps to the not-found taxonomy kind.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPermission reports whether err maps to the permission taxonomy kind.
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsQuotaExceeded reports whether err maps to the quota taxonomy kind.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}

// IsInvalidState reports whether err maps to the invalid-state taxonomy kind.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

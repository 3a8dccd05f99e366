package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSourceDirectory = errors.New("source directory not found")
	ErrUnresolvableIdentifier = errors.New("could not extract video id")
	ErrFileRead               = errors.New("file read failed")
	ErrDuplicateIdentifier    = errors.New("video id already indexed")
	ErrInvalidInput           = errors.New("invalid input")
	ErrSinkUnavailable        = errors.New("sink unavailable")
)

// FileError ties a per-file failure to the file that caused it.
type FileError struct {
	Err     error
	Path    string
	Message string
}

// Error formats the sentinel, the file and the optional detail.
func (e *FileError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Path)
	}
	return fmt.Sprintf("%s: %s: %s", e.Err.Error(), e.Path, e.Message)
}

// Unwrap returns the sentinel so errors.Is matches it.
func (e *FileError) Unwrap() error {
	return e.Err
}

// New creates a FileError for path.
func New(sentinel error, path string, message string) *FileError {
	return &FileError{
		Err:     sentinel,
		Path:    path,
		Message: message,
	}
}

// Newf is like New with a formatted message.
func Newf(sentinel error, path string, format string, args ...any) *FileError {
	return &FileError{
		Err:     sentinel,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsFatal reports whether err must abort the whole batch rather than just
// the file that produced it.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrUnresolvableIdentifier),
		errors.Is(err, ErrFileRead),
		errors.Is(err, ErrDuplicateIdentifier):
		return false
	default:
		return true
	}
}

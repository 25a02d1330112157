// Package apperr defines the error kinds surfaced to API callers.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error is a caller-facing message tagged with one of the kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: ErrInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports which kind err carries, or nil.
func KindOf(err error) error {
	for _, k := range []error{ErrNotFound, ErrConflict, ErrInvalidArgument} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// ParseID parses a wire id; a malformed value is an InvalidArgument naming what.
func ParseID(what, raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, InvalidArgument("invalid %s id: %q", what, raw)
	}
	return id, nil
}

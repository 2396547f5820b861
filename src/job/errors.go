package job

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks conflicting or missing mode arguments.
	ErrValidation = errors.New("validation error")
	// ErrContent marks numerically invalid parameters or content.
	ErrContent = errors.New("content error")
	// ErrUnsupportedMode marks a mode tag outside pixel and grid.
	ErrUnsupportedMode = errors.New("unsupported mode")
)

// Error carries a message and one of the sentinel kinds above, so callers can
// use errors.Is(err, ErrContent).
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func ValidationError(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func ContentError(format string, args ...interface{}) error {
	return &Error{Kind: ErrContent, Msg: fmt.Sprintf(format, args...)}
}

func UnsupportedModeError(mode Mode) error {
	return &Error{Kind: ErrUnsupportedMode, Msg: fmt.Sprintf("%q (use 'pixel' or 'grid')", string(mode))}
}

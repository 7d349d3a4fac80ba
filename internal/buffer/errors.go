package buffer

import (
	"errors"
	"fmt"
)

// Kind classifies buffer errors.
type Kind uint8

const (
	// KindOutOfRange is a cursor, line or character index outside the buffer.
	KindOutOfRange Kind = iota + 1
	// KindInvalidRange is a removal span that is neither a well-formed
	// inclusive nor exclusive span.
	KindInvalidRange
	// KindIO is a file read or write failure.
	KindIO
	// KindNoFileName is a save without a path on a document never opened from one.
	KindNoFileName
	// KindClosed is an operation on a closed document.
	KindClosed
)

// String returns the message used for the kind.
func (k Kind) String() string {
	switch k {
	case KindOutOfRange:
		return "out of range"
	case KindInvalidRange:
		return "invalid range"
	case KindIO:
		return "i/o failure"
	case KindNoFileName:
		return "no file name for this document"
	case KindClosed:
		return "document is closed"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by this package.
type Error struct {
	Kind Kind
	Op   string // operation, e.g. "remove" or "open"
	Path string // file path for I/O errors
	Err  error  // underlying cause, if any
}

// Sentinels for use with errors.Is.
var (
	ErrOutOfRange   = &Error{Kind: KindOutOfRange}
	ErrInvalidRange = &Error{Kind: KindInvalidRange}
	ErrIO           = &Error{Kind: KindIO}
	ErrNoFileName   = &Error{Kind: KindNoFileName}
	ErrClosed       = &Error{Kind: KindClosed}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrOutOfRange)
// holds for every out-of-range failure regardless of Op or cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of err, or 0 when err is not a buffer error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func outOfRange(op string, format string, args ...any) error {
	return &Error{Kind: KindOutOfRange, Op: op, Err: fmt.Errorf(format, args...)}
}

func invalidRange(op string, format string, args ...any) error {
	return &Error{Kind: KindInvalidRange, Op: op, Err: fmt.Errorf(format, args...)}
}

func ioError(op, path string, err error) error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

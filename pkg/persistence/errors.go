package persistence

import (
	"github.com/cockroachdb/errors"
)

// Errors returned by persistence operations. Every failure is reported
// through the single error result of the failing call; these sentinels let
// callers that care classify it with errors.Is.
var (
	// ErrInvalidArgument is returned for a nil or closed Context and for
	// malformed call arguments. The stream is never touched.
	ErrInvalidArgument = errors.New("persistence: invalid argument")
	// ErrIO marks a failed or short read/write on the bound stream. The
	// underlying stream error stays in the chain.
	ErrIO = errors.New("persistence: stream i/o failure")
	// ErrDecode reports structurally invalid data: a length or count that
	// does not fit in 32 bits, a string without its NUL terminator, a
	// duplicate key in a sorted collection or a magic mismatch.
	ErrDecode = errors.New("persistence: malformed data")
	// ErrOutOfMemory reports a restore that would exceed the configured
	// allocation limits.
	ErrOutOfMemory = errors.New("persistence: out of memory")
)

func invalidArgument(msg string) error {
	return errors.Wrap(ErrInvalidArgument, msg)
}

// streamError classifies a stream failure as ErrIO while keeping the stream's
// own error reachable through errors.Is and errors.As.
type streamError struct {
	cause error
}

func (e *streamError) Error() string { return ErrIO.Error() + ": " + e.cause.Error() }

func (e *streamError) Unwrap() []error { return []error{e.cause, ErrIO} }

func ioFailure(err error, format string, args ...interface{}) error {
	return &streamError{cause: errors.Wrapf(err, format, args...)}
}

func decodeFailure(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDecode, format, args...)
}

func outOfMemory(format string, args ...interface{}) error {
	return errors.Wrapf(ErrOutOfMemory, format, args...)
}

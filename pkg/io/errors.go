package io

import (
	"errors"
	"fmt"
)

var (
	// ErrOversizeRead is returned when a bounded read asks for more than
	// limits.MaxReadSize bytes. The stream is not touched in this case.
	ErrOversizeRead = errors.New("read size exceeds the maximum")
	// ErrTruncated is returned (wrapped into TruncatedError) when the stream
	// ends before the requested number of bytes could be read.
	ErrTruncated = errors.New("unexpected end of stream")
	// ErrInvalidArgument is returned when a value violates a codec
	// precondition, like a negative varint or a wrong-sized fixed element.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotImplemented is returned when a codec half is missing.
	ErrNotImplemented = errors.New("not implemented")
	// ErrNonCanonical is returned by strict readers for varints not encoded
	// using the smallest possible tier.
	ErrNonCanonical = errors.New("non-canonical varint")
	// ErrTooLarge is returned when a decoded count or length exceeds the
	// limit given to the reader.
	ErrTooLarge = errors.New("too large")
	// ErrTrailingData is returned by strict byte-slice decoding when some
	// data is left after the object is decoded.
	ErrTrailingData = errors.New("trailing data")
	// errDrained is set on BufBinWriter after its contents are taken.
	errDrained = errors.New("buffer already drained")
)

// TruncatedError describes a short read, it matches ErrTruncated with
// errors.Is.
type TruncatedError struct {
	Requested int
	Actual    int
}

// Error implements the error interface.
func (e *TruncatedError) Error() string {
	return fmt.Sprintf("asked to read %d bytes, but only got %d", e.Requested, e.Actual)
}

// Is allows to match any TruncatedError against ErrTruncated.
func (e *TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}

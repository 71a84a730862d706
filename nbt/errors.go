package nbt

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package matches exactly one
// of them with errors.Is.
var (
	ErrMalformed       = errors.New("nbt: malformed stream")
	ErrUnknownKind     = errors.New("nbt: unknown tag kind")
	ErrTypeMismatch    = errors.New("nbt: element kind mismatch")
	ErrMaxDepth        = errors.New("nbt: max depth reached")
	ErrInvalidArgument = errors.New("nbt: invalid argument")
	ErrIndexOutOfRange = errors.New("nbt: index out of range")
	ErrCastFailure     = errors.New("nbt: cast failure")
)

// DecodeError reports a binary decoding failure and the stream offset at
// which it was detected.
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseError reports a text parsing failure.
type ParseError struct {
	Message string
	Offset  int
	Err     error // sentinel cause, ErrMalformed when nil
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("nbt: %s at offset %d", e.Message, e.Offset)
}

func (e *ParseError) Unwrap() error {
	if e.Err == nil {
		return ErrMalformed
	}
	return e.Err
}

package protocol

import (
	"errors"
	"fmt"
)

// ErrPayloadTooLarge indicates a payload that exceeds the frame's payload
// area. No frame is produced and no I/O is attempted.
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrPathTooLong indicates a path or name whose UTF-8 encoding plus the NUL
// terminator does not fit in the frame's payload area.
var ErrPathTooLong = errors.New("path too long")

// MalformedStatusError indicates a status reply that could not be parsed as
// a "-"-delimited sequence of integers.
type MalformedStatusError struct {
	// Raw is the reply text as received
	Raw string

	// Field is the offending field, empty when the reply had no fields at all
	Field string
}

func (e *MalformedStatusError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed status %q: no numeric fields", e.Raw)
	}
	return fmt.Sprintf("malformed status %q: field %q is not numeric", e.Raw, e.Field)
}

// NotAnIntegerError indicates a reply that was expected to be a bare decimal
// integer but was not.
type NotAnIntegerError struct {
	// Raw is the reply text as received
	Raw string
}

func (e *NotAnIntegerError) Error() string {
	return fmt.Sprintf("response %q is not an integer", e.Raw)
}

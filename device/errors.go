package device

import (
	"errors"
	"fmt"
	"time"
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session closed")

// TransportError indicates an I/O failure at the byte-stream boundary.
// The core never retries these; they propagate immediately and the
// connection should be considered unusable.
type TransportError struct {
	// Op is the operation that failed
	Op string

	// Opcode is the command being exchanged, zero if none was on the wire
	Opcode byte

	// Err is the underlying I/O error
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s (opcode 0x%02X): transport: %v", e.Op, e.Opcode, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError indicates no response arrived within the configured bound.
// The caller decides whether to retry; the core retries only the stop step
// of a theme change.
type TimeoutError struct {
	// Op is the operation that timed out
	Op string

	// Opcode is the command awaiting a response
	Opcode byte

	// Timeout is the bound that expired
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s (opcode 0x%02X): no response within %s", e.Op, e.Opcode, e.Timeout)
}

// InitError indicates a failed initialization step. The whole sequence must
// be restarted from the handshake; resuming mid-sequence is not safe.
type InitError struct {
	// Step is the init step that failed: "handshake", "init2" or "init3"
	Step string

	// Err is the underlying cause
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialization failed at %s: %v", e.Step, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// InvalidParameterError indicates a caller-supplied value outside the
// accepted range. Raised before any I/O is attempted.
type InvalidParameterError struct {
	// Param is the parameter name
	Param string

	// Value is the rejected value
	Value int
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Param, e.Value)
}

// DeviceRejectedError indicates a command the device acknowledged but
// refused to act on.
type DeviceRejectedError struct {
	// Op is the refused operation
	Op string

	// Opcode is the command that was issued
	Opcode byte

	// Reason is the device's answer, as text
	Reason string
}

func (e *DeviceRejectedError) Error() string {
	return fmt.Sprintf("%s (opcode 0x%02X): rejected by device: %s", e.Op, e.Opcode, e.Reason)
}

// VideoNotFoundError indicates every candidate path returned "0" from the
// device.
type VideoNotFoundError struct {
	// Candidates are the paths that were probed, in order
	Candidates []Candidate
}

func (e *VideoNotFoundError) Error() string {
	if len(e.Candidates) == 1 {
		return fmt.Sprintf("video not found: %s", e.Candidates[0].Path)
	}
	return fmt.Sprintf("video not found on any of %d paths", len(e.Candidates))
}

// PathMismatchError indicates a play request whose selector/path pair does
// not match the last successful load. The device silently no-ops on such
// requests, so the driver rejects them before sending any frame.
type PathMismatchError struct {
	// Selector and Path are what the caller asked to play
	Selector byte
	Path     string

	// LoadedSelector and LoadedPath are the last successful load result;
	// both are zero values when nothing has been loaded
	LoadedSelector byte
	LoadedPath     string
}

func (e *PathMismatchError) Error() string {
	if e.LoadedPath == "" {
		return fmt.Sprintf("play %q (selector 0x%02X): no video loaded", e.Path, e.Selector)
	}
	return fmt.Sprintf("play %q (selector 0x%02X) does not match loaded %q (selector 0x%02X)",
		e.Path, e.Selector, e.LoadedPath, e.LoadedSelector)
}

// SequenceError indicates the caller violated the device's required command
// ordering. Raised before any I/O is attempted.
type SequenceError struct {
	// Op is the rejected operation
	Op string

	// Reason explains the ordering violation
	Reason string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ProtocolError indicates the device answered with bytes that do not match
// the shape the issued command contracts for.
type ProtocolError struct {
	// Op is the operation whose reply was malformed
	Op string

	// Opcode is the command that was issued
	Opcode byte

	// Raw is the reply as received
	Raw []byte

	// Err is the parse failure
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s (opcode 0x%02X): unexpected response %q: %v", e.Op, e.Opcode, e.Raw, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

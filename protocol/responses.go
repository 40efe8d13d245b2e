package protocol

import (
	"strconv"
	"strings"
)

// Response wraps a raw device reply. The device does not tag its replies
// with any schema; the caller selects the accessor matching the command it
// issued. No parsing happens until an accessor is invoked.
type Response struct {
	raw []byte
}

// NewResponse wraps raw reply bytes. The slice is retained, not copied.
func NewResponse(raw []byte) Response {
	return Response{raw: raw}
}

// Raw returns the reply bytes as received.
func (r Response) Raw() []byte {
	return r.raw
}

// Empty reports whether the device returned no bytes at all.
func (r Response) Empty() bool {
	return len(r.raw) == 0
}

// AsText decodes the reply as UTF-8 text, dropping invalid bytes and
// trimming trailing NUL padding. Used for identity strings and the
// readiness token.
func (r Response) AsText() string {
	return strings.TrimRight(strings.ToValidUTF8(string(r.raw), ""), "\x00")
}

// AsNumbers parses the reply as a "-"-delimited sequence of integers, the
// shape of a GetStatus reply. Fields are positional; their semantics are
// unconfirmed telemetry and deliberately not named.
//
// Returns a MalformedStatusError if any field fails to parse.
func (r Response) AsNumbers() ([]int64, error) {
	return ParseStatus(r.AsText())
}

// AsInteger parses the whole trimmed reply as a decimal integer, the shape
// of a LoadVideo reply (file size, or 0 for not found).
//
// Returns a NotAnIntegerError if the text is not a bare integer.
func (r Response) AsInteger() (int64, error) {
	text := strings.TrimSpace(r.AsText())
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &NotAnIntegerError{Raw: text}
	}
	return n, nil
}

// ParseStatus parses a "-"-delimited numeric status string into its fields.
//
// Example: "2688-1420-1268-122880-3186-119694" parses to six integers.
// Returns a MalformedStatusError if the string is empty or any field is not
// a decimal integer.
func ParseStatus(text string) ([]int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &MalformedStatusError{Raw: text}
	}

	fields := strings.Split(text, StatusDelimiter)
	values := make([]int64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, &MalformedStatusError{Raw: text, Field: f}
		}
		values = append(values, n)
	}

	return values, nil
}

package protocol

import "fmt"

// ParseCmd validates a command frame and extracts its header fields and
// payload. This is the inverse of BuildCmd; the driver itself never receives
// command frames, but device simulators and tests do.
//
// The returned payload has trailing zero padding trimmed. A payload that
// legitimately ends in zero bytes is indistinguishable from padding on the
// wire; command payloads are either single value bytes or NUL-terminated
// strings, so the trailing NUL of a string payload is trimmed with the rest.
func ParseCmd(frame []byte) (opcode, subcmd byte, payload []byte, err error) {
	if len(frame) != FrameSize {
		return 0, 0, nil, fmt.Errorf("invalid frame size: got %d bytes, expected %d", len(frame), FrameSize)
	}

	if frame[MagicOffset] != Magic0 || frame[MagicOffset+1] != Magic1 {
		return 0, 0, nil, fmt.Errorf("invalid magic: got %02X %02X, expected %02X %02X",
			frame[MagicOffset], frame[MagicOffset+1], Magic0, Magic1)
	}

	opcode = frame[0]
	subcmd = frame[SubcmdOffset]

	end := FrameSize
	for end > PayloadOffset && frame[end-1] == 0 {
		end--
	}
	payload = frame[PayloadOffset:end]

	return opcode, subcmd, payload, nil
}

// PayloadString interprets a command payload as a NUL-terminated UTF-8
// string, the encoding used for paths and theme names.
func PayloadString(payload []byte) string {
	for i, b := range payload {
		if b == 0 {
			return string(payload[:i])
		}
	}
	return string(payload)
}

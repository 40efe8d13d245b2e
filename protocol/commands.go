package protocol

import "fmt"

// BuildCmd constructs a generic command frame with the given opcode,
// subcommand, and payload. The payload is copied to PayloadOffset and the
// remainder of the frame is zero-padded.
//
// Frame structure:
//
//	[OPCODE][MAGIC(2)][RESERVED(3)][SUBCMD][FLAG][RESERVED(2)][PAYLOAD...][PADDING]
//
// Returns ErrPayloadTooLarge if the payload does not fit before the padding.
// The magic and reserved bytes are fixed; callers cannot alter them.
func BuildCmd(opcode, subcmd byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", ErrPayloadTooLarge, len(payload), MaxPayloadSize)
	}

	frame := make([]byte, FrameSize)
	frame[0] = opcode
	frame[MagicOffset] = Magic0
	frame[MagicOffset+1] = Magic1
	frame[SubcmdOffset] = subcmd
	copy(frame[PayloadOffset:], payload)

	return frame, nil
}

// BuildHandshakeCmd constructs the initial handshake frame.
// The payload carries the fixed two-byte marker seen in every captured
// handshake. The device replies with a NUL-terminated identity string.
func BuildHandshakeCmd() ([]byte, error) {
	return BuildCmd(CmdHandshake, SubcmdDefault, HandshakeMarker)
}

// BuildInit2Cmd constructs the secondary init frame. No response is expected.
func BuildInit2Cmd() ([]byte, error) {
	return BuildCmd(CmdInit2, SubcmdDefault, nil)
}

// BuildInit3Cmd constructs the tertiary init frame.
// The device answers with ReadinessToken once it is ready for commands.
func BuildInit3Cmd() ([]byte, error) {
	return BuildCmd(CmdInit3, SubcmdDefault, nil)
}

// BuildBrightnessCmd constructs a brightness frame with the level byte at
// PayloadOffset. The level covers the full 0-255 hardware range; range
// validation against caller-facing scales belongs to the device package.
func BuildBrightnessCmd(level byte) ([]byte, error) {
	return BuildCmd(CmdBrightness, SubcmdDefault, []byte{level})
}

// BuildStatusCmd constructs a status request frame.
// The device replies with a "-"-delimited numeric tuple.
func BuildStatusCmd() ([]byte, error) {
	return BuildCmd(CmdGetStatus, SubcmdDefault, nil)
}

// BuildLoadVideoCmd constructs a load frame probing the given storage path.
// The selector chooses the storage root (PathTmp, PathRoot, PathSDCard) and
// must match the root of the path string. The device replies with the file
// size in decimal, or "0" when the file does not exist under that root.
func BuildLoadVideoCmd(selector byte, path string) ([]byte, error) {
	payload, err := encodePath(path)
	if err != nil {
		return nil, err
	}
	return BuildCmd(CmdLoadVideo, selector, payload)
}

// BuildPlayVideoCmd constructs a play frame for a path previously resolved
// by a load command. Selector and path must be identical to the successful
// load; the device silently ignores mismatched play requests.
//
// The play flag byte (0x01) is set at FlagOffset, matching the captures.
func BuildPlayVideoCmd(selector byte, path string) ([]byte, error) {
	payload, err := encodePath(path)
	if err != nil {
		return nil, err
	}

	frame, err := BuildCmd(CmdPlayVideo, selector, payload)
	if err != nil {
		return nil, err
	}
	frame[FlagOffset] = PlayFlag

	return frame, nil
}

// BuildStopCmd constructs a stop frame. Stop is idempotent on the device.
func BuildStopCmd() ([]byte, error) {
	return BuildCmd(CmdStop, SubcmdDefault, nil)
}

// BuildSelectThemeCmd constructs a theme select frame announcing the theme
// about to be transferred. Must only be sent after playback has been stopped;
// the device rejects theme switches while a theme is active.
func BuildSelectThemeCmd(name string) ([]byte, error) {
	payload, err := encodePath(name)
	if err != nil {
		return nil, err
	}
	return BuildCmd(CmdSelectTheme, SubcmdDefault, payload)
}

// encodePath encodes a path or name as UTF-8 bytes with a single trailing
// NUL. Returns ErrPathTooLong if the encoded form cannot fit in the payload
// area.
func encodePath(path string) ([]byte, error) {
	raw := []byte(path)
	if len(raw)+1 > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes encoded, maximum is %d", ErrPathTooLong, len(raw), MaxPayloadSize-1)
	}

	payload := make([]byte, len(raw)+1)
	copy(payload, raw)
	// payload[len(raw)] is already the NUL terminator

	return payload, nil
}

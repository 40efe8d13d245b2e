package protocol

// Frame structure constants, as observed in the serial captures.
const (
	// FrameSize is the fixed size of every command frame in bytes
	FrameSize = 250

	// MagicOffset is the position of the two magic marker bytes
	MagicOffset = 1

	// SubcmdOffset is the position of the subcommand byte
	SubcmdOffset = 6

	// FlagOffset is the position of the flag byte (play flag for PlayVideo)
	FlagOffset = 7

	// PayloadOffset is the position where the payload begins
	PayloadOffset = 10

	// MaxPayloadSize is the maximum payload length before padding
	MaxPayloadSize = FrameSize - PayloadOffset
)

// Magic marker bytes present at offsets 1-2 of every frame.
const (
	Magic0 = 0xEF
	Magic1 = 0x69
)

// Confirmed opcodes.
const (
	// CmdHandshake starts the init sequence; the device replies with its identity
	CmdHandshake = 0x01

	// CmdInit2 is the secondary init command; no response expected
	CmdInit2 = 0x79

	// CmdInit3 is the tertiary init command; the device replies with ReadinessToken
	CmdInit3 = 0x96

	// CmdBrightness sets the backlight level (payload byte 0-255)
	CmdBrightness = 0x7B

	// CmdGetStatus requests the monitoring tuple ("n1-n2-...-nk")
	CmdGetStatus = 0x64

	// CmdLoadVideo probes a storage path for a video; reply is the file size or "0"
	CmdLoadVideo = 0x6E

	// CmdPlayVideo starts playback of a previously loaded path
	CmdPlayVideo = 0x78

	// CmdStop halts playback; safe to send when nothing is playing
	CmdStop = 0xAA

	// CmdSelectTheme announces the theme about to be transferred
	CmdSelectTheme = 0xBB
)

// Path selectors for CmdLoadVideo / CmdPlayVideo subcommands.
// The device stores videos under one of three roots; the selector must match
// the root used in the path payload.
const (
	// PathTmp selects temporary storage (/tmp/video)
	PathTmp = 0x16

	// PathRoot selects the home directory (/root/video)
	PathRoot = 0x17

	// PathSDCard selects removable storage (/mnt/SDCARD/video)
	PathSDCard = 0x1D
)

// SubcmdDefault is the subcommand carried by every command that has no
// variant of its own.
const SubcmdDefault = 0x01

// PlayFlag is written at FlagOffset by BuildPlayVideoCmd.
const PlayFlag = 0x01

// Handshake marker bytes carried in the handshake payload, taken verbatim
// from the captured init exchange.
var HandshakeMarker = []byte{0xC5, 0xD3}

// ReadinessToken is the text the device returns after a successful tertiary
// init. Initialization is complete only once this token has been seen.
const ReadinessToken = "media_stop"

// BrightnessMax is the highest accepted brightness level.
const BrightnessMax = 255

// StatusDelimiter separates the numeric fields of a GetStatus reply.
const StatusDelimiter = "-"

// DefaultResponseBufferSize is the read buffer size for device replies.
// Replies are short text strings, but the device occasionally pads with NULs.
const DefaultResponseBufferSize = 1024

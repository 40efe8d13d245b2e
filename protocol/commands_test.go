package protocol

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestBuildCmd(t *testing.T) {
	tests := []struct {
		name    string
		opcode  byte
		subcmd  byte
		payload []byte
		wantErr error
	}{
		{
			name:    "no payload",
			opcode:  CmdStop,
			subcmd:  SubcmdDefault,
			payload: nil,
		},
		{
			name:    "single byte payload",
			opcode:  CmdBrightness,
			subcmd:  SubcmdDefault,
			payload: []byte{0x80},
		},
		{
			name:    "max payload",
			opcode:  CmdLoadVideo,
			subcmd:  PathSDCard,
			payload: make([]byte, MaxPayloadSize),
		},
		{
			name:    "payload too large",
			opcode:  CmdLoadVideo,
			subcmd:  PathSDCard,
			payload: make([]byte, MaxPayloadSize+1),
			wantErr: ErrPayloadTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := BuildCmd(tt.opcode, tt.subcmd, tt.payload)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if frame != nil {
					t.Errorf("frame = %d bytes, want nil on error", len(frame))
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(frame) != FrameSize {
				t.Fatalf("frame size = %d, want %d", len(frame), FrameSize)
			}

			if frame[0] != tt.opcode {
				t.Errorf("opcode = 0x%02X, want 0x%02X", frame[0], tt.opcode)
			}

			if frame[MagicOffset] != Magic0 || frame[MagicOffset+1] != Magic1 {
				t.Errorf("magic = %02X %02X, want %02X %02X",
					frame[MagicOffset], frame[MagicOffset+1], Magic0, Magic1)
			}

			if frame[SubcmdOffset] != tt.subcmd {
				t.Errorf("subcmd = 0x%02X, want 0x%02X", frame[SubcmdOffset], tt.subcmd)
			}

			if !bytes.Equal(frame[PayloadOffset:PayloadOffset+len(tt.payload)], tt.payload) {
				t.Errorf("payload not copied at offset %d", PayloadOffset)
			}

			for i := PayloadOffset + len(tt.payload); i < FrameSize; i++ {
				if frame[i] != 0 {
					t.Fatalf("padding byte at %d = 0x%02X, want 0x00", i, frame[i])
				}
			}
		})
	}
}

func TestBuildCmdRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		{0x80},
		[]byte("/mnt/SDCARD/video/theme06.mp4"),
		bytes.Repeat([]byte{0xAB}, MaxPayloadSize),
	}

	for _, payload := range payloads {
		frame, err := BuildCmd(CmdLoadVideo, PathSDCard, payload)
		if err != nil {
			t.Fatalf("BuildCmd: %v", err)
		}

		opcode, subcmd, got, err := ParseCmd(frame)
		if err != nil {
			t.Fatalf("ParseCmd: %v", err)
		}

		if opcode != CmdLoadVideo {
			t.Errorf("opcode = 0x%02X, want 0x%02X", opcode, CmdLoadVideo)
		}
		if subcmd != PathSDCard {
			t.Errorf("subcmd = 0x%02X, want 0x%02X", subcmd, PathSDCard)
		}
		if !bytes.Equal(got, bytes.TrimRight(payload, "\x00")) {
			t.Errorf("payload = %v, want %v", got, payload)
		}
	}
}

func TestBuildHandshakeCmd(t *testing.T) {
	frame, err := BuildHandshakeCmd()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if frame[0] != CmdHandshake {
		t.Errorf("opcode = 0x%02X, want 0x%02X", frame[0], CmdHandshake)
	}

	if !bytes.Equal(frame[PayloadOffset:PayloadOffset+2], HandshakeMarker) {
		t.Errorf("marker = %02X %02X, want %02X %02X",
			frame[PayloadOffset], frame[PayloadOffset+1], HandshakeMarker[0], HandshakeMarker[1])
	}
}

func TestBuildBrightnessCmd(t *testing.T) {
	frame, err := BuildBrightnessCmd(0x80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if frame[0] != CmdBrightness {
		t.Errorf("opcode = 0x%02X, want 0x%02X", frame[0], CmdBrightness)
	}

	if frame[SubcmdOffset] != SubcmdDefault {
		t.Errorf("subcmd = 0x%02X, want 0x%02X", frame[SubcmdOffset], SubcmdDefault)
	}

	if frame[PayloadOffset] != 0x80 {
		t.Errorf("level byte = 0x%02X, want 0x80", frame[PayloadOffset])
	}
}

func TestBuildLoadVideoCmd(t *testing.T) {
	tests := []struct {
		name     string
		selector byte
		path     string
		wantErr  error
	}{
		{
			name:     "sdcard path",
			selector: PathSDCard,
			path:     "/mnt/SDCARD/video/theme06.mp4",
		},
		{
			name:     "tmp path",
			selector: PathTmp,
			path:     "/tmp/video/theme06.mp4",
		},
		{
			name:     "longest path that fits",
			selector: PathRoot,
			path:     "/root/video/" + strings.Repeat("a", MaxPayloadSize-1-len("/root/video/")),
		},
		{
			name:     "path too long",
			selector: PathRoot,
			path:     "/root/video/" + strings.Repeat("a", MaxPayloadSize),
			wantErr:  ErrPathTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := BuildLoadVideoCmd(tt.selector, tt.path)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if frame[0] != CmdLoadVideo {
				t.Errorf("opcode = 0x%02X, want 0x%02X", frame[0], CmdLoadVideo)
			}

			if frame[SubcmdOffset] != tt.selector {
				t.Errorf("selector = 0x%02X, want 0x%02X", frame[SubcmdOffset], tt.selector)
			}

			pathEnd := PayloadOffset + len(tt.path)
			if string(frame[PayloadOffset:pathEnd]) != tt.path {
				t.Errorf("path payload mismatch")
			}

			if frame[pathEnd] != 0 {
				t.Errorf("missing NUL terminator after path")
			}
		})
	}
}

func TestBuildPlayVideoCmd(t *testing.T) {
	frame, err := BuildPlayVideoCmd(PathSDCard, "/mnt/SDCARD/video/theme06.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if frame[0] != CmdPlayVideo {
		t.Errorf("opcode = 0x%02X, want 0x%02X", frame[0], CmdPlayVideo)
	}

	if frame[SubcmdOffset] != PathSDCard {
		t.Errorf("selector = 0x%02X, want 0x%02X", frame[SubcmdOffset], PathSDCard)
	}

	if frame[FlagOffset] != PlayFlag {
		t.Errorf("play flag = 0x%02X, want 0x%02X", frame[FlagOffset], PlayFlag)
	}

	// Magic must survive the flag write.
	if frame[MagicOffset] != Magic0 || frame[MagicOffset+1] != Magic1 {
		t.Errorf("magic corrupted: %02X %02X", frame[MagicOffset], frame[MagicOffset+1])
	}
}

func TestBuildStopCmd(t *testing.T) {
	frame, err := BuildStopCmd()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if frame[0] != CmdStop {
		t.Errorf("opcode = 0x%02X, want 0x%02X", frame[0], CmdStop)
	}

	if frame[SubcmdOffset] != SubcmdDefault {
		t.Errorf("subcmd = 0x%02X, want 0x%02X", frame[SubcmdOffset], SubcmdDefault)
	}
}

func TestBuildSelectThemeCmd(t *testing.T) {
	frame, err := BuildSelectThemeCmd("theme06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if frame[0] != CmdSelectTheme {
		t.Errorf("opcode = 0x%02X, want 0x%02X", frame[0], CmdSelectTheme)
	}

	if got := PayloadString(frame[PayloadOffset:]); got != "theme06" {
		t.Errorf("theme name = %q, want %q", got, "theme06")
	}
}

func BenchmarkBuildLoadVideoCmd(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = BuildLoadVideoCmd(PathSDCard, "/mnt/SDCARD/video/theme06.mp4")
	}
}

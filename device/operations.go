package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/openlcd/go-sm360/protocol"
)

// Initialize runs the three-step init sequence the panel requires before it
// accepts any other command: handshake, a second init frame with no reply,
// and a third init frame answered with the readiness token. On success the
// device identity string from the handshake is returned and the session
// moves to Ready.
//
// The sequence is not resumable. On any failure the session falls back to
// Connected and the next Initialize starts again from the handshake.
func (s *Session) Initialize(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Disconnected {
		return "", ErrClosed
	}
	s.state = Connected
	s.identity = ""

	s.logInfo("initializing device")

	identity, err := s.handshake(ctx)
	if err != nil {
		s.logError("handshake failed", "error", err)
		return "", &InitError{Step: "handshake", Err: err}
	}
	s.identity = identity
	s.state = Initialized
	s.logDebug("handshake ok", "identity", identity)

	frame, err := protocol.BuildInit2Cmd()
	if err != nil {
		return "", &InitError{Step: "init2", Err: err}
	}
	if _, err := s.exchange(ctx, "init2", frame, false); err != nil {
		s.state = Connected
		s.logError("init2 failed", "error", err)
		return "", &InitError{Step: "init2", Err: err}
	}

	if err := s.awaitReadiness(ctx); err != nil {
		s.state = Connected
		s.logError("init3 failed", "error", err)
		return "", &InitError{Step: "init3", Err: err}
	}

	s.state = Ready
	s.logInfo("device ready", "identity", identity)
	return identity, nil
}

// handshake sends the first init frame and returns the identity text.
func (s *Session) handshake(ctx context.Context) (string, error) {
	frame, err := protocol.BuildHandshakeCmd()
	if err != nil {
		return "", err
	}
	resp, err := s.exchange(ctx, "handshake", frame, true)
	if err != nil {
		return "", err
	}
	identity := resp.AsText()
	if identity == "" {
		return "", &ProtocolError{
			Op:     "handshake",
			Opcode: protocol.CmdHandshake,
			Raw:    resp.Raw(),
			Err:    errors.New("empty identity"),
		}
	}
	return identity, nil
}

// awaitReadiness sends the third init frame and checks the readiness token.
func (s *Session) awaitReadiness(ctx context.Context) error {
	frame, err := protocol.BuildInit3Cmd()
	if err != nil {
		return err
	}
	resp, err := s.exchange(ctx, "init3", frame, true)
	if err != nil {
		return err
	}
	if token := resp.AsText(); token != protocol.ReadinessToken {
		return &ProtocolError{
			Op:     "init3",
			Opcode: protocol.CmdInit3,
			Raw:    resp.Raw(),
			Err:    fmt.Errorf("readiness token %q, want %q", token, protocol.ReadinessToken),
		}
	}
	return nil
}

// SetBrightness sets the backlight level, 0 to 255. Out-of-range levels are
// rejected before any frame is written. The panel's acknowledgment is
// best-effort; its absence is not an error.
func (s *Session) SetBrightness(ctx context.Context, level int) error {
	if level < 0 || level > protocol.BrightnessMax {
		return &InvalidParameterError{Param: "brightness", Value: level}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	frame, err := protocol.BuildBrightnessCmd(byte(level))
	if err != nil {
		return err
	}
	if _, err := s.exchange(ctx, "set brightness", frame, false); err != nil {
		return err
	}
	s.drainResponse("set brightness", protocol.CmdBrightness)

	s.brightness = level
	s.logDebug("brightness set", "level", level)
	return nil
}

// Status polls the panel and returns its telemetry tuple. Field meanings are
// unconfirmed, so values are positional.
func (s *Session) Status(ctx context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame, err := protocol.BuildStatusCmd()
	if err != nil {
		return nil, err
	}
	resp, err := s.exchange(ctx, "get status", frame, true)
	if err != nil {
		return nil, err
	}

	fields, err := resp.AsNumbers()
	if err != nil {
		return nil, &ProtocolError{
			Op:     "get status",
			Opcode: protocol.CmdGetStatus,
			Raw:    resp.Raw(),
			Err:    err,
		}
	}

	s.lastStatus = fields
	s.logDebug("status", "fields", fields)
	return fields, nil
}

// LoadVideo asks the panel to open a video file, probing each candidate
// location in order. The panel answers with the file size in bytes, or "0"
// when the path does not exist on that storage; "0" moves the search to the
// next candidate. The successful selector and path are recorded on the
// session and must be repeated verbatim by PlayVideo.
//
// Returns VideoNotFoundError when every candidate answers "0".
func (s *Session) LoadVideo(ctx context.Context, candidates []Candidate) (LoadResult, error) {
	if len(candidates) == 0 {
		return LoadResult{}, &InvalidParameterError{Param: "candidates", Value: 0}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range candidates {
		size, err := s.loadAttempt(ctx, c)
		if err != nil {
			return LoadResult{}, err
		}
		if size == 0 {
			s.logDebug("load miss", "path", c.Path, "selector", c.Selector)
			continue
		}

		result := LoadResult{Selector: c.Selector, Path: c.Path, Size: size}
		s.loaded = &result
		s.logInfo("video loaded", "path", c.Path, "selector", c.Selector, "size", size)
		return result, nil
	}

	return LoadResult{}, &VideoNotFoundError{Candidates: candidates}
}

// loadAttempt probes one candidate and returns the reported size.
func (s *Session) loadAttempt(ctx context.Context, c Candidate) (int64, error) {
	frame, err := protocol.BuildLoadVideoCmd(c.Selector, c.Path)
	if err != nil {
		return 0, err
	}
	resp, err := s.exchange(ctx, "load video", frame, true)
	if err != nil {
		return 0, err
	}

	size, err := resp.AsInteger()
	if err != nil {
		return 0, &ProtocolError{
			Op:     "load video",
			Opcode: protocol.CmdLoadVideo,
			Raw:    resp.Raw(),
			Err:    err,
		}
	}
	return size, nil
}

// PlayVideo starts playback of a previously loaded video. The selector and
// path must match the last successful LoadVideo exactly; the panel silently
// ignores a play for anything else, so mismatches are rejected here before
// any frame is written.
func (s *Session) PlayVideo(ctx context.Context, selector byte, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded == nil || s.loaded.Selector != selector || s.loaded.Path != path {
		mismatch := &PathMismatchError{Selector: selector, Path: path}
		if s.loaded != nil {
			mismatch.LoadedSelector = s.loaded.Selector
			mismatch.LoadedPath = s.loaded.Path
		}
		return mismatch
	}

	frame, err := protocol.BuildPlayVideoCmd(selector, path)
	if err != nil {
		return err
	}
	if _, err := s.exchange(ctx, "play video", frame, false); err != nil {
		return err
	}
	s.drainResponse("play video", protocol.CmdPlayVideo)

	s.logInfo("playback started", "path", path, "selector", selector)
	return nil
}

// Stop halts playback. Safe to call when nothing is playing. A new load is
// required before the next play, so the recorded load result is cleared.
func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame, err := protocol.BuildStopCmd()
	if err != nil {
		return err
	}
	if _, err := s.exchange(ctx, "stop", frame, false); err != nil {
		return err
	}
	s.drainResponse("stop", protocol.CmdStop)

	s.loaded = nil
	s.logDebug("playback stopped")
	return nil
}

// SelectTheme announces the theme about to be transferred. The panel
// rejects this while a theme is active; callers must stop playback first.
// ThemeChanger enforces that ordering.
func (s *Session) SelectTheme(ctx context.Context, name string) error {
	if name == "" {
		return &InvalidParameterError{Param: "theme name", Value: 0}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	frame, err := protocol.BuildSelectThemeCmd(name)
	if err != nil {
		return err
	}
	if _, err := s.exchange(ctx, "select theme", frame, false); err != nil {
		return err
	}
	s.drainResponse("select theme", protocol.CmdSelectTheme)

	s.logDebug("theme selected", "theme", name)
	return nil
}

// SendRaw writes an arbitrary command frame and, when wantResponse is set,
// returns whatever the panel answers. This is the escape hatch for opcodes
// whose behavior is not established; nothing here is covered by the
// session's state tracking.
func (s *Session) SendRaw(ctx context.Context, opcode, subcmd byte, payload []byte, wantResponse bool) (protocol.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame, err := protocol.BuildCmd(opcode, subcmd, payload)
	if err != nil {
		return protocol.Response{}, err
	}
	s.logDebug("raw command", "opcode", opcode, "subcmd", subcmd, "payload_len", len(payload))
	return s.exchange(ctx, "raw", frame, wantResponse)
}

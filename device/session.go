package device

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/openlcd/go-sm360/protocol"
)

// SessionState tracks the lifecycle of a session toward one panel.
type SessionState int

const (
	// Disconnected means the transport has been closed
	Disconnected SessionState = iota

	// Connected means the transport is open but the device is uninitialized
	Connected

	// Initialized means the handshake succeeded but the readiness token
	// has not been seen yet
	Initialized

	// Ready means the full init sequence completed and commands may be sent
	Ready
)

func (s SessionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Initialized:
		return "initialized"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Candidate is one (selector, path) pair probed by LoadVideo. The selector
// byte and the storage root of the path must agree.
type Candidate struct {
	// Selector is the path selector subcommand (protocol.PathTmp etc.)
	Selector byte

	// Path is the device-side absolute path
	Path string
}

// LoadResult is the outcome of a successful LoadVideo fallback search.
type LoadResult struct {
	// Selector and Path identify the storage location that answered
	Selector byte
	Path     string

	// Size is the file size in bytes as reported by the device
	Size int64
}

// Session owns the serial channel to one SM360 panel and issues the ordered
// command sequences the device requires. All operations serialize on an
// internal mutex; a session is safe for concurrent use but never runs more
// than one command/response exchange at a time.
type Session struct {
	transport Transport
	config    Config
	id        string

	mu         sync.Mutex
	state      SessionState
	identity   string
	brightness int // -1 until set
	loaded     *LoadResult
	lastStatus []int64
}

// New creates a Session over an open transport. The transport must be the
// only channel to the device; parallel connections confuse the panel.
//
// Example:
//
//	transport, _ := device.OpenSerial("/dev/ttyACM0")
//	session := device.New(transport,
//	    device.WithResponseTimeout(time.Second),
//	    device.WithLogger(logger),
//	)
func New(transport Transport, opts ...Option) *Session {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		transport:  transport,
		config:     cfg,
		id:         uuid.NewString(),
		state:      Connected,
		brightness: -1,
	}
}

// ID returns the session's correlation id, present in every log entry.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Identity returns the device identity string from the last handshake,
// empty before initialization.
func (s *Session) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Brightness returns the last level set through this session, -1 if none.
func (s *Session) Brightness() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.brightness
}

// Loaded returns the last successful load result, nil if none.
func (s *Session) Loaded() *LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded == nil {
		return nil
	}
	r := *s.loaded
	return &r
}

// LastStatus returns the most recent status tuple, nil if none was read.
func (s *Session) LastStatus() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastStatus == nil {
		return nil
	}
	out := make([]int64, len(s.lastStatus))
	copy(out, s.lastStatus)
	return out
}

// Close tears down the session. The transport is closed if it supports it.
// Further operations return ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Disconnected {
		return nil
	}
	s.state = Disconnected
	s.loaded = nil

	if closer, ok := s.transport.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// exchange writes one frame and, when a response is expected, reads one
// reply within the response timeout. Callers must hold s.mu.
//
// A partially written frame leaves the device mid-command; there is no way
// to resynchronize, so the session is marked disconnected.
func (s *Session) exchange(ctx context.Context, op string, frame []byte, wantResponse bool) (protocol.Response, error) {
	if s.state == Disconnected {
		return protocol.Response{}, ErrClosed
	}

	opcode := frame[0]

	if s.config.Limiter != nil {
		if err := s.config.Limiter.Wait(ctx); err != nil {
			return protocol.Response{}, err
		}
	}

	n, err := s.transport.Write(frame)
	if err != nil {
		if n > 0 && n < len(frame) {
			s.state = Disconnected
		}
		return protocol.Response{}, &TransportError{Op: op, Opcode: opcode, Err: err}
	}
	if n != len(frame) {
		s.state = Disconnected
		return protocol.Response{}, &TransportError{
			Op:     op,
			Opcode: opcode,
			Err:    fmt.Errorf("short write: %d of %d bytes", n, len(frame)),
		}
	}

	if err := sleepCtx(ctx, s.config.CommandDelay); err != nil {
		return protocol.Response{}, err
	}

	if !wantResponse {
		return protocol.Response{}, nil
	}

	return s.readResponse(op, opcode)
}

// readResponse reads one reply within the response timeout.
func (s *Session) readResponse(op string, opcode byte) (protocol.Response, error) {
	if err := s.transport.SetReadTimeout(s.config.ResponseTimeout); err != nil {
		return protocol.Response{}, &TransportError{Op: op, Opcode: opcode, Err: err}
	}

	buf := make([]byte, protocol.DefaultResponseBufferSize)
	n, err := s.transport.Read(buf)
	if err != nil {
		return protocol.Response{}, &TransportError{Op: op, Opcode: opcode, Err: err}
	}
	if n == 0 {
		return protocol.Response{}, &TimeoutError{Op: op, Opcode: opcode, Timeout: s.config.ResponseTimeout}
	}

	return protocol.NewResponse(buf[:n]), nil
}

// drainResponse reads an optional acknowledgment without treating its
// absence as an error. Used for commands whose reply is best-effort.
func (s *Session) drainResponse(op string, opcode byte) protocol.Response {
	resp, err := s.readResponse(op, opcode)
	if err != nil {
		return protocol.Response{}
	}
	return resp
}

func (s *Session) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, append(keysAndValues, "session", s.id)...)
	}
}

func (s *Session) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, append(keysAndValues, "session", s.id)...)
	}
}

func (s *Session) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, append(keysAndValues, "session", s.id)...)
	}
}

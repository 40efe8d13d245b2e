package device

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ChangeState is the phase a theme change is in.
type ChangeState int

const (
	// Idle means no theme change is in progress
	Idle ChangeState = iota

	// Stopping means the current playback is being halted
	Stopping

	// Selecting means the target theme is being announced
	Selecting

	// Transferring means the video file is being located and opened
	Transferring

	// Starting means playback of the new theme has been requested
	Starting

	// Playing means the new theme is running
	Playing

	// Failed means the change aborted; Reset is required before another
	Failed
)

func (s ChangeState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stopping:
		return "stopping"
	case Selecting:
		return "selecting"
	case Transferring:
		return "transferring"
	case Starting:
		return "starting"
	case Playing:
		return "playing"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("ChangeState(%d)", int(s))
	}
}

// ChangeResult reports a completed theme change.
type ChangeResult struct {
	// Theme is the name that was selected
	Theme string

	// Selector and Path identify the storage location that answered the
	// load fallback search
	Selector byte
	Path     string

	// Size is the video size in bytes as reported by the device
	Size int64

	// Unconfirmed is set when playback was accepted but the follow-up
	// status poll never confirmed it
	Unconfirmed bool
}

// ChangeError reports a theme change that aborted, with the phase it was in.
type ChangeError struct {
	// State is the phase that failed
	State ChangeState

	// Err is the underlying cause
	Err error
}

func (e *ChangeError) Error() string {
	return fmt.Sprintf("theme change failed while %s: %v", e.State, e.Err)
}

func (e *ChangeError) Unwrap() error { return e.Err }

// ThemeChanger drives the ordered sequence a theme switch requires: stop the
// current playback, announce the new theme, locate and open its video, start
// it, and confirm. The device rejects a theme switch while one is active, so
// the selecting phase is only ever entered after an acknowledged stop.
//
// A ThemeChanger owns one Session for the duration of each change. After a
// failed change it stays in Failed until Reset; retrying mid-sequence on a
// stateful device is unsafe without re-stopping first.
type ThemeChanger struct {
	session  *Session
	callback StateCallback

	state ChangeState
}

// NewThemeChanger creates a ThemeChanger over an initialized session.
func NewThemeChanger(session *Session) *ThemeChanger {
	if session == nil {
		panic("session cannot be nil")
	}
	return &ThemeChanger{session: session, state: Idle}
}

// OnStateChange registers a callback invoked on every phase transition.
// Must be set before ChangeTheme is called.
func (tc *ThemeChanger) OnStateChange(cb StateCallback) {
	tc.callback = cb
}

// State returns the current phase.
func (tc *ThemeChanger) State() ChangeState {
	return tc.state
}

// Reset returns a failed changer to Idle so a new change can start.
func (tc *ThemeChanger) Reset() error {
	if tc.state != Failed {
		return &SequenceError{Op: "reset", Reason: fmt.Sprintf("changer is %s, not failed", tc.state)}
	}
	tc.setState(Idle)
	return nil
}

// ChangeTheme switches the panel to the named theme, locating its video
// through the ordered candidate list. The stop phase is the only one
// retried; every later phase runs once, and any failure triggers a recovery
// stop before the changer settles in Failed.
//
// On success the changer is in Playing. Unconfirmed is set on the result
// when the post-play status poll never answered; the play command itself was
// accepted, so the change is reported as a success rather than rolled back.
func (tc *ThemeChanger) ChangeTheme(ctx context.Context, theme string, candidates []Candidate) (*ChangeResult, error) {
	switch tc.state {
	case Idle, Playing:
	case Failed:
		return nil, &SequenceError{Op: "change theme", Reason: "changer is failed, reset first"}
	default:
		return nil, &SequenceError{Op: "change theme", Reason: fmt.Sprintf("change already in progress (%s)", tc.state)}
	}

	tc.session.logInfo("theme change started", "theme", theme)

	tc.setState(Stopping)
	if err := tc.stopWithRetry(ctx); err != nil {
		tc.setState(Failed)
		tc.session.logError("theme change failed", "theme", theme, "state", "stopping", "error", err)
		return nil, &ChangeError{State: Stopping, Err: err}
	}

	tc.setState(Selecting)
	if err := tc.session.SelectTheme(ctx, theme); err != nil {
		return nil, tc.fail(ctx, Selecting, theme, err)
	}

	tc.setState(Transferring)
	loaded, err := tc.session.LoadVideo(ctx, candidates)
	if err != nil {
		return nil, tc.fail(ctx, Transferring, theme, err)
	}

	tc.setState(Starting)
	if err := tc.session.PlayVideo(ctx, loaded.Selector, loaded.Path); err != nil {
		return nil, tc.fail(ctx, Starting, theme, err)
	}

	confirmed := tc.confirmPlayback(ctx)
	tc.setState(Playing)

	result := &ChangeResult{
		Theme:       theme,
		Selector:    loaded.Selector,
		Path:        loaded.Path,
		Size:        loaded.Size,
		Unconfirmed: !confirmed,
	}
	tc.session.logInfo("theme change complete",
		"theme", theme, "path", loaded.Path, "size", loaded.Size, "confirmed", confirmed)
	return result, nil
}

// stopWithRetry halts playback, retrying transport and timeout failures up
// to the configured bound with a fixed backoff.
func (tc *ThemeChanger) stopWithRetry(ctx context.Context) error {
	cfg := tc.session.config

	var lastErr error
	for attempt := 0; attempt <= cfg.StopRetries; attempt++ {
		if attempt > 0 {
			tc.session.logDebug("retrying stop", "attempt", attempt)
			if err := sleepCtx(ctx, cfg.RetryBackoff); err != nil {
				return err
			}
		}

		lastErr = tc.session.Stop(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryableStop(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// retryableStop reports whether a stop failure is worth another attempt.
// Caller mistakes and closed sessions are not.
func retryableStop(err error) bool {
	if errors.Is(err, ErrClosed) {
		return false
	}
	var transportErr *TransportError
	var timeoutErr *TimeoutError
	return errors.As(err, &transportErr) || errors.As(err, &timeoutErr)
}

// confirmPlayback polls the status until the device answers or the
// confirmation window closes. Best-effort only.
func (tc *ThemeChanger) confirmPlayback(ctx context.Context) bool {
	cfg := tc.session.config
	if cfg.ConfirmTimeout <= 0 {
		return false
	}

	deadline := time.Now().Add(cfg.ConfirmTimeout)
	for time.Now().Before(deadline) {
		if fields, err := tc.session.Status(ctx); err == nil && len(fields) > 0 {
			return true
		}
		if err := sleepCtx(ctx, cfg.CommandDelay); err != nil {
			return false
		}
	}
	return false
}

// fail attempts the one allowed recovery, a stop, then parks the changer in
// Failed. The recovery outcome never masks the original error.
func (tc *ThemeChanger) fail(ctx context.Context, at ChangeState, theme string, cause error) error {
	if err := tc.session.Stop(ctx); err != nil {
		tc.session.logError("recovery stop failed", "theme", theme, "error", err)
	}
	tc.setState(Failed)
	tc.session.logError("theme change failed", "theme", theme, "state", at.String(), "error", cause)
	return &ChangeError{State: at, Err: cause}
}

func (tc *ThemeChanger) setState(next ChangeState) {
	tc.state = next
	if tc.callback != nil {
		tc.callback(next)
	}
}

// sleepCtx pauses for d unless the context expires first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

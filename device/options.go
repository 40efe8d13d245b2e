package device

import (
	"time"

	"golang.org/x/time/rate"
)

// Config holds the session configuration. All timing values are empirical
// defaults derived from observed device latencies, not protocol guarantees.
type Config struct {
	// ResponseTimeout bounds the wait for a single reply
	ResponseTimeout time.Duration

	// CommandDelay is the pause inserted after every frame write
	CommandDelay time.Duration

	// StopRetries is the retry bound for the stop step of a theme change
	StopRetries int

	// RetryBackoff is the fixed pause between stop retries
	RetryBackoff time.Duration

	// ConfirmTimeout bounds the post-play status confirmation poll
	ConfirmTimeout time.Duration

	// Limiter paces frame writes toward the device (optional)
	Limiter *rate.Limiter

	// Logger receives operation logs (optional)
	Logger Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		ResponseTimeout: 500 * time.Millisecond,
		CommandDelay:    100 * time.Millisecond,
		StopRetries:     3,
		RetryBackoff:    300 * time.Millisecond,
		ConfirmTimeout:  2 * time.Second,
	}
}

// Option is a functional option for configuring a Session.
type Option func(*Config)

// WithResponseTimeout sets the per-command response wait bound.
//
// Example:
//
//	session := device.New(transport, device.WithResponseTimeout(time.Second))
func WithResponseTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.ResponseTimeout = d
		}
	}
}

// WithCommandDelay sets the pause inserted after every frame write.
// The panel drops frames that arrive back to back; zero disables the pause
// for simulated transports.
func WithCommandDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.CommandDelay = d
		}
	}
}

// WithStopRetries sets the retry bound for the stop step of a theme change.
func WithStopRetries(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.StopRetries = n
		}
	}
}

// WithRetryBackoff sets the fixed pause between stop retries.
func WithRetryBackoff(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.RetryBackoff = d
		}
	}
}

// WithConfirmTimeout sets the bound for the post-play status confirmation.
func WithConfirmTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.ConfirmTimeout = d
		}
	}
}

// WithCommandRate paces frame writes at r frames per second with the given
// burst. Useful when a caller loops over operations faster than the panel
// can absorb them.
//
// Example:
//
//	session := device.New(transport, device.WithCommandRate(20, 5))
func WithCommandRate(r float64, burst int) Option {
	return func(c *Config) {
		if r > 0 && burst > 0 {
			c.Limiter = rate.NewLimiter(rate.Limit(r), burst)
		}
	}
}

// WithLogger sets a logger for session operations.
//
// Example:
//
//	session := device.New(transport, device.WithLogger(device.NewZapLogger(zl)))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Package fps turns a per-frame callback stream into a once-a-second
// frames-per-second reading.
package fps

import (
	"log/slog"
	"math"
	"time"

	"fpscounter/display"
)

// FrameSource calls back once per displayed frame with a monotonic timestamp.
// *display.Link is the usual implementation.
type FrameSource interface {
	Now() time.Duration
	Subscribe(mode display.Mode, fn func(ts time.Duration)) display.Subscription
}

// Observer receives the rate at the end of every window.
//
// The counter does not own its observer. An observer that goes away must
// clear itself with SetObserver(nil) or stop the counter first.
type Observer interface {
	FramesPerSecondUpdated(c *Counter, fps int)
}

// Counter counts frames and reports the rate to its observer once per window.
// All methods must be called from the goroutine that delivers frames.
type Counter struct {
	window   time.Duration
	observer Observer
	logger   *slog.Logger

	sub         display.Subscription
	frames      int
	windowStart time.Duration
	last        int
}

// Option configures a Counter.
type Option func(*Counter)

// WithWindow changes the measurement window. The default is one second.
func WithWindow(d time.Duration) Option {
	return func(c *Counter) {
		if d > 0 {
			c.window = d
		}
	}
}

// WithLogger sets where window rollovers are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Counter) { c.logger = logger }
}

// NewCounter returns an inactive counter with no observer and a one
// second window.
func NewCounter(opts ...Option) *Counter {
	c := &Counter{
		window: time.Second,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetObserver replaces the observer. nil clears it.
func (c *Counter) SetObserver(o Observer) {
	c.observer = o
}

// Start begins tracking frames from src in the given mode. Starting an
// active counter restarts the window on the new source.
func (c *Counter) Start(src FrameSource, mode display.Mode) {
	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}
	c.frames = 0
	c.windowStart = src.Now()
	c.sub = src.Subscribe(mode, c.onFrame)
	c.logger.Debug("fps tracking started", "mode", mode, "window", c.window)
}

// Stop stops tracking. The last counted values are kept.
func (c *Counter) Stop() {
	if c.sub == nil {
		return
	}
	c.sub.Cancel()
	c.sub = nil
	c.logger.Debug("fps tracking stopped", "frames", c.frames)
}

// Active reports whether the counter holds a frame subscription.
func (c *Counter) Active() bool {
	return c.sub != nil
}

// Last is the most recently computed rate, reported or not.
func (c *Counter) Last() int {
	return c.last
}

func (c *Counter) onFrame(ts time.Duration) {
	if c.sub == nil {
		return
	}
	c.frames++

	elapsed := ts - c.windowStart
	if elapsed < c.window {
		return
	}

	// elapsed >= window > 0 here so the division is safe. math.Round
	// rounds halves away from zero.
	rate := int(math.Round(float64(c.frames) / elapsed.Seconds()))
	c.last = rate
	c.frames = 0
	c.windowStart = ts
	c.logger.Debug("fps window", "fps", rate, "elapsed", elapsed)

	if c.observer != nil {
		c.observer.FramesPerSecondUpdated(c, rate)
	}
}

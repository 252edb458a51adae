package display

import (
	"log/slog"
	"time"
)

// Mode selects which ticks of the render loop a subscriber receives.
type Mode string

const (
	ModeDefault  Mode = "default"
	ModeTracking Mode = "tracking"
	// ModeCommon receives ticks of every mode.
	ModeCommon Mode = "common"
)

// ParseMode returns the Mode named by s, or ModeCommon for anything unknown.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeDefault, ModeTracking:
		return Mode(s)
	}
	return ModeCommon
}

// Subscription is a registration with a Link. Cancel may be called more
// than once and from inside a callback.
type Subscription interface {
	Cancel()
}

// Link hands out one callback per presented frame to its subscribers.
//
// It is not safe for concurrent use: the render loop owns it and every
// callback is delivered on the goroutine that calls Tick.
type Link struct {
	clock  func() time.Time
	epoch  time.Time
	subs   map[uint64]*subscription
	order  []uint64
	nextID uint64
	logger *slog.Logger
}

// Option configures a Link.
type Option func(*Link)

// WithClock replaces time.Now as the source of frame timestamps.
func WithClock(clock func() time.Time) Option {
	return func(l *Link) { l.clock = clock }
}

// WithLogger sets where subscription changes are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Link) { l.logger = logger }
}

// NewLink returns a link with no subscribers whose clock starts now.
func NewLink(opts ...Option) *Link {
	l := &Link{
		clock:  time.Now,
		subs:   make(map[uint64]*subscription),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(l)
	}
	l.epoch = l.clock()
	return l
}

// Now is the monotonic time since the link was created.
func (l *Link) Now() time.Duration {
	return l.clock().Sub(l.epoch)
}

// Subscribe registers fn for ticks of mode, or of every mode for ModeCommon.
func (l *Link) Subscribe(mode Mode, fn func(ts time.Duration)) Subscription {
	l.nextID++
	s := &subscription{link: l, id: l.nextID, mode: mode, fn: fn}
	l.subs[s.id] = s
	l.order = append(l.order, s.id)
	l.logger.Debug("frame callback subscribed", "id", s.id, "mode", mode)
	return s
}

// Len is the number of live subscriptions.
func (l *Link) Len() int {
	return len(l.subs)
}

// Tick delivers one frame to subscribers of mode, timestamped with Now.
func (l *Link) Tick(mode Mode) {
	l.TickAt(mode, l.Now())
}

// TickAt delivers one frame with an explicit timestamp.
func (l *Link) TickAt(mode Mode, ts time.Duration) {
	// snapshot so callbacks can cancel or subscribe while we iterate
	ids := make([]uint64, len(l.order))
	copy(ids, l.order)
	for _, id := range ids {
		s, ok := l.subs[id]
		if !ok {
			continue
		}
		if s.mode != ModeCommon && s.mode != mode {
			continue
		}
		s.fn(ts)
	}
}

func (l *Link) remove(id uint64) {
	if _, ok := l.subs[id]; !ok {
		return
	}
	delete(l.subs, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.logger.Debug("frame callback cancelled", "id", id)
}

type subscription struct {
	link *Link
	id   uint64
	mode Mode
	fn   func(ts time.Duration)
}

func (s *subscription) Cancel() {
	s.link.remove(s.id)
}

package fps

import (
	"testing"
	"time"

	"fpscounter/display"
)

type recorder struct {
	counter *Counter
	updates []int
}

func (r *recorder) FramesPerSecondUpdated(c *Counter, fps int) {
	r.counter = c
	r.updates = append(r.updates, fps)
}

// frameAt turns seconds into a link timestamp.
func frameAt(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

// tickSpread delivers n frames evenly over one second, the last one landing
// exactly on start+1s.
func tickSpread(l *display.Link, start time.Duration, n int) {
	for i := 1; i <= n; i++ {
		l.TickAt(display.ModeDefault, start+time.Duration(i)*time.Second/time.Duration(n))
	}
}

func newLink() *display.Link {
	epoch := time.Unix(0, 0)
	return display.NewLink(display.WithClock(func() time.Time { return epoch }))
}

func TestCounter_ReportsAtWindowBoundary(t *testing.T) {
	link := newLink()
	rec := &recorder{}
	c := NewCounter()
	c.SetObserver(rec)
	c.Start(link, display.ModeCommon)

	for _, sec := range []float64{0.0, 0.2, 0.4, 0.6, 0.8} {
		link.TickAt(display.ModeDefault, frameAt(sec))
	}
	if len(rec.updates) != 0 {
		t.Fatalf("expected no update before one second, got %v", rec.updates)
	}
	link.TickAt(display.ModeDefault, frameAt(1.0))
	if len(rec.updates) != 1 || rec.updates[0] != 6 {
		t.Fatalf("expected one update of 6, got %v", rec.updates)
	}
	if rec.counter != c {
		t.Fatalf("observer got wrong counter")
	}
	if c.frames != 0 {
		t.Fatalf("frames not reset, got %d", c.frames)
	}
	if c.windowStart != time.Second {
		t.Fatalf("window start = %v, want 1s", c.windowStart)
	}
	if c.Last() != 6 {
		t.Fatalf("Last = %d, want 6", c.Last())
	}
}

func TestCounter_NFramesInOneSecond(t *testing.T) {
	for _, n := range []int{1, 24, 30, 59, 60, 120} {
		link := newLink()
		rec := &recorder{}
		c := NewCounter()
		c.SetObserver(rec)
		c.Start(link, display.ModeDefault)
		tickSpread(link, 0, n)
		if len(rec.updates) != 1 || rec.updates[0] != n {
			t.Fatalf("n=%d: got %v", n, rec.updates)
		}
	}
}

func TestCounter_NextWindowCountsFromZero(t *testing.T) {
	link := newLink()
	rec := &recorder{}
	c := NewCounter()
	c.SetObserver(rec)
	c.Start(link, display.ModeDefault)

	tickSpread(link, 0, 60)
	tickSpread(link, time.Second, 20)
	if len(rec.updates) != 2 || rec.updates[0] != 60 || rec.updates[1] != 20 {
		t.Fatalf("unexpected updates %v", rec.updates)
	}
}

func TestCounter_RoundsToNearest(t *testing.T) {
	link := newLink()
	rec := &recorder{}
	c := NewCounter()
	c.SetObserver(rec)
	c.Start(link, display.ModeDefault)

	// 59 frames with the last one at 1.2s: 49.17 fps
	for i := 1; i < 59; i++ {
		link.TickAt(display.ModeDefault, time.Duration(i)*time.Second/60)
	}
	link.TickAt(display.ModeDefault, 1200*time.Millisecond)
	if len(rec.updates) != 1 || rec.updates[0] != 49 {
		t.Fatalf("expected 49, got %v", rec.updates)
	}
}

func TestCounter_StopSilencesNotifications(t *testing.T) {
	link := newLink()
	rec := &recorder{}
	c := NewCounter()
	c.SetObserver(rec)
	c.Start(link, display.ModeDefault)

	for _, sec := range []float64{0.1, 0.2, 0.3} {
		link.TickAt(display.ModeDefault, frameAt(sec))
	}
	c.Stop()
	c.Stop()
	if c.Active() {
		t.Fatalf("counter still active after stop")
	}
	if link.Len() != 0 {
		t.Fatalf("subscription leaked, %d left", link.Len())
	}
	tickSpread(link, 0, 120)
	tickSpread(link, time.Second, 120)
	if len(rec.updates) != 0 {
		t.Fatalf("expected no updates after stop, got %v", rec.updates)
	}
	if c.frames != 3 {
		t.Fatalf("stop should keep the last count, got %d", c.frames)
	}
}

func TestCounter_StaleFrameIgnored(t *testing.T) {
	c := NewCounter()
	rec := &recorder{}
	c.SetObserver(rec)
	c.onFrame(2 * time.Second)
	if c.frames != 0 || len(rec.updates) != 0 {
		t.Fatalf("inactive counter counted a frame")
	}
}

func TestCounter_DoubleStartSingleSubscription(t *testing.T) {
	link := newLink()
	rec := &recorder{}
	c := NewCounter()
	c.SetObserver(rec)
	c.Start(link, display.ModeDefault)
	c.Start(link, display.ModeDefault)
	if link.Len() != 1 {
		t.Fatalf("expected one subscription, got %d", link.Len())
	}

	tickSpread(link, 0, 30)
	if len(rec.updates) != 1 || rec.updates[0] != 30 {
		t.Fatalf("expected a single update of 30, got %v", rec.updates)
	}
}

func TestCounter_NilObserver(t *testing.T) {
	link := newLink()
	rec := &recorder{}
	c := NewCounter()
	c.SetObserver(rec)
	c.SetObserver(nil)
	c.Start(link, display.ModeDefault)

	tickSpread(link, 0, 60)
	if len(rec.updates) != 0 {
		t.Fatalf("cleared observer was notified: %v", rec.updates)
	}
	if c.Last() != 60 {
		t.Fatalf("rate still computed without observer, got %d", c.Last())
	}
}

func TestCounter_RestartResetsWindow(t *testing.T) {
	now := time.Unix(0, 0)
	link := display.NewLink(display.WithClock(func() time.Time { return now }))
	rec := &recorder{}
	c := NewCounter()
	c.SetObserver(rec)

	c.Start(link, display.ModeDefault)
	tickSpread(link, 0, 30)
	// leave a partial window behind
	link.TickAt(display.ModeDefault, 1100*time.Millisecond)
	c.Stop()

	now = now.Add(5 * time.Second)
	c.Start(link, display.ModeDefault)
	if c.frames != 0 || c.windowStart != 5*time.Second {
		t.Fatalf("restart did not reset: frames=%d start=%v", c.frames, c.windowStart)
	}
	tickSpread(link, 5*time.Second, 60)

	if len(rec.updates) != 2 || rec.updates[0] != 30 || rec.updates[1] != 60 {
		t.Fatalf("expected [30 60], got %v", rec.updates)
	}
}

func TestCounter_ModeFiltering(t *testing.T) {
	link := newLink()
	rec := &recorder{}
	c := NewCounter()
	c.SetObserver(rec)
	c.Start(link, display.ModeDefault)

	for i := 1; i <= 10; i++ {
		link.TickAt(display.ModeTracking, time.Duration(i)*100*time.Millisecond)
	}
	if len(rec.updates) != 0 {
		t.Fatalf("default mode counter saw tracking ticks: %v", rec.updates)
	}
}

func TestCounter_CustomWindow(t *testing.T) {
	link := newLink()
	rec := &recorder{}
	c := NewCounter(WithWindow(500 * time.Millisecond))
	c.SetObserver(rec)
	c.Start(link, display.ModeDefault)

	for i := 1; i <= 15; i++ {
		link.TickAt(display.ModeDefault, time.Duration(i)*time.Second/30)
	}
	if len(rec.updates) != 1 || rec.updates[0] != 30 {
		t.Fatalf("expected one update of 30, got %v", rec.updates)
	}
}

type stopper struct {
	updates int
}

func (s *stopper) FramesPerSecondUpdated(c *Counter, _ int) {
	s.updates++
	c.Stop()
}

func TestCounter_ObserverStopsCounter(t *testing.T) {
	link := newLink()
	s := &stopper{}
	c := NewCounter()
	c.SetObserver(s)
	c.Start(link, display.ModeDefault)

	tickSpread(link, 0, 10)
	tickSpread(link, time.Second, 10)
	if s.updates != 1 {
		t.Fatalf("expected one update, got %d", s.updates)
	}
	if link.Len() != 0 {
		t.Fatalf("subscription left behind")
	}
}

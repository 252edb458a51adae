// Package overlay draws the fps readout as a colored strip along the top
// of an SDL window.
package overlay

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"

	"fpscounter/display"
	"fpscounter/fps"
)

// Painter is what the status bar draws with. RendererPainter adapts an
// *sdl.Renderer.
type Painter interface {
	SetDrawColor(r, g, b, a uint8) error
	FillRect(rect *sdl.Rect) error
	DrawText(x, y int32, text string, c color.RGBA) error
}

// RendererPainter draws text with the SDL2_gfx built-in 8x8 font, so no
// font file is needed.
type RendererPainter struct {
	*sdl.Renderer
}

func (p RendererPainter) DrawText(x, y int32, text string, c color.RGBA) error {
	if gfx.StringRGBA(p.Renderer, x, y, text, c.R, c.G, c.B, c.A) {
		return nil
	}
	if err := sdl.GetError(); err != nil {
		return fmt.Errorf("draw text: %w", err)
	}
	return fmt.Errorf("draw text %q failed", text)
}

// glyphSize is the edge of a gfx built-in font glyph.
const glyphSize = 8

// Titler is the subset of *sdl.Window used to show the label text.
type Titler interface {
	SetTitle(title string)
}

// StatusBar is an fps counter plus the strip that shows it. Create one per
// window and pass it around; there is no shared instance.
type StatusBar struct {
	counter    *fps.Counter
	thresholds fps.Thresholds
	title      Titler
	baseTitle  string
	logger     *slog.Logger

	frame    sdl.Rect
	visible  bool
	rate     int
	text     string
	severity fps.Severity
}

type Option func(*StatusBar)

func WithThresholds(t fps.Thresholds) Option {
	return func(s *StatusBar) { s.thresholds = t }
}

// WithBaseTitle is prefixed to the label in the window title.
func WithBaseTitle(title string) Option {
	return func(s *StatusBar) { s.baseTitle = title }
}

func WithHeight(h int32) Option {
	return func(s *StatusBar) {
		if h > 0 {
			s.frame.H = h
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *StatusBar) { s.logger = logger }
}

// NewStatusBar returns a hidden status bar. title may be nil.
func NewStatusBar(title Titler, opts ...Option) *StatusBar {
	s := &StatusBar{
		thresholds: fps.DefaultThresholds,
		title:      title,
		logger:     slog.New(slog.DiscardHandler),
		frame:      sdl.Rect{H: 20},
		severity:   fps.Critical,
	}
	for _, o := range opts {
		o(s)
	}
	s.counter = fps.NewCounter(fps.WithLogger(s.logger))
	s.counter.SetObserver(s)
	return s
}

func (s *StatusBar) Counter() *fps.Counter {
	return s.counter
}

// Show makes the bar visible and starts counting frames from src.
func (s *StatusBar) Show(src fps.FrameSource, mode display.Mode) {
	s.visible = true
	s.counter.Start(src, mode)
	s.logger.Info("fps status bar shown", "mode", mode)
}

// Hide stops counting and hides the bar.
func (s *StatusBar) Hide() {
	s.counter.Stop()
	s.visible = false
	if s.title != nil {
		s.title.SetTitle(s.baseTitle)
	}
	s.logger.Info("fps status bar hidden")
}

func (s *StatusBar) Visible() bool {
	return s.visible
}

func (s *StatusBar) Text() string {
	return s.text
}

func (s *StatusBar) Severity() fps.Severity {
	return s.severity
}

// Frame is the strip's rectangle in window coordinates.
func (s *StatusBar) Frame() sdl.Rect {
	return s.frame
}

// SetFrame stretches the strip to the window width. Call it whenever the
// window is resized.
func (s *StatusBar) SetFrame(width int32) {
	s.frame.X = 0
	s.frame.Y = 0
	s.frame.W = max(width, 0)
}

func (s *StatusBar) FramesPerSecondUpdated(_ *fps.Counter, rate int) {
	s.rate = rate
	s.text = fps.Label(rate)
	s.severity = s.thresholds.Classify(rate)
	if s.title != nil && s.visible {
		if s.baseTitle == "" {
			s.title.SetTitle(s.text)
		} else {
			s.title.SetTitle(s.baseTitle + " - " + s.text)
		}
	}
	s.logger.Debug("fps", "fps", rate, "severity", s.severity)
}

// Draw paints the strip: severity background, the label in the text color
// and below it a gauge whose length is the rate relative to the Good
// threshold.
func (s *StatusBar) Draw(p Painter) error {
	if !s.visible || s.frame.W == 0 {
		return nil
	}
	bg, fg := s.severity.Colors()
	if err := p.SetDrawColor(bg.R, bg.G, bg.B, bg.A); err != nil {
		return fmt.Errorf("status bar background color: %w", err)
	}
	bar := s.frame
	if err := p.FillRect(&bar); err != nil {
		return fmt.Errorf("status bar background: %w", err)
	}

	if s.text != "" {
		x, y := s.textOrigin()
		if err := p.DrawText(x, y, s.text, fg); err != nil {
			return fmt.Errorf("status bar label: %w", err)
		}
	}

	gauge := s.gauge()
	if gauge.W == 0 {
		return nil
	}
	if err := p.SetDrawColor(fg.R, fg.G, fg.B, fg.A); err != nil {
		return fmt.Errorf("status bar gauge color: %w", err)
	}
	if err := p.FillRect(&gauge); err != nil {
		return fmt.Errorf("status bar gauge: %w", err)
	}
	return nil
}

// textOrigin places the label at the left inset, centered in the space
// above the gauge.
func (s *StatusBar) textOrigin() (int32, int32) {
	above := s.frame.H - s.frame.H/4 - 1
	y := s.frame.Y + max((above-glyphSize)/2, 0)
	return s.frame.X + gaugeInset, y
}

const gaugeInset = 4

func (s *StatusBar) gauge() sdl.Rect {
	inner := s.frame.W - 2*gaugeInset
	h := s.frame.H / 4
	if inner <= 0 || h <= 0 || s.thresholds.Good <= 0 {
		return sdl.Rect{}
	}
	w := inner * int32(min(s.rate, s.thresholds.Good)) / int32(s.thresholds.Good)
	return sdl.Rect{
		X: s.frame.X + gaugeInset,
		Y: s.frame.Y + s.frame.H - h - 1,
		W: w,
		H: h,
	}
}

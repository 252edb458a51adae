package fps

import (
	"fmt"
	"image/color"
)

type Severity int

const (
	Critical Severity = iota
	Warning
	Good
)

func (s Severity) String() string {
	switch s {
	case Good:
		return "good"
	case Warning:
		return "warning"
	}
	return "critical"
}

// Thresholds are the lowest rates that still count as Good or Warning.
type Thresholds struct {
	Good    int
	Warning int
}

var DefaultThresholds = Thresholds{Good: 45, Warning: 35}

func (t Thresholds) Classify(fps int) Severity {
	switch {
	case fps >= t.Good:
		return Good
	case fps >= t.Warning:
		return Warning
	}
	return Critical
}

// Colors returns the background and text colors for a severity.
func (s Severity) Colors() (background, text color.RGBA) {
	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	switch s {
	case Good:
		return color.RGBA{0x00, 0xFF, 0x00, 0xFF}, color.RGBA{0x00, 0x00, 0x00, 0xFF}
	case Warning:
		return color.RGBA{0xFF, 0x80, 0x00, 0xFF}, white
	}
	return color.RGBA{0xFF, 0x00, 0x00, 0xFF}, white
}

// Label formats a rate as "60 FPS (16 ms/f)".
func Label(fps int) string {
	return fmt.Sprintf("%d FPS (%d ms/f)", fps, 1000/max(fps, 1))
}

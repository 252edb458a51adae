package main

import (
	"fmt"
	"math/rand"

	"github.com/veandco/go-sdl2/sdl"
)

const boxCount = 64

type box struct {
	rect   sdl.Rect
	dx, dy int32
	orange bool
}

// workload is something to render under the status bar: boxes bouncing
// around the window, drawn in two color batches.
type workload struct {
	width, height int32
	boxes         []box
	blue, orange  []sdl.Rect
}

func newWorkload(width, height int32) *workload {
	w := &workload{width: width, height: height}
	for i := range boxCount {
		size := int32(8 + rand.Intn(24))
		w.boxes = append(w.boxes, box{
			rect:   sdl.Rect{X: rand.Int31n(max(width-size, 1)), Y: rand.Int31n(max(height-size, 1)), W: size, H: size},
			dx:     int32(1 + rand.Intn(4)),
			dy:     int32(1 + rand.Intn(4)),
			orange: i%2 == 1,
		})
	}
	w.blue = make([]sdl.Rect, 0, boxCount)
	w.orange = make([]sdl.Rect, 0, boxCount)
	return w
}

func (w *workload) resize(width, height int32) {
	w.width, w.height = width, height
}

func (w *workload) step() {
	for i := range w.boxes {
		b := &w.boxes[i]
		b.rect.X += b.dx
		b.rect.Y += b.dy
		if b.rect.X < 0 || b.rect.X+b.rect.W > w.width {
			b.dx = -b.dx
			b.rect.X = min(max(b.rect.X, 0), max(w.width-b.rect.W, 0))
		}
		if b.rect.Y < 0 || b.rect.Y+b.rect.H > w.height {
			b.dy = -b.dy
			b.rect.Y = min(max(b.rect.Y, 0), max(w.height-b.rect.H, 0))
		}
	}
}

func (w *workload) draw(renderer *sdl.Renderer) error {
	w.blue = w.blue[:0]
	w.orange = w.orange[:0]
	for _, b := range w.boxes {
		if b.orange {
			w.orange = append(w.orange, b.rect)
		} else {
			w.blue = append(w.blue, b.rect)
		}
	}

	if len(w.blue) > 0 {
		renderer.SetDrawColor(0x0, 0x99, 0xFF, 0xFF)
		if err := renderer.FillRects(w.blue); err != nil {
			return fmt.Errorf("draw workload: %w", err)
		}
	}
	if len(w.orange) > 0 {
		renderer.SetDrawColor(0xFF, 0x99, 0x00, 0xFF)
		if err := renderer.FillRects(w.orange); err != nil {
			return fmt.Errorf("draw workload: %w", err)
		}
	}
	return nil
}

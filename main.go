package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"fpscounter/config"
	"fpscounter/display"
	"fpscounter/fps"
	"fpscounter/overlay"
)

const windowTitle = "fps counter"

func init() {
	// SDL wants every call on the thread that initialised it
	runtime.LockOSThread()
}

func main() {
	cfgPath := flag.String("config", "fpscounter.json", "path to JSON config")
	debug := flag.Bool("debug", false, "debug logging")
	load := flag.Int("load", -1, "synthetic work per frame in milliseconds")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config %s: %v, using defaults\n", *cfgPath, err)
	}
	if *debug {
		cfg.Debug = true
	}
	if *load >= 0 {
		cfg.LoadMillis = *load
	}
	cfg.Validate()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	if err := run(cfg, logger); err != nil {
		logger.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		cfg.WindowWidth, cfg.WindowHeight,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Destroy()

	link := display.NewLink(display.WithLogger(logger))
	bar := overlay.NewStatusBar(window,
		overlay.WithBaseTitle(windowTitle),
		overlay.WithHeight(cfg.BarHeight),
		overlay.WithThresholds(fps.Thresholds{Good: cfg.GoodFPS, Warning: cfg.WarningFPS}),
		overlay.WithLogger(logger),
	)
	bar.SetFrame(cfg.WindowWidth)
	// never leave a callback registered past the loop
	defer bar.Hide()

	mode := display.ParseMode(cfg.Mode)
	if cfg.ShowOnStart {
		bar.Show(link, mode)
	}

	painter := overlay.RendererPainter{Renderer: renderer}
	w := newWorkload(cfg.WindowWidth, cfg.WindowHeight)
	frameLoad := time.Duration(cfg.LoadMillis) * time.Millisecond
	tickMode := display.ModeDefault

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					bar.SetFrame(e.Data1)
					w.resize(e.Data1, e.Data2)
				}
			case *sdl.KeyboardEvent:
				if e.State != sdl.PRESSED {
					continue
				}
				switch e.Keysym.Sym {
				case sdl.K_ESCAPE:
					return nil
				case sdl.K_f:
					if bar.Visible() {
						bar.Hide()
					} else {
						bar.Show(link, mode)
					}
				case sdl.K_t:
					if tickMode == display.ModeDefault {
						tickMode = display.ModeTracking
					} else {
						tickMode = display.ModeDefault
					}
					logger.Info("tick mode", "mode", tickMode)
				case sdl.K_UP:
					frameLoad += time.Millisecond
					logger.Info("frame load", "load", frameLoad)
				case sdl.K_DOWN:
					frameLoad = max(frameLoad-time.Millisecond, 0)
					logger.Info("frame load", "load", frameLoad)
				}
			}
		}

		link.Tick(tickMode)

		renderer.SetDrawColor(255, 255, 255, 255)
		renderer.Clear()

		w.step()
		if err := w.draw(renderer); err != nil {
			return err
		}
		if err := bar.Draw(painter); err != nil {
			return err
		}

		renderer.Present()

		if frameLoad > 0 {
			time.Sleep(frameLoad)
		}
	}
}

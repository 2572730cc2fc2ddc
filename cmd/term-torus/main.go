package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unklstewy/term-torus/pkg/animate"
	"github.com/unklstewy/term-torus/pkg/config"
	"github.com/unklstewy/term-torus/pkg/display"
)

// main is the entry point for the term-torus animation. It takes no
// arguments: configuration comes from the conventional config file
// when present and from defaults otherwise. The process runs until a
// quit key or external termination.
func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	switch cfg.Display.Backend {
	case config.BackendTUI:
		runTUI(cfg)
	default:
		runTcell(cfg)
	}
}

// runTUI runs the Bubble Tea program with buffered frames on the
// alternate screen.
func runTUI(cfg *config.Config) {
	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTcell drives the tcell sinks (buffered or immediate) with the
// animation loop, stopping when the screen signals termination.
func runTcell(cfg *config.Config) {
	screen, err := display.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize terminal: %v", err)
	}
	defer screen.Fini()

	params := cfg.Torus.Params()
	fixed := cfg.Display.Width > 0 && cfg.Display.Height > 0

	var view animate.Renderer
	if cfg.Display.Backend == config.BackendImmediate {
		iv := display.NewImmediate(screen, params)
		if fixed {
			iv.PinSize(cfg.Display.Width, cfg.Display.Height)
		}
		view = iv
	} else {
		bv := display.NewBuffered(screen, params)
		if fixed {
			bv.PinSize(cfg.Display.Width, cfg.Display.Height)
		}
		view = bv
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-screen.Done()
		cancel()
	}()

	driver := animate.New(view, cfg.Animation.Options())
	if err := driver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		screen.Fini()
		log.Fatalf("Animation loop failed: %v", err)
	}
}

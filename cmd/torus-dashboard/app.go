package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/unklstewy/term-torus/pkg/config"
	"github.com/unklstewy/term-torus/pkg/torus"
)

// Fallback frame size until the animation panel reports its inner size.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// App is the dashboard application: the torus animation in the main
// panel with telemetry, controls, and logs in a sidebar.
type App struct {
	config *config.Config

	// Animation state, owned by the ticker goroutine
	renderer *torus.Renderer
	rot      torus.Rotation
	deltaA   float64
	deltaB   float64
	interval time.Duration

	// UI components
	tviewApp   *tview.Application
	animation  *tview.TextView
	telemetry  *tview.TextView
	controls   *tview.TextView
	logs       *tview.TextView
	rootLayout *tview.Flex

	// Telemetry
	ticks     int
	lastFrame time.Duration
	litCells  int

	// frameW/frameH mirror the animation panel's inner size, fed back
	// from the draw callback; zero until the first layout pass
	frameW, frameH int
	fixedSize      bool

	// Synchronization
	mu       sync.Mutex
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewApp creates the dashboard over a validated configuration.
func NewApp(cfg *config.Config) *App {
	width, height := cfg.Display.Width, cfg.Display.Height
	fixed := width > 0 && height > 0
	if !fixed {
		width, height = fallbackWidth, fallbackHeight
	}

	interval := time.Duration(cfg.Animation.TickMs) * time.Millisecond
	if interval <= 0 {
		// tick_ms 0 validates but tickers reject non-positive intervals
		interval = time.Millisecond
	}

	app := &App{
		config:    cfg,
		renderer:  torus.NewRenderer(cfg.Torus.Params(), width, height),
		rot:       torus.Rotation{A: cfg.Animation.InitialA, B: cfg.Animation.InitialB},
		deltaA:    cfg.Animation.DeltaA,
		deltaB:    cfg.Animation.DeltaB,
		interval:  interval,
		fixedSize: fixed,
		stopChan:  make(chan struct{}),
	}

	app.setupUI()
	return app
}

// setupUI initializes the panels and layout.
func (a *App) setupUI() {
	a.tviewApp = tview.NewApplication()

	a.animation = tview.NewTextView().
		SetDynamicColors(false).
		SetWrap(false)
	a.animation.SetBorder(true).SetTitle(" Torus ")

	a.telemetry = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.telemetry.SetBorder(true).SetTitle(" Telemetry ")

	a.controls = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.controls.SetBorder(true).SetTitle(" Controls ")
	a.controls.SetText(`[yellow]CONTROL[-]
  [white]q[-]     Quit
  [white]ESC[-]   Quit`)

	a.logs = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(100)
	a.logs.SetBorder(true).SetTitle(" Logs ")

	sidebar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.telemetry, 0, 4, false).
		AddItem(a.controls, 0, 2, false).
		AddItem(a.logs, 0, 4, false)

	a.rootLayout = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.animation, 0, 7, true).
		AddItem(sidebar, 0, 3, false)

	a.tviewApp.SetRoot(a.rootLayout, true)
	a.tviewApp.SetInputCapture(a.handleKeyboard)
}

// handleKeyboard handles keyboard input. Only termination is bound.
func (a *App) handleKeyboard(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyEscape, event.Key() == tcell.KeyCtrlC, event.Rune() == 'q':
		a.Stop()
		return nil
	}
	return event
}

// Run starts the ticker goroutine and the UI event loop, blocking
// until the application stops.
func (a *App) Run() error {
	a.addLog("INFO", fmt.Sprintf("Dashboard started, tick interval %s", a.interval))
	go a.animate()
	return a.tviewApp.Run()
}

// Stop ends the animation and the UI loop. Safe to call repeatedly.
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.stopChan) })
	a.tviewApp.Stop()
}

// animate is the tick loop: render, advance, redraw, until stopped.
func (a *App) animate() {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopChan:
			return
		case <-ticker.C:
			a.step()
		}
	}
}

// step renders one frame and queues the panel updates.
func (a *App) step() {
	a.mu.Lock()

	if !a.fixedSize && a.frameW > 0 && a.frameH > 0 {
		oldW, oldH := a.renderer.Size()
		if oldW != a.frameW || oldH != a.frameH {
			a.addLog("DEBUG", fmt.Sprintf("Frame resized to %dx%d", a.frameW, a.frameH))
		}
		a.renderer.Resize(a.frameW, a.frameH)
	}

	start := time.Now()
	fb := a.renderer.RenderFrame(a.rot)
	a.lastFrame = time.Since(start)

	lit := 0
	for row := 0; row < fb.Height(); row++ {
		for col := 0; col < fb.Width(); col++ {
			if fb.Glyph(row, col) != torus.Blank {
				lit++
			}
		}
	}
	a.litCells = lit

	frame := fb.String()
	a.rot.Advance(a.deltaA, a.deltaB)
	a.ticks++

	a.mu.Unlock()

	a.tviewApp.QueueUpdateDraw(func() {
		a.animation.SetText(frame)
		a.updateTelemetry()

		// feed the panel's inner size back for the next frame
		_, _, w, h := a.animation.GetInnerRect()
		a.mu.Lock()
		a.frameW, a.frameH = w, h
		a.mu.Unlock()
	})
}

// updateTelemetry refreshes the telemetry panel. Runs on the UI
// goroutine via QueueUpdateDraw.
func (a *App) updateTelemetry() {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, h := a.renderer.Size()

	var text string
	text += "[yellow]ANIMATION[-]\n"
	text += fmt.Sprintf("[gray]Ticks:[-]  [white]%d[-]\n", a.ticks)
	text += fmt.Sprintf("[gray]A:[-]      [white]%.2f rad[-]\n", a.rot.A)
	text += fmt.Sprintf("[gray]B:[-]      [white]%.2f rad[-]\n", a.rot.B)
	text += "\n"
	text += "[yellow]FRAME[-]\n"
	text += fmt.Sprintf("[gray]Size:[-]   [white]%dx%d[-]\n", w, h)
	text += fmt.Sprintf("[gray]Render:[-] [white]%s[-]\n", a.lastFrame.Round(time.Microsecond))
	text += fmt.Sprintf("[gray]Lit:[-]    [white]%d cells[-]\n", a.litCells)

	a.telemetry.SetText(text)
}

// addLog appends a line to the log panel.
func (a *App) addLog(level, message string) {
	timestamp := time.Now().Format("15:04:05")
	var color string
	switch level {
	case "ERROR":
		color = "red"
	case "WARN":
		color = "yellow"
	case "INFO":
		color = "white"
	default:
		color = "gray"
	}

	fmt.Fprintf(a.logs, "[gray]%s[-] [%s]%-5s[-] %s\n", timestamp, color, level, message)
}

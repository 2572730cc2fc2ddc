package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unklstewy/term-torus/pkg/config"
	"github.com/unklstewy/term-torus/pkg/torus"
)

// Fallback frame size used until the first window-size message arrives.
const (
	initialWidth  = 80
	initialHeight = 24
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type tickMsg time.Time

// model is the Bubble Tea program for the buffered animation: it owns
// the rotation state, advances it on every tick message, and renders
// the depth-buffered frame in View.
type model struct {
	renderer *torus.Renderer
	rot      torus.Rotation

	deltaA   float64
	deltaB   float64
	interval time.Duration

	// fixedSize pins the frame to the configured virtual screen
	// instead of following the live terminal size
	fixedSize bool
	showHelp  bool
	ticks     int
}

func newModel(cfg *config.Config) model {
	width, height := cfg.Display.Width, cfg.Display.Height
	fixed := width > 0 && height > 0
	if !fixed {
		width, height = initialWidth, initialHeight
	}

	interval := time.Duration(cfg.Animation.TickMs) * time.Millisecond
	if interval <= 0 {
		// tick_ms 0 validates; a zero tick would busy-spin the program
		interval = time.Millisecond
	}

	return model{
		renderer:  torus.NewRenderer(cfg.Torus.Params(), width, height),
		rot:       torus.Rotation{A: cfg.Animation.InitialA, B: cfg.Animation.InitialB},
		deltaA:    cfg.Animation.DeltaA,
		deltaB:    cfg.Animation.DeltaB,
		interval:  interval,
		fixedSize: fixed,
		showHelp:  cfg.Display.ShowHelp,
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		if !m.fixedSize {
			height := msg.Height
			if m.showHelp && height > 1 {
				// reserve the bottom row for the help line
				height--
			}
			m.renderer.Resize(msg.Width, height)
		}

	case tickMsg:
		m.rot.Advance(m.deltaA, m.deltaB)
		m.ticks++
		return m, m.tick()
	}

	return m, nil
}

func (m model) View() string {
	var s strings.Builder

	fb := m.renderer.RenderFrame(m.rot)
	s.WriteString(fb.String())

	if m.showHelp {
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("Q/ESC: Quit"))
	}

	return s.String()
}

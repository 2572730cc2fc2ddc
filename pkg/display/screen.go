// Package display provides the terminal sinks for rendered frames: a
// buffered view that blits a depth-resolved character grid in place,
// and an immediate view that draws samples as they are computed.
package display

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps a tcell screen with the terminal-control duties the
// render loop needs: alternate-screen setup, cursor hiding, size
// queries, and a termination channel fed by the event loop.
type Screen struct {
	ts   tcell.Screen
	done chan struct{}
	once sync.Once
}

// NewScreen initializes the real terminal screen and starts watching
// for termination keys. Callers must Fini the screen before exit.
func NewScreen() (*Screen, error) {
	ts, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return initScreen(ts)
}

func initScreen(ts tcell.Screen) (*Screen, error) {
	if err := ts.Init(); err != nil {
		return nil, fmt.Errorf("initialize screen: %w", err)
	}
	ts.SetStyle(tcell.StyleDefault)
	ts.HideCursor()

	s := &Screen{
		ts:   ts,
		done: make(chan struct{}),
	}
	go s.watchEvents()
	return s, nil
}

// watchEvents turns quit keys into a Done signal and keeps the screen
// in sync across terminal resizes.
func (s *Screen) watchEvents() {
	for {
		ev := s.ts.PollEvent()
		if ev == nil {
			// screen finalized
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
				s.stop()
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				s.stop()
			}
		case *tcell.EventResize:
			s.ts.Sync()
		}
	}
}

func (s *Screen) stop() {
	s.once.Do(func() { close(s.done) })
}

// Done is closed when the user requests termination.
func (s *Screen) Done() <-chan struct{} {
	return s.done
}

// Size returns the current terminal dimensions in character cells.
// It is point-in-time input: the terminal may be resized between any
// two calls.
func (s *Screen) Size() (width, height int) {
	return s.ts.Size()
}

// Fini restores the terminal. Safe to defer from main.
func (s *Screen) Fini() {
	s.ts.Fini()
}

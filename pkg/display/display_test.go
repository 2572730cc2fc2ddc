package display

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/unklstewy/term-torus/pkg/torus"
)

// newTestScreen wraps a tcell simulation screen so the sinks can be
// exercised without a real terminal.
func newTestScreen(t *testing.T, width, height int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := initScreen(sim)
	if err != nil {
		t.Fatalf("Failed to initialize simulation screen: %v", err)
	}
	sim.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s, sim
}

// TestBufferedBlitsRendererOutput checks the buffered sink presents
// exactly the depth-resolved character grid.
func TestBufferedBlitsRendererOutput(t *testing.T) {
	params := torus.DefaultParams()
	rot := torus.Rotation{A: 1.0, B: 1.0}

	s, sim := newTestScreen(t, 80, 40)
	view := NewBuffered(s, params)
	if err := view.Frame(rot); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	want := torus.NewRenderer(params, 80, 40).RenderFrame(rot)
	lit := 0
	for row := 0; row < 40; row++ {
		for col := 0; col < 80; col++ {
			got, _, _, _ := sim.GetContent(col, row)
			if got != rune(want.Glyph(row, col)) {
				t.Fatalf("Cell (%d, %d) shows %q, want %q", col, row, got, want.Glyph(row, col))
			}
			if got != torus.Blank {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("Expected a visible torus on the simulation screen")
	}
}

// TestBufferedAdoptsResize checks the sink follows the terminal size
// on the next frame.
func TestBufferedAdoptsResize(t *testing.T) {
	s, sim := newTestScreen(t, 80, 40)
	view := NewBuffered(s, torus.DefaultParams())
	if err := view.Frame(torus.Rotation{A: 1, B: 1}); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	sim.SetSize(60, 20)
	if err := view.Frame(torus.Rotation{A: 1.07, B: 1.03}); err != nil {
		t.Fatalf("Frame after resize failed: %v", err)
	}

	want := torus.NewRenderer(torus.DefaultParams(), 60, 20).RenderFrame(torus.Rotation{A: 1.07, B: 1.03})
	for row := 0; row < 20; row++ {
		for col := 0; col < 60; col++ {
			got, _, _, _ := sim.GetContent(col, row)
			if got != rune(want.Glyph(row, col)) {
				t.Fatalf("Cell (%d, %d) shows %q after resize, want %q", col, row, got, want.Glyph(row, col))
			}
		}
	}
}

// TestImmediateLastWriteWins checks the degraded sink reproduces the
// sweep-order overwrite semantics with no depth resolution.
func TestImmediateLastWriteWins(t *testing.T) {
	params := torus.DefaultParams()
	rot := torus.Rotation{A: 1.0, B: 1.0}

	s, sim := newTestScreen(t, 80, 40)
	view := NewImmediate(s, params)
	if err := view.Frame(rot); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	want := make([][]rune, 40)
	for row := range want {
		want[row] = make([]rune, 80)
		for col := range want[row] {
			want[row][col] = ' '
		}
	}
	torus.Sweep(rot, params, 80, 40, func(smp torus.Sample) {
		want[smp.Row][smp.Col] = rune(smp.Glyph)
	})

	for row := 0; row < 40; row++ {
		for col := 0; col < 80; col++ {
			got, _, _, _ := sim.GetContent(col, row)
			if got != want[row][col] {
				t.Fatalf("Cell (%d, %d) shows %q, want %q", col, row, got, want[row][col])
			}
		}
	}
}

// TestQuitKeysSignalDone checks the termination contract for each
// bound key.
func TestQuitKeysSignalDone(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"Rune q", tcell.KeyRune, 'q'},
		{"Escape", tcell.KeyEscape, 0},
		{"Ctrl+C", tcell.KeyCtrlC, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sim := newTestScreen(t, 20, 10)
			sim.InjectKey(tt.key, tt.r, tcell.ModNone)

			select {
			case <-s.Done():
			case <-time.After(2 * time.Second):
				t.Fatal("Done was not signalled after quit key")
			}
		})
	}
}

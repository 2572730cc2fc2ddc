package display

import (
	"github.com/gdamore/tcell/v2"

	"github.com/unklstewy/term-torus/pkg/torus"
)

// Buffered draws depth-buffered frames: the complete character grid is
// built off-screen with the closest sample winning each cell, then
// blitted over the previous frame in one pass. No intervening screen
// clear is needed, which avoids flicker. This is the primary sink.
type Buffered struct {
	screen   *Screen
	renderer *torus.Renderer
	pinned   bool
}

// NewBuffered creates the buffered view over a screen.
func NewBuffered(screen *Screen, params torus.Params) *Buffered {
	w, h := screen.Size()
	return &Buffered{
		screen:   screen,
		renderer: torus.NewRenderer(params, w, h),
	}
}

// PinSize renders into a fixed virtual frame instead of following the
// live terminal size.
func (v *Buffered) PinSize(width, height int) {
	v.pinned = true
	v.renderer.Resize(width, height)
}

// Frame renders and presents one frame for the rotation state. The
// terminal size is re-queried every frame so resizes take effect on
// the next tick, unless a virtual size is pinned.
func (v *Buffered) Frame(rot torus.Rotation) error {
	if !v.pinned {
		v.renderer.Resize(v.screen.Size())
	}

	fb := v.renderer.RenderFrame(rot)
	for row := 0; row < fb.Height(); row++ {
		for col := 0; col < fb.Width(); col++ {
			v.screen.ts.SetContent(col, row, rune(fb.Glyph(row, col)), nil, tcell.StyleDefault)
		}
	}
	v.screen.ts.Show()
	return nil
}

// Immediate draws each sample as it is computed, with no frame buffer
// and no depth test: later samples overwrite earlier ones regardless
// of depth, and the whole screen is cleared before every frame.
// Occlusion artifacts are expected behavior in this mode.
type Immediate struct {
	screen *Screen
	params torus.Params
	width  int
	height int
}

// NewImmediate creates the immediate view over a screen.
func NewImmediate(screen *Screen, params torus.Params) *Immediate {
	return &Immediate{
		screen: screen,
		params: params,
	}
}

// PinSize sweeps over a fixed virtual frame instead of following the
// live terminal size.
func (v *Immediate) PinSize(width, height int) {
	v.width = width
	v.height = height
}

// Frame clears the screen and replays the sample sweep directly onto
// it in sweep order.
func (v *Immediate) Frame(rot torus.Rotation) error {
	w, h := v.width, v.height
	if w == 0 || h == 0 {
		w, h = v.screen.Size()
	}
	v.screen.ts.Clear()
	torus.Sweep(rot, v.params, w, h, func(s torus.Sample) {
		v.screen.ts.SetContent(s.Col, s.Row, rune(s.Glyph), nil, tcell.StyleDefault)
	})
	v.screen.ts.Show()
	return nil
}

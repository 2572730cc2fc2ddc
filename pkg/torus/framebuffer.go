package torus

import "strings"

// Blank is the glyph a cell holds when no sample has been plotted on it.
const Blank = ' '

// FrameBuffer couples a character grid with a depth grid of the same
// dimensions. Both are flat row-major slices; a cell holds a non-blank
// glyph only if its depth entry records the inverse depth of the sample
// that produced it, and no closer sample was seen this frame.
type FrameBuffer struct {
	width  int
	height int
	chars  []byte
	depth  []float64
}

// NewFrameBuffer allocates a blank frame buffer.
func NewFrameBuffer(width, height int) *FrameBuffer {
	fb := &FrameBuffer{
		width:  width,
		height: height,
		chars:  make([]byte, width*height),
		depth:  make([]float64, width*height),
	}
	fb.Reset()
	return fb
}

// Width returns the frame width in character cells.
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the frame height in character cells.
func (fb *FrameBuffer) Height() int { return fb.height }

// Reset blanks every cell and clears the depth grid to the
// nothing-drawn sentinel. Buffers are reused in place across frames.
func (fb *FrameBuffer) Reset() {
	for i := range fb.chars {
		fb.chars[i] = Blank
		fb.depth[i] = 0
	}
}

// Glyph returns the character at a cell.
func (fb *FrameBuffer) Glyph(row, col int) byte {
	return fb.chars[row*fb.width+col]
}

// Depth returns the stored inverse depth at a cell; zero means no
// sample has been plotted there this frame.
func (fb *FrameBuffer) Depth(row, col int) float64 {
	return fb.depth[row*fb.width+col]
}

// Plot writes a glyph at a cell if its inverse depth beats the sample
// already stored there. A larger 1/z is closer to the viewer; ties
// leave the earlier sample in place. It reports whether the cell was
// written.
func (fb *FrameBuffer) Plot(row, col int, ooz float64, glyph byte) bool {
	i := row*fb.width + col
	if ooz <= fb.depth[i] {
		return false
	}
	fb.depth[i] = ooz
	fb.chars[i] = glyph
	return true
}

// Row returns one row of the character grid as a string.
func (fb *FrameBuffer) Row(row int) string {
	return string(fb.chars[row*fb.width : (row+1)*fb.width])
}

// String renders the full grid as newline-joined rows, suitable for a
// single buffered write to the terminal.
func (fb *FrameBuffer) String() string {
	var b strings.Builder
	b.Grow((fb.width + 1) * fb.height)
	for row := 0; row < fb.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(fb.Row(row))
	}
	return b.String()
}

// Package torus implements the frame renderer for a rotating ASCII torus:
// parametric surface sampling, 3D rotation, perspective projection, luminance
// shading, and depth-buffered rasterization into a character frame buffer.
package torus

import (
	"fmt"
	"math"
)

// Palette is the fixed glyph ramp from darkest to brightest. Luminance
// indices select into it, so its length bounds PaletteIndex.
const Palette = ".,-~:;=!*#$@"

// Default angle increments applied by the animation driver each tick.
const (
	DefaultDeltaA = 0.07
	DefaultDeltaB = 0.03
)

// Params holds the fixed projection constants for the torus surface.
// They are derived once and remain constant for the process lifetime.
type Params struct {
	// TubeRadius is the radius of the torus cross-section circle (R1)
	TubeRadius float64

	// RingRadius is the radius of revolution around the central axis (R2)
	RingRadius float64

	// ViewerDistance is the depth offset added to every rotated z (K2).
	// It must exceed TubeRadius+RingRadius so z stays strictly positive;
	// Validate enforces this.
	ViewerDistance float64

	// ThetaStep is the sampling step around the cross-section circle
	ThetaStep float64

	// PhiStep is the sampling step around the axis of revolution
	PhiStep float64
}

// DefaultParams returns the standard torus geometry: unit tube on a
// ring of radius 2, viewed from distance 5.
func DefaultParams() Params {
	return Params{
		TubeRadius:     1.0,
		RingRadius:     2.0,
		ViewerDistance: 5.0,
		ThetaStep:      0.07,
		PhiStep:        0.02,
	}
}

// Validate checks the constants against the renderer's preconditions.
func (p Params) Validate() error {
	if p.TubeRadius <= 0 || p.RingRadius <= 0 {
		return fmt.Errorf("torus radii must be positive (tube=%.2f, ring=%.2f)", p.TubeRadius, p.RingRadius)
	}
	if p.ViewerDistance <= p.TubeRadius+p.RingRadius {
		return fmt.Errorf("viewer distance %.2f must exceed tube+ring radius %.2f to keep z positive",
			p.ViewerDistance, p.TubeRadius+p.RingRadius)
	}
	if p.ThetaStep <= 0 || p.PhiStep <= 0 {
		return fmt.Errorf("sampling steps must be positive (theta=%.3f, phi=%.3f)", p.ThetaStep, p.PhiStep)
	}
	return nil
}

// Scale returns the screen-scale factor (K1) for a frame of the given
// dimensions. The torus edge sits at x=R1+R2, z=K2; scaling by
// min(w,h)*K2*3/(8*(R1+R2)) places that edge 3/8ths of the smaller
// dimension from the center, so the torus fits the viewport.
func (p Params) Scale(width, height int) float64 {
	dim := width
	if height < width {
		dim = height
	}
	return float64(dim) * p.ViewerDistance * 3.0 / (8.0 * (p.TubeRadius + p.RingRadius))
}

// Rotation is the animation state: two angles in radians, advanced by
// fixed increments each tick. The angles grow without bound; all uses
// are through periodic trig functions, so no wrapping is needed.
type Rotation struct {
	A float64
	B float64
}

// Advance increments both angles by one tick's worth of rotation.
func (r *Rotation) Advance(deltaA, deltaB float64) {
	r.A += deltaA
	r.B += deltaB
}

// Sample is one projected surface point: a screen cell, its inverse
// depth, and the shading glyph chosen for it.
type Sample struct {
	Col   int
	Row   int
	Depth float64 // inverse depth (1/z); larger is closer to the viewer
	Glyph byte
}

// frameTrig caches the rotation trig for one frame so it is computed
// once and reused across every surface sample.
type frameTrig struct {
	cosA, sinA float64
	cosB, sinB float64
}

func newFrameTrig(rot Rotation) frameTrig {
	return frameTrig{
		cosA: math.Cos(rot.A), sinA: math.Sin(rot.A),
		cosB: math.Cos(rot.B), sinB: math.Sin(rot.B),
	}
}

// surface rotates one pre-revolution circle point into 3D. The A and B
// rotations are baked into the closed-form expressions rather than
// decomposed into matrix multiplies.
func (t frameTrig) surface(p Params, cosTheta, sinTheta, cosPhi, sinPhi float64) (x, y, z float64) {
	// the circle point before revolving, factored out of the rotation terms
	circleX := p.RingRadius + p.TubeRadius*cosTheta
	circleY := p.TubeRadius * sinTheta

	x = circleX*(t.cosB*cosPhi+t.sinA*t.sinB*sinPhi) - circleY*t.cosA*t.sinB
	y = circleX*(t.sinB*cosPhi-t.sinA*t.cosB*sinPhi) + circleY*t.cosA*t.cosB
	z = p.ViewerDistance + t.cosA*circleX*sinPhi + circleY*t.sinA
	return x, y, z
}

// luminance is the dot product of the surface normal with the fixed
// light direction, algebraically reduced to one expression. Its range
// is [-sqrt2, sqrt2]; non-positive values face away from the light.
func (t frameTrig) luminance(cosTheta, sinTheta, cosPhi, sinPhi float64) float64 {
	return cosPhi*cosTheta*t.sinB - t.cosA*cosTheta*sinPhi - t.sinA*sinTheta +
		t.cosB*(t.cosA*sinTheta-cosTheta*t.sinA*sinPhi)
}

// Surface returns the rotated 3D coordinates of the torus point at
// (theta, phi) under the given rotation state.
func Surface(theta, phi float64, rot Rotation, p Params) (x, y, z float64) {
	t := newFrameTrig(rot)
	return t.surface(p, math.Cos(theta), math.Sin(theta), math.Cos(phi), math.Sin(phi))
}

// Luminance returns the shading scalar for the torus point at
// (theta, phi) under the given rotation state.
func Luminance(theta, phi float64, rot Rotation) float64 {
	t := newFrameTrig(rot)
	return t.luminance(math.Cos(theta), math.Sin(theta), math.Cos(phi), math.Sin(phi))
}

// PaletteIndex maps a positive luminance value to a palette position.
// Multiplying by 8 spreads (0, sqrt2] across the 12 buckets
// (8*sqrt2 = 11.3); the clamp keeps the index bounds-matched to the
// palette rather than trusting truncation.
func PaletteIndex(l float64) int {
	i := int(l * 8.0)
	if i < 0 {
		i = 0
	}
	if i >= len(Palette) {
		i = len(Palette) - 1
	}
	return i
}

// inBounds reports whether a projected cell lands inside the frame.
// The last valid row and column are included; anything beyond is
// discarded by the caller, never clamped or wrapped.
func inBounds(col, row, width, height int) bool {
	return col >= 0 && col < width && row >= 0 && row < height
}

// Sweep samples the full (theta, phi) grid for one frame and calls fn
// for every front-facing sample that projects inside a width x height
// frame. Samples arrive in sweep order with no depth resolution; the
// caller decides how collisions at one cell are settled.
func Sweep(rot Rotation, p Params, width, height int, fn func(Sample)) {
	t := newFrameTrig(rot)
	scale := p.Scale(width, height)

	// theta walks the cross-section circle, phi the axis of revolution
	for theta := 0.0; theta < 2.0*math.Pi; theta += p.ThetaStep {
		cosTheta := math.Cos(theta)
		sinTheta := math.Sin(theta)

		for phi := 0.0; phi < 2.0*math.Pi; phi += p.PhiStep {
			cosPhi := math.Cos(phi)
			sinPhi := math.Sin(phi)

			x, y, z := t.surface(p, cosTheta, sinTheta, cosPhi, sinPhi)
			ooz := 1.0 / z // z > 0 is guaranteed by the viewer-distance precondition

			// y is negated: it grows upward in 3D but rows grow downward
			col := int(float64(width)/2.0 + scale*ooz*x)
			row := int(float64(height)/2.0 - scale*ooz*y)

			l := t.luminance(cosTheta, sinTheta, cosPhi, sinPhi)
			if l <= 0 {
				// back-facing; nothing to plot
				continue
			}
			if !inBounds(col, row, width, height) {
				continue
			}
			fn(Sample{Col: col, Row: row, Depth: ooz, Glyph: Palette[PaletteIndex(l)]})
		}
	}
}

// Renderer produces depth-buffered frames for a fixed set of projection
// constants. The frame buffer is owned by the renderer and reused in
// place; each RenderFrame resets and repopulates it.
type Renderer struct {
	params Params
	fb     *FrameBuffer
}

// NewRenderer creates a renderer for frames of the given dimensions.
func NewRenderer(p Params, width, height int) *Renderer {
	return &Renderer{
		params: p,
		fb:     NewFrameBuffer(width, height),
	}
}

// Params returns the projection constants the renderer was built with.
func (r *Renderer) Params() Params {
	return r.params
}

// Size returns the current frame dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.fb.Width(), r.fb.Height()
}

// Resize adopts new frame dimensions. The terminal size is treated as
// point-in-time input, so callers may resize between any two frames.
func (r *Renderer) Resize(width, height int) {
	if width == r.fb.Width() && height == r.fb.Height() {
		return
	}
	r.fb = NewFrameBuffer(width, height)
}

// RenderFrame populates the frame buffer for one rotation state and
// returns it. Collisions at a cell are settled by the depth test:
// the sample closest to the viewer wins regardless of sweep order.
// The returned buffer is valid until the next RenderFrame or Resize.
func (r *Renderer) RenderFrame(rot Rotation) *FrameBuffer {
	r.fb.Reset()
	Sweep(rot, r.params, r.fb.Width(), r.fb.Height(), func(s Sample) {
		r.fb.Plot(s.Row, s.Col, s.Depth, s.Glyph)
	})
	return r.fb
}

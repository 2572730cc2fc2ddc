// Package animate owns the animation loop: each tick it asks the view
// to draw one frame for the current rotation state, advances the
// angles by fixed increments, and paces the next tick with a rate
// limiter.
package animate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/unklstewy/term-torus/pkg/torus"
)

// Renderer draws one complete frame for the given rotation state.
// Implementations pair the torus frame renderer with a terminal sink;
// any error they return is treated as fatal and stops the loop.
type Renderer interface {
	Frame(rot torus.Rotation) error
}

// Options configures the driver. The zero value is usable but
// unpaced; DefaultOptions returns the standard animation settings.
type Options struct {
	// Initial is the rotation state of the first frame
	Initial torus.Rotation

	// DeltaA is the per-tick increment of the A angle in radians
	DeltaA float64

	// DeltaB is the per-tick increment of the B angle in radians
	DeltaB float64

	// TickInterval is the wall-clock pacing between ticks; zero or
	// negative disables pacing
	TickInterval time.Duration
}

// DefaultOptions returns the standard increments and tick pacing.
func DefaultOptions() Options {
	return Options{
		DeltaA:       torus.DefaultDeltaA,
		DeltaB:       torus.DefaultDeltaB,
		TickInterval: 15 * time.Millisecond,
	}
}

// Driver runs the render loop. It owns the rotation state exclusively;
// the view reads it one frame at a time.
type Driver struct {
	view    Renderer
	limiter *rate.Limiter
	rot     torus.Rotation
	deltaA  float64
	deltaB  float64

	// maxTicks bounds the loop for the test harness; zero runs
	// unbounded, which is the production contract
	maxTicks int
	ticks    int
}

// New creates a driver over a frame view.
func New(view Renderer, opts Options) *Driver {
	limit := rate.Inf
	if opts.TickInterval > 0 {
		limit = rate.Every(opts.TickInterval)
	}
	return &Driver{
		view:    view,
		limiter: rate.NewLimiter(limit, 1),
		rot:     opts.Initial,
		deltaA:  opts.DeltaA,
		deltaB:  opts.DeltaB,
	}
}

// Rotation returns the current rotation state.
func (d *Driver) Rotation() torus.Rotation {
	return d.rot
}

// Ticks returns the number of completed ticks.
func (d *Driver) Ticks() int {
	return d.ticks
}

// Run executes the loop until the context is cancelled, the view
// fails, or the test-harness tick bound is reached. View failures are
// not retried: a non-functional terminal ends the program.
func (d *Driver) Run(ctx context.Context) error {
	for {
		if err := d.view.Frame(d.rot); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}

		d.rot.Advance(d.deltaA, d.deltaB)
		d.ticks++
		if d.maxTicks > 0 && d.ticks >= d.maxTicks {
			return nil
		}

		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
	}
}

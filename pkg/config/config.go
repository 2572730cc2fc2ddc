// Package config holds the application configuration for the torus
// animation. The binaries run with zero arguments: they consult the
// conventional config path and fall back to defaults when no file is
// present, so configuration is always optional.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/unklstewy/term-torus/pkg/animate"
	"github.com/unklstewy/term-torus/pkg/torus"
)

// DefaultPath is the conventional location binaries consult when no
// explicit path is wired in.
const DefaultPath = "configs/term-torus.json"

// Display backends selectable via DisplayConfig.Backend.
const (
	// BackendTUI is the Bubble Tea program with buffered frames (default)
	BackendTUI = "tui"

	// BackendBuffered is the tcell sink with depth-buffered frames
	BackendBuffered = "buffered"

	// BackendImmediate is the tcell sink drawing samples directly with
	// no depth test; occlusion artifacts are expected in this mode
	BackendImmediate = "immediate"
)

// Config represents the complete application configuration.
type Config struct {
	Torus     TorusConfig     `json:"torus"`
	Animation AnimationConfig `json:"animation"`
	Display   DisplayConfig   `json:"display"`
}

// TorusConfig contains the projection constants. They are read once at
// startup and stay fixed for the process lifetime.
type TorusConfig struct {
	// TubeRadius is the torus cross-section radius (default: 1.0)
	TubeRadius float64 `json:"tube_radius"`

	// RingRadius is the radius of revolution (default: 2.0)
	RingRadius float64 `json:"ring_radius"`

	// ViewerDistance is the depth offset keeping z positive; it must
	// exceed tube_radius+ring_radius (default: 5.0)
	ViewerDistance float64 `json:"viewer_distance"`

	// ThetaStep is the sampling step around the cross-section circle.
	// Finer steps mean denser sampling and more work per frame
	// (default: 0.07)
	ThetaStep float64 `json:"theta_step"`

	// PhiStep is the sampling step around the axis of revolution
	// (default: 0.02)
	PhiStep float64 `json:"phi_step"`
}

// Params converts the section to renderer constants.
func (c TorusConfig) Params() torus.Params {
	return torus.Params{
		TubeRadius:     c.TubeRadius,
		RingRadius:     c.RingRadius,
		ViewerDistance: c.ViewerDistance,
		ThetaStep:      c.ThetaStep,
		PhiStep:        c.PhiStep,
	}
}

// AnimationConfig contains the tick contract of the animation driver.
type AnimationConfig struct {
	// DeltaA is the per-tick increment of the A angle in radians
	// (default: 0.07)
	DeltaA float64 `json:"delta_a"`

	// DeltaB is the per-tick increment of the B angle in radians
	// (default: 0.03)
	DeltaB float64 `json:"delta_b"`

	// TickMs is the pacing interval between ticks in milliseconds
	// (default: 15)
	TickMs int `json:"tick_ms"`

	// InitialA and InitialB are the starting angles in radians
	InitialA float64 `json:"initial_a"`
	InitialB float64 `json:"initial_b"`
}

// Options converts the section to driver options.
func (c AnimationConfig) Options() animate.Options {
	return animate.Options{
		Initial:      torus.Rotation{A: c.InitialA, B: c.InitialB},
		DeltaA:       c.DeltaA,
		DeltaB:       c.DeltaB,
		TickInterval: time.Duration(c.TickMs) * time.Millisecond,
	}
}

// DisplayConfig contains the terminal presentation settings.
type DisplayConfig struct {
	// Backend selects the display sink: "tui", "buffered", or
	// "immediate" (default: "tui")
	Backend string `json:"backend"`

	// Width and Height pin a fixed virtual screen size in character
	// cells; zero means follow the live terminal size
	Width  int `json:"width"`
	Height int `json:"height"`

	// ShowHelp displays the quit-key hint below the animation in the
	// TUI backend (default: true)
	ShowHelp bool `json:"show_help"`
}

// DefaultConfig returns the standard animation: the classic torus
// geometry on the buffered TUI backend at the live terminal size.
func DefaultConfig() *Config {
	return &Config{
		Torus: TorusConfig{
			TubeRadius:     1.0,
			RingRadius:     2.0,
			ViewerDistance: 5.0,
			ThetaStep:      0.07,
			PhiStep:        0.02,
		},
		Animation: AnimationConfig{
			DeltaA: torus.DefaultDeltaA,
			DeltaB: torus.DefaultDeltaB,
			TickMs: 15,
		},
		Display: DisplayConfig{
			Backend:  BackendTUI,
			ShowHelp: true,
		},
	}
}

// Load reads configuration from a JSON file. If the file doesn't
// exist, returns the default configuration; fields absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration against the renderer's
// preconditions and the known backends.
func (c *Config) Validate() error {
	if err := c.Torus.Params().Validate(); err != nil {
		return err
	}
	switch c.Display.Backend {
	case BackendTUI, BackendBuffered, BackendImmediate:
	default:
		return fmt.Errorf("unknown display backend %q", c.Display.Backend)
	}
	if c.Animation.TickMs < 0 {
		return fmt.Errorf("tick interval must not be negative, got %dms", c.Animation.TickMs)
	}
	if c.Display.Width < 0 || c.Display.Height < 0 {
		return fmt.Errorf("fixed screen size must not be negative, got %dx%d", c.Display.Width, c.Display.Height)
	}
	return nil
}

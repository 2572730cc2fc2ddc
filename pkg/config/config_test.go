package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that DefaultConfig returns valid defaults.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Torus defaults
	if cfg.Torus.TubeRadius != 1.0 {
		t.Errorf("Expected tube radius 1.0, got %v", cfg.Torus.TubeRadius)
	}
	if cfg.Torus.RingRadius != 2.0 {
		t.Errorf("Expected ring radius 2.0, got %v", cfg.Torus.RingRadius)
	}
	if cfg.Torus.ViewerDistance != 5.0 {
		t.Errorf("Expected viewer distance 5.0, got %v", cfg.Torus.ViewerDistance)
	}
	if cfg.Torus.ThetaStep != 0.07 {
		t.Errorf("Expected theta step 0.07, got %v", cfg.Torus.ThetaStep)
	}
	if cfg.Torus.PhiStep != 0.02 {
		t.Errorf("Expected phi step 0.02, got %v", cfg.Torus.PhiStep)
	}

	// Animation defaults
	if cfg.Animation.DeltaA != 0.07 {
		t.Errorf("Expected delta A 0.07, got %v", cfg.Animation.DeltaA)
	}
	if cfg.Animation.DeltaB != 0.03 {
		t.Errorf("Expected delta B 0.03, got %v", cfg.Animation.DeltaB)
	}
	if cfg.Animation.TickMs != 15 {
		t.Errorf("Expected tick interval 15ms, got %d", cfg.Animation.TickMs)
	}
	if cfg.Animation.InitialA != 0 || cfg.Animation.InitialB != 0 {
		t.Error("Expected zero initial angles by default")
	}

	// Display defaults
	if cfg.Display.Backend != BackendTUI {
		t.Errorf("Expected tui backend, got %s", cfg.Display.Backend)
	}
	if cfg.Display.Width != 0 || cfg.Display.Height != 0 {
		t.Error("Expected live terminal size (0x0) by default")
	}
	if !cfg.Display.ShowHelp {
		t.Error("Expected help hint enabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got: %v", err)
	}
}

// TestLoadNonExistentFile tests that Load returns default config when
// the file doesn't exist.
func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/term-torus.json")
	if err != nil {
		t.Fatalf("Expected no error for non-existent file, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected default config, got nil")
	}
	if cfg.Torus.RingRadius != 2.0 {
		t.Error("Did not get default config for non-existent file")
	}
}

// TestLoadPartialConfig tests that fields absent from the file keep
// their defaults.
func TestLoadPartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.json")

	partial := `{"display": {"backend": "immediate", "show_help": false}}`
	if err := os.WriteFile(configPath, []byte(partial), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Display.Backend != BackendImmediate {
		t.Errorf("Expected immediate backend, got %s", cfg.Display.Backend)
	}
	if cfg.Display.ShowHelp {
		t.Error("Expected help hint disabled")
	}
	// untouched sections keep defaults
	if cfg.Torus.ViewerDistance != 5.0 {
		t.Errorf("Expected default viewer distance, got %v", cfg.Torus.ViewerDistance)
	}
	if cfg.Animation.TickMs != 15 {
		t.Errorf("Expected default tick interval, got %d", cfg.Animation.TickMs)
	}
}

// TestSaveAndLoadRoundTrip tests that saved configuration loads back
// with the same values.
func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sub", "roundtrip.json")

	cfg := DefaultConfig()
	cfg.Torus.TubeRadius = 1.2
	cfg.Torus.ViewerDistance = 6.5
	cfg.Animation.InitialA = 1.0
	cfg.Animation.InitialB = 1.0
	cfg.Display.Backend = BackendBuffered
	cfg.Display.Width = 100
	cfg.Display.Height = 30

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Torus.TubeRadius != 1.2 {
		t.Errorf("Expected tube radius 1.2, got %v", loaded.Torus.TubeRadius)
	}
	if loaded.Torus.ViewerDistance != 6.5 {
		t.Errorf("Expected viewer distance 6.5, got %v", loaded.Torus.ViewerDistance)
	}
	if loaded.Animation.InitialA != 1.0 || loaded.Animation.InitialB != 1.0 {
		t.Errorf("Expected initial angles (1, 1), got (%v, %v)",
			loaded.Animation.InitialA, loaded.Animation.InitialB)
	}
	if loaded.Display.Backend != BackendBuffered {
		t.Errorf("Expected buffered backend, got %s", loaded.Display.Backend)
	}
	if loaded.Display.Width != 100 || loaded.Display.Height != 30 {
		t.Errorf("Expected 100x30 fixed size, got %dx%d", loaded.Display.Width, loaded.Display.Height)
	}
}

// TestLoadInvalidJSON tests that malformed files surface a parse error.
func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "broken.json")

	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Expected parse error for malformed config, got nil")
	}
}

// TestValidate checks rejection of configurations that violate the
// renderer's preconditions or name unknown backends.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "Defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "Viewer inside torus",
			mutate:  func(c *Config) { c.Torus.ViewerDistance = 2.5 },
			wantErr: true,
		},
		{
			name:    "Unknown backend",
			mutate:  func(c *Config) { c.Display.Backend = "curses" },
			wantErr: true,
		},
		{
			name:    "Negative tick interval",
			mutate:  func(c *Config) { c.Animation.TickMs = -5 },
			wantErr: true,
		},
		{
			name:    "Negative fixed size",
			mutate:  func(c *Config) { c.Display.Width = -80 },
			wantErr: true,
		},
		{
			name:    "Immediate backend",
			mutate:  func(c *Config) { c.Display.Backend = BackendImmediate },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

// TestAnimationOptions verifies the conversion to driver options.
func TestAnimationOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Animation.InitialA = 1.0
	cfg.Animation.InitialB = 0.5
	cfg.Animation.TickMs = 33

	opts := cfg.Animation.Options()
	if opts.Initial.A != 1.0 || opts.Initial.B != 0.5 {
		t.Errorf("Initial rotation = %+v, want (1, 0.5)", opts.Initial)
	}
	if opts.DeltaA != 0.07 || opts.DeltaB != 0.03 {
		t.Errorf("Deltas = (%v, %v), want (0.07, 0.03)", opts.DeltaA, opts.DeltaB)
	}
	if opts.TickInterval != 33*time.Millisecond {
		t.Errorf("Tick interval = %v, want 33ms", opts.TickInterval)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Grid.Width != 25 || cfg.Grid.Height != 25 {
		t.Errorf("expected 25x25 grid, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Run.TimeSteps != 100 {
		t.Errorf("expected 100 time steps, got %d", cfg.Run.TimeSteps)
	}
	if cfg.Run.FPS != 20 {
		t.Errorf("expected 20 fps, got %d", cfg.Run.FPS)
	}
	if cfg.Run.Output != "nematode.gif" {
		t.Errorf("expected nematode.gif output, got %q", cfg.Run.Output)
	}
	if cfg.Field.Variant != "gradient" {
		t.Errorf("expected gradient field variant, got %q", cfg.Field.Variant)
	}
	if cfg.Field.DecayLength != 20.0 {
		t.Errorf("expected decay length 20.0, got %f", cfg.Field.DecayLength)
	}
	if cfg.Agents.Count != 1 {
		t.Errorf("expected 1 agent, got %d", cfg.Agents.Count)
	}
}

func TestLoadMergesUserConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	user := []byte("grid:\n  width: 40\nrun:\n  time_steps: 7\n")
	if err := os.WriteFile(path, user, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading user config: %v", err)
	}

	// Overridden fields
	if cfg.Grid.Width != 40 {
		t.Errorf("expected width 40, got %d", cfg.Grid.Width)
	}
	if cfg.Run.TimeSteps != 7 {
		t.Errorf("expected 7 time steps, got %d", cfg.Run.TimeSteps)
	}

	// Untouched fields keep defaults
	if cfg.Grid.Height != 25 {
		t.Errorf("expected default height 25, got %d", cfg.Grid.Height)
	}
	if cfg.Run.FPS != 20 {
		t.Errorf("expected default fps 20, got %d", cfg.Run.FPS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.Width = 33

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if back.Grid.Width != 33 {
		t.Errorf("expected round-tripped width 33, got %d", back.Grid.Width)
	}
}

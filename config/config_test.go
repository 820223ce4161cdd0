package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Population.Capacity != 1500 {
		t.Errorf("capacity = %d, want 1500", cfg.Population.Capacity)
	}
	if cfg.Sensing.Samples != 15 {
		t.Errorf("samples = %d, want 15", cfg.Sensing.Samples)
	}
	if cfg.Events.EraDuration != 1500 {
		t.Errorf("era_duration = %d, want 1500", cfg.Events.EraDuration)
	}
	if !cfg.Simulation.LiveGrowth {
		t.Error("live_growth should default to true")
	}
	if cfg.Simulation.MaxBirthsPerTick != 1500 {
		t.Errorf("max_births_per_tick = %d, want 1500", cfg.Simulation.MaxBirthsPerTick)
	}
	if cfg.Derived.SpawnRange != 150 {
		t.Errorf("derived spawn range = %v, want 150", cfg.Derived.SpawnRange)
	}
	if cfg.Derived.SphereCenter != -612 {
		t.Errorf("derived sphere centre = %v, want -612", cfg.Derived.SphereCenter)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	overlay := []byte("population:\n  capacity: 42\nsimulation:\n  live_growth: false\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load overlay: %v", err)
	}

	if cfg.Population.Capacity != 42 {
		t.Errorf("capacity = %d, want 42", cfg.Population.Capacity)
	}
	if cfg.Simulation.LiveGrowth {
		t.Error("live_growth should be overridden to false")
	}
	// Untouched values keep their defaults
	if cfg.Agent.MaxAge != 3000 {
		t.Errorf("max_age = %d, want 3000", cfg.Agent.MaxAge)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		overlay string
	}{
		{"zero capacity", "population:\n  capacity: 0\n"},
		{"zero birth cap", "simulation:\n  max_births_per_tick: 0\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Initial = 7

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Population.Initial != 7 {
		t.Errorf("initial = %d, want 7", loaded.Population.Initial)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Engine != "lmp" {
		t.Errorf("Expected default engine 'lmp', got %q", s.Engine)
	}
	if len(s.DeckDirs) != 1 || s.DeckDirs[0] != "decks" {
		t.Errorf("Expected default deck dir 'decks', got %v", s.DeckDirs)
	}
	if s.OutputDir != "out" {
		t.Errorf("Expected default output dir 'out', got %q", s.OutputDir)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	s, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Missing file must yield defaults, got error: %v", err)
	}
	if s.Engine != "lmp" {
		t.Errorf("Expected defaults, got %+v", s)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := []byte("engine: /opt/lammps/bin/lmp\noutput_dir: scratch\ndeck_dirs: [decks, shared/decks]\n")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	s, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if s.Engine != "/opt/lammps/bin/lmp" {
		t.Errorf("Expected engine override, got %q", s.Engine)
	}
	if s.OutputDir != "scratch" {
		t.Errorf("Expected output dir 'scratch', got %q", s.OutputDir)
	}
	if len(s.DeckDirs) != 2 {
		t.Errorf("Expected 2 deck dirs, got %v", s.DeckDirs)
	}
}

func TestLoadFromBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("engine: [oops\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LMPGEN_ENGINE", "mpirun-lmp")
	t.Setenv("LMPGEN_ENGINE_ARGS", "-sf omp -pk omp 4")
	t.Setenv("LMPGEN_OUTPUT_DIR", "runs")

	s := DefaultSettings()
	s.ApplyEnv()

	if s.Engine != "mpirun-lmp" {
		t.Errorf("Expected env engine override, got %q", s.Engine)
	}
	if len(s.EngineArgs) != 5 {
		t.Errorf("Expected 5 engine args, got %v", s.EngineArgs)
	}
	if s.OutputDir != "runs" {
		t.Errorf("Expected env output dir override, got %q", s.OutputDir)
	}
}

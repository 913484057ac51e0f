package utils

import (
	"os"
	"path/filepath"
	"testing"
)

const discoveryDeck = `units: lj
boundary: p p p
read_data: data.lj
pair_style: lj/cut 2.5
timestep: 0.005
run1: 250
`

func TestDiscoverDecks(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	writeFile("alpha.yaml", discoveryDeck)
	writeFile("broken.yaml", "units: [oops\n")
	writeFile("notes.txt", "not a deck")

	decks, err := DiscoverDecks([]string{dir, filepath.Join(dir, "missing")})
	if err != nil {
		t.Fatalf("Discovery failed: %v", err)
	}

	if len(decks) != 1 {
		t.Fatalf("Expected 1 deck, got %d: %v", len(decks), decks)
	}
	d := decks[0]
	if d.Name != "alpha" {
		t.Errorf("Expected deck name 'alpha', got %q", d.Name)
	}
	if d.Directives != 6 {
		t.Errorf("Expected 6 directives, got %d", d.Directives)
	}
	if d.RunSteps != 250 {
		t.Errorf("Expected 250 run steps, got %d", d.RunSteps)
	}
}

func TestDiscoverDecksEmpty(t *testing.T) {
	decks, err := DiscoverDecks([]string{filepath.Join(t.TempDir(), "nothing")})
	if err != nil {
		t.Fatalf("Discovery failed: %v", err)
	}
	if len(decks) != 0 {
		t.Errorf("Expected no decks, got %v", decks)
	}
}

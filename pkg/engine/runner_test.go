package engine

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRunnerAvailable(t *testing.T) {
	if err := NewRunner("sh").Available(); err != nil {
		t.Errorf("Expected sh to be available: %v", err)
	}
	if err := NewRunner("definitely-not-an-md-engine").Available(); err == nil {
		t.Error("Expected error for missing binary")
	}
}

func TestRunnerRun(t *testing.T) {
	// "true" ignores the -in argument and exits cleanly, which is all the
	// runner contract requires of the opaque engine.
	r := NewRunner("true")
	runID, err := r.Run(context.Background(), "deck.in")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Errorf("Expected a UUID run id, got %q", runID)
	}
}

func TestRunnerMissingBinary(t *testing.T) {
	r := NewRunner("definitely-not-an-md-engine")
	if _, err := r.Run(context.Background(), "deck.in"); err == nil {
		t.Error("Expected error for missing engine binary")
	}
}

func TestRunnerFailingEngine(t *testing.T) {
	r := NewRunner("false")
	if _, err := r.Run(context.Background(), "deck.in"); err == nil {
		t.Error("Expected error for failing engine")
	}
}

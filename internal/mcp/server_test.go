package mcp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/meltforce/rpecalc/internal/rpe"
	"github.com/meltforce/rpecalc/internal/storage"
)

// TestLocalWarmupSets verifies the in-process calculator delegates to the
// estimator.
func TestLocalWarmupSets(t *testing.T) {
	l := &Local{Est: &rpe.Estimator{}}

	sets, err := l.WarmupSets(context.Background(), 8, 140, 5)
	if err != nil {
		t.Fatalf("WarmupSets: %v", err)
	}
	if len(sets) != 4 {
		t.Fatalf("len(sets) = %d, want 4", len(sets))
	}
	if sets[1].Weight != 97.5 {
		t.Errorf("sets[1].Weight = %v, want 97.5", sets[1].Weight)
	}
}

// TestLocalMaxRepsModes verifies both predictor modes through Local.
func TestLocalMaxRepsModes(t *testing.T) {
	legacy := &Local{Est: &rpe.Estimator{}}
	if got, err := legacy.MaxReps(context.Background(), 100, 9); err != nil || got != 1 {
		t.Errorf("legacy MaxReps = %d, %v, want 1, nil", got, err)
	}

	corrected := &Local{Est: &rpe.Estimator{Corrected: true}}
	if got, err := corrected.MaxReps(context.Background(), 100, 9); err != nil || got != 2 {
		t.Errorf("corrected MaxReps = %d, %v, want 2, nil", got, err)
	}
}

// TestLocalHistoryWithoutStore verifies History degrades to empty when no
// store is attached.
func TestLocalHistoryWithoutStore(t *testing.T) {
	l := &Local{Est: &rpe.Estimator{}}
	entries, err := l.History(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(history) = %d, want 0", len(entries))
	}
}

// TestLocalHistoryWithStore verifies History reads from an attached store.
func TestLocalHistoryWithStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer store.Close()

	if _, err := store.RecordCalculation(context.Background(), storage.KindMaxReps, 9, 100, nil, 1); err != nil {
		t.Fatal(err)
	}

	l := &Local{Est: &rpe.Estimator{}, Store: store}
	entries, err := l.History(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(history) = %d, want 1", len(entries))
	}
}

// TestLocalChart verifies Chart returns the six charted RPE rows.
func TestLocalChart(t *testing.T) {
	l := &Local{Est: &rpe.Estimator{}}
	rows, err := l.Chart(context.Background())
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if len(rows) != 6 {
		t.Errorf("len(chart) = %d, want 6", len(rows))
	}
}

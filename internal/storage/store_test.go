package storage

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/bookloader/internal/sim"
)

func sampleRun(t *testing.T) *sim.Result {
	t.Helper()
	result, err := sim.Run(context.Background(), sim.Config{Dt: 0.5, Duration: 2, Scale: 0.4})
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestStoreSaveLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	result := sampleRun(t)
	runID, err := store.Save(RunMetadata{Name: "test", Scale: 0.4, Policy: "restart", Dt: 0.5, Duration: 2}, result)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.Scale != 0.4 {
		t.Errorf("expected scale 0.4, got %f", meta.Scale)
	}
	if meta.Metrics["cycles"] != 1 {
		t.Errorf("expected 1 cycle, got %v", meta.Metrics["cycles"])
	}
	if len(meta.Events) != len(result.Events) {
		t.Errorf("expected %d events, got %d", len(result.Events), len(meta.Events))
	}
	if meta.Events[0].Name != "tap" {
		t.Errorf("expected first event tap, got %s", meta.Events[0].Name)
	}
}

func TestStoreSaveFailureLeavesNoRun(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	result := sampleRun(t)
	result.Metrics["spread"] = math.NaN()
	if _, err := store.Save(RunMetadata{Name: "broken"}, result); err == nil {
		t.Fatal("expected NaN metric to fail encoding")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected failed save to remove its run dir, found %d entries", len(entries))
	}
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadSamples(t *testing.T) {
	store := New(t.TempDir())
	result := sampleRun(t)

	runID, err := store.Save(RunMetadata{}, result)
	if err != nil {
		t.Fatal(err)
	}

	table, err := store.LoadSamples(runID)
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	if len(table.Times) != 5 {
		t.Errorf("expected 5 rows, got %d", len(table.Times))
	}
	if len(table.Columns) != len(sim.Columns()) {
		t.Errorf("expected %d columns, got %d", len(sim.Columns()), len(table.Columns))
	}

	angles := table.Column("holder_angle")
	if len(angles) != 5 || angles[0] != -90 {
		t.Errorf("unexpected holder angles %v", angles)
	}
	if table.Column("missing") != nil {
		t.Error("expected nil for missing column")
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	result := sampleRun(t)
	first, _ := store.Save(RunMetadata{Name: "a"}, result)
	second, _ := store.Save(RunMetadata{Name: "b"}, result)

	// stray files are skipped
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.MkdirAll(filepath.Join(dir, "broken"), 0755)

	runs, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected oldest first, got %s, %s", runs[0].ID, runs[1].ID)
	}

	latest, err := store.Latest()
	if err != nil || latest != second {
		t.Errorf("expected latest %s, got %s (%v)", second, latest, err)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
	if _, err := store.Latest(); err == nil {
		t.Error("expected error with no runs")
	}
}

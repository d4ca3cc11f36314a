package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	runs := []Run{
		{RunID: "run-1", Timestamp: base, FileCount: 3, DiagnosticCount: 5, RuleCounts: map[string]int{"SA1400": 4, "SA1401": 1}},
		{RunID: "run-2", Timestamp: base.Add(time.Hour), FileCount: 3, DiagnosticCount: 2, RuleCounts: map[string]int{"SA1400": 2}},
	}
	for _, run := range runs {
		if err := store.SaveRun(run); err != nil {
			t.Fatal(err)
		}
	}

	loaded, err := store.LoadRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(loaded))
	}
	if loaded[0].RunID != "run-1" || loaded[1].RunID != "run-2" {
		t.Errorf("expected runs ordered oldest first, got %s then %s", loaded[0].RunID, loaded[1].RunID)
	}
	if loaded[0].RuleCounts["SA1400"] != 4 {
		t.Errorf("expected SA1400 count 4, got %d", loaded[0].RuleCounts["SA1400"])
	}
	if loaded[1].DiagnosticCount != 2 {
		t.Errorf("expected 2 diagnostics in run-2, got %d", loaded[1].DiagnosticCount)
	}
}

func TestStoreLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		run := Run{RunID: id, Timestamp: base.Add(time.Duration(i) * time.Minute), FileCount: 1}
		if err := store.SaveRun(run); err != nil {
			t.Fatal(err)
		}
	}

	loaded, err := store.LoadRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(loaded))
	}
	// The newest two, still oldest first.
	if loaded[0].RunID != "b" || loaded[1].RunID != "c" {
		t.Errorf("expected b then c, got %s then %s", loaded[0].RunID, loaded[1].RunID)
	}
}

func TestStoreUpsert(t *testing.T) {
	store := openTestStore(t)

	run := Run{RunID: "run-1", Timestamp: time.Now().UTC(), FileCount: 1, DiagnosticCount: 1, RuleCounts: map[string]int{"SA1400": 1}}
	if err := store.SaveRun(run); err != nil {
		t.Fatal(err)
	}
	run.DiagnosticCount = 7
	run.RuleCounts["SA1400"] = 7
	if err := store.SaveRun(run); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 run after upsert, got %d", len(loaded))
	}
	if loaded[0].DiagnosticCount != 7 || loaded[0].RuleCounts["SA1400"] != 7 {
		t.Errorf("expected updated counts, got %+v", loaded[0])
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected empty path to be rejected")
	}
}

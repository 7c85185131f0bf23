package sqlite

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/jules-levecq/pokemonML/internal/ml"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestSampleRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := []ml.Sample{
		{BattleID: "b1", Features: []float64{0.1, 0.2, 0.3}, Label: 1},
		{BattleID: "b2", Features: []float64{0.4, 0.5, 0.6}, Label: 0},
	}
	if err := store.SaveSamples("run-a", in); err != nil {
		t.Fatalf("SaveSamples returned error: %v", err)
	}

	n, err := store.CountSamples()
	if err != nil {
		t.Fatalf("CountSamples returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}

	out, err := store.Samples()
	if err != nil {
		t.Fatalf("Samples returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d samples, want 2", len(out))
	}
	for i := range in {
		if out[i].BattleID != in[i].BattleID {
			t.Fatalf("sample %d id = %s, want %s", i, out[i].BattleID, in[i].BattleID)
		}
		if !reflect.DeepEqual(out[i].Features, in[i].Features) {
			t.Fatalf("sample %d features = %v, want %v", i, out[i].Features, in[i].Features)
		}
		if out[i].Label != in[i].Label {
			t.Fatalf("sample %d label = %v, want %v", i, out[i].Label, in[i].Label)
		}
	}
}

func TestSamplesAccumulateAcrossRuns(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveSamples("run-a", []ml.Sample{{BattleID: "a1", Features: []float64{1}, Label: 1}}); err != nil {
		t.Fatalf("save first batch: %v", err)
	}
	if err := store.SaveSamples("run-b", []ml.Sample{{BattleID: "b1", Features: []float64{2}, Label: 0}}); err != nil {
		t.Fatalf("save second batch: %v", err)
	}

	out, err := store.Samples()
	if err != nil {
		t.Fatalf("Samples returned error: %v", err)
	}
	if len(out) != 2 || out[0].BattleID != "a1" || out[1].BattleID != "b1" {
		t.Fatalf("unexpected sample order: %+v", out)
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)

	older := TrainingRun{
		ID:           "run-old",
		StartedAt:    time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt:   time.Date(2026, 8, 1, 10, 5, 0, 0, time.UTC),
		Hyperparams:  `{"epochs":100}`,
		Accuracy:     0.81,
		Loss:         0.42,
		ArtifactPath: "models/model-old.json",
	}
	newer := TrainingRun{
		ID:           "run-new",
		StartedAt:    time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		FinishedAt:   time.Date(2026, 8, 2, 10, 7, 0, 0, time.UTC),
		Hyperparams:  `{"epochs":200}`,
		Accuracy:     0.88,
		Loss:         0.31,
		ArtifactPath: "models/model-new.json",
	}
	if err := store.RecordRun(older); err != nil {
		t.Fatalf("record older run: %v", err)
	}
	if err := store.RecordRun(newer); err != nil {
		t.Fatalf("record newer run: %v", err)
	}

	runs, err := store.Runs()
	if err != nil {
		t.Fatalf("Runs returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-new" || runs[1].ID != "run-old" {
		t.Fatalf("runs not newest first: %s, %s", runs[0].ID, runs[1].ID)
	}
	if !runs[0].StartedAt.Equal(newer.StartedAt) {
		t.Fatalf("started at = %v, want %v", runs[0].StartedAt, newer.StartedAt)
	}
	if runs[0].Accuracy != 0.88 || runs[0].Loss != 0.31 {
		t.Fatalf("metrics mismatch: %+v", runs[0])
	}
	if runs[0].Hyperparams != `{"epochs":200}` {
		t.Fatalf("hyperparams = %s", runs[0].Hyperparams)
	}
}

func TestRecordRunDuplicateID(t *testing.T) {
	store := openTestStore(t)
	run := TrainingRun{ID: "dup", StartedAt: time.Now(), FinishedAt: time.Now()}
	if err := store.RecordRun(run); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := store.RecordRun(run); err == nil {
		t.Fatal("expected error for duplicate run id")
	}
}

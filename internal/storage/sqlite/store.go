// Package sqlite persists generated training samples and training-run
// records in a local SQLite database.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jules-levecq/pokemonML/internal/ml"
)

// TrainingRun is one recorded train invocation and its outcome.
type TrainingRun struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	Hyperparams  string // JSON blob
	Accuracy     float64
	Loss         float64
	ArtifactPath string
}

// Store provides SQLite-backed persistence.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) a store at the given path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS samples (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	battle_id TEXT NOT NULL,
	features TEXT NOT NULL,
	label REAL NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id);
CREATE TABLE IF NOT EXISTS training_runs (
	id TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	hyperparams TEXT NOT NULL,
	accuracy REAL NOT NULL,
	loss REAL NOT NULL,
	artifact_path TEXT NOT NULL
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// SaveSamples stores a batch of samples under one generation run id.
func (s *Store) SaveSamples(runID string, samples []ml.Sample) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO samples (run_id, battle_id, features, label, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := toMillis(time.Now())
	for _, sample := range samples {
		features, err := json.Marshal(sample.Features)
		if err != nil {
			return fmt.Errorf("marshal features: %w", err)
		}
		if _, err := stmt.Exec(runID, sample.BattleID, string(features), sample.Label, now); err != nil {
			return fmt.Errorf("insert sample %s: %w", sample.BattleID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit samples: %w", err)
	}
	return nil
}

// Samples loads every stored sample, oldest first.
func (s *Store) Samples() ([]ml.Sample, error) {
	rows, err := s.db.Query(`SELECT battle_id, features, label FROM samples ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []ml.Sample
	for rows.Next() {
		var sample ml.Sample
		var features string
		if err := rows.Scan(&sample.BattleID, &features, &sample.Label); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		if err := json.Unmarshal([]byte(features), &sample.Features); err != nil {
			return nil, fmt.Errorf("unmarshal features for %s: %w", sample.BattleID, err)
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return samples, nil
}

// CountSamples returns the number of stored samples.
func (s *Store) CountSamples() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM samples`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return n, nil
}

// RecordRun stores a training-run record.
func (s *Store) RecordRun(run TrainingRun) error {
	_, err := s.db.Exec(
		`INSERT INTO training_runs (id, started_at, finished_at, hyperparams, accuracy, loss, artifact_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, toMillis(run.StartedAt), toMillis(run.FinishedAt),
		run.Hyperparams, run.Accuracy, run.Loss, run.ArtifactPath,
	)
	if err != nil {
		return fmt.Errorf("insert training run %s: %w", run.ID, err)
	}
	return nil
}

// Runs lists stored training runs, newest first.
func (s *Store) Runs() ([]TrainingRun, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, hyperparams, accuracy, loss, artifact_path
		 FROM training_runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query training runs: %w", err)
	}
	defer rows.Close()

	var runs []TrainingRun
	for rows.Next() {
		var run TrainingRun
		var started, finished int64
		if err := rows.Scan(&run.ID, &started, &finished, &run.Hyperparams, &run.Accuracy, &run.Loss, &run.ArtifactPath); err != nil {
			return nil, fmt.Errorf("scan training run: %w", err)
		}
		run.StartedAt = fromMillis(started)
		run.FinishedAt = fromMillis(finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate training runs: %w", err)
	}
	return runs, nil
}

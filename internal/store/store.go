// Package store persists scoring runs and their rankings in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sidorvx/CancerCommonTool/internal/efficacy"
	"github.com/sidorvx/CancerCommonTool/internal/pipeline"
)

// Run is one stored scoring run.
type Run struct {
	ID             int64
	CreatedAt      time.Time
	Cohort         string
	Affinity       string
	Samples        int
	SignatureGenes int
	Drugs          int
}

// Store is a handle to the run-history database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at      TEXT NOT NULL,
	cohort          TEXT NOT NULL,
	affinity        TEXT NOT NULL,
	samples         INTEGER NOT NULL,
	signature_genes INTEGER NOT NULL,
	drugs           INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_scores (
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	drug   TEXT NOT NULL,
	score  REAL NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun writes a run and its full ranking. Returns the run ID.
func (s *Store) SaveRun(res *pipeline.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.Exec(
		`INSERT INTO runs (created_at, cohort, affinity, samples, signature_genes, drugs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.StartedAt.UTC().Format(time.RFC3339),
		res.CohortPath, res.AffinityPath,
		res.Samples, res.SignatureGenes, len(res.Ranking),
	)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}

	ins, err := tx.Prepare(`INSERT INTO run_scores (run_id, position, drug, score) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}
	defer ins.Close()
	for i, d := range res.Ranking {
		if _, err := ins.Exec(id, i+1, d.Drug, d.Score); err != nil {
			return 0, fmt.Errorf("save run scores: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}
	return id, nil
}

// Runs lists stored runs, most recent first. limit <= 0 lists all.
func (s *Store) Runs(limit int) ([]Run, error) {
	q := `SELECT id, created_at, cohort, affinity, samples, signature_genes, drugs
	      FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Cohort, &r.Affinity, &r.Samples, &r.SignatureGenes, &r.Drugs); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Scores returns the stored ranking of one run, in rank order.
func (s *Store) Scores(runID int64) ([]efficacy.DrugScore, error) {
	rows, err := s.db.Query(
		`SELECT drug, score FROM run_scores WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("load run %d: %w", runID, err)
	}
	defer rows.Close()

	var scores []efficacy.DrugScore
	for rows.Next() {
		var d efficacy.DrugScore
		if err := rows.Scan(&d.Drug, &d.Score); err != nil {
			return nil, fmt.Errorf("load run %d: %w", runID, err)
		}
		scores = append(scores, d)
	}
	return scores, rows.Err()
}

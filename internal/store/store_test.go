package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sidorvx/CancerCommonTool/internal/efficacy"
	"github.com/sidorvx/CancerCommonTool/internal/pipeline"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "state", "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		StartedAt:      time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		CohortPath:     "cohort.tsv",
		AffinityPath:   "aff.xlsx",
		Samples:        12,
		SignatureGenes: 80,
		Ranking: []efficacy.DrugScore{
			{Drug: "dasatinib", Score: 0.91},
			{Drug: "imatinib", Score: 0.55},
		},
	}
}

func TestSaveRun_RoundTrip(t *testing.T) {
	st := openTemp(t)

	id, err := st.SaveRun(sampleResult())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := st.Runs(0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.ID != id {
		t.Errorf("ID = %d, want %d", r.ID, id)
	}
	if r.Cohort != "cohort.tsv" || r.Affinity != "aff.xlsx" {
		t.Errorf("paths = %q/%q", r.Cohort, r.Affinity)
	}
	if r.Samples != 12 || r.SignatureGenes != 80 || r.Drugs != 2 {
		t.Errorf("counts = %d/%d/%d", r.Samples, r.SignatureGenes, r.Drugs)
	}
	if !r.CreatedAt.Equal(time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", r.CreatedAt)
	}

	scores, err := st.Scores(id)
	if err != nil {
		t.Fatalf("Scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("len(scores) = %d, want 2", len(scores))
	}
	if scores[0].Drug != "dasatinib" || scores[1].Drug != "imatinib" {
		t.Errorf("rank order = [%s %s]", scores[0].Drug, scores[1].Drug)
	}
	if scores[0].Score != 0.91 {
		t.Errorf("Score = %v, want 0.91", scores[0].Score)
	}
}

func TestRuns_OrderAndLimit(t *testing.T) {
	st := openTemp(t)

	for i := 0; i < 3; i++ {
		if _, err := st.SaveRun(sampleResult()); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := st.Runs(2)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].ID <= runs[1].ID {
		t.Errorf("runs not most-recent-first: %d, %d", runs[0].ID, runs[1].ID)
	}
}

func TestScores_UnknownRun(t *testing.T) {
	st := openTemp(t)

	scores, err := st.Scores(99)
	if err != nil {
		t.Fatalf("Scores: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("scores = %v, want empty", scores)
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := st.SaveRun(sampleResult())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()
	scores, err := st2.Scores(id)
	if err != nil {
		t.Fatalf("Scores: %v", err)
	}
	if len(scores) != 2 {
		t.Errorf("len(scores) = %d after reopen, want 2", len(scores))
	}
}

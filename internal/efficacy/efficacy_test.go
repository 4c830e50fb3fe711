package efficacy

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sidorvx/CancerCommonTool/internal/affinity"
	"github.com/sidorvx/CancerCommonTool/internal/correlation"
)

const tol = 1e-9

func loadTable(t *testing.T, tsv string) *affinity.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aff.tsv")
	if err := os.WriteFile(path, []byte(tsv), 0o644); err != nil {
		t.Fatal(err)
	}
	tab, err := affinity.Load(path)
	if err != nil {
		t.Fatalf("affinity.Load: %v", err)
	}
	return tab
}

func TestScores_HandCalculated(t *testing.T) {
	// Inverted affinities: D1 -> {K1: 0.5, K2: 0}, D2 -> {K1: 0.25, K2: 1}.
	tab := loadTable(t, "\tK1\tK2\nD1\t2\tNA\nD2\t4\t1\n")
	corrs := []correlation.Result{
		{Gene: "K1", Normalized: 0.8},
		{Gene: "K2", Normalized: 0.1},
		{Gene: "KX", Normalized: 0.9}, // not a table target, drops out
	}

	scores, err := Scores(tab.Invert(), corrs)
	if err != nil {
		t.Fatalf("Scores: %v", err)
	}

	want := map[string]float64{
		"D1": 0.5 * 0.8,        // 0.4
		"D2": 0.25*0.8 + 1*0.1, // 0.3
	}
	for _, s := range scores {
		if math.Abs(s.Score-want[s.Drug]) > tol {
			t.Errorf("Score(%s) = %v, want %v", s.Drug, s.Score, want[s.Drug])
		}
	}
}

func TestScores_NoSharedTargets(t *testing.T) {
	tab := loadTable(t, "\tK1\nD1\t2\n")
	corrs := []correlation.Result{{Gene: "KX", Normalized: 0.9}}

	scores, err := Scores(tab.Invert(), corrs)
	if err != nil {
		t.Fatalf("Scores: %v", err)
	}
	if scores[0].Score != 0 {
		t.Errorf("Score = %v, want 0 with no shared targets", scores[0].Score)
	}
}

func TestRank_DescendingLexTies(t *testing.T) {
	scores := []DrugScore{
		{Drug: "imatinib", Score: 0.3},
		{Drug: "dasatinib", Score: 0.7},
		{Drug: "bosutinib", Score: 0.3},
	}

	ranked := Rank(scores)
	got := []string{ranked[0].Drug, ranked[1].Drug, ranked[2].Drug}
	want := []string{"dasatinib", "bosutinib", "imatinib"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank order = %v, want %v", got, want)
	}

	// Input untouched.
	if scores[0].Drug != "imatinib" {
		t.Error("Rank mutated its input")
	}
}

func TestRank_Deterministic(t *testing.T) {
	scores := []DrugScore{
		{Drug: "b", Score: 1}, {Drug: "a", Score: 1}, {Drug: "c", Score: 1},
	}
	first := Rank(scores)
	for i := 0; i < 5; i++ {
		if !reflect.DeepEqual(Rank(scores), first) {
			t.Fatal("Rank is not deterministic across runs")
		}
	}
}

func TestTop(t *testing.T) {
	ranked := []DrugScore{{Drug: "a"}, {Drug: "b"}, {Drug: "c"}}

	if got := Top(ranked, 2); len(got) != 2 || got[1].Drug != "b" {
		t.Errorf("Top(2) = %v", got)
	}
	if got := Top(ranked, 0); len(got) != 0 {
		t.Errorf("Top(0) = %v, want empty", got)
	}
	if got := Top(ranked, 10); len(got) != 3 {
		t.Errorf("Top(10) = %v, want all", got)
	}
	if got := Top(ranked, -1); len(got) != 3 {
		t.Errorf("Top(-1) = %v, want all", got)
	}
}

// Package efficacy combines inverse drug–target affinities with normalized
// signature correlations into one predicted-efficacy score per drug.
package efficacy

import (
	"fmt"
	"math"
	"sort"

	"github.com/sidorvx/CancerCommonTool/internal/affinity"
	"github.com/sidorvx/CancerCommonTool/internal/correlation"
)

// DrugScore is one drug's predicted-efficacy score. Higher means better
// predicted efficacy.
type DrugScore struct {
	Drug  string
	Score float64
}

// ComputationError marks a drug whose score came out non-finite.
type ComputationError struct {
	Drug string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("efficacy: non-finite score for drug %s", e.Drug)
}

// Scores computes one score per drug: the sum over shared targets of the
// drug's inverse affinity times the target's normalized correlation. The
// table must already be inverted (affinity.Table.Invert). Targets with no
// correlation result and correlated genes the table does not cover simply
// drop out of the sum.
func Scores(inv *affinity.Table, corrs []correlation.Result) ([]DrugScore, error) {
	type target struct {
		col    int
		weight float64
	}
	var targets []target
	for _, c := range corrs {
		if j, ok := inv.TargetIndex(c.Gene); ok {
			targets = append(targets, target{col: j, weight: c.Normalized})
		}
	}

	drugs := inv.Drugs()
	scores := make([]DrugScore, len(drugs))
	for i, drug := range drugs {
		var sum float64
		for _, t := range targets {
			sum += inv.Value(i, t.col) * t.weight
		}
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			return nil, &ComputationError{Drug: drug}
		}
		scores[i] = DrugScore{Drug: drug, Score: sum}
	}
	return scores, nil
}

// Rank sorts scores descending; equal scores order lexicographically by
// drug name so output is deterministic.
func Rank(scores []DrugScore) []DrugScore {
	out := make([]DrugScore, len(scores))
	copy(out, scores)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Drug < out[j].Drug
	})
	return out
}

// Top returns the first n entries of a ranking.
func Top(ranked []DrugScore, n int) []DrugScore {
	if n < 0 || n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

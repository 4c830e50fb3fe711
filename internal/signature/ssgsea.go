// Package signature computes per-sample ssGSEA scores for a gene set.
//
// The metric is the single-sample GSEA enrichment score of Barbie et al.
// (doi:10.1038/nature08460) in an adapted closed form over within-sample
// expression ranks, matching what packages like GSVA produce.
package signature

import (
	"math"

	"github.com/sidorvx/CancerCommonTool/internal/geneset"
	"github.com/sidorvx/CancerCommonTool/internal/matrix"
)

// Options control the signature computation.
type Options struct {
	RankMethod matrix.RankMethod
	// Legacy selects the pre-update formula variant, which subtracts
	// (G-g+1)/2 instead of (G+1)/2.
	Legacy bool
}

// Scores returns one ssGSEA score per sample, in the matrix's sample order.
// Ranks are computed over the full matrix; only signature genes present in
// the matrix enter the sums. With zero overlap every score is 0.
func Scores(m *matrix.Matrix, set *geneset.Set, opts Options) []float64 {
	method := opts.RankMethod
	if method == "" {
		method = matrix.RankMax
	}

	var cols []int
	for _, g := range set.Genes() {
		if j, ok := m.GeneIndex(g); ok {
			cols = append(cols, j)
		}
	}

	scores := make([]float64, m.NumSamples())
	if len(cols) == 0 {
		return scores
	}

	total := float64(m.NumGenes())
	offset := (total + 1) / 2
	if opts.Legacy {
		offset = (total - float64(len(cols)) + 1) / 2
	}

	ranks := m.Ranks(method)
	for i := range scores {
		var hi, lo float64
		for _, j := range cols {
			r := ranks[i][j]
			hi += math.Pow(r, 1.25)
			lo += math.Pow(r, 0.25)
		}
		scores[i] = hi/lo - offset
	}
	return scores
}

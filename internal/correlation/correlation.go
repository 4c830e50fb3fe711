// Package correlation relates kinase expression to the per-sample signature.
package correlation

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sidorvx/CancerCommonTool/internal/matrix"
)

// Result holds one kinase's correlation with the signature.
type Result struct {
	Gene       string
	R          float64 // Pearson correlation, in [-1, 1]
	Normalized float64 // (R+1)/2, in [0, 1]
}

// ConstantExpressionError marks a gene whose expression does not vary across
// the cohort, for which Pearson correlation is undefined.
type ConstantExpressionError struct {
	Gene string
}

func (e *ConstantExpressionError) Error() string {
	return fmt.Sprintf("correlation: constant expression for %s, correlation undefined", e.Gene)
}

// Compute correlates each panel kinase's expression across samples with the
// signature vector. Kinases absent from the cohort are skipped and returned
// in the second value, matching panel order. A kinase with constant
// expression fails with a *ConstantExpressionError; a constant signature
// fails the whole computation.
func Compute(m *matrix.Matrix, kinases []string, sig []float64) ([]Result, []string, error) {
	if len(sig) != m.NumSamples() {
		return nil, nil, fmt.Errorf("correlation: %d signature values for %d samples", len(sig), m.NumSamples())
	}
	if m.NumSamples() < 2 {
		return nil, nil, fmt.Errorf("correlation: need at least 2 samples, have %d", m.NumSamples())
	}
	if stat.Variance(sig, nil) == 0 {
		return nil, nil, &ConstantExpressionError{Gene: "signature"}
	}

	var results []Result
	var missing []string
	for _, gene := range kinases {
		col, ok := m.GeneColumn(gene)
		if !ok {
			missing = append(missing, gene)
			continue
		}
		r := stat.Correlation(col, sig, nil)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, nil, &ConstantExpressionError{Gene: gene}
		}
		results = append(results, Result{Gene: gene, R: r, Normalized: (r + 1) / 2})
	}
	return results, missing, nil
}

// Extremes returns the results whose correlation magnitude exceeds cutoff,
// in panel order.
func Extremes(results []Result, cutoff float64) []Result {
	var out []Result
	for _, r := range results {
		if r.R > cutoff || r.R < -cutoff {
			out = append(out, r)
		}
	}
	return out
}

// Lowest returns the n results with the smallest correlation, ascending,
// ties broken by gene name.
func Lowest(results []Result, n int) []Result {
	out := make([]Result, len(results))
	copy(out, results)
	sort.Slice(out, func(i, j int) bool {
		if out[i].R != out[j].R {
			return out[i].R < out[j].R
		}
		return out[i].Gene < out[j].Gene
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

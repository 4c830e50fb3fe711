package matrix

import (
	"fmt"
	"sort"
)

// RankMethod selects how tied expression values are ranked.
type RankMethod string

const (
	RankAverage RankMethod = "average" // mean rank of the tied group
	RankMin     RankMethod = "min"     // lowest rank of the tied group
	RankMax     RankMethod = "max"     // highest rank of the tied group
	RankDense   RankMethod = "dense"   // like min, but ranks increase by one between groups
	RankFirst   RankMethod = "first"   // ranks assigned in column order
)

// ParseRankMethod validates a rank method name from configuration.
func ParseRankMethod(s string) (RankMethod, error) {
	switch RankMethod(s) {
	case RankAverage, RankMin, RankMax, RankDense, RankFirst:
		return RankMethod(s), nil
	case "":
		return RankMax, nil
	}
	return "", fmt.Errorf("unknown rank method %q", s)
}

// Ranks returns, for each sample, the 1-based ascending rank of every gene's
// expression within that sample. The result has the same shape and ordering
// as the matrix values.
func (m *Matrix) Ranks(method RankMethod) [][]float64 {
	ranks := make([][]float64, len(m.samples))
	for i := range m.values {
		ranks[i] = rankRow(m.values[i], method)
	}
	return ranks
}

func rankRow(row []float64, method RankMethod) []float64 {
	n := len(row)
	order := make([]int, n)
	for j := range order {
		order[j] = j
	}
	// Stable keeps original column order within ties, which RankFirst relies on.
	sort.SliceStable(order, func(a, b int) bool { return row[order[a]] < row[order[b]] })

	out := make([]float64, n)
	dense := 0.0
	for start := 0; start < n; {
		end := start + 1
		for end < n && row[order[end]] == row[order[start]] {
			end++
		}
		dense++
		for k := start; k < end; k++ {
			switch method {
			case RankAverage:
				out[order[k]] = float64(start+end+1) / 2 // mean of ranks start+1..end
			case RankMin:
				out[order[k]] = float64(start + 1)
			case RankDense:
				out[order[k]] = dense
			case RankFirst:
				out[order[k]] = float64(k + 1)
			default: // RankMax
				out[order[k]] = float64(end)
			}
		}
		start = end
	}
	return out
}

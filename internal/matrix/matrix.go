package matrix

import (
	"fmt"
	"strings"
)

// Matrix is an immutable gene-expression table: one row per sample, one
// column per gene.
type Matrix struct {
	samples []string
	genes   []string
	values  [][]float64 // [sample][gene]
	geneIdx map[string]int
}

// New builds a Matrix from sample IDs, gene IDs and a dense value table.
// Rows of values correspond to samples, columns to genes.
func New(samples, genes []string, values [][]float64) (*Matrix, error) {
	if len(values) != len(samples) {
		return nil, fmt.Errorf("matrix: %d samples but %d value rows", len(samples), len(values))
	}
	idx := make(map[string]int, len(genes))
	for i, g := range genes {
		if _, dup := idx[g]; dup {
			return nil, fmt.Errorf("matrix: duplicate gene %q", g)
		}
		idx[g] = i
	}
	seen := make(map[string]bool, len(samples))
	for i, s := range samples {
		if seen[s] {
			return nil, fmt.Errorf("matrix: duplicate sample %q", s)
		}
		seen[s] = true
		if len(values[i]) != len(genes) {
			return nil, fmt.Errorf("matrix: sample %q has %d values, want %d", s, len(values[i]), len(genes))
		}
	}
	return &Matrix{samples: samples, genes: genes, values: values, geneIdx: idx}, nil
}

// Samples returns the sample identifiers in load order.
func (m *Matrix) Samples() []string { return m.samples }

// Genes returns the gene identifiers in load order.
func (m *Matrix) Genes() []string { return m.genes }

// NumSamples returns the number of samples.
func (m *Matrix) NumSamples() int { return len(m.samples) }

// NumGenes returns the number of genes.
func (m *Matrix) NumGenes() int { return len(m.genes) }

// HasGene reports whether the gene is present.
func (m *Matrix) HasGene(gene string) bool {
	_, ok := m.geneIdx[gene]
	return ok
}

// GeneIndex returns the column index of a gene.
func (m *Matrix) GeneIndex(gene string) (int, bool) {
	j, ok := m.geneIdx[gene]
	return j, ok
}

// Value returns the expression level for sample row i and gene column j.
func (m *Matrix) Value(i, j int) float64 { return m.values[i][j] }

// Row returns sample row i. The slice is shared; callers must not modify it.
func (m *Matrix) Row(i int) []float64 { return m.values[i] }

// GeneColumn returns the expression of one gene across all samples, in
// sample order.
func (m *Matrix) GeneColumn(gene string) ([]float64, bool) {
	j, ok := m.geneIdx[gene]
	if !ok {
		return nil, false
	}
	col := make([]float64, len(m.samples))
	for i := range m.values {
		col[i] = m.values[i][j]
	}
	return col, true
}

// MissingGeneError reports genes requested from a matrix that it does not
// contain.
type MissingGeneError struct {
	Genes []string
}

func (e *MissingGeneError) Error() string {
	return fmt.Sprintf("matrix: %d gene(s) absent: %s", len(e.Genes), strings.Join(e.Genes, ", "))
}

// Filter returns a reduced matrix containing only the requested genes, in
// the requested order. When allowMissing is false, any absent gene aborts
// with a *MissingGeneError listing all of them. When true, absent genes are
// skipped and returned as the second value.
func (m *Matrix) Filter(genes []string, allowMissing bool) (*Matrix, []string, error) {
	var cols []int
	var kept, missing []string
	for _, g := range genes {
		j, ok := m.geneIdx[g]
		if !ok {
			missing = append(missing, g)
			continue
		}
		cols = append(cols, j)
		kept = append(kept, g)
	}
	if len(missing) > 0 && !allowMissing {
		return nil, nil, &MissingGeneError{Genes: missing}
	}

	values := make([][]float64, len(m.samples))
	for i := range m.values {
		row := make([]float64, len(cols))
		for k, j := range cols {
			row[k] = m.values[i][j]
		}
		values[i] = row
	}

	out, err := New(m.samples, kept, values)
	if err != nil {
		return nil, nil, err
	}
	return out, missing, nil
}

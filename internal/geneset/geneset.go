// Package geneset loads the ordered gene signature the pipeline scores
// against.
package geneset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmpty is returned when a gene set resolves to zero genes.
var ErrEmpty = errors.New("geneset: no genes configured")

// Set is an ordered, de-duplicated list of gene identifiers. It is fixed for
// the duration of a run.
type Set struct {
	genes []string
	index map[string]int
}

// New builds a Set from identifiers, preserving first-seen order and
// dropping duplicates.
func New(genes []string) (*Set, error) {
	s := &Set{index: make(map[string]int, len(genes))}
	for _, g := range genes {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, dup := s.index[g]; dup {
			continue
		}
		s.index[g] = len(s.genes)
		s.genes = append(s.genes, g)
	}
	if len(s.genes) == 0 {
		return nil, ErrEmpty
	}
	return s, nil
}

// LoadFile reads a gene set from a text file, one identifier per line.
// Blank lines and lines starting with # are skipped.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gene set: %w", err)
	}
	defer f.Close()

	var genes []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		genes = append(genes, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read gene set: %w", err)
	}

	s, err := New(genes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Genes returns the identifiers in set order.
func (s *Set) Genes() []string { return s.genes }

// Len returns the number of genes in the set.
func (s *Set) Len() int { return len(s.genes) }

// Contains reports whether the gene is in the set.
func (s *Set) Contains(gene string) bool {
	_, ok := s.index[gene]
	return ok
}

// Package affinity loads drug–target binding affinity tables.
package affinity

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table maps (drug, target gene) to a binding affinity. Rows are drugs,
// columns are target genes.
type Table struct {
	drugs     []string
	targets   []string
	values    [][]float64 // [drug][target]
	targetIdx map[string]int
}

// Drugs returns the drug identifiers in load order.
func (t *Table) Drugs() []string { return t.drugs }

// Targets returns the target gene identifiers in load order.
func (t *Table) Targets() []string { return t.targets }

// Value returns the affinity of drug row i for target column j.
func (t *Table) Value(i, j int) float64 { return t.values[i][j] }

// TargetIndex returns the column index of a target gene.
func (t *Table) TargetIndex(gene string) (int, bool) {
	j, ok := t.targetIdx[gene]
	return j, ok
}

// Load reads an affinity table. The format is chosen by extension: .xlsx via
// excelize, .csv comma-separated, anything else tab-separated. The header
// row holds target genes (first cell labels the drug column); each data row
// is a drug name followed by affinities. Blank and NA cells are missing
// measurements and load as zero.
func Load(path string) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return loadXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open affinity table: %w", err)
	}
	defer f.Close()

	var rows [][]string
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		cr := csv.NewReader(f)
		rows, err = cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	} else {
		rows, err = readTSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	t, err := fromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open affinity workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: read sheet %s: %w", path, sheets[0], err)
	}

	t, err := fromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func readTSV(r io.Reader) ([][]string, error) {
	var rows [][]string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows, sc.Err()
}

func fromRows(rows [][]string) (*Table, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("affinity table needs a header and at least one drug row")
	}
	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("affinity header has no target columns")
	}

	targets := make([]string, 0, len(header)-1)
	targetIdx := make(map[string]int, len(header)-1)
	for _, h := range header[1:] {
		g := strings.TrimSpace(h)
		if g == "" {
			return nil, fmt.Errorf("empty target identifier in header")
		}
		if _, dup := targetIdx[g]; dup {
			return nil, fmt.Errorf("duplicate target %q", g)
		}
		targetIdx[g] = len(targets)
		targets = append(targets, g)
	}

	var drugs []string
	var values [][]float64
	seen := make(map[string]bool)
	for n, rec := range rows[1:] {
		if len(rec) == 0 {
			continue
		}
		drug := strings.TrimSpace(rec[0])
		if drug == "" {
			return nil, fmt.Errorf("row %d: empty drug name", n+2)
		}
		if seen[drug] {
			return nil, fmt.Errorf("row %d: duplicate drug %q", n+2, drug)
		}
		seen[drug] = true

		// xlsx readers drop trailing empty cells; treat short rows as padded.
		row := make([]float64, len(targets))
		for j := range targets {
			if j+1 >= len(rec) {
				break
			}
			cell := strings.TrimSpace(rec[j+1])
			if cell == "" || strings.EqualFold(cell, "NA") || strings.EqualFold(cell, "NaN") {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: target %s: non-numeric value %q", n+2, targets[j], cell)
			}
			row[j] = v
		}
		drugs = append(drugs, drug)
		values = append(values, row)
	}
	if len(drugs) == 0 {
		return nil, fmt.Errorf("affinity table has no drug rows")
	}

	return &Table{drugs: drugs, targets: targets, values: values, targetIdx: targetIdx}, nil
}

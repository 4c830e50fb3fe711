package matrix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ParseError reports a malformed cell or row in an expression table.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Load reads a tab-separated expression table from path and returns it as a
// Matrix. The header row holds gene identifiers (its first cell labels the
// sample-ID column and may be empty); each data row is a sample identifier
// followed by one numeric value per gene. Files ending in .gz or .zst are
// decompressed transparently.
func Load(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open expression table: %w", err)
	}
	defer f.Close()

	r, closer, err := decompress(f, path)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer()
	}

	return Parse(r, path)
}

// decompress wraps r according to the path's extension. The returned closer,
// if non-nil, must be called after reading.
func decompress(r io.Reader, path string) (io.Reader, func(), error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return gz, func() { gz.Close() }, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return zr, zr.Close, nil
	default:
		return r, nil, nil
	}
}

// Parse reads a tab-separated expression table from a reader. The path is
// used only in error messages.
func Parse(r io.Reader, path string) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024) // wide cohorts have long lines

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read expression table: %w", err)
		}
		return nil, &ParseError{Path: path, Line: 1, Msg: "empty file"}
	}

	header := strings.Split(strings.TrimRight(sc.Text(), "\r\n"), "\t")
	if len(header) < 2 {
		return nil, &ParseError{Path: path, Line: 1, Msg: "header has no gene columns"}
	}
	genes := header[1:] // first cell labels the sample-ID column
	for j, g := range genes {
		if strings.TrimSpace(g) == "" {
			return nil, &ParseError{Path: path, Line: 1, Msg: fmt.Sprintf("empty gene identifier in column %d", j+2)}
		}
	}

	var samples []string
	var values [][]float64
	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r\n")
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != len(genes)+1 {
			return nil, &ParseError{Path: path, Line: line,
				Msg: fmt.Sprintf("%d columns, want %d", len(fields), len(genes)+1)}
		}
		sample := strings.TrimSpace(fields[0])
		if sample == "" {
			return nil, &ParseError{Path: path, Line: line, Msg: "empty sample identifier"}
		}
		row := make([]float64, len(genes))
		for j, cell := range fields[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &ParseError{Path: path, Line: line,
					Msg: fmt.Sprintf("gene %s: non-numeric value %q", genes[j], cell)}
			}
			row[j] = v
		}
		samples = append(samples, sample)
		values = append(values, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read expression table: %w", err)
	}
	if len(samples) == 0 {
		return nil, &ParseError{Path: path, Line: line, Msg: "no sample rows"}
	}

	m, err := New(samples, genes, values)
	if err != nil {
		return nil, &ParseError{Path: path, Line: 1, Msg: err.Error()}
	}
	return m, nil
}

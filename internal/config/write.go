package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteDefault writes a commented default config.toml to path, or to
// ./cct.toml when path is empty. Returns the config file path. Skips if the
// file already exists.
func WriteDefault(path string) (string, error) {
	if path == "" {
		path = "cct.toml"
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil // already exists
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create config dir: %w", err)
		}
	}

	content := `[inputs]
cohort = "transposed_expressions.tsv"
kinome = "HumanKinome.csv"
affinity = "Affinity.xlsx"
geneset = "signature_genes.txt"
# genes = ["CDH1", "EPCAM", "KRT19"]   # inline alternative to geneset

[scoring]
rank_method = "max"          # average|min|max|dense|first
legacy_formula = false
top_n = 5
correlation_cutoff = 0.85
lowest_n = 5

[filter]
allow_missing_genes = false

[store]
enabled = false
path = "~/.local/share/cct/runs.db"

[watch]
debounce_ms = 500
`

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	return path, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all cct configuration.
type Config struct {
	Inputs  InputsConfig  `toml:"inputs"`
	Scoring ScoringConfig `toml:"scoring"`
	Filter  FilterConfig  `toml:"filter"`
	Store   StoreConfig   `toml:"store"`
	Watch   WatchConfig   `toml:"watch"`
}

// InputsConfig names the run's input files and the gene signature.
type InputsConfig struct {
	Cohort   string `toml:"cohort"`   // expression table, .tsv (.gz/.zst ok)
	Kinome   string `toml:"kinome"`   // kinase panel CSV with a Name column
	Affinity string `toml:"affinity"` // drug-target affinities, .tsv/.csv/.xlsx

	// Signature genes: either a file (one gene per line) or an inline list.
	// The file wins when both are set.
	GeneSetFile string   `toml:"geneset"`
	Genes       []string `toml:"genes"`
}

// ScoringConfig holds the scoring knobs.
type ScoringConfig struct {
	RankMethod        string  `toml:"rank_method"`        // average|min|max|dense|first
	LegacyFormula     bool    `toml:"legacy_formula"`     // pre-update ssGSEA offset
	TopN              int     `toml:"top_n"`              // drugs in the final report
	CorrelationCutoff float64 `toml:"correlation_cutoff"` // |r| above this is reported as extreme
	LowestN           int     `toml:"lowest_n"`           // lowest-correlation genes reported
}

// FilterConfig controls the gene-filter missing-gene policy.
type FilterConfig struct {
	AllowMissingGenes bool `toml:"allow_missing_genes"`
}

// StoreConfig controls run-history persistence.
type StoreConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Inputs: InputsConfig{
			Cohort:   "transposed_expressions.tsv",
			Kinome:   "HumanKinome.csv",
			Affinity: "Affinity.xlsx",
		},
		Scoring: ScoringConfig{
			RankMethod:        "max",
			TopN:              5,
			CorrelationCutoff: 0.85,
			LowestN:           5,
		},
		Store: StoreConfig{
			Enabled: false,
			Path:    "~/.local/share/cct/runs.db",
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}

// Load reads config from path if given, otherwise from the first of
// ./cct.toml and the standard config paths, falling back to defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		return expand(cfg), nil
	}

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	return expand(cfg), nil
}

// expand resolves ~ in all path values.
func expand(cfg Config) Config {
	cfg.Inputs.Cohort = expandHome(cfg.Inputs.Cohort)
	cfg.Inputs.Kinome = expandHome(cfg.Inputs.Kinome)
	cfg.Inputs.Affinity = expandHome(cfg.Inputs.Affinity)
	cfg.Inputs.GeneSetFile = expandHome(cfg.Inputs.GeneSetFile)
	cfg.Store.Path = expandHome(cfg.Store.Path)
	return cfg
}

// Validate checks that the config names every required input.
func (c Config) Validate() error {
	if c.Inputs.Cohort == "" {
		return fmt.Errorf("config: inputs.cohort is required")
	}
	if c.Inputs.Kinome == "" {
		return fmt.Errorf("config: inputs.kinome is required")
	}
	if c.Inputs.Affinity == "" {
		return fmt.Errorf("config: inputs.affinity is required")
	}
	if c.Inputs.GeneSetFile == "" && len(c.Inputs.Genes) == 0 {
		return fmt.Errorf("config: set inputs.geneset or inputs.genes")
	}
	if c.Scoring.TopN < 0 {
		return fmt.Errorf("config: scoring.top_n must not be negative")
	}
	if c.Scoring.CorrelationCutoff < 0 || c.Scoring.CorrelationCutoff > 1 {
		return fmt.Errorf("config: scoring.correlation_cutoff must be in [0, 1]")
	}
	return nil
}

// InputPaths returns the configured input files, for watch mode.
func (c Config) InputPaths() []string {
	paths := []string{c.Inputs.Cohort, c.Inputs.Kinome, c.Inputs.Affinity}
	if c.Inputs.GeneSetFile != "" {
		paths = append(paths, c.Inputs.GeneSetFile)
	}
	return paths
}

func configPaths() []string {
	paths := []string{"cct.toml"}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "cct", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "cct", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

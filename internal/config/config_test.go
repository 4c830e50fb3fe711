package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scoring.RankMethod != "max" {
		t.Errorf("RankMethod = %q, want max", cfg.Scoring.RankMethod)
	}
	if cfg.Scoring.TopN != 5 {
		t.Errorf("TopN = %d, want 5", cfg.Scoring.TopN)
	}
	if cfg.Scoring.CorrelationCutoff != 0.85 {
		t.Errorf("CorrelationCutoff = %v, want 0.85", cfg.Scoring.CorrelationCutoff)
	}
	if cfg.Filter.AllowMissingGenes {
		t.Error("AllowMissingGenes should default to strict")
	}
	if cfg.Store.Enabled {
		t.Error("Store should default to disabled")
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cct.toml")
	content := `
[inputs]
cohort = "cohort.tsv"
genes = ["CDH1", "EPCAM"]

[scoring]
top_n = 3

[filter]
allow_missing_genes = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Inputs.Cohort != "cohort.tsv" {
		t.Errorf("Cohort = %q", cfg.Inputs.Cohort)
	}
	if len(cfg.Inputs.Genes) != 2 {
		t.Errorf("Genes = %v", cfg.Inputs.Genes)
	}
	if cfg.Scoring.TopN != 3 {
		t.Errorf("TopN = %d, want 3", cfg.Scoring.TopN)
	}
	if !cfg.Filter.AllowMissingGenes {
		t.Error("AllowMissingGenes not read")
	}
	// Unset sections keep defaults.
	if cfg.Scoring.CorrelationCutoff != 0.85 {
		t.Errorf("CorrelationCutoff = %v, want default 0.85", cfg.Scoring.CorrelationCutoff)
	}
	if cfg.Inputs.Kinome != "HumanKinome.csv" {
		t.Errorf("Kinome = %q, want default", cfg.Inputs.Kinome)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cct.toml")
	if err := os.WriteFile(path, []byte("[inputs\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	base := DefaultConfig()
	base.Inputs.Genes = []string{"CDH1"}
	if err := base.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no cohort", func(c *Config) { c.Inputs.Cohort = "" }},
		{"no kinome", func(c *Config) { c.Inputs.Kinome = "" }},
		{"no affinity", func(c *Config) { c.Inputs.Affinity = "" }},
		{"no genes", func(c *Config) { c.Inputs.Genes = nil; c.Inputs.GeneSetFile = "" }},
		{"negative top_n", func(c *Config) { c.Scoring.TopN = -1 }},
		{"cutoff out of range", func(c *Config) { c.Scoring.CorrelationCutoff = 1.5 }},
	}
	for _, tc := range cases {
		cfg := base
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/data/x.tsv"); got != filepath.Join(home, "data", "x.tsv") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/abs/x.tsv"); got != "/abs/x.tsv" {
		t.Errorf("expandHome should leave absolute paths: %q", got)
	}
}

func TestInputPaths(t *testing.T) {
	cfg := DefaultConfig()
	if got := len(cfg.InputPaths()); got != 3 {
		t.Errorf("InputPaths = %d entries, want 3 without a geneset file", got)
	}
	cfg.Inputs.GeneSetFile = "genes.txt"
	if got := len(cfg.InputPaths()); got != 4 {
		t.Errorf("InputPaths = %d entries, want 4", got)
	}
}

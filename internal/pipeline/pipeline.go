// Package pipeline runs the full scoring pass: load cohort, filter to the
// signature, score signatures, correlate the kinase panel, and rank drugs.
package pipeline

import (
	"fmt"
	"time"

	"github.com/sidorvx/CancerCommonTool/internal/affinity"
	"github.com/sidorvx/CancerCommonTool/internal/config"
	"github.com/sidorvx/CancerCommonTool/internal/correlation"
	"github.com/sidorvx/CancerCommonTool/internal/efficacy"
	"github.com/sidorvx/CancerCommonTool/internal/geneset"
	"github.com/sidorvx/CancerCommonTool/internal/kinome"
	"github.com/sidorvx/CancerCommonTool/internal/matrix"
	"github.com/sidorvx/CancerCommonTool/internal/signature"
)

// SampleSignature is one sample's ssGSEA score.
type SampleSignature struct {
	Sample string
	Score  float64
}

// Result holds everything one scoring run produced.
type Result struct {
	StartedAt time.Time
	Elapsed   time.Duration

	CohortPath   string
	AffinityPath string

	Samples        int
	CohortGenes    int
	SignatureGenes int // signature genes actually used

	Signatures   []SampleSignature
	Correlations []correlation.Result
	Extremes     []correlation.Result
	Lowest       []correlation.Result
	Ranking      []efficacy.DrugScore // descending

	Warnings []string
}

// Top returns the leading entries of the ranking.
func (r *Result) Top(n int) []efficacy.DrugScore {
	return efficacy.Top(r.Ranking, n)
}

// Run executes the pipeline once. The first failing stage aborts the run.
func Run(cfg config.Config) (*Result, error) {
	started := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	set, err := loadGeneSet(cfg.Inputs)
	if err != nil {
		return nil, err
	}

	m, err := matrix.Load(cfg.Inputs.Cohort)
	if err != nil {
		return nil, err
	}

	// The filter enforces the missing-gene policy and fixes the set of
	// signature genes in play; ranks for the ssGSEA sums still come from
	// the full cohort.
	reduced, missingGenes, err := m.Filter(set.Genes(), cfg.Filter.AllowMissingGenes)
	if err != nil {
		return nil, err
	}
	if reduced.NumGenes() == 0 {
		return nil, fmt.Errorf("gene filter: no signature genes present in cohort")
	}
	kept, err := geneset.New(reduced.Genes())
	if err != nil {
		return nil, err
	}

	rankMethod, err := matrix.ParseRankMethod(cfg.Scoring.RankMethod)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	sig := signature.Scores(m, kept, signature.Options{
		RankMethod: rankMethod,
		Legacy:     cfg.Scoring.LegacyFormula,
	})

	kinases, err := kinome.Load(cfg.Inputs.Kinome)
	if err != nil {
		return nil, err
	}

	corrs, missingKinases, err := correlation.Compute(m, kinases, sig)
	if err != nil {
		return nil, err
	}

	aff, err := affinity.Load(cfg.Inputs.Affinity)
	if err != nil {
		return nil, err
	}

	scores, err := efficacy.Scores(aff.Invert(), corrs)
	if err != nil {
		return nil, err
	}

	res := &Result{
		StartedAt:      started,
		CohortPath:     cfg.Inputs.Cohort,
		AffinityPath:   cfg.Inputs.Affinity,
		Samples:        m.NumSamples(),
		CohortGenes:    m.NumGenes(),
		SignatureGenes: kept.Len(),
		Correlations:   corrs,
		Extremes:       correlation.Extremes(corrs, cfg.Scoring.CorrelationCutoff),
		Lowest:         correlation.Lowest(corrs, cfg.Scoring.LowestN),
		Ranking:        efficacy.Rank(scores),
	}

	for i, sample := range m.Samples() {
		res.Signatures = append(res.Signatures, SampleSignature{Sample: sample, Score: sig[i]})
	}

	if len(missingGenes) > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d signature gene(s) absent from cohort, skipped: %v", len(missingGenes), missingGenes))
	}
	if len(missingKinases) > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d panel kinase(s) absent from cohort, skipped", len(missingKinases)))
	}

	res.Elapsed = time.Since(started)
	return res, nil
}

func loadGeneSet(in config.InputsConfig) (*geneset.Set, error) {
	if in.GeneSetFile != "" {
		return geneset.LoadFile(in.GeneSetFile)
	}
	return geneset.New(in.Genes)
}

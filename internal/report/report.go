// Package report renders a scoring run as aligned terminal output.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/sidorvx/CancerCommonTool/internal/pipeline"
)

// Format renders a run result. topN limits the drug table; topN <= 0 shows
// the whole ranking.
func Format(res *pipeline.Result, topN int) string {
	var b strings.Builder

	b.WriteString("cct score\n")

	b.WriteString("\nOverview\n")
	fmt.Fprintf(&b, "  %-20s %s\n", "cohort", res.CohortPath)
	fmt.Fprintf(&b, "  %-20s %s\n", "affinity", res.AffinityPath)
	fmt.Fprintf(&b, "  %-20s %d\n", "samples", res.Samples)
	fmt.Fprintf(&b, "  %-20s %d of %d in cohort\n", "signature genes", res.SignatureGenes, res.CohortGenes)
	fmt.Fprintf(&b, "  %-20s %d\n", "kinases correlated", len(res.Correlations))
	fmt.Fprintf(&b, "  %-20s %d\n", "drugs scored", len(res.Ranking))
	fmt.Fprintf(&b, "  %-20s %s\n", "elapsed", res.Elapsed.Round(time.Millisecond))

	if len(res.Warnings) > 0 {
		b.WriteString("\nWarnings\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "  %s\n", w)
		}
	}

	if len(res.Extremes) > 0 {
		b.WriteString("\nExtreme correlations\n")
		for _, c := range res.Extremes {
			fmt.Fprintf(&b, "  %-16s %+.4f\n", c.Gene, c.R)
		}
	}

	if len(res.Lowest) > 0 {
		b.WriteString("\nLowest correlations\n")
		for _, c := range res.Lowest {
			fmt.Fprintf(&b, "  %-16s %+.4f\n", c.Gene, c.R)
		}
	}

	if len(res.Ranking) > 0 {
		rows := res.Ranking
		if topN > 0 && topN < len(rows) {
			rows = res.Top(topN)
			fmt.Fprintf(&b, "\nTop %d drugs\n", topN)
		} else {
			b.WriteString("\nDrug ranking\n")
		}
		for i, d := range rows {
			fmt.Fprintf(&b, "  %2d. %-24s %.6f\n", i+1, d.Drug, d.Score)
		}
	}

	return b.String()
}

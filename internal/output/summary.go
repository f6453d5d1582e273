package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/pipeline"
)

// SummaryWriter writes a human-readable analysis summary.
type SummaryWriter struct {
	w *tabwriter.Writer
}

// NewSummaryWriter creates a summary writer.
func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{
		w: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
	}
}

// WriteResult writes the full run summary: counts, gene calls,
// confidence, metrics, and any narrative contradictions.
func (s *SummaryWriter) WriteResult(res *pipeline.Result) error {
	m := res.Metrics

	fmt.Fprintf(s.w, "Records\t%d\n", m.TotalRecords)
	fmt.Fprintf(s.w, "Candidates\t%d\n", m.CandidateRecords)
	fmt.Fprintf(s.w, "Matched\t%d\n", m.MatchedCount)
	fmt.Fprintf(s.w, "Unmatched\t%d\n", m.UnmatchedCount)
	fmt.Fprintf(s.w, "Parse errors\t%d\n", res.ParseErrors)
	fmt.Fprintf(s.w, "Detection state\t%s\n", m.DetectionState)
	fmt.Fprintf(s.w, "Average quality\t%.2f\n", m.AverageQuality)
	if m.CompletenessKnown {
		fmt.Fprintf(s.w, "Completeness\t%.2f\n", m.Completeness)
	} else {
		fmt.Fprintf(s.w, "Completeness\tn/a\n")
	}
	fmt.Fprintf(s.w, "Confidence\t%.3f\n", res.Confidence)

	if len(res.GeneCalls) > 0 {
		fmt.Fprintf(s.w, "\nGene\tDiplotype\tPhenotype\tActivity\n")
		for _, call := range res.GeneCalls {
			fmt.Fprintf(s.w, "%s\t%s\t%s (%s)\t%.1f\n",
				call.Gene, call.Diplotype, call.Phenotype, call.Phenotype.Describe(), call.ActivityScore)
		}
	}

	if len(m.DrugCounts) > 0 {
		drugs := make([]string, 0, len(m.DrugCounts))
		for d := range m.DrugCounts {
			drugs = append(drugs, d)
		}
		sort.Strings(drugs)

		fmt.Fprintf(s.w, "\nDrug\tVariants\n")
		for _, d := range drugs {
			fmt.Fprintf(s.w, "%s\t%d\n", d, m.DrugCounts[d])
		}
	}

	if len(res.Contradictions) > 0 {
		fmt.Fprintf(s.w, "\nNarrative contradictions\t%d\n", len(res.Contradictions))
		for _, c := range res.Contradictions {
			fmt.Fprintf(s.w, "[%s] %s\t%s\n", c.Severity, c.Type, c.Description)
		}
	}

	return s.w.Flush()
}

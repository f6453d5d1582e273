// Package metrics computes summary statistics over pipeline outputs and
// validates their cross-field invariants.
package metrics

import (
	"fmt"
	"math"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/match"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/vcf"
)

// DetectionState classifies how matching proceeded for an input.
type DetectionState string

const (
	StateNoRecords    DetectionState = "no_records"
	StateNoCandidates DetectionState = "no_candidates_detected"
	StateNoneMatched  DetectionState = "found_none_matched"
	StateSomeMatched  DetectionState = "found_some_matched"
	StateAllMatched   DetectionState = "found_all_matched"
)

// ClassifyDetection derives the detection state from the three counts.
func ClassifyDetection(total, candidates, matched int) DetectionState {
	switch {
	case total == 0:
		return StateNoRecords
	case candidates == 0:
		return StateNoCandidates
	case matched == 0:
		return StateNoneMatched
	case matched < candidates:
		return StateSomeMatched
	default:
		return StateAllMatched
	}
}

// Metrics holds the aggregate counters for one pipeline run.
// Invariants: MatchedCount+UnmatchedCount == CandidateRecords and
// CandidateRecords <= TotalRecords.
type Metrics struct {
	TotalRecords     int
	CandidateRecords int
	MatchedCount     int
	UnmatchedCount   int

	AverageQuality float64

	// Completeness is MatchedCount/CandidateRecords. When there are no
	// candidates the ratio is not applicable and CompletenessKnown is
	// false; zero would misreport a degenerate input as a bad one.
	Completeness      float64
	CompletenessKnown bool

	GeneCounts        map[string]int
	DrugCounts        map[string]int
	EvidenceHistogram map[string]int // A, B, C, D, unknown

	DetectionState DetectionState
}

// Aggregate computes pipeline metrics. Drug counts are derived through
// the injected gene-to-drugs mapping.
func Aggregate(all []*vcf.Record, candidates []*vcf.Record, matched []*match.Matched, unmatched []*vcf.Record, geneDrugs map[string][]string) Metrics {
	m := Metrics{
		TotalRecords:      len(all),
		CandidateRecords:  len(candidates),
		MatchedCount:      len(matched),
		UnmatchedCount:    len(unmatched),
		GeneCounts:        make(map[string]int),
		DrugCounts:        make(map[string]int),
		EvidenceHistogram: map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "unknown": 0},
	}

	if len(all) > 0 {
		sum := 0.0
		for _, rec := range all {
			sum += rec.Qual
		}
		m.AverageQuality = sum / float64(len(all))
	}

	for _, mv := range matched {
		gene := mv.Entry.Gene
		m.GeneCounts[gene]++
		for _, drug := range geneDrugs[gene] {
			m.DrugCounts[drug]++
		}

		if mv.Entry.Evidence.Valid() {
			m.EvidenceHistogram[string(mv.Entry.Evidence)]++
		} else {
			m.EvidenceHistogram["unknown"]++
		}
	}

	if m.CandidateRecords > 0 {
		m.Completeness = float64(m.MatchedCount) / float64(m.CandidateRecords)
		m.CompletenessKnown = true
	}

	m.DetectionState = ClassifyDetection(m.TotalRecords, m.CandidateRecords, m.MatchedCount)

	return m
}

// maxSaneQuality bounds the average quality sanity check. PHRED-like
// scores far above this indicate corrupted input.
const maxSaneQuality = 1e6

// Validate checks the cross-field invariants. It returns false and the
// list of violations when any invariant fails.
func Validate(m Metrics) (bool, []string) {
	var errs []string

	if m.TotalRecords < 0 || m.CandidateRecords < 0 || m.MatchedCount < 0 || m.UnmatchedCount < 0 {
		errs = append(errs, "negative counter")
	}

	if m.MatchedCount+m.UnmatchedCount != m.CandidateRecords {
		errs = append(errs, fmt.Sprintf("matched (%d) + unmatched (%d) != candidates (%d)",
			m.MatchedCount, m.UnmatchedCount, m.CandidateRecords))
	}

	if m.CandidateRecords > m.TotalRecords {
		errs = append(errs, fmt.Sprintf("candidates (%d) > total records (%d)",
			m.CandidateRecords, m.TotalRecords))
	}

	if math.IsNaN(m.AverageQuality) || m.AverageQuality < 0 || m.AverageQuality > maxSaneQuality {
		errs = append(errs, fmt.Sprintf("average quality out of range: %v", m.AverageQuality))
	}

	histSum := 0
	for _, n := range m.EvidenceHistogram {
		if n < 0 {
			errs = append(errs, "negative evidence histogram bucket")
		}
		histSum += n
	}
	if histSum != m.MatchedCount {
		errs = append(errs, fmt.Sprintf("evidence histogram sums to %d, expected %d",
			histSum, m.MatchedCount))
	}

	return len(errs) == 0, errs
}

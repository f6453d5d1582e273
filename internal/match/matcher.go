// Package match implements multi-strategy matching of parsed variant
// records against the curated reference table.
package match

import (
	"strings"

	"go.uber.org/zap"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/reference"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/vcf"
)

// Strategy identifies which matching strategy produced a match.
type Strategy string

const (
	StrategyRSID      Strategy = "rsid_exact"
	StrategyPosition  Strategy = "position_exact"
	StrategyStar      Strategy = "gene_star"
	StrategyProximity Strategy = "gene_proximity"
)

// Fixed confidence weights per strategy.
const (
	weightRSID      = 0.95
	weightPosition  = 0.85
	weightStar      = 0.70
	weightProximity = 0.50

	// proximityWindow is the maximum positional distance for the
	// same-gene proximity strategy.
	proximityWindow = 10
)

// Matched is a record enriched with the reference entry it matched and
// its match provenance. Every Matched value carries non-nil provenance;
// unmatched records are never promoted to this type.
type Matched struct {
	Record     *vcf.Record
	Entry      *reference.Entry
	Strategy   Strategy
	Confidence float64
}

// Result is the outcome of matching a single record.
type Result struct {
	Record     *vcf.Record
	Entry      *reference.Entry // nil when unmatched
	Strategy   Strategy         // empty when unmatched
	Confidence float64          // 0 when unmatched
}

// Ok reports whether the record matched a reference entry.
func (r Result) Ok() bool {
	return r.Entry != nil
}

// Promote converts a successful result into a Matched value.
// It must only be called when Ok() is true.
func (r Result) Promote() *Matched {
	return &Matched{
		Record:     r.Record,
		Entry:      r.Entry,
		Strategy:   r.Strategy,
		Confidence: r.Confidence,
	}
}

// strategyFunc tries one matching strategy against the table.
type strategyFunc func(rec *vcf.Record, table []*reference.Entry) (*reference.Entry, Strategy, float64)

// strategies are tried in strict priority order; first success wins.
// Adding a fifth strategy is a one-line change here.
var strategies = []strategyFunc{
	matchRSID,
	matchPosition,
	matchGeneStar,
	matchProximity,
}

// Matcher matches records against an immutable reference table.
type Matcher struct {
	table  []*reference.Entry
	logger *zap.Logger
}

// New creates a matcher over the given reference table.
// An empty table is not an error; every record simply fails to match.
func New(table []*reference.Entry) *Matcher {
	return &Matcher{
		table:  table,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for match diagnostics.
func (m *Matcher) SetLogger(l *zap.Logger) {
	m.logger = l
}

// Match tries each strategy in priority order and returns the first hit.
// Unmatched records yield a Result with nil provenance and zero confidence.
func (m *Matcher) Match(rec *vcf.Record) Result {
	for _, try := range strategies {
		if entry, strategy, confidence := try(rec, m.table); entry != nil {
			return Result{
				Record:     rec,
				Entry:      entry,
				Strategy:   strategy,
				Confidence: confidence,
			}
		}
	}
	return Result{Record: rec}
}

// MatchAll matches records sequentially, preserving input order.
func (m *Matcher) MatchAll(records []*vcf.Record) (matched []*Matched, unmatched []*vcf.Record) {
	for _, rec := range records {
		res := m.Match(rec)
		if res.Ok() {
			matched = append(matched, res.Promote())
		} else {
			unmatched = append(unmatched, rec)
		}
	}
	return matched, unmatched
}

// matchRSID matches on exact variant identifier. Only attempted when the
// record carries a usable identifier.
func matchRSID(rec *vcf.Record, table []*reference.Entry) (*reference.Entry, Strategy, float64) {
	if !rec.HasIdentifier() {
		return nil, "", 0
	}
	for _, e := range table {
		if e.RSID == rec.ID {
			return e, StrategyRSID, weightRSID
		}
	}
	return nil, "", 0
}

// matchPosition matches on the exact (chrom, pos, ref, alt) tuple.
// Both sides are compared without the optional "chr" prefix, so record
// and table naming conventions need not agree.
func matchPosition(rec *vcf.Record, table []*reference.Entry) (*reference.Entry, Strategy, float64) {
	chrom := rec.NormalizeChrom()
	for _, e := range table {
		if normalizeChrom(e.Chrom) == chrom && e.Pos == rec.Pos && e.Ref == rec.Ref && e.Alt == rec.Alt {
			return e, StrategyPosition, weightPosition
		}
	}
	return nil, "", 0
}

// normalizeChrom strips the optional "chr" prefix from a chromosome name.
func normalizeChrom(c string) string {
	if len(c) > 3 && strings.HasPrefix(c, "chr") {
		return c[3:]
	}
	return c
}

// matchGeneStar matches on the (gene, star-allele) derived tag pair.
// Requires both tags present on the record.
func matchGeneStar(rec *vcf.Record, table []*reference.Entry) (*reference.Entry, Strategy, float64) {
	if rec.Gene == "" || rec.StarAllele == "" {
		return nil, "", 0
	}
	for _, e := range table {
		if e.Gene == rec.Gene && e.StarAllele == rec.StarAllele {
			return e, StrategyStar, weightStar
		}
	}
	return nil, "", 0
}

// matchProximity matches same-gene entries within proximityWindow positions.
func matchProximity(rec *vcf.Record, table []*reference.Entry) (*reference.Entry, Strategy, float64) {
	if rec.Gene == "" {
		return nil, "", 0
	}
	for _, e := range table {
		if e.Gene != rec.Gene {
			continue
		}
		delta := rec.Pos - e.Pos
		if delta < 0 {
			delta = -delta
		}
		if delta <= proximityWindow {
			return e, StrategyProximity, weightProximity
		}
	}
	return nil, "", 0
}

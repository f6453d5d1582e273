// Package reference provides the curated known-variant table and the
// static gene-drug mapping consumed by the matching pipeline. Tables are
// loaded once and never mutated, so they are safe to share across
// concurrent matchers without locking.
package reference

// FunctionalStatus is the known functional effect of a variant allele.
type FunctionalStatus string

const (
	StatusNormal     FunctionalStatus = "normal"
	StatusDecreased  FunctionalStatus = "decreased"
	StatusIncreased  FunctionalStatus = "increased"
	StatusNoFunction FunctionalStatus = "no_function"
)

// ActivityWeight returns the per-allele activity contribution used by
// genotype inference. Unknown statuses contribute like normal function.
func (s FunctionalStatus) ActivityWeight() float64 {
	switch s {
	case StatusNoFunction:
		return 0
	case StatusDecreased:
		return 0.5
	case StatusIncreased:
		return 1.5
	default:
		return 1.0
	}
}

// EvidenceLevel is the A-D tiering of clinical guideline support.
type EvidenceLevel string

const (
	EvidenceA EvidenceLevel = "A"
	EvidenceB EvidenceLevel = "B"
	EvidenceC EvidenceLevel = "C"
	EvidenceD EvidenceLevel = "D"
)

// Weight returns the evidence contribution used by confidence scoring.
// Unknown levels weigh 0.
func (e EvidenceLevel) Weight() float64 {
	switch e {
	case EvidenceA:
		return 1.0
	case EvidenceB:
		return 0.75
	case EvidenceC:
		return 0.5
	case EvidenceD:
		return 0.25
	default:
		return 0
	}
}

// Valid reports whether the level is one of the four defined tiers.
func (e EvidenceLevel) Valid() bool {
	switch e {
	case EvidenceA, EvidenceB, EvidenceC, EvidenceD:
		return true
	}
	return false
}

// Entry is a known variant from the curated reference table.
type Entry struct {
	RSID         string
	Gene         string
	StarAllele   string
	Chrom        string
	Pos          int64
	Ref          string
	Alt          string
	Function     FunctionalStatus
	Evidence     EvidenceLevel
	Significance string
	Drugs        []string
}

// AlleleLabel returns the label used for this entry in diplotype strings:
// the star allele when present, otherwise the rs identifier.
func (e *Entry) AlleleLabel() string {
	if e.StarAllele != "" {
		return e.StarAllele
	}
	return e.RSID
}

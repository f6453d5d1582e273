package claims

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/match"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/reference"
)

// ContradictionType identifies which consistency check fired.
type ContradictionType string

const (
	ContradictionEnzymeMismatch ContradictionType = "enzyme_activity_mismatch"
	ContradictionInternal       ContradictionType = "internal_contradiction"
)

// Severity grades a contradiction.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Contradiction is a detected inconsistency in narrative text.
type Contradiction struct {
	Type        ContradictionType
	Severity    Severity
	Description string
	Statements  []string
}

// Checker validates claims against matched-variant ground truth and
// against each other.
type Checker struct {
	logger *zap.Logger
}

// NewChecker creates a checker.
func NewChecker() *Checker {
	return &Checker{logger: zap.NewNop()}
}

// SetLogger sets the logger for check diagnostics.
func (c *Checker) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Check runs both consistency checks and returns all contradictions.
func (c *Checker) Check(claims []Claim, matched []*match.Matched) []Contradiction {
	var out []Contradiction
	out = append(out, c.checkGroundTruth(claims, matched)...)
	out = append(out, c.checkInternal(claims)...)
	return out
}

// checkGroundTruth cross-references enzyme-activity claims against the
// known functional status of the variant they reference.
func (c *Checker) checkGroundTruth(claims []Claim, matched []*match.Matched) []Contradiction {
	var out []Contradiction

	for _, claim := range claims {
		if claim.Type != ClaimEnzymeActivity {
			continue
		}

		variant := resolveVariant(claim, matched)
		if variant == nil {
			continue
		}

		status := variant.Entry.Function
		switch {
		case status == reference.StatusNoFunction && claim.Direction == DirectionIncrease:
			out = append(out, Contradiction{
				Type:     ContradictionEnzymeMismatch,
				Severity: SeverityHigh,
				Description: fmt.Sprintf(
					"claim reports increased activity for %s, but its known functional status is no_function",
					variantName(variant)),
				Statements: []string{claim.Sentence},
			})
		case status == reference.StatusDecreased && claim.Direction == DirectionIncrease:
			out = append(out, Contradiction{
				Type:     ContradictionEnzymeMismatch,
				Severity: SeverityMedium,
				Description: fmt.Sprintf(
					"claim reports increased activity for %s, but its known functional status is decreased",
					variantName(variant)),
				Statements: []string{claim.Sentence},
			})
		case status == reference.StatusIncreased && claim.Direction.lowersActivity():
			out = append(out, Contradiction{
				Type:     ContradictionEnzymeMismatch,
				Severity: SeverityMedium,
				Description: fmt.Sprintf(
					"claim reports %sd activity for %s, but its known functional status is increased",
					claim.Direction, variantName(variant)),
				Statements: []string{claim.Sentence},
			})
		}
	}

	return out
}

// checkInternal flags direction conflicts within the text itself:
// per referenced variant (high severity), and per subject for claim
// groups that never name a specific variant (medium severity, so
// per-variant conflicts are not double-reported).
func (c *Checker) checkInternal(claims []Claim) []Contradiction {
	var out []Contradiction

	byVariant := make(map[string][]Claim)
	bySubject := make(map[string][]Claim)
	subjectHasVariant := make(map[string]bool)

	// Groups are emitted in first-appearance order so output is stable
	// across runs.
	var variantOrder, subjectOrder []string

	for _, claim := range claims {
		if claim.VariantRef != "" {
			if _, seen := byVariant[claim.VariantRef]; !seen {
				variantOrder = append(variantOrder, claim.VariantRef)
			}
			byVariant[claim.VariantRef] = append(byVariant[claim.VariantRef], claim)
			if claim.Subject != "" {
				subjectHasVariant[claim.Subject] = true
			}
			continue
		}
		if claim.Subject != "" {
			if _, seen := bySubject[claim.Subject]; !seen {
				subjectOrder = append(subjectOrder, claim.Subject)
			}
			bySubject[claim.Subject] = append(bySubject[claim.Subject], claim)
		}
	}

	for _, ref := range variantOrder {
		if up, down, conflict := directionConflict(byVariant[ref]); conflict {
			out = append(out, Contradiction{
				Type:     ContradictionInternal,
				Severity: SeverityHigh,
				Description: fmt.Sprintf(
					"text makes conflicting activity claims about %s", ref),
				Statements: []string{up.Sentence, down.Sentence},
			})
		}
	}

	for _, subject := range subjectOrder {
		if subjectHasVariant[subject] {
			continue
		}
		if up, down, conflict := directionConflict(bySubject[subject]); conflict {
			out = append(out, Contradiction{
				Type:     ContradictionInternal,
				Severity: SeverityMedium,
				Description: fmt.Sprintf(
					"text makes conflicting claims about %s", subject),
				Statements: []string{up.Sentence, down.Sentence},
			})
		}
	}

	return out
}

// directionConflict reports whether a claim group contains both an
// increase claim and a decrease-or-eliminate claim.
func directionConflict(group []Claim) (up, down Claim, conflict bool) {
	var haveUp, haveDown bool
	for _, claim := range group {
		if claim.Direction == DirectionIncrease && !haveUp {
			up, haveUp = claim, true
		}
		if claim.Direction.lowersActivity() && !haveDown {
			down, haveDown = claim, true
		}
	}
	return up, down, haveUp && haveDown
}

// resolveVariant finds the matched variant a claim refers to: by rs
// identifier or star allele first, then by same-gene fallback.
func resolveVariant(claim Claim, matched []*match.Matched) *match.Matched {
	if claim.VariantRef != "" {
		for _, m := range matched {
			if m.Entry.RSID == claim.VariantRef || m.Entry.StarAllele == claim.VariantRef {
				return m
			}
		}
	}
	if claim.Subject != "" {
		for _, m := range matched {
			if m.Entry.Gene == claim.Subject {
				return m
			}
		}
	}
	return nil
}

func variantName(m *match.Matched) string {
	if m.Entry.RSID != "" {
		return m.Entry.RSID
	}
	return m.Entry.Gene + m.Entry.StarAllele
}

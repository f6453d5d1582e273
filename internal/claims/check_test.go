package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/match"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/reference"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/vcf"
)

func matchedWith(rsid, gene, star string, status reference.FunctionalStatus) *match.Matched {
	return &match.Matched{
		Record: &vcf.Record{ID: rsid},
		Entry: &reference.Entry{
			RSID:       rsid,
			Gene:       gene,
			StarAllele: star,
			Function:   status,
		},
	}
}

func TestCheck_NoFunctionClaimedAsIncrease(t *testing.T) {
	c := NewChecker()

	claims := Extract("rs123 increases enzyme activity.")
	matched := []*match.Matched{
		matchedWith("rs123", "CYP2D6", "*4", reference.StatusNoFunction),
	}

	contradictions := c.Check(claims, matched)
	require.Len(t, contradictions, 1)

	got := contradictions[0]
	assert.Equal(t, ContradictionEnzymeMismatch, got.Type)
	assert.Equal(t, SeverityHigh, got.Severity)
	assert.Contains(t, got.Description, "rs123")
	require.Len(t, got.Statements, 1)
	assert.Contains(t, got.Statements[0], "rs123 increases")
}

func TestCheck_DecreasedClaimedAsIncreaseIsMedium(t *testing.T) {
	c := NewChecker()

	claims := Extract("rs1065852 increases CYP2D6 enzyme activity.")
	matched := []*match.Matched{
		matchedWith("rs1065852", "CYP2D6", "*10", reference.StatusDecreased),
	}

	contradictions := c.Check(claims, matched)
	require.Len(t, contradictions, 1)
	assert.Equal(t, SeverityMedium, contradictions[0].Severity)
}

func TestCheck_IncreasedClaimedAsDecreaseIsMedium(t *testing.T) {
	c := NewChecker()

	claims := Extract("rs12248560 decreases enzyme activity.")
	matched := []*match.Matched{
		matchedWith("rs12248560", "CYP2C19", "*17", reference.StatusIncreased),
	}

	contradictions := c.Check(claims, matched)
	require.Len(t, contradictions, 1)
	assert.Equal(t, ContradictionEnzymeMismatch, contradictions[0].Type)
	assert.Equal(t, SeverityMedium, contradictions[0].Severity)
}

func TestCheck_ConsistentClaimNoContradiction(t *testing.T) {
	c := NewChecker()

	claims := Extract("rs123 eliminates enzyme activity.")
	matched := []*match.Matched{
		matchedWith("rs123", "CYP2D6", "*4", reference.StatusNoFunction),
	}

	assert.Empty(t, c.Check(claims, matched))
}

func TestCheck_StarAlleleReference(t *testing.T) {
	c := NewChecker()

	claims := Extract("The *4 allele increases enzyme activity.")
	matched := []*match.Matched{
		matchedWith("rs3892097", "CYP2D6", "*4", reference.StatusNoFunction),
	}

	contradictions := c.Check(claims, matched)
	require.Len(t, contradictions, 1)
	assert.Equal(t, SeverityHigh, contradictions[0].Severity)
}

func TestCheck_SameGeneFallbackResolution(t *testing.T) {
	c := NewChecker()

	// No variant token in the sentence; resolved through the gene subject.
	claims := Extract("CYP2D6 enzyme activity is increased in this patient.")
	require.Len(t, claims, 1)
	require.Empty(t, claims[0].VariantRef)

	matched := []*match.Matched{
		matchedWith("rs3892097", "CYP2D6", "*4", reference.StatusNoFunction),
	}

	contradictions := c.Check(claims, matched)
	require.Len(t, contradictions, 1)
	assert.Equal(t, SeverityHigh, contradictions[0].Severity)
}

func TestCheck_UnresolvedClaimIsIgnored(t *testing.T) {
	c := NewChecker()

	claims := Extract("rs999 increases enzyme activity.")
	matched := []*match.Matched{
		matchedWith("rs123", "CYP2D6", "*4", reference.StatusNoFunction),
	}

	assert.Empty(t, c.Check(claims, matched))
}

func TestCheck_InternalContradictionPerVariant(t *testing.T) {
	c := NewChecker()

	text := "rs123 increases enzyme activity. However, rs123 decreases enzyme activity."
	claims := Extract(text)
	require.Len(t, claims, 2)

	contradictions := c.Check(claims, nil)
	require.Len(t, contradictions, 1)

	got := contradictions[0]
	assert.Equal(t, ContradictionInternal, got.Type)
	assert.Equal(t, SeverityHigh, got.Severity)
	assert.Len(t, got.Statements, 2)
}

func TestCheck_InternalContradictionPerSubject(t *testing.T) {
	c := NewChecker()

	// Conflicting directions for the same gene, no variant named anywhere.
	text := "CYP2D6 enzyme activity is increased. CYP2D6 enzyme activity is decreased."
	claims := Extract(text)
	require.Len(t, claims, 2)

	contradictions := c.Check(claims, nil)
	require.Len(t, contradictions, 1)
	assert.Equal(t, ContradictionInternal, contradictions[0].Type)
	assert.Equal(t, SeverityMedium, contradictions[0].Severity)
}

func TestCheck_SubjectGroupSkippedWhenVariantNamed(t *testing.T) {
	c := NewChecker()

	// The variant-referencing claim already covers this conflict; the
	// subject-level check must not double-report it.
	text := "CYP2D6 rs123 increases enzyme activity. CYP2D6 enzyme activity is decreased."
	claims := Extract(text)
	require.Len(t, claims, 2)

	contradictions := c.Check(claims, nil)
	assert.Empty(t, contradictions)
}

func TestCheck_ContradictionOrderStable(t *testing.T) {
	c := NewChecker()

	text := "rs111 increases enzyme activity. rs111 decreases enzyme activity. " +
		"rs222 increases enzyme activity. rs222 decreases enzyme activity."
	extracted := Extract(text)
	require.Len(t, extracted, 4)

	first := c.Check(extracted, nil)
	require.Len(t, first, 2)
	assert.Contains(t, first[0].Description, "rs111")
	assert.Contains(t, first[1].Description, "rs222")

	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Check(extracted, nil))
	}
}

func TestCheck_EmptyInputs(t *testing.T) {
	c := NewChecker()

	assert.Empty(t, c.Check(nil, nil))
	assert.Empty(t, c.Check(Extract("rs123 increases enzyme activity."), nil))
}

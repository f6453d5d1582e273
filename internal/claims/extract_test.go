package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_EnzymeActivityClaim(t *testing.T) {
	claims := Extract("The CYP2D6*4 allele rs3892097 eliminates enzyme activity.")

	require.Len(t, claims, 1)
	c := claims[0]
	assert.Equal(t, ClaimEnzymeActivity, c.Type)
	assert.Equal(t, "CYP2D6", c.Subject)
	assert.Equal(t, DirectionEliminate, c.Direction)
	assert.Equal(t, "rs3892097", c.VariantRef)
}

func TestExtract_DrugEfficacyClaim(t *testing.T) {
	claims := Extract("Clopidogrel efficacy is reduced in carriers of CYP2C19*2.")

	require.Len(t, claims, 1)
	c := claims[0]
	assert.Equal(t, ClaimDrugEfficacy, c.Type)
	assert.Equal(t, "clopidogrel", c.Subject)
	assert.Equal(t, DirectionDecrease, c.Direction)
	assert.Equal(t, "*2", c.VariantRef)
}

func TestExtract_SentenceCanYieldBothClaimTypes(t *testing.T) {
	claims := Extract("Reduced CYP2C19 enzyme activity lowers the effectiveness of clopidogrel.")

	require.Len(t, claims, 2)
	assert.Equal(t, ClaimEnzymeActivity, claims[0].Type)
	assert.Equal(t, "CYP2C19", claims[0].Subject)
	assert.Equal(t, ClaimDrugEfficacy, claims[1].Type)
	assert.Equal(t, "clopidogrel", claims[1].Subject)
}

func TestExtract_DirectionFamilies(t *testing.T) {
	tests := []struct {
		sentence string
		want     Direction
	}{
		{"rs123 increases enzyme activity", DirectionIncrease},
		{"The variant elevates metabolism of the drug", DirectionIncrease},
		{"rs123 decreases enzyme activity", DirectionDecrease},
		{"Enzyme function is impaired by this variant", DirectionDecrease},
		{"The allele abolishes enzymatic function", DirectionEliminate},
		{"There is a complete loss of enzyme activity", DirectionEliminate},
	}

	for _, tt := range tests {
		claims := Extract(tt.sentence)
		require.NotEmpty(t, claims, "no claim extracted from %q", tt.sentence)
		assert.Equal(t, tt.want, claims[0].Direction, "sentence %q", tt.sentence)
	}
}

func TestExtract_NoDirectionNoClaim(t *testing.T) {
	assert.Empty(t, Extract("CYP2D6 is an enzyme expressed in the liver."))
}

func TestExtract_NoVocabularyNoClaim(t *testing.T) {
	assert.Empty(t, Extract("The patient's weight increased during treatment."))
}

func TestExtract_EmptyText(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("   \n  "))
}

func TestExtract_MultipleSentences(t *testing.T) {
	text := "CYP2D6 activity is decreased in carriers of rs3892097. " +
		"Unrelated sentence about the weather. " +
		"Codeine response is reduced for this patient."

	claims := Extract(text)
	require.Len(t, claims, 2)
	assert.Equal(t, ClaimEnzymeActivity, claims[0].Type)
	assert.Equal(t, "rs3892097", claims[0].VariantRef)
	assert.Equal(t, ClaimDrugEfficacy, claims[1].Type)
	assert.Equal(t, "codeine", claims[1].Subject)
}

func TestExtract_FirstTokensRecorded(t *testing.T) {
	claims := Extract("Both CYP2C9 and VKORC1 variants rs1799853 and rs9923231 reduce warfarin metabolism.")

	require.NotEmpty(t, claims)
	assert.Equal(t, "CYP2C9", claims[0].Subject)
	assert.Equal(t, "rs1799853", claims[0].VariantRef)
}

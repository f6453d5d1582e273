// Package claims extracts directional biological claims from narrative
// text and flags contradictions against known functional effects. The
// keyword heuristics are a best-effort signal, not a ground-truth oracle.
package claims

import (
	"regexp"
	"strings"
)

// ClaimType categorizes the nature of a claim.
type ClaimType string

const (
	ClaimEnzymeActivity ClaimType = "enzyme_activity"
	ClaimDrugEfficacy   ClaimType = "drug_efficacy"
)

// Direction is the claimed effect direction.
type Direction string

const (
	DirectionIncrease  Direction = "increase"
	DirectionDecrease  Direction = "decrease"
	DirectionEliminate Direction = "eliminate"
	DirectionUnknown   Direction = "unknown"
)

// Claim is a directional biological assertion extracted from one sentence.
type Claim struct {
	Type       ClaimType
	Subject    string // gene or drug name
	Direction  Direction
	Sentence   string
	VariantRef string // rs identifier or star allele, if any
}

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

	geneRe = regexp.MustCompile(`\b(CYP\d+[A-Z]\d+|VKORC1|TPMT|DPYD|SLCO1B1|UGT1A1|NUDT15|NAT2|G6PD)\b`)
	rsidRe = regexp.MustCompile(`\brs\d+\b`)
	starRe = regexp.MustCompile(`\*\d+[A-Z]?`)

	enzymeVocabRe   = regexp.MustCompile(`(?i)\b(enzyme|enzymatic|activity|metaboli[sz]\w*|function\w*)\b`)
	efficacyVocabRe = regexp.MustCompile(`(?i)\b(efficacy|effectiveness|response|effective)\b`)

	eliminateRe = regexp.MustCompile(`(?i)\b(eliminat\w*|abolish\w*|absent|absence|loss of|lack of|non-?functional|no activity)\b`)
	increaseRe  = regexp.MustCompile(`(?i)\b(increas\w*|elevat\w*|enhanc\w*|higher|greater|ultrarapid)\b`)
	decreaseRe  = regexp.MustCompile(`(?i)\b(decreas\w*|reduc\w*|lower\w*|diminish\w*|impair\w*|poor)\b`)
)

// knownDrugs is the drug lexicon used to pick efficacy-claim subjects.
var knownDrugs = []string{
	"codeine", "tramadol", "tamoxifen", "fluoxetine",
	"clopidogrel", "omeprazole", "escitalopram",
	"warfarin", "phenytoin",
	"azathioprine", "mercaptopurine",
	"fluorouracil", "capecitabine",
	"simvastatin",
}

// Extract splits text into sentences and extracts enzyme-activity and
// drug-efficacy claims. A sentence can yield one of each. Empty input
// yields no claims.
func Extract(text string) []Claim {
	var claims []Claim

	for _, sentence := range splitSentences(text) {
		dir := direction(sentence)
		if dir == DirectionUnknown {
			continue
		}

		gene := firstGene(sentence)
		variantRef := firstVariantRef(sentence)

		if enzymeVocabRe.MatchString(sentence) {
			claims = append(claims, Claim{
				Type:       ClaimEnzymeActivity,
				Subject:    gene,
				Direction:  dir,
				Sentence:   sentence,
				VariantRef: variantRef,
			})
		}

		if efficacyVocabRe.MatchString(sentence) {
			subject := firstDrug(sentence)
			if subject == "" {
				subject = gene
			}
			claims = append(claims, Claim{
				Type:       ClaimDrugEfficacy,
				Subject:    subject,
				Direction:  dir,
				Sentence:   sentence,
				VariantRef: variantRef,
			})
		}
	}

	return claims
}

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// direction resolves the claimed direction. Eliminate-family terms are
// checked first since they subsume decrease.
func direction(sentence string) Direction {
	switch {
	case eliminateRe.MatchString(sentence):
		return DirectionEliminate
	case increaseRe.MatchString(sentence):
		return DirectionIncrease
	case decreaseRe.MatchString(sentence):
		return DirectionDecrease
	default:
		return DirectionUnknown
	}
}

func firstGene(sentence string) string {
	return geneRe.FindString(sentence)
}

// firstVariantRef returns the first rs identifier or star-allele token.
func firstVariantRef(sentence string) string {
	if rs := rsidRe.FindString(sentence); rs != "" {
		return rs
	}
	return starRe.FindString(sentence)
}

func firstDrug(sentence string) string {
	lower := strings.ToLower(sentence)
	first := ""
	firstIdx := -1
	for _, drug := range knownDrugs {
		if idx := strings.Index(lower, drug); idx >= 0 {
			if firstIdx < 0 || idx < firstIdx {
				first, firstIdx = drug, idx
			}
		}
	}
	return first
}

// lowersActivity reports whether the direction claims reduced or
// abolished activity.
func (d Direction) lowersActivity() bool {
	return d == DirectionDecrease || d == DirectionEliminate
}

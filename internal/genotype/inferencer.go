// Package genotype derives per-gene diplotype and metabolizer phenotype
// calls from matched variants.
package genotype

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/match"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/reference"
)

// WildType is the default allele label assumed for unobserved chromosomes.
const WildType = "*1"

// Phenotype is the metabolizer class derived from diplotype activity.
type Phenotype string

const (
	PhenotypePM      Phenotype = "PM"  // Poor Metabolizer
	PhenotypeIM      Phenotype = "IM"  // Intermediate Metabolizer
	PhenotypeNM      Phenotype = "NM"  // Normal Metabolizer
	PhenotypeRM      Phenotype = "RM"  // Rapid Metabolizer
	PhenotypeURM     Phenotype = "URM" // Ultra-rapid Metabolizer
	PhenotypeUnknown Phenotype = "Unknown"
)

// Describe returns the long-form metabolizer class name.
func (p Phenotype) Describe() string {
	switch p {
	case PhenotypePM:
		return "Poor Metabolizer"
	case PhenotypeIM:
		return "Intermediate Metabolizer"
	case PhenotypeNM:
		return "Normal Metabolizer"
	case PhenotypeRM:
		return "Rapid Metabolizer"
	case PhenotypeURM:
		return "Ultra-rapid Metabolizer"
	default:
		return "Unknown"
	}
}

// GeneCall is the per-gene diplotype and phenotype call.
type GeneCall struct {
	Gene          string
	Diplotype     string
	Phenotype     Phenotype
	ActivityScore float64
}

// Inferencer derives gene calls from matched variants.
type Inferencer struct {
	logger *zap.Logger
}

// NewInferencer creates an inferencer.
func NewInferencer() *Inferencer {
	return &Inferencer{logger: zap.NewNop()}
}

// SetLogger sets the logger for inference warnings.
func (in *Inferencer) SetLogger(l *zap.Logger) {
	in.logger = l
}

// Infer derives the diplotype and phenotype for one gene from its matched
// variants. With no variants the wild-type diplotype and Normal phenotype
// are returned.
func (in *Inferencer) Infer(gene string, variants []*match.Matched) GeneCall {
	if len(variants) == 0 {
		return in.call(gene, WildType, WildType, nil)
	}

	// Count allele copies: for each variant, the number of non-reference
	// zygosity slots in its genotype contributes to its allele label.
	copies := make(map[string]int)
	status := make(map[string]reference.FunctionalStatus)
	var order []string

	for _, v := range variants {
		label := v.Entry.AlleleLabel()
		if _, seen := status[label]; !seen {
			status[label] = v.Entry.Function
			order = append(order, label)
		}
		copies[label] += altCopies(v.Record.Genotype)
	}

	var present []string
	for _, label := range order {
		if copies[label] > 0 {
			present = append(present, label)
		}
	}

	var a, b string
	switch len(present) {
	case 0:
		// All genotypes were homozygous reference or no-call.
		in.logger.Warn("no alternate allele copies observed, assuming wild-type",
			zap.String("gene", gene))
		a, b = WildType, WildType
	case 1:
		a = present[0]
		if copies[a] >= 2 {
			b = a
		} else {
			b = WildType
		}
	case 2:
		a, b = present[0], present[1]
	default:
		// Unphased ambiguity: keep the two highest-copy alleles.
		sort.SliceStable(present, func(i, j int) bool {
			return copies[present[i]] > copies[present[j]]
		})
		in.logger.Warn("more than two distinct alleles, keeping two highest-count",
			zap.String("gene", gene),
			zap.Strings("alleles", present))
		a, b = present[0], present[1]
	}

	return in.call(gene, a, b, status)
}

// call assembles the GeneCall with a lexicographically ordered diplotype.
func (in *Inferencer) call(gene, a, b string, status map[string]reference.FunctionalStatus) GeneCall {
	if a > b {
		a, b = b, a
	}

	score := alleleActivity(a, status) + alleleActivity(b, status)

	return GeneCall{
		Gene:          gene,
		Diplotype:     a + "/" + b,
		Phenotype:     classify(score),
		ActivityScore: score,
	}
}

// altCopies counts the non-reference slots in a genotype string.
// Genotypes are delimited by "/" or "|"; "." slots are not counted.
func altCopies(gt string) int {
	if gt == "" {
		return 0
	}
	slots := strings.FieldsFunc(gt, func(r rune) bool {
		return r == '/' || r == '|'
	})
	n := 0
	for _, s := range slots {
		if s != "0" && s != "." {
			n++
		}
	}
	return n
}

// alleleActivity returns the activity weight for one diplotype allele.
func alleleActivity(label string, status map[string]reference.FunctionalStatus) float64 {
	if label == WildType {
		return 1.0
	}
	if s, ok := status[label]; ok {
		return s.ActivityWeight()
	}
	return 1.0
}

// classify maps a summed activity score to a metabolizer class.
// The banding is a compatibility contract; do not re-derive it.
func classify(score float64) Phenotype {
	switch {
	case score == 0:
		return PhenotypePM
	case score <= 1:
		return PhenotypeIM
	case score <= 2:
		return PhenotypeNM
	case score <= 2.5:
		return PhenotypeRM
	default:
		return PhenotypeURM
	}
}

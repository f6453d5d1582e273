// Package vcf provides parsing and serialization for pharmacogenomic
// variant files in the tab-separated VCF dialect consumed by the pipeline.
package vcf

import "strings"

// NoCall is the genotype token used when no genotype column is present.
const NoCall = "./."

// Record represents a single variant line from an input file.
// Records are immutable after parsing.
type Record struct {
	Chrom  string                 // Chromosome name (e.g., "22", "chr22")
	Pos    int64                  // 1-based genomic position
	ID     string                 // Variant identifier (rs ID); empty when "."
	Ref    string                 // Reference allele
	Alt    string                 // Alternate allele(s), comma-separated as written
	Qual   float64                // Quality score; 0 when "."
	Filter string                 // Filter status (PASS or filter name)
	Info   map[string]interface{} // INFO field key-value pairs

	Genotype string // GT value from the sample column, or NoCall

	// Derived annotation tags, extracted from Info under accepted aliases.
	// Empty when neither alias is present.
	Gene          string // gene symbol (GENE, GENE_SYMBOL)
	StarAllele    string // star-allele designation (STAR, STAR_ALLELE)
	RSID          string // external identifier (RS, RSID)
	EvidenceLevel string // evidence-level code (CPIC, CPIC_LEVEL)
}

// Accepted INFO key spellings per derived tag, checked in order.
var (
	geneAliases     = []string{"GENE", "GENE_SYMBOL"}
	starAliases     = []string{"STAR", "STAR_ALLELE"}
	rsidAliases     = []string{"RS", "RSID"}
	evidenceAliases = []string{"CPIC", "CPIC_LEVEL"}
)

// lookupTag returns the first alias present in the info map with a string value.
func lookupTag(info map[string]interface{}, aliases []string) string {
	for _, key := range aliases {
		if v, ok := info[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// extractTags fills the derived annotation fields from the INFO map.
func (r *Record) extractTags() {
	r.Gene = lookupTag(r.Info, geneAliases)
	r.StarAllele = lookupTag(r.Info, starAliases)
	r.RSID = lookupTag(r.Info, rsidAliases)
	r.EvidenceLevel = lookupTag(r.Info, evidenceAliases)
}

// HasIdentifier reports whether the record carries a usable variant identifier.
func (r *Record) HasIdentifier() bool {
	return r.ID != "" && r.ID != "."
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (r *Record) IsSNV() bool {
	return len(r.Ref) == 1 && len(r.Alt) == 1
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (r *Record) NormalizeChrom() string {
	if len(r.Chrom) > 3 && strings.HasPrefix(r.Chrom, "chr") {
		return r.Chrom[3:]
	}
	return r.Chrom
}

package reference

// Builtin returns the built-in curated table of well-characterized
// pharmacogene variants. Positions are GRCh38. The returned slice is a
// fresh copy; callers may not rely on entry identity across calls.
func Builtin() []*Entry {
	entries := []*Entry{
		{
			RSID: "rs3892097", Gene: "CYP2D6", StarAllele: "*4",
			Chrom: "22", Pos: 42130692, Ref: "C", Alt: "T",
			Function: StatusNoFunction, Evidence: EvidenceA,
			Significance: "Splicing defect abolishing CYP2D6 activity",
			Drugs:        []string{"codeine", "tramadol", "tamoxifen"},
		},
		{
			RSID: "rs1065852", Gene: "CYP2D6", StarAllele: "*10",
			Chrom: "22", Pos: 42130761, Ref: "G", Alt: "A",
			Function: StatusDecreased, Evidence: EvidenceA,
			Significance: "P34S substitution with reduced enzyme stability",
			Drugs:        []string{"codeine", "tamoxifen"},
		},
		{
			RSID: "rs28371706", Gene: "CYP2D6", StarAllele: "*17",
			Chrom: "22", Pos: 42129770, Ref: "G", Alt: "A",
			Function: StatusDecreased, Evidence: EvidenceB,
			Significance: "T107I substitution with reduced activity",
			Drugs:        []string{"codeine"},
		},
		{
			RSID: "rs4244285", Gene: "CYP2C19", StarAllele: "*2",
			Chrom: "10", Pos: 94781859, Ref: "G", Alt: "A",
			Function: StatusNoFunction, Evidence: EvidenceA,
			Significance: "Splicing defect, no active enzyme",
			Drugs:        []string{"clopidogrel", "omeprazole", "escitalopram"},
		},
		{
			RSID: "rs4986893", Gene: "CYP2C19", StarAllele: "*3",
			Chrom: "10", Pos: 94780653, Ref: "G", Alt: "A",
			Function: StatusNoFunction, Evidence: EvidenceA,
			Significance: "Premature stop codon W212X",
			Drugs:        []string{"clopidogrel"},
		},
		{
			RSID: "rs12248560", Gene: "CYP2C19", StarAllele: "*17",
			Chrom: "10", Pos: 94761900, Ref: "C", Alt: "T",
			Function: StatusIncreased, Evidence: EvidenceA,
			Significance: "Promoter variant with increased transcription",
			Drugs:        []string{"clopidogrel", "escitalopram"},
		},
		{
			RSID: "rs1799853", Gene: "CYP2C9", StarAllele: "*2",
			Chrom: "10", Pos: 94942290, Ref: "C", Alt: "T",
			Function: StatusDecreased, Evidence: EvidenceA,
			Significance: "R144C substitution with reduced warfarin clearance",
			Drugs:        []string{"warfarin", "phenytoin"},
		},
		{
			RSID: "rs1057910", Gene: "CYP2C9", StarAllele: "*3",
			Chrom: "10", Pos: 94981296, Ref: "A", Alt: "C",
			Function: StatusDecreased, Evidence: EvidenceA,
			Significance: "I359L substitution, strongly reduced activity",
			Drugs:        []string{"warfarin", "phenytoin"},
		},
		{
			RSID: "rs9923231", Gene: "VKORC1",
			Chrom: "16", Pos: 31096368, Ref: "C", Alt: "T",
			Function: StatusDecreased, Evidence: EvidenceA,
			Significance: "-1639G>A promoter variant, reduced VKORC1 expression",
			Drugs:        []string{"warfarin"},
		},
		{
			RSID: "rs1142345", Gene: "TPMT", StarAllele: "*3C",
			Chrom: "6", Pos: 18130918, Ref: "A", Alt: "G",
			Function: StatusNoFunction, Evidence: EvidenceA,
			Significance: "Y240C substitution, protein degradation",
			Drugs:        []string{"azathioprine", "mercaptopurine"},
		},
		{
			RSID: "rs3918290", Gene: "DPYD", StarAllele: "*2A",
			Chrom: "1", Pos: 97450058, Ref: "G", Alt: "A",
			Function: StatusNoFunction, Evidence: EvidenceA,
			Significance: "Splice donor variant, DPD deficiency",
			Drugs:        []string{"fluorouracil", "capecitabine"},
		},
		{
			RSID: "rs4149056", Gene: "SLCO1B1", StarAllele: "*5",
			Chrom: "12", Pos: 21178615, Ref: "T", Alt: "C",
			Function: StatusDecreased, Evidence: EvidenceA,
			Significance: "V174A substitution, reduced hepatic statin uptake",
			Drugs:        []string{"simvastatin"},
		},
	}

	out := make([]*Entry, len(entries))
	copy(out, entries)
	return out
}

// GeneDrugs returns the static gene-to-drugs mapping used for per-drug
// metrics and narrative generation.
func GeneDrugs() map[string][]string {
	return map[string][]string{
		"CYP2D6":  {"codeine", "tramadol", "tamoxifen", "fluoxetine"},
		"CYP2C19": {"clopidogrel", "omeprazole", "escitalopram"},
		"CYP2C9":  {"warfarin", "phenytoin"},
		"VKORC1":  {"warfarin"},
		"TPMT":    {"azathioprine", "mercaptopurine"},
		"DPYD":    {"fluorouracil", "capecitabine"},
		"SLCO1B1": {"simvastatin"},
	}
}

// Genes returns the set of genes covered by a reference table.
func Genes(entries []*Entry) map[string]bool {
	genes := make(map[string]bool, len(entries))
	for _, e := range entries {
		genes[e.Gene] = true
	}
	return genes
}

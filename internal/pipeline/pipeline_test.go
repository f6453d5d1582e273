package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/genotype"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/match"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/metrics"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/narrative"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/reference"
)

const sampleInput = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	SAMPLE
22	42130692	rs3892097	C	T	35.2	PASS	GENE=CYP2D6;STAR=*4;RS=rs3892097;CPIC=A	GT	0/1
`

func newTestPipeline() *Pipeline {
	return New(reference.Builtin(), reference.GeneDrugs())
}

func TestRun_EndToEnd(t *testing.T) {
	p := newTestPipeline()

	res, err := p.Run(context.Background(), strings.NewReader(sampleInput))
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	require.Len(t, res.Candidates, 1)
	require.Len(t, res.Matched, 1)
	assert.Empty(t, res.Unmatched)
	assert.Zero(t, res.ParseErrors)

	m := res.Matched[0]
	assert.Equal(t, match.StrategyRSID, m.Strategy)
	assert.Equal(t, "rs3892097", m.Entry.RSID)

	require.Len(t, res.GeneCalls, 1)
	call := res.GeneCalls[0]
	assert.Equal(t, "CYP2D6", call.Gene)
	assert.Equal(t, "*1/*4", call.Diplotype)
	assert.Equal(t, genotype.PhenotypeIM, call.Phenotype)

	assert.Greater(t, res.Confidence, 0.0)
	assert.LessOrEqual(t, res.Confidence, 1.0)

	assert.Equal(t, metrics.StateAllMatched, res.Metrics.DetectionState)
	require.True(t, res.Metrics.CompletenessKnown)
	assert.Equal(t, 1.0, res.Metrics.Completeness)

	ok, errs := metrics.Validate(res.Metrics)
	assert.True(t, ok, "invariant violations: %v", errs)

	require.Len(t, res.Narratives, 1)
	gn := res.Narratives[0]
	assert.Equal(t, "CYP2D6", gn.Gene)
	assert.Equal(t, "codeine", gn.Drug)
	assert.NotEmpty(t, gn.Narrative.Summary)

	// Fallback narratives must be internally consistent.
	assert.Empty(t, res.Contradictions)
}

func TestRun_NoDataLines(t *testing.T) {
	p := newTestPipeline()

	input := "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"
	res, err := p.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Empty(t, res.Records)
	assert.Equal(t, metrics.StateNoRecords, res.Metrics.DetectionState)
	assert.False(t, res.Metrics.CompletenessKnown)
	assert.Empty(t, res.GeneCalls)
	assert.Empty(t, res.Narratives)
}

func TestRun_InvalidFormat(t *testing.T) {
	p := newTestPipeline()

	_, err := p.Run(context.Background(), strings.NewReader("not a variant file\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input format")
}

func TestRun_NonCandidatesFiltered(t *testing.T) {
	p := newTestPipeline()

	input := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		// Gene outside the reference table.
		"1\t1000\trs555\tA\tG\t40\tPASS\tGENE=BRCA1\n" +
		// No gene tag, but the identifier is known.
		"22\t42130692\trs3892097\tC\tT\t35\tPASS\tDP=10\n"

	res, err := p.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Len(t, res.Records, 2)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "rs3892097", res.Candidates[0].ID)
	assert.Equal(t, metrics.StateAllMatched, res.Metrics.DetectionState)
}

func TestRun_DrugFilter(t *testing.T) {
	p := newTestPipeline()
	p.SetDrug("tamoxifen")

	res, err := p.Run(context.Background(), strings.NewReader(sampleInput))
	require.NoError(t, err)

	require.Len(t, res.Narratives, 1)
	assert.Equal(t, "tamoxifen", res.Narratives[0].Drug)

	// A drug the called gene does not metabolize yields no narrative.
	p.SetDrug("warfarin")
	res, err = p.Run(context.Background(), strings.NewReader(sampleInput))
	require.NoError(t, err)
	assert.Empty(t, res.Narratives)
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, narrative.Request) (*narrative.Narrative, error) {
	return nil, errors.New("collaborator unavailable")
}

func TestRun_GeneratorFailureFallsBack(t *testing.T) {
	p := newTestPipeline()
	p.SetGenerator(failingGenerator{})

	res, err := p.Run(context.Background(), strings.NewReader(sampleInput))
	require.NoError(t, err)

	require.Len(t, res.Narratives, 1)
	assert.NotEmpty(t, res.Narratives[0].Narrative.Summary)
}

func TestRun_SoftParseErrorsCounted(t *testing.T) {
	p := newTestPipeline()

	input := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"22\tnotanumber\trs1\tC\tT\t30\tPASS\t.\n" +
		"22\t42130692\trs3892097\tC\tT\t35.2\tPASS\tGENE=CYP2D6;STAR=*4\n"

	res, err := p.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, res.ParseErrors)
	assert.Len(t, res.Records, 1)
	assert.Len(t, res.Matched, 1)
}

func TestRun_NegativeQualIsSoftError(t *testing.T) {
	p := newTestPipeline()

	input := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"22\t42130692\trs3892097\tC\tT\t-10\tPASS\tGENE=CYP2D6;STAR=*4\n" +
		"10\t94781859\trs4244285\tG\tA\t42\tPASS\tGENE=CYP2C19;STAR=*2\n"

	res, err := p.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err, "a bad quality value on one line must not abort the run")

	assert.Equal(t, 1, res.ParseErrors)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "rs4244285", res.Records[0].ID)

	ok, errs := metrics.Validate(res.Metrics)
	assert.True(t, ok, "invariant violations: %v", errs)
	assert.GreaterOrEqual(t, res.Metrics.AverageQuality, 0.0)
}

func TestAnalyze_MultiGene(t *testing.T) {
	p := newTestPipeline()

	input := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\n" +
		"22\t42130692\trs3892097\tC\tT\t35\tPASS\tGENE=CYP2D6;STAR=*4\tGT\t1/1\n" +
		"10\t94781859\trs4244285\tG\tA\t42\tPASS\tGENE=CYP2C19;STAR=*2\tGT\t0/1\n"

	res, err := p.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.GeneCalls, 2)
	// Gene order follows first appearance in the input.
	assert.Equal(t, "CYP2D6", res.GeneCalls[0].Gene)
	assert.Equal(t, "*4/*4", res.GeneCalls[0].Diplotype)
	assert.Equal(t, genotype.PhenotypePM, res.GeneCalls[0].Phenotype)
	assert.Equal(t, "CYP2C19", res.GeneCalls[1].Gene)
	assert.Equal(t, "*1/*2", res.GeneCalls[1].Diplotype)

	assert.Len(t, res.Narratives, 2)
	assert.Equal(t, 2, res.Metrics.GeneCounts["CYP2D6"]+res.Metrics.GeneCounts["CYP2C19"])
}

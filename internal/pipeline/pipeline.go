// Package pipeline orchestrates the variant analysis stages: parsing,
// candidate selection, reference matching, genotype inference, confidence
// scoring, metrics aggregation, and narrative consistency checking.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/claims"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/confidence"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/genotype"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/match"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/metrics"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/narrative"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/reference"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/vcf"
)

// GeneNarrative pairs a generated narrative with its drug-gene context.
type GeneNarrative struct {
	Drug      string
	Gene      string
	Narrative *narrative.Narrative
}

// Result is the complete output of one pipeline run.
type Result struct {
	Records     []*vcf.Record
	Candidates  []*vcf.Record
	Matched     []*match.Matched
	Unmatched   []*vcf.Record
	ParseErrors int

	GeneCalls  []genotype.GeneCall
	Confidence float64
	Metrics    metrics.Metrics

	Narratives     []GeneNarrative
	Contradictions []claims.Contradiction
}

// Pipeline runs the full analysis over an immutable reference table.
type Pipeline struct {
	table     []*reference.Entry
	genes     map[string]bool
	geneDrugs map[string][]string
	generator narrative.Generator
	drug      string
	workers   int
	logger    *zap.Logger

	matcher    *match.Matcher
	inferencer *genotype.Inferencer
	scorer     *confidence.Scorer
	checker    *claims.Checker
}

// New creates a pipeline over the given reference table and gene-drug
// mapping. The narrative generator defaults to the deterministic fallback.
func New(table []*reference.Entry, geneDrugs map[string][]string) *Pipeline {
	p := &Pipeline{
		table:      table,
		genes:      reference.Genes(table),
		geneDrugs:  geneDrugs,
		generator:  narrative.Fallback{},
		logger:     zap.NewNop(),
		matcher:    match.New(table),
		inferencer: genotype.NewInferencer(),
		scorer:     confidence.NewScorer(),
		checker:    claims.NewChecker(),
	}
	return p
}

// SetLogger sets the logger used by all stages.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
	p.matcher.SetLogger(l)
	p.inferencer.SetLogger(l)
	p.scorer.SetLogger(l)
	p.checker.SetLogger(l)
}

// SetGenerator replaces the narrative generator. A nil generator restores
// the fallback.
func (p *Pipeline) SetGenerator(g narrative.Generator) {
	if g == nil {
		g = narrative.Fallback{}
	}
	p.generator = g
}

// SetWorkers sets the matching worker-pool size (0 = NumCPU).
func (p *Pipeline) SetWorkers(n int) {
	p.workers = n
}

// SetDrug restricts narrative generation to genes relevant to one drug.
// Empty means narratives for every called gene, using its first mapped drug.
func (p *Pipeline) SetDrug(drug string) {
	p.drug = drug
}

// Run validates, parses, and analyzes the input.
// Structural format errors (missing mandatory headers) are fatal;
// per-line malformities are counted in Result.ParseErrors.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if err := vcf.Validate(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}

	records, parseErrors, err := vcf.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return p.Analyze(ctx, records, parseErrors)
}

// Analyze runs every stage after parsing over already-parsed records.
func (p *Pipeline) Analyze(ctx context.Context, records []*vcf.Record, parseErrors int) (*Result, error) {
	res := &Result{
		Records:     records,
		ParseErrors: parseErrors,
	}

	res.Candidates = p.selectCandidates(records)
	res.Matched, res.Unmatched = p.matcher.ParallelMatchAll(res.Candidates, p.workers)

	res.GeneCalls = p.inferCalls(res.Matched)
	res.Confidence = p.scorer.Score(p.confidenceInputs(res))
	res.Metrics = metrics.Aggregate(res.Records, res.Candidates, res.Matched, res.Unmatched, p.geneDrugs)

	if ok, errs := metrics.Validate(res.Metrics); !ok {
		// Invariant violations here indicate a pipeline bug, not bad input.
		return nil, fmt.Errorf("metrics invariant violated: %v", errs)
	}

	p.generateNarratives(ctx, res)
	res.Contradictions = p.checkNarratives(res)

	return res, nil
}

// selectCandidates keeps records belonging to a gene of interest. Records
// without a gene tag still qualify when their identifier appears in the
// reference table.
func (p *Pipeline) selectCandidates(records []*vcf.Record) []*vcf.Record {
	rsids := make(map[string]bool, len(p.table))
	for _, e := range p.table {
		rsids[e.RSID] = true
	}

	var candidates []*vcf.Record
	for _, rec := range records {
		switch {
		case rec.Gene != "" && p.genes[rec.Gene]:
			candidates = append(candidates, rec)
		case rec.Gene == "" && rec.HasIdentifier() && rsids[rec.ID]:
			candidates = append(candidates, rec)
		}
	}
	return candidates
}

// inferCalls groups matched variants by gene in first-appearance order
// and infers one call per gene.
func (p *Pipeline) inferCalls(matched []*match.Matched) []genotype.GeneCall {
	byGene := make(map[string][]*match.Matched)
	var order []string

	for _, m := range matched {
		gene := m.Entry.Gene
		if _, seen := byGene[gene]; !seen {
			order = append(order, gene)
		}
		byGene[gene] = append(byGene[gene], m)
	}

	calls := make([]genotype.GeneCall, 0, len(order))
	for _, gene := range order {
		calls = append(calls, p.inferencer.Infer(gene, byGene[gene]))
	}
	return calls
}

func (p *Pipeline) confidenceInputs(res *Result) confidence.Inputs {
	in := confidence.Inputs{
		VariantCount: len(res.Matched),
	}

	for _, rec := range res.Candidates {
		in.Qualities = append(in.Qualities, rec.Qual)
	}
	for _, m := range res.Matched {
		if m.Entry.Evidence.Valid() {
			in.Evidence = append(in.Evidence, m.Entry.Evidence)
		}
	}
	if len(res.Candidates) > 0 {
		in.Completeness = float64(len(res.Matched)) / float64(len(res.Candidates))
	}

	return in
}

// generateNarratives produces one narrative per relevant drug-gene pair.
// Generator failures degrade to the deterministic fallback.
func (p *Pipeline) generateNarratives(ctx context.Context, res *Result) {
	byGene := make(map[string][]*match.Matched)
	for _, m := range res.Matched {
		byGene[m.Entry.Gene] = append(byGene[m.Entry.Gene], m)
	}

	for _, call := range res.GeneCalls {
		drug := p.drugForGene(call.Gene)
		if drug == "" {
			continue
		}

		req := narrative.Request{
			Drug:      drug,
			Gene:      call.Gene,
			Diplotype: call.Diplotype,
			Phenotype: call.Phenotype,
			Variants:  byGene[call.Gene],
		}

		n, err := p.generator.Generate(ctx, req)
		if err != nil {
			p.logger.Warn("narrative generation failed, using fallback",
				zap.String("gene", call.Gene),
				zap.Error(err))
			n, _ = narrative.Fallback{}.Generate(ctx, req)
		}

		res.Narratives = append(res.Narratives, GeneNarrative{
			Drug:      drug,
			Gene:      call.Gene,
			Narrative: n,
		})
	}
}

// drugForGene picks the drug a gene's narrative should discuss.
func (p *Pipeline) drugForGene(gene string) string {
	drugs := p.geneDrugs[gene]
	if p.drug != "" {
		for _, d := range drugs {
			if d == p.drug {
				return p.drug
			}
		}
		return ""
	}
	if len(drugs) > 0 {
		return drugs[0]
	}
	return ""
}

// checkNarratives runs claim extraction and consistency checking over the
// generated narratives. Internal failures degrade to "no contradiction
// signal" rather than aborting the analysis.
func (p *Pipeline) checkNarratives(res *Result) (out []claims.Contradiction) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("claim consistency check failed",
				zap.Any("panic", r))
			out = nil
		}
	}()

	for _, gn := range res.Narratives {
		extracted := claims.Extract(gn.Narrative.Text())
		out = append(out, p.checker.Check(extracted, res.Matched)...)
	}
	return out
}

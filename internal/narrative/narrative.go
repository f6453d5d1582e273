// Package narrative defines the contract with the external
// text-generation collaborator and provides the deterministic template
// fallback used when that collaborator is unavailable.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/genotype"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/match"
)

// Request carries everything the generator needs for one drug-gene pair.
type Request struct {
	Drug           string
	Gene           string
	Diplotype      string
	Phenotype      genotype.Phenotype
	Variants       []*match.Matched
	Recommendation string
}

// Narrative is the four-section narrative object returned by the
// collaborator or the fallback.
type Narrative struct {
	Summary               string
	Mechanism             string
	VariantInterpretation string
	ClinicalImpact        string
}

// Text returns the full narrative as one string, suitable for claim
// extraction.
func (n *Narrative) Text() string {
	return strings.Join([]string{
		n.Summary,
		n.Mechanism,
		n.VariantInterpretation,
		n.ClinicalImpact,
	}, " ")
}

// Generator produces a narrative for a request. Implementations may call
// external services; the pipeline only needs the finished text.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Narrative, error)
}

// Fallback is the deterministic template generator used when no external
// collaborator is configured or the call fails.
type Fallback struct{}

// Generate builds a narrative from fixed templates. Same request, same
// output.
func (Fallback) Generate(_ context.Context, req Request) (*Narrative, error) {
	return &Narrative{
		Summary: fmt.Sprintf(
			"The patient carries the %s diplotype %s and is classified as a %s for %s metabolism.",
			req.Gene, req.Diplotype, req.Phenotype.Describe(), req.Drug),
		Mechanism: fmt.Sprintf(
			"%s encodes an enzyme involved in the metabolism of %s; the %s diplotype determines the expected enzymatic capacity.",
			req.Gene, req.Drug, req.Diplotype),
		VariantInterpretation: interpretVariants(req),
		ClinicalImpact:        clinicalImpact(req),
	}, nil
}

func interpretVariants(req Request) string {
	if len(req.Variants) == 0 {
		return fmt.Sprintf("No known %s variants were detected; the wild-type allele is assumed on both chromosomes.", req.Gene)
	}

	parts := make([]string, 0, len(req.Variants))
	for _, v := range req.Variants {
		parts = append(parts, fmt.Sprintf("%s (%s, %s function)",
			v.Entry.RSID, v.Entry.AlleleLabel(), v.Entry.Function))
	}
	return fmt.Sprintf("Detected %s variants: %s.", req.Gene, strings.Join(parts, "; "))
}

func clinicalImpact(req Request) string {
	impact := fmt.Sprintf("As a %s, standard %s dosing guidance may not apply.",
		req.Phenotype.Describe(), req.Drug)
	if req.Phenotype == genotype.PhenotypeNM {
		impact = fmt.Sprintf("As a %s, standard %s dosing is expected to be appropriate.",
			req.Phenotype.Describe(), req.Drug)
	}
	if req.Recommendation != "" {
		impact += " " + req.Recommendation
	}
	return impact
}

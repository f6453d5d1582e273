// Package confidence computes the bounded multi-factor confidence value
// for a pipeline run.
package confidence

import (
	"math"

	"go.uber.org/zap"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/reference"
)

// Factor weights. They sum to 1 so the combined score stays in [0,1].
const (
	weightQuality      = 0.35
	weightCompleteness = 0.30
	weightEvidence     = 0.25
	weightCount        = 0.10

	// countSaturation is the variant count at which the count factor
	// reaches its maximum.
	countSaturation = 5.0

	// invalidQualityFallback is used when every quality value is invalid.
	invalidQualityFallback = 0.25

	// emptyEvidenceFallback treats a missing evidence list as the
	// weakest evidence rather than an error.
	emptyEvidenceFallback = 0.25
)

// Inputs are the signals the scorer combines. Pure value type.
type Inputs struct {
	Qualities    []float64
	Completeness float64
	Evidence     []reference.EvidenceLevel
	VariantCount int
}

// Scorer computes confidence values. Deterministic: equal inputs always
// produce equal outputs.
type Scorer struct {
	logger *zap.Logger
}

// NewScorer creates a scorer.
func NewScorer() *Scorer {
	return &Scorer{logger: zap.NewNop()}
}

// SetLogger sets the logger for scoring warnings.
func (s *Scorer) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Score combines the four bounded sub-factors with fixed weights and
// clamps the result to [0,1]. The value is never a hardcoded default;
// 0.5 can only occur when the formula genuinely evaluates to it.
func (s *Scorer) Score(in Inputs) float64 {
	score := weightQuality*s.qualityFactor(in.Qualities) +
		weightCompleteness*clamp01(in.Completeness) +
		weightEvidence*evidenceFactor(in.Evidence) +
		weightCount*countFactor(in.VariantCount)

	return clamp01(score)
}

// qualityFactor maps the average valid quality onto [0,1] piecewise
// linearly: <20 covers [0,0.25], [20,30) covers [0.25,0.60], and >=30
// covers [0.60,1.0], saturating at quality 100.
func (s *Scorer) qualityFactor(qualities []float64) float64 {
	if len(qualities) == 0 {
		return 0
	}

	sum := 0.0
	valid := 0
	for _, q := range qualities {
		if q < 0 || math.IsNaN(q) || math.IsInf(q, 0) {
			continue
		}
		sum += q
		valid++
	}

	if valid == 0 {
		s.logger.Warn("all quality values invalid, using fallback quality factor",
			zap.Int("count", len(qualities)))
		return invalidQualityFallback
	}

	avg := sum / float64(valid)
	switch {
	case avg < 20:
		return avg / 20 * 0.25
	case avg < 30:
		return 0.25 + (avg-20)/10*0.35
	default:
		f := 0.60 + (avg-30)/70*0.40
		if f > 1 {
			f = 1
		}
		return f
	}
}

// evidenceFactor averages the per-level evidence weights
// (A=1.0, B=0.75, C=0.5, D=0.25).
func evidenceFactor(levels []reference.EvidenceLevel) float64 {
	if len(levels) == 0 {
		return emptyEvidenceFallback
	}

	sum := 0.0
	for _, l := range levels {
		sum += l.Weight()
	}
	return sum / float64(len(levels))
}

// countFactor saturates at countSaturation variants.
func countFactor(count int) float64 {
	if count <= 0 {
		return 0
	}
	f := float64(count) / countSaturation
	if f > 1 {
		f = 1
	}
	return f
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

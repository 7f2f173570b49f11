package scoring

import (
	"errors"
	"fmt"
)

// Method identifies a grade-boundary computation method.
type Method string

const (
	MethodPercentile        Method = "percentile"
	MethodStdDev            Method = "stddev"
	MethodZScore            Method = "zscore"
	MethodFixedDistribution Method = "fixed_distribution"
	MethodCriterion         Method = "criterion"
	MethodMastery           Method = "mastery"
	MethodHybrid            Method = "hybrid"
)

// Methods lists every supported boundary method.
var Methods = []Method{
	MethodPercentile,
	MethodStdDev,
	MethodZScore,
	MethodFixedDistribution,
	MethodCriterion,
	MethodMastery,
	MethodHybrid,
}

var (
	ErrNoScores      = errors.New("no scores to analyze")
	ErrUnknownMethod = errors.New("unknown boundary method")
)

// ParseMethod validates a method name coming from user input.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Per-grade parameters for A1..E8, in Scale order. F9 needs none: its
// cutoff is always 0.
var (
	// percentile of the cohort at which each cutoff sits
	gradePercentiles = []float64{90, 80, 70, 60, 50, 40, 25, 10}

	// half-sigma bands around the cohort mean
	gradeSigmaBands = []float64{1.5, 1.0, 0.5, 0, -0.5, -1.0, -1.5, -2.0}

	// standard-normal quantiles matching gradePercentiles
	gradeZThresholds = []float64{1.28, 0.84, 0.52, 0.25, 0, -0.25, -0.67, -1.28}

	// fixed absolute cutoffs for criterion-referenced grading
	criterionCutoffs = []float64{75, 70, 65, 60, 55, 50, 45, 40}

	// target cohort share per grade A1..F9 for the fixed distribution
	gradeShares = []float64{0.05, 0.10, 0.10, 0.15, 0.15, 0.15, 0.10, 0.10, 0.10}
)

// Mastery method defaults. MasteryThreshold is the total that evidences
// full mastery (A1); PassThreshold is the minimum pass (C6).
const (
	DefaultMasteryThreshold = 80.0
	DefaultPassThreshold    = 50.0
)

// Compute derives a boundary set for the given method over the cohort's
// weighted totals. Statistical methods need a populated cohort: an empty
// slice is an error, and a single score degrades to criterion boundaries.
func Compute(method Method, totals []float64) (*BoundarySet, error) {
	switch method {
	case MethodCriterion:
		return CriterionBoundaries()
	case MethodMastery:
		return MasteryBoundaries(DefaultMasteryThreshold, DefaultPassThreshold)
	}

	if len(totals) == 0 {
		return nil, ErrNoScores
	}
	if len(totals) == 1 {
		bs, err := CriterionBoundaries()
		if err != nil {
			return nil, err
		}
		bs.Method = method
		return bs, nil
	}

	switch method {
	case MethodPercentile:
		return PercentileBoundaries(totals)
	case MethodStdDev:
		return StdDevBoundaries(totals)
	case MethodZScore:
		return ZScoreBoundaries(totals)
	case MethodFixedDistribution:
		return FixedDistributionBoundaries(totals)
	case MethodHybrid:
		return HybridBoundaries(totals)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// PercentileBoundaries places each cutoff at a fixed percentile of the
// cohort, interpolating linearly between ranks.
func PercentileBoundaries(totals []float64) (*BoundarySet, error) {
	sorted := sortedCopy(totals)
	cutoffs := make([]float64, len(gradePercentiles))
	for i, p := range gradePercentiles {
		cutoffs[i] = percentile(sorted, p)
	}
	return newBoundarySet(MethodPercentile, cutoffs)
}

// StdDevBoundaries places cutoffs at half-sigma bands around the mean.
func StdDevBoundaries(totals []float64) (*BoundarySet, error) {
	m, sd := mean(totals), stdDev(totals)
	cutoffs := make([]float64, len(gradeSigmaBands))
	for i, k := range gradeSigmaBands {
		cutoffs[i] = m + k*sd
	}
	return newBoundarySet(MethodStdDev, cutoffs)
}

// ZScoreBoundaries places cutoffs at the standard-normal quantiles matching
// the percentile targets, i.e. the percentile method under a normality
// assumption. A degenerate cohort (zero spread) falls back to criterion
// boundaries.
func ZScoreBoundaries(totals []float64) (*BoundarySet, error) {
	m, sd := mean(totals), stdDev(totals)
	if sd == 0 {
		bs, err := CriterionBoundaries()
		if err != nil {
			return nil, err
		}
		bs.Method = MethodZScore
		return bs, nil
	}
	cutoffs := make([]float64, len(gradeZThresholds))
	for i, z := range gradeZThresholds {
		cutoffs[i] = m + z*sd
	}
	return newBoundarySet(MethodZScore, cutoffs)
}

// FixedDistributionBoundaries awards each grade to a fixed share of the
// cohort. The cutoff for a grade is the total of the weakest candidate
// inside its band when the cohort is ranked from the top.
func FixedDistributionBoundaries(totals []float64) (*BoundarySet, error) {
	sorted := sortedCopy(totals) // ascending
	n := len(sorted)

	cutoffs := make([]float64, len(Scale)-1)
	cum := 0.0
	for i := 0; i < len(Scale)-1; i++ {
		cum += gradeShares[i]
		// index from the top of the cohort of the last candidate in band i
		k := int(cum*float64(n)+0.5) - 1
		if k < 0 {
			k = 0
		}
		if k > n-1 {
			k = n - 1
		}
		cutoffs[i] = sorted[n-1-k]
	}
	return newBoundarySet(MethodFixedDistribution, cutoffs)
}

// CriterionBoundaries returns the fixed absolute cutoffs. It ignores the
// cohort entirely.
func CriterionBoundaries() (*BoundarySet, error) {
	cutoffs := make([]float64, len(criterionCutoffs))
	copy(cutoffs, criterionCutoffs)
	return newBoundarySet(MethodCriterion, cutoffs)
}

// MasteryBoundaries spreads the passing grades linearly between the pass
// and mastery thresholds, reserving A1 for full mastery. D7 and E8 sit at
// fixed fractions of the pass threshold.
func MasteryBoundaries(mastery, pass float64) (*BoundarySet, error) {
	if mastery <= pass {
		return nil, fmt.Errorf("mastery threshold %.2f must exceed pass threshold %.2f", mastery, pass)
	}
	step := (mastery - pass) / 5
	cutoffs := []float64{
		mastery,       // A1
		pass + 4*step, // B2
		pass + 3*step, // B3
		pass + 2*step, // C4
		pass + step,   // C5
		pass,          // C6
		pass * 0.8,    // D7
		pass * 0.6,    // E8
	}
	return newBoundarySet(MethodMastery, cutoffs)
}

// HybridBoundaries averages the criterion and percentile cutoffs per grade,
// tempering norm-referenced drift with the absolute standard.
func HybridBoundaries(totals []float64) (*BoundarySet, error) {
	pct, err := PercentileBoundaries(totals)
	if err != nil {
		return nil, err
	}
	cutoffs := make([]float64, len(criterionCutoffs))
	for i := range cutoffs {
		cutoffs[i] = (criterionCutoffs[i] + pct.Boundaries[i].MinScore) / 2
	}
	return newBoundarySet(MethodHybrid, cutoffs)
}

package scoring

// GradeCount is one row of a grade distribution.
type GradeCount struct {
	Grade   Grade   `json:"grade"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Summary carries the cohort statistics reported alongside a distribution.
// PassRate is the share of candidates at C6 or better.
type Summary struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	PassRate float64 `json:"pass_rate"`
}

// Distribution is the outcome of grading a cohort against one boundary set.
type Distribution struct {
	Boundaries *BoundarySet `json:"boundaries"`
	Counts     []GradeCount `json:"counts"`
	Summary    Summary      `json:"summary"`
}

// Distribute grades every total against the boundary set and tallies the
// per-grade counts and cohort summary.
func Distribute(totals []float64, bs *BoundarySet) (*Distribution, error) {
	if len(totals) == 0 {
		return nil, ErrNoScores
	}

	byGrade := make(map[Grade]int, len(Scale))
	passed := 0
	passRank := rank(GradeC6)
	for _, t := range totals {
		g := bs.GradeFor(t)
		byGrade[g]++
		if rank(g) <= passRank {
			passed++
		}
	}

	n := len(totals)
	counts := make([]GradeCount, 0, len(Scale))
	for _, g := range Scale {
		c := byGrade[g]
		counts = append(counts, GradeCount{
			Grade:   g,
			Count:   c,
			Percent: round2(float64(c) / float64(n) * 100),
		})
	}

	sorted := sortedCopy(totals)
	return &Distribution{
		Boundaries: bs,
		Counts:     counts,
		Summary: Summary{
			N:        n,
			Mean:     round2(mean(totals)),
			Median:   round2(median(totals)),
			StdDev:   round2(stdDev(totals)),
			Min:      sorted[0],
			Max:      sorted[n-1],
			PassRate: round2(float64(passed) / float64(n) * 100),
		},
	}, nil
}

// Analyze computes boundaries under the given method and grades the cohort
// against them in one step.
func Analyze(method Method, totals []float64) (*Distribution, error) {
	if len(totals) == 0 {
		return nil, ErrNoScores
	}
	bs, err := Compute(method, totals)
	if err != nil {
		return nil, err
	}
	return Distribute(totals, bs)
}

package scoring

// GradeDelta reports how many candidates a grade gains or loses when
// switching boundary methods.
type GradeDelta struct {
	Grade     Grade `json:"grade"`
	BaseCount int   `json:"base_count"`
	AltCount  int   `json:"alt_count"`
	Delta     int   `json:"delta"`
}

// Impact quantifies the effect of regrading a cohort under an alternative
// boundary method. Upgraded counts candidates who move to a better grade,
// Downgraded those who move to a worse one.
type Impact struct {
	BaseMethod    Method       `json:"base_method"`
	AltMethod     Method       `json:"alt_method"`
	Changed       int          `json:"changed"`
	Upgraded      int          `json:"upgraded"`
	Downgraded    int          `json:"downgraded"`
	PassRateDelta float64      `json:"pass_rate_delta"`
	PerGrade      []GradeDelta `json:"per_grade"`
}

// CompareMethods grades the same cohort under both methods and reports the
// per-candidate and per-grade differences.
func CompareMethods(totals []float64, base, alt Method) (*Impact, error) {
	if len(totals) == 0 {
		return nil, ErrNoScores
	}

	baseBS, err := Compute(base, totals)
	if err != nil {
		return nil, err
	}
	altBS, err := Compute(alt, totals)
	if err != nil {
		return nil, err
	}

	imp := &Impact{BaseMethod: base, AltMethod: alt}

	baseCounts := make(map[Grade]int, len(Scale))
	altCounts := make(map[Grade]int, len(Scale))
	for _, t := range totals {
		bg := baseBS.GradeFor(t)
		ag := altBS.GradeFor(t)
		baseCounts[bg]++
		altCounts[ag]++
		if bg != ag {
			imp.Changed++
			if rank(ag) < rank(bg) {
				imp.Upgraded++
			} else {
				imp.Downgraded++
			}
		}
	}

	for _, g := range Scale {
		imp.PerGrade = append(imp.PerGrade, GradeDelta{
			Grade:     g,
			BaseCount: baseCounts[g],
			AltCount:  altCounts[g],
			Delta:     altCounts[g] - baseCounts[g],
		})
	}

	baseDist, err := Distribute(totals, baseBS)
	if err != nil {
		return nil, err
	}
	altDist, err := Distribute(totals, altBS)
	if err != nil {
		return nil, err
	}
	imp.PassRateDelta = round2(altDist.Summary.PassRate - baseDist.Summary.PassRate)

	return imp, nil
}

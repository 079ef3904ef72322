package loganomaly

import (
	"math"
	"sort"
)

// MethodKind selects one of the four anomaly-detection methods of §4.7.
type MethodKind int

const (
	MethodScore MethodKind = iota
	MethodCoverage
	MethodPercentile
	MethodTopN
)

// Method configures DetectIndices (§4.7). Percentile and TopN are only
// meaningful for the matching Kind.
type Method struct {
	Kind       MethodKind
	Percentile float64
	TopN       int
}

func (m Method) validate() error {
	switch m.Kind {
	case MethodPercentile:
		if m.Percentile <= 0 || m.Percentile > 100 {
			return newOptionsError("percentile", "must be in (0, 100]")
		}
	case MethodTopN:
		if m.TopN < 0 {
			return newOptionsError("top_n", "must be >= 0")
		}
	}
	return nil
}

// ScoreTriple is the shared input to the detector: a record's index, score
// and coverage (§4.7, §9: "two modes, one detector").
type ScoreTriple struct {
	Index    int
	Score    float64
	Coverage float64
}

// DetectionSummary reports the statistics behind a Detection, for reporting.
type DetectionSummary struct {
	Method    MethodKind
	Threshold float64
	Mean      float64
	Stdev     float64
	Median    float64
	Count     int
}

// Detection is the result of DetectIndices: Indices is strictly ascending and
// a subset of 0..M (§8).
type Detection struct {
	Indices []int
	Summary DetectionSummary
}

// DetectIndices turns {index, score, coverage} triples into an anomaly set by
// the selected method (§4.7). EmptyInput (no triples) and DegenerateStats
// (stdev == 0, or fewer than two triples for the score/coverage methods) are
// both absorbed locally: they return an empty Detection with threshold +Inf,
// never an error (§7).
func DetectIndices(triples []ScoreTriple, method Method) (Detection, error) {
	if err := method.validate(); err != nil {
		return Detection{}, err
	}

	n := len(triples)
	if n == 0 {
		return Detection{Summary: DetectionSummary{Method: method.Kind, Threshold: math.Inf(1)}}, nil
	}

	scores := make([]float64, n)
	for i, t := range triples {
		scores[i] = t.Score
	}

	switch method.Kind {
	case MethodScore:
		return detectByThreshold(triples, scores, method.Kind, +1, func(t ScoreTriple) float64 { return t.Score }), nil

	case MethodCoverage:
		covs := make([]float64, n)
		for i, t := range triples {
			covs[i] = t.Coverage
		}
		return detectByThreshold(triples, covs, method.Kind, -1, func(t ScoreTriple) float64 { return t.Coverage }), nil

	case MethodPercentile:
		m := mean(scores)
		k := int(math.Ceil(method.Percentile * float64(n) / 100.0))
		return selectTopK(triples, k, method.Kind, m, sampleStdev(scores, m), median(scores)), nil

	case MethodTopN:
		m := mean(scores)
		return selectTopK(triples, method.TopN, method.Kind, m, sampleStdev(scores, m), median(scores)), nil
	}

	return Detection{}, newOptionsError("method", "unknown method")
}

// detectByThreshold implements the score and coverage methods of §4.7, which
// share the same z-score shape but flag in opposite directions: score flags
// values far above the mean (sign=+1), coverage flags values far below it
// (sign=-1).
func detectByThreshold(triples []ScoreTriple, values []float64, kind MethodKind, sign float64, value func(ScoreTriple) float64) Detection {
	n := len(values)
	m := mean(values)
	sd := sampleStdev(values, m)

	if n < 2 || sd == 0 {
		return Detection{Summary: DetectionSummary{Method: kind, Threshold: math.Inf(1), Mean: m, Stdev: sd, Median: median(values), Count: n}}
	}

	threshold := m + sign*1.5*sd

	var idx []int
	for _, t := range triples {
		v := value(t)
		if (sign > 0 && v > threshold) || (sign < 0 && v < threshold) {
			idx = append(idx, t.Index)
		}
	}
	sort.Ints(idx)

	return Detection{Indices: idx, Summary: DetectionSummary{Method: kind, Threshold: threshold, Mean: m, Stdev: sd, Median: median(values), Count: n}}
}

// selectTopK picks the k triples with the largest scores, ties broken by
// ascending record index (§4.7), and reports the cutoff score as threshold.
// k <= 0 (e.g. --top-n 0) yields an empty result with threshold +Inf.
func selectTopK(triples []ScoreTriple, k int, kind MethodKind, m, sd, med float64) Detection {
	n := len(triples)
	if k > n {
		k = n
	}
	if k <= 0 {
		return Detection{Summary: DetectionSummary{Method: kind, Threshold: math.Inf(1), Mean: m, Stdev: sd, Median: med, Count: n}}
	}

	ordered := make([]ScoreTriple, n)
	copy(ordered, triples)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		return ordered[i].Index < ordered[j].Index
	})

	chosen := ordered[:k]
	threshold := chosen[len(chosen)-1].Score

	idx := make([]int, k)
	for i, t := range chosen {
		idx[i] = t.Index
	}
	sort.Ints(idx)

	return Detection{Indices: idx, Summary: DetectionSummary{Method: kind, Threshold: threshold, Mean: m, Stdev: sd, Median: med, Count: n}}
}

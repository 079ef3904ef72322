package loganomaly

import (
	"math"
	"reflect"
	"testing"
)

func triple(i int, score, coverage float64) ScoreTriple {
	return ScoreTriple{Index: i, Score: score, Coverage: coverage}
}

func TestDetectIndices_EmptyInput(t *testing.T) {
	det, err := DetectIndices(nil, Method{Kind: MethodScore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(det.Indices) != 0 {
		t.Fatalf("expected no indices, got %v", det.Indices)
	}
	if !math.IsInf(det.Summary.Threshold, 1) {
		t.Fatalf("threshold = %v, want +Inf", det.Summary.Threshold)
	}
}

func TestDetectIndices_ScoreZScore(t *testing.T) {
	triples := []ScoreTriple{
		triple(0, 1, 0), triple(1, 1, 0), triple(2, 1, 0), triple(3, 1, 0), triple(4, 10, 0),
	}
	det, err := DetectIndices(triples, Method{Kind: MethodScore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(det.Indices, []int{4}) {
		t.Fatalf("indices = %v, want [4]", det.Indices)
	}
	if !closeEnough(det.Summary.Mean, 2.8) {
		t.Fatalf("mean = %v, want 2.8", det.Summary.Mean)
	}
}

func TestDetectIndices_CoverageFlagsLowValues(t *testing.T) {
	triples := []ScoreTriple{
		triple(0, 0, 0.9), triple(1, 0, 0.9), triple(2, 0, 0.9), triple(3, 0, 0.9), triple(4, 0, 0.01),
	}
	det, err := DetectIndices(triples, Method{Kind: MethodCoverage})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(det.Indices, []int{4}) {
		t.Fatalf("indices = %v, want [4] (lowest coverage)", det.Indices)
	}
}

func TestDetectIndices_DegenerateStdevIsEmpty(t *testing.T) {
	triples := []ScoreTriple{triple(0, 5, 0.5), triple(1, 5, 0.5), triple(2, 5, 0.5)}
	det, err := DetectIndices(triples, Method{Kind: MethodScore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(det.Indices) != 0 {
		t.Fatalf("expected no indices with zero stdev, got %v", det.Indices)
	}
	if !math.IsInf(det.Summary.Threshold, 1) {
		t.Fatalf("threshold = %v, want +Inf", det.Summary.Threshold)
	}
}

func TestDetectIndices_SingleTripleIsDegenerate(t *testing.T) {
	det, err := DetectIndices([]ScoreTriple{triple(0, 5, 0.5)}, Method{Kind: MethodScore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(det.Indices) != 0 || !math.IsInf(det.Summary.Threshold, 1) {
		t.Fatalf("expected degenerate empty detection, got %+v", det)
	}
}

func TestDetectIndices_Percentile(t *testing.T) {
	triples := make([]ScoreTriple, 10)
	for i := range triples {
		triples[i] = triple(i, float64(i), 0)
	}
	// percentile=20: k = ceil(20*10/100) = 2, top 2 scores are indices 8, 9.
	det, err := DetectIndices(triples, Method{Kind: MethodPercentile, Percentile: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(det.Indices, []int{8, 9}) {
		t.Fatalf("indices = %v, want [8 9]", det.Indices)
	}
}

func TestDetectIndices_PercentileInvalid(t *testing.T) {
	if _, err := DetectIndices([]ScoreTriple{triple(0, 1, 1)}, Method{Kind: MethodPercentile, Percentile: 0}); err == nil {
		t.Fatalf("expected an error for percentile <= 0")
	}
	if _, err := DetectIndices([]ScoreTriple{triple(0, 1, 1)}, Method{Kind: MethodPercentile, Percentile: 150}); err == nil {
		t.Fatalf("expected an error for percentile > 100")
	}
}

func TestDetectIndices_TopN(t *testing.T) {
	triples := make([]ScoreTriple, 5)
	for i := range triples {
		triples[i] = triple(i, float64(i), 0)
	}
	det, err := DetectIndices(triples, Method{Kind: MethodTopN, TopN: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(det.Indices, []int{3, 4}) {
		t.Fatalf("indices = %v, want [3 4]", det.Indices)
	}
}

func TestDetectIndices_TopNZeroIsEmpty(t *testing.T) {
	triples := []ScoreTriple{triple(0, 1, 1), triple(1, 2, 1)}
	det, err := DetectIndices(triples, Method{Kind: MethodTopN, TopN: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(det.Indices) != 0 || !math.IsInf(det.Summary.Threshold, 1) {
		t.Fatalf("expected empty detection for top_n=0, got %+v", det)
	}
}

func TestDetectIndices_TopNTiesBreakByIndex(t *testing.T) {
	triples := []ScoreTriple{triple(0, 5, 0), triple(1, 5, 0), triple(2, 1, 0)}
	det, err := DetectIndices(triples, Method{Kind: MethodTopN, TopN: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(det.Indices, []int{0}) {
		t.Fatalf("indices = %v, want [0] (lowest index among tied top scores)", det.Indices)
	}
}

func TestDetectIndices_TopNExceedsCount(t *testing.T) {
	triples := []ScoreTriple{triple(0, 1, 0), triple(1, 2, 0)}
	det, err := DetectIndices(triples, Method{Kind: MethodTopN, TopN: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(det.Indices, []int{0, 1}) {
		t.Fatalf("indices = %v, want [0 1]", det.Indices)
	}
}

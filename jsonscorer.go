package loganomaly

import "sort"

// StructuredReasons is the human-readable explanation attached to a
// structured-mode score (§4.6).
type StructuredReasons struct {
	ParseError     string
	Missing        []string
	RareValues     []string
	RareFields     []string
	TypeMismatches []string
}

// StructuredStats is the per-record structured score of §3/§4.6. Coverage is
// synthesized as 1-Score so the shared detector stays meaningful in both
// modes (§4.7).
type StructuredStats struct {
	Index    int
	Score    float64
	Coverage float64
	Reasons  StructuredReasons
}

// ScoreJSON scores every parsed line against profile using the five weighted
// signals of §3/§4.6. A record that failed to parse as an object (parse
// error, or a valid but non-object top-level value) scores 1.0.
func ScoreJSON(lines []ParsedLine, profile SchemaProfile) []StructuredStats {
	n := len(lines)
	stats := make([]StructuredStats, n)
	parallelChunks(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			stats[i] = scoreOneJSON(lines[i], profile)
		}
	})
	return stats
}

func scoreOneJSON(line ParsedLine, profile SchemaProfile) StructuredStats {
	if line.Err != nil {
		return StructuredStats{
			Index: line.Index, Score: 1.0, Coverage: 0.0,
			Reasons: StructuredReasons{ParseError: line.Err.Message},
		}
	}

	obj, ok := line.Value.(map[string]any)
	if !ok {
		return StructuredStats{
			Index: line.Index, Score: 1.0, Coverage: 0.0,
			Reasons: StructuredReasons{ParseError: "not an object"},
		}
	}

	names := make([]string, 0, len(obj))
	for f := range obj {
		names = append(names, f)
	}

	commonFields := 0
	var missing []string
	for f, fp := range profile.Fields {
		if fp.Presence <= 0.5 {
			continue
		}
		commonFields++
		if _, present := obj[f]; !present {
			missing = append(missing, f)
		}
	}
	sort.Strings(missing)

	var rareValues, rareFields, typeMismatches []string
	for f, v := range obj {
		fp, known := profile.Fields[f]
		if !known {
			// Never observed while profiling; as rare as a field can be.
			rareFields = append(rareFields, f)
			continue
		}

		if fp.Presence < 0.05 {
			rareFields = append(rareFields, f)
		}

		if fp.CardinalityClass == "low" {
			if norm, err := canonicalJSON(v); err == nil {
				rate := float64(fp.ValueCounts[norm]) / float64(max(1, fp.PresentCount))
				if rate < 0.05 {
					rareValues = append(rareValues, f)
				}
			}
		}

		if tagOf(v) != fp.DominantType {
			typeMismatches = append(typeMismatches, f)
		}
	}
	sort.Strings(rareValues)
	sort.Strings(rareFields)
	sort.Strings(typeMismatches)

	fieldCount := len(names)

	missingSignal := 0.0
	if commonFields > 0 {
		missingSignal = float64(len(missing)) / float64(commonFields)
	}

	var valueRaritySignal, rareFieldsSignal, typeMismatchSignal float64
	if fieldCount > 0 {
		valueRaritySignal = float64(len(rareValues)) / float64(fieldCount)
		rareFieldsSignal = float64(len(rareFields)) / float64(fieldCount)
		typeMismatchSignal = float64(len(typeMismatches)) / float64(fieldCount)
	}

	novelty := profile.FieldSetNovelty(names)

	score := clamp01(0.30*missingSignal +
		0.25*valueRaritySignal +
		0.25*novelty +
		0.10*rareFieldsSignal +
		0.10*typeMismatchSignal)

	return StructuredStats{
		Index:    line.Index,
		Score:    score,
		Coverage: 1 - score,
		Reasons: StructuredReasons{
			Missing:        missing,
			RareValues:     rareValues,
			RareFields:     rareFields,
			TypeMismatches: typeMismatches,
		},
	}
}

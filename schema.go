package loganomaly

import (
	"sort"
	"strings"
)

// maxFieldSetSearch bounds the pairwise field-set-novelty search (§9 design
// notes, open question). Past this many distinct field-name sets, novelty for
// a record only compares against the first maxFieldSetSearch sets observed,
// by first-seen order. This is a deterministic, documented approximation;
// ordinary log files stay well under it (distinct field sets are typically a
// handful even when record counts run into the millions).
const maxFieldSetSearch = 4096

// FieldProfile is the per-field-name statistics of §3.
type FieldProfile struct {
	Presence         float64
	PresentCount     int
	TypeCounts       map[TypeTag]int
	DominantType     TypeTag
	ValueCounts      map[string]int // nil once classified "high" cardinality
	CardinalityClass string         // "low" or "high"
}

// SchemaProfile is the per-field statistics built across all object records
// of a file (§3, §4.5).
type SchemaProfile struct {
	TotalRecords  int
	ObjectRecords int
	Fields        map[string]*FieldProfile

	fieldSetCounts  map[string]int
	fieldSetMembers map[string]map[string]struct{}
	fieldSetOrder   []string
}

// ProfileSchema builds a SchemaProfile from parsed lines. Only records whose
// top-level value is a JSON object contribute to field statistics; arrays and
// scalars at top level are excluded (scored separately as "not an object").
// This accumulates value counts unconditionally and finalizes cardinality
// classification in one closing pass, one of the two acceptable strategies
// named in §4.5.
func ProfileSchema(lines []ParsedLine, opts ProfileOptions) SchemaProfile {
	profile := SchemaProfile{
		TotalRecords:    len(lines),
		Fields:          make(map[string]*FieldProfile),
		fieldSetCounts:  make(map[string]int),
		fieldSetMembers: make(map[string]map[string]struct{}),
	}

	for _, line := range lines {
		obj, ok := asObject(line)
		if !ok {
			continue
		}
		profile.ObjectRecords++

		names := make([]string, 0, len(obj))
		for f := range obj {
			names = append(names, f)
		}

		for f, v := range obj {
			fp := profile.Fields[f]
			if fp == nil {
				fp = &FieldProfile{TypeCounts: make(map[TypeTag]int), ValueCounts: make(map[string]int)}
				profile.Fields[f] = fp
			}
			fp.PresentCount++
			fp.TypeCounts[tagOf(v)]++

			if fp.ValueCounts != nil {
				if norm, err := canonicalJSON(v); err == nil {
					fp.ValueCounts[norm]++
				}
			}
		}

		key := fieldSetKey(names)
		profile.fieldSetCounts[key]++
		if _, seen := profile.fieldSetMembers[key]; !seen {
			members := make(map[string]struct{}, len(names))
			for _, f := range names {
				members[f] = struct{}{}
			}
			profile.fieldSetMembers[key] = members
			profile.fieldSetOrder = append(profile.fieldSetOrder, key)
		}
	}

	for _, fp := range profile.Fields {
		if profile.ObjectRecords > 0 {
			fp.Presence = float64(fp.PresentCount) / float64(profile.ObjectRecords)
		}
		fp.DominantType = dominantType(fp.TypeCounts)

		distinct := len(fp.ValueCounts)
		low := distinct <= opts.LowCardinalityMax &&
			(fp.PresentCount == 0 || float64(distinct)/float64(fp.PresentCount) <= opts.LowCardinalityRate)
		if low {
			fp.CardinalityClass = "low"
		} else {
			fp.CardinalityClass = "high"
			fp.ValueCounts = nil
		}
	}

	return profile
}

// FieldSetNovelty computes field_set_novelty (§3, §4.5) for a record's exact
// set of field names.
func (p SchemaProfile) FieldSetNovelty(fieldNames []string) float64 {
	key := fieldSetKey(fieldNames)
	if p.fieldSetCounts[key] > 1 {
		return 0
	}

	members := make(map[string]struct{}, len(fieldNames))
	for _, f := range fieldNames {
		members[f] = struct{}{}
	}

	order := p.fieldSetOrder
	if len(order) > maxFieldSetSearch {
		order = order[:maxFieldSetSearch]
	}

	found := false
	minDist := 1.0
	for _, otherKey := range order {
		if otherKey == key {
			continue
		}
		d := jaccardDistance(members, p.fieldSetMembers[otherKey])
		if !found || d < minDist {
			minDist = d
			found = true
		}
	}
	if !found {
		// No other distinct field set was observed at all: nothing to
		// measure novelty against, so treat it as maximally novel.
		return 1.0
	}
	return minDist
}

func jaccardDistance(a, b map[string]struct{}) float64 {
	inter := 0
	for f := range a {
		if _, ok := b[f]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return 1 - float64(inter)/float64(union)
}

func dominantType(counts map[TypeTag]int) TypeTag {
	best := typeTagOrder[0]
	bestCount := -1
	for _, tag := range typeTagOrder {
		if c := counts[tag]; c > bestCount {
			bestCount = c
			best = tag
		}
	}
	return best
}

func fieldSetKey(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

func asObject(line ParsedLine) (map[string]any, bool) {
	if line.Err != nil {
		return nil, false
	}
	obj, ok := line.Value.(map[string]any)
	return obj, ok
}

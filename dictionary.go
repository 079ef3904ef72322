package loganomaly

import (
	"bytes"
	"sort"
)

// DictionaryEntry is one distinct back-reference content in the dictionary (§3).
type DictionaryEntry struct {
	Content []byte
	Count   uint64
	Rank    int
}

// Dictionary is the frequency-ordered dictionary of §3: descending by Count,
// ties broken lexicographically by Content, ranks are 0..K-1.
type Dictionary struct {
	Entries []DictionaryEntry
}

// Len returns K, the number of distinct entries.
func (d Dictionary) Len() int { return len(d.Entries) }

// RankMap maps a back-reference's exact content to its dictionary rank,
// keyed by the raw bytes converted to a string (safe: Content is never
// mutated after BuildDictionary returns it).
type RankMap map[string]int

// BuildDictionary aggregates BackRef tokens by exact content, drops entries
// with fewer than minCount occurrences, and assigns ranks by descending count
// with a lexicographic tie-break for determinism (§4.2).
func BuildDictionary(tokens Tokens, minCount int) (Dictionary, RankMap) {
	counts := make(map[string]uint64)
	for _, t := range tokens {
		if t.Kind != TokenBackRef {
			continue
		}
		counts[string(t.Content)]++
	}

	entries := make([]DictionaryEntry, 0, len(counts))
	for content, count := range counts {
		if count < uint64(minCount) {
			continue
		}
		entries = append(entries, DictionaryEntry{Content: []byte(content), Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return bytes.Compare(entries[i].Content, entries[j].Content) < 0
	})

	ranks := make(RankMap, len(entries))
	for i := range entries {
		entries[i].Rank = i
		ranks[string(entries[i].Content)] = i
	}

	return Dictionary{Entries: entries}, ranks
}

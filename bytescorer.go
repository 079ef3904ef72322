package loganomaly

// RecordStats is the per-record byte-pattern score of §3.
type RecordStats struct {
	Index        int
	LiteralBytes int
	RefBytes     int
	Refs         int
	Coverage     float64
	Rarity       float64
	Score        float64
}

type byteRecordAccum struct {
	literalBytes int
	refBytes     int
	refs         int
	raritySum    float64
}

// ScoreBytes walks tokens and record boundaries jointly in sorted order
// (§4.3, §9 design notes: a shared cursor, no position->record map). A token
// straddling a record boundary is split logically: only the bytes that fall
// inside the current record are counted.
//
// A back-reference whose content didn't qualify for the dictionary (its count
// fell below min_count) has no rank; by construction it occurs less often
// than anything the dictionary tracked, so it contributes full rarity (1.0)
// rather than being excluded from the average.
func ScoreBytes(tokens Tokens, dict Dictionary, ranks RankMap, records RecordOffsets) []RecordStats {
	denom := dict.Len() - 1
	if denom < 1 {
		denom = 1
	}

	n := records.Len()
	accums := make([]byteRecordAccum, n)

	ti := 0
	for i := 0; i < n; i++ {
		s, e := records.Range(i)
		for ti < len(tokens) && tokens[ti].End() <= s {
			ti++
		}

		var a byteRecordAccum
		for j := ti; j < len(tokens) && tokens[j].Pos < e; j++ {
			tok := tokens[j]
			os, oe := max(tok.Pos, s), min(tok.End(), e)
			if oe <= os {
				continue
			}
			length := oe - os

			switch tok.Kind {
			case TokenLiteral:
				a.literalBytes += length
			case TokenBackRef:
				a.refBytes += length
				a.refs++
				if r, ok := ranks[string(tok.Content)]; ok {
					a.raritySum += float64(r) / float64(denom)
				} else {
					a.raritySum += 1.0
				}
			}
		}
		accums[i] = a
	}

	stats := make([]RecordStats, n)
	parallelChunks(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			s, e := records.Range(i)
			recLen := e - s
			a := accums[i]

			coverage := float64(a.refBytes) / float64(max(1, recLen))
			rarity := 1.0
			if a.refs > 0 {
				rarity = a.raritySum / float64(a.refs)
			}
			score := clamp01(0.5*(1-coverage) + 0.5*rarity)

			stats[i] = RecordStats{
				Index:        i,
				LiteralBytes: a.literalBytes,
				RefBytes:     a.refBytes,
				Refs:         a.refs,
				Coverage:     coverage,
				Rarity:       rarity,
				Score:        score,
			}
		}
	})

	return stats
}

package loganomaly

// Scan runs the hash-chain match finder over buf and returns the token cover
// (§4.1). It is deterministic: the same buf and opts always produce the same
// token stream, and it never fails on any input, including N < 3 (emits only
// literals, since the last two bytes of any buffer are unreachable by the
// 3-byte hash).
//
// This is analysis, not compression: the scanner only ever reads already-known
// bytes of buf, so a back-reference whose distance is smaller than its length
// (self-overlap) is resolved by direct comparison against buf, unlike a real
// LZ77 encoder which must track an accumulating output buffer.
func Scan(buf []byte, opts ScanOptions) (Tokens, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := len(buf)
	chain := newHashChain(n)
	tokens := make(Tokens, 0, n/4+1)

	insertRange := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if i+2 < n {
				chain.insert(i, buf[i], buf[i+1], buf[i+2])
			}
		}
	}

	for p := 0; p < n; {
		var bestLen, bestDist int
		if p+2 < n {
			bestLen, bestDist = findMatch(buf, chain, p, opts)
		}

		if bestLen >= opts.MinMatch {
			tokens = append(tokens, Token{
				Pos:      p,
				Kind:     TokenBackRef,
				Distance: bestDist,
				Length:   bestLen,
				Content:  buf[p : p+bestLen],
			})
			insertRange(p, p+bestLen)
			p += bestLen
			continue
		}

		tokens = append(tokens, Token{Pos: p, Kind: TokenLiteral, Byte: buf[p]})
		insertRange(p, p+1)
		p++
	}

	return tokens, nil
}

// findMatch walks the hash chain at p up to opts.MaxChainLength candidates,
// all strictly older than p and within opts.WindowSize, and returns the
// longest common-prefix match capped at opts.MaxMatch. Ties are broken by
// smallest distance: the chain is walked most-recent-first (smallest distance
// first), and a candidate only replaces the current best on a strictly longer
// match, so the first candidate to reach a given length is kept.
func findMatch(buf []byte, chain *hashChain, p int, opts ScanOptions) (length, distance int) {
	n := len(buf)
	minPos := p - opts.WindowSize
	if minPos < 0 {
		minPos = 0
	}

	maxLen := opts.MaxMatch
	if n-p < maxLen {
		maxLen = n - p
	}

	bestLen, bestDist := 0, 0
	cand := chain.first(buf[p], buf[p+1], buf[p+2])
	for steps := 0; cand >= minPos && steps < opts.MaxChainLength; steps++ {
		l := commonPrefixLen(buf, cand, p, maxLen)
		if l > bestLen {
			bestLen = l
			bestDist = p - cand
			if l >= maxLen {
				break
			}
		}
		cand = chain.next(cand)
	}

	return bestLen, bestDist
}

// commonPrefixLen returns how many of the first maxLen bytes starting at a
// and b agree. Since the whole buffer is already known, this naturally
// handles self-overlapping matches (b-a < result) without special-casing.
func commonPrefixLen(buf []byte, a, b, maxLen int) int {
	i := 0
	for i < maxLen && buf[a+i] == buf[b+i] {
		i++
	}
	return i
}

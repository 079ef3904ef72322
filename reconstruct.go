package loganomaly

// Reconstruct rebuilds the original buffer from a token stream, verifying the
// round-trip invariant of §8: concatenating tokens' literal/copied bytes
// reproduces B. It is used by tests and by callers that want to double-check
// a Scan result; the package otherwise never needs to decode anything.
//
// The overlap-copy for a back-reference whose distance is smaller than its
// length uses the same exponential-doubling trick as a real LZ77 decoder
// (adapted from the teacher's copyBackRef): seed one distance-sized chunk from
// already-reconstructed output, then repeatedly double the copied region.
func Reconstruct(tokens Tokens) ([]byte, error) {
	var out []byte

	for _, t := range tokens {
		switch t.Kind {
		case TokenLiteral:
			out = append(out, t.Byte)

		case TokenBackRef:
			start := len(out) - t.Distance
			if start < 0 {
				return nil, ErrLookBehindUnderrun
			}

			dstStart := len(out)
			out = append(out, make([]byte, t.Length)...)

			if t.Distance >= t.Length {
				copy(out[dstStart:dstStart+t.Length], out[start:start+t.Length])
				continue
			}

			copied := 0
			for copied < t.Length {
				n := copy(out[dstStart+copied:dstStart+t.Length], out[start:dstStart+copied])
				copied += n
			}
		}
	}

	return out, nil
}

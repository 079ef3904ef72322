package loganomaly

import (
	"bytes"
	"testing"
)

// Concrete scenario 1 (§8): "ABABABAB\n" with min_match=4, window_size=32.
func TestScan_RepeatedPairScenario(t *testing.T) {
	buf := []byte("ABABABAB\n")
	opts := ScanOptions{WindowSize: 32, MinMatch: 4, MaxMatch: 258, MaxChainLength: 256}

	tokens, err := Scan(buf, opts)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := Tokens{
		{Pos: 0, Kind: TokenLiteral, Byte: 'A'},
		{Pos: 1, Kind: TokenLiteral, Byte: 'B'},
		{Pos: 2, Kind: TokenBackRef, Distance: 2, Length: 6, Content: []byte("ABABAB")},
		{Pos: 8, Kind: TokenLiteral, Byte: '\n'},
	}

	if len(tokens) != len(want) {
		t.Fatalf("token count = %d, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i := range want {
		got, w := tokens[i], want[i]
		if got.Pos != w.Pos || got.Kind != w.Kind || got.Byte != w.Byte ||
			got.Distance != w.Distance || got.Length != w.Length || !bytes.Equal(got.Content, w.Content) {
			t.Fatalf("token %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestScan_CoversBufferExactlyOnce(t *testing.T) {
	inputs := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("ab"),
		[]byte("abc"),
		[]byte("hello world\nhello world\nhello world\n"),
		bytes.Repeat([]byte("abcdefgh"), 50),
	}

	for _, buf := range inputs {
		tokens, err := Scan(buf, DefaultScanOptions())
		if err != nil {
			t.Fatalf("Scan(%q) failed: %v", buf, err)
		}

		pos := 0
		for _, tok := range tokens {
			if tok.Pos != pos {
				t.Fatalf("Scan(%q): token at pos %d, want %d (gap or overlap)", buf, tok.Pos, pos)
			}
			pos = tok.End()
		}
		if pos != len(buf) {
			t.Fatalf("Scan(%q): cover ends at %d, want %d", buf, pos, len(buf))
		}
	}
}

func TestScan_BackRefContentMatchesSource(t *testing.T) {
	buf := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog\n"), 20)

	tokens, err := Scan(buf, DefaultScanOptions())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	for _, tok := range tokens {
		if tok.Kind != TokenBackRef {
			continue
		}
		src := buf[tok.Pos-tok.Distance : tok.Pos-tok.Distance+tok.Length]
		if !bytes.Equal(src, tok.Content) {
			t.Fatalf("backref at pos %d: content %q != source %q", tok.Pos, tok.Content, src)
		}
		if tok.Distance < 1 || tok.Pos-tok.Distance < 0 {
			t.Fatalf("backref at pos %d: invalid distance %d", tok.Pos, tok.Distance)
		}
		if tok.Length < DefaultMinMatch {
			t.Fatalf("backref at pos %d: length %d below min_match", tok.Pos, tok.Length)
		}
	}
}

func TestScan_RoundTripsThroughReconstruct(t *testing.T) {
	bufs := [][]byte{
		[]byte("ABABABAB\n"),
		bytes.Repeat([]byte("hello world\n"), 100),
		[]byte("no repeats here at all, just unique words scattered about\n"),
	}

	for _, buf := range bufs {
		tokens, err := Scan(buf, DefaultScanOptions())
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		out, err := Reconstruct(tokens)
		if err != nil {
			t.Fatalf("Reconstruct failed: %v", err)
		}
		if !bytes.Equal(out, buf) {
			t.Fatalf("round trip mismatch:\n got=%q\nwant=%q", out, buf)
		}
	}
}

func TestScan_ShortInputIsLiteralOnly(t *testing.T) {
	for _, buf := range [][]byte{[]byte(""), []byte("a"), []byte("ab")} {
		tokens, err := Scan(buf, DefaultScanOptions())
		if err != nil {
			t.Fatalf("Scan(%q) failed: %v", buf, err)
		}
		for _, tok := range tokens {
			if tok.Kind != TokenLiteral {
				t.Fatalf("Scan(%q): expected only literals, got %+v", buf, tok)
			}
		}
	}
}

func TestScan_LastTwoBytesAreLiterals(t *testing.T) {
	// The repeated prefix ends in one back-reference that stops where the
	// pattern breaks, so the scanner reaches the last two positions itself;
	// they have no 3-byte window to hash and are emitted as literals. (A
	// back-reference that started earlier may still run to the buffer end.)
	buf := append(bytes.Repeat([]byte("xy"), 40), 'z', 'z')
	n := len(buf)
	tokens, err := Scan(buf, DefaultScanOptions())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(tokens) < 2 {
		t.Fatalf("token count = %d, want at least 2", len(tokens))
	}
	prev, last := tokens[len(tokens)-2], tokens[len(tokens)-1]
	if prev.Kind != TokenLiteral || prev.Pos != n-2 || last.Kind != TokenLiteral || last.Pos != n-1 || last.End() != n {
		t.Fatalf("last two tokens = %+v, %+v, want literals at %d and %d", prev, last, n-2, n-1)
	}
}

func TestScan_Deterministic(t *testing.T) {
	buf := bytes.Repeat([]byte("deterministic output please\n"), 30)

	a, err := Scan(buf, DefaultScanOptions())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	b, err := Scan(buf, DefaultScanOptions())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("token counts differ across runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Pos != b[i].Pos || a[i].Kind != b[i].Kind || a[i].Length != b[i].Length || a[i].Distance != b[i].Distance {
			t.Fatalf("token %d differs across runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestScan_InvalidOptions(t *testing.T) {
	cases := []ScanOptions{
		{WindowSize: 0, MinMatch: 4, MaxMatch: 258, MaxChainLength: 256},
		{WindowSize: 1000, MinMatch: 4, MaxMatch: 258, MaxChainLength: 256}, // not a power of two
		{WindowSize: 1024, MinMatch: 2, MaxMatch: 258, MaxChainLength: 256},
		{WindowSize: 1024, MinMatch: 10, MaxMatch: 4, MaxChainLength: 256},
		{WindowSize: 1024, MinMatch: 4, MaxMatch: 258, MaxChainLength: 0},
	}
	for _, opts := range cases {
		if _, err := Scan([]byte("abcdef"), opts); err == nil {
			t.Fatalf("Scan(%+v): expected an error", opts)
		}
	}
}

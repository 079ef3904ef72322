package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/logscan/loganomaly"
)

func TestWriteJSON_OmitsReasonsInByteMode(t *testing.T) {
	r := Report{Mode: "byte-pattern", Method: "score", Threshold: 1.5, TotalRecords: 3,
		Flagged: []Flagged{{Index: 2, Score: 0.9, Coverage: 0.1}}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "reasons") {
		t.Fatalf("expected no reasons field, got:\n%s", out)
	}
	if !strings.Contains(out, `"index": 2`) {
		t.Fatalf("expected flagged index 2 in output:\n%s", out)
	}
}

func TestWriteJSON_IncludesReasonsInStructuredMode(t *testing.T) {
	r := Report{Mode: "structured", Method: "top", TotalRecords: 1,
		Flagged: []Flagged{{Index: 0, Score: 1, Reasons: &Reasons{Missing: []string{"user"}}}}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"missing"`) {
		t.Fatalf("expected missing reason in output:\n%s", buf.String())
	}
}

func TestWriteHuman_RendersSummaryLine(t *testing.T) {
	r := Report{Mode: "byte-pattern", Method: "score", Threshold: 2.3, TotalRecords: 10}
	var buf bytes.Buffer
	if err := WriteHuman(&buf, r); err != nil {
		t.Fatalf("WriteHuman failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "mode: byte-pattern") || !strings.Contains(out, "records: 10") {
		t.Fatalf("unexpected human output:\n%s", out)
	}
}

func TestDictEntriesTop_CapsAtN(t *testing.T) {
	dict := loganomaly.Dictionary{Entries: []loganomaly.DictionaryEntry{
		{Content: []byte("a"), Count: 3, Rank: 0},
		{Content: []byte("b"), Count: 2, Rank: 1},
		{Content: []byte("c"), Count: 1, Rank: 2},
	}}

	entries := DictEntriesTop(dict, 2)
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Rank != 0 || entries[1].Rank != 1 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestDictEntriesTop_ZeroMeansAll(t *testing.T) {
	dict := loganomaly.Dictionary{Entries: []loganomaly.DictionaryEntry{
		{Content: []byte("a"), Count: 3, Rank: 0},
		{Content: []byte("b"), Count: 2, Rank: 1},
	}}
	entries := DictEntriesTop(dict, 0)
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
}

func TestScanSummary_CoverageZeroBytes(t *testing.T) {
	s := ScanSummary{}
	if s.Coverage() != 0 {
		t.Fatalf("Coverage() = %v, want 0 for empty summary", s.Coverage())
	}
}

func TestScanSummary_Coverage(t *testing.T) {
	s := ScanSummary{TotalBytes: 10, RefBytes: 5}
	if s.Coverage() != 0.5 {
		t.Fatalf("Coverage() = %v, want 0.5", s.Coverage())
	}
}

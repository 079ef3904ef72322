// Package report renders a pipeline result plus a detection into the two
// output forms the CLI offers: a tabular human report and a single JSON
// document, grounded on spec.md §4.10.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	gojson "github.com/goccy/go-json"

	"github.com/logscan/loganomaly"
	"github.com/logscan/loganomaly/internal/pipeline"
)

// Reasons mirrors loganomaly.StructuredReasons for JSON output, omitting
// empty slices instead of emitting them as null.
type Reasons struct {
	ParseError     string   `json:"parse_error,omitempty"`
	Missing        []string `json:"missing,omitempty"`
	RareValues     []string `json:"rare_values,omitempty"`
	RareFields     []string `json:"rare_fields,omitempty"`
	TypeMismatches []string `json:"type_mismatches,omitempty"`
}

// Flagged is one anomalous record in a report.
type Flagged struct {
	Index    int      `json:"index"`
	Score    float64  `json:"score"`
	Coverage float64  `json:"coverage"`
	Reasons  *Reasons `json:"reasons,omitempty"`
}

// DictEntry is one dictionary row in a report.
type DictEntry struct {
	Rank    int    `json:"rank"`
	Count   uint64 `json:"count"`
	Content string `json:"content"`
}

// Report is the single result set both renderers consume (§4.10).
type Report struct {
	Mode         string      `json:"mode"`
	Method       string      `json:"method"`
	Threshold    float64     `json:"threshold"`
	TotalRecords int         `json:"total_records"`
	Flagged      []Flagged   `json:"flagged"`
	Dictionary   []DictEntry `json:"dictionary,omitempty"`
}

// FromDetection builds a Report from a pipeline result and its detection.
func FromDetection(res *pipeline.Result, det loganomaly.Detection, methodName string) Report {
	r := Report{
		Mode:         res.Mode.String(),
		Method:       methodName,
		Threshold:    det.Summary.Threshold,
		TotalRecords: len(res.Triples),
	}

	triple := make(map[int]loganomaly.ScoreTriple, len(res.Triples))
	for _, t := range res.Triples {
		triple[t.Index] = t
	}

	for _, idx := range det.Indices {
		t := triple[idx]
		f := Flagged{Index: idx, Score: t.Score, Coverage: t.Coverage}
		if res.StructStats != nil {
			reasons := res.StructStats[idx].Reasons
			f.Reasons = &Reasons{
				ParseError:     reasons.ParseError,
				Missing:        reasons.Missing,
				RareValues:     reasons.RareValues,
				RareFields:     reasons.RareFields,
				TypeMismatches: reasons.TypeMismatches,
			}
		}
		r.Flagged = append(r.Flagged, f)
	}

	if res.Dictionary.Len() > 0 {
		r.Dictionary = dictEntries(res.Dictionary, 20)
	}

	return r
}

// AnalyzeReport is the full per-record listing printed by `loganomaly
// analyze` (every record, not just flagged ones).
type AnalyzeReport struct {
	Mode    string    `json:"mode"`
	Records []Flagged `json:"records"`
}

// FromPipeline builds an AnalyzeReport listing every record in res.
func FromPipeline(res *pipeline.Result) AnalyzeReport {
	r := AnalyzeReport{Mode: res.Mode.String(), Records: make([]Flagged, len(res.Triples))}
	for i, t := range res.Triples {
		f := Flagged{Index: t.Index, Score: t.Score, Coverage: t.Coverage}
		if res.StructStats != nil {
			reasons := res.StructStats[t.Index].Reasons
			f.Reasons = &Reasons{
				ParseError:     reasons.ParseError,
				Missing:        reasons.Missing,
				RareValues:     reasons.RareValues,
				RareFields:     reasons.RareFields,
				TypeMismatches: reasons.TypeMismatches,
			}
		}
		r.Records[i] = f
	}
	return r
}

// WriteAnalyzeJSON marshals r as a single JSON document.
func WriteAnalyzeJSON(w io.Writer, r AnalyzeReport) error {
	b, err := gojson.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// WriteAnalyzeHuman renders r as a tabular per-record listing.
func WriteAnalyzeHuman(w io.Writer, r AnalyzeReport) error {
	fmt.Fprintf(w, "mode: %s  records: %d\n\n", r.Mode, len(r.Records))
	fmt.Fprintf(w, "%-10s %-10s %-10s %s\n", "index", "score", "coverage", "reasons")
	for _, f := range r.Records {
		fmt.Fprintf(w, "%-10d %-10.4f %-10.4f %s\n", f.Index, f.Score, f.Coverage, formatReasons(f.Reasons))
	}
	return nil
}

func dictEntries(d loganomaly.Dictionary, top int) []DictEntry {
	return DictEntriesTop(d, top)
}

// DictEntriesTop returns the first top entries of d (0 means all), already in
// rank order.
func DictEntriesTop(d loganomaly.Dictionary, top int) []DictEntry {
	n := d.Len()
	if top > 0 && top < n {
		n = top
	}
	entries := make([]DictEntry, n)
	for i := 0; i < n; i++ {
		e := d.Entries[i]
		entries[i] = DictEntry{Rank: e.Rank, Count: e.Count, Content: string(e.Content)}
	}
	return entries
}

// DictReport is the standalone `loganomaly dict` output.
type DictReport struct {
	Total   int         `json:"total"`
	Entries []DictEntry `json:"entries"`
}

// WriteDictJSON marshals a DictReport as JSON.
func WriteDictJSON(w io.Writer, r DictReport) error {
	b, err := gojson.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// WriteDictHuman renders a DictReport as a table.
func WriteDictHuman(w io.Writer, r DictReport) error {
	fmt.Fprintf(w, "dictionary entries: %d (showing %d)\n\n", r.Total, len(r.Entries))
	fmt.Fprintf(w, "%-6s %-10s %-10s %s\n", "rank", "count", "size", "content")
	for _, e := range r.Entries {
		fmt.Fprintf(w, "%-6d %-10d %-10s %q\n", e.Rank, e.Count, humanize.Bytes(uint64(len(e.Content))), truncate(e.Content, 60))
	}
	return nil
}

// WriteJSON marshals r as a single JSON document (§4.10, using goccy/go-json
// for marshaling symmetry with the structured pipeline's parser).
func WriteJSON(w io.Writer, r Report) error {
	b, err := gojson.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// WriteHuman renders r as tabular text (§4.10).
func WriteHuman(w io.Writer, r Report) error {
	fmt.Fprintf(w, "mode: %s  method: %s  threshold: %.4f  records: %d  flagged: %d\n",
		r.Mode, r.Method, r.Threshold, r.TotalRecords, len(r.Flagged))

	if len(r.Flagged) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-10s %-10s %-10s %s\n", "index", "score", "coverage", "reasons")
		for _, f := range r.Flagged {
			fmt.Fprintf(w, "%-10d %-10.4f %-10.4f %s\n", f.Index, f.Score, f.Coverage, formatReasons(f.Reasons))
		}
	}

	if len(r.Dictionary) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-6s %-10s %-10s %s\n", "rank", "count", "size", "content")
		for _, e := range r.Dictionary {
			fmt.Fprintf(w, "%-6d %-10d %-10s %q\n", e.Rank, e.Count, humanize.Bytes(uint64(len(e.Content))), truncate(e.Content, 60))
		}
	}

	return nil
}

func formatReasons(r *Reasons) string {
	if r == nil {
		return ""
	}
	if r.ParseError != "" {
		return "parse_error=" + r.ParseError
	}
	var parts []string
	addPart := func(name string, fields []string) {
		if len(fields) == 0 {
			return
		}
		sort.Strings(fields)
		parts = append(parts, fmt.Sprintf("%s=%v", name, fields))
	}
	addPart("missing", r.Missing)
	addPart("rare_values", r.RareValues)
	addPart("rare_fields", r.RareFields)
	addPart("type_mismatches", r.TypeMismatches)
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

// ScanSummary is the result of `loganomaly scan`: token counts and overall
// byte coverage, with no per-record detail.
type ScanSummary struct {
	TotalBytes   int `json:"total_bytes"`
	TotalTokens  int `json:"total_tokens"`
	Literals     int `json:"literals"`
	LiteralBytes int `json:"literal_bytes"`
	BackRefs     int `json:"back_refs"`
	RefBytes     int `json:"ref_bytes"`
}

// Coverage returns the fraction of bytes covered by back-references.
func (s ScanSummary) Coverage() float64 {
	if s.TotalBytes == 0 {
		return 0
	}
	return float64(s.RefBytes) / float64(s.TotalBytes)
}

// WriteScanJSON marshals a ScanSummary as JSON.
func WriteScanJSON(w io.Writer, s ScanSummary) error {
	b, err := gojson.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// WriteScanHuman renders a ScanSummary as text.
func WriteScanHuman(w io.Writer, s ScanSummary) error {
	fmt.Fprintf(w, "bytes: %d  tokens: %d  literals: %d  back_refs: %d  coverage: %.4f\n",
		s.TotalBytes, s.TotalTokens, s.Literals, s.BackRefs, s.Coverage())
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Package pipeline wires the loganomaly core into a single per-invocation run:
// read a file, split it into records, run the detected (or forced) mode's
// pipeline, and reduce the result to the {index, score, coverage} triples the
// detector consumes. It holds no state across calls.
package pipeline

import (
	"fmt"
	"os"

	"github.com/logscan/loganomaly"
)

// Options configures a Run. Zero value is not valid; use DefaultOptions.
type Options struct {
	Structured bool
	Scan       loganomaly.ScanOptions
	MinCount   int
	Profile    loganomaly.ProfileOptions
}

// DefaultOptions returns the spec's default tuning (§6).
func DefaultOptions() Options {
	return Options{
		Scan:     loganomaly.DefaultScanOptions(),
		MinCount: loganomaly.DefaultMinCount,
		Profile:  loganomaly.DefaultProfileOptions(),
	}
}

// Result is the outcome of a pipeline Run: exactly one of the byte-pattern or
// structured fields is populated, according to Mode.
type Result struct {
	Path    string
	Buf     []byte
	Records loganomaly.RecordOffsets
	Mode    loganomaly.Mode

	Tokens     loganomaly.Tokens
	Dictionary loganomaly.Dictionary
	Ranks      loganomaly.RankMap
	ByteStats  []loganomaly.RecordStats

	Lines       []loganomaly.ParsedLine
	Schema      loganomaly.SchemaProfile
	StructStats []loganomaly.StructuredStats

	Triples []loganomaly.ScoreTriple
}

// Run reads path and executes the appropriate pipeline for the detected (or
// forced, via Options.Structured) mode.
func Run(path string, opts Options) (*Result, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	records := loganomaly.SplitRecords(buf)
	mode := loganomaly.DetectMode(buf, records, opts.Structured)

	res := &Result{Path: path, Buf: buf, Records: records, Mode: mode}

	switch mode {
	case loganomaly.ModeStructured:
		res.Lines = loganomaly.ParseJSONLines(buf, records)
		res.Schema = loganomaly.ProfileSchema(res.Lines, opts.Profile)
		res.StructStats = loganomaly.ScoreJSON(res.Lines, res.Schema)

		res.Triples = make([]loganomaly.ScoreTriple, len(res.StructStats))
		for i, s := range res.StructStats {
			res.Triples[i] = loganomaly.ScoreTriple{Index: s.Index, Score: s.Score, Coverage: s.Coverage}
		}

	default:
		tokens, err := loganomaly.Scan(buf, opts.Scan)
		if err != nil {
			return nil, err
		}
		res.Tokens = tokens
		res.Dictionary, res.Ranks = loganomaly.BuildDictionary(tokens, opts.MinCount)
		res.ByteStats = loganomaly.ScoreBytes(tokens, res.Dictionary, res.Ranks, records)

		res.Triples = make([]loganomaly.ScoreTriple, len(res.ByteStats))
		for i, s := range res.ByteStats {
			res.Triples[i] = loganomaly.ScoreTriple{Index: s.Index, Score: s.Score, Coverage: s.Coverage}
		}
	}

	return res, nil
}

// Record returns the raw bytes of record i.
func (r *Result) Record(i int) []byte {
	s, e := r.Records.Range(i)
	return r.Buf[s:e]
}

// Package loganomaly implements the analysis core of a log-anomaly detector.
//
// Two pipelines feed a shared statistical detector:
//
//   - Byte-pattern mode runs an LZ77-style hash-chain match finder over the raw
//     input, builds a frequency-ordered dictionary of repeated byte sequences,
//     and scores each record by how well it matches that dictionary.
//   - Structured mode parses one JSON value per line, builds a per-field schema
//     profile across the file, and scores each record against it with five
//     weighted signals.
//
// Both pipelines reduce each record to a {index, score, coverage} triple;
// DetectIndices turns a sequence of triples into an anomaly set by one of four
// selectable methods. Nothing here compresses, decompresses, streams, or keeps
// state across calls: every exported function is a pure function of its
// arguments, and the whole input is analyzed as a single in-memory batch.
//
// The seven functions below are the package's contract with its callers (a CLI
// front end, report formatters, input auto-detection):
//
//	Scan(buf, opts)                        -> Tokens
//	BuildDictionary(tokens, minCount)       -> (Dictionary, RankMap)
//	ScoreBytes(tokens, dict, ranks, recs)   -> []RecordStats
//	ParseJSONLines(buf, recs)               -> []ParsedLine
//	ProfileSchema(lines, opts)              -> SchemaProfile
//	ScoreJSON(lines, profile)               -> []StructuredStats
//	DetectIndices(triples, method)          -> Detection
package loganomaly

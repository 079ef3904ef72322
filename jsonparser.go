package loganomaly

import (
	"bytes"
	"encoding/json"
	"io"

	gojson "github.com/goccy/go-json"
)

// ParsedLine is the result of parsing one record as JSON (§4.4): either a
// decoded Value, or a non-nil Err describing why it didn't parse.
type ParsedLine struct {
	Index int
	Value any
	Err   *ParseError
}

// ParseJSONLines parses every record as a single strict JSON value (RFC 8259).
// Blank records (no bytes, or only JSON whitespace) are a ParseError("empty").
// It never returns an error itself: every failure is captured per-record.
func ParseJSONLines(buf []byte, records RecordOffsets) []ParsedLine {
	n := records.Len()
	lines := make([]ParsedLine, n)
	for i := 0; i < n; i++ {
		s, e := records.Range(i)
		lines[i] = parseOneRecord(i, buf[s:e])
	}
	return lines
}

func parseOneRecord(index int, rec []byte) ParsedLine {
	if len(trimJSONSpace(rec)) == 0 {
		return ParsedLine{Index: index, Err: &ParseError{LineNo: index, Message: "empty"}}
	}

	dec := gojson.NewDecoder(bytes.NewReader(rec))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return ParsedLine{Index: index, Err: &ParseError{LineNo: index, Message: err.Error()}}
	}

	// Strict: the record must contain exactly one JSON value. Decoding again
	// must hit EOF; anything else means trailing non-whitespace data.
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return ParsedLine{Index: index, Err: &ParseError{LineNo: index, Message: "trailing data after JSON value"}}
	}

	return ParsedLine{Index: index, Value: v}
}

// trimJSONSpace trims the four RFC 8259 whitespace bytes (space, tab, CR, LF)
// from both ends, without unicode.IsSpace's broader notion of whitespace.
func trimJSONSpace(b []byte) []byte {
	isSpace := func(c byte) bool {
		return c == ' ' || c == '\t' || c == '\r' || c == '\n'
	}
	start := 0
	for start < len(b) && isSpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

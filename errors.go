package loganomaly

import (
	"errors"
	"fmt"
)

// Sentinel and structured errors surfaced by the core (§7).
var (
	// ErrLookBehindUnderrun is returned by Reconstruct when a back-reference
	// points before the start of the data reconstructed so far.
	ErrLookBehindUnderrun = errors.New("back-reference points before start of buffer")
)

// OptionsError reports an invalid option passed to a core entry point
// (the InvalidOptions error kind in §7). Callers can match it with errors.As.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Message)
}

func newOptionsError(field, message string) *OptionsError {
	return &OptionsError{Field: field, Message: message}
}

// ParseError reports that a record failed to parse as a single JSON value
// (§4.4, §7). It is never returned as an error from ParseJSONLines itself;
// it is attached per-record to the corresponding ParsedLine.
type ParseError struct {
	LineNo  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.LineNo, e.Message)
}

package loganomaly

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

// TypeTag is one of the six JSON value kinds of §3, in the tie-break order
// used for dominant-type arg-max.
type TypeTag string

const (
	TagNull   TypeTag = "null"
	TagBool   TypeTag = "bool"
	TagNumber TypeTag = "number"
	TagString TypeTag = "string"
	TagArray  TypeTag = "array"
	TagObject TypeTag = "object"
)

// typeTagOrder fixes the tie-break order for dominant_type arg-max (§3).
var typeTagOrder = []TypeTag{TagNull, TagBool, TagNumber, TagString, TagArray, TagObject}

// tagOf returns the TypeTag of a decoded JSON value (decoded with UseNumber,
// so numbers arrive as json.Number rather than float64).
func tagOf(v any) TypeTag {
	switch v.(type) {
	case nil:
		return TagNull
	case bool:
		return TagBool
	case json.Number:
		return TagNumber
	case string:
		return TagString
	case []any:
		return TagArray
	case map[string]any:
		return TagObject
	default:
		return TagString
	}
}

// canonicalJSON re-encodes v with sorted object keys and minimal whitespace
// (§3: "normalized for hashing by canonical JSON encoding"). Both
// encoding/json and goccy/go-json sort map[string]any keys when marshaling,
// and json.Number marshals back to the exact literal it was parsed from, so
// decoding with UseNumber and marshaling gives canonical output with numbers
// "kept as written" for free.
func canonicalJSON(v any) (string, error) {
	b, err := gojson.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

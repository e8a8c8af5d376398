// Package normalize turns loosely shaped inventory API payloads into typed
// records. The upstream wraps its list responses differently depending on
// the endpoint and version, so nothing in here fails: an unrecognised shape
// is an empty list and a missing field takes its table default.
package normalize

import (
	"github.com/tidwall/gjson"
)

// envelopeKeys are the wrapper fields checked, in order, before falling back
// to the first array-valued field of an object.
var envelopeKeys = []string{"content", "data"}

// List extracts the ordered record sequence from a raw response body.
// Invalid JSON yields an empty sequence.
func List(body []byte) []gjson.Result {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return nil
	}
	return Records(gjson.ParseBytes(body))
}

// Records extracts the ordered record sequence from an already parsed value:
// a bare array is returned as is, otherwise the first array found under
// "content", then "data", then any field in document order.
func Records(v gjson.Result) []gjson.Result {
	if v.IsArray() {
		return v.Array()
	}
	if !v.IsObject() {
		return nil
	}
	for _, key := range envelopeKeys {
		if inner := v.Get(key); inner.IsArray() {
			return inner.Array()
		}
	}

	var found []gjson.Result
	v.ForEach(func(_, value gjson.Result) bool {
		if value.IsArray() {
			found = value.Array()
			return false
		}
		return true
	})
	return found
}

// Decode normalizes body and maps every object record through decode.
// Scalars and nested arrays in the record position are skipped.
func Decode[T any](body []byte, decode func(gjson.Result) T) []T {
	records := List(body)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if !rec.IsObject() {
			continue
		}
		out = append(out, decode(rec))
	}
	return out
}

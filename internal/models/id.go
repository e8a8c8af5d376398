package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an upstream identifier in canonical string form. The inventory API
// hands ids out as numbers in some payloads and as strings in others, so
// 7, 7.0 and "7" all canonicalize to the same ID. The empty ID means absent.
type ID string

// ParseID canonicalizes a textual identifier.
func ParseID(s string) ID {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !isNumeric(s) {
		return ID(s)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID(strconv.FormatInt(n, 10))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return ID(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return ID(s)
}

func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// Int returns the numeric form of the id, used when the upstream expects
// integer ids in request bodies.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if isNumeric(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ParseID(s)
		return nil
	}
	*id = ParseID(raw)
	return nil
}

// isNumeric reports whether s is a plain decimal number (no exponent, no
// hex, no NaN/Inf spellings that ParseFloat would accept).
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i++
	}
	digits, dot := 0, false
	for ; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

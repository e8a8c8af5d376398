package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"stockconsole/internal/models"
)

// Field lists the gjson paths a canonical attribute has been observed under,
// highest priority first, and the value used when none of them is present.
type Field struct {
	Paths   []string
	Default string
}

// Table maps canonical field names to their candidate sources.
type Table map[string]Field

// Lookup returns the first present candidate for name. A candidate is
// present when it exists, is not null and, for strings, is not blank.
func (t Table) Lookup(rec gjson.Result, name string) (gjson.Result, bool) {
	f, ok := t[name]
	if !ok {
		return gjson.Result{}, false
	}
	for _, path := range f.Paths {
		if v := rec.Get(path); present(v) {
			return v, true
		}
	}
	return gjson.Result{}, false
}

func (t Table) String(rec gjson.Result, name string) string {
	if v, ok := t.Lookup(rec, name); ok {
		return v.String()
	}
	return t[name].Default
}

// OptionalString is String without the default: nil when no candidate is
// present.
func (t Table) OptionalString(rec gjson.Result, name string) *string {
	v, ok := t.Lookup(rec, name)
	if !ok {
		return nil
	}
	s := v.String()
	return &s
}

func (t Table) Int(rec gjson.Result, name string) int {
	if v, ok := t.Lookup(rec, name); ok {
		return int(v.Int())
	}
	n, _ := strconv.Atoi(t[name].Default)
	return n
}

func (t Table) ID(rec gjson.Result, name string) models.ID {
	if v, ok := t.Lookup(rec, name); ok {
		return models.ParseID(v.String())
	}
	return models.ParseID(t[name].Default)
}

// Decimal reads a monetary value without going through float64 when the
// payload carries it as a JSON number.
func (t Table) Decimal(rec gjson.Result, name string) *decimal.Decimal {
	v, ok := t.Lookup(rec, name)
	if !ok {
		return nil
	}
	raw := v.Raw
	if v.Type == gjson.String {
		raw = strings.TrimSpace(v.Str)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time accepts ISO-8601 strings and epoch milliseconds.
func (t Table) Time(rec gjson.Result, name string) *time.Time {
	v, ok := t.Lookup(rec, name)
	if !ok {
		return nil
	}
	if v.Type == gjson.Number {
		ts := time.UnixMilli(v.Int()).UTC()
		return &ts
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, v.String()); err == nil {
			return &ts
		}
	}
	return nil
}

func present(v gjson.Result) bool {
	if !v.Exists() || v.Type == gjson.Null {
		return false
	}
	if v.Type == gjson.String && strings.TrimSpace(v.Str) == "" {
		return false
	}
	return true
}

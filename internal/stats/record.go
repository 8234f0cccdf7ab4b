// Package stats derives per-game rates from provider stat records and selects
// the season breakdown a user asked for.
//
// Records coming from the provider are sparse: any stat may be missing or
// null. Nothing in this package fails on sparse input; missing numbers are
// read as zero.
package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Stat codes used by the aggregator. They match the column headers returned
// by stats.nba.com.
const (
	CodeGamesPlayed = "GP"
	CodePoints      = "PTS"
	CodeRebounds    = "REB"
	CodeAssists     = "AST"
	CodeSteals      = "STL"
	CodeBlocks      = "BLK"
	CodeFG3Pct      = "FG3_PCT"
)

// StatRecord is an immutable mapping of stat code to a numeric value or null.
// The zero value is an empty record.
type StatRecord struct {
	values map[string]*float64
	order  []string
	labels map[string]string
}

// NewStatRecord builds a record from numeric values. A nil pointer marks the
// stat as present but null.
func NewStatRecord(values map[string]*float64) StatRecord {
	r := StatRecord{values: make(map[string]*float64, len(values))}
	for code, v := range values {
		r.values[code] = copyValue(v)
		r.order = append(r.order, code)
	}
	sort.Strings(r.order)
	return r
}

// FromFloats is a convenience constructor for records without nulls.
func FromFloats(values map[string]float64) StatRecord {
	m := make(map[string]*float64, len(values))
	for code, v := range values {
		v := v
		m[code] = &v
	}
	return NewStatRecord(m)
}

// Builder accumulates stats in insertion order. Text columns such as
// SEASON_ID or TEAM_ABBREVIATION are kept as labels.
type Builder struct {
	rec StatRecord
}

// Set records a numeric stat. A nil value records an explicit null.
func (b *Builder) Set(code string, v *float64) *Builder {
	if b.rec.values == nil {
		b.rec.values = make(map[string]*float64)
	}
	if _, exists := b.rec.values[code]; !exists {
		b.rec.order = append(b.rec.order, code)
	}
	b.rec.values[code] = copyValue(v)
	return b
}

// Label records a text column.
func (b *Builder) Label(code, text string) *Builder {
	if b.rec.labels == nil {
		b.rec.labels = make(map[string]string)
	}
	b.rec.labels[code] = text
	return b
}

// Build returns the record and resets the builder.
func (b *Builder) Build() StatRecord {
	r := b.rec
	b.rec = StatRecord{}
	return r
}

// Get returns the value for code and whether it is present and non-null.
func (r StatRecord) Get(code string) (float64, bool) {
	v, ok := r.values[code]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// Value returns the value for code, reading absent and null as zero.
func (r StatRecord) Value(code string) float64 {
	v, _ := r.Get(code)
	return v
}

// Has reports whether code is present, null or not.
func (r StatRecord) Has(code string) bool {
	_, ok := r.values[code]
	return ok
}

// LabelOf returns a text column such as SEASON_ID.
func (r StatRecord) LabelOf(code string) string {
	return r.labels[code]
}

// Codes returns the numeric stat codes in insertion order.
func (r StatRecord) Codes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len is the number of numeric stats, null or not.
func (r StatRecord) Len() int {
	return len(r.values)
}

// with returns a copy of r with code set to v.
func (r StatRecord) with(code string, v float64) StatRecord {
	out := StatRecord{
		values: make(map[string]*float64, len(r.values)+1),
		order:  make([]string, len(r.order), len(r.order)+1),
		labels: r.labels,
	}
	copy(out.order, r.order)
	for k, val := range r.values {
		out.values[k] = copyValue(val)
	}
	if _, exists := out.values[code]; !exists {
		out.order = append(out.order, code)
	}
	out.values[code] = &v
	return out
}

// Equal reports whether two records hold the same stats and labels.
func (r StatRecord) Equal(o StatRecord) bool {
	if len(r.values) != len(o.values) || len(r.labels) != len(o.labels) {
		return false
	}
	for k, v := range r.values {
		ov, ok := o.values[k]
		if !ok || (v == nil) != (ov == nil) {
			return false
		}
		if v != nil && *v != *ov {
			return false
		}
	}
	for k, v := range r.labels {
		if o.labels[k] != v {
			return false
		}
	}
	return true
}

// MarshalJSON writes labels first, then numeric stats in insertion order.
// Null stats are written as null.
func (r StatRecord) MarshalJSON() ([]byte, error) {
	return r.marshal(nil)
}

func (r StatRecord) marshal(extra []field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, v interface{}) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	labelKeys := make([]string, 0, len(r.labels))
	for k := range r.labels {
		labelKeys = append(labelKeys, k)
	}
	sort.Strings(labelKeys)
	for _, k := range labelKeys {
		if err := write(k, r.labels[k]); err != nil {
			return nil, err
		}
	}
	shadowed := make(map[string]bool, len(extra))
	for _, f := range extra {
		shadowed[f.key] = true
	}
	for _, k := range r.order {
		if shadowed[k] {
			continue
		}
		if err := write(k, r.values[k]); err != nil {
			return nil, err
		}
	}
	for _, f := range extra {
		if err := write(f.key, f.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a flat object. Numbers and nulls become stats,
// strings become labels. Other value types are ignored.
func (r *StatRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("stat record: expected object, got %v", tok)
	}

	var b Builder
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		switch v := raw.(type) {
		case nil:
			b.Set(key, nil)
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				continue
			}
			b.Set(key, &f)
		case string:
			b.Label(key, v)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = b.Build()
	return nil
}

type field struct {
	key   string
	value interface{}
}

func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

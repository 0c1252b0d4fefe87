package dataset

import (
	"encoding/json"
	"strconv"
)

// ValueKind defines the storage type for cell values
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindText
)

// Value is the typed cell variant produced by the tabular loader.
// It is comparable, so raw-value uniqueness checks can use it directly
// as a map key.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
}

// NullValue creates a missing value
func NullValue() Value {
	return Value{Kind: KindNull}
}

// NewNumberValue creates a numeric value
func NewNumberValue(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// NewTextValue creates a text value; empty strings collapse to null
func NewTextValue(s string) Value {
	if s == "" {
		return NullValue()
	}
	return Value{Kind: KindText, Text: s}
}

// IsNull returns true if the value is missing
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// IsNumber returns true if the value was loaded as a number
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// AsFloat attempts a numeric conversion: numbers convert directly, text is
// parsed, nulls never convert.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindText:
		f, err := strconv.ParseFloat(v.Text, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// String returns the display form of the value
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// MarshalJSON encodes the value as null, a number, or a string
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindText:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

// Record is one row of the dataset, keyed by column name. Column order is
// carried by the owning Dataset; all records share the same column set.
type Record map[string]Value

// IsEmpty returns true if every cell in the record is null
func (r Record) IsEmpty() bool {
	for _, v := range r {
		if !v.IsNull() {
			return false
		}
	}
	return true
}

// Dataset holds parsed tabular data with source column ordering preserved
type Dataset struct {
	Columns []string
	Rows    []Record
}

// RecordCount returns the number of data rows
func (d *Dataset) RecordCount() int {
	return len(d.Rows)
}

// Sample returns up to n leading records
func (d *Dataset) Sample(n int) []Record {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

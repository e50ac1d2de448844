package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Column is a single named value of a catalog row.
type Column struct {
	Name  string
	Value any
}

// Record is one catalog row. Columns keep the table order and are returned verbatim;
// the core never interprets columns other than the ones it filters on.
type Record struct {
	columns []Column
}

// NewRecord creates a Record from columns in table order.
func NewRecord(columns []Column) Record {
	return Record{columns: columns}
}

// Columns returns the row's columns in table order.
func (r Record) Columns() []Column { return r.columns }

// Len returns the number of columns.
func (r Record) Len() int { return len(r.columns) }

// Get returns the value of the named column.
func (r Record) Get(name string) (any, bool) {
	for _, c := range r.columns {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// String returns the named column rendered as text, or "" when absent or NULL.
func (r Record) String(name string) string {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

// MarshalJSON encodes the record as a JSON object whose keys follow the column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, fmt.Errorf("marshal column name %q: %w", c.Name, err)
		}
		val, err := json.Marshal(c.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal column %q: %w", c.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// YearRange is the applicability span of a make. Nil bounds mean no non-null year was found.
type YearRange struct {
	MinYear *int
	MaxYear *int
}

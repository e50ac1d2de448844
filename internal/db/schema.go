package db

import (
	"fmt"
	"regexp"

	"github.com/kailas-cloud/partsdex/internal/domain/search/query"
)

// DefaultTable is the catalog table name.
const DefaultTable = "dataweb"

// Schema maps logical catalog fields to physical columns of one table.
type Schema struct {
	Table   string
	Columns map[query.Field]string
}

// DefaultSchema returns the column layout of the vehicle parts table.
func DefaultSchema() Schema {
	return Schema{
		Table: DefaultTable,
		Columns: map[query.Field]string{
			query.FieldID:          "ID",
			query.FieldName:        "Name",
			query.FieldDescription: "Description",
			query.FieldSKU:         "SKU",
			query.FieldMake:        "Meta_cpr_make",
			query.FieldModel:       "Meta_cpr_model",
			query.FieldCategory:    "Categories",
			query.FieldYearStart:   "Meta_year_start",
			query.FieldYearEnd:     "Meta_year_end",
		},
	}
}

// WithTable returns a copy of the schema bound to another table.
func (s Schema) WithTable(table string) Schema {
	s.Table = table
	return s
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// Validate checks that every identifier is safe to quote into SQL.
func (s Schema) Validate() error {
	if !identRe.MatchString(s.Table) {
		return fmt.Errorf("%w: table %q", ErrBadIdentifier, s.Table)
	}
	for f, col := range s.Columns {
		if !identRe.MatchString(col) {
			return fmt.Errorf("%w: column %q for field %s", ErrBadIdentifier, col, f)
		}
	}
	return nil
}

// Column returns the physical column for a logical field.
func (s Schema) Column(f query.Field) (string, error) {
	col, ok := s.Columns[f]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return col, nil
}

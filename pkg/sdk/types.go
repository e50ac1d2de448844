package partsdex

import (
	"encoding/json"

	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/domain/search/criteria"
)

// Product is one catalog row. Columns keep the table order.
type Product struct {
	rec domain.Record
}

// Get returns the value of the named column.
func (p Product) Get(column string) (any, bool) { return p.rec.Get(column) }

// String returns the named column as text, or "" when absent or NULL.
func (p Product) String(column string) string { return p.rec.String(column) }

// Columns returns the column names in table order.
func (p Product) Columns() []string {
	cols := p.rec.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// MarshalJSON encodes the product the same way the HTTP service does.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.rec)
}

// SearchParams narrows a product search. Zero values are ignored.
type SearchParams struct {
	Make     string
	Model    string
	Year     int
	Keyword  string
	Category string
	SKU      string
}

func (p SearchParams) criteria() criteria.Criteria {
	var year *int
	if p.Year != 0 {
		year = &p.Year
	}
	return criteria.New(criteria.Params{
		Make:     &p.Make,
		Model:    &p.Model,
		Year:     year,
		Keyword:  &p.Keyword,
		Category: &p.Category,
		SKU:      &p.SKU,
	})
}

// YearRange is the span of model years covered by a make. Both bounds are nil
// when the make has no products.
type YearRange struct {
	Min *int
	Max *int
}

func toProducts(recs []domain.Record) []Product {
	out := make([]Product, len(recs))
	for i, r := range recs {
		out[i] = Product{rec: r}
	}
	return out
}

package criteria

import "strings"

// Criteria is an immutable set of optional product search constraints.
// The zero value has no constraints and matches every record.
type Criteria struct {
	make     string
	model    string
	year     *int
	keyword  string
	category string
	sku      string
}

// Params holds raw, possibly absent, search parameters.
type Params struct {
	Make     *string
	Model    *string
	Year     *int
	Keyword  *string
	Category *string
	SKU      *string
}

// New normalizes raw parameters into Criteria. Blank values count as absent.
func New(p Params) Criteria {
	c := Criteria{
		make:     clean(p.Make),
		model:    clean(p.Model),
		keyword:  clean(p.Keyword),
		category: clean(p.Category),
		sku:      clean(p.SKU),
	}
	if p.Year != nil {
		y := *p.Year
		c.year = &y
	}
	return c
}

func clean(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// Make returns the exact make constraint.
func (c Criteria) Make() (string, bool) { return c.make, c.make != "" }

// Model returns the model substring constraint.
func (c Criteria) Model() (string, bool) { return c.model, c.model != "" }

// Year returns the year applicability constraint.
func (c Criteria) Year() (int, bool) {
	if c.year == nil {
		return 0, false
	}
	return *c.year, true
}

// Keyword returns the name/description substring constraint.
func (c Criteria) Keyword() (string, bool) { return c.keyword, c.keyword != "" }

// Category returns the category substring constraint.
func (c Criteria) Category() (string, bool) { return c.category, c.category != "" }

// SKU returns the part-code constraint.
func (c Criteria) SKU() (string, bool) { return c.sku, c.sku != "" }

// IsEmpty reports whether no constraint is set.
func (c Criteria) IsEmpty() bool {
	return c.make == "" && c.model == "" && c.year == nil &&
		c.keyword == "" && c.category == "" && c.sku == ""
}

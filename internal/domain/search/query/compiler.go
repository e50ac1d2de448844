package query

import (
	"strings"
	"unicode"

	"github.com/kailas-cloud/partsdex/internal/domain/search/criteria"
)

// Compile turns search criteria into a query. Clauses are appended in a fixed
// order (sku, make, model, year, keyword, category); empty criteria match everything.
func Compile(c criteria.Criteria) Compiled {
	q := All()

	if sku, ok := c.SKU(); ok {
		q = q.Where(skuMatch(sku)...)
	}
	if mk, ok := c.Make(); ok {
		q = q.Where(Eq(FieldMake, mk))
	}
	if model, ok := c.Model(); ok {
		// The model column may hold a comma-separated list; substring matching over-matches on purpose.
		q = q.Where(Contains(FieldModel, model))
	}
	if year, ok := c.Year(); ok {
		q = q.Where(AtMost(FieldYearStart, year))
		q = q.Where(AtLeast(FieldYearEnd, year))
	}
	if kw, ok := c.Keyword(); ok {
		q = q.Where(Contains(FieldName, kw), Contains(FieldDescription, kw))
	}
	if cat, ok := c.Category(); ok {
		q = q.Where(Contains(FieldCategory, cat))
	}

	return q
}

// skuMatch is the four-way part-code match: substring and prefix, each on the raw
// code and on the code without its leading letters.
func skuMatch(sku string) []Predicate {
	stripped := StripSKUPrefix(sku)
	return []Predicate{
		Contains(FieldSKU, sku),
		Contains(FieldSKU, stripped),
		Prefix(FieldSKU, sku),
		Prefix(FieldSKU, stripped),
	}
}

// StripSKUPrefix removes the longest leading run of letters from a part code.
// A code made only of letters is returned unchanged so it never degrades to
// an empty, match-everything pattern. The function is idempotent.
func StripSKUPrefix(sku string) string {
	stripped := strings.TrimLeftFunc(sku, unicode.IsLetter)
	if stripped == "" {
		return sku
	}
	return stripped
}

// Suggestion holds the two branches of a suggestion lookup: part codes and names.
// Both branches are also triggered by rows whose make or model contain the term.
type Suggestion struct {
	SKU  Compiled
	Name Compiled
	// Outer filters and ranks the union of both branches, projected as FieldValue.
	Outer Compiled
}

// CompileSuggestion builds the suggestion lookup for term.
func CompileSuggestion(term string) Suggestion {
	skuAlts := append(skuMatch(term), Contains(FieldMake, term), Contains(FieldModel, term))
	outer := All().
		Where(NotNull(FieldValue)).
		Where(NotEmpty(FieldValue))

	return Suggestion{
		SKU:   All().Where(skuAlts...),
		Name:  All().Where(Contains(FieldName, term), Contains(FieldMake, term), Contains(FieldModel, term)),
		Outer: RankByTier(outer, term, FieldValue),
	}
}

package query

// RankByPosition orders closer matches first: rows containing term before rows that
// do not, then by the position of term in the field, then by shorter field values.
// Used for make and model lookups.
func RankByPosition(q Compiled, term string, f Field) Compiled {
	return q.OrderBy(
		SortKey{kind: SortNoMatch, field: f, term: term},
		SortKey{kind: SortPosition, field: f, term: term},
		SortKey{kind: SortLength, field: f},
	)
}

// RankByTier orders exact matches first, then prefix matches, then everything else,
// breaking ties by shorter field values. Used for part-code and keyword searches.
func RankByTier(q Compiled, term string, f Field) Compiled {
	return q.OrderBy(
		SortKey{kind: SortTier, field: f, term: term},
		SortKey{kind: SortLength, field: f},
	)
}

// Alphabetical orders by the raw field value, ascending.
func Alphabetical(q Compiled, f Field) Compiled {
	return q.OrderBy(SortKey{kind: SortColumn, field: f})
}

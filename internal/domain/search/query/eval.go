package query

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Row is an in-memory view of a record keyed by logical field. Missing keys and nil values are NULL.
// Text comparisons fold case, mirroring the store's default collation.
type Row map[Field]any

// Matches reports whether row satisfies every clause of q.
func (q Compiled) Matches(row Row) bool {
	for _, c := range q.clauses {
		if !c.matches(row) {
			return false
		}
	}
	return true
}

func (c Clause) matches(row Row) bool {
	for _, p := range c.any {
		if p.matches(row) {
			return true
		}
	}
	return false
}

func (p Predicate) matches(row Row) bool {
	v, ok := row[p.field]
	if !ok || v == nil {
		return false
	}
	switch p.op {
	case OpNotNull:
		return true
	case OpNotEmpty:
		return text(v) != ""
	case OpEq:
		return strings.EqualFold(text(v), text(p.arg))
	case OpContains:
		return strings.Contains(fold(text(v)), fold(text(p.arg)))
	case OpPrefix:
		return strings.HasPrefix(fold(text(v)), fold(text(p.arg)))
	case OpAtMost, OpAtLeast:
		n, ok := number(v)
		if !ok {
			return false
		}
		bound, ok := number(p.arg)
		if !ok {
			return false
		}
		if p.op == OpAtMost {
			return n <= bound
		}
		return n >= bound
	default:
		return false
	}
}

// Compare orders two rows by the ordering of q. Rows equal on every key compare as 0.
func (q Compiled) Compare(a, b Row) int {
	for _, k := range q.order {
		c := k.compare(a, b)
		if k.desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Sort orders rows in place by the ordering of q. Ties keep their input order.
func (q Compiled) Sort(rows []Row) {
	slices.SortStableFunc(rows, q.Compare)
}

func (k SortKey) compare(a, b Row) int {
	av, bv := text(a[k.field]), text(b[k.field])
	switch k.kind {
	case SortColumn:
		return strings.Compare(av, bv)
	case SortNoMatch:
		return cmp.Compare(k.noMatch(av), k.noMatch(bv))
	case SortPosition:
		return cmp.Compare(Position(av, k.term), Position(bv, k.term))
	case SortLength:
		return cmp.Compare(utf8.RuneCountInString(av), utf8.RuneCountInString(bv))
	case SortTier:
		return cmp.Compare(Tier(av, k.term), Tier(bv, k.term))
	default:
		return 0
	}
}

func (k SortKey) noMatch(v string) int {
	if Position(v, k.term) == 0 {
		return 1
	}
	return 0
}

// Position returns the 1-based character position of term in v, or 0 when absent.
func Position(v, term string) int {
	i := strings.Index(fold(v), fold(term))
	if i < 0 {
		return 0
	}
	return utf8.RuneCountInString(fold(v)[:i]) + 1
}

// Tier buckets v against term: 1 exact, 2 prefix, 3 otherwise.
func Tier(v, term string) int {
	switch {
	case strings.EqualFold(v, term):
		return 1
	case strings.HasPrefix(fold(v), fold(term)):
		return 2
	default:
		return 3
	}
}

func fold(s string) string { return strings.ToLower(s) }

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

package query

import (
	"fmt"
	"slices"
	"strings"
)

// SortKind selects how a sort key is computed from a field.
type SortKind int

// Sort key kinds.
const (
	SortColumn   SortKind = iota + 1 // raw field value
	SortNoMatch                      // 0 when the field contains the term, 1 otherwise
	SortPosition                     // 1-based position of the term in the field, 0 when absent
	SortLength                       // character length of the field
	SortTier                         // 1 exact, 2 prefix, 3 anything else
)

// SortKey is one ordering term, evaluated in sequence with the others.
type SortKey struct {
	kind  SortKind
	field Field
	term  string
	desc  bool
}

// Kind returns how the key is computed.
func (k SortKey) Kind() SortKind { return k.kind }

// Field returns the field the key is computed from.
func (k SortKey) Field() Field { return k.field }

// Term returns the search term for term-relative keys.
func (k SortKey) Term() string { return k.term }

// Desc reports descending order.
func (k SortKey) Desc() bool { return k.desc }

// Compiled is an immutable query: AND-ed clauses, their positional bound values,
// and an ordering. Methods return modified copies.
type Compiled struct {
	clauses []Clause
	order   []SortKey
}

// All returns a query without restrictions.
func All() Compiled { return Compiled{} }

// Where returns a copy with one more clause; several predicates form an OR-group.
// Calling Where without predicates is a no-op.
func (q Compiled) Where(alternatives ...Predicate) Compiled {
	if len(alternatives) == 0 {
		return q
	}
	q.clauses = append(slices.Clone(q.clauses), Clause{any: slices.Clone(alternatives)})
	return q
}

// OrderBy returns a copy with the given keys appended to the ordering.
func (q Compiled) OrderBy(keys ...SortKey) Compiled {
	q.order = append(slices.Clone(q.order), keys...)
	return q
}

// Clauses returns the AND-ed clauses in compile order.
func (q Compiled) Clauses() []Clause { return q.clauses }

// Order returns the ordering keys.
func (q Compiled) Order() []SortKey { return q.order }

// MatchesAll reports whether the query places no restriction on records.
func (q Compiled) MatchesAll() bool { return len(q.clauses) == 0 }

// Args returns the bound values of all clauses in placeholder order.
func (q Compiled) Args() []any {
	var args []any
	for _, c := range q.clauses {
		for _, p := range c.any {
			if p.op.Bound() {
				args = append(args, p.arg)
			}
		}
	}
	return args
}

// Placeholders returns the number of placeholders in the clauses.
func (q Compiled) Placeholders() int {
	n := 0
	for _, c := range q.clauses {
		n += c.Placeholders()
	}
	return n
}

// String returns a debug representation, e.g. "(sku contains ? OR sku prefix ?) AND make eq ?".
func (q Compiled) String() string {
	if q.MatchesAll() {
		return "TRUE"
	}
	parts := make([]string, 0, len(q.clauses))
	for _, c := range q.clauses {
		alts := make([]string, 0, len(c.any))
		for _, p := range c.any {
			s := fmt.Sprintf("%s %s", p.field, p.op)
			if p.op.Bound() {
				s += " ?"
			}
			alts = append(alts, s)
		}
		part := strings.Join(alts, " OR ")
		if len(alts) > 1 {
			part = "(" + part + ")"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " AND ")
}

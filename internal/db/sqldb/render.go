package sqldb

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/partsdex/internal/db"
	"github.com/kailas-cloud/partsdex/internal/domain/search/query"
)

// valueAlias is the projected column name of suggestion queries.
const valueAlias = "value"

// Renderer turns compiled queries into SQL fragments for one dialect and schema.
// It is the only place that produces query syntax; every value is bound.
type Renderer struct {
	dialect Dialect
	schema  db.Schema
}

// NewRenderer validates the schema and creates a renderer.
func NewRenderer(d Dialect, s db.Schema) (*Renderer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{dialect: d, schema: s}, nil
}

// Dialect returns the target dialect.
func (r *Renderer) Dialect() Dialect { return r.dialect }

// Table returns the quoted catalog table.
func (r *Renderer) Table() string { return r.dialect.Quote(r.schema.Table) }

// Column returns the quoted column for a logical field.
func (r *Renderer) Column(f query.Field) (string, error) {
	if f == query.FieldValue {
		return r.dialect.Quote(valueAlias), nil
	}
	col, err := r.schema.Column(f)
	if err != nil {
		return "", err
	}
	return r.dialect.Quote(col), nil
}

// Where renders the clauses of q as a boolean expression. A query without
// clauses renders as "1=1".
func (r *Renderer) Where(q query.Compiled) (string, []any, error) {
	if q.MatchesAll() {
		return "1=1", nil, nil
	}

	parts := make([]string, 0, len(q.Clauses()))
	args := make([]any, 0, q.Placeholders())
	for _, c := range q.Clauses() {
		alts := make([]string, 0, len(c.Predicates()))
		for _, p := range c.Predicates() {
			sql, arg, err := r.predicate(p)
			if err != nil {
				return "", nil, err
			}
			alts = append(alts, sql)
			if p.Op().Bound() {
				args = append(args, arg)
			}
		}
		if len(alts) == 1 {
			parts = append(parts, alts[0])
		} else {
			parts = append(parts, "("+strings.Join(alts, " OR ")+")")
		}
	}
	return strings.Join(parts, " AND "), args, nil
}

func (r *Renderer) predicate(p query.Predicate) (string, any, error) {
	col, err := r.Column(p.Field())
	if err != nil {
		return "", nil, err
	}
	switch p.Op() {
	case query.OpEq:
		return col + " = ?", p.Arg(), nil
	case query.OpContains:
		return col + r.like(), containsPattern(fmt.Sprint(p.Arg())), nil
	case query.OpPrefix:
		return col + r.like(), prefixPattern(fmt.Sprint(p.Arg())), nil
	case query.OpAtMost:
		return col + " <= ?", p.Arg(), nil
	case query.OpAtLeast:
		return col + " >= ?", p.Arg(), nil
	case query.OpNotNull:
		return col + " IS NOT NULL", nil, nil
	case query.OpNotEmpty:
		return col + " <> ''", nil, nil
	default:
		return "", nil, fmt.Errorf("unsupported operator %s", p.Op())
	}
}

func (r *Renderer) like() string {
	return " LIKE ? ESCAPE '" + string(likeEscape) + "'"
}

// OrderBy renders the ordering of q without the ORDER BY keyword.
// It returns "" when q has no ordering.
func (r *Renderer) OrderBy(q query.Compiled) (string, []any, error) {
	if len(q.Order()) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(q.Order()))
	var args []any
	for _, k := range q.Order() {
		expr, kargs, err := r.sortKey(k)
		if err != nil {
			return "", nil, err
		}
		dir := " ASC"
		if k.Desc() {
			dir = " DESC"
		}
		parts = append(parts, expr+dir)
		args = append(args, kargs...)
	}
	return strings.Join(parts, ", "), args, nil
}

func (r *Renderer) sortKey(k query.SortKey) (string, []any, error) {
	col, err := r.Column(k.Field())
	if err != nil {
		return "", nil, err
	}
	// Position and tier fold case on both sides so SQLite agrees with MySQL's ci collation.
	switch k.Kind() {
	case query.SortColumn:
		return col, nil, nil
	case query.SortNoMatch:
		return "COALESCE(INSTR(LOWER(" + col + "), LOWER(?)), 0) = 0", []any{k.Term()}, nil
	case query.SortPosition:
		return "INSTR(LOWER(" + col + "), LOWER(?))", []any{k.Term()}, nil
	case query.SortLength:
		return r.dialect.Length(col), nil, nil
	case query.SortTier:
		expr := "CASE WHEN LOWER(" + col + ") = LOWER(?) THEN 1 WHEN " + col + r.like() + " THEN 2 ELSE 3 END"
		return expr, []any{k.Term(), prefixPattern(k.Term())}, nil
	default:
		return "", nil, fmt.Errorf("unsupported sort key %d", k.Kind())
	}
}

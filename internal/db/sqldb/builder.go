package sqldb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/partsdex/internal/db"
	"github.com/kailas-cloud/partsdex/internal/domain/search/query"
)

type projection struct {
	field query.Field
	fn    string // "", "MIN", "MAX"
	alias string
}

// SelectBuilder is a fluent builder for single-table SELECT statements.
type SelectBuilder struct {
	r        *Renderer
	op       string
	distinct bool
	star     bool
	cols     []projection
	q        query.Compiled
	limit    int
	err      error
}

// Select starts a SELECT over the catalog table. op names the statement for logs and metrics.
func (r *Renderer) Select(op string) *SelectBuilder {
	return &SelectBuilder{r: r, op: op}
}

// All selects every column of the table.
func (b *SelectBuilder) All() *SelectBuilder {
	b.star = true
	return b
}

// Distinct removes duplicate rows.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.distinct = true
	return b
}

// Column selects a field under alias.
func (b *SelectBuilder) Column(f query.Field, alias string) *SelectBuilder {
	b.cols = append(b.cols, projection{field: f, alias: alias})
	return b
}

// Min selects the minimum of a field under alias.
func (b *SelectBuilder) Min(f query.Field, alias string) *SelectBuilder {
	b.cols = append(b.cols, projection{field: f, fn: "MIN", alias: alias})
	return b
}

// Max selects the maximum of a field under alias.
func (b *SelectBuilder) Max(f query.Field, alias string) *SelectBuilder {
	b.cols = append(b.cols, projection{field: f, fn: "MAX", alias: alias})
	return b
}

// Query applies the clauses and ordering of q.
func (b *SelectBuilder) Query(q query.Compiled) *SelectBuilder {
	b.q = q
	return b
}

// Limit caps the number of rows. Zero means no limit.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	if n < 0 {
		b.err = fmt.Errorf("negative limit %d", n)
	}
	b.limit = n
	return b
}

// Build renders the statement.
func (b *SelectBuilder) Build() (db.Statement, error) {
	sql, args, err := b.render(true)
	if err != nil {
		return db.Statement{}, err
	}
	return db.Statement{Op: b.op, SQL: sql, Args: args}, nil
}

// MustBuild calls Build and panics on error.
func (b *SelectBuilder) MustBuild() db.Statement {
	stmt, err := b.Build()
	if err != nil {
		panic(err)
	}
	return stmt
}

func (b *SelectBuilder) render(withTail bool) (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if b.distinct {
		sb.WriteString("DISTINCT ")
	}
	cols, err := b.projections()
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(cols)
	sb.WriteString(" FROM ")
	sb.WriteString(b.r.Table())

	where, args, err := b.r.Where(b.q)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(where)

	if withTail {
		order, orderArgs, err := b.r.OrderBy(b.q)
		if err != nil {
			return "", nil, err
		}
		if order != "" {
			sb.WriteString(" ORDER BY ")
			sb.WriteString(order)
			args = append(args, orderArgs...)
		}
		if b.limit > 0 {
			sb.WriteString(" LIMIT ")
			sb.WriteString(strconv.Itoa(b.limit))
		}
	}
	return sb.String(), args, nil
}

func (b *SelectBuilder) projections() (string, error) {
	if b.star || len(b.cols) == 0 {
		return "*", nil
	}
	parts := make([]string, 0, len(b.cols))
	for _, p := range b.cols {
		col, err := b.r.Column(p.field)
		if err != nil {
			return "", err
		}
		if p.fn != "" {
			col = p.fn + "(" + col + ")"
		}
		if p.alias != "" {
			col += " AS " + b.r.dialect.Quote(p.alias)
		}
		parts = append(parts, col)
	}
	return strings.Join(parts, ", "), nil
}

// UnionBuilder combines SELECTs that each project a single column aliased as
// "value", then filters, orders and limits the combined set.
type UnionBuilder struct {
	r     *Renderer
	op    string
	parts []*SelectBuilder
	outer query.Compiled
	limit int
}

// Union starts a UNION (duplicates removed) of the given branches.
func (r *Renderer) Union(op string, parts ...*SelectBuilder) *UnionBuilder {
	return &UnionBuilder{r: r, op: op, parts: parts}
}

// Query applies clauses and ordering over the projected value column.
func (u *UnionBuilder) Query(q query.Compiled) *UnionBuilder {
	u.outer = q
	return u
}

// Limit caps the number of rows. Zero means no limit.
func (u *UnionBuilder) Limit(n int) *UnionBuilder {
	u.limit = n
	return u
}

// Build renders the statement.
func (u *UnionBuilder) Build() (db.Statement, error) {
	if len(u.parts) == 0 {
		return db.Statement{}, fmt.Errorf("union needs at least one branch")
	}

	branches := make([]string, 0, len(u.parts))
	var args []any
	for _, p := range u.parts {
		sql, pargs, err := p.render(false)
		if err != nil {
			return db.Statement{}, err
		}
		branches = append(branches, sql)
		args = append(args, pargs...)
	}

	value := u.r.dialect.Quote(valueAlias)
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(value)
	sb.WriteString(" FROM (")
	sb.WriteString(strings.Join(branches, " UNION "))
	sb.WriteString(") AS ")
	sb.WriteString(u.r.dialect.Quote("u"))

	where, wargs, err := u.r.Where(u.outer)
	if err != nil {
		return db.Statement{}, err
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(where)
	args = append(args, wargs...)

	order, oargs, err := u.r.OrderBy(u.outer)
	if err != nil {
		return db.Statement{}, err
	}
	if order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(order)
		args = append(args, oargs...)
	}
	if u.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(u.limit))
	}

	return db.Statement{Op: u.op, SQL: sb.String(), Args: args}, nil
}

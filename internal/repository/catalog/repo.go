package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/partsdex/internal/db"
	"github.com/kailas-cloud/partsdex/internal/db/sqldb"
	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/domain/search/query"
)

// Projection aliases of facet queries.
const (
	aliasMake     = "make"
	aliasModel    = "model"
	aliasCategory = "category"
	aliasMinYear  = "min_year"
	aliasMaxYear  = "max_year"
	aliasValue    = "value"
)

// store is the consumer interface for catalog reads (ISP).
type store interface {
	Query(ctx context.Context, stmt db.Statement) ([]domain.Record, error)
}

// Repo implements usecase/catalog.Repository on a SQL store.
type Repo struct {
	store store
	sql   *sqldb.Renderer
}

// New creates a catalog repository.
func New(s store, r *sqldb.Renderer) *Repo {
	return &Repo{store: s, sql: r}
}

// Search returns full records matching q, in q's order.
func (r *Repo) Search(ctx context.Context, q query.Compiled) ([]domain.Record, error) {
	stmt, err := r.sql.Select(db.OpSearchProducts).All().Query(q).Build()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}
	recs, err := r.store.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return recs, nil
}

// GetByID returns the record with the given identifier, or nil when absent.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	q := query.All().Where(query.Eq(query.FieldID, id))
	stmt, err := r.sql.Select(db.OpGetProduct).All().Query(q).Limit(1).Build()
	if err != nil {
		return nil, fmt.Errorf("build get: %w", err)
	}
	recs, err := r.store.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// DistinctMakes returns distinct make values matching q, in q's order.
func (r *Repo) DistinctMakes(ctx context.Context, q query.Compiled) ([]string, error) {
	return r.distinct(ctx, db.OpListMakes, query.FieldMake, aliasMake, q)
}

// DistinctModels returns distinct raw model column values matching q, in q's order.
func (r *Repo) DistinctModels(ctx context.Context, q query.Compiled) ([]string, error) {
	return r.distinct(ctx, db.OpListModels, query.FieldModel, aliasModel, q)
}

// DistinctCategories returns distinct raw category column values matching q.
func (r *Repo) DistinctCategories(ctx context.Context, q query.Compiled) ([]string, error) {
	return r.distinct(ctx, db.OpListCategories, query.FieldCategory, aliasCategory, q)
}

func (r *Repo) distinct(
	ctx context.Context, op string, f query.Field, alias string, q query.Compiled,
) ([]string, error) {
	stmt, err := r.sql.Select(op).Distinct().Column(f, alias).Query(q).Build()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	recs, err := r.store.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stringColumn(recs, alias), nil
}

// YearRange returns the minimum start year and maximum end year among records matching q.
func (r *Repo) YearRange(ctx context.Context, q query.Compiled) (domain.YearRange, error) {
	stmt, err := r.sql.Select(db.OpYearRange).
		Min(query.FieldYearStart, aliasMinYear).
		Max(query.FieldYearEnd, aliasMaxYear).
		Query(q).
		Build()
	if err != nil {
		return domain.YearRange{}, fmt.Errorf("build year range: %w", err)
	}
	recs, err := r.store.Query(ctx, stmt)
	if err != nil {
		return domain.YearRange{}, fmt.Errorf("year range: %w", err)
	}
	if len(recs) == 0 {
		return domain.YearRange{}, nil
	}

	var yr domain.YearRange
	if v, ok := recs[0].Get(aliasMinYear); ok {
		yr.MinYear = toInt(v)
	}
	if v, ok := recs[0].Get(aliasMaxYear); ok {
		yr.MaxYear = toInt(v)
	}
	return yr, nil
}

// Suggest returns up to limit suggestion values: the union of part codes and names
// selected by s, filtered and ranked by s.Outer.
func (r *Repo) Suggest(ctx context.Context, s query.Suggestion, limit int) ([]string, error) {
	skus := r.sql.Select(db.OpSuggestions).Column(query.FieldSKU, aliasValue).Query(s.SKU)
	names := r.sql.Select(db.OpSuggestions).Column(query.FieldName, aliasValue).Query(s.Name)

	stmt, err := r.sql.Union(db.OpSuggestions, skus, names).Query(s.Outer).Limit(limit).Build()
	if err != nil {
		return nil, fmt.Errorf("build suggestions: %w", err)
	}
	recs, err := r.store.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return stringColumn(recs, aliasValue), nil
}

// stringColumn extracts a text column, skipping NULLs.
func stringColumn(recs []domain.Record, name string) []string {
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		v, ok := rec.Get(name)
		if !ok || v == nil {
			continue
		}
		out = append(out, rec.String(name))
	}
	return out
}

func toInt(v any) *int {
	var n int
	switch t := v.(type) {
	case nil:
		return nil
	case int64:
		n = int(t)
	case int32:
		n = int(t)
	case int:
		n = t
	case float64:
		n = int(t)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil
		}
		n = i
	case []byte:
		i, err := strconv.Atoi(strings.TrimSpace(string(t)))
		if err != nil {
			return nil
		}
		n = i
	default:
		return nil
	}
	return &n
}

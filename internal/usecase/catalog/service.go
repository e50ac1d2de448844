package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/domain/search/criteria"
	"github.com/kailas-cloud/partsdex/internal/domain/search/query"
)

// DefaultSuggestionLimit caps the number of suggestions.
const DefaultSuggestionLimit = 10

// Service answers product searches and faceted lookups over the catalog.
type Service struct {
	repo            Repository
	suggestionLimit int
	rankSplitModels bool
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo, suggestionLimit: DefaultSuggestionLimit}
}

// WithSuggestionLimit overrides the suggestion cap. Non-positive values keep the default.
func (s *Service) WithSuggestionLimit(n int) *Service {
	if n > 0 {
		s.suggestionLimit = n
	}
	return s
}

// WithRankedModels orders the split model list by match position instead of
// alphabetically when a term is given.
func (s *Service) WithRankedModels(enabled bool) *Service {
	s.rankSplitModels = enabled
	return s
}

// SearchProducts returns records matching c. A part-code search ranks by part code,
// a keyword-only search ranks by name; otherwise store order is kept.
func (s *Service) SearchProducts(ctx context.Context, c criteria.Criteria) ([]domain.Record, error) {
	q := query.Compile(c)
	if sku, ok := c.SKU(); ok {
		q = query.RankByTier(q, sku, query.FieldSKU)
	} else if kw, ok := c.Keyword(); ok {
		q = query.RankByTier(q, kw, query.FieldName)
	}

	recs, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	return recs, nil
}

// GetProduct returns the record with id, or nil when there is none.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewMissingParam("id")
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return rec, nil
}

// ListMakes returns distinct makes. With a term, makes containing it are ranked
// by match position and length; without one they are alphabetical.
func (s *Service) ListMakes(ctx context.Context, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	q := query.All().Where(query.NotNull(query.FieldMake))
	if term != "" {
		q = query.RankByPosition(q.Where(query.Contains(query.FieldMake, term)), term, query.FieldMake)
	} else {
		q = query.Alphabetical(q, query.FieldMake)
	}

	makes, err := s.repo.DistinctMakes(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list makes: %w", err)
	}
	return nonNil(makes), nil
}

// ListModels returns the individual model names of a make. Model columns holding
// comma-separated lists are split, trimmed, de-duplicated and sorted.
func (s *Service) ListModels(ctx context.Context, mk, term string) ([]string, error) {
	mk, term = strings.TrimSpace(mk), strings.TrimSpace(term)
	if mk == "" {
		return nil, domain.NewMissingParam("make")
	}

	q := query.All().
		Where(query.Eq(query.FieldMake, mk)).
		Where(query.NotNull(query.FieldModel))
	if term != "" {
		// Ranks raw column values; the split below re-sorts unless ranked models are enabled.
		q = query.RankByPosition(q.Where(query.Contains(query.FieldModel, term)), term, query.FieldModel)
	}

	raw, err := s.repo.DistinctModels(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	models := SplitModels(raw)
	if s.rankSplitModels && term != "" {
		models = rankValues(models, term)
	}
	return models, nil
}

// ListCategories returns the distinct raw category column values.
// Multi-valued columns are returned as stored, without splitting.
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	q := query.Alphabetical(query.All().Where(query.NotNull(query.FieldCategory)), query.FieldCategory)
	cats, err := s.repo.DistinctCategories(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return nonNil(cats), nil
}

// YearRange returns the earliest start year and latest end year of a make.
func (s *Service) YearRange(ctx context.Context, mk string) (domain.YearRange, error) {
	mk = strings.TrimSpace(mk)
	if mk == "" {
		return domain.YearRange{}, domain.NewMissingParam("make")
	}
	yr, err := s.repo.YearRange(ctx, query.All().Where(query.Eq(query.FieldMake, mk)))
	if err != nil {
		return domain.YearRange{}, fmt.Errorf("year range: %w", err)
	}
	return yr, nil
}

// Suggestions returns up to the configured number of part codes and names for term.
// An empty term yields an empty list without touching the store.
func (s *Service) Suggestions(ctx context.Context, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []string{}, nil
	}
	out, err := s.repo.Suggest(ctx, query.CompileSuggestion(term), s.suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	if len(out) > s.suggestionLimit {
		out = out[:s.suggestionLimit]
	}
	return nonNil(out), nil
}

// SplitModels splits comma-separated model columns into a sorted set of names.
func SplitModels(raw []string) []string {
	seen := make(map[string]struct{})
	for _, v := range raw {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				seen[m] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// rankValues orders values by match position and length of term; ties stay alphabetical.
func rankValues(values []string, term string) []string {
	q := query.RankByPosition(query.All(), term, query.FieldModel)
	rows := make([]query.Row, len(values))
	for i, v := range values {
		rows[i] = query.Row{query.FieldModel: v}
	}
	q.Sort(rows)
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i], _ = r[query.FieldModel].(string)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package catalog

import (
	"context"

	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/domain/search/query"
)

// Repository defines the read contract of the catalog store.
type Repository interface {
	Search(ctx context.Context, q query.Compiled) ([]domain.Record, error)
	GetByID(ctx context.Context, id string) (*domain.Record, error)
	DistinctMakes(ctx context.Context, q query.Compiled) ([]string, error)
	DistinctModels(ctx context.Context, q query.Compiled) ([]string, error)
	DistinctCategories(ctx context.Context, q query.Compiled) ([]string, error)
	YearRange(ctx context.Context, q query.Compiled) (domain.YearRange, error)
	Suggest(ctx context.Context, s query.Suggestion, limit int) ([]string, error)
}

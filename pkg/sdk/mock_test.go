package partsdex

import (
	"context"

	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/domain/search/criteria"
	healthuc "github.com/kailas-cloud/partsdex/internal/usecase/health"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	searchFn     func(ctx context.Context, c criteria.Criteria) ([]domain.Record, error)
	getFn        func(ctx context.Context, id string) (*domain.Record, error)
	makesFn      func(ctx context.Context, term string) ([]string, error)
	modelsFn     func(ctx context.Context, mk, term string) ([]string, error)
	categoriesFn func(ctx context.Context) ([]string, error)
	yearsFn      func(ctx context.Context, mk string) (domain.YearRange, error)
	suggestFn    func(ctx context.Context, term string) ([]string, error)
}

func (m *mockCatalogUC) SearchProducts(ctx context.Context, c criteria.Criteria) ([]domain.Record, error) {
	return m.searchFn(ctx, c)
}

func (m *mockCatalogUC) GetProduct(ctx context.Context, id string) (*domain.Record, error) {
	return m.getFn(ctx, id)
}

func (m *mockCatalogUC) ListMakes(ctx context.Context, term string) ([]string, error) {
	return m.makesFn(ctx, term)
}

func (m *mockCatalogUC) ListModels(ctx context.Context, mk, term string) ([]string, error) {
	return m.modelsFn(ctx, mk, term)
}

func (m *mockCatalogUC) ListCategories(ctx context.Context) ([]string, error) {
	return m.categoriesFn(ctx)
}

func (m *mockCatalogUC) YearRange(ctx context.Context, mk string) (domain.YearRange, error) {
	return m.yearsFn(ctx, mk)
}

func (m *mockCatalogUC) Suggestions(ctx context.Context, term string) ([]string, error) {
	return m.suggestFn(ctx, term)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(catalog catalogUseCase, obs *observer) *Client {
	return &Client{catalog: catalog, obs: obs}
}

func record(pairs ...any) domain.Record {
	cols := make([]domain.Column, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		cols = append(cols, domain.Column{Name: pairs[i].(string), Value: pairs[i+1]})
	}
	return domain.NewRecord(cols)
}

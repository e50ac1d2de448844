package partsdex

import (
	"context"
	"fmt"
	"time"
)

// SearchProducts returns products matching p. A part-code search is ranked by
// part code and a keyword-only search by name; otherwise table order is kept.
func (c *Client) SearchProducts(ctx context.Context, p SearchParams) (_ []Product, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_products", start, err) }()

	recs, err := c.catalog.SearchProducts(ctx, p.criteria())
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return toProducts(recs), nil
}

// Product returns the product with id; ok is false when there is none.
func (c *Client) Product(ctx context.Context, id string) (_ Product, ok bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_product", start, err) }()

	rec, err := c.catalog.GetProduct(ctx, id)
	if err != nil {
		return Product{}, false, fmt.Errorf("get product: %w", err)
	}
	if rec == nil {
		return Product{}, false, nil
	}
	return Product{rec: *rec}, true, nil
}

// Makes lists distinct makes, ranked by match when term is set.
func (c *Client) Makes(ctx context.Context, term string) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list_makes", start, err) }()

	makes, err := c.catalog.ListMakes(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("list makes: %w", err)
	}
	return makes, nil
}

// Models lists the individual model names of mk, optionally filtered by term.
func (c *Client) Models(ctx context.Context, mk, term string) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list_models", start, err) }()

	models, err := c.catalog.ListModels(ctx, mk, term)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return models, nil
}

// Categories lists the distinct category values as stored.
func (c *Client) Categories(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list_categories", start, err) }()

	cats, err := c.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// YearRange returns the span of model years of mk.
func (c *Client) YearRange(ctx context.Context, mk string) (_ YearRange, err error) {
	start := time.Now()
	defer func() { c.obs.observe("year_range", start, err) }()

	yr, err := c.catalog.YearRange(ctx, mk)
	if err != nil {
		return YearRange{}, fmt.Errorf("year range: %w", err)
	}
	return YearRange{Min: yr.MinYear, Max: yr.MaxYear}, nil
}

// Suggestions returns part codes and names completing term.
func (c *Client) Suggestions(ctx context.Context, term string) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggestions", start, err) }()

	out, err := c.catalog.Suggestions(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return out, nil
}

package chi

import (
	"net/http"
	"net/url"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/domain/search/criteria"
)

// queryParams returns the request's query values with blank entries removed,
// so "?make=" is treated like an absent parameter.
func queryParams(r *http.Request) url.Values {
	out := url.Values{}
	for k, vs := range r.URL.Query() {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				out.Add(k, v)
			}
		}
	}
	return out
}

// bindString binds an optional string query parameter.
func bindString(q url.Values, name string) (*string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return nil, domain.NewInvalidParam(name, "must be a single value")
	}
	return v, nil
}

// bindInt binds an optional integer query parameter.
func bindInt(q url.Values, name string) (*int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return nil, domain.NewInvalidParam(name, "must be an integer")
	}
	return v, nil
}

// stringOrEmpty binds an optional string parameter, returning "" when absent.
func stringOrEmpty(q url.Values, name string) (string, error) {
	v, err := bindString(q, name)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

// productParams binds the product search criteria.
func productParams(r *http.Request) (criteria.Criteria, error) {
	q := queryParams(r)
	var (
		p   criteria.Params
		err error
	)
	if p.Make, err = bindString(q, "make"); err != nil {
		return criteria.Criteria{}, err
	}
	if p.Model, err = bindString(q, "model"); err != nil {
		return criteria.Criteria{}, err
	}
	if p.Year, err = bindInt(q, "year"); err != nil {
		return criteria.Criteria{}, err
	}
	if p.Keyword, err = bindString(q, "keyword"); err != nil {
		return criteria.Criteria{}, err
	}
	if p.Category, err = bindString(q, "category"); err != nil {
		return criteria.Criteria{}, err
	}
	if p.SKU, err = bindString(q, "sku"); err != nil {
		return criteria.Criteria{}, err
	}
	return criteria.New(p), nil
}

// pathID binds the {id} path segment.
func pathID(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", gochi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", domain.NewInvalidParam("id", "is malformed")
	}
	return id, nil
}

package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/catalog-gateway/internal/catalog"
)

// ListProducts serves GET /api/products: a filtered, sorted, paginated
// listing of catalog projections.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.catalog.ListProducts(r.Context(), q)
	if err != nil {
		h.writeServiceError(w, r, err, "list products")
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(page))
}

// GetProduct serves GET /api/products/{id}: one full catalog record.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "get product")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(*p))
}

// parseQuery builds a catalog query from the request parameters. Malformed
// numeric filters and unknown sort keys are rejected; malformed page or
// pageSize values fall back to defaults, since pagination is never an error.
func parseQuery(values url.Values) (catalog.Query, error) {
	criteria, err := parseCriteria(values)
	if err != nil {
		return catalog.Query{}, err
	}

	order, err := catalog.ParseSortOrder(values.Get("sort"))
	if err != nil {
		return catalog.Query{}, err
	}

	return catalog.Query{
		Criteria: criteria,
		Sort:     order,
		Page:     lenientInt(values.Get("page")),
		PageSize: lenientInt(values.Get("pageSize")),
	}, nil
}

// parseCriteria builds the filter criteria shared by the listing and
// insights endpoints. Absent parameters impose no constraint.
func parseCriteria(values url.Values) (catalog.Criteria, error) {
	c := catalog.Criteria{
		Search:   values.Get("search"),
		Category: values.Get("category"),
	}

	var err error
	if c.MinPrice, err = parsePrice(values.Get("minPrice"), "minPrice"); err != nil {
		return catalog.Criteria{}, err
	}
	if c.MaxPrice, err = parsePrice(values.Get("maxPrice"), "maxPrice"); err != nil {
		return catalog.Criteria{}, err
	}

	if raw := values.Get("maxStock"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return catalog.Criteria{}, errors.Errorf("invalid maxStock %q", raw)
		}
		c.MaxStock = &v
	}
	return c, nil
}

func parsePrice(raw, name string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}

// lenientInt parses a pagination parameter, returning 0 (meaning "use the
// default") on anything that is not a number.
func lenientInt(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

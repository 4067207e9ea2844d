// Package catalog holds the domain model of the product catalog and the
// in-memory query pipeline applied to it: filtering, sorting, pagination and
// insight aggregation over a per-request snapshot of upstream records.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist upstream.
var ErrNotFound = errors.New("product not found")

// ErrUpstream is returned when the upstream catalog cannot be reached or
// responds with a failure. The wrapped message may carry transport detail for
// logging; callers must not expose it to API clients.
var ErrUpstream = errors.New("catalog upstream unavailable")

// Product is a full catalog record as served by the upstream API.
// Records are built fresh on every request and never mutated afterwards.
type Product struct {
	ID          int
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	Thumbnail   string
	Rating      float64
	Stock       int

	// Optional upstream fields, zero-valued when absent.
	Brand              string
	Images             []string
	DiscountPercentage float64
}

// Listing is the reduced projection of a Product used in list views and
// top-rated lists. It drops description, brand, images and discount.
type Listing struct {
	ID        int
	Title     string
	Price     decimal.Decimal
	Category  string
	Thumbnail string
	Rating    float64
	Stock     int
}

// ToListing projects a Product onto its Listing view.
func ToListing(p Product) Listing {
	return Listing{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Category:  p.Category,
		Thumbnail: p.Thumbnail,
		Rating:    p.Rating,
		Stock:     p.Stock,
	}
}

// Source fetches catalog records from the upstream catalog API.
//
// FetchAll may pass search upstream as a server-side pre-filter, but callers
// must still run the full Filter afterwards: the upstream search is an
// optimization, not a contract.
type Source interface {
	FetchAll(ctx context.Context, search string) ([]Product, error)
	FetchByID(ctx context.Context, id int) (*Product, error)
}

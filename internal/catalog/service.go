package catalog

import (
	"context"

	"github.com/go-faster/errors"
)

// Config holds the tunable behaviour of the catalog service.
type Config struct {
	// DefaultPageSize is used when a listing request carries no page size.
	DefaultPageSize int
	// LowStockThreshold is the exclusive upper bound for the low-stock count.
	LowStockThreshold int
	// TopRatedCount is the length of the top-rated listing in insights.
	TopRatedCount int
}

// Service exposes the catalog read operations. Every call fetches a fresh
// snapshot from the source; nothing is cached between requests.
type Service struct {
	source Source
	cfg    Config
}

// NewService constructs a Service over the given source.
func NewService(source Source, cfg Config) *Service {
	return &Service{source: source, cfg: cfg}
}

// ListProducts fetches the catalog and runs the query pipeline over it.
// Transport failures surface as ErrUpstream.
func (s *Service) ListProducts(ctx context.Context, q Query) (Page, error) {
	products, err := s.fetchAll(ctx, q.Criteria.Search)
	if err != nil {
		return Page{}, err
	}
	return List(products, q, s.cfg.DefaultPageSize), nil
}

// GetProduct fetches a single record by id. A missing record is ErrNotFound,
// distinct from ErrUpstream transport failures.
func (s *Service) GetProduct(ctx context.Context, id int) (*Product, error) {
	p, err := s.source.FetchByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrUpstream, "get product %d: %v", id, err)
	}
	return p, nil
}

// GetInsights fetches the catalog, filters it with the exact same semantics
// as ListProducts, and aggregates the filtered population. Insights for a
// criteria set always describe the population a listing with that criteria
// set would return.
func (s *Service) GetInsights(ctx context.Context, c Criteria) (Insights, error) {
	products, err := s.fetchAll(ctx, c.Search)
	if err != nil {
		return Insights{}, err
	}

	filtered := Filter(products, c)
	return ComputeInsights(filtered, InsightsConfig{
		LowStockThreshold: s.cfg.LowStockThreshold,
		TopRatedCount:     s.cfg.TopRatedCount,
	}), nil
}

func (s *Service) fetchAll(ctx context.Context, search string) ([]Product, error) {
	products, err := s.source.FetchAll(ctx, search)
	if err != nil {
		return nil, errors.Wrapf(ErrUpstream, "fetch catalog: %v", err)
	}
	return products, nil
}

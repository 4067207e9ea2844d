package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Fallbacks applied when the corresponding configuration value is unset.
const (
	DefaultPageSize          = 20
	DefaultLowStockThreshold = 10
	DefaultTopRatedCount     = 5
)

// SortOrder enumerates the supported listing sort orders.
type SortOrder string

const (
	// SortNone preserves input order.
	SortNone       SortOrder = ""
	SortPriceAsc   SortOrder = "price_asc"
	SortPriceDesc  SortOrder = "price_desc"
	SortRatingAsc  SortOrder = "rating_asc"
	SortRatingDesc SortOrder = "rating_desc"
	SortTitleAsc   SortOrder = "title_asc"
	SortTitleDesc  SortOrder = "title_desc"
)

// ParseSortOrder validates a sort key from the query string. The empty string
// is valid and means "no sort".
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case SortNone, SortPriceAsc, SortPriceDesc, SortRatingAsc, SortRatingDesc, SortTitleAsc, SortTitleDesc:
		return o, nil
	default:
		return SortNone, errors.Errorf("unknown sort order %q", s)
	}
}

// Criteria is an optional-field filter set. A nil or zero field imposes no
// constraint on that dimension; specified fields combine with logical AND.
type Criteria struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	MaxStock *int
}

// Query bundles the filter, sort and pagination inputs of a listing request.
type Query struct {
	Criteria Criteria
	Sort     SortOrder
	Page     int
	PageSize int
}

// Page is one window of a filtered, sorted listing. Total counts the
// post-filter, pre-pagination population.
type Page struct {
	Items      []Listing
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Filter keeps the products satisfying every specified criterion, preserving
// input order. The input slice is never modified.
func Filter(products []Product, c Criteria) []Product {
	search := strings.ToLower(c.Search)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if c.Category != "" && p.Category != c.Category {
			continue
		}
		if c.MinPrice != nil && p.Price.Cmp(*c.MinPrice) < 0 {
			continue
		}
		if c.MaxPrice != nil && p.Price.Cmp(*c.MaxPrice) > 0 {
			continue
		}
		if c.MaxStock != nil && p.Stock > *c.MaxStock {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesSearch reports whether the lowered search term occurs in the
// space-joined title, description and category of p, case-insensitively.
func matchesSearch(p Product, lowered string) bool {
	haystack := strings.ToLower(p.Title + " " + p.Description + " " + p.Category)
	return strings.Contains(haystack, lowered)
}

// Sort returns the products ordered by the given sort order. It always
// returns a fresh slice; the caller's slice is never reordered. SortNone
// returns a copy preserving input order. The sort is stable: equal keys keep
// input order.
func Sort(products []Product, order SortOrder) []Product {
	out := slices.Clone(products)
	if order == SortNone {
		return out
	}
	slices.SortStableFunc(out, comparator(order))
	return out
}

func comparator(order SortOrder) func(a, b Product) int {
	switch order {
	case SortPriceAsc:
		return func(a, b Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		return func(a, b Product) int { return b.Price.Cmp(a.Price) }
	case SortRatingAsc:
		return func(a, b Product) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortRatingDesc:
		return func(a, b Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortTitleAsc:
		col := collate.New(language.English)
		return func(a, b Product) int { return col.CompareString(a.Title, b.Title) }
	case SortTitleDesc:
		col := collate.New(language.English)
		return func(a, b Product) int { return col.CompareString(b.Title, a.Title) }
	default:
		return func(a, b Product) int { return 0 }
	}
}

// Paginate windows the products onto the requested page and projects each
// item onto its Listing view. It never fails: a non-positive page size falls
// back to defaultPageSize (or DefaultPageSize), and an out-of-range page is
// clamped into [1, totalPages]. An empty input yields totalPages = 1 with no
// items.
func Paginate(products []Product, page, pageSize, defaultPageSize int) Page {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(products)
	totalPages := max(1, (total+pageSize-1)/pageSize)
	page = min(max(page, 1), totalPages)

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	items := make([]Listing, 0, end-start)
	for _, p := range products[start:end] {
		items = append(items, ToListing(p))
	}

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// List runs the query pipeline over a catalog snapshot: filter, then sort,
// then paginate. The order is fixed — pagination must window the already
// filtered and sorted sequence.
func List(products []Product, q Query, defaultPageSize int) Page {
	filtered := Filter(products, q.Criteria)
	sorted := Sort(filtered, q.Sort)
	return Paginate(sorted, q.Page, q.PageSize, defaultPageSize)
}

package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

func newTestProduct(id int, title, category, price string, rating float64, stock int) Product {
	return Product{
		ID:          id,
		Title:       title,
		Description: "a " + title + " for testing",
		Price:       decimal.RequireFromString(price),
		Category:    category,
		Thumbnail:   "thumb.jpg",
		Rating:      rating,
		Stock:       stock,
	}
}

// mixedCatalog is the four-item set from the end-to-end scenarios.
func mixedCatalog() []Product {
	return []Product{
		newTestProduct(1, "Samsung Galaxy", "smartphones", "999", 4.8, 50),
		newTestProduct(2, "Pixel", "smartphones", "799", 4.5, 30),
		newTestProduct(3, "ThinkPad", "laptops", "1999", 4.9, 5),
		newTestProduct(4, "MacBook Air", "laptops", "1299", 4.3, 20),
	}
}

func ids(products []Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func listingIDs(items []Listing) []int {
	out := make([]int, 0, len(items))
	for _, l := range items {
		out = append(out, l.ID)
	}
	return out
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(v int) *int {
	return &v
}

// --- Filter ---

func TestFilter_NoCriteriaKeepsAllInOrder(t *testing.T) {
	in := mixedCatalog()

	out := Filter(in, Criteria{})

	assert.Equal(t, ids(in), ids(out))
}

func TestFilter_Category(t *testing.T) {
	out := Filter(mixedCatalog(), Criteria{Category: "laptops"})

	assert.Equal(t, []int{3, 4}, ids(out))
}

func TestFilter_PriceBoundsAreInclusive(t *testing.T) {
	in := mixedCatalog()

	out := Filter(in, Criteria{MinPrice: decPtr("999"), MaxPrice: decPtr("1299")})

	assert.Equal(t, []int{1, 4}, ids(out))
}

func TestFilter_MaxStockBoundaryKept(t *testing.T) {
	out := Filter(mixedCatalog(), Criteria{MaxStock: intPtr(20)})

	assert.Equal(t, []int{3, 4}, ids(out))
}

func TestFilter_SearchCaseInsensitive(t *testing.T) {
	in := mixedCatalog()

	tests := []struct {
		name   string
		search string
		want   []int
	}{
		{"lowercase term against title", "samsung", []int{1}},
		{"uppercase term against title", "SAMSUNG", []int{1}},
		{"term against description", "PIXEL FOR TESTING", []int{2}},
		{"term against category", "laptops", []int{3, 4}},
		{"no match", "toaster", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Filter(in, Criteria{Search: tt.search})
			assert.Equal(t, tt.want, ids(out))
		})
	}
}

func TestFilter_CombinedCriteriaAreANDed(t *testing.T) {
	// Only the Samsung record matches all three criteria.
	out := Filter(mixedCatalog(), Criteria{
		Category: "smartphones",
		MinPrice: decPtr("700"),
		Search:   "Samsung",
	})

	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].ID)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := mixedCatalog()
	want := ids(in)

	Filter(in, Criteria{Category: "laptops"})

	assert.Equal(t, want, ids(in))
}

// --- Sort ---

func TestSort_NoOrderReturnsEqualCopy(t *testing.T) {
	in := mixedCatalog()

	out := Sort(in, SortNone)

	assert.Equal(t, in, out)
	// A fresh slice, not the caller's backing array.
	out[0] = newTestProduct(99, "changed", "none", "1", 0, 0)
	assert.Equal(t, 1, in[0].ID)
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := mixedCatalog()
	want := ids(in)

	Sort(in, SortPriceAsc)

	assert.Equal(t, want, ids(in))
}

func TestSort_AllOrders(t *testing.T) {
	in := mixedCatalog()

	tests := []struct {
		order SortOrder
		want  []int
	}{
		{SortPriceAsc, []int{2, 1, 4, 3}},
		{SortPriceDesc, []int{3, 4, 1, 2}},
		{SortRatingAsc, []int{4, 2, 1, 3}},
		{SortRatingDesc, []int{3, 1, 2, 4}},
		{SortTitleAsc, []int{4, 2, 1, 3}},  // MacBook Air, Pixel, Samsung Galaxy, ThinkPad
		{SortTitleDesc, []int{3, 1, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			out := Sort(in, tt.order)
			assert.Equal(t, tt.want, ids(out))
		})
	}
}

func TestSort_StableOnTies(t *testing.T) {
	in := []Product{
		newTestProduct(1, "first", "a", "10", 4.0, 1),
		newTestProduct(2, "second", "a", "10", 4.0, 2),
		newTestProduct(3, "third", "a", "10", 4.0, 3),
	}

	assert.Equal(t, []int{1, 2, 3}, ids(Sort(in, SortPriceAsc)))
	assert.Equal(t, []int{1, 2, 3}, ids(Sort(in, SortRatingDesc)))
}

func TestParseSortOrder(t *testing.T) {
	order, err := ParseSortOrder("price_desc")
	require.NoError(t, err)
	assert.Equal(t, SortPriceDesc, order)

	order, err = ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, order)

	_, err = ParseSortOrder("price")
	assert.Error(t, err)
}

// --- Paginate ---

func TestPaginate_ClampsOutOfRangePage(t *testing.T) {
	page := Paginate(mixedCatalog(), 5, 20, DefaultPageSize)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, []int{1, 2, 3, 4}, listingIDs(page.Items))
}

func TestPaginate_NonPositivePageSizeDefaults(t *testing.T) {
	page := Paginate(mixedCatalog(), 1, 0, 3)
	assert.Equal(t, 3, page.PageSize)
	assert.Equal(t, 2, page.TotalPages)

	page = Paginate(mixedCatalog(), 1, -1, 0)
	assert.Equal(t, DefaultPageSize, page.PageSize)
}

func TestPaginate_EmptySet(t *testing.T) {
	page := Paginate(nil, 3, 10, DefaultPageSize)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
}

func TestPaginate_Window(t *testing.T) {
	in := mixedCatalog()

	page := Paginate(in, 2, 3, DefaultPageSize)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, []int{4}, listingIDs(page.Items))
}

func TestPaginate_InvariantHolds(t *testing.T) {
	in := mixedCatalog()
	for page := -2; page <= 8; page++ {
		for size := -1; size <= 6; size++ {
			got := Paginate(in, page, size, DefaultPageSize)
			assert.GreaterOrEqual(t, got.TotalPages, 1)
			assert.GreaterOrEqual(t, got.Page, 1)
			assert.LessOrEqual(t, got.Page, got.TotalPages)
		}
	}
}

// --- List ---

func TestList_FilterThenSortThenPaginate(t *testing.T) {
	page := List(mixedCatalog(), Query{
		Criteria: Criteria{Category: "smartphones"},
		Sort:     SortPriceAsc,
	}, DefaultPageSize)

	assert.Equal(t, 2, page.Total)
	assert.Equal(t, []int{2, 1}, listingIDs(page.Items))
}

func TestList_PriceAscendingOrder(t *testing.T) {
	page := List(mixedCatalog(), Query{Sort: SortPriceAsc}, DefaultPageSize)

	prices := make([]float64, 0, len(page.Items))
	for _, l := range page.Items {
		prices = append(prices, l.Price.InexactFloat64())
	}
	assert.Equal(t, []float64{799, 999, 1299, 1999}, prices)
}

func TestList_TotalIndependentOfWindow(t *testing.T) {
	q := Query{Criteria: Criteria{Category: "laptops"}, Sort: SortRatingDesc}

	for page := 1; page <= 4; page++ {
		for _, size := range []int{1, 2, 50} {
			q.Page, q.PageSize = page, size
			got := List(mixedCatalog(), q, DefaultPageSize)
			assert.Equal(t, 2, got.Total)
		}
	}
}

package catalog

import (
	"github.com/shopspring/decimal"
)

// InsightsConfig holds the tunable thresholds of the insight aggregations.
// Zero values fall back to DefaultLowStockThreshold and DefaultTopRatedCount.
type InsightsConfig struct {
	LowStockThreshold int
	TopRatedCount     int
}

// CategoryCount names a category together with the number of products in it.
type CategoryCount struct {
	Name  string
	Count int
}

// CategoryStock is the summed stock of a single category.
type CategoryStock struct {
	Category   string
	TotalStock int
}

// Insights is a fixed set of summary statistics over one catalog snapshot.
// Every field is a pure function of the input record set.
type Insights struct {
	AveragePrice       decimal.Decimal
	AverageRating      float64
	AverageStock       float64
	TotalProducts      int
	TotalStock         int
	MostCommonCategory *CategoryCount
	LowStockCount      int
	TopRated           []Listing
	StockByCategory    []CategoryStock
}

// ComputeInsights aggregates the given record set. The set is expected to be
// pre-filtered with Filter so that insights describe exactly the population a
// listing with the same criteria would return. Averages over the empty set
// are 0, and MostCommonCategory is nil.
func ComputeInsights(products []Product, cfg InsightsConfig) Insights {
	threshold := cfg.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	topN := cfg.TopRatedCount
	if topN <= 0 {
		topN = DefaultTopRatedCount
	}

	return Insights{
		AveragePrice:       averagePrice(products),
		AverageRating:      averageRating(products),
		AverageStock:       averageStock(products),
		TotalProducts:      len(products),
		TotalStock:         totalStock(products),
		MostCommonCategory: mostCommonCategory(products),
		LowStockCount:      lowStockCount(products, threshold),
		TopRated:           topRated(products, topN),
		StockByCategory:    stockByCategory(products),
	}
}

func averagePrice(products []Product) decimal.Decimal {
	if len(products) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(p.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(products))))
}

func averageRating(products []Product) float64 {
	if len(products) == 0 {
		return 0
	}
	var sum float64
	for _, p := range products {
		sum += p.Rating
	}
	return sum / float64(len(products))
}

func averageStock(products []Product) float64 {
	if len(products) == 0 {
		return 0
	}
	return float64(totalStock(products)) / float64(len(products))
}

func totalStock(products []Product) int {
	sum := 0
	for _, p := range products {
		sum += p.Stock
	}
	return sum
}

// mostCommonCategory returns the category with the strictly greatest product
// count, or nil for the empty set. Categories are scanned in first-seen
// order and a later category only wins with a strictly greater count, so the
// first category to reach the maximum keeps it on ties.
func mostCommonCategory(products []Product) *CategoryCount {
	if len(products) == 0 {
		return nil
	}

	counts := make(map[string]int, len(products))
	var seen []string
	for _, p := range products {
		if _, ok := counts[p.Category]; !ok {
			seen = append(seen, p.Category)
		}
		counts[p.Category]++
	}

	best := CategoryCount{}
	for _, name := range seen {
		if counts[name] > best.Count {
			best = CategoryCount{Name: name, Count: counts[name]}
		}
	}
	return &best
}

// lowStockCount counts products with stock strictly below the threshold.
// Boundary-equal stock does not count as low.
func lowStockCount(products []Product, threshold int) int {
	n := 0
	for _, p := range products {
		if p.Stock < threshold {
			n++
		}
	}
	return n
}

// topRated returns the n highest-rated products projected onto their Listing
// view. The underlying sort is stable, so rating ties keep input order.
func topRated(products []Product, n int) []Listing {
	sorted := Sort(products, SortRatingDesc)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]Listing, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, ToListing(p))
	}
	return out
}

// stockByCategory sums stock per distinct category, one entry per category in
// first-seen order of the input set.
func stockByCategory(products []Product) []CategoryStock {
	index := make(map[string]int, len(products))
	out := make([]CategoryStock, 0, len(products))
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(out)
			index[p.Category] = i
			out = append(out, CategoryStock{Category: p.Category})
		}
		out[i].TotalStock += p.Stock
	}
	return out
}

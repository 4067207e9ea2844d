package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInsights_EmptySet(t *testing.T) {
	in := ComputeInsights(nil, InsightsConfig{})

	assert.True(t, in.AveragePrice.IsZero())
	assert.Zero(t, in.AverageRating)
	assert.Zero(t, in.AverageStock)
	assert.Zero(t, in.TotalProducts)
	assert.Zero(t, in.TotalStock)
	assert.Nil(t, in.MostCommonCategory)
	assert.Zero(t, in.LowStockCount)
	assert.Empty(t, in.TopRated)
	assert.Empty(t, in.StockByCategory)
}

func TestComputeInsights_MixedCatalog(t *testing.T) {
	in := ComputeInsights(mixedCatalog(), InsightsConfig{})

	assert.True(t, in.AveragePrice.Equal(decimal.NewFromInt(1274)),
		"average price = %s", in.AveragePrice)
	assert.InDelta(t, 4.625, in.AverageRating, 1e-9)
	assert.InDelta(t, 26.25, in.AverageStock, 1e-9)
	assert.Equal(t, 4, in.TotalProducts)
	assert.Equal(t, 105, in.TotalStock)

	require.NotNil(t, in.MostCommonCategory)
	assert.Equal(t, CategoryCount{Name: "smartphones", Count: 2}, *in.MostCommonCategory)

	// Only the ThinkPad (stock 5) is below the default threshold of 10.
	assert.Equal(t, 1, in.LowStockCount)
}

func TestMostCommonCategory_FirstToReachMaxWinsTies(t *testing.T) {
	in := []Product{
		newTestProduct(1, "a1", "audio", "10", 4, 1),
		newTestProduct(2, "v1", "video", "10", 4, 1),
		newTestProduct(3, "a2", "audio", "10", 4, 1),
		newTestProduct(4, "v2", "video", "10", 4, 1),
	}

	got := mostCommonCategory(in)

	// Both categories count 2; "audio" was seen first and a merely equal
	// count never takes the lead.
	require.NotNil(t, got)
	assert.Equal(t, CategoryCount{Name: "audio", Count: 2}, *got)
}

func TestLowStockCount_StrictlyBelowThreshold(t *testing.T) {
	in := []Product{
		newTestProduct(1, "at threshold", "c", "10", 4, 10),
		newTestProduct(2, "below", "c", "10", 4, 9),
		newTestProduct(3, "above", "c", "10", 4, 11),
	}

	got := ComputeInsights(in, InsightsConfig{})
	assert.Equal(t, 1, got.LowStockCount)

	// Threshold override takes effect.
	got = ComputeInsights(in, InsightsConfig{LowStockThreshold: 12})
	assert.Equal(t, 3, got.LowStockCount)
}

func TestTopRated_CountAndStability(t *testing.T) {
	in := []Product{
		newTestProduct(1, "mid", "c", "10", 4.5, 1),
		newTestProduct(2, "tied first seen", "c", "10", 4.9, 1),
		newTestProduct(3, "tied second seen", "c", "10", 4.9, 1),
		newTestProduct(4, "low", "c", "10", 3.0, 1),
	}

	got := ComputeInsights(in, InsightsConfig{TopRatedCount: 2})

	require.Len(t, got.TopRated, 2)
	assert.Equal(t, []int{2, 3}, listingIDs(got.TopRated))
}

func TestTopRated_DefaultCountFiveAndProjection(t *testing.T) {
	got := ComputeInsights(mixedCatalog(), InsightsConfig{})

	// Fewer records than the default of 5: all of them, rating descending.
	assert.Equal(t, []int{3, 1, 2, 4}, listingIDs(got.TopRated))
}

func TestStockByCategory_FirstSeenOrder(t *testing.T) {
	in := []Product{
		newTestProduct(1, "p1", "beauty", "10", 4, 3),
		newTestProduct(2, "p2", "fragrances", "10", 4, 7),
		newTestProduct(3, "p3", "beauty", "10", 4, 5),
	}

	got := stockByCategory(in)

	assert.Equal(t, []CategoryStock{
		{Category: "beauty", TotalStock: 8},
		{Category: "fragrances", TotalStock: 7},
	}, got)
}

func TestInsights_DescribeFilteredListingPopulation(t *testing.T) {
	in := mixedCatalog()
	criteria := Criteria{Category: "smartphones", MinPrice: decPtr("800")}

	filtered := Filter(in, criteria)
	insights := ComputeInsights(filtered, InsightsConfig{})
	listing := List(in, Query{Criteria: criteria}, DefaultPageSize)

	assert.Equal(t, listing.Total, insights.TotalProducts)
	assert.Equal(t, listingIDs(listing.Items)[:insights.TotalProducts], ids(filtered))
}

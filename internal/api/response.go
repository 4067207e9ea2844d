package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/catalog-gateway/internal/catalog"
)

// errorResponse is the body of every failure response. Message carries a
// stable, generic description; upstream transport detail never leaks here.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type listingResponse struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Thumbnail string  `json:"thumbnail"`
	Rating    float64 `json:"rating"`
	Stock     int     `json:"stock"`
}

type productResponse struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand,omitempty"`
	Images             []string `json:"images,omitempty"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
}

type pageResponse struct {
	Items      []listingResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

type categoryCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type categoryStockResponse struct {
	Category   string `json:"category"`
	TotalStock int    `json:"totalStock"`
}

type insightsResponse struct {
	AveragePrice       float64                 `json:"averagePrice"`
	AverageRating      float64                 `json:"averageRating"`
	AverageStock       float64                 `json:"averageStock"`
	TotalProducts      int                     `json:"totalProducts"`
	TotalStock         int                     `json:"totalStock"`
	MostCommonCategory *categoryCountResponse  `json:"mostCommonCategory"`
	LowStockCount      int                     `json:"lowStockCount"`
	TopRatedProducts   []listingResponse       `json:"topRatedProducts"`
	StockByCategory    []categoryStockResponse `json:"stockByCategory"`
}

func toListingResponse(l catalog.Listing) listingResponse {
	return listingResponse{
		ID:        l.ID,
		Title:     l.Title,
		Price:     l.Price.InexactFloat64(),
		Category:  l.Category,
		Thumbnail: l.Thumbnail,
		Rating:    l.Rating,
		Stock:     l.Stock,
	}
}

func toProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Price:              p.Price.InexactFloat64(),
		Category:           p.Category,
		Thumbnail:          p.Thumbnail,
		Rating:             p.Rating,
		Stock:              p.Stock,
		Brand:              p.Brand,
		Images:             p.Images,
		DiscountPercentage: p.DiscountPercentage,
	}
}

func toPageResponse(page catalog.Page) pageResponse {
	items := make([]listingResponse, 0, len(page.Items))
	for _, l := range page.Items {
		items = append(items, toListingResponse(l))
	}
	return pageResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

func toInsightsResponse(in catalog.Insights) insightsResponse {
	top := make([]listingResponse, 0, len(in.TopRated))
	for _, l := range in.TopRated {
		top = append(top, toListingResponse(l))
	}

	byCategory := make([]categoryStockResponse, 0, len(in.StockByCategory))
	for _, cs := range in.StockByCategory {
		byCategory = append(byCategory, categoryStockResponse{
			Category:   cs.Category,
			TotalStock: cs.TotalStock,
		})
	}

	out := insightsResponse{
		AveragePrice:     in.AveragePrice.InexactFloat64(),
		AverageRating:    in.AverageRating,
		AverageStock:     in.AverageStock,
		TotalProducts:    in.TotalProducts,
		TotalStock:       in.TotalStock,
		LowStockCount:    in.LowStockCount,
		TopRatedProducts: top,
		StockByCategory:  byCategory,
	}
	if in.MostCommonCategory != nil {
		out.MostCommonCategory = &categoryCountResponse{
			Name:  in.MostCommonCategory.Name,
			Count: in.MostCommonCategory.Count,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Code: code, Message: message})
}

// writeServiceError maps catalog error categories onto responses: not-found
// is 404, upstream failure is 502 with a generic message (the wrapped detail
// goes to the log only), anything else is 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, catalog.ErrUpstream):
		zctx.From(r.Context()).Error(op, zap.Error(err))
		writeError(w, http.StatusBadGateway, "catalog upstream unavailable")
	default:
		zctx.From(r.Context()).Error(op, zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

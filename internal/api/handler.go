// Package api implements the gateway's HTTP surface: query parameter parsing,
// invocation of the catalog service and translation of results and errors
// into JSON responses.
package api

import (
	"net/http"

	"github.com/xenking/catalog-gateway/internal/catalog"
)

// Handler serves the catalog gateway API.
type Handler struct {
	catalog *catalog.Service
}

// NewHandler constructs a Handler over the catalog service.
func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{catalog: svc}
}

// Routes registers the API endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /api/insights", h.GetInsights)
}

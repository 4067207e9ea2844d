package api

import (
	"net/http"
)

// GetInsights serves GET /api/insights: aggregated metrics over the filtered
// catalog. It accepts the same parameter surface as the listing endpoint —
// insights for a filter set describe exactly the population the listing with
// that filter set would return.
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	// Full query parse keeps the parameter surface (including sort key
	// validation) identical to the listing endpoint; only the criteria
	// affect the aggregation.
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	insights, err := h.catalog.GetInsights(r.Context(), q.Criteria)
	if err != nil {
		h.writeServiceError(w, r, err, "get insights")
		return
	}
	writeJSON(w, http.StatusOK, toInsightsResponse(insights))
}

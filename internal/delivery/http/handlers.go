package http

import (
	"encoding/json"
	"net/http"

	"github.com/paper-app/backend/internal/domain"
)

// Handler serves the single read-only search surface of C8.
type Handler struct {
	search domain.SearchRepository
}

func NewHandler(search domain.SearchRepository) *Handler {
	return &Handler{search: search}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// Search handles GET /search?query=... (spec §4.8): ranked entries
// plus the three facet breakdowns. A missing query parameter defaults
// to the empty string rather than a 400, matching the original
// handler's `None => ""`.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	result, err := h.search.Search(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

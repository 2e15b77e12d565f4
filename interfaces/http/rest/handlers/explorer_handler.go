package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bookhaven/application/explorer"
	"bookhaven/domain/catalog"
	pkgerrors "bookhaven/pkg/errors"
	"bookhaven/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ExplorerHandler exposes the process-wide explorer session: a live filtered
// view over the catalog with optimistic deletes.
type ExplorerHandler struct {
	explorer *explorer.Explorer
	logger   *zap.Logger
}

// NewExplorerHandler creates a new explorer handler
func NewExplorerHandler(exp *explorer.Explorer, logger *zap.Logger) *ExplorerHandler {
	return &ExplorerHandler{
		explorer: exp,
		logger:   logger,
	}
}

// QueryRequest carries the full filter and sort state for the explorer. The
// term is applied through the debounce window; everything else takes effect
// immediately.
type QueryRequest struct {
	Term      string   `json:"term"`
	Genre     string   `json:"genre"`
	PriceMin  *float64 `json:"priceMin" validate:"omitempty,gte=0"`
	PriceMax  *float64 `json:"priceMax" validate:"omitempty,gte=0"`
	MinRating *float64 `json:"minRating" validate:"omitempty,gte=0,lte=5"`
	SortBy    string   `json:"sortBy"`
	SortOrder string   `json:"sortOrder"`
}

// GetView handles GET /explorer/view
func (h *ExplorerHandler) GetView(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.explorer.View())
}

// UpdateQuery handles PUT /explorer/query
func (h *ExplorerHandler) UpdateQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	h.explorer.SetTerm(req.Term)
	h.explorer.SetGenre(req.Genre)
	h.explorer.SetPriceRange(req.PriceMin, req.PriceMax)
	h.explorer.SetMinRating(req.MinRating)
	h.explorer.SetSort(catalog.ParseSortField(req.SortBy), catalog.ParseSortOrder(req.SortOrder))

	respondJSON(w, h.logger, http.StatusOK, h.explorer.View())
}

// DeleteBook handles DELETE /explorer/books/{bookID}. The book disappears
// from the view before the remote delete runs; a failed remote delete rolls
// the view back and surfaces as a 502.
func (h *ExplorerHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "bookID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid book ID format")
		return
	}

	if err := h.explorer.DeleteBook(r.Context(), id); err != nil {
		h.logger.Error("Explorer delete failed", zap.Int64("bookID", id), zap.Error(err))
		pkgerrors.WriteError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, h.explorer.View())
}

// Refresh handles POST /explorer/refresh
func (h *ExplorerHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.explorer.Refresh(r.Context()); err != nil {
		h.logger.Error("Explorer refresh failed", zap.Error(err))
		pkgerrors.WriteError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, h.explorer.View())
}

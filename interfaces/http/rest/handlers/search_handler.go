package handlers

import (
	"net/http"
	"strconv"

	"bookhaven/application/services"
	"bookhaven/domain/catalog"
	pkgerrors "bookhaven/pkg/errors"

	"go.uber.org/zap"
)

// SearchHandler serves stateless catalog queries: each request carries the
// full filter and sort in its query string and gets a derived view back.
type SearchHandler struct {
	catalog *services.CatalogService
	logger  *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(catalog *services.CatalogService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Search handles GET /search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	spec, err := h.parseQuerySpec(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	books, err := h.catalog.ListBooks(r.Context())
	if err != nil {
		h.logger.Error("Failed to load catalog for search", zap.Error(err))
		pkgerrors.WriteError(w, h.logger, err)
		return
	}

	view := catalog.DeriveView(books, spec)

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"data":  view,
		"count": len(view),
	})
}

func (h *SearchHandler) parseQuerySpec(r *http.Request) (catalog.QuerySpec, error) {
	q := r.URL.Query()

	spec := catalog.QuerySpec{
		Term:      q.Get("term"),
		Genre:     q.Get("genre"),
		SortBy:    catalog.ParseSortField(q.Get("sortBy")),
		SortOrder: catalog.ParseSortOrder(q.Get("sortOrder")),
	}

	var err error
	if spec.PriceMin, err = parseFloatParam(q.Get("priceMin"), "priceMin"); err != nil {
		return catalog.QuerySpec{}, err
	}
	if spec.PriceMax, err = parseFloatParam(q.Get("priceMax"), "priceMax"); err != nil {
		return catalog.QuerySpec{}, err
	}
	if spec.MinRating, err = parseFloatParam(q.Get("minRating"), "minRating"); err != nil {
		return catalog.QuerySpec{}, err
	}

	return spec, nil
}

// parseFloatParam distinguishes an absent parameter from one set to zero:
// absent stays nil, present must parse.
func parseFloatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid " + name + ": " + raw)
	}
	return &v, nil
}

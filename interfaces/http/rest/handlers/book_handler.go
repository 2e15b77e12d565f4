package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bookhaven/application/services"
	"bookhaven/domain/catalog"
	pkgerrors "bookhaven/pkg/errors"
	"bookhaven/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BookHandler handles book CRUD HTTP requests
type BookHandler struct {
	catalog *services.CatalogService
	logger  *zap.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(catalog *services.CatalogService, logger *zap.Logger) *BookHandler {
	return &BookHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// BookRequest represents the request body for creating or replacing a book
type BookRequest struct {
	ID            int64    `json:"id,omitempty"`
	Title         string   `json:"title" validate:"required,min=1,max=500"`
	Author        string   `json:"author" validate:"required,min=1,max=200"`
	Price         float64  `json:"price" validate:"gte=0"`
	Description   string   `json:"description,omitempty"`
	Rating        *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ReviewCount   *int     `json:"reviewCount,omitempty" validate:"omitempty,gte=0"`
	Pages         *int     `json:"pages,omitempty" validate:"omitempty,gte=0"`
	Genre         string   `json:"genre,omitempty"`
	ISBN          string   `json:"isbn,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	CoverImage    string   `json:"coverImage,omitempty" validate:"omitempty,url"`
}

func (req BookRequest) toBook() catalog.Book {
	return catalog.Book{
		ID:            req.ID,
		Title:         req.Title,
		Author:        req.Author,
		Price:         req.Price,
		Description:   req.Description,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
		Pages:         req.Pages,
		Genre:         req.Genre,
		ISBN:          req.ISBN,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		CoverImage:    req.CoverImage,
	}
}

// ListBooks handles GET /books. The fresh=true query parameter bypasses the
// collection cache with a consistent read.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	var (
		books []catalog.Book
		err   error
	)
	if r.URL.Query().Get("fresh") == "true" {
		books, err = h.catalog.FreshBooks(r.Context())
	} else {
		books, err = h.catalog.ListBooks(r.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list books", zap.Error(err))
		pkgerrors.WriteError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"data": books,
	})
}

// GetBook handles GET /books/{bookID}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	book, err := h.catalog.GetBook(r.Context(), id)
	if err != nil {
		pkgerrors.WriteError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"data": book,
	})
}

// CreateBook handles POST /books. A zero ID is assigned from the current
// Unix-millisecond clock.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	created, err := h.catalog.CreateBook(r.Context(), req.toBook())
	if err != nil {
		h.logger.Error("Failed to create book", zap.Error(err))
		pkgerrors.WriteError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"data": created,
	})
}

// ReplaceBook handles PUT /books/{bookID}. The path ID wins over any ID in
// the body; the record is replaced wholesale.
func (h *BookHandler) ReplaceBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	book := req.toBook()
	book.ID = id

	replaced, err := h.catalog.ReplaceBook(r.Context(), book)
	if err != nil {
		h.logger.Error("Failed to replace book", zap.Int64("bookID", id), zap.Error(err))
		pkgerrors.WriteError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"data": replaced,
	})
}

// DeleteBook handles DELETE /books/{bookID}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteBook(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete book", zap.Int64("bookID", id), zap.Error(err))
		pkgerrors.WriteError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) bookID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "bookID")
	if raw == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Book ID is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid book ID format")
		return 0, false
	}
	return id, true
}

// Package memory provides an in-memory book record store for local
// development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"bookhaven/application/ports"
	"bookhaven/domain/catalog"
	pkgerrors "bookhaven/pkg/errors"
)

// BookRepository implements ports.BookRepository with a mutex-guarded map.
// It mirrors the DynamoDB repository's semantics: create-or-replace on Put,
// explicit failure on deleting an absent record.
type BookRepository struct {
	mu    sync.RWMutex
	books map[int64]catalog.Book
}

// NewBookRepository creates an empty in-memory repository.
func NewBookRepository() *BookRepository {
	return &BookRepository{
		books: make(map[int64]catalog.Book),
	}
}

var _ ports.BookRepository = (*BookRepository)(nil)

// Seed inserts records directly, bypassing validation. Test and dev helper.
func (r *BookRepository) Seed(books ...catalog.Book) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range books {
		r.books[b.ID] = b
	}
}

// List retrieves all records, ordered by ID for deterministic output.
func (r *BookRepository) List(ctx context.Context) ([]catalog.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListConsistent is identical to List; an in-process map is always
// consistent.
func (r *BookRepository) ListConsistent(ctx context.Context) ([]catalog.Book, error) {
	return r.List(ctx)
}

// GetByID retrieves a single record.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (catalog.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return catalog.Book{}, pkgerrors.NewNotFoundError("book")
	}
	return b, nil
}

// Put persists a record with create-or-replace semantics keyed by ID.
func (r *BookRepository) Put(ctx context.Context, book catalog.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books[book.ID] = book
	return nil
}

// Delete removes a record, failing explicitly when it does not exist.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return pkgerrors.NewNotFoundError("book")
	}
	delete(r.books, id)
	return nil
}

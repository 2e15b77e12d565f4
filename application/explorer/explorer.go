// Package explorer owns the in-memory copy of the record collection and
// bridges query-spec changes and delete commands to an always-consistent
// derived view.
package explorer

import (
	"context"
	"sync"
	"time"

	"bookhaven/domain/catalog"
	pkgerrors "bookhaven/pkg/errors"
	"bookhaven/pkg/observability"

	"go.uber.org/zap"
)

// Store is the remote record store the explorer mutates and reconciles
// against. FreshBooks must bypass any caching so a snapshot fetched after a
// delete reflects that delete.
type Store interface {
	DeleteBook(ctx context.Context, id int64) error
	FreshBooks(ctx context.Context) ([]catalog.Book, error)
}

// View is the derived, read-only result the UI displays.
type View struct {
	Books      []catalog.Book `json:"data"`
	Count      int            `json:"count"`
	Refreshing bool           `json:"refreshing"`
}

// Explorer holds the authoritative local collection and the current query
// spec. All state lives behind one mutex: the collection is owned
// exclusively here, the query engine only ever reads it.
//
// Deletes are optimistic: the record is removed locally before the remote
// call, restored from a whole-collection snapshot on failure, and the
// collection is re-fetched on success. Snapshot rollback means two
// overlapping deletes are not isolated from each other: rolling one back
// restores the full pre-delete collection, which can resurrect the other's
// optimistic removal until the next refresh.
type Explorer struct {
	store    Store
	metrics  *observability.Metrics
	logger   *zap.Logger
	debounce time.Duration

	mu         sync.Mutex
	collection []catalog.Book
	spec       catalog.QuerySpec
	refreshing bool

	termTimer   *time.Timer
	pendingTerm string

	updates chan struct{}
}

// New creates an explorer over the given store. debounce is the quiet window
// applied to free-text term changes; zero or negative applies terms
// immediately. metrics may be nil.
func New(s Store, debounce time.Duration, metrics *observability.Metrics, logger *zap.Logger) *Explorer {
	return &Explorer{
		store:    s,
		metrics:  metrics,
		logger:   logger,
		debounce: debounce,
		spec: catalog.QuerySpec{
			SortBy:    catalog.SortByTitle,
			SortOrder: catalog.SortAsc,
		},
		updates: make(chan struct{}, 1),
	}
}

// Updates signals whenever the backing collection or the query spec changes.
// Sends are non-blocking; consumers that fall behind coalesce signals.
func (e *Explorer) Updates() <-chan struct{} {
	return e.updates
}

// View derives the currently displayed subset from the collection and query
// spec.
func (e *Explorer) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	books := catalog.DeriveView(e.collection, e.spec)
	return View{
		Books:      books,
		Count:      len(books),
		Refreshing: e.refreshing,
	}
}

// Refresh replaces the collection wholesale with a fresh snapshot from the
// store. Used for the initial load and manual reloads.
func (e *Explorer) Refresh(ctx context.Context) error {
	books, err := e.store.FreshBooks(ctx)
	if err != nil {
		return pkgerrors.NewRemoteOperationError("list books", err)
	}

	e.mu.Lock()
	e.collection = books
	e.notifyLocked()
	e.mu.Unlock()
	return nil
}

// SetTerm updates the free-text term after the debounce window. Each call
// resets the window; only the last value within it is ever applied,
// intermediate values are discarded.
func (e *Explorer) SetTerm(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pendingTerm = term
	if e.termTimer != nil {
		e.termTimer.Stop()
		e.termTimer = nil
	}
	if e.debounce <= 0 {
		e.spec.Term = term
		e.notifyLocked()
		return
	}
	e.termTimer = time.AfterFunc(e.debounce, e.applyPendingTerm)
}

// applyPendingTerm commits the latest pending term once the window expires.
func (e *Explorer) applyPendingTerm() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.termTimer = nil
	e.spec.Term = e.pendingTerm
	e.notifyLocked()
}

// SetGenre updates the genre filter immediately. Empty clears it.
func (e *Explorer) SetGenre(genre string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spec.Genre = genre
	e.notifyLocked()
}

// SetPriceRange updates the price bounds immediately. A nil bound is unset;
// a bound of 0 is a real, inclusive bound.
func (e *Explorer) SetPriceRange(min, max *float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spec.PriceMin = min
	e.spec.PriceMax = max
	e.notifyLocked()
}

// SetMinRating updates the rating threshold immediately. Nil clears it.
func (e *Explorer) SetMinRating(min *float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spec.MinRating = min
	e.notifyLocked()
}

// SetSort updates the sort directive immediately.
func (e *Explorer) SetSort(field catalog.SortField, order catalog.SortOrder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spec.SortBy = field
	e.spec.SortOrder = order
	e.notifyLocked()
}

// QuerySpec returns a copy of the current (applied) query spec.
func (e *Explorer) QuerySpec() catalog.QuerySpec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spec
}

// DeleteBook removes a record optimistically, then confirms against the
// store.
//
// The local removal happens synchronously before the remote call, so the
// view reflects intent immediately. If the remote delete fails, the
// collection is restored to the snapshot captured before removal and the
// failure is returned. If it succeeds, a fresh snapshot is fetched to
// reconcile; a failed reconciliation fetch is logged and swallowed - the
// delete itself already succeeded, the view is merely stale until the next
// refresh.
//
// The collection changes at most twice per call: the optimistic removal and
// the optional reconciliation replacement.
func (e *Explorer) DeleteBook(ctx context.Context, id int64) error {
	e.mu.Lock()
	original := e.collection
	e.collection = removeByID(e.collection, id)
	e.notifyLocked()
	e.mu.Unlock()

	if err := e.store.DeleteBook(ctx, id); err != nil {
		e.mu.Lock()
		e.collection = original
		e.notifyLocked()
		e.mu.Unlock()

		e.metrics.Increment(ctx, observability.MetricDeleteRolledBack)
		e.logger.Warn("Delete rolled back",
			zap.Int64("bookID", id),
			zap.Error(err),
		)
		return pkgerrors.NewRemoteOperationError("delete book", err)
	}

	e.mu.Lock()
	e.refreshing = true
	e.notifyLocked()
	e.mu.Unlock()

	books, err := e.store.FreshBooks(ctx)

	e.mu.Lock()
	e.refreshing = false
	if err == nil {
		e.collection = books
	}
	e.notifyLocked()
	e.mu.Unlock()

	if err != nil {
		e.metrics.Increment(ctx, observability.MetricReconciliationFailed)
		e.logger.Warn("Reconciliation fetch failed, keeping optimistic collection",
			zap.Int64("bookID", id),
			zap.Error(pkgerrors.NewReconciliationError(err)),
		)
	}
	return nil
}

// notifyLocked wakes Updates consumers. Callers must hold e.mu.
func (e *Explorer) notifyLocked() {
	select {
	case e.updates <- struct{}{}:
	default:
	}
}

// removeByID filters one record out of the collection without mutating the
// input slice.
func removeByID(books []catalog.Book, id int64) []catalog.Book {
	out := make([]catalog.Book, 0, len(books))
	for _, b := range books {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

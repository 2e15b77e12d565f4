// Package services contains the application services that orchestrate the
// record store, event publishing, and caching.
package services

import (
	"context"
	"time"

	"bookhaven/application/ports"
	"bookhaven/domain/catalog"
	"bookhaven/domain/events"
	"bookhaven/pkg/observability"

	"go.uber.org/zap"
)

// collectionCacheKey caches the full record collection. The collection is
// small enough to cache wholesale; there is no server-side pagination.
const collectionCacheKey = "catalog:books"

// CatalogService provides direct access to the book record store. It is the
// thin layer the HTTP handlers and the explorer controller call into:
// validate, hit the repository, publish the event, keep the collection cache
// warm.
type CatalogService struct {
	repo     ports.BookRepository
	eventBus ports.EventBus
	cache    ports.Cache
	cacheTTL int
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service. eventBus, cache, and
// metrics may be nil when the corresponding feature is disabled.
func NewCatalogService(
	repo ports.BookRepository,
	eventBus ports.EventBus,
	cache ports.Cache,
	cacheTTLSeconds int,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		repo:     repo,
		eventBus: eventBus,
		cache:    cache,
		cacheTTL: cacheTTLSeconds,
		metrics:  metrics,
		logger:   logger,
	}
}

// ListBooks retrieves the full collection, serving the short-TTL cache when
// warm.
func (s *CatalogService) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, collectionCacheKey); ok {
			if books, ok := cached.([]catalog.Book); ok {
				s.metrics.Increment(ctx, observability.MetricCatalogCacheHit)
				return books, nil
			}
		}
		s.metrics.Increment(ctx, observability.MetricCatalogCacheMiss)
	}

	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheCollection(ctx, books)
	return books, nil
}

// FreshBooks retrieves the full collection bypassing the cache, with a
// consistent read, and repopulates the cache from the result. This is the
// fetch reconciliation relies on: it must observe a delete that just
// succeeded.
func (s *CatalogService) FreshBooks(ctx context.Context) ([]catalog.Book, error) {
	books, err := s.repo.ListConsistent(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheCollection(ctx, books)
	return books, nil
}

// GetBook retrieves a single record.
func (s *CatalogService) GetBook(ctx context.Context, id int64) (catalog.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateBook stores a new record. A zero ID is assigned from the current
// clock, matching what the creation form does.
func (s *CatalogService) CreateBook(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	if book.ID == 0 {
		book.ID = catalog.NewID()
	}
	if err := book.Validate(); err != nil {
		return catalog.Book{}, err
	}

	if err := s.repo.Put(ctx, book); err != nil {
		return catalog.Book{}, err
	}

	s.invalidateCollection(ctx)
	s.metrics.Increment(ctx, observability.MetricBookCreated)
	s.publish(ctx, events.NewBookCreated(book, time.Now()))

	s.logger.Info("Book created",
		zap.Int64("bookID", book.ID),
		zap.String("title", book.Title),
	)
	return book, nil
}

// ReplaceBook replaces a record wholesale. The store has create-or-replace
// semantics keyed by ID; there is no partial-field update.
func (s *CatalogService) ReplaceBook(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	if err := book.Validate(); err != nil {
		return catalog.Book{}, err
	}

	if err := s.repo.Put(ctx, book); err != nil {
		return catalog.Book{}, err
	}

	s.invalidateCollection(ctx)
	s.metrics.Increment(ctx, observability.MetricBookReplaced)
	s.publish(ctx, events.NewBookReplaced(book, time.Now()))

	s.logger.Info("Book replaced", zap.Int64("bookID", book.ID))
	return book, nil
}

// DeleteBook removes a record by ID.
func (s *CatalogService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCollection(ctx)
	s.metrics.Increment(ctx, observability.MetricBookDeleted)
	s.publish(ctx, events.NewBookDeleted(id, time.Now()))

	s.logger.Info("Book deleted", zap.Int64("bookID", id))
	return nil
}

// publish sends a domain event. Publish failures do not fail the operation;
// the store write already happened.
func (s *CatalogService) publish(ctx context.Context, event events.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish domain event",
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
			zap.Error(err),
		)
	}
}

func (s *CatalogService) cacheCollection(ctx context.Context, books []catalog.Book) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, collectionCacheKey, books, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache collection", zap.Error(err))
	}
}

func (s *CatalogService) invalidateCollection(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, collectionCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate collection cache", zap.Error(err))
	}
}

// Package ports declares the interfaces the application layer consumes.
// These are ports in hexagonal architecture - the domain doesn't know about
// the implementations behind them.
package ports

import (
	"context"

	"bookhaven/domain/catalog"
	"bookhaven/domain/events"
)

// BookRepository defines the interface for book record persistence.
type BookRepository interface {
	// List retrieves all records.
	List(ctx context.Context) ([]catalog.Book, error)

	// ListConsistent retrieves all records with read-after-write
	// consistency. Reconciliation after a mutation uses this instead of
	// List so the fetched snapshot reflects the mutation.
	ListConsistent(ctx context.Context) ([]catalog.Book, error)

	// GetByID retrieves a single record.
	GetByID(ctx context.Context, id int64) (catalog.Book, error)

	// Put persists a record with create-or-replace semantics keyed by ID.
	Put(ctx context.Context, book catalog.Book) error

	// Delete removes a record by ID. Deleting an absent record is an
	// explicit failure carrying a reason, not a silent no-op.
	Delete(ctx context.Context, id int64) error
}

// EventBus defines the interface for publishing domain events
type EventBus interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error
}

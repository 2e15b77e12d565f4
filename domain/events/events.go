// Package events defines the catalog domain events published on record
// mutations.
package events

import (
	"strconv"
	"time"

	"bookhaven/domain/catalog"

	"github.com/google/uuid"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// BookCreated is raised when a new record is stored.
type BookCreated struct {
	BaseEvent
	Book catalog.Book `json:"book"`
}

// NewBookCreated creates a BookCreated event
func NewBookCreated(book catalog.Book, timestamp time.Time) BookCreated {
	return BookCreated{
		BaseEvent: BaseEvent{
			EventID:     uuid.NewString(),
			AggregateID: strconv.FormatInt(book.ID, 10),
			EventType:   "book.created",
			Timestamp:   timestamp,
		},
		Book: book,
	}
}

// BookReplaced is raised when an existing record is replaced wholesale.
// Records are mutated only by full replacement, never by partial update.
type BookReplaced struct {
	BaseEvent
	Book catalog.Book `json:"book"`
}

// NewBookReplaced creates a BookReplaced event
func NewBookReplaced(book catalog.Book, timestamp time.Time) BookReplaced {
	return BookReplaced{
		BaseEvent: BaseEvent{
			EventID:     uuid.NewString(),
			AggregateID: strconv.FormatInt(book.ID, 10),
			EventType:   "book.replaced",
			Timestamp:   timestamp,
		},
		Book: book,
	}
}

// BookDeleted is raised when a record is removed from the store.
type BookDeleted struct {
	BaseEvent
	BookID int64 `json:"book_id"`
}

// NewBookDeleted creates a BookDeleted event
func NewBookDeleted(bookID int64, timestamp time.Time) BookDeleted {
	return BookDeleted{
		BaseEvent: BaseEvent{
			EventID:     uuid.NewString(),
			AggregateID: strconv.FormatInt(bookID, 10),
			EventType:   "book.deleted",
			Timestamp:   timestamp,
		},
		BookID: bookID,
	}
}

package events

import (
	"testing"
	"time"

	"bookhaven/domain/catalog"

	"github.com/stretchr/testify/assert"
)

func TestEventConstructors(t *testing.T) {
	now := time.Now()
	book := catalog.Book{ID: 42, Title: "T", Author: "A"}

	created := NewBookCreated(book, now)
	assert.Equal(t, "book.created", created.GetEventType())
	assert.Equal(t, "42", created.GetAggregateID())
	assert.Equal(t, now, created.GetTimestamp())
	assert.NotEmpty(t, created.GetEventID())

	replaced := NewBookReplaced(book, now)
	assert.Equal(t, "book.replaced", replaced.GetEventType())

	deleted := NewBookDeleted(42, now)
	assert.Equal(t, "book.deleted", deleted.GetEventType())
	assert.Equal(t, "42", deleted.GetAggregateID())

	// Event IDs are unique per event.
	assert.NotEqual(t, created.GetEventID(), replaced.GetEventID())
}

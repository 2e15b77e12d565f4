package services

import (
	"context"
	"testing"

	"bookhaven/application/ports"
	"bookhaven/domain/catalog"
	"bookhaven/domain/events"
	"bookhaven/infrastructure/persistence/memory"
	pkgerrors "bookhaven/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingRepo wraps the in-memory repository to count read paths.
type countingRepo struct {
	ports.BookRepository
	listCalls       int
	consistentCalls int
}

func (r *countingRepo) List(ctx context.Context) ([]catalog.Book, error) {
	r.listCalls++
	return r.BookRepository.List(ctx)
}

func (r *countingRepo) ListConsistent(ctx context.Context) ([]catalog.Book, error) {
	r.consistentCalls++
	return r.BookRepository.ListConsistent(ctx)
}

type fakeCache struct {
	values map[string]interface{}
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]interface{})}
}

func (c *fakeCache) Get(ctx context.Context, key string) (interface{}, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	c.values[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

type recordingBus struct {
	published []events.DomainEvent
	err       error
}

func (b *recordingBus) Publish(ctx context.Context, event events.DomainEvent) error {
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	for _, e := range evts {
		if err := b.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func seededRepo(books ...catalog.Book) *countingRepo {
	repo := memory.NewBookRepository()
	repo.Seed(books...)
	return &countingRepo{BookRepository: repo}
}

func book(id int64, title string) catalog.Book {
	return catalog.Book{ID: id, Title: title, Author: "Author", Price: 10}
}

func TestListBooksServesCacheWhenWarm(t *testing.T) {
	repo := seededRepo(book(1, "Alpha"))
	cache := newFakeCache()
	svc := NewCatalogService(repo, nil, cache, 30, nil, zap.NewNop())
	ctx := context.Background()

	first, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Only the first call hit the repository.
	assert.Equal(t, 1, repo.listCalls)
}

func TestFreshBooksBypassesCacheAndRepopulates(t *testing.T) {
	repo := seededRepo(book(1, "Alpha"))
	cache := newFakeCache()
	svc := NewCatalogService(repo, nil, cache, 30, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.ListBooks(ctx)
	require.NoError(t, err)

	// The warm cache is ignored; the consistent read path is used.
	fresh, err := svc.FreshBooks(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, 1, repo.consistentCalls)
	assert.Equal(t, 2, cache.sets)

	// And the result landed back in the cache.
	_, err = svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestCreateBookAssignsIDWhenZero(t *testing.T) {
	repo := seededRepo()
	svc := NewCatalogService(repo, nil, nil, 0, nil, zap.NewNop())

	created, err := svc.CreateBook(context.Background(), catalog.Book{
		Title:  "Untitled Draft",
		Author: "Anon",
		Price:  1,
	})

	require.NoError(t, err)
	assert.Positive(t, created.ID)

	stored, err := svc.GetBook(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Draft", stored.Title)
}

func TestCreateBookKeepsExplicitID(t *testing.T) {
	repo := seededRepo()
	svc := NewCatalogService(repo, nil, nil, 0, nil, zap.NewNop())

	created, err := svc.CreateBook(context.Background(), book(42, "Explicit"))

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
}

func TestCreateBookRejectsInvalidRecord(t *testing.T) {
	repo := seededRepo()
	svc := NewCatalogService(repo, nil, nil, 0, nil, zap.NewNop())

	_, err := svc.CreateBook(context.Background(), catalog.Book{ID: 1, Title: "No Author"})

	assert.True(t, pkgerrors.IsValidation(err))
}

func TestCreateBookPublishesEventAndInvalidatesCache(t *testing.T) {
	repo := seededRepo(book(1, "Alpha"))
	cache := newFakeCache()
	bus := &recordingBus{}
	svc := NewCatalogService(repo, bus, cache, 30, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.ListBooks(ctx)
	require.NoError(t, err)

	_, err = svc.CreateBook(ctx, book(2, "Beta"))
	require.NoError(t, err)

	require.Len(t, bus.published, 1)
	assert.Equal(t, "book.created", bus.published[0].GetEventType())
	assert.Equal(t, "2", bus.published[0].GetAggregateID())
	assert.NotEmpty(t, bus.published[0].GetEventID())

	// Cache was invalidated; the next list sees the new record.
	books, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	repo := seededRepo()
	bus := &recordingBus{err: assert.AnError}
	svc := NewCatalogService(repo, bus, nil, 0, nil, zap.NewNop())

	_, err := svc.CreateBook(context.Background(), book(1, "Alpha"))

	assert.NoError(t, err)
}

func TestReplaceBookPublishesReplacedEvent(t *testing.T) {
	repo := seededRepo(book(1, "Alpha"))
	bus := &recordingBus{}
	svc := NewCatalogService(repo, bus, nil, 0, nil, zap.NewNop())

	updated := book(1, "Alpha, Second Edition")
	_, err := svc.ReplaceBook(context.Background(), updated)

	require.NoError(t, err)
	require.Len(t, bus.published, 1)
	assert.Equal(t, "book.replaced", bus.published[0].GetEventType())

	stored, err := svc.GetBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alpha, Second Edition", stored.Title)
}

func TestDeleteBookPropagatesNotFound(t *testing.T) {
	repo := seededRepo()
	svc := NewCatalogService(repo, nil, nil, 0, nil, zap.NewNop())

	err := svc.DeleteBook(context.Background(), 999)

	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDeleteBookPublishesDeletedEvent(t *testing.T) {
	repo := seededRepo(book(1, "Alpha"))
	bus := &recordingBus{}
	svc := NewCatalogService(repo, bus, nil, 0, nil, zap.NewNop())

	require.NoError(t, svc.DeleteBook(context.Background(), 1))

	require.Len(t, bus.published, 1)
	assert.Equal(t, "book.deleted", bus.published[0].GetEventType())
	assert.Equal(t, "1", bus.published[0].GetAggregateID())

	_, err := svc.GetBook(context.Background(), 1)
	assert.True(t, pkgerrors.IsNotFound(err))
}

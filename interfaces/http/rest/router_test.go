package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookhaven/application/explorer"
	"bookhaven/application/services"
	"bookhaven/domain/catalog"
	"bookhaven/infrastructure/config"
	"bookhaven/infrastructure/persistence/memory"
	"bookhaven/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	handler http.Handler
	repo    *memory.BookRepository
}

func newTestEnv(t *testing.T, seed ...catalog.Book) *testEnv {
	t.Helper()

	repo := memory.NewBookRepository()
	repo.Seed(seed...)

	logger := zap.NewNop()
	svc := services.NewCatalogService(repo, nil, nil, 0, nil, logger)
	exp := explorer.New(svc, 0, nil, logger)

	cfg := &config.Config{
		Environment: "test",
		EnableCORS:  false,
	}

	router := NewRouter(svc, exp, cfg, logger)
	return &testEnv{handler: router.Setup(), repo: repo}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) []catalog.Book {
	t.Helper()
	var payload struct {
		Data []catalog.Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload.Data
}

func seedBooks() []catalog.Book {
	return []catalog.Book{
		{ID: 1, Title: "Alpha", Author: "Adams", Genre: "Fantasy", Price: 10, Rating: utils.Ptr(4.5)},
		{ID: 2, Title: "Beta", Author: "Brown", Genre: "Mystery", Price: 20, Rating: utils.Ptr(3.5)},
		{ID: 3, Title: "Gamma", Author: "Clark", Genre: "Fantasy", Price: 30},
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/ready", nil).Code)
}

func TestListBooks(t *testing.T) {
	env := newTestEnv(t, seedBooks()...)

	rec := env.do(t, http.MethodGet, "/api/v1/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData(t, rec), 3)

	rec = env.do(t, http.MethodGet, "/api/v1/books?fresh=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData(t, rec), 3)
}

func TestGetBook(t *testing.T) {
	env := newTestEnv(t, seedBooks()...)

	rec := env.do(t, http.MethodGet, "/api/v1/books/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data catalog.Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Alpha", payload.Data.Title)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/books/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/books/nope", nil).Code)
}

func TestCreateBook(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"title":  "New Arrival",
		"author": "Wright",
		"price":  14.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var payload struct {
		Data catalog.Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Positive(t, payload.Data.ID)
	assert.Equal(t, "New Arrival", payload.Data.Title)
}

func TestCreateBookValidation(t *testing.T) {
	env := newTestEnv(t)

	// Missing required fields.
	rec := env.do(t, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"price": 10,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Negative price.
	rec = env.do(t, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"title":  "Cheap",
		"author": "A",
		"price":  -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Rating above scale.
	rec = env.do(t, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"title":  "Over",
		"author": "A",
		"price":  1,
		"rating": 5.5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed JSON body.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/books", bytes.NewBufferString("{"))
	recRaw := httptest.NewRecorder()
	env.handler.ServeHTTP(recRaw, req)
	assert.Equal(t, http.StatusBadRequest, recRaw.Code)
}

func TestReplaceBookPathIDWins(t *testing.T) {
	env := newTestEnv(t, seedBooks()...)

	rec := env.do(t, http.MethodPut, "/api/v1/books/1", map[string]interface{}{
		"id":     777,
		"title":  "Alpha Revised",
		"author": "Adams",
		"price":  11,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data catalog.Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, int64(1), payload.Data.ID)
	assert.Equal(t, "Alpha Revised", payload.Data.Title)
}

func TestDeleteBook(t *testing.T) {
	env := newTestEnv(t, seedBooks()...)

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/v1/books/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/v1/books/1", nil).Code)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t, seedBooks()...)

	rec := env.do(t, http.MethodGet, "/api/v1/search?genre=fantasy&sortBy=price&sortOrder=desc", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data  []catalog.Book `json:"data"`
		Count int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, 2, payload.Count)
	assert.Equal(t, "Gamma", payload.Data[0].Title)
	assert.Equal(t, "Alpha", payload.Data[1].Title)
}

func TestSearchPriceBoundZeroApplies(t *testing.T) {
	env := newTestEnv(t, catalog.Book{ID: 1, Title: "Free", Author: "A", Price: 0})

	rec := env.do(t, http.MethodGet, "/api/v1/search?priceMin=0&priceMax=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData(t, rec), 1)
}

func TestSearchRejectsMalformedNumbers(t *testing.T) {
	env := newTestEnv(t, seedBooks()...)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/search?priceMin=abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/search?minRating=many", nil).Code)
}

func TestExplorerFlow(t *testing.T) {
	env := newTestEnv(t, seedBooks()...)

	// The explorer starts empty; refresh loads the collection.
	rec := env.do(t, http.MethodPost, "/api/v1/explorer/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/explorer/view", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Data  []catalog.Book `json:"data"`
		Count int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 3, view.Count)

	// Narrow the view. The test explorer has no debounce, so the term
	// applies immediately.
	rec = env.do(t, http.MethodPut, "/api/v1/explorer/query", map[string]interface{}{
		"term":      "a",
		"genre":     "Fantasy",
		"sortBy":    "price",
		"sortOrder": "desc",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, 2, view.Count)
	assert.Equal(t, "Gamma", view.Data[0].Title)

	// Optimistic delete through the explorer removes remotely too.
	rec = env.do(t, http.MethodDelete, "/api/v1/explorer/books/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 1, view.Count)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/books/3", nil).Code)
}

func TestExplorerDeleteFailureReturns502(t *testing.T) {
	env := newTestEnv(t, seedBooks()...)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/explorer/refresh", nil).Code)

	// The record does not exist remotely, so the optimistic delete rolls
	// back and surfaces as a bad gateway.
	rec := env.do(t, http.MethodDelete, "/api/v1/explorer/books/999", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	view := env.do(t, http.MethodGet, "/api/v1/explorer/view", nil)
	assert.Contains(t, view.Body.String(), `"count":3`)
}

func TestExplorerQueryValidation(t *testing.T) {
	env := newTestEnv(t, seedBooks()...)

	rec := env.do(t, http.MethodPut, "/api/v1/explorer/query", map[string]interface{}{
		"minRating": 9,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/explorer/query", map[string]interface{}{
		"priceMin": -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

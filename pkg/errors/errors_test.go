package errors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatusAndType(t *testing.T) {
	cases := []struct {
		err     *AppError
		errType ErrorType
		status  int
	}{
		{NewValidationError("bad input"), ErrorTypeValidation, http.StatusBadRequest},
		{NewNotFoundError("book"), ErrorTypeNotFound, http.StatusNotFound},
		{NewConflictError("already exists"), ErrorTypeConflict, http.StatusConflict},
		{NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
		{NewDatabaseError("scan", errors.New("throttled")), ErrorTypeDatabase, http.StatusInternalServerError},
		{NewRemoteOperationError("delete book", errors.New("timeout")), ErrorTypeRemoteOperation, http.StatusBadGateway},
		{NewReconciliationError(errors.New("timeout")), ErrorTypeReconciliation, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(string(tc.errType), func(t *testing.T) {
			assert.Equal(t, tc.errType, tc.err.Type)
			assert.Equal(t, tc.status, tc.err.HTTPStatus)
		})
	}
}

func TestRemoteOperationErrorKeepsReason(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewRemoteOperationError("delete book", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "delete book")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPredicatesWalkWrappedChains(t *testing.T) {
	inner := NewNotFoundError("book")
	wrapped := fmt.Errorf("loading view: %w", inner)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	require.NotNil(t, GetAppError(wrapped))
	assert.Equal(t, ErrorTypeNotFound, GetAppError(wrapped).Type)

	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestWrapAddsContext(t *testing.T) {
	appErr := NewValidationError("price must not be negative")
	wrapped := Wrap(appErr, "create book")

	assert.True(t, IsValidation(wrapped))
	assert.Contains(t, wrapped.Error(), "create book")

	plain := Wrap(errors.New("disk full"), "save")
	assert.Equal(t, ErrorTypeInternal, GetAppError(plain).Type)
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestWriteErrorMapsAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, nil, NewNotFoundError("book"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"error":true`)
	assert.Contains(t, rec.Body.String(), "book not found")
	assert.Contains(t, rec.Body.String(), string(ErrorTypeNotFound))
}

func TestWriteErrorHidesUnknownErrorDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, nil, errors.New("sensitive connection string"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sensitive")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

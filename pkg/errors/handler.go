package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorResponse is the JSON body written for failed requests.
type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type,omitempty"`
}

// WriteError maps an error onto an HTTP response. AppErrors carry their own
// status and type; anything else is reported as an internal error without
// leaking its detail to the client.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	errType := string(ErrorTypeInternal)

	if appErr := GetAppError(err); appErr != nil {
		status = appErr.HTTPStatus
		message = appErr.Message
		errType = string(appErr.Type)
	}

	if logger != nil && status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err), zap.Int("status", status))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(errorResponse{
		Error:   true,
		Message: message,
		Code:    status,
		Type:    errType,
	}); encErr != nil && logger != nil {
		logger.Error("Failed to encode error response", zap.Error(encErr))
	}
}

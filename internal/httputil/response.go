package httputil

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
)

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// ErrorResponse follows the backend envelope shape.
type ErrorResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	Code      apperrors.ErrorCode `json:"code"`
	Timestamp time.Time           `json:"timestamp"`
}

// WriteError writes an AppError as an HTTP response with appropriate status code
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal("An unexpected error occurred")
	}

	status := appErr.Status
	if status == 0 {
		status = statusFromCode(appErr.Code)
	}
	WriteErrorWithStatus(w, status, appErr)
}

func WriteErrorWithStatus(w http.ResponseWriter, status int, err *apperrors.AppError) {
	WriteJSON(w, status, ErrorResponse{
		Success:   false,
		Message:   err.Message,
		Code:      err.Code,
		Timestamp: time.Now().UTC(),
	})
}

func statusFromCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation,
		apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeMissingRequired:
		return http.StatusBadRequest

	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized

	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden

	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound

	case apperrors.ErrCodeConflict:
		return http.StatusConflict

	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests

	case apperrors.ErrCodeNetwork:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

package middleware

import (
	"net/http"

	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
	"github.com/jobfinder/dashboard-go/internal/httputil"
)

func writeError(w http.ResponseWriter, status int, code apperrors.ErrorCode, message string) {
	httputil.WriteErrorWithStatus(w, status, apperrors.New(code, message))
}

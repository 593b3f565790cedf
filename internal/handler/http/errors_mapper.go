package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adilgabb/commitgate/internal/backend"
	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/internal/service"
	"github.com/adilgabb/commitgate/internal/utils"
	"github.com/adilgabb/commitgate/models"
)

// API error codes. Stable contract values; callers branch on them.
const (
	codeInvalidRequest  = "INVALID_REQUEST"
	codeChannelNotFound = "CHANNEL_NOT_FOUND"
	codeAuthError       = "AUTH_ERROR"
	codeRateLimit       = "RATE_LIMIT"
	codePartialUpload   = "PARTIAL_UPLOAD_NOT_COMMITTED"
	codeInternalError   = "INTERNAL_ERROR"
)

type errorClass struct {
	status int
	code   string
}

// errorClassMap resolves a failure to its API class. Ordered from most to
// least specific; partial commits must win over the backend error they wrap.
var errorClassMap = []struct {
	target error
	class  errorClass
}{
	{service.ErrPartialCommit, errorClass{http.StatusBadGateway, codePartialUpload}},
	{service.ErrInvalidRequest, errorClass{http.StatusBadRequest, codeInvalidRequest}},
	{service.ErrChannelNotFound, errorClass{http.StatusBadRequest, codeChannelNotFound}},
	{backend.ErrAuth, errorClass{http.StatusUnauthorized, codeAuthError}},
	{backend.ErrRateLimited, errorClass{http.StatusTooManyRequests, codeRateLimit}},
}

func classFromError(err error) errorClass {
	for _, entry := range errorClassMap {
		if errors.Is(err, entry.target) {
			return entry.class
		}
	}
	return errorClass{http.StatusInternalServerError, codeInternalError}
}

// writeError maps err to its API class and writes the JSON error payload.
// Internal failure details never leak into the response body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	class := classFromError(err)

	resp := models.ErrorResponse{
		Success: false,
		Code:    class.code,
	}
	if class.code == codeInternalError {
		resp.Error = "internal error"
	} else {
		resp.Error = err.Error()
	}

	var rl *backend.RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		resp.RetryAfter = rl.RetryAfter
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
	}

	var partial *service.PartialCommitError
	if errors.As(err, &partial) {
		resp.StagedFiles = partial.Staged
	}

	log := logger.FromRequest(r)
	log.Err(err).Int("status", class.status).Str("code", class.code).Msg("request failed")

	if _, werr := utils.WriteJSON(w, resp, class.status); werr != nil {
		log.Err(werr).Msg("error writing error response")
	}
}

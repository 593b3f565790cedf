package http

import (
	"context"
	"net/http"

	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/internal/utils"
	"github.com/adilgabb/commitgate/models"
)

// auth enforces JWT bearer authentication on the upload surface.
//
// It extracts the bearer token from the "Authorization" header, verifies its
// signature, issuer, and expiration against the configured sign key, and
// stores the caller subject in the request context under
// [utils.CallerCtxKey] before delegating to the next handler.
//
// When no token sign key is configured, authentication is disabled and
// requests pass through unchanged.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.app.TokenSignKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeAuthError(w, ErrEmptyAuthorizationHeader.Error())
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			writeAuthError(w, err.Error())
			return
		}

		caller, err := utils.ValidateCallerToken(tokenString, h.app.TokenSignKey, h.app.TokenIssuer)
		if err != nil {
			log.Err(err).Msg("bearer token rejected")
			writeAuthError(w, ErrInvalidToken.Error())
			return
		}

		ctx := context.WithValue(r.Context(), utils.CallerCtxKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthError(w http.ResponseWriter, message string) {
	resp := models.ErrorResponse{
		Success: false,
		Code:    codeAuthError,
		Error:   message,
	}
	_, _ = utils.WriteJSON(w, resp, http.StatusUnauthorized)
}
